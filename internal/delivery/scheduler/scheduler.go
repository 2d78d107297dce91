// Package scheduler runs the in-process cron jobs. It is a delivery like the
// HTTP servers: the fx app starts it, jobs fire on their schedules, and
// shutdown stops the cron loop and waits for running jobs.
package scheduler

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"go.uber.org/fx"

	"trading/internal/delivery"
)

// Job is a unit of scheduled work. Implementations own their cron expression
// so each binary only wires the jobs it needs.
type Job interface {
	// Name identifies the job in logs.
	Name() string

	// Schedule returns the cron expression the job runs on.
	Schedule() string

	// Run executes one pass of the job.
	Run(ctx context.Context) error
}

type cronScheduler struct {
	logger *slog.Logger
	runner *cron.Cron
	jobs   []Job
	done   chan struct{}
}

// ServerParams holds dependencies for the cron scheduler
type ServerParams struct {
	fx.In

	Lc     fx.Lifecycle
	Logger *slog.Logger
	Jobs   []Job `group:"cron-jobs"`
}

// NewScheduler creates the cron delivery and registers it for shutdown.
func NewScheduler(params ServerParams) (delivery.Delivery, error) {
	srv := &cronScheduler{
		logger: params.Logger,
		runner: cron.New(),
		jobs:   params.Jobs,
		done:   make(chan struct{}),
	}

	params.Lc.Append(fx.Hook{
		OnStop: srv.stop,
	})

	return srv, nil
}

// Serve registers every job and runs the cron loop until shutdown.
func (s *cronScheduler) Serve(ctx context.Context) error {
	for _, job := range s.jobs {
		if _, err := s.runner.AddFunc(job.Schedule(), s.wrap(job)); err != nil {
			return errors.Wrapf(err, "failed to schedule job %s", job.Name())
		}

		s.logger.Info("Scheduled job",
			slog.String("job", job.Name()),
			slog.String("schedule", job.Schedule()),
		)
	}

	s.runner.Start()
	<-s.done

	return nil
}

// wrap adapts a Job to a cron func, logging the outcome of each run. A failed
// run never stops the schedule.
func (s *cronScheduler) wrap(job Job) func() {
	return func() {
		s.logger.Info("Running scheduled job", slog.String("job", job.Name()))

		if err := job.Run(context.Background()); err != nil {
			s.logger.Error("Scheduled job failed",
				slog.String("job", job.Name()),
				slog.Any("error", err),
			)

			return
		}

		s.logger.Info("Scheduled job finished", slog.String("job", job.Name()))
	}
}

// stop halts the cron loop and waits for any in-flight job run.
func (s *cronScheduler) stop(ctx context.Context) error {
	s.logger.Info("Shutting down cron scheduler")

	stopCtx := s.runner.Stop()
	close(s.done)

	select {
	case <-stopCtx.Done():
		return nil
	case <-ctx.Done():
		return errors.WithStack(ctx.Err())
	}
}
