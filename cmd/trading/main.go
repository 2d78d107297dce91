package main

import (
	"context"
	"log/slog"
	"os"

	"trading/config"
	"trading/internal/delivery"
	"trading/internal/delivery/http"
	"trading/internal/delivery/http/middleware"
	"trading/internal/delivery/http/router/handler"
	"trading/internal/delivery/scheduler"
	"trading/internal/infra/auth"
	"trading/internal/infra/cache"
	"trading/internal/infra/invoiceapi"
	logs "trading/internal/infra/log"
	"trading/internal/infra/persistence/postgres"
	"trading/internal/usecase"
	"trading/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			seedAdmin,
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewCustomerRepository,
			postgres.NewProductRepository,
			postgres.NewOrderRepository,
			postgres.NewUserRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			cache.NewMemoryCache,
			invoiceapi.NewClient,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewUserService,
			impl.NewCustomerService,
			impl.NewProductService,
			impl.NewOrderService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewUserHandler,
			handler.NewAdminUserHandler,
			handler.NewCustomerHandler,
			handler.NewProductHandler,
			handler.NewOrderHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
			fx.Annotate(
				scheduler.NewScheduler,
				fx.ResultTags(`group:"deliveries"`),
			),
			fx.Annotate(
				scheduler.NewLowStockJob,
				fx.ResultTags(`group:"cron-jobs"`),
			),
			fx.Annotate(
				scheduler.NewCacheFlushJob,
				fx.ResultTags(`group:"cron-jobs"`),
			),
		),
	)
}

// seedAdmin guarantees an admin account exists before the server takes
// traffic.
func seedAdmin(ctx context.Context, users usecase.UserUsecase) error {
	return users.EnsureAdmin(ctx)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
