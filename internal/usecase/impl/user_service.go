package impl

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"go.uber.org/fx"

	"trading/internal/domain/entity"
	domainerrors "trading/internal/domain/errors"
	"trading/internal/domain/repository"
	"trading/internal/domain/service"
	"trading/internal/errors"
	"trading/internal/usecase"
)

// Default admin account seeded when the user table holds no admin at all.
// The password is meant to be changed on first login.
const (
	bootstrapAdminUsername = "admin"
	bootstrapAdminPassword = "admin123"
	bootstrapAdminEmail    = "admin@localhost"
)

type userService struct {
	userRepo repository.UserRepository
	hasher   service.PasswordHasher
	tokens   service.TokenService
	logger   *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	UserRepo repository.UserRepository
	Hasher   service.PasswordHasher
	Tokens   service.TokenService
	Logger   *slog.Logger
}

// NewUserService creates a new user service instance
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		userRepo: params.UserRepo,
		hasher:   params.Hasher,
		tokens:   params.Tokens,
		logger:   params.Logger,
	}
}

// Register creates a new active account with the USER role.
func (s *userService) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage("hash password")
	}

	user := &entity.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         entity.RoleUser,
		Active:       true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User registered",
		slog.String("userId", user.ID.String()),
		slog.String("username", user.Username),
	)

	return &usecase.RegisterOutput{User: user}, nil
}

// Login authenticates a user and issues an access token. Unknown usernames
// and wrong passwords fail identically so the response never reveals which
// accounts exist.
func (s *userService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error) {
	user, err := s.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	if !s.hasher.Check(input.Password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	if !user.Active {
		return nil, domainerrors.ErrUserInactive
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate access token")
	}

	return &usecase.LoginOutput{
		AccessToken: token,
		User:        user,
	}, nil
}

// ListUsers returns every account.
func (s *userService) ListUsers(ctx context.Context) ([]*entity.User, error) {
	return s.userRepo.FindAll(ctx)
}

// UpdateRole sets an account's role.
func (s *userService) UpdateRole(ctx context.Context, userID uuid.UUID, role entity.Role) (*entity.User, error) {
	if !role.Valid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown role")
	}

	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Role = role
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User role updated",
		slog.String("userId", user.ID.String()),
		slog.String("role", string(user.Role)),
	)

	return user, nil
}

// SetActive enables or disables an account.
func (s *userService) SetActive(ctx context.Context, userID uuid.UUID, active bool) (*entity.User, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Active = active
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User active flag updated",
		slog.String("userId", user.ID.String()),
		slog.Bool("active", user.Active),
	)

	return user, nil
}

// EnsureAdmin seeds the default admin account when no admin exists yet, so a
// fresh deployment is never locked out.
func (s *userService) EnsureAdmin(ctx context.Context) error {
	count, err := s.userRepo.CountAdmins(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to count admin accounts")
	}
	if count > 0 {
		return nil
	}

	hash, err := s.hasher.Hash(bootstrapAdminPassword)
	if err != nil {
		return domainerrors.ErrPasswordHashFailed.WrapMessage("hash bootstrap admin password")
	}

	admin := &entity.User{
		Username:     bootstrapAdminUsername,
		Email:        bootstrapAdminEmail,
		PasswordHash: hash,
		Role:         entity.RoleAdmin,
		Active:       true,
	}

	if err := s.userRepo.Create(ctx, admin); err != nil {
		return errors.Wrap(err, "failed to seed admin account")
	}

	s.logger.Warn("Seeded default admin account, change its password immediately",
		slog.String("username", bootstrapAdminUsername),
	)

	return nil
}

func (s *userService) findUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	return user, nil
}
