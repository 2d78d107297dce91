package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"trading/internal/domain/entity"
	domainerrors "trading/internal/domain/errors"
	"trading/internal/domain/repository"
	"trading/internal/mocks"
	"trading/internal/usecase"
)

type userServiceMocks struct {
	userRepo *mocks.UserRepository
	hasher   *mocks.PasswordHasher
	tokens   *mocks.TokenService
}

func newUserService(t *testing.T) (usecase.UserUsecase, *userServiceMocks) {
	t.Helper()

	m := &userServiceMocks{
		userRepo: new(mocks.UserRepository),
		hasher:   new(mocks.PasswordHasher),
		tokens:   new(mocks.TokenService),
	}

	svc := NewUserService(UserServiceParams{
		UserRepo: m.userRepo,
		Hasher:   m.hasher,
		Tokens:   m.tokens,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return svc, m
}

func TestRegister(t *testing.T) {
	svc, m := newUserService(t)

	m.hasher.On("Hash", "s3cret").Return("hashed", nil)
	m.userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
		return u.Username == "clerk" &&
			u.PasswordHash == "hashed" &&
			u.Role == entity.RoleUser &&
			u.Active
	})).Return(nil)

	out, err := svc.Register(context.Background(), usecase.RegisterInput{
		Username: "clerk",
		Email:    "clerk@example.com",
		Password: "s3cret",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, out.User.Role)
}

func TestLogin_Success(t *testing.T) {
	svc, m := newUserService(t)

	user := &entity.User{
		ID:           uuid.New(),
		Username:     "clerk",
		PasswordHash: "hashed",
		Role:         entity.RoleUser,
		Active:       true,
	}

	m.userRepo.On("FindByUsername", mock.Anything, "clerk").Return(user, nil)
	m.hasher.On("Check", "s3cret", "hashed").Return(true)
	m.tokens.On("GenerateToken", user.ID, "clerk", entity.RoleUser).Return("token-123", nil)

	out, err := svc.Login(context.Background(), usecase.LoginInput{Username: "clerk", Password: "s3cret"})

	require.NoError(t, err)
	assert.Equal(t, "token-123", out.AccessToken)
	assert.Equal(t, user, out.User)
}

func TestLogin_BadCredentials(t *testing.T) {
	svc, m := newUserService(t)

	user := &entity.User{ID: uuid.New(), Username: "clerk", PasswordHash: "hashed", Active: true}

	m.userRepo.On("FindByUsername", mock.Anything, "clerk").Return(user, nil)
	m.userRepo.On("FindByUsername", mock.Anything, "ghost").Return(nil, repository.ErrUserNotFound)
	m.hasher.On("Check", "wrong", "hashed").Return(false)

	// Unknown username and wrong password must be indistinguishable.
	_, err := svc.Login(context.Background(), usecase.LoginInput{Username: "ghost", Password: "s3cret"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), usecase.LoginInput{Username: "clerk", Password: "wrong"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestLogin_InactiveAccount(t *testing.T) {
	svc, m := newUserService(t)

	user := &entity.User{ID: uuid.New(), Username: "clerk", PasswordHash: "hashed", Active: false}

	m.userRepo.On("FindByUsername", mock.Anything, "clerk").Return(user, nil)
	m.hasher.On("Check", "s3cret", "hashed").Return(true)

	_, err := svc.Login(context.Background(), usecase.LoginInput{Username: "clerk", Password: "s3cret"})
	assert.ErrorIs(t, err, domainerrors.ErrUserInactive)
}

func TestUpdateRole(t *testing.T) {
	svc, m := newUserService(t)

	user := &entity.User{ID: uuid.New(), Username: "clerk", Role: entity.RoleUser}
	m.userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	m.userRepo.On("Update", mock.Anything, user).Return(nil)

	updated, err := svc.UpdateRole(context.Background(), user.ID, entity.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, updated.Role)

	_, err = svc.UpdateRole(context.Background(), user.ID, entity.Role("SUPERUSER"))
	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_FAILED", appErr.ErrorCode())
}

func TestSetActive(t *testing.T) {
	svc, m := newUserService(t)

	user := &entity.User{ID: uuid.New(), Username: "clerk", Active: true}
	m.userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	m.userRepo.On("Update", mock.Anything, user).Return(nil)

	updated, err := svc.SetActive(context.Background(), user.ID, false)
	require.NoError(t, err)
	assert.False(t, updated.Active)
}

func TestEnsureAdmin_SeedsWhenMissing(t *testing.T) {
	svc, m := newUserService(t)

	m.userRepo.On("CountAdmins", mock.Anything).Return(int64(0), nil)
	m.hasher.On("Hash", bootstrapAdminPassword).Return("hashed", nil)
	m.userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
		return u.Username == bootstrapAdminUsername &&
			u.Role == entity.RoleAdmin &&
			u.Active
	})).Return(nil)

	require.NoError(t, svc.EnsureAdmin(context.Background()))
	m.userRepo.AssertExpectations(t)
}

func TestEnsureAdmin_SkipsWhenAdminExists(t *testing.T) {
	svc, m := newUserService(t)

	m.userRepo.On("CountAdmins", mock.Anything).Return(int64(1), nil)

	require.NoError(t, svc.EnsureAdmin(context.Background()))
	m.userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
