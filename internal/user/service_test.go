package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront-be/internal/apperror"
	"storefront-be/internal/auth"
	"storefront-be/internal/notification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, u *User) error {
	args := m.Called(ctx, u)
	if fn, ok := args.Get(1).(func(*User)); ok {
		fn(u)
	}
	return args.Error(0)
}

func (m *MockRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) FindByID(ctx context.Context, id uint) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

const testSecret = "test-secret"

func TestService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, testSecret, time.Hour)

		repo.On("Create", mock.Anything, mock.MatchedBy(func(u *User) bool {
			return u.Email == "asha@example.com" && u.Name == "Asha" && auth.CheckPasswordHash("longenough", u.Password)
		})).Return(nil, func(u *User) { u.ID = 5; u.Role = "USER" })

		res, err := svc.Register(ctx, RegisterInput{Name: " Asha ", Email: " Asha@Example.com ", Password: "longenough"})
		require.NoError(t, err)
		assert.Equal(t, uint(5), res.User.ID)

		claims, err := auth.ParseJWT(testSecret, res.Token)
		require.NoError(t, err)
		assert.Equal(t, uint(5), claims.UserID)
		assert.Equal(t, "USER", claims.Role)
	})

	t.Run("ShortPassword", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, testSecret, time.Hour)

		_, err := svc.Register(ctx, RegisterInput{Name: "Asha", Email: "asha@example.com", Password: "short"})
		assert.True(t, apperror.Is(err, apperror.KindValidation))
		assert.Equal(t, "password must be at least 8", apperror.PublicMessage(err))
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("InvalidEmail", func(t *testing.T) {
		svc := NewService(new(MockRepository), testSecret, time.Hour)

		_, err := svc.Register(ctx, RegisterInput{Name: "Asha", Email: "not-an-email", Password: "longenough"})
		assert.Equal(t, "email must be a valid email", apperror.PublicMessage(err))
	})

	t.Run("EmailExists", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, testSecret, time.Hour)
		repo.On("Create", mock.Anything, mock.Anything).Return(ErrEmailExists, nil)

		_, err := svc.Register(ctx, RegisterInput{Name: "Asha", Email: "asha@example.com", Password: "longenough"})
		assert.ErrorIs(t, err, ErrEmailExists)
	})

	t.Run("DBError", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, testSecret, time.Hour)
		repo.On("Create", mock.Anything, mock.Anything).Return(ErrFailedCreateUser, nil)

		_, err := svc.Register(ctx, RegisterInput{Name: "Asha", Email: "asha@example.com", Password: "longenough"})
		assert.True(t, apperror.Is(err, apperror.KindInternal))
	})
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()
	hash, err := auth.HashPassword("longenough")
	require.NoError(t, err)
	stored := &User{ID: 9, Name: "Admin", Email: "admin@example.com", Password: hash, Role: "ADMIN"}

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, testSecret, time.Hour)
		repo.On("FindByEmail", mock.Anything, "admin@example.com").Return(stored, nil)

		res, err := svc.Login(ctx, LoginInput{Email: "ADMIN@example.com", Password: "longenough"})
		require.NoError(t, err)

		claims, err := auth.ParseJWT(testSecret, res.Token)
		require.NoError(t, err)
		assert.Equal(t, "ADMIN", claims.Role)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, testSecret, time.Hour)
		repo.On("FindByEmail", mock.Anything, "admin@example.com").Return(stored, nil)

		_, err := svc.Login(ctx, LoginInput{Email: "admin@example.com", Password: "nope"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, testSecret, time.Hour)
		repo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, ErrUserNotFound)

		_, err := svc.Login(ctx, LoginInput{Email: "ghost@example.com", Password: "whatever"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.True(t, apperror.Is(err, apperror.KindUnauthorized))
	})

	t.Run("MissingSecret", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, "", time.Hour)
		repo.On("FindByEmail", mock.Anything, "admin@example.com").Return(stored, nil)

		_, err := svc.Login(ctx, LoginInput{Email: "admin@example.com", Password: "longenough"})
		assert.ErrorIs(t, err, auth.ErrMissingSecret)
	})
}

func TestService_Recipient(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, testSecret, time.Hour)
		repo.On("FindByID", mock.Anything, uint(3)).Return(&User{ID: 3, Name: "Asha", Email: "asha@example.com"}, nil)

		r, err := svc.Recipient(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, notification.Recipient{Name: "Asha", Email: "asha@example.com"}, r)
	})

	t.Run("DBError", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, testSecret, time.Hour)
		repo.On("FindByID", mock.Anything, uint(3)).Return(nil, errors.New("timeout"))

		_, err := svc.Recipient(ctx, 3)
		assert.True(t, apperror.Is(err, apperror.KindInternal))
	})
}
