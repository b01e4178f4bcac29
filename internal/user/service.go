package user

import (
	"context"
	"strings"
	"time"

	"storefront-be/internal/apperror"
	"storefront-be/internal/auth"
	"storefront-be/internal/logger"
	"storefront-be/internal/notification"
	"storefront-be/internal/validation"

	"go.uber.org/zap"
)

type Service interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, input LoginInput) (*AuthResult, error)
	GetByID(ctx context.Context, id uint) (*User, error)
	Recipient(ctx context.Context, userID uint) (notification.Recipient, error)
}

type service struct {
	repo     Repository
	secret   string
	tokenTTL time.Duration
}

func NewService(repo Repository, jwtSecret string, tokenTTL time.Duration) Service {
	return &service{repo: repo, secret: jwtSecret, tokenTTL: tokenTTL}
}

func (s *service) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Register"),
	)

	input = input.normalized()
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	hashed, err := auth.HashPassword(input.Password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return nil, apperror.Internal(err, "Failed to register user")
	}

	u := &User{Name: input.Name, Email: input.Email, Password: hashed}
	if err := s.repo.Create(ctx, u); err != nil {
		if apperror.Is(err, apperror.KindValidation) {
			log.Warn("email already registered", zap.String("email", input.Email))
			return nil, err
		}
		return nil, apperror.Internal(err, "Failed to register user")
	}

	res, err := s.issue(u)
	if err != nil {
		log.Error("failed to generate jwt", zap.Uint("user_id", u.ID), zap.Error(err))
		return nil, err
	}

	log.Info("register service completed",
		zap.Uint("user_id", u.ID),
		zap.String("email", u.Email),
	)
	return res, nil
}

func (s *service) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Login"),
	)

	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	u, err := s.repo.FindByEmail(ctx, input.Email)
	if err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			log.Warn("email not found")
			return nil, ErrInvalidCredentials
		}
		return nil, apperror.Internal(err, "Failed to login")
	}

	if !auth.CheckPasswordHash(input.Password, u.Password) {
		log.Warn("password does not match", zap.Uint("user_id", u.ID))
		return nil, ErrInvalidCredentials
	}

	return s.issue(u)
}

func (s *service) issue(u *User) (*AuthResult, error) {
	token, err := auth.GenerateJWT(s.secret, u.ID, u.Email, u.Role, s.tokenTTL)
	if err != nil {
		return nil, apperror.Internal(err, "Failed to issue token")
	}
	return &AuthResult{Token: token, User: u}, nil
}

func (s *service) GetByID(ctx context.Context, id uint) (*User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return nil, err
		}
		return nil, apperror.Internal(err, "Failed to load user")
	}
	return u, nil
}

// Recipient resolves the name and address order emails are sent to.
func (s *service) Recipient(ctx context.Context, userID uint) (notification.Recipient, error) {
	u, err := s.GetByID(ctx, userID)
	if err != nil {
		return notification.Recipient{}, err
	}
	return notification.Recipient{Name: u.Name, Email: u.Email}, nil
}
