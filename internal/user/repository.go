package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storefront-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, u *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// Create inserts u and fills in the generated id, role and creation time.
func (r *repository) Create(ctx context.Context, u *User) error {
	err := r.db.QueryRowContext(ctx,
		"INSERT INTO users (name, email, password) VALUES ($1, $2, $3) RETURNING id, role, created_at",
		u.Name, u.Email, u.Password,
	).Scan(&u.ID, &u.Role, &u.CreatedAt)
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == PgUniqueViolation {
		return ErrEmailExists
	}

	logger.FromCtx(ctx).Error("db: failed to insert user",
		zap.String("email", u.Email),
		zap.Error(err),
	)
	return fmt.Errorf("%w: %v", ErrFailedCreateUser, err)
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	return r.findOne(ctx, "SELECT id, name, email, password, role, created_at FROM users WHERE email = $1", email)
}

func (r *repository) FindByID(ctx context.Context, id uint) (*User, error) {
	return r.findOne(ctx, "SELECT id, name, email, password, role, created_at FROM users WHERE id = $1", id)
}

func (r *repository) findOne(ctx context.Context, query string, arg any) (*User, error) {
	var u User
	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Role, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to get user", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrFailedGetUser, err)
	}
	return &u, nil
}
