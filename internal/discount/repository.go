package discount

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"storefront-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	GetActive(ctx context.Context) (*MaxDiscount, error)
	Upsert(ctx context.Context, m *MaxDiscount) (*MaxDiscount, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetActive(ctx context.Context) (*MaxDiscount, error) {
	query := `
		SELECT value, description, is_active, updated_at
		FROM max_discount
		WHERE is_active = TRUE
		LIMIT 1
	`

	var m MaxDiscount
	var updatedAt sql.NullTime
	err := r.db.QueryRowContext(ctx, query).Scan(&m.Value, &m.Description, &m.IsActive, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoActivePolicy
	}
	if err != nil {
		logger.FromCtx(ctx).Error("failed to query max discount", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrFailedGetPolicy, err)
	}

	if updatedAt.Valid {
		m.UpdatedAt = &updatedAt.Time
	}
	return &m, nil
}

// Upsert writes the singleton row, creating it on first use.
func (r *repository) Upsert(ctx context.Context, m *MaxDiscount) (*MaxDiscount, error) {
	query := `
		INSERT INTO max_discount (id, value, description, is_active, updated_at)
		VALUES (1, $1, $2, $3, NOW())
		ON CONFLICT (id) DO UPDATE SET
			value = EXCLUDED.value,
			description = EXCLUDED.description,
			is_active = EXCLUDED.is_active,
			updated_at = EXCLUDED.updated_at
		RETURNING value, description, is_active, updated_at
	`

	var out MaxDiscount
	var updatedAt time.Time
	err := r.db.QueryRowContext(ctx, query, m.Value, m.Description, m.IsActive).
		Scan(&out.Value, &out.Description, &out.IsActive, &updatedAt)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to upsert max discount", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrFailedUpsertPolicy, err)
	}

	out.UpdatedAt = &updatedAt
	return &out, nil
}
