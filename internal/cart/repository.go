package cart

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storefront-be/internal/logger"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	Increment(ctx context.Context, userID uint, productID uuid.UUID, size, color string) error
	SetQuantity(ctx context.Context, userID uint, line Line) error
	Remove(ctx context.Context, userID uint, line Line) error
	List(ctx context.Context, userID uint) ([]Line, error)
	Clear(ctx context.Context, userID uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// Increment adds one unit of the variant, creating the line if needed.
func (r *repository) Increment(ctx context.Context, userID uint, productID uuid.UUID, size, color string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cart_items (user_id, product_id, size, color, quantity)
		VALUES ($1, $2, $3, $4, 1)
		ON CONFLICT (user_id, product_id, size, color)
		DO UPDATE SET quantity = cart_items.quantity + 1
	`, userID, productID, size, color)
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == PgForeignKeyViolation {
		return ErrProductNotFound
	}
	logger.FromCtx(ctx).Error("failed to add cart item", zap.Uint("user_id", userID), zap.Error(err))
	return fmt.Errorf("%w: %v", ErrFailedUpdateCart, err)
}

func (r *repository) SetQuantity(ctx context.Context, userID uint, line Line) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE cart_items SET quantity = $1
		WHERE user_id = $2 AND product_id = $3 AND size = $4 AND color = $5
	`, line.Quantity, userID, line.ProductID, line.Size, line.Color)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to update cart item", zap.Uint("user_id", userID), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrFailedUpdateCart, err)
	}
	return expectRow(res)
}

func (r *repository) Remove(ctx context.Context, userID uint, line Line) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM cart_items
		WHERE user_id = $1 AND product_id = $2 AND size = $3 AND color = $4
	`, userID, line.ProductID, line.Size, line.Color)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to remove cart item", zap.Uint("user_id", userID), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrFailedUpdateCart, err)
	}
	return expectRow(res)
}

func (r *repository) List(ctx context.Context, userID uint) ([]Line, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT product_id, size, color, quantity
		FROM cart_items
		WHERE user_id = $1
		ORDER BY product_id, size, color
	`, userID)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to list cart", zap.Uint("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrFailedGetCart, err)
	}
	defer rows.Close()

	lines := []Line{}
	for rows.Next() {
		var l Line
		if err := rows.Scan(&l.ProductID, &l.Size, &l.Color, &l.Quantity); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFailedGetCart, err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedGetCart, err)
	}
	return lines, nil
}

// Clear empties the cart. Clearing an empty cart is not an error.
func (r *repository) Clear(ctx context.Context, userID uint) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID); err != nil {
		logger.FromCtx(ctx).Error("failed to clear cart", zap.Uint("user_id", userID), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrFailedClearCart, err)
	}
	return nil
}

func expectRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFailedUpdateCart, err)
	}
	if n == 0 {
		return ErrCartItemNotFound
	}
	return nil
}
