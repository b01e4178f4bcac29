package wishlist

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
	// Toggle removes the product if present and adds it otherwise. It
	// reports whether the product was added.
	Toggle(ctx context.Context, userID uint, productID uuid.UUID) (bool, error)
	ProductIDs(ctx context.Context, userID uint) ([]uuid.UUID, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Toggle(ctx context.Context, userID uint, productID uuid.UUID) (bool, error) {
	log := logger.FromCtx(ctx).With(zap.Uint("user_id", userID), zap.String("product_id", productID.String()))

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin tx", zap.Error(err))
		return false, fmt.Errorf("%w: %v", ErrFailedUpdateWishlist, err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`DELETE FROM wishlist_items WHERE user_id = $1 AND product_id = $2`,
		userID, productID,
	)
	if err != nil {
		log.Error("failed to remove wishlist item", zap.Error(err))
		return false, fmt.Errorf("%w: %v", ErrFailedUpdateWishlist, err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrFailedUpdateWishlist, err)
	}

	if removed == 0 {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO wishlist_items (user_id, product_id) VALUES ($1, $2)`,
			userID, productID,
		)
		if err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && string(pqErr.Code) == PgForeignKeyViolation {
				return false, ErrProductNotFound
			}
			log.Error("failed to add wishlist item", zap.Error(err))
			return false, fmt.Errorf("%w: %v", ErrFailedUpdateWishlist, err)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit wishlist toggle", zap.Error(err))
		return false, fmt.Errorf("%w: %v", ErrFailedUpdateWishlist, err)
	}
	return removed == 0, nil
}

// ProductIDs lists the wishlisted products, oldest first.
func (r *repository) ProductIDs(ctx context.Context, userID uint) ([]uuid.UUID, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT product_id FROM wishlist_items WHERE user_id = $1 ORDER BY created_at`,
		userID,
	)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to list wishlist", zap.Uint("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrFailedGetWishlist, err)
	}
	defer rows.Close()

	ids := []uuid.UUID{}
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFailedGetWishlist, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedGetWishlist, err)
	}
	return ids, nil
}
