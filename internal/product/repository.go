package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"storefront-be/internal/logger"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context) ([]*Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Product, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*Product, error)
	Create(ctx context.Context, p *Product) (*Product, error)
	Update(ctx context.Context, id uuid.UUID, patch Patch) (*Product, error)
	UpdateDiscount(ctx context.Context, id uuid.UUID, discount decimal.Decimal) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productColumns = `
	id, name, description, price, discount,
	category, sub_category, fabric, occasion, fit, color,
	images, sizes, bestseller, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*Product, error) {
	var p Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.Discount,
		&p.Category, &p.SubCategory, &p.Fabric, &p.Occasion, &p.Fit, &p.Color,
		pq.Array(&p.Images), pq.Array(&p.Sizes), &p.Bestseller, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) queryProducts(ctx context.Context, query string, args ...any) ([]*Product, error) {
	log := logger.FromCtx(ctx)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("DB query failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrFailedGetProduct, err)
	}
	defer rows.Close()

	products := []*Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			log.Error("Row scan failed", zap.Error(err))
			return nil, fmt.Errorf("%w: %v", ErrFailedGetProduct, err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		log.Error("Rows iteration failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrFailedGetProduct, err)
	}

	return products, nil
}

func (r *repository) List(ctx context.Context) ([]*Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC`
	return r.queryProducts(ctx, query)
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("failed to get product", zap.String("product_id", id.String()), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrFailedGetProduct, err)
	}
	return p, nil
}

// GetByIDs loads every listed product in one query. Missing ids are simply
// absent from the result.
func (r *repository) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*Product, error) {
	out := make(map[uuid.UUID]*Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	strIDs := make([]string, len(ids))
	for i, id := range ids {
		strIDs[i] = id.String()
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE id = ANY($1::uuid[])`
	products, err := r.queryProducts(ctx, query, pq.Array(strIDs))
	if err != nil {
		return nil, err
	}

	for _, p := range products {
		out[p.ID] = p
	}
	return out, nil
}

func (r *repository) Create(ctx context.Context, p *Product) (*Product, error) {
	query := `
		INSERT INTO products (
			id, name, description, price, discount,
			category, sub_category, fabric, occasion, fit, color,
			images, sizes, bestseller
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		p.ID, p.Name, p.Description, p.Price, p.Discount,
		p.Category, p.SubCategory, p.Fabric, p.Occasion, p.Fit, p.Color,
		pq.Array(p.Images), pq.Array(p.Sizes), p.Bestseller,
	).Scan(&p.CreatedAt)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to insert product", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrFailedSaveProduct, err)
	}

	return p, nil
}

// Update writes only the columns in patch and returns the updated row.
func (r *repository) Update(ctx context.Context, id uuid.UUID, patch Patch) (*Product, error) {
	if len(patch.Columns) == 0 {
		return r.GetByID(ctx, id)
	}

	sets := make([]string, len(patch.Columns))
	args := make([]any, 0, len(patch.Values)+1)
	for i, col := range patch.Columns {
		sets[i] = fmt.Sprintf("%s = $%d", col, i+1)
		args = append(args, patch.Values[i])
	}
	args = append(args, id)

	query := fmt.Sprintf(
		`UPDATE products SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), productColumns,
	)

	logger.FromCtx(ctx).Debug("Executing product update",
		zap.String("product_id", id.String()),
		zap.Strings("columns", patch.Columns),
	)

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("failed to update product", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrFailedSaveProduct, err)
	}
	return p, nil
}

func (r *repository) UpdateDiscount(ctx context.Context, id uuid.UUID, discount decimal.Decimal) error {
	res, err := r.db.ExecContext(ctx, `UPDATE products SET discount = $1 WHERE id = $2`, discount, id)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to update discount", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrFailedSaveProduct, err)
	}
	return expectOneRow(res)
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to delete product", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrFailedDeleteProduct, err)
	}
	return expectOneRow(res)
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrProductNotFound
	}
	return nil
}
