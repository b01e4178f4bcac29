package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"storefront-be/internal/logger"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*Order, error)
	List(ctx context.Context, filter ListFilter) ([]*Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, patch StatusPatch) error
	UpdateDetails(ctx context.Context, o *Order) error
}

// ListFilter narrows List. A nil UserID lists every order with its customer.
type ListFilter struct {
	UserID *uint
}

// StatusPatch holds the header fields a status update may set.
type StatusPatch struct {
	Status            *Status
	EstimatedDelivery *string
}

func (p StatusPatch) Empty() bool {
	return p.Status == nil && p.EstimatedDelivery == nil
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const orderColumns = `
	o.id, o.user_id, o.amount,
	o.name, o.phone, o.street, o.city, o.state, o.pincode, o.country,
	o.status, o.payment_method, o.payment, o.estimated_delivery, o.created_at`

const openStatusGuard = `status NOT IN ('Delivered', 'Cancelled')`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner, extra ...any) (*Order, error) {
	var o Order
	dest := []any{
		&o.ID, &o.UserID, &o.Amount,
		&o.Address.Name, &o.Address.Phone, &o.Address.Street, &o.Address.City,
		&o.Address.State, &o.Address.Pincode, &o.Address.Country,
		&o.Status, &o.PaymentMethod, &o.Payment, &o.EstimatedDelivery, &o.CreatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	o.Items = []Item{}
	return &o, nil
}

// Create inserts the order and its items in one transaction.
func (r *repository) Create(ctx context.Context, o *Order) error {
	log := logger.FromCtx(ctx).With(zap.String("order_id", o.ID.String()))

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin tx", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrFailedSaveOrder, err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (
			id, user_id, amount,
			name, phone, street, city, state, pincode, country,
			status, payment_method, payment, estimated_delivery, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
	`,
		o.ID, o.UserID, o.Amount,
		o.Address.Name, o.Address.Phone, o.Address.Street, o.Address.City,
		o.Address.State, o.Address.Pincode, o.Address.Country,
		o.Status, o.PaymentMethod, o.Payment, o.EstimatedDelivery, o.CreatedAt,
	)
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrFailedSaveOrder, err)
	}

	for i, it := range o.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (
				order_id, position, product_id, name,
				price, final_price, quantity, size, image
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		`,
			o.ID, i, it.ProductID, it.Name,
			it.Price, it.FinalPrice, it.Quantity, it.Size, it.Image,
		)
		if err != nil {
			log.Error("failed to insert order item", zap.Int("position", i), zap.Error(err))
			return fmt.Errorf("%w: %v", ErrFailedSaveOrder, err)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit order", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrFailedSaveOrder, err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders o WHERE o.id = $1`

	o, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("failed to get order", zap.String("order_id", id.String()), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrFailedGetOrder, err)
	}

	if err := r.attachItems(ctx, []*Order{o}); err != nil {
		return nil, err
	}
	return o, nil
}

// List returns orders newest first. Items are loaded with a second query
// for all listed orders at once.
func (r *repository) List(ctx context.Context, filter ListFilter) ([]*Order, error) {
	log := logger.FromCtx(ctx)

	var (
		query string
		args  []any
	)
	if filter.UserID != nil {
		query = `SELECT ` + orderColumns + ` FROM orders o WHERE o.user_id = $1 ORDER BY o.created_at DESC`
		args = append(args, *filter.UserID)
	} else {
		query = `SELECT ` + orderColumns + `, u.name, u.email
			FROM orders o
			LEFT JOIN users u ON u.id = o.user_id
			ORDER BY o.created_at DESC`
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("DB query failed ListOrders", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrFailedGetOrder, err)
	}
	defer rows.Close()

	orders := []*Order{}
	for rows.Next() {
		var (
			o   *Order
			err error
		)
		if filter.UserID != nil {
			o, err = scanOrder(rows)
		} else {
			var name, email sql.NullString
			o, err = scanOrder(rows, &name, &email)
			if err == nil {
				o.Customer = &Customer{Name: name.String, Email: email.String}
			}
		}
		if err != nil {
			log.Error("Row scan failed", zap.Error(err))
			return nil, fmt.Errorf("%w: %v", ErrFailedGetOrder, err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		log.Error("Rows iteration failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrFailedGetOrder, err)
	}

	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repository) attachItems(ctx context.Context, orders []*Order) error {
	if len(orders) == 0 {
		return nil
	}

	byID := make(map[uuid.UUID]*Order, len(orders))
	ids := make([]string, len(orders))
	for i, o := range orders {
		byID[o.ID] = o
		ids[i] = o.ID.String()
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT order_id, product_id, name, price, final_price, quantity, size, image
		FROM order_items
		WHERE order_id = ANY($1::uuid[])
		ORDER BY order_id, position
	`, pq.Array(ids))
	if err != nil {
		logger.FromCtx(ctx).Error("failed to load order items", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrFailedGetOrder, err)
	}
	defer rows.Close()

	for rows.Next() {
		var orderID uuid.UUID
		var it Item
		if err := rows.Scan(&orderID, &it.ProductID, &it.Name, &it.Price, &it.FinalPrice, &it.Quantity, &it.Size, &it.Image); err != nil {
			return fmt.Errorf("%w: %v", ErrFailedGetOrder, err)
		}
		if o, ok := byID[orderID]; ok {
			o.Items = append(o.Items, it)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedGetOrder, err)
	}
	return nil
}

// UpdateStatus writes the patch unless the order is already closed.
func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, patch StatusPatch) error {
	var (
		sets []string
		args []any
	)
	if patch.Status != nil {
		args = append(args, *patch.Status)
		sets = append(sets, fmt.Sprintf("status = $%d", len(args)))
	}
	if patch.EstimatedDelivery != nil {
		args = append(args, *patch.EstimatedDelivery)
		sets = append(sets, fmt.Sprintf("estimated_delivery = $%d", len(args)))
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE orders SET %s WHERE id = $%d AND %s`,
		strings.Join(sets, ", "), len(args), openStatusGuard)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to update order status", zap.String("order_id", id.String()), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrFailedSaveOrder, err)
	}
	return expectOneRow(res)
}

// UpdateDetails writes the address, amount and every item of o in one
// transaction, so amount and items are never seen out of step.
func (r *repository) UpdateDetails(ctx context.Context, o *Order) error {
	log := logger.FromCtx(ctx).With(zap.String("order_id", o.ID.String()))

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin tx", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrFailedSaveOrder, err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE orders SET
			name = $1, phone = $2, street = $3, city = $4,
			state = $5, pincode = $6, country = $7, amount = $8
		WHERE id = $9 AND `+openStatusGuard,
		o.Address.Name, o.Address.Phone, o.Address.Street, o.Address.City,
		o.Address.State, o.Address.Pincode, o.Address.Country, o.Amount, o.ID,
	)
	if err != nil {
		log.Error("failed to update order", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrFailedSaveOrder, err)
	}
	if err := expectOneRow(res); err != nil {
		return err
	}

	for i, it := range o.Items {
		_, err := tx.ExecContext(ctx, `
			UPDATE order_items SET
				quantity = $1, size = $2, price = $3, final_price = $4
			WHERE order_id = $5 AND position = $6
		`, it.Quantity, it.Size, it.Price, it.FinalPrice, o.ID, i)
		if err != nil {
			log.Error("failed to update order item", zap.Int("position", i), zap.Error(err))
			return fmt.Errorf("%w: %v", ErrFailedSaveOrder, err)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit order update", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrFailedSaveOrder, err)
	}
	return nil
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFailedSaveOrder, err)
	}
	if n == 0 {
		return ErrOrderClosed
	}
	return nil
}
