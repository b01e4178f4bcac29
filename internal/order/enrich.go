package order

import (
	"context"
	"strings"

	"storefront-be/internal/apperror"
	"storefront-be/internal/pricing"
	"storefront-be/internal/product"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductLookup loads products by id in one call. Unknown ids are absent
// from the returned map.
type ProductLookup interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*product.Product, error)
}

// Snapshot copies what an order keeps of a product, priced under policy.
func Snapshot(p *product.Product, policy pricing.Policy, quantity int, size string) Item {
	return Item{
		ProductID:  p.ID,
		Name:       p.Name,
		Price:      p.Price,
		FinalPrice: p.Quote(policy).FinalPrice,
		Quantity:   quantity,
		Size:       size,
		Image:      p.FirstImage(),
	}
}

// Enrich turns cart lines into priced order items and their total. Every line
// is checked before any product is looked up, and one missing product fails
// the whole call. All lines are priced under the same policy value.
func Enrich(ctx context.Context, lines []Line, lookup ProductLookup, policy pricing.Policy) ([]Item, decimal.Decimal, error) {
	if len(lines) == 0 {
		return nil, decimal.Zero, ErrEmptyCart
	}

	ids := make([]uuid.UUID, len(lines))
	unique := make([]uuid.UUID, 0, len(lines))
	seen := make(map[uuid.UUID]bool, len(lines))
	for i, l := range lines {
		if strings.TrimSpace(l.ProductID) == "" || l.Quantity < 1 || strings.TrimSpace(l.Size) == "" {
			return nil, decimal.Zero, ErrInvalidLine
		}

		id, err := product.ParseID(l.ProductID)
		if err != nil {
			return nil, decimal.Zero, err
		}
		ids[i] = id
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}

	products, err := lookup.GetByIDs(ctx, unique)
	if err != nil {
		return nil, decimal.Zero, apperror.Internal(err, "Failed to load products")
	}

	items := make([]Item, len(lines))
	for i, l := range lines {
		p, ok := products[ids[i]]
		if !ok {
			return nil, decimal.Zero, apperror.NotFound("Product not found: %s", l.ProductID)
		}
		items[i] = Snapshot(p, policy, l.Quantity, strings.TrimSpace(l.Size))
	}

	return items, RecomputeAmount(items), nil
}
