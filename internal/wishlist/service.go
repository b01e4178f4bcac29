package wishlist

import (
	"context"

	"storefront-be/internal/apperror"
	"storefront-be/internal/logger"
	"storefront-be/internal/product"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ProductLookup interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*product.Product, error)
}

// Pricer attaches computed prices under the current discount policy.
type Pricer interface {
	PriceAll(ctx context.Context, products []*product.Product) ([]*product.Priced, error)
}

type Service interface {
	Toggle(ctx context.Context, userID uint, productID string) (*ToggleResult, error)
	List(ctx context.Context, userID uint) ([]*product.Priced, error)
}

type service struct {
	repo     Repository
	products ProductLookup
	pricer   Pricer
}

func NewService(repo Repository, products ProductLookup, pricer Pricer) Service {
	return &service{repo: repo, products: products, pricer: pricer}
}

func (s *service) Toggle(ctx context.Context, userID uint, productID string) (*ToggleResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "ToggleWishlist"),
		zap.Uint("user_id", userID),
	)

	id, err := product.ParseID(productID)
	if err != nil {
		return nil, err
	}

	added, err := s.repo.Toggle(ctx, userID, id)
	if err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return nil, err
		}
		return nil, apperror.Internal(err, "Failed to update wishlist")
	}

	ids, err := s.repo.ProductIDs(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err, "Failed to load wishlist")
	}

	log.Debug("wishlist toggled", zap.String("product_id", id.String()), zap.Bool("added", added))
	return &ToggleResult{Added: added, Wishlist: ids}, nil
}

// List returns the wishlisted products that still exist, priced.
func (s *service) List(ctx context.Context, userID uint) ([]*product.Priced, error) {
	ids, err := s.repo.ProductIDs(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err, "Failed to load wishlist")
	}
	if len(ids) == 0 {
		return []*product.Priced{}, nil
	}

	found, err := s.products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, apperror.Internal(err, "Failed to load products")
	}

	products := make([]*product.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := found[id]; ok {
			products = append(products, p)
		}
	}
	return s.pricer.PriceAll(ctx, products)
}
