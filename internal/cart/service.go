package cart

import (
	"context"
	"strings"

	"storefront-be/internal/apperror"
	"storefront-be/internal/logger"
	"storefront-be/internal/product"
	"storefront-be/internal/validation"

	"go.uber.org/zap"
)

type Service interface {
	Add(ctx context.Context, userID uint, input AddInput) error
	Update(ctx context.Context, userID uint, input UpdateInput) error
	Get(ctx context.Context, userID uint) (Contents, error)
	Clear(ctx context.Context, userID uint) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Add(ctx context.Context, userID uint, input AddInput) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddToCart"),
		zap.Uint("user_id", userID),
	)

	input.Size = strings.TrimSpace(input.Size)
	input.Color = strings.TrimSpace(input.Color)
	if err := validation.Struct(input); err != nil {
		return err
	}
	productID, err := product.ParseID(input.ItemID)
	if err != nil {
		return err
	}

	if err := s.repo.Increment(ctx, userID, productID, input.Size, input.Color); err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			log.Warn("add to cart for unknown product", zap.String("product_id", input.ItemID))
			return err
		}
		return apperror.Internal(err, "Failed to add to cart")
	}

	log.Debug("cart item added", zap.String("product_id", input.ItemID), zap.String("size", input.Size))
	return nil
}

// Update sets a line's quantity. A quantity of zero or less removes the line.
func (s *service) Update(ctx context.Context, userID uint, input UpdateInput) error {
	input.Size = strings.TrimSpace(input.Size)
	input.Color = strings.TrimSpace(input.Color)
	if err := validation.Struct(input); err != nil {
		return err
	}
	productID, err := product.ParseID(input.ItemID)
	if err != nil {
		return err
	}

	line := Line{ProductID: productID, Size: input.Size, Color: input.Color, Quantity: input.Quantity}
	if input.Quantity <= 0 {
		err = s.repo.Remove(ctx, userID, line)
	} else {
		err = s.repo.SetQuantity(ctx, userID, line)
	}
	if err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return err
		}
		return apperror.Internal(err, "Failed to update cart")
	}
	return nil
}

func (s *service) Get(ctx context.Context, userID uint) (Contents, error) {
	lines, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err, "Failed to load cart")
	}
	return ToContents(lines), nil
}

func (s *service) Clear(ctx context.Context, userID uint) error {
	if err := s.repo.Clear(ctx, userID); err != nil {
		return apperror.Internal(err, "Failed to clear cart")
	}
	return nil
}
