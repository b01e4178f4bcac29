package product

import (
	"context"
	"strings"

	"storefront-be/internal/apperror"
	"storefront-be/internal/logger"
	"storefront-be/internal/pricing"
	"storefront-be/internal/validation"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PolicySource yields the store-wide discount policy in force.
type PolicySource interface {
	CurrentPolicy(ctx context.Context) (pricing.Policy, error)
}

type Service interface {
	List(ctx context.Context) ([]*Priced, error)
	Get(ctx context.Context, id string) (*Priced, error)
	Create(ctx context.Context, input CreateInput) (*Product, error)
	Update(ctx context.Context, id string, input UpdateInput) (*Priced, error)
	UpdateDiscount(ctx context.Context, id string, discount decimal.Decimal) error
	Remove(ctx context.Context, id string) error
	PriceAll(ctx context.Context, products []*Product) ([]*Priced, error)
}

type service struct {
	repo     Repository
	policies PolicySource
}

func NewService(repo Repository, policies PolicySource) Service {
	return &service{repo: repo, policies: policies}
}

// ParseID parses a product id supplied by a client.
func ParseID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return uuid.Nil, apperror.Validation("Invalid product id: %s", s)
	}
	return id, nil
}

func (s *service) PriceAll(ctx context.Context, products []*Product) ([]*Priced, error) {
	policy, err := s.policies.CurrentPolicy(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*Priced, len(products))
	for i, p := range products {
		out[i] = WithPrices(p, policy)
	}
	return out, nil
}

func (s *service) List(ctx context.Context) ([]*Priced, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "ListProducts"),
	)

	products, err := s.repo.List(ctx)
	if err != nil {
		log.Error("failed to list products", zap.Error(err))
		return nil, apperror.Internal(err, "Failed to list products")
	}

	log.Debug("products loaded", zap.Int("count", len(products)))
	return s.PriceAll(ctx, products)
}

func (s *service) Get(ctx context.Context, id string) (*Priced, error) {
	pid, err := ParseID(id)
	if err != nil {
		return nil, err
	}

	p, err := s.repo.GetByID(ctx, pid)
	if err != nil {
		return nil, s.mapRepoError(ctx, err, "Failed to load product")
	}

	priced, err := s.PriceAll(ctx, []*Product{p})
	if err != nil {
		return nil, err
	}
	return priced[0], nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateProduct"),
	)

	if err := validation.Struct(input); err != nil {
		log.Warn("invalid product input", zap.Error(err))
		return nil, err
	}

	p := &Product{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		Price:       *input.Price,
		Discount:    decimal.Zero,
		Category:    input.Category,
		SubCategory: input.SubCategory,
		Fabric:      input.Fabric,
		Occasion:    input.Occasion,
		Fit:         input.Fit,
		Color:       input.Color,
		Images:      input.Images,
		Sizes:       input.Sizes,
		Bestseller:  input.Bestseller,
	}
	if input.Discount != nil {
		p.Discount = *input.Discount
	}

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		log.Error("failed to create product", zap.Error(err))
		return nil, apperror.Internal(err, "Failed to add product")
	}

	log.Info("product created", zap.String("product_id", created.ID.String()))
	return created, nil
}

// Update applies a partial update. Image slots replace the image at that
// index; a slot may extend the list by one position at most.
func (s *service) Update(ctx context.Context, id string, input UpdateInput) (*Priced, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateProduct"),
		zap.String("product_id", id),
	)

	pid, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	if err := validation.Struct(input); err != nil {
		log.Warn("invalid product update", zap.Error(err))
		return nil, err
	}
	if input.Empty() {
		return nil, ErrNoUpdateFields
	}

	var patch Patch
	if input.Name != nil {
		patch.Set("name", strings.TrimSpace(*input.Name))
	}
	if input.Description != nil {
		patch.Set("description", strings.TrimSpace(*input.Description))
	}
	if input.Price != nil {
		patch.Set("price", *input.Price)
	}
	if input.Discount != nil {
		patch.Set("discount", *input.Discount)
	}
	if input.Category != nil {
		patch.Set("category", *input.Category)
	}
	if input.SubCategory != nil {
		patch.Set("sub_category", *input.SubCategory)
	}
	if input.Fabric != nil {
		patch.Set("fabric", *input.Fabric)
	}
	if input.Occasion != nil {
		patch.Set("occasion", *input.Occasion)
	}
	if input.Fit != nil {
		patch.Set("fit", *input.Fit)
	}
	if input.Color != nil {
		patch.Set("color", *input.Color)
	}
	if input.Sizes != nil {
		patch.Set("sizes", pq.Array(input.Sizes))
	}
	if input.Bestseller != nil {
		patch.Set("bestseller", *input.Bestseller)
	}

	if len(input.Images) > 0 {
		current, err := s.repo.GetByID(ctx, pid)
		if err != nil {
			return nil, s.mapRepoError(ctx, err, "Failed to update product")
		}
		images, err := ReplaceImageSlots(current.Images, input.Images)
		if err != nil {
			log.Warn("invalid image slots", zap.Error(err))
			return nil, err
		}
		patch.Set("images", pq.Array(images))
	}

	updated, err := s.repo.Update(ctx, pid, patch)
	if err != nil {
		return nil, s.mapRepoError(ctx, err, "Failed to update product")
	}

	log.Info("product updated", zap.Strings("columns", patch.Columns))

	priced, err := s.PriceAll(ctx, []*Product{updated})
	if err != nil {
		return nil, err
	}
	return priced[0], nil
}

// ReplaceImageSlots puts each replacement at its slot. Slots must leave no
// gap, so every image keeps the index it was given.
func ReplaceImageSlots(current []string, slots map[int]string) ([]string, error) {
	merged := make([]string, MaxImages)
	copy(merged, current)
	for i, url := range slots {
		if i >= 0 && i < MaxImages {
			merged[i] = url
		}
	}

	n := 0
	for n < MaxImages && merged[n] != "" {
		n++
	}
	for i := n; i < MaxImages; i++ {
		if merged[i] != "" {
			return nil, apperror.Validation("image slot %d is out of range: product has %d images", i, n)
		}
	}
	return merged[:n], nil
}

func (s *service) UpdateDiscount(ctx context.Context, id string, discount decimal.Decimal) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateDiscount"),
		zap.String("product_id", id),
	)

	pid, err := ParseID(id)
	if err != nil {
		return err
	}
	if err := validation.Percentage("Discount", discount); err != nil {
		log.Warn("discount out of range", zap.String("discount", discount.String()))
		return err
	}

	if err := s.repo.UpdateDiscount(ctx, pid, discount); err != nil {
		return s.mapRepoError(ctx, err, "Failed to update discount")
	}

	log.Info("product discount updated", zap.String("discount", discount.String()))
	return nil
}

func (s *service) Remove(ctx context.Context, id string) error {
	pid, err := ParseID(id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, pid); err != nil {
		return s.mapRepoError(ctx, err, "Failed to remove product")
	}

	logger.FromCtx(ctx).Info("product removed", zap.String("product_id", pid.String()))
	return nil
}

func (s *service) mapRepoError(ctx context.Context, err error, message string) error {
	if apperror.Is(err, apperror.KindNotFound) {
		return err
	}
	logger.FromCtx(ctx).Error(message, zap.Error(err))
	return apperror.Internal(err, message)
}
