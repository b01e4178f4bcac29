package order

import (
	"context"
	"fmt"
	"strings"
	"time"

	"storefront-be/internal/apperror"
	"storefront-be/internal/delivery"
	"storefront-be/internal/logger"
	"storefront-be/internal/notification"
	"storefront-be/internal/pricing"
	"storefront-be/internal/product"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PolicySource interface {
	CurrentPolicy(ctx context.Context) (pricing.Policy, error)
}

type CartClearer interface {
	Clear(ctx context.Context, userID uint) error
}

// RecipientLookup resolves where a user's order emails go.
type RecipientLookup interface {
	Recipient(ctx context.Context, userID uint) (notification.Recipient, error)
}

// Dispatcher runs work after the response path has moved on.
type Dispatcher interface {
	Go(ctx context.Context, task string, fn func(ctx context.Context) error)
}

type Service interface {
	Place(ctx context.Context, userID uint, input PlaceInput) (*Order, error)
	ListAll(ctx context.Context) ([]*Order, error)
	ListForUser(ctx context.Context, userID uint) ([]*Order, error)
	UpdateStatus(ctx context.Context, input StatusInput) (*Order, error)
	UpdateDetails(ctx context.Context, actor Actor, input DetailsInput) (*Order, error)
	Cancel(ctx context.Context, userID uint, orderID string) (*Order, error)
}

type Deps struct {
	Repo       Repository
	Products   ProductLookup
	Policies   PolicySource
	Carts      CartClearer
	Recipients RecipientLookup
	Notifier   notification.Notifier
	Dispatcher Dispatcher
	// LeadDays is the delivery estimate in working days.
	LeadDays int
	Now      func() time.Time
}

type service struct {
	Deps
}

func NewService(d Deps) Service {
	if d.LeadDays < 1 {
		d.LeadDays = 5
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return &service{Deps: d}
}

func parseOrderID(s string) (uuid.UUID, error) {
	if strings.TrimSpace(s) == "" {
		return uuid.Nil, apperror.Validation("orderId is required")
	}
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return uuid.Nil, apperror.Validation("Invalid order id: %s", s)
	}
	return id, nil
}

func validateAddress(a Address) error {
	fields := []struct {
		name  string
		value string
	}{
		{"name", a.Name},
		{"phone", a.Phone},
		{"pincode", a.Pincode},
		{"city", a.City},
		{"state", a.State},
		{"street", a.Street},
	}
	for _, f := range fields {
		if f.value == "" {
			return apperror.Validation("Address field '%s' is required and cannot be empty", f.name)
		}
	}
	return nil
}

func (s *service) Place(ctx context.Context, userID uint, input PlaceInput) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "PlaceOrder"),
		zap.Uint("user_id", userID),
	)

	if len(input.Items) == 0 {
		return nil, ErrEmptyCart
	}

	addr := input.Address.trimmed()
	if err := validateAddress(addr); err != nil {
		log.Warn("invalid shipping address", zap.Error(err))
		return nil, err
	}
	if addr.Country == "" {
		addr.Country = DefaultCountry
	}

	policy, err := s.Policies.CurrentPolicy(ctx)
	if err != nil {
		return nil, err
	}

	items, amount, err := Enrich(ctx, input.Items, s.Products, policy)
	if err != nil {
		log.Warn("order items rejected", zap.Error(err))
		return nil, err
	}

	now := s.Now()
	estimate, err := delivery.Estimate(now, s.LeadDays)
	if err != nil {
		return nil, apperror.Internal(err, "Failed to estimate delivery")
	}

	method := strings.ToLower(strings.TrimSpace(input.PaymentMethod))
	if method == "" {
		method = PaymentCOD
	}

	o := &Order{
		ID:                uuid.New(),
		UserID:            userID,
		Items:             items,
		Amount:            amount,
		Address:           addr,
		Status:            StatusPlaced,
		PaymentMethod:     method,
		Payment:           method != PaymentCOD,
		EstimatedDelivery: estimate,
		CreatedAt:         now,
	}

	if err := s.Repo.Create(ctx, o); err != nil {
		log.Error("failed to create order", zap.Error(err))
		return nil, apperror.Internal(err, "Failed to place order")
	}

	log.Info("order placed",
		zap.String("order_id", o.ID.String()),
		zap.String("amount", o.Amount.String()),
		zap.Int("items", len(o.Items)),
	)

	if err := s.Carts.Clear(ctx, userID); err != nil {
		log.Warn("failed to clear cart after order", zap.Error(err))
	}

	s.notifyPlaced(ctx, o)
	return o, nil
}

func (s *service) ListAll(ctx context.Context) ([]*Order, error) {
	orders, err := s.Repo.List(ctx, ListFilter{})
	if err != nil {
		return nil, apperror.Internal(err, "Failed to list orders")
	}
	return orders, nil
}

func (s *service) ListForUser(ctx context.Context, userID uint) ([]*Order, error) {
	orders, err := s.Repo.List(ctx, ListFilter{UserID: &userID})
	if err != nil {
		return nil, apperror.Internal(err, "Failed to list orders")
	}
	return orders, nil
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*Order, error) {
	o, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return nil, err
		}
		return nil, apperror.Internal(err, "Failed to load order")
	}
	return o, nil
}

// UpdateStatus sets the status and/or delivery estimate of an open order.
func (s *service) UpdateStatus(ctx context.Context, input StatusInput) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateOrderStatus"),
		zap.String("order_id", input.OrderID),
	)

	id, err := parseOrderID(input.OrderID)
	if err != nil {
		return nil, err
	}

	var patch StatusPatch
	if input.Status != nil && strings.TrimSpace(*input.Status) != "" {
		st, err := ParseStatus(*input.Status)
		if err != nil {
			log.Warn("invalid status", zap.String("status", *input.Status))
			return nil, err
		}
		patch.Status = &st
	}

	raw := input.EstimatedDelivery
	if raw == nil {
		raw = input.ExpectedDelivery
	}
	if raw != nil {
		est := delivery.NormalizeInput(*raw)
		patch.EstimatedDelivery = &est
	}

	if patch.Empty() {
		return nil, ErrNoStatusFields
	}

	o, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := CheckTransition(o); err != nil {
		return nil, err
	}

	if err := s.Repo.UpdateStatus(ctx, id, patch); err != nil {
		return nil, s.writeError(ctx, err)
	}

	prev := o.Status
	if patch.Status != nil {
		o.Status = *patch.Status
	}
	if patch.EstimatedDelivery != nil {
		o.EstimatedDelivery = *patch.EstimatedDelivery
	}

	log.Info("order status updated",
		zap.String("from", string(prev)),
		zap.String("to", string(o.Status)),
		zap.String("estimated_delivery", o.EstimatedDelivery),
	)

	if o.Status != StatusPlaced {
		s.notifyStatus(ctx, o)
	}
	return o, nil
}

// UpdateDetails applies contact, address and item edits. Items whose
// quantity or size change are re-priced from the current product, and the
// amount is recomputed before everything is written together.
func (s *service) UpdateDetails(ctx context.Context, actor Actor, input DetailsInput) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateOrderDetails"),
		zap.String("order_id", input.OrderID),
		zap.Bool("admin", actor.Admin),
	)

	id, err := parseOrderID(input.OrderID)
	if err != nil {
		return nil, err
	}

	o, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := CheckEdit(o, actor); err != nil {
		log.Warn("order edit rejected", zap.String("status", string(o.Status)), zap.Error(err))
		return nil, err
	}

	if err := applyContact(&o.Address, input); err != nil {
		return nil, err
	}

	changed, err := applyItemPatches(o, input.Items)
	if err != nil {
		return nil, err
	}

	if len(changed) > 0 {
		if err := s.reprice(ctx, o, changed); err != nil {
			return nil, err
		}
	}
	o.Amount = RecomputeAmount(o.Items)

	if err := s.Repo.UpdateDetails(ctx, o); err != nil {
		return nil, s.writeError(ctx, err)
	}

	log.Info("order details updated", zap.Int("repriced_items", len(changed)))
	return o, nil
}

func applyContact(a *Address, in DetailsInput) error {
	set := func(field string, dst *string, v *string) error {
		if v == nil {
			return nil
		}
		t := strings.TrimSpace(*v)
		if t == "" {
			return apperror.Validation("Address field '%s' cannot be empty", field)
		}
		*dst = t
		return nil
	}

	if err := set("name", &a.Name, in.Name); err != nil {
		return err
	}
	if err := set("phone", &a.Phone, in.Phone); err != nil {
		return err
	}
	if in.Address == nil {
		return nil
	}
	for _, f := range []struct {
		name string
		dst  *string
		v    *string
	}{
		{"street", &a.Street, in.Address.Street},
		{"city", &a.City, in.Address.City},
		{"state", &a.State, in.Address.State},
		{"pincode", &a.Pincode, in.Address.Pincode},
		{"country", &a.Country, in.Address.Country},
	} {
		if err := set(f.name, f.dst, f.v); err != nil {
			return err
		}
	}
	return nil
}

// applyItemPatches edits items in place and returns the indexes that need
// re-pricing. Patches naming a product not in the order are ignored.
func applyItemPatches(o *Order, patches []ItemPatch) ([]int, error) {
	var changed []int
	for _, p := range patches {
		if strings.TrimSpace(p.ProductID) == "" {
			continue
		}
		pid, err := product.ParseID(p.ProductID)
		if err != nil {
			return nil, err
		}

		idx := -1
		for i := range o.Items {
			if o.Items[i].ProductID == pid {
				idx = i
				break
			}
		}
		if idx < 0 {
			continue
		}

		it := &o.Items[idx]
		touched := false
		if p.Quantity != nil {
			if *p.Quantity < 1 {
				return nil, apperror.Validation("quantity must be at least 1")
			}
			it.Quantity = *p.Quantity
			touched = true
		}
		if p.Size != nil {
			size := strings.TrimSpace(*p.Size)
			if size == "" {
				return nil, apperror.Validation("size cannot be empty")
			}
			it.Size = size
			touched = true
		}
		if touched {
			changed = append(changed, idx)
		}
	}
	return changed, nil
}

// reprice refreshes price and final price of the given items from the
// current catalog under one policy value. Items whose product has since
// been removed keep their snapshot.
func (s *service) reprice(ctx context.Context, o *Order, idxs []int) error {
	policy, err := s.Policies.CurrentPolicy(ctx)
	if err != nil {
		return err
	}

	ids := make([]uuid.UUID, 0, len(idxs))
	for _, i := range idxs {
		ids = append(ids, o.Items[i].ProductID)
	}

	products, err := s.Products.GetByIDs(ctx, ids)
	if err != nil {
		return apperror.Internal(err, "Failed to load products")
	}

	for _, i := range idxs {
		it := &o.Items[i]
		p, ok := products[it.ProductID]
		if !ok {
			continue
		}
		it.Price = p.Price
		it.FinalPrice = p.Quote(policy).FinalPrice
	}
	return nil
}

func (s *service) Cancel(ctx context.Context, userID uint, orderID string) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CancelOrder"),
		zap.String("order_id", orderID),
		zap.Uint("user_id", userID),
	)

	id, err := parseOrderID(orderID)
	if err != nil {
		return nil, err
	}

	o, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := CheckCancel(o, Actor{UserID: userID}); err != nil {
		log.Warn("cancel rejected", zap.Error(err))
		return nil, err
	}

	cancelled := StatusCancelled
	if err := s.Repo.UpdateStatus(ctx, id, StatusPatch{Status: &cancelled}); err != nil {
		return nil, s.writeError(ctx, err)
	}
	o.Status = StatusCancelled

	log.Info("order cancelled")
	s.notifyStatus(ctx, o)
	return o, nil
}

func (s *service) writeError(ctx context.Context, err error) error {
	if apperror.Is(err, apperror.KindValidation) {
		return err
	}
	logger.FromCtx(ctx).Error("failed to save order", zap.Error(err))
	return apperror.Internal(err, "Failed to update order")
}

func (s *service) notifyPlaced(ctx context.Context, o *Order) {
	lines := make([]notification.LineItem, len(o.Items))
	for i, it := range o.Items {
		lines[i] = notification.LineItem{
			Name:       it.Name,
			Size:       it.Size,
			Quantity:   it.Quantity,
			FinalPrice: it.FinalPrice,
		}
	}
	msg := notification.OrderPlaced{
		OrderID:           o.ID.String(),
		Items:             lines,
		Total:             o.Amount,
		EstimatedDelivery: o.EstimatedDelivery,
	}
	userID := o.UserID

	s.Dispatcher.Go(ctx, "order_placed_email", func(ctx context.Context) error {
		to, err := s.Recipients.Recipient(ctx, userID)
		if err != nil {
			return fmt.Errorf("resolve recipient: %w", err)
		}
		msg.To = to
		return s.Notifier.OrderPlaced(ctx, msg)
	})
}

func (s *service) notifyStatus(ctx context.Context, o *Order) {
	msg := notification.StatusChanged{
		OrderID:           o.ID.String(),
		Status:            string(o.Status),
		EstimatedDelivery: o.EstimatedDelivery,
	}
	userID := o.UserID

	s.Dispatcher.Go(ctx, "order_status_email", func(ctx context.Context) error {
		to, err := s.Recipients.Recipient(ctx, userID)
		if err != nil {
			return fmt.Errorf("resolve recipient: %w", err)
		}
		msg.To = to
		return s.Notifier.OrderStatusChanged(ctx, msg)
	})
}
