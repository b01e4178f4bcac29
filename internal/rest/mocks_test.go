package rest

import (
	"context"

	"storefront-be/internal/cart"
	"storefront-be/internal/discount"
	"storefront-be/internal/notification"
	"storefront-be/internal/order"
	"storefront-be/internal/pricing"
	"storefront-be/internal/product"
	"storefront-be/internal/user"
	"storefront-be/internal/wishlist"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockUsers struct{ mock.Mock }

func (m *MockUsers) Register(ctx context.Context, in user.RegisterInput) (*user.AuthResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.AuthResult), args.Error(1)
}

func (m *MockUsers) Login(ctx context.Context, in user.LoginInput) (*user.AuthResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.AuthResult), args.Error(1)
}

func (m *MockUsers) GetByID(ctx context.Context, id uint) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUsers) Recipient(ctx context.Context, id uint) (notification.Recipient, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(notification.Recipient), args.Error(1)
}

type MockProducts struct{ mock.Mock }

func (m *MockProducts) List(ctx context.Context) ([]*product.Priced, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*product.Priced), args.Error(1)
}

func (m *MockProducts) Get(ctx context.Context, id string) (*product.Priced, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Priced), args.Error(1)
}

func (m *MockProducts) Create(ctx context.Context, in product.CreateInput) (*product.Product, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProducts) Update(ctx context.Context, id string, in product.UpdateInput) (*product.Priced, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Priced), args.Error(1)
}

func (m *MockProducts) UpdateDiscount(ctx context.Context, id string, d decimal.Decimal) error {
	return m.Called(ctx, id, d).Error(0)
}

func (m *MockProducts) Remove(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockProducts) PriceAll(ctx context.Context, ps []*product.Product) ([]*product.Priced, error) {
	args := m.Called(ctx, ps)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*product.Priced), args.Error(1)
}

type MockDiscounts struct{ mock.Mock }

func (m *MockDiscounts) Get(ctx context.Context) (*discount.MaxDiscount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*discount.MaxDiscount), args.Error(1)
}

func (m *MockDiscounts) CurrentPolicy(ctx context.Context) (pricing.Policy, error) {
	args := m.Called(ctx)
	return args.Get(0).(pricing.Policy), args.Error(1)
}

func (m *MockDiscounts) Update(ctx context.Context, in discount.UpdateInput) (*discount.MaxDiscount, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*discount.MaxDiscount), args.Error(1)
}

type MockCarts struct{ mock.Mock }

func (m *MockCarts) Add(ctx context.Context, userID uint, in cart.AddInput) error {
	return m.Called(ctx, userID, in).Error(0)
}

func (m *MockCarts) Update(ctx context.Context, userID uint, in cart.UpdateInput) error {
	return m.Called(ctx, userID, in).Error(0)
}

func (m *MockCarts) Get(ctx context.Context, userID uint) (cart.Contents, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(cart.Contents), args.Error(1)
}

func (m *MockCarts) Clear(ctx context.Context, userID uint) error {
	return m.Called(ctx, userID).Error(0)
}

type MockWishlists struct{ mock.Mock }

func (m *MockWishlists) Toggle(ctx context.Context, userID uint, productID string) (*wishlist.ToggleResult, error) {
	args := m.Called(ctx, userID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wishlist.ToggleResult), args.Error(1)
}

func (m *MockWishlists) List(ctx context.Context, userID uint) ([]*product.Priced, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*product.Priced), args.Error(1)
}

type MockOrders struct{ mock.Mock }

func (m *MockOrders) Place(ctx context.Context, userID uint, in order.PlaceInput) (*order.Order, error) {
	args := m.Called(ctx, userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrders) ListAll(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrders) ListForUser(ctx context.Context, userID uint) ([]*order.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrders) UpdateStatus(ctx context.Context, in order.StatusInput) (*order.Order, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrders) UpdateDetails(ctx context.Context, actor order.Actor, in order.DetailsInput) (*order.Order, error) {
	args := m.Called(ctx, actor, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrders) Cancel(ctx context.Context, userID uint, orderID string) (*order.Order, error) {
	args := m.Called(ctx, userID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}
