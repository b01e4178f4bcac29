package discount

import (
	"time"

	"storefront-be/internal/pricing"

	"github.com/shopspring/decimal"
)

const DefaultDescription = "Max discount available!"

// MaxDiscount is the store-wide discount ceiling. There is at most one row.
type MaxDiscount struct {
	Value       decimal.Decimal `json:"value"`
	Description string          `json:"description"`
	IsActive    bool            `json:"isActive"`
	UpdatedAt   *time.Time      `json:"updatedAt,omitempty"`
}

// Inactive is what callers see before any admin has set a ceiling.
func Inactive() *MaxDiscount {
	return &MaxDiscount{Value: decimal.Zero, Description: "", IsActive: false}
}

func (m *MaxDiscount) Policy() pricing.Policy {
	if m == nil {
		return pricing.NoPolicy
	}
	return pricing.Policy{Ceiling: m.Value, Active: m.IsActive}
}

type UpdateInput struct {
	Value       *decimal.Decimal `json:"value" validate:"required,gte=0,lte=100"`
	Description *string          `json:"description"`
	IsActive    *bool            `json:"isActive"`
}
