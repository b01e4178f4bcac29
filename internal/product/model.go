package product

import (
	"time"

	"storefront-be/internal/pricing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxImages is the number of image slots a product has.
const MaxImages = 4

type Product struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Discount    decimal.Decimal `json:"discount"`
	Category    string          `json:"category"`
	SubCategory string          `json:"subCategory"`
	Fabric      string          `json:"fabric,omitempty"`
	Occasion    string          `json:"occasion,omitempty"`
	Fit         string          `json:"fit,omitempty"`
	Color       string          `json:"color,omitempty"`
	Images      []string        `json:"image"`
	Sizes       []string        `json:"sizes"`
	Bestseller  bool            `json:"bestseller"`
	CreatedAt   time.Time       `json:"date"`
}

func (p *Product) FirstImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

func (p *Product) Quote(policy pricing.Policy) pricing.Quote {
	return pricing.Resolve(p.Price, p.Discount, policy)
}

// Priced is a product with its prices resolved against the current policy.
type Priced struct {
	*Product
	EffectiveDiscount decimal.Decimal `json:"effectiveDiscount"`
	FinalPrice        decimal.Decimal `json:"finalPrice"`
	Savings           decimal.Decimal `json:"savings"`
}

func WithPrices(p *Product, policy pricing.Policy) *Priced {
	q := p.Quote(policy)
	return &Priced{
		Product:           p,
		EffectiveDiscount: q.EffectiveDiscount,
		FinalPrice:        q.FinalPrice,
		Savings:           q.Savings,
	}
}

type CreateInput struct {
	Name        string           `json:"name" validate:"required"`
	Description string           `json:"description" validate:"required"`
	Price       *decimal.Decimal `json:"price" validate:"required,gte=0"`
	Discount    *decimal.Decimal `json:"discount" validate:"omitempty,gte=0,lte=100"`
	Category    string           `json:"category" validate:"required"`
	SubCategory string           `json:"subCategory" validate:"required"`
	Fabric      string           `json:"fabric"`
	Occasion    string           `json:"occasion"`
	Fit         string           `json:"fit"`
	Color       string           `json:"color"`
	Images      []string         `json:"image" validate:"required,min=1,max=4,dive,required,url"`
	Sizes       []string         `json:"sizes" validate:"required,min=1,dive,required"`
	Bestseller  bool             `json:"bestseller"`
}

// UpdateInput is a partial update: nil fields are left alone. Images maps an
// image slot (0-3) to its replacement URL.
type UpdateInput struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price" validate:"omitempty,gte=0"`
	Discount    *decimal.Decimal `json:"discount" validate:"omitempty,gte=0,lte=100"`
	Category    *string          `json:"category"`
	SubCategory *string          `json:"subCategory"`
	Fabric      *string          `json:"fabric"`
	Occasion    *string          `json:"occasion"`
	Fit         *string          `json:"fit"`
	Color       *string          `json:"color"`
	Sizes       []string         `json:"sizes" validate:"omitempty,min=1,dive,required"`
	Bestseller  *bool            `json:"bestseller"`
	Images      map[int]string   `json:"images" validate:"omitempty,dive,keys,gte=0,lte=3,endkeys,url"`
}

func (in UpdateInput) Empty() bool {
	return in.Name == nil && in.Description == nil && in.Price == nil &&
		in.Discount == nil && in.Category == nil && in.SubCategory == nil &&
		in.Fabric == nil && in.Occasion == nil && in.Fit == nil &&
		in.Color == nil && in.Sizes == nil && in.Bestseller == nil &&
		len(in.Images) == 0
}

// Patch is the set of columns a partial update writes, in a fixed order.
type Patch struct {
	Columns []string
	Values  []any
}

func (p *Patch) Set(column string, value any) {
	p.Columns = append(p.Columns, column)
	p.Values = append(p.Values, value)
}
