// Package pricing resolves what a customer actually pays for a product given
// its own discount and the store-wide discount policy. The catalog and order
// placement both price through here so shown and charged amounts agree.
package pricing

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Policy is the store-wide discount ceiling. An inactive policy caps nothing.
type Policy struct {
	Ceiling decimal.Decimal
	Active  bool
}

// NoPolicy is used when no policy has been configured.
var NoPolicy = Policy{}

func (p Policy) cap() decimal.Decimal {
	if !p.Active {
		return hundred
	}
	return p.Ceiling
}

// EffectiveDiscount returns min(discount, ceiling) when the policy is active,
// or the product's own discount otherwise. Non-positive discounts yield 0.
func EffectiveDiscount(discount decimal.Decimal, p Policy) decimal.Decimal {
	if !discount.IsPositive() {
		return decimal.Zero
	}
	d := decimal.Min(discount, p.cap())
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// FinalPrice is price less the effective discount, rounded half up to a whole
// currency unit. It never exceeds price, and with no effective discount it is
// price unchanged.
func FinalPrice(price, discount decimal.Decimal, p Policy) decimal.Decimal {
	eff := EffectiveDiscount(discount, p)
	if eff.IsZero() {
		return price
	}
	off := price.Mul(eff).Div(hundred)
	return decimal.Min(price.Sub(off).Round(0), price)
}

// Savings is what the customer saves against price, never negative.
func Savings(price, discount decimal.Decimal, p Policy) decimal.Decimal {
	return price.Sub(FinalPrice(price, discount, p))
}

// Quote bundles the three derived figures for one product.
type Quote struct {
	EffectiveDiscount decimal.Decimal
	FinalPrice        decimal.Decimal
	Savings           decimal.Decimal
}

// Resolve computes the effective discount, final price and savings together.
func Resolve(price, discount decimal.Decimal, p Policy) Quote {
	final := FinalPrice(price, discount, p)
	return Quote{
		EffectiveDiscount: EffectiveDiscount(discount, p),
		FinalPrice:        final,
		Savings:           price.Sub(final),
	}
}
