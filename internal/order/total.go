package order

import "github.com/shopspring/decimal"

func LineTotal(it Item) decimal.Decimal {
	return it.FinalPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

// RecomputeAmount is the order amount for items: the sum of final price
// times quantity. Every write of items must persist this alongside them.
func RecomputeAmount(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(LineTotal(it))
	}
	return total
}
