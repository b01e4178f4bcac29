package cart

import "github.com/google/uuid"

// Line is one product variant in a user's cart. A line is identified by
// product, size and color together.
type Line struct {
	ProductID uuid.UUID
	Size      string
	Color     string
	Quantity  int
}

type AddInput struct {
	ItemID string `json:"itemId" validate:"required"`
	Size   string `json:"size" validate:"required"`
	Color  string `json:"color"`
}

type UpdateInput struct {
	ItemID   string `json:"itemId" validate:"required"`
	Size     string `json:"size" validate:"required"`
	Color    string `json:"color"`
	Quantity int    `json:"quantity"`
}

// Contents is the cart keyed by product id, then size, holding quantities.
type Contents map[string]map[string]int

// ToContents folds lines into Contents. Lines that differ only by color
// share a size slot, so their quantities add up.
func ToContents(lines []Line) Contents {
	out := Contents{}
	for _, l := range lines {
		pid := l.ProductID.String()
		if out[pid] == nil {
			out[pid] = map[string]int{}
		}
		out[pid][l.Size] += l.Quantity
	}
	return out
}
