package wishlist

import "github.com/google/uuid"

type ToggleInput struct {
	ProductID string `json:"productId"`
}

// ToggleResult reports the wishlist after a toggle and which way it went.
type ToggleResult struct {
	Added    bool        `json:"added"`
	Wishlist []uuid.UUID `json:"wishlist"`
}

func (r ToggleResult) Message() string {
	if r.Added {
		return "Added to wishlist"
	}
	return "Removed from wishlist"
}
