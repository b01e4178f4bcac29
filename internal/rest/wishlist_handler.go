package rest

import (
	"net/http"

	"storefront-be/internal/utils"
	"storefront-be/internal/wishlist"
)

func (h *Handler) ToggleWishlist(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var input wishlist.ToggleInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, r, err)
		return
	}

	res, err := h.Wishlists.Toggle(r.Context(), userID, input.ProductID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, utils.Envelope{"wishlist": res.Wishlist, "message": res.Message()})
}

func (h *Handler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	products, err := h.Wishlists.List(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, utils.Envelope{"wishlist": products})
}
