package rest

import (
	"net/http"

	"storefront-be/internal/cart"
	"storefront-be/internal/utils"
)

func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var input cart.AddInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.Carts.Add(r.Context(), userID, input); err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, utils.Envelope{"message": "Added to Cart"})
}

func (h *Handler) UpdateCart(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var input cart.UpdateInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.Carts.Update(r.Context(), userID, input); err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, utils.Envelope{"message": "Cart updated"})
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	contents, err := h.Carts.Get(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, utils.Envelope{"cartData": contents})
}
