package rest

import (
	"net/http"

	"storefront-be/internal/discount"
	"storefront-be/internal/utils"
)

// GetMaxDiscount answers with the bare policy object, not an envelope.
func (h *Handler) GetMaxDiscount(w http.ResponseWriter, r *http.Request) {
	d, err := h.Discounts.Get(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, d)
}

func (h *Handler) UpdateMaxDiscount(w http.ResponseWriter, r *http.Request) {
	var input discount.UpdateInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, r, err)
		return
	}

	d, err := h.Discounts.Update(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, d)
}
