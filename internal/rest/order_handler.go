package rest

import (
	"net/http"

	"storefront-be/internal/order"
	"storefront-be/internal/utils"
)

type orderIDRequest struct {
	OrderID string `json:"orderId"`
}

func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var input order.PlaceInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, r, err)
		return
	}

	o, err := h.Orders.Place(r.Context(), userID, input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, utils.Envelope{
		"message":           "Order placed successfully",
		"orderId":           o.ID.String(),
		"estimatedDelivery": o.EstimatedDelivery,
		"order":             o,
	})
}

func (h *Handler) AllOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Orders.ListAll(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, utils.Envelope{"orders": orders})
}

func (h *Handler) UserOrders(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	orders, err := h.Orders.ListForUser(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, utils.Envelope{"orders": orders})
}

func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var input order.StatusInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, r, err)
		return
	}

	o, err := h.Orders.UpdateStatus(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, utils.Envelope{"message": "Order updated successfully", "order": o})
}

func (h *Handler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req orderIDRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	o, err := h.Orders.Cancel(r.Context(), userID, req.OrderID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, utils.Envelope{"message": "Order cancelled successfully", "order": o})
}

func (h *Handler) UpdateOrderDetails(w http.ResponseWriter, r *http.Request) {
	h.updateOrderDetails(w, r, false)
}

func (h *Handler) AdminUpdateOrderDetails(w http.ResponseWriter, r *http.Request) {
	h.updateOrderDetails(w, r, true)
}

func (h *Handler) updateOrderDetails(w http.ResponseWriter, r *http.Request, admin bool) {
	userID, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var input order.DetailsInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, r, err)
		return
	}

	o, err := h.Orders.UpdateDetails(r.Context(), order.Actor{UserID: userID, Admin: admin}, input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, utils.Envelope{"message": "Order updated", "order": o})
}
