// Package rest exposes the storefront services over JSON HTTP.
package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"storefront-be/internal/apperror"
	"storefront-be/internal/cart"
	"storefront-be/internal/discount"
	"storefront-be/internal/logger"
	"storefront-be/internal/order"
	"storefront-be/internal/product"
	"storefront-be/internal/user"
	"storefront-be/internal/utils"
	"storefront-be/internal/wishlist"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func init() {
	// Prices go out as JSON numbers, as the storefront clients expect.
	decimal.MarshalJSONWithoutQuotes = true
}

type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handler struct {
	Users     user.Service
	Products  product.Service
	Discounts discount.Service
	Carts     cart.Service
	Wishlists wishlist.Service
	Orders    order.Service
	DB        Pinger
}

var (
	errBadBody      = apperror.Validation("Invalid request body")
	errUnauthorized = apperror.Unauthorized("Not Authorized, token missing")
)

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errBadBody
		}
		return apperror.Validation("Invalid request body: %v", err)
	}
	return nil
}

func writeOK(w http.ResponseWriter, body utils.Envelope) {
	body["success"] = true
	utils.WriteJSON(w, http.StatusOK, body)
}

// writeError logs server side failures with the request's logger before
// answering.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	if apperror.KindOf(err) == apperror.KindInternal {
		logger.FromCtx(r.Context()).Error("request failed",
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
	utils.WriteError(w, err)
}

func currentUser(r *http.Request) (uint, error) {
	id, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		return 0, errUnauthorized
	}
	return id, nil
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if h.DB != nil {
		if err := h.DB.PingContext(r.Context()); err != nil {
			logger.FromCtx(r.Context()).Error("health check failed", zap.Error(err))
			utils.WriteJSON(w, http.StatusServiceUnavailable, utils.Envelope{"status": "unavailable"})
			return
		}
	}
	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"status": "ok"})
}
