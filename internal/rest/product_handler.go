package rest

import (
	"net/http"

	"storefront-be/internal/apperror"
	"storefront-be/internal/product"
	"storefront-be/internal/utils"

	"github.com/shopspring/decimal"
)

type productIDRequest struct {
	ProductID string `json:"productId"`
	ID        string `json:"id"`
}

// id accepts either field name; clients use both.
func (req productIDRequest) id() string {
	if req.ProductID != "" {
		return req.ProductID
	}
	return req.ID
}

type updateProductRequest struct {
	ID string `json:"id"`
	product.UpdateInput
}

type productDiscountRequest struct {
	ProductID string           `json:"productId"`
	Discount  *decimal.Decimal `json:"discount"`
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.Products.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, utils.Envelope{"products": products})
}

func (h *Handler) SingleProduct(w http.ResponseWriter, r *http.Request) {
	var req productIDRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	p, err := h.Products.Get(r.Context(), req.id())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, utils.Envelope{"product": p})
}

func (h *Handler) AddProduct(w http.ResponseWriter, r *http.Request) {
	var input product.CreateInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, r, err)
		return
	}

	p, err := h.Products.Create(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, utils.Envelope{"message": "Product added", "product": p})
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req updateProductRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	p, err := h.Products.Update(r.Context(), req.ID, req.UpdateInput)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, utils.Envelope{"message": "Product updated successfully", "product": p})
}

func (h *Handler) RemoveProduct(w http.ResponseWriter, r *http.Request) {
	var req productIDRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.Products.Remove(r.Context(), req.id()); err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, utils.Envelope{"message": "Product Removed"})
}

func (h *Handler) UpdateProductDiscount(w http.ResponseWriter, r *http.Request) {
	var req productDiscountRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.Discount == nil {
		writeError(w, r, apperror.Validation("discount is required"))
		return
	}

	if err := h.Products.UpdateDiscount(r.Context(), req.ProductID, *req.Discount); err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, utils.Envelope{"message": "Discount updated"})
}
