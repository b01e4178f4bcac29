package order

import (
	"errors"

	"storefront-be/internal/apperror"
)

var (
	ErrOrderNotFound  = apperror.NotFound("Order not found")
	ErrEmptyCart      = apperror.EmptyCart("Cart is empty")
	ErrInvalidLine    = apperror.Validation("Each item must have productId, quantity and size")
	ErrInvalidStatus  = apperror.InvalidStatus("Invalid status value")
	ErrNoStatusFields = apperror.Validation("No valid fields to update")
	ErrNotOwner       = apperror.Forbidden("This order does not belong to you")

	// ErrOrderClosed is returned by guarded writes when the order reached a
	// terminal status after it was read.
	ErrOrderClosed = apperror.Validation("Order is already delivered or cancelled")

	ErrFailedGetOrder  = errors.New("failed to get order")
	ErrFailedSaveOrder = errors.New("failed to save order")
)
