package cart

import (
	"errors"

	"storefront-be/internal/apperror"
)

var (
	ErrCartItemNotFound = apperror.NotFound("Item not found in cart")
	ErrProductNotFound  = apperror.NotFound("Product not found")

	ErrFailedGetCart    = errors.New("failed to get cart")
	ErrFailedUpdateCart = errors.New("failed to update cart item")
	ErrFailedClearCart  = errors.New("failed to clear cart")

	PgForeignKeyViolation = "23503"
)
