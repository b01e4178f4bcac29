package wishlist

import (
	"errors"

	"storefront-be/internal/apperror"
)

var (
	ErrProductNotFound = apperror.NotFound("Product not found")

	ErrFailedGetWishlist    = errors.New("failed to get wishlist")
	ErrFailedUpdateWishlist = errors.New("failed to update wishlist")

	PgForeignKeyViolation = "23503"
)
