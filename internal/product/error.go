package product

import (
	"errors"

	"storefront-be/internal/apperror"
)

var (
	ErrProductNotFound = apperror.NotFound("Product not found")
	ErrNoUpdateFields  = apperror.Validation("No valid fields to update")

	ErrFailedGetProduct    = errors.New("failed to get product")
	ErrFailedSaveProduct   = errors.New("failed to save product")
	ErrFailedDeleteProduct = errors.New("failed to delete product")
)
