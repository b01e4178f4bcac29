package user

import (
	"errors"

	"storefront-be/internal/apperror"
)

var (
	ErrEmailExists        = apperror.Validation("User already exists")
	ErrInvalidCredentials = apperror.Unauthorized("Invalid email or password")
	ErrUserNotFound       = apperror.NotFound("User not found")

	ErrFailedGetUser    = errors.New("failed to get user")
	ErrFailedCreateUser = errors.New("failed to create user")

	PgUniqueViolation = "23505"
)
