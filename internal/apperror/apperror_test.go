package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", Validation("bad"), http.StatusBadRequest},
		{"invalid status", InvalidStatus("bad status"), http.StatusBadRequest},
		{"empty cart", EmptyCart("Cart is empty"), http.StatusBadRequest},
		{"not found", NotFound("missing"), http.StatusNotFound},
		{"forbidden", Forbidden("nope"), http.StatusForbidden},
		{"unauthorized", Unauthorized("login"), http.StatusUnauthorized},
		{"internal", Internal(errors.New("db down"), "failed"), http.StatusInternalServerError},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
		{"wrapped", fmt.Errorf("ctx: %w", NotFound("order not found")), http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, HTTPStatus(tc.err))
		})
	}
}

func TestPublicMessage(t *testing.T) {
	assert.Equal(t, "Product not found: abc", PublicMessage(NotFound("Product not found: %s", "abc")))
	assert.Equal(t, "Internal server error", PublicMessage(Internal(errors.New("pq: timeout"), "failed to save order")))
	assert.Equal(t, "Internal server error", PublicMessage(errors.New("raw")))
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("pq: connection refused")
	err := Internal(cause, "failed to load order")

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to load order: pq: connection refused", err.Error())
	assert.True(t, Is(err, KindInternal))
	assert.False(t, Is(err, KindNotFound))
}
