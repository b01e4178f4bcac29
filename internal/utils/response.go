package utils

import (
	"encoding/json"
	"net/http"

	"storefront-be/internal/apperror"
)

// Envelope is the body shape every JSON response shares.
type Envelope map[string]any

func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// WriteError maps err to its status code and writes {success:false,message}.
func WriteError(w http.ResponseWriter, err error) {
	WriteJSON(w, apperror.HTTPStatus(err), Envelope{
		"success": false,
		"message": apperror.PublicMessage(err),
	})
}
