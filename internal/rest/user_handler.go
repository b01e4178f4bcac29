package rest

import (
	"net/http"

	"storefront-be/internal/user"
	"storefront-be/internal/utils"
)

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var input user.RegisterInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, r, err)
		return
	}

	res, err := h.Users.Register(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, utils.Envelope{"token": res.Token, "user": res.User})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var input user.LoginInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, r, err)
		return
	}

	res, err := h.Users.Login(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, utils.Envelope{"token": res.Token, "user": res.User})
}
