package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"murmur/core"
	"murmur/service"
	"murmur/util"

	"github.com/go-playground/validator/v10"
)

// registerRequest is the registration payload. The validator tags are a
// first gate; the account service enforces the full rules (including
// whitespace-only usernames, which `required` does not catch).
type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=4"`
}

// loginRequest carries login credentials. No validator tags: any
// mismatch, including blank fields, is an authentication failure (401),
// not a malformed request.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// registerAccount handles POST /register
func (a *API) registerAccount(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		http.Error(w, "Invalid registration payload", http.StatusBadRequest)
		return
	}

	account, err := a.accountService.Register(r.Context(), &core.Account{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			http.Error(w, "Registration rejected", http.StatusBadRequest)
			return
		}
		a.logger.Errorw("Failed to register account",
			"username", util.SanitizeLogValue(req.Username),
			"error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	a.respondJSON(w, account, http.StatusOK)
}

// login handles POST /login
func (a *API) login(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	account, err := a.accountService.Login(r.Context(), &core.Account{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		a.logger.Errorw("Failed to process login",
			"username", util.SanitizeLogValue(req.Username),
			"error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	a.respondJSON(w, account, http.StatusOK)
}
