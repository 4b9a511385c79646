package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"auction-marketplace-service/internal/domain/shared"
	"auction-marketplace-service/internal/ports/inbound"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AuthToken string `json:"auth-token"`
}

func (h *handler) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req inbound.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, shared.ErrInvalidRequest)
		return
	}

	if err := validateCredentials(req.Email, req.Password); err != nil {
		h.writeError(w, err)
		return
	}
	if len(req.Name) > 256 {
		h.writeError(w, shared.ErrInvalidRequest)
		return
	}

	user, err := h.users.Register(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, user)
}

func (h *handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, shared.ErrInvalidRequest)
		return
	}

	if err := validateCredentials(req.Email, req.Password); err != nil {
		h.writeError(w, err)
		return
	}

	token, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("auth-token", token)
	h.writeJSON(w, http.StatusOK, loginResponse{AuthToken: token})
}

// validateCredentials applies the schema-level field rules; everything else
// is the services' concern.
func validateCredentials(email, password string) error {
	if err := validateEmail(email); err != nil {
		return err
	}
	if len(password) < 6 || len(password) > 1024 {
		return shared.ErrInvalidRequest
	}
	return nil
}

func validateEmail(email string) error {
	if len(email) < 6 || len(email) > 256 || !strings.Contains(email, "@") {
		return shared.ErrInvalidRequest
	}
	return nil
}
