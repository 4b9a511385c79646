package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"auction-marketplace-service/internal/domain/shared"
	"auction-marketplace-service/internal/ports/inbound"
)

func (h *handler) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, shared.ErrInvalidRequest)
		return
	}

	user, err := h.users.GetProfile(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, user)
}

func (h *handler) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	var req inbound.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, shared.ErrInvalidRequest)
		return
	}
	req.ActorID = callerID(r)

	if req.Email != "" {
		if err := validateEmail(req.Email); err != nil {
			h.writeError(w, err)
			return
		}
	}
	if len(req.Name) > 256 {
		h.writeError(w, shared.ErrInvalidRequest)
		return
	}

	user, err := h.users.UpdateProfile(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, user)
}
