package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"auction-marketplace-service/internal/domain/shared"
	"auction-marketplace-service/internal/ports/inbound"
)

func (h *handler) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	var req inbound.CreateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, shared.ErrInvalidRequest)
		return
	}
	req.OwnerID = callerID(r)

	if err := validateItemFields(req.Name, req.Details); err != nil {
		h.writeError(w, err)
		return
	}

	created, err := h.items.CreateItem(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, created)
}

func (h *handler) handleGetItem(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, shared.ErrInvalidRequest)
		return
	}

	found, err := h.items.GetItem(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, found)
}

func (h *handler) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, shared.ErrInvalidRequest)
		return
	}

	var req inbound.UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, shared.ErrInvalidRequest)
		return
	}
	req.ItemID = id
	req.ActorID = callerID(r)

	if err := validateItemFields(req.Name, req.Details); err != nil {
		h.writeError(w, err)
		return
	}

	updated, err := h.items.UpdateItem(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, updated)
}

func validateItemFields(name, details string) error {
	if len(name) > 256 || len(details) > 1024 {
		return shared.ErrInvalidRequest
	}
	return nil
}
