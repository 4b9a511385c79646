package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"auction-marketplace-service/internal/domain/shared"
	"auction-marketplace-service/internal/ports/inbound"
)

func (h *handler) handleCreateAuction(w http.ResponseWriter, r *http.Request) {
	var req inbound.CreateAuctionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, shared.ErrInvalidRequest)
		return
	}
	req.CreatorID = callerID(r)

	created, err := h.auctions.CreateAuction(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, created)
}

func (h *handler) handleGetAuction(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, shared.ErrInvalidRequest)
		return
	}

	expanded, err := h.auctions.GetAuction(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, expanded)
}

func (h *handler) handleListAuctions(w http.ResponseWriter, r *http.Request) {
	req := inbound.ListAuctionsRequest{Page: 1, PageSize: 10}

	if raw := r.URL.Query().Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			h.writeError(w, shared.ErrInvalidRequest)
			return
		}
		req.Page = page
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > 100 {
			h.writeError(w, shared.ErrInvalidRequest)
			return
		}
		req.PageSize = limit
	}

	auctions, err := h.auctions.ListAuctions(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, auctions)
}

func (h *handler) handleUpdateAuction(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, shared.ErrInvalidRequest)
		return
	}

	var req inbound.UpdateAuctionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, shared.ErrInvalidRequest)
		return
	}
	req.AuctionID = id
	req.ActorID = callerID(r)

	updated, err := h.auctions.UpdateAuction(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, updated)
}

func (h *handler) handleDeleteAuction(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, shared.ErrInvalidRequest)
		return
	}

	if err := h.auctions.DeleteAuction(r.Context(), callerID(r), id); err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"deleted": id.String()})
}
