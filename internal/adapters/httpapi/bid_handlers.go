package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"auction-marketplace-service/internal/domain/shared"
	"auction-marketplace-service/internal/ports/inbound"
)

func (h *handler) handlePlaceBid(w http.ResponseWriter, r *http.Request) {
	auctionID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, shared.ErrInvalidRequest)
		return
	}

	var req inbound.PlaceBidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, shared.ErrInvalidRequest)
		return
	}
	req.AuctionID = auctionID
	req.BidderID = callerID(r)

	placed, err := h.bids.PlaceBid(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, placed)
}

// handleGetBids resolves a comma separated ids query into full bid records.
func (h *handler) handleGetBids(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("ids")
	if raw == "" {
		h.writeError(w, shared.ErrInvalidRequest)
		return
	}

	var ids []uuid.UUID
	for _, part := range strings.Split(raw, ",") {
		id, err := uuid.Parse(strings.TrimSpace(part))
		if err != nil {
			h.writeError(w, shared.ErrInvalidRequest)
			return
		}
		ids = append(ids, id)
	}

	bids, err := h.bids.GetBids(r.Context(), ids)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, bids)
}
