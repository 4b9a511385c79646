package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"auction-marketplace-service/internal/domain/shared"
	"auction-marketplace-service/internal/ports/inbound"
	"auction-marketplace-service/internal/ports/outbound"

	"github.com/rs/zerolog"
)

type handler struct {
	auctions inbound.AuctionService
	bids     inbound.BidService
	items    inbound.ItemService
	users    inbound.UserService
	tokens   outbound.TokenManager
	logger   zerolog.Logger
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode response")
	}
}

func (h *handler) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		h.logger.Error().Err(err).Msg("Request failed")
		message = "internal server error"
	}
	h.writeJSON(w, status, errorResponse{Error: message})
}

// statusFor maps the typed error taxonomy to HTTP statuses. Caller-induced
// classes are 4xx; only dependency or configuration failures are 5xx.
func statusFor(err error) int {
	switch {
	case errors.Is(err, shared.ErrInvalidRequest),
		errors.Is(err, shared.ErrInvalidDateFormat),
		errors.Is(err, shared.ErrStartAfterEnd),
		errors.Is(err, shared.ErrInvalidStartBid),
		errors.Is(err, shared.ErrBidAmountInvalid),
		errors.Is(err, shared.ErrInvalidCondition):
		return http.StatusBadRequest

	case errors.Is(err, shared.ErrAccessDenied),
		errors.Is(err, shared.ErrInvalidToken),
		errors.Is(err, shared.ErrBadPassword):
		return http.StatusUnauthorized

	case errors.Is(err, shared.ErrNotAuctionCreator),
		errors.Is(err, shared.ErrItemNotOwned),
		errors.Is(err, shared.ErrBidOnOwnAuction):
		return http.StatusForbidden

	case errors.Is(err, shared.ErrAuctionNotFound),
		errors.Is(err, shared.ErrItemNotFound),
		errors.Is(err, shared.ErrUserNotFound),
		errors.Is(err, shared.ErrBidNotFound):
		return http.StatusNotFound

	case errors.Is(err, shared.ErrActiveAuctionExists),
		errors.Is(err, shared.ErrAuctionNotOpen),
		errors.Is(err, shared.ErrAuctionClosed),
		errors.Is(err, shared.ErrAuctionHasBids),
		errors.Is(err, shared.ErrStartDateLocked),
		errors.Is(err, shared.ErrEmailTaken):
		return http.StatusConflict

	case errors.Is(err, shared.ErrInsufficientAmount):
		return http.StatusUnprocessableEntity

	default:
		return http.StatusInternalServerError
	}
}
