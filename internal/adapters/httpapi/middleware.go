package httpapi

import (
	"context"
	"net/http"

	"auction-marketplace-service/internal/domain/shared"

	"github.com/google/uuid"
)

type contextKey string

const userIDKey contextKey = "user_id"

// requireAuth verifies the auth-token header and attaches the caller's
// identity to the request context
func (h *handler) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get("auth-token")
		if token == "" {
			h.writeError(w, shared.ErrAccessDenied)
			return
		}

		userID, err := h.tokens.Verify(token)
		if err != nil {
			h.writeError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// callerID reads the authenticated identity attached by requireAuth
func callerID(r *http.Request) uuid.UUID {
	id, _ := r.Context().Value(userIDKey).(uuid.UUID)
	return id
}
