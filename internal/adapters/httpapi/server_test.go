package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/peterldowns/testy/assert"
	"github.com/peterldowns/testy/check"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"auction-marketplace-service/internal/config"
	"auction-marketplace-service/internal/domain/auction"
	"auction-marketplace-service/internal/domain/bid"
	"auction-marketplace-service/internal/domain/item"
	"auction-marketplace-service/internal/domain/shared"
	"auction-marketplace-service/internal/ports/inbound"
)

// stubServices lets each test pin down just the operations it exercises;
// unconfigured operations report not-found.
type stubServices struct {
	placeBid      func(req inbound.PlaceBidRequest) (*bid.Bid, error)
	createAuction func(req inbound.CreateAuctionRequest) (*auction.Auction, error)
	getAuction    func(id uuid.UUID) (*auction.Expanded, error)
	register      func(req inbound.RegisterRequest) (*shared.User, error)
	login         func(email, password string) (string, error)
}

func (s *stubServices) CreateAuction(_ context.Context, req inbound.CreateAuctionRequest) (*auction.Auction, error) {
	if s.createAuction == nil {
		return nil, shared.ErrAuctionNotFound
	}
	return s.createAuction(req)
}

func (s *stubServices) GetAuction(_ context.Context, id uuid.UUID) (*auction.Expanded, error) {
	if s.getAuction == nil {
		return nil, shared.ErrAuctionNotFound
	}
	return s.getAuction(id)
}

func (s *stubServices) ListAuctions(context.Context, inbound.ListAuctionsRequest) ([]*auction.Auction, error) {
	return nil, nil
}

func (s *stubServices) UpdateAuction(context.Context, inbound.UpdateAuctionRequest) (*auction.Auction, error) {
	return nil, shared.ErrAuctionNotFound
}

func (s *stubServices) DeleteAuction(context.Context, uuid.UUID, uuid.UUID) error {
	return shared.ErrAuctionNotFound
}

func (s *stubServices) PlaceBid(_ context.Context, req inbound.PlaceBidRequest) (*bid.Bid, error) {
	if s.placeBid == nil {
		return nil, shared.ErrAuctionNotFound
	}
	return s.placeBid(req)
}

func (s *stubServices) GetBids(context.Context, []uuid.UUID) ([]*bid.Bid, error) {
	return nil, nil
}

func (s *stubServices) CreateItem(context.Context, inbound.CreateItemRequest) (*item.Item, error) {
	return nil, shared.ErrItemNotFound
}

func (s *stubServices) GetItem(context.Context, uuid.UUID) (*item.Item, error) {
	return nil, shared.ErrItemNotFound
}

func (s *stubServices) UpdateItem(context.Context, inbound.UpdateItemRequest) (*item.Item, error) {
	return nil, shared.ErrItemNotFound
}

func (s *stubServices) Register(_ context.Context, req inbound.RegisterRequest) (*shared.User, error) {
	if s.register == nil {
		return nil, shared.ErrUserNotFound
	}
	return s.register(req)
}

func (s *stubServices) Login(_ context.Context, email, password string) (string, error) {
	if s.login == nil {
		return "", shared.ErrUserNotFound
	}
	return s.login(email, password)
}

func (s *stubServices) GetProfile(context.Context, uuid.UUID) (*shared.User, error) {
	return nil, shared.ErrUserNotFound
}

func (s *stubServices) UpdateProfile(context.Context, inbound.UpdateProfileRequest) (*shared.User, error) {
	return nil, shared.ErrUserNotFound
}

// fakeTokens accepts the caller's UUID string as the token.
type fakeTokens struct{}

func (fakeTokens) Issue(userID uuid.UUID) (string, error) { return userID.String(), nil }

func (fakeTokens) Verify(token string) (uuid.UUID, error) {
	id, err := uuid.Parse(token)
	if err != nil {
		return uuid.Nil, shared.ErrInvalidToken
	}
	return id, nil
}

func newTestRouter(t *testing.T, stub *stubServices) http.Handler {
	t.Helper()

	server := NewServer(ServerParams{
		Config:         &config.Config{Server: config.ServerConfig{Host: "127.0.0.1", Port: "0"}},
		AuctionService: stub,
		BidService:     stub,
		ItemService:    stub,
		UserService:    stub,
		Tokens:         fakeTokens{},
		Logger:         zerolog.Nop(),
	})
	return server.httpServer.Handler
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		assert.Nil(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("auth-token", token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestServer_AuthRequired(t *testing.T) {
	router := newTestRouter(t, &stubServices{})

	rec := doJSON(t, router, http.MethodGet, "/api/auctions", "", nil)
	check.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/auctions", "not-a-token", nil)
	check.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/auctions", uuid.NewString(), nil)
	check.Equal(t, http.StatusOK, rec.Code)
}

func TestServer_SignupValidatesFields(t *testing.T) {
	router := newTestRouter(t, &stubServices{
		register: func(req inbound.RegisterRequest) (*shared.User, error) {
			return &shared.User{ID: uuid.New(), Email: req.Email}, nil
		},
	})

	rec := doJSON(t, router, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"email":    "not-an-email",
		"password": "secret1",
	})
	check.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"email":    "alice@example.com",
		"password": "short",
	})
	check.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"email":    "alice@example.com",
		"password": "secret1",
	})
	check.Equal(t, http.StatusOK, rec.Code)
}

func TestServer_LoginReturnsTokenHeaderAndBody(t *testing.T) {
	userID := uuid.New()
	router := newTestRouter(t, &stubServices{
		login: func(email, password string) (string, error) {
			return userID.String(), nil
		},
	})

	rec := doJSON(t, router, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "secret1",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	check.Equal(t, userID.String(), rec.Header().Get("auth-token"))

	var body map[string]string
	assert.Nil(t, json.Unmarshal(rec.Body.Bytes(), &body))
	check.Equal(t, userID.String(), body["auth-token"])
}

func TestServer_PlaceBidRoutesCallerAndAuction(t *testing.T) {
	caller := uuid.New()
	auctionID := uuid.New()

	var got inbound.PlaceBidRequest
	router := newTestRouter(t, &stubServices{
		placeBid: func(req inbound.PlaceBidRequest) (*bid.Bid, error) {
			got = req
			return &bid.Bid{ID: uuid.New(), AuctionID: req.AuctionID, UserID: req.BidderID, Amount: req.Amount}, nil
		},
	})

	rec := doJSON(t, router, http.MethodPost, "/api/auction/"+auctionID.String()+"/bid", caller.String(), map[string]interface{}{
		"amount": 150,
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	check.Equal(t, auctionID, got.AuctionID)
	check.Equal(t, caller, got.BidderID)
	check.True(t, got.Amount.Equal(decimal.NewFromInt(150)))
}

func TestServer_ErrorMapping(t *testing.T) {
	auctionID := uuid.New()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"insufficient amount", shared.ErrInsufficientAmount, http.StatusUnprocessableEntity},
		{"own auction", shared.ErrBidOnOwnAuction, http.StatusForbidden},
		{"not open", shared.ErrAuctionNotOpen, http.StatusConflict},
		{"not found", shared.ErrAuctionNotFound, http.StatusNotFound},
		{"bad amount", shared.ErrBidAmountInvalid, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(t, &stubServices{
				placeBid: func(inbound.PlaceBidRequest) (*bid.Bid, error) { return nil, tt.err },
			})

			rec := doJSON(t, router, http.MethodPost, "/api/auction/"+auctionID.String()+"/bid", uuid.NewString(), map[string]interface{}{
				"amount": 150,
			})
			check.Equal(t, tt.want, rec.Code)

			var body map[string]string
			assert.Nil(t, json.Unmarshal(rec.Body.Bytes(), &body))
			check.Equal(t, tt.err.Error(), body["error"])
		})
	}
}

func TestServer_InternalErrorsMasked(t *testing.T) {
	router := newTestRouter(t, &stubServices{
		placeBid: func(inbound.PlaceBidRequest) (*bid.Bid, error) {
			return nil, shared.ErrSecretMissing
		},
	})

	rec := doJSON(t, router, http.MethodPost, "/api/auction/"+uuid.NewString()+"/bid", uuid.NewString(), map[string]interface{}{
		"amount": 150,
	})
	check.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]string
	assert.Nil(t, json.Unmarshal(rec.Body.Bytes(), &body))
	check.Equal(t, "internal server error", body["error"])
}

func TestServer_ItemRouteNotShadowedByAuctionID(t *testing.T) {
	itemID := uuid.New()
	router := newTestRouter(t, &stubServices{
		getAuction: func(uuid.UUID) (*auction.Expanded, error) {
			t.Fatal("auction handler should not serve item routes")
			return nil, nil
		},
	})

	// Served by the item handler: the stub reports item-not-found.
	rec := doJSON(t, router, http.MethodGet, "/api/auction/item/"+itemID.String(), uuid.NewString(), nil)
	check.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]string
	assert.Nil(t, json.Unmarshal(rec.Body.Bytes(), &body))
	check.Equal(t, shared.ErrItemNotFound.Error(), body["error"])
}
