package httpapi

import (
	"context"
	"net"
	"net/http"
	"time"

	"auction-marketplace-service/internal/config"
	"auction-marketplace-service/internal/ports/inbound"
	"auction-marketplace-service/internal/ports/outbound"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// Server is the HTTP boundary. It parses and validates requests, attaches
// the authenticated identity, and maps typed errors to statuses; all domain
// decisions stay in the services.
type Server struct {
	httpServer *http.Server
	logger     zerolog.Logger
}

type ServerParams struct {
	Config         *config.Config
	AuctionService inbound.AuctionService
	BidService     inbound.BidService
	ItemService    inbound.ItemService
	UserService    inbound.UserService
	Tokens         outbound.TokenManager
	Logger         zerolog.Logger
}

// NewServer creates the HTTP server with all routes registered
func NewServer(params ServerParams) *Server {
	h := &handler{
		auctions: params.AuctionService,
		bids:     params.BidService,
		items:    params.ItemService,
		users:    params.UserService,
		tokens:   params.Tokens,
		logger:   params.Logger.With().Str("component", "http_server").Logger(),
	}

	router := mux.NewRouter()
	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/auth/signup", h.handleSignup).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", h.handleLogin).Methods(http.MethodPost)

	authed := api.NewRoute().Subrouter()
	authed.Use(h.requireAuth)
	authed.HandleFunc("/user/{id}", h.handleGetUser).Methods(http.MethodGet)
	authed.HandleFunc("/user", h.handleUpdateUser).Methods(http.MethodPatch)

	authed.HandleFunc("/auctions", h.handleListAuctions).Methods(http.MethodGet)
	authed.HandleFunc("/auction", h.handleCreateAuction).Methods(http.MethodPost)

	// Item routes are registered before the {id} routes so "item" never
	// matches as an auction ID.
	authed.HandleFunc("/auction/item", h.handleCreateItem).Methods(http.MethodPost)
	authed.HandleFunc("/auction/item/{id}", h.handleGetItem).Methods(http.MethodGet)
	authed.HandleFunc("/auction/item/{id}", h.handleUpdateItem).Methods(http.MethodPatch)

	authed.HandleFunc("/auction/{id}", h.handleGetAuction).Methods(http.MethodGet)
	authed.HandleFunc("/auction/{id}", h.handleUpdateAuction).Methods(http.MethodPatch)
	authed.HandleFunc("/auction/{id}", h.handleDeleteAuction).Methods(http.MethodDelete)
	authed.HandleFunc("/auction/{id}/bid", h.handlePlaceBid).Methods(http.MethodPost)

	authed.HandleFunc("/bids", h.handleGetBids).Methods(http.MethodGet)

	return &Server{
		httpServer: &http.Server{
			Addr:         net.JoinHostPort(params.Config.Server.Host, params.Config.Server.Port),
			Handler:      router,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: params.Logger.With().Str("component", "http_server").Logger(),
	}
}

// Start begins serving requests and blocks until the server stops
func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.httpServer.Addr).Msg("Starting HTTP server")
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop gracefully shuts the server down
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info().Msg("Stopping HTTP server")
	return s.httpServer.Shutdown(ctx)
}
