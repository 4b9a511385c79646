package app

import (
	"context"
	"time"

	"auction-marketplace-service/internal/domain/shared"
	"auction-marketplace-service/internal/ports/inbound"
	"auction-marketplace-service/internal/ports/outbound"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// UserService implements account and profile use cases. Token issuance and
// password hashing are delegated to the auth collaborators.
type UserService struct {
	userRepo outbound.UserRepository
	tokens   outbound.TokenManager
	hasher   outbound.PasswordHasher
	logger   zerolog.Logger
}

type UserServiceParams struct {
	UserRepo outbound.UserRepository
	Tokens   outbound.TokenManager
	Hasher   outbound.PasswordHasher
	Logger   zerolog.Logger
}

// NewUserService creates a new user service
func NewUserService(params UserServiceParams) *UserService {
	return &UserService{
		userRepo: params.UserRepo,
		tokens:   params.Tokens,
		hasher:   params.Hasher,
		logger:   params.Logger.With().Str("component", "user_service").Logger(),
	}
}

// Register creates an account with a hashed password
func (s *UserService) Register(ctx context.Context, req inbound.RegisterRequest) (*shared.User, error) {
	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		s.logger.Error().Err(err).Str("email", req.Email).Msg("Failed to check for existing email")
		return nil, err
	}
	if existing != nil {
		s.logger.Warn().Str("email", req.Email).Msg("Email already registered")
		return nil, shared.ErrEmailTaken
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to hash password")
		return nil, err
	}

	user := &shared.User{
		ID:           uuid.New(),
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
		AuctionIDs:   []uuid.UUID{},
		BidIDs:       []uuid.UUID{},
		CreatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		s.logger.Error().Err(err).Str("email", req.Email).Msg("Failed to create user")
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID.String()).Msg("User registered")
	return user, nil
}

// Login verifies credentials and issues an identity token
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		s.logger.Error().Err(err).Str("email", email).Msg("Failed to look up user")
		return "", err
	}
	if user == nil {
		return "", shared.ErrUserNotFound
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		s.logger.Warn().Str("user_id", user.ID.String()).Msg("Password mismatch")
		return "", shared.ErrBadPassword
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID.String()).Msg("Failed to issue token")
		return "", err
	}

	s.logger.Info().Str("user_id", user.ID.String()).Msg("User logged in")
	return token, nil
}

// GetProfile retrieves a user's public profile
func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*shared.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// UpdateProfile updates the actor's own profile
func (s *UserService) UpdateProfile(ctx context.Context, req inbound.UpdateProfileRequest) (*shared.User, error) {
	user, err := s.userRepo.GetByID(ctx, req.ActorID)
	if err != nil {
		return nil, err
	}

	if req.Email != "" && req.Email != user.Email {
		existing, err := s.userRepo.GetByEmail(ctx, req.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, shared.ErrEmailTaken
		}
		user.Email = req.Email
	}
	if req.Name != "" {
		user.Name = req.Name
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID.String()).Msg("Failed to update user")
		return nil, err
	}

	return user, nil
}
