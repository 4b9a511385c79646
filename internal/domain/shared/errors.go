package shared

import "errors"

// Domain-specific errors
var (
	// Auction errors
	ErrAuctionNotFound     = errors.New("auction not found")
	ErrAuctionNotOpen      = errors.New("auction is not open for bidding")
	ErrAuctionClosed       = errors.New("auction is closed")
	ErrNotAuctionCreator   = errors.New("auction not created by user")
	ErrAuctionHasBids      = errors.New("bids have been made, cannot change item now")
	ErrActiveAuctionExists = errors.New("active auction exists for item")
	ErrInvalidStartBid     = errors.New("starting bid must be greater than 0")
	ErrStartAfterEnd       = errors.New("start date must not come after end date")
	ErrStartDateLocked     = errors.New("start date can only change before the auction opens")

	// Bid errors
	ErrBidNotFound        = errors.New("bid not found")
	ErrBidAmountInvalid   = errors.New("bid amount must be greater than 0")
	ErrInsufficientAmount = errors.New("insufficient amount")
	ErrBidOnOwnAuction    = errors.New("cannot bid on own auction")

	// Item errors
	ErrItemNotFound     = errors.New("item not found")
	ErrItemNotOwned     = errors.New("user does not own item")
	ErrInvalidCondition = errors.New("condition must be new or used")

	// User errors
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already exists")
	ErrBadPassword  = errors.New("password is wrong")

	// Auth errors
	ErrAccessDenied  = errors.New("access denied")
	ErrInvalidToken  = errors.New("invalid token")
	ErrSecretMissing = errors.New("server error: secret missing")

	// Validation errors
	ErrInvalidDateFormat = errors.New("date must have format DD-MM-YYYY")
	ErrInvalidRequest    = errors.New("invalid request")

	// Database errors
	ErrDatabaseConnection  = errors.New("database connection failed")
	ErrDatabaseQuery       = errors.New("database query failed")
	ErrDatabaseTransaction = errors.New("database transaction failed")
)
