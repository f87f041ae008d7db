package auctionerrors

import "errors"

// Precondition-violation errors. Each rejected operation reports the specific
// precondition it failed, never a generic failure, and is never retried by
// the engine.
var (
	ErrAuctionExists   = errors.New("auction already exists")
	ErrBidderExists    = errors.New("bidder already exists")
	ErrAuctionNotFound = errors.New("auction not found")
	ErrBidderNotFound  = errors.New("bidder not found")
	ErrAuctionClosed   = errors.New("auction is closed")
	ErrBidTooLow       = errors.New("bid amount too low")
	ErrAlreadyWinning  = errors.New("bidder already holds the winning bid")
)

// Input validation errors
var (
	ErrInvalidInput = errors.New("invalid input")
)
