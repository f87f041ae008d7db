package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// AuctionStatus is the lifecycle state of an auction.
type AuctionStatus string

const (
	AuctionOpen   AuctionStatus = "OPEN"
	AuctionClosed AuctionStatus = "CLOSED"
)

// Auction identifies an auction item. The (Name, Description) pair is unique
// by convention; the store does not enforce it beyond the create-time
// existence check.
type Auction struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (a Auction) String() string {
	return fmt.Sprintf("Auction(%s, %s)", a.Name, a.Description)
}

// AuctionState is the persisted, mutable state of an auction. HighestBid and
// WinningBidder always change together within one transaction; BidCount
// equals the number of accepted bids.
type AuctionState struct {
	Status        AuctionStatus   `json:"status"`
	HighestBid    decimal.Decimal `json:"highest_bid"`
	WinningBidder string          `json:"winning_bidder"`
	BidCount      uint64          `json:"bid_count"`
}

// Bidder identifies a registered bidder. Name is unique by convention.
type Bidder struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
}

func (b Bidder) String() string {
	return fmt.Sprintf("Bidder(%s)", b.Name)
}

// Bid is a value object tying a bidder to an auction with an amount. Bids are
// never stored as mutable records; accepted bids land as immutable entries in
// the per-auction and per-bidder logs.
type Bid struct {
	Bidder  Bidder          `json:"bidder"`
	Auction Auction         `json:"auction"`
	Amount  decimal.Decimal `json:"amount"`
}

func (b Bid) String() string {
	return fmt.Sprintf("Bid(%s, %s, %q, $%s)", b.Bidder.Name, b.Auction.Name, b.Auction.Description, b.Amount.StringFixed(2))
}
