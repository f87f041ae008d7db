package helpers

import "github.com/shopspring/decimal"

// Request/Response DTOs. Auction identity is the (name, description) pair, so
// it travels in request bodies and query parameters rather than URL paths.

type AuctionRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
}

type RegisterBidderRequest struct {
	Name        string `json:"name" binding:"required"`
	DisplayName string `json:"display_name"`
}

type SubmitBidRequest struct {
	AuctionName        string          `json:"auction_name" binding:"required"`
	AuctionDescription string          `json:"auction_description" binding:"required"`
	BidderName         string          `json:"bidder_name" binding:"required"`
	Amount             decimal.Decimal `json:"amount" binding:"required"`
}

type AuctionStateResponse struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	Status        string `json:"status"`
	HighestBid    string `json:"highest_bid"`
	WinningBidder string `json:"winning_bidder"`
	BidCount      uint64 `json:"bid_count"`
}

type BidResponse struct {
	BidderName         string `json:"bidder_name"`
	AuctionName        string `json:"auction_name"`
	AuctionDescription string `json:"auction_description"`
	Amount             string `json:"amount"`
}
