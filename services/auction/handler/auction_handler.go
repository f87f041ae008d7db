package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pH14/mini-auction/internal/models"
	"github.com/pH14/mini-auction/services/auction/helpers"
	"github.com/pH14/mini-auction/utils"
)

type AuctionServiceInterface interface {
	CreateAuction(ctx context.Context, auction models.Auction) error
	CloseAuction(ctx context.Context, auction models.Auction) error
	GetAuctionState(ctx context.Context, auction models.Auction) (models.AuctionState, error)
	RegisterBidder(ctx context.Context, bidder models.Bidder) error
	SubmitBid(ctx context.Context, bid models.Bid) error
	ListBidsForAuction(ctx context.Context, auction models.Auction) ([]models.Bid, error)
	ListBidsForBidder(ctx context.Context, bidder models.Bidder) ([]models.Bid, error)
}

type AuctionHandler struct {
	service AuctionServiceInterface
}

func NewAuctionHandler(service AuctionServiceInterface) *AuctionHandler {
	return &AuctionHandler{service: service}
}

// CreateAuctionHandler handles POST /auctions
func (h *AuctionHandler) CreateAuctionHandler(c *gin.Context) {
	var req helpers.AuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateAuctionHandler", err)
		return
	}

	auction := models.Auction{Name: req.Name, Description: req.Description}
	if err := h.service.CreateAuction(c.Request.Context(), auction); err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("CreateAuctionHandler: failed to create auction", map[string]any{
			"name":        req.Name,
			"description": req.Description,
			"error":       err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, req, "auction created successfully")
	helpers.LogSuccess("CreateAuctionHandler", "auction created successfully", map[string]any{
		"name":        req.Name,
		"description": req.Description,
	})
}

// CloseAuctionHandler handles POST /auctions/close
func (h *AuctionHandler) CloseAuctionHandler(c *gin.Context) {
	var req helpers.AuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CloseAuctionHandler", err)
		return
	}

	auction := models.Auction{Name: req.Name, Description: req.Description}
	if err := h.service.CloseAuction(c.Request.Context(), auction); err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("CloseAuctionHandler: failed to close auction", map[string]any{
			"name":  req.Name,
			"error": err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, req, "auction closed successfully")
	helpers.LogSuccess("CloseAuctionHandler", "auction closed successfully", map[string]any{
		"name": req.Name,
	})
}

// GetAuctionStateHandler handles GET /auctions/state?name=..&description=..
func (h *AuctionHandler) GetAuctionStateHandler(c *gin.Context) {
	auction, ok := auctionFromQuery(c, "GetAuctionStateHandler")
	if !ok {
		return
	}

	state, err := h.service.GetAuctionState(c.Request.Context(), auction)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetAuctionStateHandler: failed to read auction state", map[string]any{
			"name":  auction.Name,
			"error": err.Error(),
		})
		return
	}

	resp := helpers.AuctionStateResponse{
		Name:          auction.Name,
		Description:   auction.Description,
		Status:        string(state.Status),
		HighestBid:    state.HighestBid.String(),
		WinningBidder: state.WinningBidder,
		BidCount:      state.BidCount,
	}

	utils.JSONResponse(c, http.StatusOK, resp, "auction state retrieved successfully")
}

// RegisterBidderHandler handles POST /bidders
func (h *AuctionHandler) RegisterBidderHandler(c *gin.Context) {
	var req helpers.RegisterBidderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "RegisterBidderHandler", err)
		return
	}

	bidder := models.Bidder{Name: req.Name, DisplayName: req.DisplayName}
	if err := h.service.RegisterBidder(c.Request.Context(), bidder); err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("RegisterBidderHandler: failed to register bidder", map[string]any{
			"name":  req.Name,
			"error": err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, req, "bidder registered successfully")
	helpers.LogSuccess("RegisterBidderHandler", "bidder registered successfully", map[string]any{
		"name": req.Name,
	})
}

// SubmitBidHandler handles POST /bids
func (h *AuctionHandler) SubmitBidHandler(c *gin.Context) {
	var req helpers.SubmitBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "SubmitBidHandler", err)
		return
	}

	bid := models.Bid{
		Bidder:  models.Bidder{Name: req.BidderName},
		Auction: models.Auction{Name: req.AuctionName, Description: req.AuctionDescription},
		Amount:  req.Amount,
	}

	if err := h.service.SubmitBid(c.Request.Context(), bid); err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("SubmitBidHandler: bid rejected", map[string]any{
			"auction_name": req.AuctionName,
			"bidder_name":  req.BidderName,
			"amount":       req.Amount.String(),
			"error":        err.Error(),
		})
		return
	}

	resp := helpers.BidResponse{
		BidderName:         req.BidderName,
		AuctionName:        req.AuctionName,
		AuctionDescription: req.AuctionDescription,
		Amount:             req.Amount.String(),
	}

	utils.JSONResponse(c, http.StatusCreated, resp, "bid accepted")
	helpers.LogSuccess("SubmitBidHandler", "bid accepted", map[string]any{
		"auction_name": req.AuctionName,
		"bidder_name":  req.BidderName,
		"amount":       req.Amount.String(),
	})
}

// ListAuctionBidsHandler handles GET /auctions/bids?name=..&description=..
func (h *AuctionHandler) ListAuctionBidsHandler(c *gin.Context) {
	auction, ok := auctionFromQuery(c, "ListAuctionBidsHandler")
	if !ok {
		return
	}

	bids, err := h.service.ListBidsForAuction(c.Request.Context(), auction)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("ListAuctionBidsHandler: failed to list bids", map[string]any{
			"name":  auction.Name,
			"error": err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, bidResponses(bids), "bids retrieved successfully")
}

// ListBidderBidsHandler handles GET /bidders/:name/bids
func (h *AuctionHandler) ListBidderBidsHandler(c *gin.Context) {
	bidder := models.Bidder{Name: c.Param("name")}

	bids, err := h.service.ListBidsForBidder(c.Request.Context(), bidder)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("ListBidderBidsHandler: failed to list bids", map[string]any{
			"name":  bidder.Name,
			"error": err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, bidResponses(bids), "bids retrieved successfully")
}

func auctionFromQuery(c *gin.Context, handlerName string) (models.Auction, bool) {
	name := c.Query("name")
	description := c.Query("description")
	if name == "" {
		utils.JSONError(c, http.StatusBadRequest, nil, "missing required query parameter: name")
		utils.Warn(handlerName+": missing name query parameter", nil)
		return models.Auction{}, false
	}
	return models.Auction{Name: name, Description: description}, true
}

func bidResponses(bids []models.Bid) []helpers.BidResponse {
	out := make([]helpers.BidResponse, 0, len(bids))
	for _, bid := range bids {
		out = append(out, helpers.BidResponse{
			BidderName:         bid.Bidder.Name,
			AuctionName:        bid.Auction.Name,
			AuctionDescription: bid.Auction.Description,
			Amount:             bid.Amount.String(),
		})
	}
	return out
}
