package server

import (
	"github.com/gin-gonic/gin"

	"github.com/pH14/mini-auction/internal/engine"
	handler "github.com/pH14/mini-auction/services/auction/handler"
)

// SetupRouter configures all Gin routes for the application
func SetupRouter(auctionEngine *engine.AuctionEngine) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestIDMiddleware)     // tag every request for log correlation
	router.Use(RequestLoggerMiddleware) // custom request logging

	auctionHandler := handler.NewAuctionHandler(auctionEngine)

	auctions := router.Group("/auctions")
	{
		auctions.POST("", auctionHandler.CreateAuctionHandler)
		auctions.POST("/close", auctionHandler.CloseAuctionHandler)
		auctions.GET("/state", auctionHandler.GetAuctionStateHandler)
		auctions.GET("/bids", auctionHandler.ListAuctionBidsHandler)
	}

	bidders := router.Group("/bidders")
	{
		bidders.POST("", auctionHandler.RegisterBidderHandler)
		bidders.GET("/:name/bids", auctionHandler.ListBidderBidsHandler)
	}

	bids := router.Group("/bids")
	{
		bids.POST("", auctionHandler.SubmitBidHandler)
	}

	return router
}
