package main

import (
	"fmt"
	"os"

	"github.com/pH14/mini-auction/internal/engine"
	"github.com/pH14/mini-auction/internal/server"
)

func main() {
	st, err := newStoreFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open store: %v\n", err)
		os.Exit(1)
	}

	auctionEngine := engine.NewAuctionEngine(st)

	router := server.SetupRouter(auctionEngine)

	port := getPort()
	fmt.Printf("Starting auction server on %s...\n", port)
	if err := router.Run(port); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start server: %v\n", err)
		os.Exit(1)
	}
}

// getPort returns the server port from env or defaults to ":8080"
func getPort() string {
	if p := os.Getenv("PORT"); p != "" {
		return fmt.Sprintf(":%s", p)
	}
	return ":8080"
}
