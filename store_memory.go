//go:build !foundationdb

package main

import (
	"fmt"
	"os"

	"github.com/pH14/mini-auction/internal/store"
)

// newStoreFromEnv selects the backing store via AUCTION_STORE. Without the
// foundationdb build tag only the in-memory store is available.
func newStoreFromEnv() (store.TransactionalStore, error) {
	switch backend := os.Getenv("AUCTION_STORE"); backend {
	case "", "memory":
		return store.NewMemoryStore(), nil
	case "foundationdb":
		return nil, fmt.Errorf("store %q requires building with the foundationdb tag", backend)
	default:
		return nil, fmt.Errorf("unknown store %q", backend)
	}
}
