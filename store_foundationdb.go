//go:build foundationdb

package main

import (
	"fmt"
	"os"

	"github.com/pH14/mini-auction/internal/store"
)

// newStoreFromEnv selects the backing store via AUCTION_STORE: "memory" or
// "foundationdb" (the default under this build tag). FDB_CLUSTER_FILE points
// at the cluster file; empty means the client's default.
func newStoreFromEnv() (store.TransactionalStore, error) {
	switch backend := os.Getenv("AUCTION_STORE"); backend {
	case "memory":
		return store.NewMemoryStore(), nil
	case "", "foundationdb":
		return store.OpenFoundationDB(os.Getenv("FDB_CLUSTER_FILE"), 0)
	default:
		return nil, fmt.Errorf("unknown store %q", backend)
	}
}
