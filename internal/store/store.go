// Package store abstracts an ordered key-value store offering atomic
// multi-key transactions with conflict-based retry. The auction engine never
// locks; it relies entirely on this contract for cross-process safety.
package store

import (
	"context"
	"errors"
)

// Store-level errors. ErrConflict is transient and consumed by RunTransaction's
// retry loop; it surfaces only when retries are exhausted. ErrUnavailable and
// every other error class propagate immediately without retry.
var (
	ErrConflict    = errors.New("transaction conflict")
	ErrUnavailable = errors.New("store unavailable")
)

// KeyValue is one decoded pair from a ranged read.
type KeyValue struct {
	Key   []byte
	Value []byte
}

// Transaction is the handle passed to a transaction function. All reads see a
// consistent snapshot; all writes commit atomically or not at all.
type Transaction interface {
	// Get returns the value stored at key, or nil if the key is absent.
	Get(key []byte) ([]byte, error)

	// GetRange returns every pair whose key starts with prefix, in ascending
	// key order.
	GetRange(prefix []byte) ([]KeyValue, error)

	// Set writes value at key, visible to this transaction's own reads
	// immediately and to others only after commit.
	Set(key, value []byte)

	// Clear removes key.
	Clear(key []byte)

	// ClearRange removes every key starting with prefix.
	ClearRange(prefix []byte)
}

// TransactionalStore runs transaction functions with automatic retry on
// conflict.
type TransactionalStore interface {
	// RunTransaction executes fn within one transaction and commits it
	// atomically. On a detected conflict with a concurrent transaction, fn is
	// re-invoked from scratch against fresh state, so fn must be free of side
	// effects outside the transaction handle. Any error returned by fn aborts
	// the transaction and is returned unwrapped.
	RunTransaction(ctx context.Context, fn func(tx Transaction) error) error
}
