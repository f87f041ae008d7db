//go:build foundationdb

package store

import (
	"context"
	"fmt"

	"github.com/apple/foundationdb/bindings/go/src/fdb"
)

// DefaultAPIVersion is the FoundationDB client API version requested when the
// caller has no preference.
const DefaultAPIVersion = 620

// FoundationDB adapts a FoundationDB database to TransactionalStore. The
// binding's Transact already implements the commit-or-retry loop: the
// transaction function is re-invoked on retryable errors (conflicts) and
// non-retryable errors propagate. Requires the FoundationDB C client library,
// hence the build tag.
type FoundationDB struct {
	db fdb.Database
}

// OpenFoundationDB selects the API version and opens the cluster described by
// clusterFile (the default cluster file when empty).
func OpenFoundationDB(clusterFile string, apiVersion int) (*FoundationDB, error) {
	if apiVersion == 0 {
		apiVersion = DefaultAPIVersion
	}
	fdb.MustAPIVersion(apiVersion)

	db, err := fdb.Open(clusterFile, []byte("DB"))
	if err != nil {
		return nil, fmt.Errorf("open foundationdb cluster %q: %w", clusterFile, err)
	}
	return &FoundationDB{db: db}, nil
}

// RunTransaction implements TransactionalStore.
func (s *FoundationDB) RunTransaction(ctx context.Context, fn func(tx Transaction) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := s.db.Transact(func(tr fdb.Transaction) (interface{}, error) {
		return nil, fn(fdbTxn{tr: tr})
	})
	return err
}

type fdbTxn struct {
	tr fdb.Transaction
}

func (t fdbTxn) Get(key []byte) ([]byte, error) {
	return t.tr.Get(fdb.Key(key)).Get()
}

func (t fdbTxn) GetRange(prefix []byte) ([]KeyValue, error) {
	keyRange, err := fdb.PrefixRange(fdb.Key(prefix))
	if err != nil {
		return nil, err
	}

	var result []KeyValue
	it := t.tr.GetRange(keyRange, fdb.RangeOptions{}).Iterator()
	for it.Advance() {
		kv, err := it.Get()
		if err != nil {
			return nil, err
		}
		result = append(result, KeyValue{Key: kv.Key, Value: kv.Value})
	}
	return result, nil
}

func (t fdbTxn) Set(key, value []byte) {
	t.tr.Set(fdb.Key(key), value)
}

func (t fdbTxn) Clear(key []byte) {
	t.tr.Clear(fdb.Key(key))
}

func (t fdbTxn) ClearRange(prefix []byte) {
	keyRange, err := fdb.PrefixRange(fdb.Key(prefix))
	if err != nil {
		return
	}
	t.tr.ClearRange(keyRange)
}
