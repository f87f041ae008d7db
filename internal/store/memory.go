package store

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/btree"
)

// DefaultRetryLimit bounds how many times a MemoryStore transaction is
// re-executed after conflicts before giving up.
const DefaultRetryLimit = 100

// MemoryStore is an ordered in-memory TransactionalStore with optimistic
// concurrency: each transaction tracks its read set and validates at commit
// that nothing it read has been committed over since the transaction began.
// It exists so the engine can be exercised without a FoundationDB cluster;
// the conflict-and-retry contract matches the real store's.
type MemoryStore struct {
	mu         sync.Mutex
	tree       *btree.BTreeG[kvItem]
	committed  map[string]uint64 // key -> version of its last committed write or clear
	version    uint64
	retryLimit int
}

type kvItem struct {
	key   []byte
	value []byte
}

func kvLess(a, b kvItem) bool {
	return bytes.Compare(a.key, b.key) < 0
}

// NewMemoryStore creates an empty store with DefaultRetryLimit.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tree:       btree.NewG(16, kvLess),
		committed:  map[string]uint64{},
		retryLimit: DefaultRetryLimit,
	}
}

// RunTransaction implements TransactionalStore. fn may run multiple times;
// only a validated execution commits.
func (s *MemoryStore) RunTransaction(ctx context.Context, fn func(tx Transaction) error) error {
	for attempt := 0; attempt < s.retryLimit; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		tx := s.begin()
		if err := fn(tx); err != nil {
			return err
		}
		if s.commit(tx) {
			return nil
		}
	}
	return fmt.Errorf("memory store: retry limit %d reached: %w", s.retryLimit, ErrConflict)
}

func (s *MemoryStore) begin() *memoryTxn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &memoryTxn{
		store:       s,
		readVersion: s.version,
		reads:       map[string]struct{}{},
		writes:      map[string][]byte{},
		cleared:     map[string]struct{}{},
	}
}

// commit validates the transaction's reads against commits that landed after
// its read version, then applies its writes under the store lock.
func (s *MemoryStore) commit(tx *memoryTxn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key := range tx.reads {
		if s.committed[key] > tx.readVersion {
			return false
		}
	}
	for key, version := range s.committed {
		if version <= tx.readVersion {
			continue
		}
		for _, prefix := range tx.rangeReads {
			if strings.HasPrefix(key, prefix) {
				return false
			}
		}
	}

	s.version++
	for key := range tx.cleared {
		s.tree.Delete(kvItem{key: []byte(key)})
		s.committed[key] = s.version
	}
	for key, value := range tx.writes {
		s.tree.ReplaceOrInsert(kvItem{key: []byte(key), value: value})
		s.committed[key] = s.version
	}
	return true
}

type memoryTxn struct {
	store       *MemoryStore
	readVersion uint64
	reads       map[string]struct{}
	rangeReads  []string
	writes      map[string][]byte
	cleared     map[string]struct{}
}

func (t *memoryTxn) Get(key []byte) ([]byte, error) {
	k := string(key)
	if value, ok := t.writes[k]; ok {
		return cloneValue(value), nil
	}
	if _, ok := t.cleared[k]; ok {
		return nil, nil
	}

	t.reads[k] = struct{}{}

	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if item, ok := t.store.tree.Get(kvItem{key: key}); ok {
		return cloneValue(item.value), nil
	}
	return nil, nil
}

func (t *memoryTxn) GetRange(prefix []byte) ([]KeyValue, error) {
	t.rangeReads = append(t.rangeReads, string(prefix))

	merged := map[string][]byte{}

	t.store.mu.Lock()
	t.store.tree.AscendGreaterOrEqual(kvItem{key: prefix}, func(item kvItem) bool {
		if !bytes.HasPrefix(item.key, prefix) {
			return false
		}
		merged[string(item.key)] = item.value
		return true
	})
	t.store.mu.Unlock()

	// Overlay this transaction's own pending effects.
	for key := range t.cleared {
		if strings.HasPrefix(key, string(prefix)) {
			delete(merged, key)
		}
	}
	for key, value := range t.writes {
		if strings.HasPrefix(key, string(prefix)) {
			merged[key] = value
		}
	}

	ordered := make([]string, 0, len(merged))
	for key := range merged {
		ordered = append(ordered, key)
	}
	sort.Strings(ordered)

	result := make([]KeyValue, 0, len(ordered))
	for _, key := range ordered {
		result = append(result, KeyValue{Key: []byte(key), Value: cloneValue(merged[key])})
	}
	return result, nil
}

func (t *memoryTxn) Set(key, value []byte) {
	k := string(key)
	delete(t.cleared, k)
	t.writes[k] = cloneValue(value)
}

func (t *memoryTxn) Clear(key []byte) {
	k := string(key)
	delete(t.writes, k)
	t.cleared[k] = struct{}{}
}

func (t *memoryTxn) ClearRange(prefix []byte) {
	// Clearing a range conflicts with any concurrent write into it, so the
	// prefix joins the read set via GetRange.
	pairs, _ := t.GetRange(prefix)
	for _, pair := range pairs {
		t.Clear(pair.Key)
	}
}

func cloneValue(v []byte) []byte {
	if v == nil {
		return nil
	}
	return append([]byte{}, v...)
}
