package docstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/layerforge/layering/clone"
)

// MemoryStore is an in-process Store, useful for tests and for local use
// without a live etcd cluster. It is safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	buckets map[string][]map[string]any
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{buckets: make(map[string][]map[string]any)}
}

// Get returns a deep copy of bucket's documents.
func (m *MemoryStore) Get(_ context.Context, bucket string) ([]map[string]any, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	docs, ok := m.buckets[bucket]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrBucketNotFound, bucket)
	}

	out := make([]map[string]any, len(docs))
	for i, d := range docs {
		out[i], _ = clone.Copy(d).(map[string]any) //nolint:errcheck
	}

	return out, nil
}

// Put stores a deep copy of docs under bucket, replacing any prior contents.
func (m *MemoryStore) Put(_ context.Context, bucket string, docs []map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]map[string]any, len(docs))
	for i, d := range docs {
		stored[i], _ = clone.Copy(d).(map[string]any) //nolint:errcheck
	}

	m.buckets[bucket] = stored

	return nil
}

// List returns every bucket name currently stored, sorted for determinism.
func (m *MemoryStore) List(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.buckets))
	for name := range m.buckets {
		names = append(names, name)
	}

	sort.Strings(names)

	return names, nil
}
