package repo

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/BuzzLyutic/taskseed-api/internal/model"
)

type memoryEntry struct {
	item model.Item
	seq  uint64
}

// MemoryStore keeps one table in process memory. Used for tests and local runs.
type MemoryStore struct {
	schema Schema

	mu    sync.RWMutex
	items map[string]memoryEntry
	seq   uint64
}

func NewMemoryStore(schema Schema) *MemoryStore {
	return &MemoryStore{
		schema: schema,
		items:  make(map[string]memoryEntry),
	}
}

func (m *MemoryStore) Get(_ context.Context, key string) (model.Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.items[key]
	if !ok {
		return nil, ErrNotFound
	}
	return e.item.Clone(), nil
}

func (m *MemoryStore) Put(_ context.Context, item model.Item) (model.Item, error) {
	key := item.Str(m.schema.Key)
	if key == "" {
		return nil, fmt.Errorf("%s: item has no %q key", m.schema.Table, m.schema.Key)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	seq := m.seq
	if e, ok := m.items[key]; ok {
		seq = e.seq
	} else {
		m.seq++
	}
	m.items[key] = memoryEntry{item: item.Clone(), seq: seq}
	return item, nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.items, key)
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Query(_ context.Context, index, value string) ([]model.Item, error) {
	attr, err := m.schema.Attr(index)
	if err != nil {
		return nil, fmt.Errorf("%s: %w %q", m.schema.Table, err, index)
	}

	m.mu.RLock()
	matched := make([]memoryEntry, 0)
	for _, e := range m.items {
		if e.item.Str(attr) == value {
			matched = append(matched, e)
		}
	}
	m.mu.RUnlock()

	// createdAt ties fall back to insertion order
	sort.Slice(matched, func(i, j int) bool {
		ci, cj := matched[i].item.Str(SortAttr), matched[j].item.Str(SortAttr)
		if ci != cj {
			return ci < cj
		}
		return matched[i].seq < matched[j].seq
	})

	out := make([]model.Item, 0, len(matched))
	for _, e := range matched {
		out = append(out, e.item.Clone())
	}
	return out, nil
}

func (m *MemoryStore) Scan(_ context.Context) ([]model.Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]model.Item, 0, len(m.items))
	for _, e := range m.items {
		out = append(out, e.item.Clone())
	}
	return out, nil
}
