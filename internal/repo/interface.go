package repo

import (
	"context"
	"errors"

	"github.com/BuzzLyutic/taskseed-api/internal/model"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrUnknownIndex = errors.New("unknown index")
)

// SortAttr orders every secondary index.
const SortAttr = model.AttrCreatedAt

// Schema binds a store instance to one table.
type Schema struct {
	Table string
	Key   string
	// Indexes maps an index name to the attribute it is partitioned on.
	Indexes map[string]string
}

// ItemStore определяет интерфейс хранилища записей одной таблицы
type ItemStore interface {
	Get(ctx context.Context, key string) (model.Item, error)
	// Put overwrites whatever is stored under the item's key.
	Put(ctx context.Context, item model.Item) (model.Item, error)
	// Delete does not fail when the key is absent.
	Delete(ctx context.Context, key string) error
	// Query matches value against the index attribute, or the key when index is "".
	// Results are ordered by SortAttr ascending.
	Query(ctx context.Context, index, value string) ([]model.Item, error)
	Scan(ctx context.Context) ([]model.Item, error)
}

// Attr resolves the attribute queried for index.
func (s Schema) Attr(index string) (string, error) {
	if index == "" {
		return s.Key, nil
	}
	attr, ok := s.Indexes[index]
	if !ok {
		return "", ErrUnknownIndex
	}
	return attr, nil
}
