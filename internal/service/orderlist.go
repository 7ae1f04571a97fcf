package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/BuzzLyutic/taskseed-api/internal/model"
	"github.com/BuzzLyutic/taskseed-api/internal/repo"
)

// OrderListService reads and writes the per-parent ordering lists.
type OrderListService struct {
	store repo.ItemStore
	opts  options
}

func NewOrderListService(store repo.ItemStore, opts ...Option) *OrderListService {
	return &OrderListService{
		store: store,
		opts:  buildOptions(opts),
	}
}

// Get returns the lists stored under listKey: empty when no custom order exists yet.
func (s *OrderListService) Get(ctx context.Context, listKey string) ([]model.OrderList, error) {
	if listKey == "" {
		return nil, fmt.Errorf("%w: missing listKey parameter", ErrValidation)
	}

	items, err := s.store.Query(ctx, "", listKey)
	if err != nil {
		return nil, err
	}

	lists := make([]model.OrderList, 0, len(items))
	for _, it := range items {
		var ol model.OrderList
		if err := it.Decode(&ol); err != nil {
			return nil, fmt.Errorf("decode order list %s: %w", listKey, err)
		}
		lists = append(lists, ol)
	}
	return lists, nil
}

// SetOrder replaces the id sequence under listKey and bumps its version by one.
// No version check is made: the last writer wins.
func (s *OrderListService) SetOrder(ctx context.Context, listKey string, ids []string) (model.OrderList, error) {
	if _, _, ok := model.ParseListKey(listKey); !ok {
		return model.OrderList{}, fmt.Errorf("%w: list key %q must be task#{id} or child#{id}", ErrValidation, listKey)
	}
	if dup, ok := model.FirstDuplicate(ids); ok {
		return model.OrderList{}, fmt.Errorf("%w: duplicate id %q in list", ErrValidation, dup)
	}

	now := model.Timestamp(s.opts.now())
	ol := model.OrderList{ListKey: listKey, CreatedAt: now}

	it, err := s.store.Get(ctx, listKey)
	switch {
	case errors.Is(err, repo.ErrNotFound):
	case err != nil:
		return model.OrderList{}, err
	default:
		if err := it.Decode(&ol); err != nil {
			return model.OrderList{}, fmt.Errorf("decode order list %s: %w", listKey, err)
		}
	}

	ol.List = append(make([]string, 0, len(ids)), ids...)
	ol.Version++
	ol.UpdatedAt = now
	if ol.CreatedAt == "" {
		ol.CreatedAt = now
	}

	item, err := model.ToItem(ol)
	if err != nil {
		return model.OrderList{}, err
	}
	if _, err := s.store.Put(ctx, item); err != nil {
		return model.OrderList{}, err
	}
	return ol, nil
}
