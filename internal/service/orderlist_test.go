package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/BuzzLyutic/taskseed-api/internal/model"
	"github.com/BuzzLyutic/taskseed-api/internal/repo"
)

func newOrderListService() *OrderListService {
	return NewOrderListService(repo.NewMemoryStore(OrderListSchema("orderList")), WithClock(stepClock()))
}

func TestOrderListService_GetUnknownKey(t *testing.T) {
	lists, err := newOrderListService().Get(context.Background(), model.TaskListKey("nobody"))
	require.NoError(t, err)
	assert.NotNil(t, lists)
	assert.Empty(t, lists)
}

func TestOrderListService_GetMissingKey(t *testing.T) {
	_, err := newOrderListService().Get(context.Background(), "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestOrderListService_SetOrder(t *testing.T) {
	ctx := context.Background()
	svc := newOrderListService()
	key := model.TaskListKey("m1")

	first, err := svc.SetOrder(ctx, key, []string{"a", "b", "c"})
	require.NoError(t, err)
	assert.Equal(t, 1, first.Version)
	assert.Equal(t, first.CreatedAt, first.UpdatedAt)

	second, err := svc.SetOrder(ctx, key, []string{"c", "a", "b"})
	require.NoError(t, err)
	assert.Equal(t, 2, second.Version)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)
	assert.Greater(t, second.UpdatedAt, first.UpdatedAt)

	lists, err := svc.Get(ctx, key)
	require.NoError(t, err)
	require.Len(t, lists, 1)
	assert.Equal(t, []string{"c", "a", "b"}, lists[0].List)
	assert.Equal(t, 2, lists[0].Version)

	t.Run("empty list is a write", func(t *testing.T) {
		cleared, err := svc.SetOrder(ctx, key, nil)
		require.NoError(t, err)
		assert.Equal(t, 3, cleared.Version)
		assert.NotNil(t, cleared.List)
		assert.Empty(t, cleared.List)
	})

	t.Run("keys are independent", func(t *testing.T) {
		other, err := svc.SetOrder(ctx, model.ChildListKey("t1"), []string{"x"})
		require.NoError(t, err)
		assert.Equal(t, 1, other.Version)
	})
}

func TestOrderListService_SetOrderValidation(t *testing.T) {
	tests := []struct {
		name string
		key  string
		ids  []string
	}{
		{name: "bad key", key: "memo#1", ids: []string{"a"}},
		{name: "empty key", key: "", ids: []string{"a"}},
		{name: "duplicate ids", key: model.ChildListKey("t1"), ids: []string{"a", "b", "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(MockItemStore)
			_, err := NewOrderListService(m).SetOrder(context.Background(), tt.key, tt.ids)
			assert.ErrorIs(t, err, ErrValidation)
			m.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
			m.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
		})
	}
}

func TestOrderListService_SetOrderStoreFailure(t *testing.T) {
	boom := errors.New("throttled")
	m := new(MockItemStore)
	m.On("Get", mock.Anything, "task#m1").Return(nil, repo.ErrNotFound)
	m.On("Put", mock.Anything, mock.Anything).Return(boom)

	_, err := NewOrderListService(m).SetOrder(context.Background(), "task#m1", []string{"a"})
	assert.ErrorIs(t, err, boom)
	m.AssertExpectations(t)
}
