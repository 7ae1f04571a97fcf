package repo

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BuzzLyutic/taskseed-api/internal/model"
)

func taskSchema(table string) Schema {
	return Schema{
		Table:   table,
		Key:     model.AttrID,
		Indexes: map[string]string{"GSI_ByMemo": "memo"},
	}
}

func taskItem(id, memo, createdAt string) model.Item {
	return model.Item{
		model.AttrID:        id,
		"memo":              memo,
		"title":             "title " + id,
		model.AttrCreatedAt: createdAt,
		model.AttrUpdatedAt: createdAt,
	}
}

// runStoreContract exercises the behaviour every ItemStore backend must share.
func runStoreContract(t *testing.T, newStore func(t *testing.T, schema Schema) ItemStore) {
	ctx := context.Background()

	t.Run("get missing", func(t *testing.T) {
		s := newStore(t, taskSchema("task"))
		_, err := s.Get(ctx, "nope")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("put then get", func(t *testing.T) {
		s := newStore(t, taskSchema("task"))
		_, err := s.Put(ctx, taskItem("a", "m1", "2025-01-01T00:00:00.000Z"))
		require.NoError(t, err)

		got, err := s.Get(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, "m1", got.Str("memo"))
		assert.Equal(t, "title a", got.Str("title"))
	})

	t.Run("put overwrites whole item", func(t *testing.T) {
		s := newStore(t, taskSchema("task"))
		_, err := s.Put(ctx, taskItem("a", "m1", "2025-01-01T00:00:00.000Z"))
		require.NoError(t, err)
		_, err = s.Put(ctx, model.Item{model.AttrID: "a", "title": "only"})
		require.NoError(t, err)

		got, err := s.Get(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, "only", got.Str("title"))
		_, hasMemo := got["memo"]
		assert.False(t, hasMemo)
	})

	t.Run("put without key", func(t *testing.T) {
		s := newStore(t, taskSchema("task"))
		_, err := s.Put(ctx, model.Item{"title": "x"})
		assert.Error(t, err)
	})

	t.Run("delete absent key succeeds", func(t *testing.T) {
		s := newStore(t, taskSchema("task"))
		assert.NoError(t, s.Delete(ctx, "ghost"))
	})

	t.Run("delete removes", func(t *testing.T) {
		s := newStore(t, taskSchema("task"))
		_, err := s.Put(ctx, taskItem("a", "m1", "2025-01-01T00:00:00.000Z"))
		require.NoError(t, err)
		require.NoError(t, s.Delete(ctx, "a"))

		_, err = s.Get(ctx, "a")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("query by index ordered by createdAt", func(t *testing.T) {
		s := newStore(t, taskSchema("task"))
		for i, ts := range []string{"2025-01-03T00:00:00.000Z", "2025-01-01T00:00:00.000Z", "2025-01-02T00:00:00.000Z"} {
			_, err := s.Put(ctx, taskItem(fmt.Sprintf("m1-%d", i), "m1", ts))
			require.NoError(t, err)
		}
		_, err := s.Put(ctx, taskItem("other", "m2", "2025-01-01T00:00:00.000Z"))
		require.NoError(t, err)

		got, err := s.Query(ctx, "GSI_ByMemo", "m1")
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "m1-1", got[0].Str(model.AttrID))
		assert.Equal(t, "m1-2", got[1].Str(model.AttrID))
		assert.Equal(t, "m1-0", got[2].Str(model.AttrID))
	})

	t.Run("query by key", func(t *testing.T) {
		s := newStore(t, Schema{Table: "orderList", Key: model.AttrListKey})
		_, err := s.Put(ctx, model.Item{model.AttrListKey: "task#m1", model.AttrList: []string{"a", "b"}, model.AttrVersion: 1})
		require.NoError(t, err)

		got, err := s.Query(ctx, "", "task#m1")
		require.NoError(t, err)
		require.Len(t, got, 1)

		var ol model.OrderList
		require.NoError(t, got[0].Decode(&ol))
		assert.Equal(t, []string{"a", "b"}, ol.List)
		assert.Equal(t, 1, ol.Version)

		none, err := s.Query(ctx, "", "task#missing")
		require.NoError(t, err)
		assert.NotNil(t, none)
		assert.Empty(t, none)
	})

	t.Run("query unknown index", func(t *testing.T) {
		s := newStore(t, taskSchema("task"))
		_, err := s.Query(ctx, "GSI_Nope", "x")
		assert.ErrorIs(t, err, ErrUnknownIndex)
	})

	t.Run("scan returns everything", func(t *testing.T) {
		s := newStore(t, taskSchema("task"))
		empty, err := s.Scan(ctx)
		require.NoError(t, err)
		assert.NotNil(t, empty)
		assert.Empty(t, empty)

		for _, id := range []string{"a", "b", "c"} {
			_, err := s.Put(ctx, taskItem(id, "m1", "2025-01-01T00:00:00.000Z"))
			require.NoError(t, err)
		}
		got, err := s.Scan(ctx)
		require.NoError(t, err)

		ids := make([]string, 0, len(got))
		for _, it := range got {
			ids = append(ids, it.Str(model.AttrID))
		}
		assert.ElementsMatch(t, []string{"a", "b", "c"}, ids)
	})
}
