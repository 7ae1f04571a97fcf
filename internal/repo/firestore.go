package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"golang.org/x/xerrors"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/BuzzLyutic/taskseed-api/internal/model"
)

// FirestoreStore maps a table onto a collection; the key becomes the document id.
type FirestoreStore struct {
	client *firestore.Client
	schema Schema
}

func NewFirestoreStore(client *firestore.Client, schema Schema) *FirestoreStore {
	return &FirestoreStore{
		client: client,
		schema: schema,
	}
}

func (s *FirestoreStore) collection() *firestore.CollectionRef {
	return s.client.Collection(s.schema.Table)
}

func (s *FirestoreStore) Get(ctx context.Context, key string) (model.Item, error) {
	snap, err := s.collection().Doc(key).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, xerrors.Errorf("firestore get %s: %w", s.schema.Table, err)
	}
	return model.Item(snap.Data()), nil
}

func (s *FirestoreStore) Put(ctx context.Context, item model.Item) (model.Item, error) {
	key := item.Str(s.schema.Key)
	if key == "" {
		return nil, fmt.Errorf("%s: item has no %q key", s.schema.Table, s.schema.Key)
	}
	if _, err := s.collection().Doc(key).Set(ctx, map[string]interface{}(item)); err != nil {
		return nil, xerrors.Errorf("firestore put %s: %w", s.schema.Table, err)
	}
	return item, nil
}

func (s *FirestoreStore) Delete(ctx context.Context, key string) error {
	if _, err := s.collection().Doc(key).Delete(ctx); err != nil {
		return xerrors.Errorf("firestore delete %s: %w", s.schema.Table, err)
	}
	return nil
}

func (s *FirestoreStore) Query(ctx context.Context, index, value string) ([]model.Item, error) {
	attr, err := s.schema.Attr(index)
	if err != nil {
		return nil, fmt.Errorf("%s: %w %q", s.schema.Table, err, index)
	}

	if index == "" {
		it, err := s.Get(ctx, value)
		if xerrors.Is(err, ErrNotFound) {
			return []model.Item{}, nil
		}
		if err != nil {
			return nil, err
		}
		return []model.Item{it}, nil
	}

	iter := s.collection().
		Where(attr, "==", value).
		OrderBy(SortAttr, firestore.Asc).
		Documents(ctx)
	return s.drain(iter)
}

func (s *FirestoreStore) Scan(ctx context.Context) ([]model.Item, error) {
	return s.drain(s.collection().Documents(ctx))
}

func (s *FirestoreStore) drain(iter *firestore.DocumentIterator) ([]model.Item, error) {
	defer iter.Stop()

	items := make([]model.Item, 0)
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			return items, nil
		}
		if err != nil {
			return nil, xerrors.Errorf("firestore iterate %s: %w", s.schema.Table, err)
		}
		items = append(items, model.Item(snap.Data()))
	}
}
