package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/BuzzLyutic/taskseed-api/internal/model"
	"github.com/BuzzLyutic/taskseed-api/internal/repo"
)

var validate = validator.New()

// CRUDService implements the shared create/list/update/delete contract for one resource.
type CRUDService struct {
	res   Resource
	store repo.ItemStore
	opts  options
}

func NewCRUDService(res Resource, store repo.ItemStore, opts ...Option) *CRUDService {
	return &CRUDService{
		res:   res,
		store: store,
		opts:  buildOptions(opts),
	}
}

func (s *CRUDService) Resource() Resource {
	return s.res
}

// List scans the collection, or queries the resource index by parent id.
func (s *CRUDService) List(ctx context.Context, parentID string) ([]model.Item, error) {
	if s.res.Index == nil {
		return s.store.Scan(ctx)
	}
	if parentID == "" {
		return nil, fmt.Errorf("%w: missing %s parameter", ErrUnsupported, s.res.Index.Param)
	}
	return s.store.Query(ctx, s.res.Index.Name, parentID)
}

func (s *CRUDService) Get(ctx context.Context, id string) (model.Item, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: missing id parameter", ErrValidation)
	}
	return s.store.Get(ctx, id)
}

func (s *CRUDService) Create(ctx context.Context, payload map[string]any) (model.Item, error) {
	if payload == nil {
		return nil, fmt.Errorf("%w: missing body", ErrValidation)
	}

	item := make(model.Item, len(s.res.CreateFields)+3)
	for _, f := range s.res.CreateFields {
		v, ok, err := stringField(payload, f)
		if err != nil {
			return nil, err
		}
		if !ok {
			v = ""
		}
		item[f] = v
	}
	for _, f := range s.res.Required {
		if err := validate.Var(item[f], "required"); err != nil {
			return nil, fmt.Errorf("%w: %s is required", ErrValidation, f)
		}
	}

	now := model.Timestamp(s.opts.now())
	item[model.AttrID] = s.opts.newID()
	item[model.AttrCreatedAt] = now
	item[model.AttrUpdatedAt] = now

	return s.store.Put(ctx, item)
}

// Update merges the supplied fields over the stored record. Fields absent from
// payload keep their stored value.
func (s *CRUDService) Update(ctx context.Context, id string, payload map[string]any) (model.Item, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: missing id parameter", ErrValidation)
	}
	if payload == nil {
		return nil, fmt.Errorf("%w: missing body", ErrValidation)
	}
	if s.res.CheckIDMatch {
		if bodyID, _ := payload[model.AttrID].(string); bodyID != id {
			return nil, fmt.Errorf("%w: id in body does not match id in path", ErrValidation)
		}
	}

	changes := make(map[string]string, len(s.res.UpdateFields))
	for _, f := range s.res.UpdateFields {
		v, ok, err := stringField(payload, f)
		if err != nil {
			return nil, err
		}
		if ok {
			changes[f] = v
		}
	}

	now := model.Timestamp(s.opts.now())
	item, err := s.store.Get(ctx, id)
	switch {
	case errors.Is(err, repo.ErrNotFound):
		item = model.Item{model.AttrCreatedAt: now}
	case err != nil:
		return nil, err
	}

	for f, v := range changes {
		item[f] = v
	}
	item[model.AttrID] = id
	item[model.AttrUpdatedAt] = now
	if item.Str(model.AttrCreatedAt) == "" {
		item[model.AttrCreatedAt] = now
	}

	return s.store.Put(ctx, item)
}

// Delete does not check that the record exists.
func (s *CRUDService) Delete(ctx context.Context, id string) (model.Deleted, error) {
	if id == "" {
		return model.Deleted{}, fmt.Errorf("%w: missing id parameter", ErrValidation)
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return model.Deleted{}, err
	}
	return model.Deleted{ID: id}, nil
}

// stringField reads an optional string attribute. A JSON null counts as absent.
func stringField(payload map[string]any, name string) (string, bool, error) {
	raw, ok := payload[name]
	if !ok || raw == nil {
		return "", false, nil
	}
	v, ok := raw.(string)
	if !ok {
		return "", false, fmt.Errorf("%w: %s must be a string", ErrValidation, name)
	}
	return v, true, nil
}
