package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/taskseed-api/internal/service"
)

// CRUDConfig holds the status and error-body conventions a resource answers with.
type CRUDConfig struct {
	CreatedStatus     int
	UnsupportedStatus int
	// JSONErrors switches error bodies from plain text to {"message": ...}.
	JSONErrors bool
}

var (
	PreMemoConfig   = CRUDConfig{CreatedStatus: http.StatusCreated, UnsupportedStatus: http.StatusMethodNotAllowed}
	TaskConfig      = CRUDConfig{CreatedStatus: http.StatusCreated, UnsupportedStatus: http.StatusMethodNotAllowed}
	ChildTaskConfig = CRUDConfig{CreatedStatus: http.StatusOK, UnsupportedStatus: http.StatusBadRequest}
	TagConfig       = CRUDConfig{CreatedStatus: http.StatusCreated, UnsupportedStatus: http.StatusBadRequest, JSONErrors: true}
	ColorConfig     = CRUDConfig{CreatedStatus: http.StatusCreated, UnsupportedStatus: http.StatusBadRequest}
)

type CRUDHandler struct {
	service *service.CRUDService
	cfg     CRUDConfig
	logger  *zap.Logger
}

func NewCRUDHandler(svc *service.CRUDService, cfg CRUDConfig, logger *zap.Logger) *CRUDHandler {
	return &CRUDHandler{
		service: svc,
		cfg:     cfg,
		logger:  logger,
	}
}

func (h *CRUDHandler) Handle(ctx context.Context, req Request) (Response, error) {
	id := req.PathParams["id"]

	switch method := strings.ToUpper(req.Method); {
	case method == http.MethodGet && id == "":
		return h.list(ctx, req)
	case method == http.MethodPost && id == "":
		return h.create(ctx, req)
	case method == http.MethodPut:
		return h.update(ctx, id, req)
	case method == http.MethodDelete:
		return h.delete(ctx, id)
	default:
		return h.handleErrors(service.ErrUnsupported)
	}
}

func (h *CRUDHandler) list(ctx context.Context, req Request) (Response, error) {
	var parentID string
	if idx := h.service.Resource().Index; idx != nil {
		parentID = req.Query[idx.Param]
	}

	items, err := h.service.List(ctx, parentID)
	if err != nil {
		return h.handleErrors(err)
	}
	return jsonResponse(http.StatusOK, items)
}

func (h *CRUDHandler) create(ctx context.Context, req Request) (Response, error) {
	payload, err := decodeBody(req.Body)
	if err != nil {
		return h.handleErrors(err)
	}

	item, err := h.service.Create(ctx, payload)
	if err != nil {
		return h.handleErrors(err)
	}
	return jsonResponse(h.cfg.CreatedStatus, item)
}

func (h *CRUDHandler) update(ctx context.Context, id string, req Request) (Response, error) {
	payload, err := decodeBody(req.Body)
	if err != nil {
		return h.handleErrors(err)
	}

	item, err := h.service.Update(ctx, id, payload)
	if err != nil {
		return h.handleErrors(err)
	}
	return jsonResponse(http.StatusOK, item)
}

func (h *CRUDHandler) delete(ctx context.Context, id string) (Response, error) {
	res, err := h.service.Delete(ctx, id)
	if err != nil {
		return h.handleErrors(err)
	}
	return jsonResponse(http.StatusOK, res)
}

func (h *CRUDHandler) handleErrors(err error) (Response, error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		return h.errorResponse(http.StatusBadRequest, errorMessage(err)), nil
	case errors.Is(err, service.ErrUnsupported):
		msg := "Invalid request"
		if h.cfg.UnsupportedStatus == http.StatusMethodNotAllowed {
			msg = "Method Not Allowed"
		}
		return h.errorResponse(h.cfg.UnsupportedStatus, msg), nil
	default:
		h.logger.Error("store failure",
			zap.String("resource", h.service.Resource().Name),
			zap.Error(err),
		)
		return Response{}, err
	}
}

func (h *CRUDHandler) errorResponse(status int, message string) Response {
	if h.cfg.JSONErrors {
		return messageResponse(status, message)
	}
	return textResponse(status, message)
}
