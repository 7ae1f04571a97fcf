package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/taskseed-api/internal/service"
)

// OrderListHandler exposes ordering lists read-only.
type OrderListHandler struct {
	service *service.OrderListService
	logger  *zap.Logger
}

func NewOrderListHandler(svc *service.OrderListService, logger *zap.Logger) *OrderListHandler {
	return &OrderListHandler{
		service: svc,
		logger:  logger,
	}
}

func (h *OrderListHandler) Handle(ctx context.Context, req Request) (Response, error) {
	listKey := req.PathParams["listKey"]
	if strings.ToUpper(req.Method) != http.MethodGet || listKey == "" {
		return messageResponse(http.StatusBadRequest, "Bad Request"), nil
	}

	lists, err := h.service.Get(ctx, listKey)
	if errors.Is(err, service.ErrValidation) {
		return messageResponse(http.StatusBadRequest, errorMessage(err)), nil
	}
	if err != nil {
		h.logger.Error("store failure", zap.String("resource", "orderList"), zap.Error(err))
		return Response{}, err
	}
	return jsonResponse(http.StatusOK, lists)
}
