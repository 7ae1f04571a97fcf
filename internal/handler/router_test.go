package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/taskseed-api/internal/repo"
	"github.com/BuzzLyutic/taskseed-api/internal/service"
)

// testRouter wires every resource to memory stores. The order list service is
// returned so tests can seed lists through the unrouted write path.
func testRouter(t *testing.T) (*Router, *service.OrderListService) {
	t.Helper()
	logger := zap.NewNop()

	crud := func(res service.Resource, cfg CRUDConfig) Route {
		svc := service.NewCRUDService(res, repo.NewMemoryStore(res.Schema(res.Name)), stepClock())
		return CRUDRoute(svc, cfg, logger)
	}
	orderList := service.NewOrderListService(repo.NewMemoryStore(service.OrderListSchema("orderList")))

	return NewRouter(logger,
		crud(service.PreMemo, PreMemoConfig),
		crud(service.Task, TaskConfig),
		crud(service.ChildTask, ChildTaskConfig),
		crud(service.Tag, TagConfig),
		crud(service.Color, ColorConfig),
		OrderListRoute(orderList, logger),
	), orderList
}

func TestRouter_Resolve(t *testing.T) {
	rt, _ := testRouter(t)

	tests := []struct {
		path       string
		wantOK     bool
		wantName   string
		wantParams map[string]string
	}{
		{path: "/preMemo", wantOK: true, wantName: "preMemo", wantParams: map[string]string{}},
		{path: "/task/abc", wantOK: true, wantName: "task", wantParams: map[string]string{"id": "abc"}},
		{path: "/orderList/task%23m1", wantOK: true, wantName: "orderList", wantParams: map[string]string{"listKey": "task#m1"}},
		{path: "/color/", wantOK: true, wantName: "color", wantParams: map[string]string{}},
		{path: "/tag/a/b", wantOK: false},
		{path: "/memo", wantOK: false},
		{path: "/", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			route, params, ok := rt.Resolve(tt.path)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantName, route.Name)
				assert.Equal(t, tt.wantParams, params)
			}
		})
	}
}
