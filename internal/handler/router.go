package handler

import (
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/taskseed-api/internal/service"
)

// Route mounts a handler at /{Name} and /{Name}/{Param}.
type Route struct {
	Name    string
	Param   string
	Handler Handler
}

func CRUDRoute(svc *service.CRUDService, cfg CRUDConfig, logger *zap.Logger) Route {
	return Route{
		Name:    svc.Resource().Name,
		Param:   "id",
		Handler: NewCRUDHandler(svc, cfg, logger),
	}
}

func OrderListRoute(svc *service.OrderListService, logger *zap.Logger) Route {
	return Route{
		Name:    "orderList",
		Param:   "listKey",
		Handler: NewOrderListHandler(svc, logger),
	}
}

// Router resolves which resource owns a path.
type Router struct {
	routes []Route
	byName map[string]Route
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger, routes ...Route) *Router {
	byName := make(map[string]Route, len(routes))
	for _, r := range routes {
		byName[r.Name] = r
	}
	return &Router{
		routes: routes,
		byName: byName,
		logger: logger,
	}
}

// Resolve matches /{resource} or /{resource}/{param}. Path segments are unescaped,
// so /orderList/task%23m1 yields listKey "task#m1".
func (rt *Router) Resolve(path string) (Route, map[string]string, bool) {
	segs := strings.Split(strings.Trim(path, "/"), "/")
	if len(segs) == 0 || len(segs) > 2 {
		return Route{}, nil, false
	}

	route, ok := rt.byName[segs[0]]
	if !ok {
		return Route{}, nil, false
	}

	params := map[string]string{}
	if len(segs) == 2 {
		params[route.Param] = unescape(segs[1])
	}
	return route, params, true
}

func unescape(s string) string {
	if u, err := url.PathUnescape(s); err == nil {
		return u
	}
	return s
}
