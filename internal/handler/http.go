package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/taskseed-api/pkg/respond"
)

// HTTP builds the chi router serving every route plus /health.
func (rt *Router) HTTP() http.Handler {
	r := chi.NewRouter() // Создаем роутер
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"ok"}`)
	})

	for _, route := range rt.routes {
		// every method reaches the handler, which owns the unsupported status
		r.HandleFunc("/"+route.Name, rt.serve(route))
		r.HandleFunc("/"+route.Name+"/{"+route.Param+"}", rt.serve(route))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respond.Error(w, r, http.StatusNotFound, "Not Found")
	})
	return r
}

func (rt *Router) serve(route Route) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			respond.Text(w, r, http.StatusBadRequest, "Invalid request: unreadable body")
			return
		}

		req := Request{
			Method:     r.Method,
			PathParams: map[string]string{},
			Query:      map[string]string{},
			Body:       string(body),
		}
		if v := chi.URLParam(r, route.Param); v != "" {
			// chi matches on RawPath only when it is set, otherwise the segment is already decoded
			if r.URL.RawPath != "" {
				v = unescape(v)
			}
			req.PathParams[route.Param] = v
		}
		for k, vs := range r.URL.Query() {
			if len(vs) > 0 {
				req.Query[k] = vs[0]
			}
		}

		res, err := route.Handler.Handle(r.Context(), req)
		if err != nil {
			rt.logger.Error("internal error",
				zap.String("resource", route.Name),
				zap.String("request_id", middleware.GetReqID(r.Context())),
				zap.Error(err),
			)
			respond.Error(w, r, http.StatusInternalServerError, "internal error")
			return
		}

		for k, v := range res.Headers {
			w.Header().Set(k, v)
		}
		w.WriteHeader(res.Status)
		io.WriteString(w, res.Body)
	}
}
