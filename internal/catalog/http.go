package catalog

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"AquaKart/pkg/kit"
)

type Server struct {
	Store Store
	Log   *zap.Logger
}

// View is the normalized projection clients render. Raw keeps the original
// payload so the storefront can carry it into cart/favorites unchanged.
type View struct {
	Key         string   `json:"key"`
	Title       string   `json:"title"`
	Price       *float64 `json:"price,omitempty"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
	Raw         Product  `json:"raw"`
}

func NewView(key string, p Product, index int) View {
	v := View{
		Key:         key,
		Title:       Title(p, index),
		Description: Description(p),
		Images:      Images(p),
		Raw:         p,
	}
	if price, ok := Price(p); ok {
		v.Price = &price
	}
	return v
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 1*time.Second)
		defer cancel()

		if err := s.Store.Ping(ctx); err != nil {
			if s.Log != nil {
				s.Log.Warn("readyz failed", zap.Error(err))
			}
			kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready", nil)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	r.Get("/products", s.list)
	r.Get("/products/{key}", s.get)

	return r
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	entries, err := s.Store.List(r.Context())
	if err != nil {
		if s.Log != nil {
			s.Log.Error("list products failed", zap.Error(err))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	views := make([]View, 0, len(entries))
	for i, e := range entries {
		views = append(views, NewView(e.Key, e.Product, i))
	}
	kit.WriteJSON(w, http.StatusOK, views)
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	p, ok, err := s.Store.Get(r.Context(), key)
	if err != nil {
		if s.Log != nil {
			s.Log.Error("get product failed", zap.Error(err), zap.String("key", key))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"key": key})
		return
	}
	kit.WriteJSON(w, http.StatusOK, NewView(key, p, 0))
}
