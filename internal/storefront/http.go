package storefront

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"AquaKart/internal/cart"
	"AquaKart/internal/catalog"
	"AquaKart/internal/favorites"
	"AquaKart/pkg/kit"
)

const maxBodyBytes = 1 << 20

type Server struct {
	Cart      *cart.Store
	Favorites *favorites.Store
	Log       *zap.Logger
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	r.Group(func(pr chi.Router) {
		pr.Use(RequireUserHeaders)

		pr.Get("/cart", s.getCart)
		pr.Delete("/cart", s.clearCart)
		pr.Post("/cart/items/{key}", s.incrementItem)
		pr.Post("/cart/items/{key}/decrement", s.decrementItem)
		pr.Delete("/cart/items/{key}", s.removeCartItem)

		pr.Get("/favorites", s.getFavorites)
		pr.Delete("/favorites", s.clearFavorites)
		pr.Post("/favorites/{key}", s.toggleFavorite)
		pr.Delete("/favorites/{key}", s.removeFavorite)
	})

	return r
}

type productReq struct {
	Product catalog.Product `json:"product"`
}

// decodeProduct tolerates an empty body: the key alone is enough to act on
// an existing line, and a missing payload degrades to placeholders anyway.
func decodeProduct(w http.ResponseWriter, r *http.Request) (catalog.Product, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer func() { _ = r.Body.Close() }()

	var req productReq
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return catalog.Product{}, nil
		}
		return nil, err
	}
	if req.Product == nil {
		req.Product = catalog.Product{}
	}
	return req.Product, nil
}

type cartLine struct {
	Key       string          `json:"key"`
	Product   catalog.Product `json:"product"`
	Qty       int             `json:"qty"`
	Price     *float64        `json:"price,omitempty"`
	LineTotal *string         `json:"line_total,omitempty"`
}

type cartResp struct {
	Items    []cartLine `json:"items"`
	Count    int        `json:"count"`
	Subtotal string     `json:"subtotal"`
	Unpriced int        `json:"unpriced"`
}

func (s *Server) getCart(w http.ResponseWriter, r *http.Request) {
	u, ok := UserFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "no user", nil)
		return
	}

	kit.WriteJSON(w, http.StatusOK, s.cartResponse(u.ID))
}

// cartResponse projects the snapshot into a stable, priced view. Prices come
// through the normalization accessors; a line whose payload has no numeric
// price is counted as unpriced rather than priced at zero.
func (s *Server) cartResponse(user string) cartResp {
	snap := s.Cart.Snapshot(user)

	lines := make([]cartLine, 0, len(snap))
	subtotal := decimal.Zero
	unpriced := 0
	count := 0

	for k, it := range snap {
		line := cartLine{Key: k, Product: it.Product, Qty: it.Qty}
		if price, ok := catalog.Price(it.Product); ok {
			total := decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(it.Qty)))
			ts := total.StringFixed(2)
			line.Price = &price
			line.LineTotal = &ts
			subtotal = subtotal.Add(total)
		} else {
			unpriced += it.Qty
		}
		count += it.Qty
		lines = append(lines, line)
	}

	sort.Slice(lines, func(i, j int) bool { return lines[i].Key < lines[j].Key })

	return cartResp{
		Items:    lines,
		Count:    count,
		Subtotal: subtotal.StringFixed(2),
		Unpriced: unpriced,
	}
}

func (s *Server) incrementItem(w http.ResponseWriter, r *http.Request) {
	u, ok := UserFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "no user", nil)
		return
	}

	product, err := decodeProduct(w, r)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}

	key := chi.URLParam(r, "key")
	s.Cart.Increment(u.ID, key, product)
	kit.WriteJSON(w, http.StatusOK, map[string]any{
		"key": key,
		"qty": s.Cart.Quantity(u.ID, key),
	})
}

func (s *Server) decrementItem(w http.ResponseWriter, r *http.Request) {
	u, ok := UserFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "no user", nil)
		return
	}

	key := chi.URLParam(r, "key")
	s.Cart.Decrement(u.ID, key)
	kit.WriteJSON(w, http.StatusOK, map[string]any{
		"key": key,
		"qty": s.Cart.Quantity(u.ID, key),
	})
}

func (s *Server) removeCartItem(w http.ResponseWriter, r *http.Request) {
	u, ok := UserFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "no user", nil)
		return
	}

	s.Cart.Remove(u.ID, chi.URLParam(r, "key"))
	kit.WriteNoContent(w)
}

func (s *Server) clearCart(w http.ResponseWriter, r *http.Request) {
	u, ok := UserFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "no user", nil)
		return
	}

	s.Cart.Clear(u.ID)
	kit.WriteNoContent(w)
}

type favoritesResp struct {
	Items []favorites.Entry `json:"items"`
	Count int               `json:"count"`
}

func (s *Server) getFavorites(w http.ResponseWriter, r *http.Request) {
	u, ok := UserFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "no user", nil)
		return
	}

	kit.WriteJSON(w, http.StatusOK, favoritesResp{
		Items: s.Favorites.Items(u.ID),
		Count: s.Favorites.Count(u.ID),
	})
}

func (s *Server) toggleFavorite(w http.ResponseWriter, r *http.Request) {
	u, ok := UserFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "no user", nil)
		return
	}

	product, err := decodeProduct(w, r)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}

	key := chi.URLParam(r, "key")
	fav := s.Favorites.Toggle(u.ID, key, product)
	kit.WriteJSON(w, http.StatusOK, map[string]any{
		"key":      key,
		"favorite": fav,
		"count":    s.Favorites.Count(u.ID),
	})
}

func (s *Server) removeFavorite(w http.ResponseWriter, r *http.Request) {
	u, ok := UserFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "no user", nil)
		return
	}

	s.Favorites.Remove(u.ID, chi.URLParam(r, "key"))
	kit.WriteNoContent(w)
}

func (s *Server) clearFavorites(w http.ResponseWriter, r *http.Request) {
	u, ok := UserFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "no user", nil)
		return
	}

	s.Favorites.Clear(u.ID)
	kit.WriteNoContent(w)
}
