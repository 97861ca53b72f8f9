package storefront_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"AquaKart/internal/cart"
	"AquaKart/internal/favorites"
	"AquaKart/internal/storefront"
)

func newTS(t *testing.T) *httptest.Server {
	t.Helper()

	s := &storefront.Server{
		Cart:      cart.NewStore(),
		Favorites: favorites.NewStore(),
		Log:       zap.NewNop(),
	}
	h := storefront.NewHandler(s, storefront.HTTPDeps{
		Log:     zap.NewNop(),
		Service: "storefront",
	})
	return httptest.NewServer(h)
}

func do(t *testing.T, method, url, user string, body any, wantStatus int) []byte {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, url, r)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if user != "" {
		req.Header.Set("X-User-Id", user)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if resp.StatusCode != wantStatus {
		t.Fatalf("%s %s: status %d want %d body=%s", method, url, resp.StatusCode, wantStatus, raw)
	}
	return raw
}

func TestCartFlow(t *testing.T) {
	ts := newTS(t)
	defer ts.Close()

	productA := map[string]any{"product": map[string]any{"id": "sku-1", "price": 24.5}}

	do(t, http.MethodPost, ts.URL+"/cart/items/sku-1", "u1", productA, 200)
	do(t, http.MethodPost, ts.URL+"/cart/items/sku-1", "u1", productA, 200)
	do(t, http.MethodPost, ts.URL+"/cart/items/sku-1/decrement", "u1", nil, 200)

	var resp struct {
		Items []struct {
			Key string `json:"key"`
			Qty int    `json:"qty"`
		} `json:"items"`
		Count    int    `json:"count"`
		Subtotal string `json:"subtotal"`
		Unpriced int    `json:"unpriced"`
	}
	raw := do(t, http.MethodGet, ts.URL+"/cart", "u1", nil, 200)
	if err := json.Unmarshal(raw, &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if len(resp.Items) != 1 || resp.Items[0].Key != "sku-1" || resp.Items[0].Qty != 1 {
		t.Fatalf("unexpected cart: %+v", resp)
	}
	if resp.Count != 1 || resp.Subtotal != "24.50" || resp.Unpriced != 0 {
		t.Fatalf("unexpected totals: %+v", resp)
	}
}

func TestCartUnpricedItems(t *testing.T) {
	ts := newTS(t)
	defer ts.Close()

	noPrice := map[string]any{"product": map[string]any{"id": "sku-2", "price": "N/A"}}
	do(t, http.MethodPost, ts.URL+"/cart/items/sku-2", "u1", noPrice, 200)
	do(t, http.MethodPost, ts.URL+"/cart/items/sku-2", "u1", noPrice, 200)

	var resp struct {
		Subtotal string `json:"subtotal"`
		Unpriced int    `json:"unpriced"`
		Count    int    `json:"count"`
	}
	raw := do(t, http.MethodGet, ts.URL+"/cart", "u1", nil, 200)
	if err := json.Unmarshal(raw, &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	// A non-numeric price means "unpriced", never zero-priced.
	if resp.Subtotal != "0.00" || resp.Unpriced != 2 || resp.Count != 2 {
		t.Fatalf("unexpected totals: %+v", resp)
	}
}

func TestCartClearAndRemove(t *testing.T) {
	ts := newTS(t)
	defer ts.Close()

	do(t, http.MethodPost, ts.URL+"/cart/items/a", "u1", nil, 200)
	do(t, http.MethodPost, ts.URL+"/cart/items/b", "u1", nil, 200)

	do(t, http.MethodDelete, ts.URL+"/cart/items/a", "u1", nil, 204)
	do(t, http.MethodDelete, ts.URL+"/cart/items/missing", "u1", nil, 204)
	do(t, http.MethodDelete, ts.URL+"/cart", "u1", nil, 204)

	var resp struct {
		Count int `json:"count"`
	}
	raw := do(t, http.MethodGet, ts.URL+"/cart", "u1", nil, 200)
	if err := json.Unmarshal(raw, &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Count != 0 {
		t.Fatalf("expected empty cart, got %+v", resp)
	}
}

func TestFavoritesToggle(t *testing.T) {
	ts := newTS(t)
	defer ts.Close()

	productB := map[string]any{"product": map[string]any{"id": "sku-2"}}

	var toggle struct {
		Favorite bool `json:"favorite"`
		Count    int  `json:"count"`
	}

	raw := do(t, http.MethodPost, ts.URL+"/favorites/sku-2", "u1", productB, 200)
	if err := json.Unmarshal(raw, &toggle); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !toggle.Favorite || toggle.Count != 1 {
		t.Fatalf("first toggle: %+v", toggle)
	}

	raw = do(t, http.MethodPost, ts.URL+"/favorites/sku-2", "u1", productB, 200)
	if err := json.Unmarshal(raw, &toggle); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if toggle.Favorite || toggle.Count != 0 {
		t.Fatalf("second toggle: %+v", toggle)
	}
}

func TestMissingUserHeaderIsUnauthorized(t *testing.T) {
	ts := newTS(t)
	defer ts.Close()

	do(t, http.MethodGet, ts.URL+"/cart", "", nil, 401)
	do(t, http.MethodPost, ts.URL+"/favorites/x", "", nil, 401)
}
