//go:build integration
// +build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"
)

var baseURL = getenv("E2E_BASE_URL", "http://localhost:8080")

func TestSystem_E2E(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	waitReady(t, ctx, baseURL+"/readyz")

	channel := fmt.Sprintf("shopper_%d@example.com", time.Now().UnixNano())

	var otpResp struct {
		DebugCode string `json:"debug_code"`
	}
	doJSON(t, http.MethodPost, baseURL+"/auth/otp/request", map[string]any{
		"channel": channel,
	}, &otpResp, 200)
	if otpResp.DebugCode == "" {
		t.Fatalf("no debug_code; is the stack running with AQUAKART_APP_ENV=dev?")
	}

	var verifyResp struct {
		AccessToken string `json:"access_token"`
	}
	doJSON(t, http.MethodPost, baseURL+"/auth/otp/verify", map[string]any{
		"channel": channel,
		"code":    otpResp.DebugCode,
	}, &verifyResp, 200)
	if verifyResp.AccessToken == "" {
		t.Fatalf("empty access_token")
	}
	token := verifyResp.AccessToken

	var products []struct {
		Key string         `json:"key"`
		Raw map[string]any `json:"raw"`
	}
	doJSON(t, http.MethodGet, baseURL+"/products", nil, &products, 200)
	if len(products) == 0 {
		t.Fatalf("expected non-empty catalog")
	}
	key := products[0].Key

	doJSONAuth(t, http.MethodPost, baseURL+"/cart/items/"+key, token, map[string]any{
		"product": products[0].Raw,
	}, nil, 200)

	var cartResp struct {
		Count int `json:"count"`
	}
	doJSONAuth(t, http.MethodGet, baseURL+"/cart", token, nil, &cartResp, 200)
	if cartResp.Count != 1 {
		t.Fatalf("expected 1 unit in cart, got %d", cartResp.Count)
	}

	// Cart state is memory-only by design; a storefront restart resets it.
	if os.Getenv("E2E_RESTART_STOREFRONT") == "1" {
		restartStorefrontContainer(t, ctx)
		waitReady(t, ctx, baseURL+"/readyz")

		doJSONAuth(t, http.MethodGet, baseURL+"/cart", token, nil, &cartResp, 200)
		if cartResp.Count != 0 {
			t.Fatalf("expected empty cart after restart, got %d", cartResp.Count)
		}
	}
}

func waitReady(t *testing.T, ctx context.Context, url string) {
	t.Helper()
	client := &http.Client{Timeout: 2 * time.Second}

	deadline := time.Now().Add(60 * time.Second)
	for time.Now().Before(deadline) {
		req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		resp, err := client.Do(req)
		if err == nil && resp != nil && resp.StatusCode == 200 {
			_ = resp.Body.Close()
			return
		}
		if resp != nil {
			_ = resp.Body.Close()
		}
		time.Sleep(500 * time.Millisecond)
	}
	t.Fatalf("service not ready: %s", url)
}

func doJSON(t *testing.T, method, url string, body any, out any, want int) {
	t.Helper()
	doJSONAuth(t, method, url, "", body, out, want)
}

func doJSONAuth(t *testing.T, method, url, token string, body any, out any, want int) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		t.Fatalf("%s %s: status=%d want=%d", method, url, resp.StatusCode, want)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
