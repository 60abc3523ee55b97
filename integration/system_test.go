//go:build integration
// +build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

var (
	catalogURL = getenv("E2E_CATALOG_URL", "http://localhost:3000")
	webURL     = getenv("E2E_WEB_URL", "http://localhost:8080")
)

type product struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Stock    int64   `json:"stock"`
	Rating   int     `json:"rating"`
}

func TestSystem_E2E_CatalogCRUD(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	waitReady(t, ctx, catalogURL+"/readyz")

	category := "e2e-" + uuid.NewString()

	var before []product
	doJSON(t, http.MethodGet, catalogURL+"/api/products", nil, &before, 200)

	var created product
	doJSON(t, http.MethodPost, catalogURL+"/api/products", map[string]any{
		"name": "E2E", "category": category, "description": "d",
		"price": "100", "stock": "2", "rating": "abc",
	}, &created, 201)
	if created.ID == 0 || created.Rating != 5 || created.Price != 100 || created.Stock != 2 {
		t.Fatalf("unexpected created product: %#v", created)
	}
	for _, p := range before {
		if p.ID >= created.ID {
			t.Fatalf("id %d not above existing id %d", created.ID, p.ID)
		}
	}

	var cats []string
	doJSON(t, http.MethodGet, catalogURL+"/api/categories", nil, &cats, 200)
	if n := count(cats, category); n != 1 {
		t.Fatalf("category %q listed %d times", category, n)
	}

	id := strconv.FormatInt(created.ID, 10)

	var updated product
	doJSON(t, http.MethodPut, catalogURL+"/api/products/"+id, map[string]any{
		"name": "E2E", "category": category, "rating": "3",
	}, &updated, 200)
	if updated.Rating != 3 {
		t.Fatalf("rating=%d want=3", updated.Rating)
	}

	doJSON(t, http.MethodDelete, catalogURL+"/api/products/"+id, nil, nil, 200)
	doJSON(t, http.MethodDelete, catalogURL+"/api/products/"+id, nil, nil, 404)
	doJSON(t, http.MethodGet, catalogURL+"/api/products/"+id, nil, nil, 404)
}

func TestSystem_E2E_WebFilter(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	waitReady(t, ctx, webURL+"/readyz")

	resp, err := http.Get(webURL + "/?category=" + url.QueryEscape("missing-"+uuid.NewString()))
	if err != nil {
		t.Fatalf("get web: %v", err)
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	_, _ = buf.ReadFrom(resp.Body)
	if !strings.Contains(buf.String(), "No products found") {
		t.Fatalf("empty indicator missing")
	}
}

func waitReady(t *testing.T, ctx context.Context, url string) {
	t.Helper()
	client := &http.Client{Timeout: 2 * time.Second}

	for ctx.Err() == nil {
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

func count(xs []string, x string) int {
	n := 0
	for _, v := range xs {
		if v == x {
			n++
		}
	}
	return n
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
