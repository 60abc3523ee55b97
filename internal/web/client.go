package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int64   `json:"stock"`
	Rating      int     `json:"rating"`
}

// ProductForm carries form input verbatim; the API coerces the numeric
// fields.
type ProductForm struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Stock       string `json:"stock"`
	Rating      string `json:"rating"`
}

func FormOf(p Product) ProductForm {
	return ProductForm{
		Name:        p.Name,
		Category:    p.Category,
		Description: p.Description,
		Price:       strconv.FormatFloat(p.Price, 'f', -1, 64),
		Stock:       strconv.FormatInt(p.Stock, 10),
		Rating:      strconv.Itoa(p.Rating),
	}
}

var (
	ErrNotFound    = errors.New("catalog product not found")
	ErrBadStatus   = errors.New("catalog bad status")
	ErrUnavailable = errors.New("catalog unavailable")
)

type APIClient struct {
	BaseURL string
	Client  *http.Client
}

func NewAPIClient(baseURL string) *APIClient {
	if u, err := url.Parse(baseURL); err == nil && u.Scheme != "" && u.Host != "" {
		baseURL = strings.TrimRight(baseURL, "/")
	}
	return &APIClient{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 3 * time.Second},
	}
}

func (c *APIClient) ListProducts(ctx context.Context) ([]Product, error) {
	var out []Product
	if err := c.do(ctx, http.MethodGet, "/api/products", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *APIClient) ListCategories(ctx context.Context) ([]string, error) {
	var out []string
	if err := c.do(ctx, http.MethodGet, "/api/categories", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *APIClient) GetProduct(ctx context.Context, id int64) (Product, error) {
	var p Product
	if err := c.do(ctx, http.MethodGet, productPath(id), nil, &p); err != nil {
		return Product{}, err
	}
	return p, nil
}

func (c *APIClient) CreateProduct(ctx context.Context, f ProductForm) (Product, error) {
	var p Product
	if err := c.do(ctx, http.MethodPost, "/api/products", f, &p); err != nil {
		return Product{}, err
	}
	return p, nil
}

func (c *APIClient) UpdateProduct(ctx context.Context, id int64, f ProductForm) (Product, error) {
	var p Product
	if err := c.do(ctx, http.MethodPut, productPath(id), f, &p); err != nil {
		return Product{}, err
	}
	return p, nil
}

func (c *APIClient) DeleteProduct(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, productPath(id), nil, nil)
}

// Ready probes the catalog readiness endpoint.
func (c *APIClient) Ready(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/readyz", nil, nil)
}

func productPath(id int64) string {
	return "/api/products/" + strconv.FormatInt(id, 10)
}

type apiError struct {
	Message string `json:"message"`
}

func (c *APIClient) do(ctx context.Context, method, path string, body, out any) error {
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		r = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, r)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		_, _ = io.Copy(io.Discard, resp.Body)
		return ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		var e apiError
		_ = json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&e)
		return fmt.Errorf("%w: status=%d message=%q", ErrBadStatus, resp.StatusCode, e.Message)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
