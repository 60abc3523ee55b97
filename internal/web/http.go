package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"MiniCatalog/pkg/kit"
)

const (
	noticeAdded        = "Product added"
	noticeUpdated      = "Product updated"
	noticeDeleted      = "Product deleted"
	noticeSaveFailed   = "Failed to save product"
	noticeDeleteFailed = "Failed to delete product"
	noticeLoadFailed   = "Failed to load data. Check the server."
	noticeNotFound     = "Product not found"

	maxFormBytes = 1 << 20
)

//go:embed templates/*.html
var templatesFS embed.FS

var indexTmpl = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

type Server struct {
	API *APIClient
	Log *zap.Logger
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", s.ready)

	r.Get("/", s.index)
	r.Post("/products", s.create)
	r.Post("/products/{id}", s.update)
	r.Post("/products/{id}/delete", s.delete)

	return r
}

func (s *Server) ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.API.Ready(ctx); err != nil {
		s.logger().Warn("readyz failed: catalog", zap.Error(err))
		kit.WriteError(w, r, http.StatusServiceUnavailable, "catalog not ready", nil)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// fetch loads products and categories concurrently.
func (s *Server) fetch(ctx context.Context) ([]Product, []string, error) {
	var (
		products   []Product
		categories []string
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = s.API.ListProducts(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = s.API.ListCategories(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return products, categories, nil
}

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page := Page{
		Selected:   q.Get("category"),
		Notice:     q.Get("notice"),
		Categories: []string{AllCategories},
	}
	if page.Selected == "" {
		page.Selected = AllCategories
	}

	products, categories, err := s.fetch(r.Context())
	if err != nil {
		s.logger().Error("load catalog failed", zap.Error(err))
		page.LoadFailed = true
		page.Notice = noticeLoadFailed
		s.render(w, http.StatusBadGateway, page)
		return
	}

	page.Categories = CategoryButtons(categories)
	page.Cards = Cards(FilterByCategory(products, page.Selected))

	switch {
	case q.Get("new") != "":
		page.Form = NewForm()
	case q.Get("edit") != "":
		if p, ok := findProduct(products, q.Get("edit")); ok {
			page.Form = EditForm(p)
		} else {
			page.Notice = noticeNotFound
		}
	}

	s.render(w, http.StatusOK, page)
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(w, r)
	if err != nil {
		s.redirect(w, r, noticeSaveFailed)
		return
	}

	if _, err := s.API.CreateProduct(r.Context(), f); err != nil {
		s.logger().Warn("create product failed", zap.Error(err))
		s.redirect(w, r, noticeSaveFailed)
		return
	}
	s.redirect(w, r, noticeAdded)
}

func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		s.redirect(w, r, noticeNotFound)
		return
	}

	f, err := parseForm(w, r)
	if err != nil {
		s.redirect(w, r, noticeSaveFailed)
		return
	}

	if _, err := s.API.UpdateProduct(r.Context(), id, f); err != nil {
		s.logger().Warn("update product failed", zap.Error(err), zap.Int64("id", id))
		s.redirect(w, r, noticeSaveFailed)
		return
	}
	s.redirect(w, r, noticeUpdated)
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		s.redirect(w, r, noticeNotFound)
		return
	}

	if err := s.API.DeleteProduct(r.Context(), id); err != nil {
		s.logger().Warn("delete product failed", zap.Error(err), zap.Int64("id", id))
		if errors.Is(err, ErrNotFound) {
			s.redirect(w, r, noticeNotFound)
			return
		}
		s.redirect(w, r, noticeDeleteFailed)
		return
	}
	s.redirect(w, r, noticeDeleted)
}

func parseForm(w http.ResponseWriter, r *http.Request) (ProductForm, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		return ProductForm{}, err
	}
	return ProductForm{
		Name:        strings.TrimSpace(r.PostFormValue("name")),
		Category:    strings.TrimSpace(r.PostFormValue("category")),
		Description: r.PostFormValue("description"),
		Price:       r.PostFormValue("price"),
		Stock:       r.PostFormValue("stock"),
		Rating:      r.PostFormValue("rating"),
	}, nil
}

func findProduct(products []Product, rawID string) (Product, bool) {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return Product{}, false
	}
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// redirect sends the browser back to the grid, which re-fetches everything.
func (s *Server) redirect(w http.ResponseWriter, r *http.Request, notice string) {
	q := url.Values{}
	if c := r.PostFormValue("view_category"); c != "" && c != AllCategories {
		q.Set("category", c)
	}
	q.Set("notice", notice)
	http.Redirect(w, r, "/?"+q.Encode(), http.StatusSeeOther)
}

func (s *Server) render(w http.ResponseWriter, status int, page Page) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := indexTmpl.Execute(w, page); err != nil {
		s.logger().Error("render page failed", zap.Error(err))
	}
}

func (s *Server) logger() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}
