package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"MiniCatalog/pkg/kit"
)

const (
	maxBodyBytes = 1 << 20

	msgNotFound = "product not found"
	msgDeleted  = "product deleted"
)

type Server struct {
	Store Store
	Log   *zap.Logger
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", s.ready)

	r.Route("/api", func(api chi.Router) {
		api.Get("/products", s.list)
		api.Post("/products", s.create)
		api.Get("/products/{id}", s.get)
		api.Put("/products/{id}", s.replace)
		api.Delete("/products/{id}", s.delete)
		api.Get("/categories", s.categories)
	})

	return r
}

func (s *Server) ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 1*time.Second)
	defer cancel()

	if err := s.Store.Ping(ctx); err != nil {
		s.logger().Warn("readyz failed", zap.Error(err))
		kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready", nil)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	products, err := s.Store.List(r.Context())
	if err != nil {
		s.serverError(w, r, "list products failed", err)
		return
	}
	if products == nil {
		products = []Product{}
	}
	kit.WriteJSON(w, http.StatusOK, products)
}

func (s *Server) categories(w http.ResponseWriter, r *http.Request) {
	cats, err := s.Store.Categories(r.Context())
	if err != nil {
		s.serverError(w, r, "list categories failed", err)
		return
	}
	if cats == nil {
		cats = []string{}
	}
	kit.WriteJSON(w, http.StatusOK, cats)
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.notFound(w, r)
		return
	}

	p, found, err := s.Store.Get(r.Context(), id)
	if err != nil {
		s.serverError(w, r, "get product failed", err, zap.Int64("id", id))
		return
	}
	if !found {
		s.notFound(w, r)
		return
	}
	kit.WriteJSON(w, http.StatusOK, p)
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	f, err := decodeFields(w, r)
	if err != nil {
		writeDecodeError(w, r, err)
		return
	}

	p, err := s.Store.Create(r.Context(), f)
	if err != nil {
		s.serverError(w, r, "create product failed", err)
		return
	}
	kit.WriteJSON(w, http.StatusCreated, p)
}

func (s *Server) replace(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.notFound(w, r)
		return
	}

	f, err := decodeFields(w, r)
	if err != nil {
		writeDecodeError(w, r, err)
		return
	}

	p, found, err := s.Store.Replace(r.Context(), id, f)
	if err != nil {
		s.serverError(w, r, "replace product failed", err, zap.Int64("id", id))
		return
	}
	if !found {
		s.notFound(w, r)
		return
	}
	kit.WriteJSON(w, http.StatusOK, p)
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.notFound(w, r)
		return
	}

	found, err := s.Store.Delete(r.Context(), id)
	if err != nil {
		s.serverError(w, r, "delete product failed", err, zap.Int64("id", id))
		return
	}
	if !found {
		s.notFound(w, r)
		return
	}
	kit.WriteMessage(w, http.StatusOK, msgDeleted)
}

// pathID is false for anything that is not a base-10 integer; such ids can
// never match a stored product.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil
}

var errTrailingData = errors.New("extra data after json object")

func decodeFields(w http.ResponseWriter, r *http.Request) (Fields, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer func() { _ = r.Body.Close() }()

	dec := json.NewDecoder(r.Body)

	raw := map[string]any{}
	if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return Fields{}, err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return Fields{}, errTrailingData
	}

	return ParseFields(raw)
}

func writeDecodeError(w http.ResponseWriter, r *http.Request, err error) {
	var fe *FieldError
	if errors.As(err, &fe) {
		kit.WriteError(w, r, http.StatusBadRequest, "invalid field", map[string]any{
			"field": fe.Field,
			"value": fe.Value,
		})
		return
	}
	kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	kit.WriteError(w, r, http.StatusNotFound, msgNotFound, nil)
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, msg string, err error, fields ...zap.Field) {
	s.logger().Error(msg, append(fields, zap.Error(err))...)
	kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
}

func (s *Server) logger() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}
