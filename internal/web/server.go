package web

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/five82/showcase/internal/browse"
	"github.com/five82/showcase/internal/catalog"
	"github.com/five82/showcase/internal/route"
)

// Page is the JSON document served for a product URL.
type Page struct {
	Product   *catalog.Product `json:"product"`
	Slug      string           `json:"slug"`
	Canonical string           `json:"canonical"`
	Available bool             `json:"available"`
	Position  Position         `json:"position"`
	Next      string           `json:"next"`
	Prev      string           `json:"prev"`
}

// Position locates a product within the catalog.
type Position struct {
	ID  int `json:"id"`
	Max int `json:"max"`
}

// Server answers product page requests from the catalog.
type Server struct {
	Catalog catalog.Fetcher
	Log     *zap.Logger
}

// Routes returns the page routes without any middleware.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	r.Get("/", s.product)
	r.Get("/product", s.product)
	r.Get("/product/*", s.product)

	return r
}

func (s *Server) product(w http.ResponseWriter, r *http.Request) {
	ref, err := route.Parse(r.URL.Path)
	if err != nil {
		writeError(w, r, http.StatusNotFound, "not found", map[string]any{"path": r.URL.Path})
		return
	}
	s.page(w, r, ref)
}

func (s *Server) page(w http.ResponseWriter, r *http.Request, ref route.Ref) {
	ctx := r.Context()

	count, err := s.Catalog.FetchProductsCount(ctx)
	if err != nil {
		s.catalogError(w, r, err, ref)
		return
	}
	if ref.ID > count {
		writeError(w, r, http.StatusNotFound, "not found", map[string]any{"id": ref.ID})
		return
	}

	p, err := s.Catalog.FetchProduct(ctx, ref.ID)
	if err != nil {
		s.catalogError(w, r, err, ref)
		return
	}

	canonical := route.Canonical(p.Title, ref.ID)
	if ref.NeedsRedirect(canonical) {
		http.Redirect(w, r, canonical, http.StatusMovedPermanently)
		return
	}

	writeJSON(w, http.StatusOK, Page{
		Product:   p,
		Slug:      canonical[len(route.ProductPrefix):],
		Canonical: canonical,
		Available: p.Available(),
		Position:  Position{ID: ref.ID, Max: count},
		Next:      route.Legacy(browse.NextID(ref.ID, count)),
		Prev:      route.Legacy(browse.PrevID(ref.ID, count)),
	})
}

func (s *Server) catalogError(w http.ResponseWriter, r *http.Request, err error, ref route.Ref) {
	var statusErr *catalog.StatusError
	switch {
	case errors.Is(err, catalog.ErrInvalidArgument):
		writeError(w, r, http.StatusNotFound, "not found", map[string]any{"id": ref.ID})
	case errors.As(err, &statusErr) && statusErr.Code == http.StatusNotFound:
		writeError(w, r, http.StatusNotFound, "not found", map[string]any{"id": ref.ID})
	case errors.Is(err, catalog.ErrMalformedResponse):
		s.logError("malformed catalog response", err, ref)
		writeError(w, r, http.StatusBadGateway, "bad catalog response", nil)
	default:
		s.logError("catalog unavailable", err, ref)
		writeError(w, r, http.StatusServiceUnavailable, "catalog unavailable", nil)
	}
}

func (s *Server) logError(msg string, err error, ref route.Ref) {
	if s.Log == nil {
		return
	}
	s.Log.Error(msg, zap.Error(err), zap.Int("id", ref.ID), zap.Stringer("kind", ref.Kind))
}
