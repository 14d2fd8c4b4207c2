package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/glowgrid/spadex/internal/domain"
	"github.com/glowgrid/spadex/internal/domain/geo"
	"github.com/glowgrid/spadex/internal/domain/search/sortby"
	cataloguc "github.com/glowgrid/spadex/internal/usecase/catalog"
	healthuc "github.com/glowgrid/spadex/internal/usecase/health"
	searchuc "github.com/glowgrid/spadex/internal/usecase/search"
	venueuc "github.com/glowgrid/spadex/internal/usecase/venue"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server is the HTTP API over the venue directory and search engine.
type Server struct {
	venues        *venueuc.Service
	catalogs      *cataloguc.Service
	search        searchuc.Searcher
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	venues *venueuc.Service,
	catalogs *cataloguc.Service,
	search searchuc.Searcher,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		venues:   venues,
		catalogs: catalogs,
		search:   search,
		health:   health,
		logger:   logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrVenueNotFound, http.StatusNotFound, codeVenueNotFound),
		sentinelHandler(domain.ErrCatalogNotFound, http.StatusNotFound, codeCatalogNotFound),
		sentinelHandler(domain.ErrInvalidInput, http.StatusBadRequest, codeValidationFailed),
	}
	return s
}

// Routes registers all handlers on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Put("/venues/{id}", s.upsertVenue)
		r.Get("/venues", s.listVenues)
		r.Get("/venues/{id}", s.getVenue)
		r.Delete("/venues/{id}", s.deleteVenue)

		r.Put("/catalogs/{venue}", s.upsertCatalog)
		r.Get("/catalogs/{venue}", s.getCatalog)

		r.Post("/search", s.searchVenues)
		r.Get("/facets", s.facetOptions)
	})

	r.Get("/health", s.healthCheck)
	r.Get("/metrics", s.metrics)
}

// upsertVenue handles PUT /api/v1/venues/{id}.
func (s *Server) upsertVenue(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req upsertVenueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	v, created, err := s.venues.Upsert(r.Context(), venueInputFromRequest(id, req))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
		w.Header().Set("Location", fmt.Sprintf("/api/v1/venues/%s", id))
	}
	writeJSON(w, status, venueToResponse(v))
}

// getVenue handles GET /api/v1/venues/{id}.
func (s *Server) getVenue(w http.ResponseWriter, r *http.Request) {
	v, err := s.venues.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, venueToResponse(v))
}

// listVenues handles GET /api/v1/venues. Venues are returned in the
// order they were first stored.
func (s *Server) listVenues(w http.ResponseWriter, r *http.Request) {
	venues, err := s.venues.List(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]venueResponse, len(venues))
	for i, v := range venues {
		items[i] = venueToResponse(v)
	}
	writeJSON(w, http.StatusOK, venueListResponse{Items: items, Total: len(items)})
}

// deleteVenue handles DELETE /api/v1/venues/{id}.
func (s *Server) deleteVenue(w http.ResponseWriter, r *http.Request) {
	if err := s.venues.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// upsertCatalog handles PUT /api/v1/catalogs/{venue}.
func (s *Server) upsertCatalog(w http.ResponseWriter, r *http.Request) {
	venueName := chi.URLParam(r, "venue")

	var req upsertCatalogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	c, err := s.catalogs.Upsert(r.Context(), venueName, entriesFromRequest(req))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, catalogToResponse(c))
}

// getCatalog handles GET /api/v1/catalogs/{venue}.
func (s *Server) getCatalog(w http.ResponseWriter, r *http.Request) {
	c, err := s.catalogs.Get(r.Context(), chi.URLParam(r, "venue"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, catalogToResponse(c))
}

// searchVenues handles POST /api/v1/search.
func (s *Server) searchVenues(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	strategy := sortby.Strategy(req.Sort)
	if !strategy.IsValid() {
		writeError(w, http.StatusBadRequest, codeValidationFailed,
			fmt.Sprintf("unknown sort %q", req.Sort))
		return
	}

	params := searchuc.Params{
		Query:  req.Query,
		Facets: selectionFromDTO(req.Facets),
		Sort:   strategy,
		Limit:  req.Limit,
	}
	if req.Location != nil {
		params.Location = &geo.Point{Lat: req.Location.Lat, Lng: req.Location.Lng}
	}

	results, err := s.search.Search(r.Context(), params)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]searchResultItem, len(results))
	for i := range results {
		items[i] = searchResultToItem(&results[i])
	}
	writeJSON(w, http.StatusOK, searchResponse{Items: items, Total: len(items)})
}

// facetOptions handles GET /api/v1/facets.
func (s *Server) facetOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := s.search.FacetOptions(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, facetOptionsToResponse(opts))
}

// healthCheck handles GET /health.
func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// metrics handles GET /metrics.
func (s *Server) metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code errorCode, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrVenueNotFound,
		domain.ErrCatalogNotFound,
		domain.ErrInvalidInput,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code errorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
