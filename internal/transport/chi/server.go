// Package chi exposes the service over HTTP.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/arkadiuszzietek/doofinder-woocommerce/internal/domain"
	healthuc "github.com/arkadiuszzietek/doofinder-woocommerce/internal/usecase/health"
	searchuc "github.com/arkadiuszzietek/doofinder-woocommerce/internal/usecase/search"
	telemetryuc "github.com/arkadiuszzietek/doofinder-woocommerce/internal/usecase/telemetry"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server holds the HTTP handlers.
type Server struct {
	search        *searchuc.Service
	telemetry     *telemetryuc.Service
	health        *healthuc.Service
	defaultPage   int
	maxPage       int
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	telemetry *telemetryuc.Service,
	health *healthuc.Service,
	defaultPageSize, maxPageSize int,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search:      search,
		telemetry:   telemetry,
		health:      health,
		defaultPage: defaultPageSize,
		maxPage:     maxPageSize,
		logger:      logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, "not_found"),
		sentinelHandler(domain.ErrSearchUnavailable, http.StatusBadGateway, "search_unavailable"),
		sentinelHandler(domain.ErrLocalQuery, http.StatusInternalServerError, "catalog_error"),
	}
	return s
}

// Routes mounts the API routes on the router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/api/v1/search", s.handleSearch)
	r.Post("/api/v1/banners/impression", s.handleBannerImpression)
	r.Post("/api/v1/banners/{id}/click", s.handleBannerClick)
	r.Get("/health", s.handleHealth)
	r.Get("/metrics", s.handleMetrics)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type productItem struct {
	ID    int     `json:"id"`
	Title string  `json:"title"`
	Kind  string  `json:"kind"`
	Price float64 `json:"price"`
}

type searchResponse struct {
	Source    string        `json:"source"`
	Items     []productItem `json:"items"`
	Total     int           `json:"total"`
	Page      int           `json:"page"`
	PerPage   int           `json:"per_page"`
	PageCount int           `json:"page_count"`
	RequestID string        `json:"request_id,omitempty"`
}

// handleSearch handles GET /api/v1/search.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	pageNum := intParam(q.Get("page"), 1)
	perPage := intParam(q.Get("per_page"), s.defaultPage)
	if perPage > s.maxPage {
		perPage = s.maxPage
	}

	requestID := chiMiddleware.GetReqID(r.Context())

	result, err := s.search.Search(r.Context(), requestID, q.Get("term"), pageNum, perPage)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]productItem, 0, len(result.Products()))
	for _, p := range result.Products() {
		items = append(items, productItem{
			ID:    p.ID(),
			Title: p.Title(),
			Kind:  p.Kind(),
			Price: p.Price(),
		})
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Source:    string(result.Source()),
		Items:     items,
		Total:     result.Total(),
		Page:      pageNum,
		PerPage:   perPage,
		PageCount: result.PageCount(),
		RequestID: requestID,
	})
}

type impressionRequest struct {
	RequestID string `json:"request_id"`
}

// handleBannerImpression handles POST /api/v1/banners/impression.
// Always 202: telemetry loss must not break the storefront flow.
func (s *Server) handleBannerImpression(w http.ResponseWriter, r *http.Request) {
	var req impressionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}
	if req.RequestID == "" {
		writeError(w, http.StatusBadRequest, "validation_failed", "request_id is required")
		return
	}

	s.telemetry.RecordImpression(r.Context(), req.RequestID)
	w.WriteHeader(http.StatusAccepted)
}

// handleBannerClick handles POST /api/v1/banners/{id}/click.
func (s *Server) handleBannerClick(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "validation_failed", "banner id must be a positive integer")
		return
	}

	s.telemetry.RecordClick(r.Context(), id)
	w.WriteHeader(http.StatusAccepted)
}

// handleHealth handles GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
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

// handleMetrics handles GET /metrics.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func intParam(raw string, def int) int {
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return def
	}
	return v
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrNotFound,
		domain.ErrSearchUnavailable,
		domain.ErrLocalQuery,
		domain.ErrSearchDisabled,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
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
	writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
}
