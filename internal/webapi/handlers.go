package webapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/foodhub/foodhub/internal/about"
	"github.com/foodhub/foodhub/internal/dashboard"
	"github.com/foodhub/foodhub/internal/dataset"
	"github.com/foodhub/foodhub/internal/query"
	"github.com/foodhub/foodhub/internal/ranking"
	"github.com/foodhub/foodhub/internal/validation"
)

// Version is set at build time or defaults to dev.
var Version = "0.1.0-dev"

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// Handlers holds the HTTP handler methods for the web API.
type Handlers struct {
	store  DashboardStore
	logger *slog.Logger
}

// NewHandlers creates a new Handlers with the given store.
func NewHandlers(store DashboardStore, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{store: store, logger: logger}
}

// HandleHealth returns a health check response with the dataset size.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	rows, err := h.store.Rows(r.Context())
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: Version,
		Rows:    rows,
	})
}

// HandleOptions returns the values each filter control offers.
func (h *Handlers) HandleOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := h.store.Options(r.Context())
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, opts)
}

// HandleDashboard computes every panel for the filters in the request body.
func (h *Handlers) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	if errs := validation.ValidateDashboardJSON(body); len(errs) > 0 {
		writeErrorDetails(w, http.StatusBadRequest, "invalid dashboard request", errs)
		return
	}
	var req dashboard.Request
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid dashboard request: %v", err))
		return
	}
	if req.Rating != nil && req.Rating.Min > req.Rating.Max {
		writeError(w, http.StatusBadRequest, "rating min must not exceed max")
		return
	}

	d, err := h.store.Dashboard(r.Context(), req)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// HandleRestaurant returns the details panel for one restaurant name.
func (h *Handlers) HandleRestaurant(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if strings.TrimSpace(name) == "" {
		writeError(w, http.StatusBadRequest, "restaurant name is required")
		return
	}

	d, err := h.store.Restaurant(r.Context(), name)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// HandleTop returns the votes pie chart for the first n rows.
func (h *Handlers) HandleTop(w http.ResponseWriter, r *http.Request) {
	n, err := ranking.ParseTopN(r.URL.Query().Get("n"), 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	p, err := h.store.Top(r.Context(), n)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// HandleQuery filters the dataset with the predicates in the request body.
func (h *Handlers) HandleQuery(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	if errs := validation.ValidateQueryJSON(body); len(errs) > 0 {
		writeErrorDetails(w, http.StatusBadRequest, "invalid query", errs)
		return
	}
	var req QueryRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid query: %v", err))
		return
	}

	res, err := h.store.Query(r.Context(), req.Predicates, req.Limit)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// HandleAbout returns the rendered introduction.
func (h *Handlers) HandleAbout(w http.ResponseWriter, _ *http.Request) {
	page, err := about.Intro()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// RegisterRoutes registers all web API routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, store DashboardStore, logger *slog.Logger) {
	h := NewHandlers(store, logger)
	mux.HandleFunc("GET /api/health", h.HandleHealth)
	mux.HandleFunc("GET /api/options", h.HandleOptions)
	mux.HandleFunc("POST /api/dashboard", h.HandleDashboard)
	mux.HandleFunc("GET /api/restaurants/{name}", h.HandleRestaurant)
	mux.HandleFunc("GET /api/top", h.HandleTop)
	mux.HandleFunc("POST /api/query", h.HandleQuery)
	mux.HandleFunc("GET /api/about", h.HandleAbout)
}

// CORSMiddleware wraps a handler with CORS headers.
// If allowedOrigins is empty, no CORS header is set (same-origin only).
// Otherwise, the request Origin is checked against the allowed list.
func CORSMiddleware(next http.Handler, allowedOrigins ...string) http.Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if len(allowedOrigins) > 0 && origin != "" && allowed[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// writeStoreError maps store errors to HTTP statuses.
func (h *Handlers) writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, dashboard.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ranking.ErrInvalidTopN),
		errors.Is(err, query.ErrInvalidPredicate):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, dataset.ErrDataUnavailable):
		h.logger.Error("dataset unavailable", "error", err)
		writeError(w, http.StatusServiceUnavailable, "dataset unavailable")
	default:
		h.logger.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return nil, false
		}
		writeError(w, http.StatusBadRequest, fmt.Sprintf("reading request body: %v", err))
		return nil, false
	}
	return body, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, ErrorResponse{Error: msg, Code: code})
}

func writeErrorDetails(w http.ResponseWriter, code int, msg string, details []string) {
	writeJSON(w, code, ErrorResponse{Error: msg, Code: code, Details: details})
}
