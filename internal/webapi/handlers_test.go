package webapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/foodhub/foodhub/internal/dashboard"
	"github.com/foodhub/foodhub/internal/dataset"
	"github.com/foodhub/foodhub/internal/models"
	"github.com/foodhub/foodhub/internal/query"
)

func fp(v float64) *float64 { return &v }

func sampleRows() []models.Restaurant {
	return []models.Restaurant{
		{Name: "Jalsa", Type: "Casual Dining", Location: "Banashankari", Cuisines: "North Indian, Mughlai, Chinese", CostForTwo: fp(800), Rating: fp(4.1), Votes: 775},
		{Name: "Spice Elephant", Type: "Casual Dining", Location: "Banashankari", Cuisines: "Chinese, North Indian, Thai", CostForTwo: fp(800), Rating: fp(4.1), Votes: 787},
		{Name: "Cafe X", Type: "Cafe", Location: "BTM", Cuisines: "Cafe, Desserts", CostForTwo: fp(200), Rating: fp(3.0), Votes: 12},
		{Name: "Cafe X", Type: "Cafe", Location: "BTM", Cuisines: "Cafe, Beverages", CostForTwo: fp(300), Rating: fp(4.0), Votes: 20},
		{Name: "Cafe X", Type: "Cafe", Location: "BTM", Cuisines: "Desserts", CostForTwo: fp(250), Rating: nil, Votes: 4},
	}
}

// staticSource is a dataset.Source over fixed rows.
type staticSource struct {
	rows []models.Restaurant
	err  error
}

func (s staticSource) Load(context.Context) ([]models.Restaurant, error) {
	return s.rows, s.err
}

func newTestHandlers(t *testing.T) *Handlers {
	t.Helper()
	return NewHandlers(NewDatasetStore(dataset.NewStore(staticSource{rows: sampleRows()}, nil), nil), nil)
}

// errStore implements DashboardStore and fails every call.
type errStore struct {
	err error
}

func (e errStore) Rows(context.Context) (int, error) { return 0, e.err }
func (e errStore) Options(context.Context) (*dashboard.Options, error) {
	return nil, e.err
}
func (e errStore) Dashboard(context.Context, dashboard.Request) (*dashboard.Dashboard, error) {
	return nil, e.err
}
func (e errStore) Restaurant(context.Context, string) (*dashboard.RestaurantDetail, error) {
	return nil, e.err
}
func (e errStore) Top(context.Context, int) (*dashboard.TopPanel, error) { return nil, e.err }
func (e errStore) Query(context.Context, []query.PredicateSpec, int) (*dashboard.QueryResult, error) {
	return nil, e.err
}

func serve(h *Handlers, method, target, body string) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	RegisterRoutes(mux, h.store, nil)
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	h := newTestHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()

	h.HandleHealth(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Status != "ok" {
		t.Errorf("expected status ok, got %q", resp.Status)
	}
	if resp.Version == "" {
		t.Error("expected non-empty version")
	}
	if resp.Rows != 5 {
		t.Errorf("expected 5 rows, got %d", resp.Rows)
	}
}

func TestHandleHealthDatasetUnavailable(t *testing.T) {
	h := NewHandlers(errStore{err: fmt.Errorf("%w: zomato.xlsx: open failed", dataset.ErrDataUnavailable)}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	h.HandleHealth(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestHandleOptions(t *testing.T) {
	rec := serve(newTestHandlers(t), http.MethodGet, "/api/options", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var opts dashboard.Options
	if err := json.NewDecoder(rec.Body).Decode(&opts); err != nil {
		t.Fatal(err)
	}
	if len(opts.Names) != 3 {
		t.Errorf("expected 3 names, got %v", opts.Names)
	}
	if opts.RatingMin == nil || *opts.RatingMin != 3.0 {
		t.Errorf("expected rating min 3.0, got %v", opts.RatingMin)
	}
}

func TestHandleDashboard(t *testing.T) {
	rec := serve(newTestHandlers(t), http.MethodPost, "/api/dashboard", `{"names": ["Cafe X"], "types": ["Cafe"], "top_n": 2}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var d dashboard.Dashboard
	if err := json.NewDecoder(rec.Body).Decode(&d); err != nil {
		t.Fatal(err)
	}
	if len(d.Details) != 1 || d.Details[0].Stars != 4 {
		t.Errorf("expected Cafe X with 4 stars, got %+v", d.Details)
	}
	if d.TypeLocation.Count != 3 {
		t.Errorf("expected 3 cafe rows, got %d", d.TypeLocation.Count)
	}
	if len(d.Top.Rows) != 2 {
		t.Errorf("expected 2 top rows, got %d", len(d.Top.Rows))
	}
}

func TestHandleDashboardInvalid(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{name: "schema violation", body: `{"top_n": "three"}`, wantMsg: "invalid dashboard request"},
		{name: "malformed", body: `{"names": [`, wantMsg: "invalid dashboard request"},
		{name: "inverted rating", body: `{"rating": {"min": 4, "max": 3}}`, wantMsg: "rating min"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(newTestHandlers(t), http.MethodPost, "/api/dashboard", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			var errResp ErrorResponse
			if err := json.NewDecoder(rec.Body).Decode(&errResp); err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(errResp.Error, tt.wantMsg) {
				t.Errorf("expected error containing %q, got %q", tt.wantMsg, errResp.Error)
			}
		})
	}
}

func TestHandleDashboardSchemaDetails(t *testing.T) {
	rec := serve(newTestHandlers(t), http.MethodPost, "/api/dashboard", `{"top_n": 0}`)

	var errResp ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&errResp); err != nil {
		t.Fatal(err)
	}
	if len(errResp.Details) == 0 || !strings.HasPrefix(errResp.Details[0], "/top_n") {
		t.Errorf("expected a /top_n detail, got %v", errResp.Details)
	}
}

func TestHandleRestaurant(t *testing.T) {
	rec := serve(newTestHandlers(t), http.MethodGet, "/api/restaurants/Cafe%20X", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var d dashboard.RestaurantDetail
	if err := json.NewDecoder(rec.Body).Decode(&d); err != nil {
		t.Fatal(err)
	}
	if d.Name != "Cafe X" {
		t.Errorf("expected Cafe X, got %q", d.Name)
	}
	if d.MeanRating == nil || *d.MeanRating != 3.5 {
		t.Errorf("expected mean rating 3.5, got %v", d.MeanRating)
	}
	if d.CostForTwo == nil || *d.CostForTwo != 250 {
		t.Errorf("expected cost 250, got %v", d.CostForTwo)
	}
}

func TestHandleRestaurantNotFound(t *testing.T) {
	rec := serve(newTestHandlers(t), http.MethodGet, "/api/restaurants/Nowhere", "")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestHandleRestaurantMissingName(t *testing.T) {
	h := newTestHandlers(t)
	req := httptest.NewRequest(http.MethodGet, "/api/restaurants/", nil)
	rec := httptest.NewRecorder()

	h.HandleRestaurant(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	rec = serve(h, http.MethodGet, "/api/restaurants/%20", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for blank name, got %d", rec.Code)
	}
}

func TestHandleTop(t *testing.T) {
	tests := []struct {
		target   string
		wantCode int
		wantRows int
	}{
		{target: "/api/top?n=2", wantCode: http.StatusOK, wantRows: 2},
		{target: "/api/top", wantCode: http.StatusOK, wantRows: 3},
		{target: "/api/top?n=abc", wantCode: http.StatusBadRequest},
		{target: "/api/top?n=0", wantCode: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := serve(newTestHandlers(t), http.MethodGet, tt.target, "")
			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, rec.Code)
			}
			if tt.wantCode != http.StatusOK {
				return
			}
			var p dashboard.TopPanel
			if err := json.NewDecoder(rec.Body).Decode(&p); err != nil {
				t.Fatal(err)
			}
			if len(p.Rows) != tt.wantRows {
				t.Errorf("expected %d rows, got %d", tt.wantRows, len(p.Rows))
			}
			if p.Rows[0].Name != "Jalsa" {
				t.Errorf("expected dataset order, got %q first", p.Rows[0].Name)
			}
		})
	}
}

func TestHandleQuery(t *testing.T) {
	body := `{"predicates": [{"kind": "range", "column": "rating", "params": {"min": 3.5, "max": 5}}], "limit": 1}`
	rec := serve(newTestHandlers(t), http.MethodPost, "/api/query", body)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var res dashboard.QueryResult
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatal(err)
	}
	if res.Total != 3 {
		t.Errorf("expected 3 matches, got %d", res.Total)
	}
	if len(res.Rows) != 1 {
		t.Errorf("expected 1 row after limit, got %d", len(res.Rows))
	}
}

func TestHandleQueryInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "unknown kind", body: `{"predicates": [{"kind": "like"}]}`},
		{name: "inverted range", body: `{"predicates": [{"kind": "range", "column": "rating", "params": {"min": 5, "max": 1}}]}`},
		{name: "range on text", body: `{"predicates": [{"kind": "range", "column": "location", "params": {"min": 1, "max": 2}}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(newTestHandlers(t), http.MethodPost, "/api/query", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestHandleAbout(t *testing.T) {
	rec := serve(newTestHandlers(t), http.MethodGet, "/api/about", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Food Hub") {
		t.Errorf("expected intro text, got %s", rec.Body.String())
	}
}

func TestStoreErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "not found", err: dashboard.ErrNotFound, want: http.StatusNotFound},
		{name: "invalid predicate", err: fmt.Errorf("%w: predicate 0", query.ErrInvalidPredicate), want: http.StatusBadRequest},
		{name: "data unavailable", err: dataset.ErrDataUnavailable, want: http.StatusServiceUnavailable},
		{name: "other", err: errors.New("boom"), want: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandlers(errStore{err: tt.err}, nil)
			rec := httptest.NewRecorder()
			h.HandleOptions(rec, httptest.NewRequest(http.MethodGet, "/api/options", nil))
			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, rec.Code)
			}
			var errResp ErrorResponse
			if err := json.NewDecoder(rec.Body).Decode(&errResp); err != nil {
				t.Fatal(err)
			}
			if errResp.Code != tt.want {
				t.Errorf("expected error code %d, got %d", tt.want, errResp.Code)
			}
		})
	}
}

func TestCORSMiddleware(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := CORSMiddleware(inner, "http://localhost:5173")

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("expected allowed origin header, got %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("expected no CORS header for unknown origin, got %q", got)
	}

	req = httptest.NewRequest(http.MethodOptions, "/api/dashboard", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204 for preflight, got %d", rec.Code)
	}
}
