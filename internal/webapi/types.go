package webapi

import (
	"github.com/foodhub/foodhub/internal/query"
)

// HealthResponse is the health check response.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Rows    int    `json:"rows"`
}

// QueryRequest is the body of POST /api/query.
type QueryRequest struct {
	Predicates []query.PredicateSpec `json:"predicates"`
	Limit      int                   `json:"limit,omitempty"`
}

// ErrorResponse is returned for errors.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Code    int      `json:"code"`
	Details []string `json:"details,omitempty"`
}
