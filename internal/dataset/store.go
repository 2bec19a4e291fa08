package dataset

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/foodhub/foodhub/internal/models"
)

// Table is the loaded dataset. It is shared by every query and never mutated.
type Table struct {
	rows []models.Restaurant
}

// NewTable wraps rows in a Table. The caller must not modify rows afterwards.
func NewTable(rows []models.Restaurant) *Table {
	return &Table{rows: rows}
}

// Rows returns the records in load order. The slice is shared; do not modify it.
func (t *Table) Rows() []models.Restaurant {
	if t == nil {
		return nil
	}
	return t.rows
}

// Len returns the number of records.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// Store loads the dataset from a Source once and serves the same Table for
// the lifetime of the process.
type Store struct {
	src    Source
	logger *slog.Logger

	once  sync.Once
	table *Table
	err   error
}

// NewStore creates a Store over src.
func NewStore(src Source, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{src: src, logger: logger}
}

// Table returns the dataset, loading it on first use. The first outcome,
// success or failure, is returned on every later call.
func (s *Store) Table(ctx context.Context) (*Table, error) {
	s.once.Do(func() {
		start := time.Now()
		rows, err := s.src.Load(ctx)
		if err != nil {
			if !errors.Is(err, ErrDataUnavailable) {
				err = fmt.Errorf("%w: %w", ErrDataUnavailable, err)
			}
			s.err = err
			s.logger.Error("dataset load failed", "error", err)
			return
		}
		s.table = NewTable(rows)
		s.logger.Info("dataset loaded", "rows", len(rows), "elapsed", time.Since(start).Round(time.Millisecond))
	})
	return s.table, s.err
}
