package webapi

import (
	"context"
	"log/slog"
	"sync"

	"github.com/foodhub/foodhub/internal/dashboard"
	"github.com/foodhub/foodhub/internal/dataset"
	"github.com/foodhub/foodhub/internal/query"
)

// DashboardStore provides the dashboard data the API serves.
type DashboardStore interface {
	// Rows returns the number of rows in the dataset.
	Rows(ctx context.Context) (int, error)
	// Options returns the values offered by each filter.
	Options(ctx context.Context) (*dashboard.Options, error)
	// Dashboard computes every panel for a request.
	Dashboard(ctx context.Context, req dashboard.Request) (*dashboard.Dashboard, error)
	// Restaurant returns the details of one restaurant name.
	Restaurant(ctx context.Context, name string) (*dashboard.RestaurantDetail, error)
	// Top returns the top-N panel. n <= 0 uses the default.
	Top(ctx context.Context, n int) (*dashboard.TopPanel, error)
	// Query filters the dataset with predicate specs.
	Query(ctx context.Context, specs []query.PredicateSpec, limit int) (*dashboard.QueryResult, error)
}

// DatasetStore serves a dashboard over a dataset.Store. The dataset is
// loaded on the first request unless Preload was called.
type DatasetStore struct {
	data *dataset.Store
	opts []dashboard.Option

	mu      sync.RWMutex
	svc     *dashboard.Service
	loadErr error
}

// NewDatasetStore creates a DatasetStore over data.
func NewDatasetStore(data *dataset.Store, logger *slog.Logger, opts ...dashboard.Option) *DatasetStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &DatasetStore{
		data: data,
		opts: append([]dashboard.Option{dashboard.WithLogger(logger)}, opts...),
	}
}

// Preload loads the dataset now so a failure surfaces before serving.
func (ds *DatasetStore) Preload(ctx context.Context) error {
	_, err := ds.service(ctx)
	return err
}

// service returns the dashboard service, building it on first use.
func (ds *DatasetStore) service(ctx context.Context) (*dashboard.Service, error) {
	ds.mu.RLock()
	svc, err := ds.svc, ds.loadErr
	ds.mu.RUnlock()
	if svc != nil || err != nil {
		return svc, err
	}

	ds.mu.Lock()
	defer ds.mu.Unlock()
	if ds.svc != nil || ds.loadErr != nil {
		return ds.svc, ds.loadErr
	}
	// The load outlives the request that triggered it, so a disconnecting
	// client cannot leave a cancelled load memoized.
	table, err := ds.data.Table(context.WithoutCancel(ctx))
	if err != nil {
		ds.loadErr = err
		return nil, err
	}
	ds.svc = dashboard.NewService(table, ds.opts...)
	return ds.svc, nil
}

func (ds *DatasetStore) Rows(ctx context.Context) (int, error) {
	svc, err := ds.service(ctx)
	if err != nil {
		return 0, err
	}
	return svc.Rows(), nil
}

func (ds *DatasetStore) Options(ctx context.Context) (*dashboard.Options, error) {
	svc, err := ds.service(ctx)
	if err != nil {
		return nil, err
	}
	o := svc.Options()
	return &o, nil
}

func (ds *DatasetStore) Dashboard(ctx context.Context, req dashboard.Request) (*dashboard.Dashboard, error) {
	svc, err := ds.service(ctx)
	if err != nil {
		return nil, err
	}
	return svc.Build(ctx, req)
}

func (ds *DatasetStore) Restaurant(ctx context.Context, name string) (*dashboard.RestaurantDetail, error) {
	svc, err := ds.service(ctx)
	if err != nil {
		return nil, err
	}
	d, err := svc.Restaurant(name)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (ds *DatasetStore) Top(ctx context.Context, n int) (*dashboard.TopPanel, error) {
	svc, err := ds.service(ctx)
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		n = svc.DefaultTopN()
	}
	p := svc.TopByVotes(n)
	return &p, nil
}

func (ds *DatasetStore) Query(ctx context.Context, specs []query.PredicateSpec, limit int) (*dashboard.QueryResult, error) {
	svc, err := ds.service(ctx)
	if err != nil {
		return nil, err
	}
	return svc.Query(specs, limit)
}
