// Package source loads dataset records from the backend and degrades to the
// bundled sample catalog when the backend errors, times out or returns no rows.
package source

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"labor-dashboard/internal/metrics"
	"labor-dashboard/internal/model"
)

// ErrUnknownDataset is returned for names the catalog does not know.
var ErrUnknownDataset = errors.New("unknown dataset")

// Fetcher is a backend able to return the records of a dataset.
type Fetcher interface {
	Fetch(ctx context.Context, dataset string, filters Filters) ([]model.Record, error)
}

// Origin tells where a dataset's records came from.
type Origin string

const (
	OriginBackend  Origin = "backend"
	OriginFallback Origin = "fallback"
)

// Fallback reasons.
const (
	ReasonNoBackend = "no_backend"
	ReasonError     = "error"
	ReasonTimeout   = "timeout"
	ReasonEmpty     = "empty"
)

// Dataset is a loaded record set.
type Dataset struct {
	Name           string         `json:"name"`
	Records        []model.Record `json:"records"`
	Origin         Origin         `json:"origin"`
	FallbackReason string         `json:"fallback_reason,omitempty"`
	Filters        Filters        `json:"filters,omitempty"`
}

type LoaderConfig struct {
	FetchTimeout time.Duration
	CacheTTL     time.Duration
}

// Loader races backend fetches against a timeout and substitutes the
// catalog on failure. Concurrent loads of the same dataset and filters share
// one fetch.
type Loader struct {
	fetcher Fetcher
	catalog *Catalog
	timeout time.Duration
	cache   *cache.Cache
	group   singleflight.Group
	logger  *zap.Logger
	metrics *metrics.Recorder
}

// NewLoader builds a Loader. fetcher may be nil, in which case every load is
// served from the catalog.
func NewLoader(fetcher Fetcher, catalog *Catalog, cfg LoaderConfig, logger *zap.Logger, rec *metrics.Recorder) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = 5 * time.Second
	}
	l := &Loader{
		fetcher: fetcher,
		catalog: catalog,
		timeout: cfg.FetchTimeout,
		logger:  logger,
		metrics: rec,
	}
	if cfg.CacheTTL > 0 {
		l.cache = cache.New(cfg.CacheTTL, 2*cfg.CacheTTL)
	}
	return l
}

// Catalog returns the fallback catalog.
func (l *Loader) Catalog() *Catalog {
	return l.catalog
}

func cacheKey(name string, filters Filters) string {
	return fmt.Sprintf("%s:%016x", name, filters.Key())
}

type fetchResult struct {
	records []model.Record
	err     error
}

// Load returns the records of dataset name matching filters.
func (l *Loader) Load(ctx context.Context, name string, filters Filters) (Dataset, error) {
	fallback, ok := l.catalog.Records(name)
	if !ok {
		return Dataset{}, fmt.Errorf("%w: %s", ErrUnknownDataset, name)
	}
	active := filters.Active()
	start := time.Now()

	if l.fetcher == nil {
		return l.fallback(name, active, fallback, ReasonNoBackend, start), nil
	}

	key := cacheKey(name, active)
	if l.cache != nil {
		if cached, found := l.cache.Get(key); found {
			l.metrics.CacheHit()
			return Dataset{Name: name, Records: cached.([]model.Record), Origin: OriginBackend, Filters: active}, nil
		}
	}

	// The shared fetch must not die with whichever caller started it.
	shared := context.WithoutCancel(ctx)
	ch := l.group.DoChan(key, func() (interface{}, error) {
		return l.fetch(shared, name, active), nil
	})
	var res fetchResult
	select {
	case <-ctx.Done():
		return Dataset{}, ctx.Err()
	case r := <-ch:
		res = r.Val.(fetchResult)
	}
	if err := ctx.Err(); err != nil {
		return Dataset{}, err
	}

	switch {
	case errors.Is(res.err, context.DeadlineExceeded):
		l.logger.Warn("backend fetch timed out, serving fallback",
			zap.String("dataset", name), zap.Duration("timeout", l.timeout))
		return l.fallback(name, active, fallback, ReasonTimeout, start), nil
	case res.err != nil:
		l.logger.Warn("backend fetch failed, serving fallback",
			zap.String("dataset", name), zap.Error(res.err))
		return l.fallback(name, active, fallback, ReasonError, start), nil
	case len(res.records) == 0:
		l.logger.Warn("backend returned no rows, serving fallback", zap.String("dataset", name))
		return l.fallback(name, active, fallback, ReasonEmpty, start), nil
	}

	if l.cache != nil {
		l.cache.SetDefault(key, res.records)
	}
	l.metrics.Load(name, string(OriginBackend), "", time.Since(start))
	l.logger.Debug("dataset loaded",
		zap.String("dataset", name), zap.Int("records", len(res.records)), zap.Duration("took", time.Since(start)))
	return Dataset{Name: name, Records: res.records, Origin: OriginBackend, Filters: active}, nil
}

// fetch runs the backend call in its own goroutine so a fetcher that ignores
// its context still cannot hold the caller past the timeout. ctx carries no
// caller cancellation; the result is shared by every caller of the key.
func (l *Loader) fetch(ctx context.Context, name string, filters Filters) fetchResult {
	fetchCtx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	ch := make(chan fetchResult, 1)
	go func() {
		records, err := l.fetcher.Fetch(fetchCtx, name, filters)
		ch <- fetchResult{records: Normalize(records), err: err}
	}()

	select {
	case res := <-ch:
		return res
	case <-fetchCtx.Done():
		return fetchResult{err: fetchCtx.Err()}
	}
}

func (l *Loader) fallback(name string, filters Filters, records []model.Record, reason string, start time.Time) Dataset {
	l.metrics.Load(name, string(OriginFallback), reason, time.Since(start))
	return Dataset{
		Name:           name,
		Records:        filters.Apply(records),
		Origin:         OriginFallback,
		FallbackReason: reason,
		Filters:        filters,
	}
}
