package source

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"labor-dashboard/internal/metrics"
	"labor-dashboard/internal/model"
	"labor-dashboard/internal/viz"
)

type stubFetcher struct {
	records []model.Record
	err     error
	delay   time.Duration
	calls   atomic.Int32
}

func (s *stubFetcher) Fetch(ctx context.Context, _ string, _ Filters) ([]model.Record, error) {
	s.calls.Add(1)
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return s.records, s.err
}

func newTestLoader(t *testing.T, f Fetcher, cfg LoaderConfig) *Loader {
	t.Helper()
	catalog, err := NewCatalog()
	require.NoError(t, err)
	rec, err := metrics.New()
	require.NoError(t, err)
	if f == nil {
		return NewLoader(nil, catalog, cfg, zaptest.NewLogger(t), rec)
	}
	return NewLoader(f, catalog, cfg, zaptest.NewLogger(t), rec)
}

func TestLoadFromBackend(t *testing.T) {
	f := &stubFetcher{records: []model.Record{{"area": "Salud", "pct_mujeres": 70}}}
	l := newTestLoader(t, f, LoaderConfig{FetchTimeout: time.Second})

	ds, err := l.Load(context.Background(), BrechasGenero, nil)
	require.NoError(t, err)
	assert.Equal(t, OriginBackend, ds.Origin)
	assert.Empty(t, ds.FallbackReason)
	assert.Len(t, ds.Records, 1)
}

func TestLoadFallbacks(t *testing.T) {
	tests := []struct {
		name    string
		fetcher *stubFetcher
		reason  string
	}{
		{"error", &stubFetcher{err: errors.New("connection refused")}, ReasonError},
		{"empty", &stubFetcher{}, ReasonEmpty},
		{"timeout", &stubFetcher{records: []model.Record{{"a": 1}}, delay: time.Second}, ReasonTimeout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newTestLoader(t, tt.fetcher, LoaderConfig{FetchTimeout: 20 * time.Millisecond})
			ds, err := l.Load(context.Background(), BrechasGenero, Filters{"region": "Metropolitana"})
			require.NoError(t, err)
			assert.Equal(t, OriginFallback, ds.Origin)
			assert.Equal(t, tt.reason, ds.FallbackReason)
			assert.Len(t, ds.Records, 2, "fallback records honor the filters")
		})
	}
}

func TestLoadWithoutBackend(t *testing.T) {
	var nilFetcher Fetcher
	l := newTestLoader(t, nilFetcher, LoaderConfig{})
	ds, err := l.Load(context.Background(), AnalisisArea, Filters{"region": "todas"})
	require.NoError(t, err)
	assert.Equal(t, OriginFallback, ds.Origin)
	assert.Equal(t, ReasonNoBackend, ds.FallbackReason)
	assert.Len(t, ds.Records, 3)
}

func TestLoadUnknownDataset(t *testing.T) {
	l := newTestLoader(t, &stubFetcher{}, LoaderConfig{})
	_, err := l.Load(context.Background(), "dashboard_inexistente", nil)
	assert.ErrorIs(t, err, ErrUnknownDataset)
}

func TestLoadCachesBackendResults(t *testing.T) {
	f := &stubFetcher{records: []model.Record{{"a": 1}}}
	l := newTestLoader(t, f, LoaderConfig{FetchTimeout: time.Second, CacheTTL: time.Minute})

	for i := 0; i < 3; i++ {
		ds, err := l.Load(context.Background(), AnalisisArea, Filters{"area": "Salud"})
		require.NoError(t, err)
		assert.Equal(t, OriginBackend, ds.Origin)
	}
	assert.Equal(t, int32(1), f.calls.Load())

	_, err := l.Load(context.Background(), AnalisisArea, Filters{"area": "Tecnología"})
	require.NoError(t, err)
	assert.Equal(t, int32(2), f.calls.Load())
}

func TestLoadSharesConcurrentFetches(t *testing.T) {
	f := &stubFetcher{records: []model.Record{{"a": 1}}, delay: 50 * time.Millisecond}
	l := newTestLoader(t, f, LoaderConfig{FetchTimeout: time.Second})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ds, err := l.Load(context.Background(), AnalisisArea, nil)
			assert.NoError(t, err)
			assert.Equal(t, OriginBackend, ds.Origin)
		}()
	}
	wg.Wait()
	assert.Less(t, f.calls.Load(), int32(8))
}

func TestLoadCallerCancelled(t *testing.T) {
	f := &stubFetcher{records: []model.Record{{"a": 1}}, delay: time.Second}
	l := newTestLoader(t, f, LoaderConfig{FetchTimeout: 5 * time.Second})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := l.Load(ctx, AnalisisArea, nil)
	assert.Error(t, err)
}

func TestLoadSharedFetchOutlivesCancelledCaller(t *testing.T) {
	f := &stubFetcher{records: []model.Record{{"a": 1}}, delay: 100 * time.Millisecond}
	l := newTestLoader(t, f, LoaderConfig{FetchTimeout: time.Second})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	var cancelledErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, cancelledErr = l.Load(ctx, AnalisisArea, nil)
	}()
	require.Eventually(t, func() bool { return f.calls.Load() == 1 }, time.Second, time.Millisecond)

	var ds Dataset
	var err error
	wg.Add(1)
	go func() {
		defer wg.Done()
		ds, err = l.Load(context.Background(), AnalisisArea, nil)
	}()
	time.Sleep(10 * time.Millisecond)
	cancel()
	wg.Wait()

	assert.ErrorIs(t, cancelledErr, context.Canceled)
	require.NoError(t, err)
	assert.Equal(t, OriginBackend, ds.Origin)
	assert.Empty(t, ds.FallbackReason)
	assert.Equal(t, int32(1), f.calls.Load())
}

func TestLoadKeepsNullGroupingField(t *testing.T) {
	f := &stubFetcher{records: []model.Record{
		{"area": nil, "region": "Metropolitana", "pct_mujeres": 10.0},
		{"area": "Salud", "region": "Biobío", "pct_mujeres": 70.0},
	}}
	l := newTestLoader(t, f, LoaderConfig{FetchTimeout: time.Second})

	ds, err := l.Load(context.Background(), BrechasGenero, nil)
	require.NoError(t, err)
	require.Equal(t, OriginBackend, ds.Origin)

	res := viz.Group(ds.Records, model.AggregationConfig{GroupBy: []string{"area"}, Value: "pct_mujeres"})
	assert.True(t, res.IsReady(), "a null cell is not a missing column: %v", res.Err)
}
