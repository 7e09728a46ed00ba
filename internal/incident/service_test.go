package incident

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/incident-map/internal/observability"
)

// --- stub sources ---

type stubSource struct {
	category Category
	items    []Incident
	err      error
	calls    int
	mu       sync.Mutex
}

func (s *stubSource) Name() string       { return "stub-" + string(s.category) }
func (s *stubSource) Category() Category { return s.category }

func (s *stubSource) Fetch(_ context.Context) ([]Incident, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	return s.items, s.err
}

func liveSources() map[Category]*stubSource {
	srcs := make(map[Category]*stubSource, len(Categories))
	for _, c := range Categories {
		srcs[c] = &stubSource{
			category: c,
			items: []Incident{{
				ID:        "live-" + string(c),
				Weight:    0.42,
				Title:     "live " + string(c),
				Timestamp: time.Date(2025, time.March, 1, 10, 0, 0, 0, time.UTC),
				Source:    "live",
			}},
		}
	}
	return srcs
}

func asSources(m map[Category]*stubSource) []Source {
	out := make([]Source, 0, len(m))
	for _, c := range Categories {
		if s, ok := m[c]; ok {
			out = append(out, s)
		}
	}
	return out
}

func freezeClock(t *testing.T) {
	t.Helper()
	SetClock(clockwork.NewFakeClockAt(time.Date(2025, time.January, 7, 18, 0, 0, 0, time.UTC)))
	t.Cleanup(func() { SetClock(nil) })
}

// --- tests ---

func TestService_Aggregate_AllLive(t *testing.T) {
	freezeClock(t)
	srcs := liveSources()
	svc := NewService(asSources(srcs), FallbackAll, observability.NewMetricsForTesting())

	set := svc.Aggregate(context.Background())

	require.Len(t, set, len(Categories))
	for _, c := range Categories {
		require.Len(t, set[c], 1)
		assert.Equal(t, "live-"+string(c), set[c][0].ID)
		assert.Equal(t, 1, srcs[c].calls)
	}
}

func TestService_Aggregate_AnyFailureReturnsCompleteFixtureSet(t *testing.T) {
	freezeClock(t)
	srcs := liveSources()
	srcs[CategoryFloods].err = errors.New("noaa unreachable")
	metrics := observability.NewMetricsForTesting()
	svc := NewService(asSources(srcs), FallbackAll, metrics)

	set := svc.Aggregate(context.Background())

	assert.Equal(t, Fixtures(), set)
	// the categories that succeeded are discarded as well
	assert.Equal(t, MockSource, set[CategoryFires][0].Source)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Fallbacks.WithLabelValues("aggregate")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.SourceFetches.WithLabelValues("floods", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.SourceFetches.WithLabelValues("fires", "success")))
}

func TestService_Aggregate_PerCategoryPolicyKeepsSuccesses(t *testing.T) {
	freezeClock(t)
	srcs := liveSources()
	srcs[CategoryEarthquakes].err = errors.New("usgs timeout")
	metrics := observability.NewMetricsForTesting()
	svc := NewService(asSources(srcs), FallbackCategory, metrics)

	set := svc.Aggregate(context.Background())

	assert.Equal(t, "live-fires", set[CategoryFires][0].ID)
	assert.Equal(t, FixtureCategory(CategoryEarthquakes), set[CategoryEarthquakes])
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Fallbacks.WithLabelValues("category")))
}

func TestService_Aggregate_MissingSourceCountsAsFailure(t *testing.T) {
	freezeClock(t)
	srcs := liveSources()
	delete(srcs, CategoryReliefCenters)
	svc := NewService(asSources(srcs), FallbackAll, observability.NewMetricsForTesting())

	assert.Equal(t, Fixtures(), svc.Aggregate(context.Background()))
}

func TestService_Aggregate_FixtureSourcesMatchFixtures(t *testing.T) {
	freezeClock(t)
	svc := NewService(FixtureSources(), FallbackAll, observability.NewMetricsForTesting())
	assert.Equal(t, Fixtures(), svc.Aggregate(context.Background()))
}

func TestService_Aggregate_NilItemsBecomeEmpty(t *testing.T) {
	freezeClock(t)
	srcs := liveSources()
	srcs[CategoryFires].items = nil
	svc := NewService(asSources(srcs), FallbackAll, observability.NewMetricsForTesting())

	set := svc.Aggregate(context.Background())
	assert.NotNil(t, set[CategoryFires])
	assert.Empty(t, set[CategoryFires])
}

func TestService_Fetch_FailureReturnsCategoryFixtures(t *testing.T) {
	freezeClock(t)
	srcs := liveSources()
	srcs[CategoryFires].err = errors.New("cal fire 503")
	svc := NewService(asSources(srcs), FallbackAll, observability.NewMetricsForTesting())

	assert.Equal(t, FixtureCategory(CategoryFires), svc.Fetch(context.Background(), CategoryFires))
	assert.Equal(t, "live-floods", svc.Fetch(context.Background(), CategoryFloods)[0].ID)
}

func TestService_All_FlattensMostRecentFirst(t *testing.T) {
	freezeClock(t)
	svc := NewService(FixtureSources(), FallbackAll, observability.NewMetricsForTesting())

	all := svc.All(context.Background())
	require.Len(t, all, Fixtures().Len())
	for i := 1; i < len(all); i++ {
		assert.False(t, all[i].Timestamp.After(all[i-1].Timestamp))
	}
	assert.Equal(t, "eq-1", all[0].ID)
}

// barrierSource blocks until every category has started fetching, proving the
// fan-out issues all requests before any completes.
type barrierSource struct {
	category Category
	started  *sync.WaitGroup
	release  chan struct{}
}

func (b *barrierSource) Name() string       { return "barrier" }
func (b *barrierSource) Category() Category { return b.category }

func (b *barrierSource) Fetch(ctx context.Context) ([]Incident, error) {
	b.started.Done()
	select {
	case <-b.release:
		return []Incident{{ID: string(b.category)}}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func TestService_Aggregate_FetchesConcurrently(t *testing.T) {
	var started sync.WaitGroup
	started.Add(len(Categories))
	release := make(chan struct{})

	srcs := make([]Source, 0, len(Categories))
	for _, c := range Categories {
		srcs = append(srcs, &barrierSource{category: c, started: &started, release: release})
	}
	svc := NewService(srcs, FallbackAll, observability.NewMetricsForTesting())

	go func() {
		started.Wait()
		close(release)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	set := svc.Aggregate(ctx)
	for _, c := range Categories {
		require.Len(t, set[c], 1)
		assert.Equal(t, string(c), set[c][0].ID)
	}
}

func TestFixtures_FireWeightFigure(t *testing.T) {
	freezeClock(t)
	fires := FixtureCategory(CategoryFires)
	require.NotEmpty(t, fires)
	assert.Equal(t, "fire-1", fires[0].ID)
	assert.InDelta(t, 0.385, fires[0].Weight, 1e-9)

	for _, c := range Categories {
		for _, inc := range FixtureCategory(c) {
			assert.GreaterOrEqual(t, inc.Weight, 0.0)
			assert.LessOrEqual(t, inc.Weight, 1.0)
			assert.Equal(t, MockSource, inc.Source)
			assert.False(t, inc.Timestamp.IsZero())
		}
	}
}

func TestParseFallbackPolicy(t *testing.T) {
	p, err := ParseFallbackPolicy("category")
	require.NoError(t, err)
	assert.Equal(t, FallbackCategory, p)

	_, err = ParseFallbackPolicy("partial")
	assert.Error(t, err)
}
