package incident

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/i474232898/incident-map/internal/observability"
)

// FallbackPolicy decides what a full aggregation returns when a source fails.
type FallbackPolicy string

const (
	// FallbackAll replaces the whole result with fixtures when any source fails.
	FallbackAll FallbackPolicy = "all"
	// FallbackCategory replaces only the failing categories with their fixtures.
	FallbackCategory FallbackPolicy = "category"
)

// ParseFallbackPolicy accepts "all" or "category".
func ParseFallbackPolicy(s string) (FallbackPolicy, error) {
	switch FallbackPolicy(s) {
	case FallbackAll, FallbackCategory:
		return FallbackPolicy(s), nil
	default:
		return "", fmt.Errorf("unknown fallback policy %q", s)
	}
}

var errNoSource = errors.New("no source configured for category")

// Service fans out to one source per category and assembles IncidentSets.
// It keeps no state between calls; every call re-fetches.
type Service struct {
	sources map[Category]Source
	policy  FallbackPolicy
	metrics *observability.Metrics
}

// NewService creates a new Service. A later source for the same category replaces an earlier one.
func NewService(sources []Source, policy FallbackPolicy, metrics *observability.Metrics) *Service {
	byCategory := make(map[Category]Source, len(sources))
	for _, src := range sources {
		if prev, ok := byCategory[src.Category()]; ok {
			log.Warnf("incident: source %s replaces %s for %s", src.Name(), prev.Name(), src.Category())
		}
		byCategory[src.Category()] = src
	}
	if policy == "" {
		policy = FallbackAll
	}
	return &Service{
		sources: byCategory,
		policy:  policy,
		metrics: metrics,
	}
}

// Fetch returns one category's incidents, substituting that category's
// fixtures when its source fails. It never returns an error.
func (s *Service) Fetch(ctx context.Context, c Category) []Incident {
	items, err := s.fetch(ctx, c)
	if err != nil {
		log.Warnw("incident source failed; serving fixtures for category", "category", c, "error", err)
		s.metrics.Fallbacks.WithLabelValues("category").Inc()
		return FixtureCategory(c)
	}
	return items
}

// Aggregate fetches every category concurrently and waits for all of them.
// Under FallbackAll any single failure discards the live results and returns
// the complete fixture set.
func (s *Service) Aggregate(ctx context.Context) IncidentSet {
	start := time.Now()
	defer func() {
		s.metrics.AggregateDuration.Observe(time.Since(start).Seconds())
	}()

	type result struct {
		items []Incident
		err   error
	}

	// One slot per category; goroutines never share a slot.
	results := make([]result, len(Categories))

	var wg sync.WaitGroup
	for i, c := range Categories {
		wg.Add(1)
		go func(i int, c Category) {
			defer wg.Done()
			items, err := s.fetch(ctx, c)
			results[i] = result{items: items, err: err}
		}(i, c)
	}
	wg.Wait()

	byCategory := make(map[Category][]Incident, len(Categories))
	var failed []Category
	for i, c := range Categories {
		if results[i].err != nil {
			log.Warnw("incident source failed", "category", c, "error", results[i].err)
			failed = append(failed, c)
			byCategory[c] = FixtureCategory(c)
			continue
		}
		byCategory[c] = results[i].items
	}

	if len(failed) == 0 {
		return NewIncidentSet(byCategory)
	}

	if s.policy == FallbackCategory {
		log.Infof("incident: serving fixtures for %d failed categories %v", len(failed), failed)
		s.metrics.Fallbacks.WithLabelValues("category").Add(float64(len(failed)))
		return NewIncidentSet(byCategory)
	}

	log.Infof("incident: %d of %d sources failed; serving complete fixture set", len(failed), len(Categories))
	s.metrics.Fallbacks.WithLabelValues("aggregate").Inc()
	return Fixtures()
}

// All aggregates and flattens the result, most recent first.
func (s *Service) All(ctx context.Context) []Incident {
	return s.Aggregate(ctx).All()
}

func (s *Service) fetch(ctx context.Context, c Category) ([]Incident, error) {
	src, ok := s.sources[c]
	if !ok {
		s.metrics.SourceFetches.WithLabelValues(string(c), "missing").Inc()
		return nil, fmt.Errorf("%w: %s", errNoSource, c)
	}

	items, err := src.Fetch(ctx)
	if err != nil {
		s.metrics.SourceFetches.WithLabelValues(string(c), "error").Inc()
		return nil, fmt.Errorf("%s: %w", src.Name(), err)
	}
	s.metrics.SourceFetches.WithLabelValues(string(c), "success").Inc()

	if items == nil {
		items = []Incident{}
	}
	return items, nil
}
