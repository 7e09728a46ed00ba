package incident

import (
	"context"
)

// Source abstracts one upstream feed for a single category (e.g. Cal Fire, USGS, NOAA).
type Source interface {
	Name() string
	Category() Category
	Fetch(ctx context.Context) ([]Incident, error)
}

// FixtureSource serves the fixed mock dataset for one category.
// It is wired in place of live sources when mock data is enabled.
type FixtureSource struct {
	category Category
}

func NewFixtureSource(category Category) *FixtureSource {
	return &FixtureSource{category: category}
}

// FixtureSources returns one fixture source per known category.
func FixtureSources() []Source {
	srcs := make([]Source, 0, len(Categories))
	for _, c := range Categories {
		srcs = append(srcs, NewFixtureSource(c))
	}
	return srcs
}

func (f *FixtureSource) Name() string {
	return "fixtures"
}

func (f *FixtureSource) Category() Category {
	return f.category
}

func (f *FixtureSource) Fetch(_ context.Context) ([]Incident, error) {
	return FixtureCategory(f.category), nil
}
