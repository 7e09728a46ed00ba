package directory

import "context"

// FixtureSource serves the fixed directory lists. It backs mock-data mode.
type FixtureSource struct{}

func (FixtureSource) Resources(context.Context) ([]Resource, error) {
	return FixtureResources(), nil
}

func (FixtureSource) Campaigns(context.Context) ([]Campaign, error) {
	return FixtureCampaigns(), nil
}
