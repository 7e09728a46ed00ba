package directory

import (
	"context"
	"math"
	"sort"

	"github.com/gofiber/fiber/v2/log"

	"github.com/i474232898/incident-map/internal/geo"
	"github.com/i474232898/incident-map/internal/observability"
)

// ResourceSource lists directory resources.
type ResourceSource interface {
	Resources(ctx context.Context) ([]Resource, error)
}

// CampaignSource lists fundraising campaigns.
type CampaignSource interface {
	Campaigns(ctx context.Context) ([]Campaign, error)
}

// Service builds the resource directory and campaign list. Read paths never
// fail: any source error is logged and the fixture list served instead.
type Service struct {
	resources ResourceSource
	campaigns CampaignSource
	metrics   *observability.Metrics
}

func NewService(resources ResourceSource, campaigns CampaignSource, metrics *observability.Metrics) *Service {
	return &Service{
		resources: resources,
		campaigns: campaigns,
		metrics:   metrics,
	}
}

// GetResources returns the directory. With a location every resource gets a
// distance in miles and the list is stable-sorted nearest first; without one
// the source order is kept and distance stays unset.
func (s *Service) GetResources(ctx context.Context, loc *geo.Point) []Resource {
	var list []Resource
	if s.resources != nil {
		fetched, err := s.resources.Resources(ctx)
		if err != nil {
			log.Warnw("resource source failed; serving fixtures", "error", err)
			s.metrics.Fallbacks.WithLabelValues("resources").Inc()
		} else {
			list = make([]Resource, len(fetched))
			copy(list, fetched)
		}
	}
	if list == nil {
		list = FixtureResources()
	}

	now := clock.Now()
	for i := range list {
		if len(list[i].Hours) > 0 {
			list[i].OpenNow = list[i].OpenAt(now)
		}
	}

	if loc == nil {
		return list
	}

	for i := range list {
		d := loc.DistanceTo(geo.Point{Latitude: list[i].Latitude, Longitude: list[i].Longitude})
		list[i].Distance = &d
	}
	sort.SliceStable(list, func(i, j int) bool {
		return distanceLess(*list[i].Distance, *list[j].Distance)
	})
	return list
}

// GetCampaigns returns campaigns unchanged, or the fixtures on error.
func (s *Service) GetCampaigns(ctx context.Context) []Campaign {
	if s.campaigns == nil {
		return FixtureCampaigns()
	}
	list, err := s.campaigns.Campaigns(ctx)
	if err != nil {
		log.Warnw("campaign source failed; serving fixtures", "error", err)
		s.metrics.Fallbacks.WithLabelValues("campaigns").Inc()
		return FixtureCampaigns()
	}
	if list == nil {
		list = []Campaign{}
	}
	return list
}

// distanceLess orders NaN distances after every real one.
func distanceLess(a, b float64) bool {
	if math.IsNaN(a) {
		return false
	}
	if math.IsNaN(b) {
		return true
	}
	return a < b
}
