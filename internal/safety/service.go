package safety

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/jonboulle/clockwork"

	"github.com/i474232898/incident-map/internal/geo"
	"github.com/i474232898/incident-map/internal/incident"
)

// Incidents is the read side of the incident aggregator.
type Incidents interface {
	Aggregate(ctx context.Context) incident.IncidentSet
}

// ReverseGeocoder turns a point into a street address.
type ReverseGeocoder interface {
	Reverse(ctx context.Context, p geo.Point) (string, error)
}

// Status is the shareable safety postcard for one location.
type Status struct {
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Address     string    `json:"address,omitempty"`
	Vulnerable  bool      `json:"vulnerable"`
	Zones       []string  `json:"zones"`
	ActiveFires []string  `json:"activeFires"`
	GeneratedAt time.Time `json:"generatedAt"`
}

type Service struct {
	incidents Incidents
	zones     []incident.EmergencyZone
	policy    Policy
	geocoder  ReverseGeocoder
	clock     clockwork.Clock
}

// NewService creates a new Service. geocoder may be nil; a nil clock uses
// real time.
func NewService(incidents Incidents, zones []incident.EmergencyZone, policy Policy, geocoder ReverseGeocoder, clock clockwork.Clock) *Service {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Service{
		incidents: incidents,
		zones:     zones,
		policy:    policy,
		geocoder:  geocoder,
		clock:     clock,
	}
}

// Status builds the postcard for p. Address lookup is best effort.
func (s *Service) Status(ctx context.Context, p geo.Point) Status {
	set := s.incidents.Aggregate(ctx)

	zoneNames := []string{}
	for _, z := range ContainingZones(p, s.zones) {
		zoneNames = append(zoneNames, z.Name)
	}

	fires := []string{}
	for _, f := range set[incident.CategoryFires] {
		fires = append(fires, f.Title)
	}

	status := Status{
		Latitude:    p.Latitude,
		Longitude:   p.Longitude,
		Vulnerable:  s.policy != nil && s.policy.Vulnerable(p, set, s.zones),
		Zones:       zoneNames,
		ActiveFires: fires,
		GeneratedAt: s.clock.Now().UTC(),
	}

	if s.geocoder != nil {
		addr, err := s.geocoder.Reverse(ctx, p)
		if err != nil {
			log.Debugw("safety: no address for postcard", "error", err)
		} else {
			status.Address = addr
		}
	}
	return status
}
