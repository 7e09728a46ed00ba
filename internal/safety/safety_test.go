package safety

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/incident-map/internal/geo"
	"github.com/i474232898/incident-map/internal/incident"
)

var (
	insideEvacAndFire = geo.Point{Latitude: 34.125, Longitude: -118.30}
	insideShelter     = geo.Point{Latitude: 34.05, Longitude: -118.245}
	farAway           = geo.Point{Latitude: 36.0, Longitude: -120.0}
)

func zoneNames(zones []incident.EmergencyZone) []string {
	names := make([]string, 0, len(zones))
	for _, z := range zones {
		names = append(names, z.Name)
	}
	return names
}

func TestContainingZones(t *testing.T) {
	zones := incident.Zones()

	assert.Equal(t,
		[]string{"Griffith Park North", "Canyon Fire Perimeter"},
		zoneNames(ContainingZones(insideEvacAndFire, zones)))
	assert.Equal(t,
		[]string{"Downtown Air Quality Advisory"},
		zoneNames(ContainingZones(insideShelter, zones)))
	assert.Empty(t, ContainingZones(farAway, zones))
}

func TestContainingZones_SkipsDegenerateZones(t *testing.T) {
	zones := []incident.EmergencyZone{{
		ID:          "line",
		Coordinates: []incident.Vertex{{Latitude: 34, Longitude: -118}, {Latitude: 35, Longitude: -118}},
	}}
	assert.Empty(t, ContainingZones(geo.Point{Latitude: 34.5, Longitude: -118}, zones))
}

func TestZonePolicy(t *testing.T) {
	policy := DefaultZonePolicy()
	zones := incident.Zones()

	assert.True(t, policy.Vulnerable(insideEvacAndFire, nil, zones))
	assert.False(t, policy.Vulnerable(insideShelter, nil, zones), "shelter-in-place is not an evacuation")
	assert.False(t, policy.Vulnerable(farAway, nil, zones))

	shelterOnly := ZonePolicy{Types: []incident.ZoneType{incident.ZoneShelterInPlace}}
	assert.True(t, shelterOnly.Vulnerable(insideShelter, nil, zones))
}

func TestProximityPolicy(t *testing.T) {
	set := incident.NewIncidentSet(map[incident.Category][]incident.Incident{
		incident.CategoryFires: {
			{ID: "big", Latitude: 34.0522, Longitude: -118.2437, Weight: 0.8},
		},
		incident.CategoryReliefCenters: {
			{ID: "shelter", Latitude: 36.0, Longitude: -120.0, Weight: 0.3},
		},
	})
	near := geo.Point{Latitude: 34.0622, Longitude: -118.2537} // ~0.89 mi

	tests := []struct {
		name   string
		policy ProximityPolicy
		p      geo.Point
		want   bool
	}{
		{"within radius", ProximityPolicy{RadiusMiles: 1, MinWeight: 0.5}, near, true},
		{"outside radius", ProximityPolicy{RadiusMiles: 0.5, MinWeight: 0.5}, near, false},
		{"below weight", ProximityPolicy{RadiusMiles: 1, MinWeight: 0.9}, near, false},
		{"low-weight incident ignored", ProximityPolicy{RadiusMiles: 1, MinWeight: 0.5}, farAway, false},
		{"category filter", ProximityPolicy{RadiusMiles: 1, MinWeight: 0, Categories: []incident.Category{incident.CategoryFloods}}, near, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.policy.Vulnerable(tt.p, set, nil))
		})
	}
}

func TestAnyPolicy(t *testing.T) {
	zones := incident.Zones()
	policy := AnyPolicy{
		ProximityPolicy{RadiusMiles: 0.1, MinWeight: 1},
		DefaultZonePolicy(),
	}

	assert.True(t, policy.Vulnerable(insideEvacAndFire, nil, zones))
	assert.False(t, policy.Vulnerable(farAway, nil, zones))
	assert.False(t, AnyPolicy{}.Vulnerable(insideEvacAndFire, nil, zones))
}

type staticIncidents struct{ set incident.IncidentSet }

func (s staticIncidents) Aggregate(context.Context) incident.IncidentSet { return s.set }

type stubReverse struct {
	addr string
	err  error
}

func (s stubReverse) Reverse(context.Context, geo.Point) (string, error) { return s.addr, s.err }

func TestService_Status(t *testing.T) {
	now := time.Date(2025, time.January, 8, 12, 0, 0, 0, time.UTC)
	set := incident.NewIncidentSet(map[incident.Category][]incident.Incident{
		incident.CategoryFires: {{ID: "f1", Title: "Canyon Fire"}, {ID: "f2", Title: "Ridge Fire"}},
	})
	svc := NewService(
		staticIncidents{set: set},
		incident.Zones(),
		DefaultZonePolicy(),
		stubReverse{addr: "Griffith Observatory, Los Angeles"},
		clockwork.NewFakeClockAt(now),
	)

	status := svc.Status(context.Background(), insideEvacAndFire)

	assert.True(t, status.Vulnerable)
	assert.Equal(t, insideEvacAndFire.Latitude, status.Latitude)
	assert.Equal(t, "Griffith Observatory, Los Angeles", status.Address)
	assert.Equal(t, []string{"Griffith Park North", "Canyon Fire Perimeter"}, status.Zones)
	assert.Equal(t, []string{"Canyon Fire", "Ridge Fire"}, status.ActiveFires)
	assert.Equal(t, now, status.GeneratedAt)
}

func TestService_StatusDegradesWithoutAddress(t *testing.T) {
	svc := NewService(
		staticIncidents{set: incident.NewIncidentSet(nil)},
		incident.Zones(),
		DefaultZonePolicy(),
		stubReverse{err: errors.New("disabled")},
		nil,
	)

	status := svc.Status(context.Background(), farAway)

	assert.False(t, status.Vulnerable)
	assert.Empty(t, status.Address)
	require.NotNil(t, status.Zones)
	assert.Empty(t, status.Zones)
	assert.Empty(t, status.ActiveFires)
	assert.False(t, status.GeneratedAt.IsZero())
}
