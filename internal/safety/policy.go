package safety

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2/log"
	"github.com/twpayne/go-geos"

	"github.com/i474232898/incident-map/internal/geo"
	"github.com/i474232898/incident-map/internal/incident"
)

// Policy decides whether a location is vulnerable given the current
// incidents and zones. Implementations must be deterministic.
type Policy interface {
	Vulnerable(p geo.Point, set incident.IncidentSet, zones []incident.EmergencyZone) bool
}

// ZonePolicy flags points inside a zone of one of Types.
type ZonePolicy struct {
	Types []incident.ZoneType
}

// DefaultZonePolicy covers evacuation and fire zones.
func DefaultZonePolicy() ZonePolicy {
	return ZonePolicy{Types: []incident.ZoneType{
		incident.ZoneMandatoryEvacuation,
		incident.ZoneVoluntaryEvacuation,
		incident.ZoneFire,
	}}
}

func (z ZonePolicy) Vulnerable(p geo.Point, _ incident.IncidentSet, zones []incident.EmergencyZone) bool {
	for _, zone := range ContainingZones(p, zones) {
		for _, t := range z.Types {
			if zone.Type == t {
				return true
			}
		}
	}
	return false
}

// ProximityPolicy flags points within RadiusMiles of an incident whose weight
// is at least MinWeight. An empty Categories means every category.
type ProximityPolicy struct {
	RadiusMiles float64
	MinWeight   float64
	Categories  []incident.Category
}

func (pp ProximityPolicy) Vulnerable(p geo.Point, set incident.IncidentSet, _ []incident.EmergencyZone) bool {
	categories := pp.Categories
	if len(categories) == 0 {
		categories = incident.Categories
	}
	for _, c := range categories {
		for _, inc := range set[c] {
			if inc.Weight < pp.MinWeight {
				continue
			}
			if p.DistanceTo(geo.Point{Latitude: inc.Latitude, Longitude: inc.Longitude}) <= pp.RadiusMiles {
				return true
			}
		}
	}
	return false
}

// AnyPolicy is vulnerable when any member is.
type AnyPolicy []Policy

func (a AnyPolicy) Vulnerable(p geo.Point, set incident.IncidentSet, zones []incident.EmergencyZone) bool {
	for _, policy := range a {
		if policy.Vulnerable(p, set, zones) {
			return true
		}
	}
	return false
}

// ContainingZones returns the zones whose polygon strictly contains p.
// Zones that cannot form a polygon are skipped.
func ContainingZones(p geo.Point, zones []incident.EmergencyZone) []incident.EmergencyZone {
	point, err := geos.NewGeomFromWKT(fmt.Sprintf("POINT (%f %f)", p.Longitude, p.Latitude))
	if err != nil {
		log.Warnw("safety: bad point", "error", err)
		return nil
	}

	var out []incident.EmergencyZone
	for _, z := range zones {
		wkt, ok := polygonWKT(z)
		if !ok {
			continue
		}
		poly, err := geos.NewGeomFromWKT(wkt)
		if err != nil {
			log.Warnw("safety: zone polygon rejected", "zone", z.ID, "error", err)
			continue
		}
		if poly.Contains(point) {
			out = append(out, z)
		}
	}
	return out
}

func polygonWKT(z incident.EmergencyZone) (string, bool) {
	ring := z.Ring()
	if ring == nil {
		return "", false
	}
	coords := make([]string, len(ring))
	for i, pos := range ring {
		coords[i] = fmt.Sprintf("%f %f", pos[0], pos[1])
	}
	return "POLYGON ((" + strings.Join(coords, ", ") + "))", true
}
