package incident

import (
	"time"
)

// Category names one of the five fixed incident collections.
type Category string

const (
	CategoryFires         Category = "fires"
	CategoryEvacuations   Category = "evacuations"
	CategoryReliefCenters Category = "reliefCenters"
	CategoryFloods        Category = "floods"
	CategoryEarthquakes   Category = "earthquakes"
)

// Categories lists every known category in display order.
var Categories = []Category{
	CategoryFires,
	CategoryEvacuations,
	CategoryReliefCenters,
	CategoryFloods,
	CategoryEarthquakes,
}

// ParseCategory reports whether name is one of the known categories.
func ParseCategory(name string) (Category, bool) {
	for _, c := range Categories {
		if string(c) == name {
			return c, true
		}
	}
	return "", false
}

// Incident is the normalized map record every source is projected into.
// ID is unique within its category only.
type Incident struct {
	ID          string    `json:"id"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Weight      float64   `json:"weight"` // always within [0,1]
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp,omitzero"` // zero when the source did not report one
	Source      string    `json:"source"`
}

// IncidentSet maps each category to its incidents in source order.
// It is built fresh by every aggregation and not modified afterwards.
type IncidentSet map[Category][]Incident

// ZoneType is the closed set of emergency zone kinds.
type ZoneType string

const (
	ZoneMandatoryEvacuation ZoneType = "mandatory_evacuation"
	ZoneVoluntaryEvacuation ZoneType = "voluntary_evacuation"
	ZoneFire                ZoneType = "fire_zone"
	ZoneShelterInPlace      ZoneType = "shelter_in_place"
)

// Vertex is one corner of a zone polygon.
type Vertex struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// EmergencyZone is static reference data rendered alongside incidents.
// Coordinates form a simple polygon; the ring does not need to be closed.
type EmergencyZone struct {
	ID          string   `json:"id"`
	Type        ZoneType `json:"type"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Coordinates []Vertex `json:"coordinates"`
}
