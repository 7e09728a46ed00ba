package incident

import (
	"fmt"
	"strings"
	"time"
)

// FireRecord is a wildfire as reported by a fire agency feed.
type FireRecord struct {
	ID          string
	Name        string
	County      string
	Latitude    float64
	Longitude   float64
	Acres       *float64
	Containment *float64 // percent, 0-100
	Updated     time.Time
	Source      string
}

// EvacuationRecord is an evacuation order or warning.
type EvacuationRecord struct {
	ID          string
	Area        string
	Description string
	Latitude    float64
	Longitude   float64
	Mandatory   bool
	Issued      time.Time
	Source      string
}

// ReliefCenterRecord is an open relief or shelter facility.
type ReliefCenterRecord struct {
	ID        string
	Name      string
	Address   string
	Services  []string
	Latitude  float64
	Longitude float64
	Updated   time.Time
	Source    string
}

// FloodRecord is a flood warning with a free-text severity label.
type FloodRecord struct {
	ID        string
	Headline  string
	Area      string
	Severity  string
	Latitude  float64
	Longitude float64
	Issued    time.Time
	Source    string
}

// EarthquakeRecord is a single seismic event.
type EarthquakeRecord struct {
	ID        string
	Place     string
	Magnitude float64
	Latitude  float64
	Longitude float64
	Time      time.Time
	Source    string
}

// MapFire projects a fire record into an Incident.
func MapFire(r FireRecord) Incident {
	var desc []string
	if r.Acres != nil {
		desc = append(desc, fmt.Sprintf("%s acres", formatNumber(*r.Acres)))
	}
	if r.Containment != nil {
		desc = append(desc, fmt.Sprintf("%s%% contained", formatNumber(*r.Containment)))
	}
	if r.County != "" {
		desc = append(desc, r.County+" County")
	}

	return Incident{
		ID:          r.ID,
		Latitude:    r.Latitude,
		Longitude:   r.Longitude,
		Weight:      FireWeight(r.Acres, r.Containment),
		Title:       r.Name,
		Description: strings.Join(desc, ", "),
		Timestamp:   r.Updated,
		Source:      r.Source,
	}
}

// MapEvacuation projects an evacuation record into an Incident.
func MapEvacuation(r EvacuationRecord) Incident {
	title := "Evacuation Warning: " + r.Area
	if r.Mandatory {
		title = "Evacuation Order: " + r.Area
	}
	return Incident{
		ID:          r.ID,
		Latitude:    r.Latitude,
		Longitude:   r.Longitude,
		Weight:      EvacuationWeight(r.Mandatory),
		Title:       title,
		Description: r.Description,
		Timestamp:   r.Issued,
		Source:      r.Source,
	}
}

// MapReliefCenter projects a relief center into an Incident.
func MapReliefCenter(r ReliefCenterRecord) Incident {
	desc := r.Address
	if len(r.Services) > 0 {
		if desc != "" {
			desc += ". "
		}
		desc += "Services: " + strings.Join(r.Services, ", ")
	}
	return Incident{
		ID:          r.ID,
		Latitude:    r.Latitude,
		Longitude:   r.Longitude,
		Weight:      ReliefCenterWeight(),
		Title:       r.Name,
		Description: desc,
		Timestamp:   r.Updated,
		Source:      r.Source,
	}
}

// MapFlood projects a flood warning into an Incident.
func MapFlood(r FloodRecord) Incident {
	title := r.Headline
	if title == "" {
		title = "Flood Warning: " + r.Area
	}
	desc := r.Area
	if r.Severity != "" {
		desc = fmt.Sprintf("%s (%s)", r.Area, strings.ToLower(r.Severity))
	}
	return Incident{
		ID:          r.ID,
		Latitude:    r.Latitude,
		Longitude:   r.Longitude,
		Weight:      FloodWeight(r.Severity),
		Title:       title,
		Description: desc,
		Timestamp:   r.Issued,
		Source:      r.Source,
	}
}

// MapEarthquake projects a seismic event into an Incident.
func MapEarthquake(r EarthquakeRecord) Incident {
	return Incident{
		ID:          r.ID,
		Latitude:    r.Latitude,
		Longitude:   r.Longitude,
		Weight:      EarthquakeWeight(r.Magnitude),
		Title:       fmt.Sprintf("M %.1f - %s", r.Magnitude, r.Place),
		Description: fmt.Sprintf("Magnitude %.1f earthquake %s", r.Magnitude, r.Place),
		Timestamp:   r.Time,
		Source:      r.Source,
	}
}

func formatNumber(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.1f", v)
}
