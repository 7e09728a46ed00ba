package incident

import "time"

// MockSource labels every fixture incident.
const MockSource = "Mock Data"

func ptr(v float64) *float64 { return &v }

// Fixtures returns the complete mock dataset used whenever live data is
// unavailable or disabled. Timestamps are relative to the package clock.
func Fixtures() IncidentSet {
	byCategory := make(map[Category][]Incident, len(Categories))
	for _, c := range Categories {
		byCategory[c] = FixtureCategory(c)
	}
	return NewIncidentSet(byCategory)
}

// FixtureCategory returns the mock slice for a single category.
// Unknown categories yield an empty slice.
func FixtureCategory(c Category) []Incident {
	now := clock.Now().UTC()
	ago := func(d time.Duration) time.Time { return now.Add(-d) }

	switch c {
	case CategoryFires:
		return []Incident{
			MapFire(FireRecord{
				ID:          "fire-1",
				Name:        "Canyon Fire",
				County:      "Los Angeles",
				Latitude:    34.1184,
				Longitude:   -118.3004,
				Acres:       ptr(2500),
				Containment: ptr(30),
				Updated:     ago(2 * time.Hour),
				Source:      MockSource,
			}),
			MapFire(FireRecord{
				ID:          "fire-2",
				Name:        "Ridge Fire",
				County:      "Ventura",
				Latitude:    34.2805,
				Longitude:   -118.7798,
				Acres:       ptr(12000),
				Containment: ptr(10),
				Updated:     ago(5 * time.Hour),
				Source:      MockSource,
			}),
			MapFire(FireRecord{
				ID:          "fire-3",
				Name:        "Hillside Brush Fire",
				County:      "Los Angeles",
				Latitude:    34.0736,
				Longitude:   -118.4004,
				Acres:       ptr(150),
				Containment: ptr(90),
				Updated:     ago(26 * time.Hour),
				Source:      MockSource,
			}),
		}
	case CategoryEvacuations:
		return []Incident{
			MapEvacuation(EvacuationRecord{
				ID:          "evac-1",
				Area:        "Griffith Park North",
				Description: "Leave now via Los Feliz Blvd. Shelter at Pasadena Convention Center.",
				Latitude:    34.1365,
				Longitude:   -118.2942,
				Mandatory:   true,
				Issued:      ago(90 * time.Minute),
				Source:      MockSource,
			}),
			MapEvacuation(EvacuationRecord{
				ID:          "evac-2",
				Area:        "Silver Lake Hills",
				Description: "Prepare to leave. Pets and medications ready.",
				Latitude:    34.0969,
				Longitude:   -118.2705,
				Mandatory:   false,
				Issued:      ago(3 * time.Hour),
				Source:      MockSource,
			}),
		}
	case CategoryReliefCenters:
		return []Incident{
			MapReliefCenter(ReliefCenterRecord{
				ID:        "relief-1",
				Name:      "Pasadena Convention Center",
				Address:   "300 E Green St, Pasadena, CA",
				Services:  []string{"shelter", "food", "medical"},
				Latitude:  34.1443,
				Longitude: -118.1445,
				Updated:   ago(4 * time.Hour),
				Source:    MockSource,
			}),
			MapReliefCenter(ReliefCenterRecord{
				ID:        "relief-2",
				Name:      "Westwood Recreation Center",
				Address:   "1350 S Sepulveda Blvd, Los Angeles, CA",
				Services:  []string{"shelter", "pets"},
				Latitude:  34.0543,
				Longitude: -118.4452,
				Updated:   ago(6 * time.Hour),
				Source:    MockSource,
			}),
		}
	case CategoryFloods:
		return []Incident{
			MapFlood(FloodRecord{
				ID:        "flood-1",
				Headline:  "Flood Warning for Los Angeles River",
				Area:      "Los Angeles River near Glendale Narrows",
				Severity:  "major",
				Latitude:  34.1006,
				Longitude: -118.2595,
				Issued:    ago(45 * time.Minute),
				Source:    MockSource,
			}),
			MapFlood(FloodRecord{
				ID:        "flood-2",
				Headline:  "Urban Flood Advisory",
				Area:      "Long Beach",
				Severity:  "minor",
				Latitude:  33.7701,
				Longitude: -118.1937,
				Issued:    ago(8 * time.Hour),
				Source:    MockSource,
			}),
		}
	case CategoryEarthquakes:
		return []Incident{
			MapEarthquake(EarthquakeRecord{
				ID:        "eq-1",
				Place:     "5 km NE of Malibu, CA",
				Magnitude: 4.2,
				Latitude:  34.0614,
				Longitude: -118.7506,
				Time:      ago(30 * time.Minute),
				Source:    MockSource,
			}),
			MapEarthquake(EarthquakeRecord{
				ID:        "eq-2",
				Place:     "12 km S of Ridgecrest, CA",
				Magnitude: 2.8,
				Latitude:  35.5148,
				Longitude: -117.6584,
				Time:      ago(12 * time.Hour),
				Source:    MockSource,
			}),
		}
	default:
		return []Incident{}
	}
}
