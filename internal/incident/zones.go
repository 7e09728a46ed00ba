package incident

// Zones returns the static emergency zones shown on the map.
func Zones() []EmergencyZone {
	return []EmergencyZone{
		{
			ID:          "zone-1",
			Type:        ZoneMandatoryEvacuation,
			Name:        "Griffith Park North",
			Description: "Mandatory evacuation order in effect.",
			Coordinates: []Vertex{
				{Latitude: 34.1500, Longitude: -118.3200},
				{Latitude: 34.1500, Longitude: -118.2700},
				{Latitude: 34.1200, Longitude: -118.2700},
				{Latitude: 34.1200, Longitude: -118.3200},
			},
		},
		{
			ID:          "zone-2",
			Type:        ZoneVoluntaryEvacuation,
			Name:        "Silver Lake Hills",
			Description: "Evacuation warning. Be ready to leave.",
			Coordinates: []Vertex{
				{Latitude: 34.1100, Longitude: -118.2850},
				{Latitude: 34.1100, Longitude: -118.2550},
				{Latitude: 34.0850, Longitude: -118.2550},
				{Latitude: 34.0850, Longitude: -118.2850},
			},
		},
		{
			ID:          "zone-3",
			Type:        ZoneFire,
			Name:        "Canyon Fire Perimeter",
			Description: "Active fire perimeter.",
			Coordinates: []Vertex{
				{Latitude: 34.1300, Longitude: -118.3150},
				{Latitude: 34.1300, Longitude: -118.2850},
				{Latitude: 34.1050, Longitude: -118.2850},
				{Latitude: 34.1050, Longitude: -118.3150},
			},
		},
		{
			ID:          "zone-4",
			Type:        ZoneShelterInPlace,
			Name:        "Downtown Air Quality Advisory",
			Description: "Stay indoors with windows closed.",
			Coordinates: []Vertex{
				{Latitude: 34.0600, Longitude: -118.2600},
				{Latitude: 34.0600, Longitude: -118.2300},
				{Latitude: 34.0400, Longitude: -118.2300},
				{Latitude: 34.0400, Longitude: -118.2600},
			},
		},
	}
}

// Ring returns the zone outline as closed [lon, lat] positions, the order
// GeoJSON and WKT expect. Zones with fewer than three vertices yield nil.
func (z EmergencyZone) Ring() [][]float64 {
	vertices := z.Coordinates
	if n := len(vertices); n > 0 && vertices[0] == vertices[n-1] {
		vertices = vertices[:n-1]
	}
	if len(vertices) < 3 {
		return nil
	}
	ring := make([][]float64, 0, len(vertices)+1)
	for _, v := range vertices {
		ring = append(ring, []float64{v.Longitude, v.Latitude})
	}
	return append(ring, []float64{vertices[0].Longitude, vertices[0].Latitude})
}
