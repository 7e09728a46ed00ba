package incident

import (
	"time"

	geojson "github.com/paulmach/go.geojson"
)

// FeatureCollection renders every incident as a GeoJSON point feature.
// Feature IDs are "<category>:<id>" because incident IDs repeat across categories.
func (s IncidentSet) FeatureCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, c := range Categories {
		for _, inc := range s[c] {
			f := geojson.NewPointFeature([]float64{inc.Longitude, inc.Latitude})
			f.ID = string(c) + ":" + inc.ID
			f.SetProperty("id", inc.ID)
			f.SetProperty("category", string(c))
			f.SetProperty("weight", inc.Weight)
			f.SetProperty("title", inc.Title)
			f.SetProperty("description", inc.Description)
			f.SetProperty("source", inc.Source)
			if !inc.Timestamp.IsZero() {
				f.SetProperty("timestamp", inc.Timestamp.UTC().Format(time.RFC3339))
			}
			fc.AddFeature(f)
		}
	}
	return fc
}

// ZonesFeatureCollection renders zones as GeoJSON polygons, skipping
// zones with too few vertices to form a ring.
func ZonesFeatureCollection(zones []EmergencyZone) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, z := range zones {
		ring := z.Ring()
		if ring == nil {
			continue
		}
		f := geojson.NewPolygonFeature([][][]float64{ring})
		f.ID = z.ID
		f.SetProperty("type", string(z.Type))
		f.SetProperty("name", z.Name)
		f.SetProperty("description", z.Description)
		fc.AddFeature(f)
	}
	return fc
}
