package geo

import "math"

// EarthRadiusMiles is the mean Earth radius used for great-circle distances.
const EarthRadiusMiles = 3958.8

// Point is a WGS84 coordinate in decimal degrees.
type Point struct {
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
}

// DistanceTo returns the great-circle distance to other in miles.
func (p Point) DistanceTo(other Point) float64 {
	return DistanceMiles(p.Latitude, p.Longitude, other.Latitude, other.Longitude)
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// DistanceMiles computes the haversine distance between two coordinates in miles.
// Coordinate ranges are not validated; NaN inputs yield NaN.
func DistanceMiles(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := degToRad(lat1)
	lat2Rad := degToRad(lat2)

	dlat := degToRad(lat2 - lat1)
	dlon := degToRad(lon2 - lon1)

	a := math.Sin(dlat/2)*math.Sin(dlat/2) + math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(dlon/2)*math.Sin(dlon/2)
	// Rounding can push a past 1 for antipodal points.
	a = math.Min(1, math.Max(0, a))
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMiles * c
}
