package sources

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	geojson "github.com/paulmach/go.geojson"
	"github.com/sony/gobreaker"

	"github.com/i474232898/incident-map/internal/incident"
)

const usgsName = "USGS"

// USGSSource reads a USGS earthquake summary GeoJSON feed.
type USGSSource struct {
	url     string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewUSGSSource(cfg HTTPClientConfig, url string) *USGSSource {
	return &USGSSource{
		url:     url,
		httpCfg: cfg,
		circuit: newBreaker("usgs"),
	}
}

func (s *USGSSource) Name() string                { return usgsName }
func (s *USGSSource) Category() incident.Category { return incident.CategoryEarthquakes }

func (s *USGSSource) Fetch(ctx context.Context) ([]incident.Incident, error) {
	if s.url == "" {
		return nil, fmt.Errorf("usgs: %w", errNoBaseURL)
	}
	resp, err := doRequestWithResilience(ctx, s.httpCfg, s.circuit, func() (*http.Request, error) {
		return http.NewRequest(http.MethodGet, s.url, nil)
	})
	if err != nil {
		return nil, fmt.Errorf("usgs: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("usgs: read body: %w", err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(body)
	if err != nil {
		return nil, fmt.Errorf("usgs: decode feed: %w", err)
	}

	out := make([]incident.Incident, 0, len(fc.Features))
	for _, f := range fc.Features {
		rec, ok := earthquakeRecord(f)
		if !ok {
			continue
		}
		out = append(out, incident.MapEarthquake(rec))
	}
	return out, nil
}

// earthquakeRecord skips features without a point geometry. USGS positions
// are [lon, lat, depth]; a null magnitude is treated as 0.
func earthquakeRecord(f *geojson.Feature) (incident.EarthquakeRecord, bool) {
	if f == nil || f.Geometry == nil || !f.Geometry.IsPoint() || len(f.Geometry.Point) < 2 {
		return incident.EarthquakeRecord{}, false
	}

	id, _ := f.ID.(string)
	if id == "" {
		id = f.PropertyMustString("code", "")
	}
	mag := f.PropertyMustFloat64("mag", 0)

	var ts time.Time
	if ms, err := f.PropertyFloat64("time"); err == nil {
		ts = time.UnixMilli(int64(ms)).UTC()
	}

	return incident.EarthquakeRecord{
		ID:        id,
		Place:     f.PropertyMustString("place", "unknown location"),
		Magnitude: mag,
		Latitude:  f.Geometry.Point[1],
		Longitude: f.Geometry.Point[0],
		Time:      ts,
		Source:    usgsName,
	}, true
}
