package sources

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/sony/gobreaker"

	"github.com/i474232898/incident-map/internal/common"
	"github.com/i474232898/incident-map/internal/incident"
)

const noaaName = "NOAA"

// NOAAFloodSource reads an NWS active-alerts Atom feed carrying CAP
// extensions and keeps the flood alerts.
type NOAAFloodSource struct {
	url     string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewNOAAFloodSource(cfg HTTPClientConfig, url string) *NOAAFloodSource {
	return &NOAAFloodSource{
		url:     url,
		httpCfg: cfg,
		circuit: newBreaker("noaa"),
	}
}

func (s *NOAAFloodSource) Name() string                { return noaaName }
func (s *NOAAFloodSource) Category() incident.Category { return incident.CategoryFloods }

func (s *NOAAFloodSource) Fetch(ctx context.Context) ([]incident.Incident, error) {
	if s.url == "" {
		return nil, fmt.Errorf("noaa: %w", errNoBaseURL)
	}
	resp, err := doRequestWithResilience(ctx, s.httpCfg, s.circuit, func() (*http.Request, error) {
		req, err := http.NewRequest(http.MethodGet, s.url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/atom+xml")
		return req, nil
	})
	if err != nil {
		return nil, fmt.Errorf("noaa: %w", err)
	}
	defer resp.Body.Close()

	feed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("noaa: parse feed: %w", err)
	}

	out := make([]incident.Incident, 0, len(feed.Items))
	for _, item := range feed.Items {
		rec, ok := floodRecord(item)
		if !ok {
			continue
		}
		out = append(out, incident.MapFlood(rec))
	}
	return out, nil
}

// floodRecord keeps flood alerts that carry a CAP polygon; the incident is
// placed at the polygon's vertex centroid.
func floodRecord(item *gofeed.Item) (incident.FloodRecord, bool) {
	event := common.FirstNonEmpty(capValue(item, "event"), item.Title)
	if !common.ContainsAnyFold(event, "flood") {
		return incident.FloodRecord{}, false
	}
	lat, lon, ok := polygonCentroid(capValue(item, "polygon"))
	if !ok {
		return incident.FloodRecord{}, false
	}

	var issued time.Time
	switch {
	case item.PublishedParsed != nil:
		issued = item.PublishedParsed.UTC()
	case item.UpdatedParsed != nil:
		issued = item.UpdatedParsed.UTC()
	}

	return incident.FloodRecord{
		ID:        common.FirstNonEmpty(item.GUID, item.Link),
		Headline:  item.Title,
		Area:      capValue(item, "areaDesc"),
		Severity:  floodSeverity(capValue(item, "severity"), item.Title),
		Latitude:  lat,
		Longitude: lon,
		Issued:    issued,
		Source:    noaaName,
	}, true
}

// floodSeverity folds CAP severities onto the major/moderate/minor scale.
func floodSeverity(capSeverity, headline string) string {
	if common.ContainsAnyFold(capSeverity, "extreme", "severe") ||
		common.ContainsAnyFold(headline, "major flood") {
		return "major"
	}
	return strings.TrimSpace(capSeverity)
}

func capValue(item *gofeed.Item, name string) string {
	values := item.Extensions["cap"][name]
	if len(values) == 0 {
		return ""
	}
	return strings.TrimSpace(values[0].Value)
}

// polygonCentroid parses a CAP polygon ("lat,lon lat,lon ...").
func polygonCentroid(polygon string) (float64, float64, bool) {
	pairs := strings.Fields(polygon)
	if len(pairs) > 1 && pairs[0] == pairs[len(pairs)-1] {
		pairs = pairs[:len(pairs)-1]
	}
	if len(pairs) == 0 {
		return 0, 0, false
	}

	var sumLat, sumLon float64
	for _, p := range pairs {
		latStr, lonStr, found := strings.Cut(p, ",")
		if !found {
			return 0, 0, false
		}
		lat, err := strconv.ParseFloat(latStr, 64)
		if err != nil {
			return 0, 0, false
		}
		lon, err := strconv.ParseFloat(lonStr, 64)
		if err != nil {
			return 0, 0, false
		}
		sumLat += lat
		sumLon += lon
	}
	n := float64(len(pairs))
	return sumLat / n, sumLon / n, true
}
