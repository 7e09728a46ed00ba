package sources

import (
	"context"
	"fmt"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/incident-map/internal/incident"
)

const calFireName = "Cal Fire"

// CalFireSource reads the Cal Fire incident list.
type CalFireSource struct {
	url     string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewCalFireSource(cfg HTTPClientConfig, url string) *CalFireSource {
	return &CalFireSource{
		url:     url,
		httpCfg: cfg,
		circuit: newBreaker("calfire"),
	}
}

func (s *CalFireSource) Name() string                { return calFireName }
func (s *CalFireSource) Category() incident.Category { return incident.CategoryFires }

type calFireIncident struct {
	UniqueID         string   `json:"UniqueId"`
	Name             string   `json:"Name"`
	County           string   `json:"County"`
	Latitude         float64  `json:"Latitude"`
	Longitude        float64  `json:"Longitude"`
	AcresBurned      *float64 `json:"AcresBurned"`
	PercentContained *float64 `json:"PercentContained"`
	Updated          string   `json:"Updated"`
	IsActive         *bool    `json:"IsActive"`
}

func (s *CalFireSource) Fetch(ctx context.Context) ([]incident.Incident, error) {
	var payload []calFireIncident
	if err := getJSON(ctx, s.httpCfg, s.circuit, s.url, &payload); err != nil {
		return nil, fmt.Errorf("calfire: %w", err)
	}

	out := make([]incident.Incident, 0, len(payload))
	for _, p := range payload {
		if p.IsActive != nil && !*p.IsActive {
			continue
		}
		out = append(out, incident.MapFire(incident.FireRecord{
			ID:          p.UniqueID,
			Name:        p.Name,
			County:      p.County,
			Latitude:    p.Latitude,
			Longitude:   p.Longitude,
			Acres:       p.AcresBurned,
			Containment: p.PercentContained,
			Updated:     parseTime(p.Updated),
			Source:      calFireName,
		}))
	}
	return out, nil
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// parseTime returns the zero time for empty or unrecognised values.
func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
