package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sony/gobreaker"

	"github.com/i474232898/incident-map/internal/directory"
	"github.com/i474232898/incident-map/internal/incident"
	"github.com/i474232898/incident-map/internal/submission"
)

const backendName = "App Backend"

var errNoSubmissionID = errors.New("backend returned no submission id")

// Backend is the app's own JSON API. It serves the categories that have no
// public feed plus the resource directory, and files submissions.
type Backend struct {
	baseURL  string
	httpCfg  HTTPClientConfig
	breakers map[string]*gobreaker.CircuitBreaker
}

const (
	pathEvacuations   = "/evacuations"
	pathReliefCenters = "/relief-centers"
	pathResources     = "/resources"
	pathCampaigns     = "/campaigns"
	pathSubmissions   = "/submissions"
)

// NewBackend gives every endpoint its own circuit breaker so one failing
// route cannot trip the others.
func NewBackend(cfg HTTPClientConfig, baseURL string) *Backend {
	b := &Backend{
		baseURL:  strings.TrimRight(baseURL, "/"),
		httpCfg:  cfg,
		breakers: make(map[string]*gobreaker.CircuitBreaker),
	}
	for _, path := range []string{pathEvacuations, pathReliefCenters, pathResources, pathCampaigns, pathSubmissions} {
		b.breakers[path] = newBreaker("backend" + path)
	}
	return b
}

func (b *Backend) breaker(path string) *gobreaker.CircuitBreaker {
	return b.breakers[path]
}

func (b *Backend) url(path string) string {
	if b.baseURL == "" {
		return ""
	}
	return b.baseURL + path
}

type evacuationDTO struct {
	ID          string  `json:"id"`
	Area        string  `json:"area"`
	Description string  `json:"description"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Mandatory   bool    `json:"mandatory"`
	IssuedAt    string  `json:"issuedAt"`
}

type reliefCenterDTO struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Address   string   `json:"address"`
	Services  []string `json:"services"`
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	UpdatedAt string   `json:"updatedAt"`
}

// Evacuations is the incident.Source for evacuation orders.
func (b *Backend) Evacuations() incident.Source {
	return backendSource{name: backendName, category: incident.CategoryEvacuations, fetch: b.fetchEvacuations}
}

// ReliefCenters is the incident.Source for relief centers.
func (b *Backend) ReliefCenters() incident.Source {
	return backendSource{name: backendName, category: incident.CategoryReliefCenters, fetch: b.fetchReliefCenters}
}

func (b *Backend) fetchEvacuations(ctx context.Context) ([]incident.Incident, error) {
	var payload []evacuationDTO
	if err := getJSON(ctx, b.httpCfg, b.breaker(pathEvacuations), b.url(pathEvacuations), &payload); err != nil {
		return nil, fmt.Errorf("backend evacuations: %w", err)
	}
	out := make([]incident.Incident, 0, len(payload))
	for _, p := range payload {
		out = append(out, incident.MapEvacuation(incident.EvacuationRecord{
			ID:          p.ID,
			Area:        p.Area,
			Description: p.Description,
			Latitude:    p.Latitude,
			Longitude:   p.Longitude,
			Mandatory:   p.Mandatory,
			Issued:      parseTime(p.IssuedAt),
			Source:      backendName,
		}))
	}
	return out, nil
}

func (b *Backend) fetchReliefCenters(ctx context.Context) ([]incident.Incident, error) {
	var payload []reliefCenterDTO
	if err := getJSON(ctx, b.httpCfg, b.breaker(pathReliefCenters), b.url(pathReliefCenters), &payload); err != nil {
		return nil, fmt.Errorf("backend relief centers: %w", err)
	}
	out := make([]incident.Incident, 0, len(payload))
	for _, p := range payload {
		out = append(out, incident.MapReliefCenter(incident.ReliefCenterRecord{
			ID:        p.ID,
			Name:      p.Name,
			Address:   p.Address,
			Services:  p.Services,
			Latitude:  p.Latitude,
			Longitude: p.Longitude,
			Updated:   parseTime(p.UpdatedAt),
			Source:    backendName,
		}))
	}
	return out, nil
}

// Resources implements directory.ResourceSource.
func (b *Backend) Resources(ctx context.Context) ([]directory.Resource, error) {
	var payload []directory.Resource
	if err := getJSON(ctx, b.httpCfg, b.breaker(pathResources), b.url(pathResources), &payload); err != nil {
		return nil, fmt.Errorf("backend resources: %w", err)
	}
	// Distance is ours to compute.
	for i := range payload {
		payload[i].Distance = nil
	}
	return payload, nil
}

// Campaigns implements directory.CampaignSource.
func (b *Backend) Campaigns(ctx context.Context) ([]directory.Campaign, error) {
	var payload []directory.Campaign
	if err := getJSON(ctx, b.httpCfg, b.breaker(pathCampaigns), b.url(pathCampaigns), &payload); err != nil {
		return nil, fmt.Errorf("backend campaigns: %w", err)
	}
	return payload, nil
}

// Submit implements submission.Submitter by POSTing the record to
// /submissions/{kind}s. Submissions are never retried.
func (b *Backend) Submit(ctx context.Context, kind submission.Kind, record map[string]any) (string, error) {
	endpoint := b.url(pathSubmissions + "/" + string(kind) + "s")
	if endpoint == "" {
		return "", errNoBaseURL
	}
	body, err := json.Marshal(record)
	if err != nil {
		return "", fmt.Errorf("encode submission: %w", err)
	}

	writeCfg := b.httpCfg
	writeCfg.Backoff.MaxRetries = 0

	resp, err := doRequestWithResilience(ctx, writeCfg, b.breaker(pathSubmissions), func() (*http.Request, error) {
		req, err := http.NewRequest(http.MethodPost, endpoint, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	})
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var out struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode submission response: %w", err)
	}
	if out.ID == "" {
		return "", errNoSubmissionID
	}
	return out.ID, nil
}

type backendSource struct {
	name     string
	category incident.Category
	fetch    func(ctx context.Context) ([]incident.Incident, error)
}

func (s backendSource) Name() string                { return s.name }
func (s backendSource) Category() incident.Category { return s.category }

func (s backendSource) Fetch(ctx context.Context) ([]incident.Incident, error) {
	return s.fetch(ctx)
}
