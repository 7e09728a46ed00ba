// Package geocode wraps the Google geocoding client for profile locations
// and postcard addresses.
package geocode

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/kelvins/geocoder"

	"github.com/i474232898/incident-map/internal/geo"
)

var (
	// ErrDisabled is returned when no API key is configured.
	ErrDisabled = errors.New("geocoding disabled")
	// ErrNoResults is returned when the geocoder knows nothing about the input.
	ErrNoResults = errors.New("no geocoding results")
)

var zipPattern = regexp.MustCompile(`^\d{5}(-\d{4})?$`)

// Client forward- and reverse-geocodes with an in-memory result cache.
type Client struct {
	enabled bool
	forward func(geocoder.Address) (geocoder.Location, error)
	reverse func(geocoder.Location) ([]geocoder.Address, error)

	mu    sync.Mutex
	cache map[string]any
}

// New returns a Client. An empty apiKey yields a disabled client. The
// underlying library keeps the key in a package variable, so one key per
// process.
func New(apiKey string) *Client {
	c := &Client{
		enabled: apiKey != "",
		forward: geocoder.Geocoding,
		reverse: geocoder.GeocodingReverse,
		cache:   make(map[string]any),
	}
	if c.enabled {
		geocoder.ApiKey = apiKey
	}
	return c
}

// Enabled reports whether lookups will be attempted.
func (c *Client) Enabled() bool { return c != nil && c.enabled }

// Forward resolves a US ZIP code or free-form address to a point.
func (c *Client) Forward(ctx context.Context, query string) (geo.Point, error) {
	if !c.Enabled() {
		return geo.Point{}, ErrDisabled
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return geo.Point{}, ErrNoResults
	}
	key := "fwd:" + strings.ToLower(query)
	if p, ok := c.cached(key).(geo.Point); ok {
		return p, nil
	}

	addr := geocoder.Address{Street: query}
	if zipPattern.MatchString(query) {
		addr = geocoder.Address{PostalCode: query, Country: "United States"}
	}

	loc, err := call(ctx, func() (geocoder.Location, error) { return c.forward(addr) })
	if err != nil {
		return geo.Point{}, fmt.Errorf("geocode %q: %w", query, err)
	}
	if loc.Latitude == 0 && loc.Longitude == 0 {
		return geo.Point{}, ErrNoResults
	}

	p := geo.Point{Latitude: loc.Latitude, Longitude: loc.Longitude}
	c.store(key, p)
	return p, nil
}

// Reverse returns the formatted address closest to p.
func (c *Client) Reverse(ctx context.Context, p geo.Point) (string, error) {
	if !c.Enabled() {
		return "", ErrDisabled
	}
	key := fmt.Sprintf("rev:%.5f,%.5f", p.Latitude, p.Longitude)
	if s, ok := c.cached(key).(string); ok {
		return s, nil
	}

	addrs, err := call(ctx, func() ([]geocoder.Address, error) {
		return c.reverse(geocoder.Location{Latitude: p.Latitude, Longitude: p.Longitude})
	})
	if err != nil {
		return "", fmt.Errorf("reverse geocode: %w", err)
	}
	for _, a := range addrs {
		if a.FormattedAddress != "" {
			c.store(key, a.FormattedAddress)
			return a.FormattedAddress, nil
		}
	}
	return "", ErrNoResults
}

func (c *Client) cached(key string) any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache[key]
}

func (c *Client) store(key string, v any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache[key] = v
}

// call runs a blocking lookup but returns early when ctx is done. The
// library has no context support, so an abandoned call finishes in the
// background.
func call[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	type result struct {
		v   T
		err error
	}
	ch := make(chan result, 1)
	go func() {
		v, err := fn()
		ch <- result{v, err}
	}()

	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case r := <-ch:
		return r.v, r.err
	}
}
