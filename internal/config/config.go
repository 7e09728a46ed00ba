package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/joho/godotenv"

	"github.com/i474232898/incident-map/internal/incident"
)

type AppConfig struct {
	// UseMockData serves fixtures for every source instead of live feeds.
	UseMockData bool

	APIBaseURL       string
	CalFireURL       string
	USGSFeedURL      string
	NOAAFloodFeedURL string

	// Outbound HTTP behaviour. MaxRetries of zero means a single attempt.
	HTTPTimeout time.Duration
	MaxRetries  int

	FallbackPolicy incident.FallbackPolicy

	GeocoderAPIKey string

	// ProfileDBPath selects the sqlite file; empty keeps profiles in memory.
	ProfileDBPath string

	// PollInterval of zero disables the background poller.
	PollInterval time.Duration
	KafkaBrokers []string
	KafkaTopic   string

	VulnerabilityRadiusMiles float64
	VulnerabilityMinWeight   float64

	LogLevel string
	Port     string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Infof("No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	useMock, err := strconv.ParseBool(getenvDefault("USE_MOCK_DATA", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid USE_MOCK_DATA: %w", err)
	}
	cfg.UseMockData = useMock

	cfg.APIBaseURL = os.Getenv("API_BASE_URL")
	cfg.CalFireURL = getenvDefault("CALFIRE_URL", "https://www.fire.ca.gov/umbraco/api/IncidentApi/List?inactive=false")
	cfg.USGSFeedURL = getenvDefault("USGS_FEED_URL", "https://earthquake.usgs.gov/earthquakes/feed/v1.0/summary/all_day.geojson")
	cfg.NOAAFloodFeedURL = getenvDefault("NOAA_FLOOD_FEED_URL", "https://api.weather.gov/alerts/active.atom?area=CA")

	timeout, err := time.ParseDuration(getenvDefault("HTTP_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout
	cfg.MaxRetries = getenvInt("HTTP_MAX_RETRIES", 0)
	if cfg.MaxRetries < 0 {
		return nil, fmt.Errorf("invalid HTTP_MAX_RETRIES: must not be negative")
	}

	policy, err := incident.ParseFallbackPolicy(getenvDefault("FALLBACK_POLICY", string(incident.FallbackAll)))
	if err != nil {
		return nil, fmt.Errorf("invalid FALLBACK_POLICY: %w", err)
	}
	cfg.FallbackPolicy = policy

	cfg.GeocoderAPIKey = os.Getenv("GEOCODER_API_KEY")
	cfg.ProfileDBPath = os.Getenv("PROFILE_DB_PATH")

	interval, err := time.ParseDuration(getenvDefault("POLL_INTERVAL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid POLL_INTERVAL: %w", err)
	}
	cfg.PollInterval = interval
	cfg.KafkaBrokers = splitList(os.Getenv("KAFKA_BROKERS"))
	cfg.KafkaTopic = getenvDefault("KAFKA_TOPIC", "incident-snapshots")

	cfg.VulnerabilityRadiusMiles, err = getenvFloat("VULNERABILITY_RADIUS_MILES", 5)
	if err != nil {
		return nil, err
	}
	cfg.VulnerabilityMinWeight, err = getenvFloat("VULNERABILITY_MIN_WEIGHT", 0.7)
	if err != nil {
		return nil, err
	}

	cfg.LogLevel = getenvDefault("LOG_LEVEL", "info")
	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}
