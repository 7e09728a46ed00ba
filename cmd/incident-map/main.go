package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2/log"

	httpapi "github.com/i474232898/incident-map/internal/api/http"
	"github.com/i474232898/incident-map/internal/config"
	"github.com/i474232898/incident-map/internal/directory"
	"github.com/i474232898/incident-map/internal/geocode"
	"github.com/i474232898/incident-map/internal/incident"
	"github.com/i474232898/incident-map/internal/kafka"
	"github.com/i474232898/incident-map/internal/observability"
	"github.com/i474232898/incident-map/internal/profile"
	"github.com/i474232898/incident-map/internal/safety"
	"github.com/i474232898/incident-map/internal/scheduler"
	"github.com/i474232898/incident-map/internal/sources"
	"github.com/i474232898/incident-map/internal/store"
	"github.com/i474232898/incident-map/internal/submission"
)

// kvStore is a profile.KV that owns resources.
type kvStore interface {
	profile.KV
	Close() error
}

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	observability.ConfigureLogger(cfg.LogLevel, os.Stderr)
	metrics := observability.NewMetrics()

	// Data sources: fixtures in mock mode, live feeds otherwise.
	var (
		incidentSources []incident.Source
		resourceSource  directory.ResourceSource = directory.FixtureSource{}
		campaignSource  directory.CampaignSource = directory.FixtureSource{}
		submitter       submission.Submitter     = submission.FixtureSubmitter{}
	)
	if cfg.UseMockData {
		log.Info("serving mock data")
		incidentSources = incident.FixtureSources()
	} else {
		// Shared HTTP client for outbound source calls.
		httpCfg := sources.DefaultHTTPConfig(&http.Client{Timeout: cfg.HTTPTimeout})
		httpCfg.Backoff.MaxRetries = cfg.MaxRetries

		var backend *sources.Backend
		incidentSources, backend = sources.Live(httpCfg, sources.Endpoints{
			CalFire:    cfg.CalFireURL,
			USGS:       cfg.USGSFeedURL,
			NOAAFloods: cfg.NOAAFloodFeedURL,
			Backend:    cfg.APIBaseURL,
		})
		resourceSource, campaignSource, submitter = backend, backend, backend
	}

	incidents := incident.NewService(incidentSources, cfg.FallbackPolicy, metrics)
	zones := incident.Zones()
	// Geocoding is optional; without a key profiles and postcards go unresolved.
	var (
		forward profile.Geocoder
		reverse safety.ReverseGeocoder
	)
	if gc := geocode.New(cfg.GeocoderAPIKey); gc.Enabled() {
		forward, reverse = gc, gc
	}

	kv, err := openStore(cfg.ProfileDBPath)
	if err != nil {
		log.Fatalf("failed to open profile store: %v", err)
	}
	defer kv.Close()

	policy := safety.AnyPolicy{
		safety.DefaultZonePolicy(),
		safety.ProximityPolicy{
			RadiusMiles: cfg.VulnerabilityRadiusMiles,
			MinWeight:   cfg.VulnerabilityMinWeight,
		},
	}

	app := httpapi.NewApp(httpapi.Services{
		Incidents:   incidents,
		Zones:       zones,
		Directory:   directory.NewService(resourceSource, campaignSource, metrics),
		Submissions: submission.NewService(submitter, metrics),
		Profiles:    profile.NewService(kv, forward),
		Safety:      safety.NewService(incidents, zones, policy, reverse, nil),
	})

	// Background poller, publishing to Kafka when brokers are configured.
	var publisher scheduler.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		w := kafka.NewWriter(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer w.Close()
		publisher = w
	}
	sched := scheduler.New(cfg.PollInterval, incidents, publisher, metrics)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Start server with graceful shutdown
	go func() {
		log.Infof("listening on :%s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Errorf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Errorf("error during shutdown: %v", err)
	}
}

func openStore(path string) (kvStore, error) {
	if path == "" {
		log.Info("profile store: in memory")
		return store.NewMemoryStore(), nil
	}
	log.Infof("profile store: sqlite %s", path)
	return store.OpenSQLite(path)
}
