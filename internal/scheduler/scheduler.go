package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/gofiber/fiber/v2/log"

	"github.com/i474232898/incident-map/internal/incident"
	"github.com/i474232898/incident-map/internal/observability"
)

// Aggregator produces a fresh incident snapshot.
type Aggregator interface {
	Aggregate(ctx context.Context) incident.IncidentSet
}

// Publisher broadcasts a snapshot. It may be nil.
type Publisher interface {
	Publish(ctx context.Context, set incident.IncidentSet, at time.Time) error
}

// Scheduler periodically aggregates incidents, records per-category counts
// and publishes the snapshot.
type Scheduler struct {
	scheduler *gocron.Scheduler
	incidents Aggregator
	publisher Publisher
	metrics   *observability.Metrics
	interval  time.Duration
	timeout   time.Duration
}

// New creates a new Scheduler. An interval of zero disables polling.
func New(interval time.Duration, incidents Aggregator, publisher Publisher, metrics *observability.Metrics) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	return &Scheduler{
		scheduler: s,
		incidents: incidents,
		publisher: publisher,
		metrics:   metrics,
		interval:  interval,
		timeout:   30 * time.Second,
	}
}

// Start schedules the poll job and starts the underlying scheduler. The
// first run happens immediately.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		log.Info("scheduler: polling disabled")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		if err := s.RunOnce(ctx); err != nil {
			log.Warnw("scheduler: publish failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	log.Infof("scheduler: polling every %s", s.interval)
	s.scheduler.StartAsync()
	return nil
}

// RunOnce performs a single poll.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	set := s.incidents.Aggregate(ctx)
	for _, c := range incident.Categories {
		s.metrics.IncidentsPerSource.WithLabelValues(string(c)).Set(float64(len(set[c])))
	}
	log.Debugf("scheduler: aggregated %d incidents", set.Len())

	if s.publisher == nil {
		return nil
	}
	if err := s.publisher.Publish(ctx, set, time.Now()); err != nil {
		return err
	}
	s.metrics.SnapshotsPublished.Inc()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
