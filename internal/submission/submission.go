package submission

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"

	"github.com/i474232898/incident-map/internal/observability"
)

// Kind names what is being submitted.
type Kind string

const (
	KindResource Kind = "resource"
	KindCampaign Kind = "campaign"
	KindIncident Kind = "incident"
)

// ParseKind accepts both the singular kind and its plural route segment.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "resource", "resources":
		return KindResource, nil
	case "campaign", "campaigns":
		return KindCampaign, nil
	case "incident", "incidents":
		return KindIncident, nil
	}
	return "", fmt.Errorf("%w: unknown kind %q", ErrInvalid, s)
}

// ErrInvalid marks a submission rejected before it reached the backend.
var ErrInvalid = errors.New("invalid submission")

// Submission is a user-contributed record awaiting review.
type Submission struct {
	Kind   Kind
	Record map[string]any
}

// Result is returned to the submitter.
type Result struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
}

// Submitter forwards a record to wherever submissions are reviewed and
// returns the id it was filed under.
type Submitter interface {
	Submit(ctx context.Context, kind Kind, record map[string]any) (string, error)
}

// Payload is a typed submission body that knows its kind.
type Payload interface {
	Kind() Kind
}

type Service struct {
	submitter Submitter
	validate  *validator.Validate
	metrics   *observability.Metrics
}

func NewService(submitter Submitter, metrics *observability.Metrics) *Service {
	return &Service{
		submitter: submitter,
		validate:  validator.New(),
		metrics:   metrics,
	}
}

// Submit checks kind and record and forwards to the submitter. Submitter
// errors are returned as-is.
func (s *Service) Submit(ctx context.Context, sub Submission) (Result, error) {
	if _, err := ParseKind(string(sub.Kind)); err != nil {
		s.metrics.Submissions.WithLabelValues(string(sub.Kind), "invalid").Inc()
		return Result{}, err
	}
	if len(sub.Record) == 0 {
		s.metrics.Submissions.WithLabelValues(string(sub.Kind), "invalid").Inc()
		return Result{}, fmt.Errorf("%w: empty record", ErrInvalid)
	}

	id, err := s.submitter.Submit(ctx, sub.Kind, sub.Record)
	if err != nil {
		log.Warnw("submission failed", "kind", sub.Kind, "error", err)
		s.metrics.Submissions.WithLabelValues(string(sub.Kind), "error").Inc()
		return Result{}, err
	}

	s.metrics.Submissions.WithLabelValues(string(sub.Kind), "success").Inc()
	return Result{Success: true, ID: id}, nil
}

// SubmitPayload validates a typed payload's tags and submits it.
func (s *Service) SubmitPayload(ctx context.Context, p Payload) (Result, error) {
	if err := s.validate.Struct(p); err != nil {
		s.metrics.Submissions.WithLabelValues(string(p.Kind()), "invalid").Inc()
		return Result{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	record, err := toRecord(p)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return s.Submit(ctx, Submission{Kind: p.Kind(), Record: record})
}

func toRecord(v any) (map[string]any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var record map[string]any
	if err := json.Unmarshal(b, &record); err != nil {
		return nil, err
	}
	return record, nil
}

// FixtureSubmitter accepts everything and files it under a placeholder id.
type FixtureSubmitter struct{}

func (FixtureSubmitter) Submit(_ context.Context, kind Kind, _ map[string]any) (string, error) {
	return fmt.Sprintf("mock-%s-%s", kind, uuid.NewString()), nil
}
