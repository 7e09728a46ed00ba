package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2/log"

	"github.com/i474232898/incident-map/internal/geo"
	"github.com/i474232898/incident-map/internal/store"
)

var (
	// ErrNotFound is returned when no profile has been saved.
	ErrNotFound = errors.New("profile not found")
	// ErrNotOnboarded is returned when editing before onboarding completed.
	ErrNotOnboarded = errors.New("onboarding not completed")
	// ErrInvalid is returned for profiles that fail validation.
	ErrInvalid = errors.New("invalid profile")
)

const (
	profileKey    = "user_profile"
	onboardingKey = "onboarding_complete"
)

// KV is the key-value contract the profile is persisted through.
// Missing keys report store.ErrNotFound.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Geocoder resolves ZIP codes and addresses.
type Geocoder interface {
	Forward(ctx context.Context, query string) (geo.Point, error)
}

type Service struct {
	kv       KV
	geocoder Geocoder
}

// NewService creates a new Service. geocoder may be nil.
func NewService(kv KV, geocoder Geocoder) *Service {
	return &Service{kv: kv, geocoder: geocoder}
}

// Get returns the saved profile.
func (s *Service) Get(ctx context.Context) (UserProfile, error) {
	raw, err := s.kv.Get(ctx, profileKey)
	if errors.Is(err, store.ErrNotFound) {
		return UserProfile{}, ErrNotFound
	}
	if err != nil {
		return UserProfile{}, fmt.Errorf("load profile: %w", err)
	}

	var p UserProfile
	if err := json.Unmarshal(raw, &p); err != nil {
		return UserProfile{}, fmt.Errorf("decode profile: %w", err)
	}
	return p, nil
}

// CompleteOnboarding saves the profile and marks onboarding done.
func (s *Service) CompleteOnboarding(ctx context.Context, p UserProfile) (UserProfile, error) {
	p, err := s.save(ctx, p)
	if err != nil {
		return UserProfile{}, err
	}
	if err := s.kv.Set(ctx, onboardingKey, []byte("true")); err != nil {
		return UserProfile{}, fmt.Errorf("mark onboarding complete: %w", err)
	}
	log.Infof("profile: onboarding completed")
	return p, nil
}

// Update replaces the profile of an onboarded user.
func (s *Service) Update(ctx context.Context, p UserProfile) (UserProfile, error) {
	done, err := s.Onboarded(ctx)
	if err != nil {
		return UserProfile{}, err
	}
	if !done {
		return UserProfile{}, ErrNotOnboarded
	}
	return s.save(ctx, p)
}

// Onboarded reports whether onboarding has been completed.
func (s *Service) Onboarded(ctx context.Context) (bool, error) {
	raw, err := s.kv.Get(ctx, onboardingKey)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load onboarding flag: %w", err)
	}
	return string(raw) == "true", nil
}

// Reset removes the profile and the onboarding flag.
func (s *Service) Reset(ctx context.Context) error {
	if err := s.kv.Delete(ctx, profileKey); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	if err := s.kv.Delete(ctx, onboardingKey); err != nil {
		return fmt.Errorf("delete onboarding flag: %w", err)
	}
	log.Infof("profile: reset")
	return nil
}

func (s *Service) save(ctx context.Context, p UserProfile) (UserProfile, error) {
	if err := p.Validate(); err != nil {
		return UserProfile{}, err
	}
	p.Resolved = s.resolve(ctx, p.Location)

	raw, err := json.Marshal(p)
	if err != nil {
		return UserProfile{}, fmt.Errorf("encode profile: %w", err)
	}
	if err := s.kv.Set(ctx, profileKey, raw); err != nil {
		return UserProfile{}, fmt.Errorf("save profile: %w", err)
	}
	return p, nil
}

// resolve geocodes ZIP and address locations; failures leave it unresolved.
func (s *Service) resolve(ctx context.Context, l Location) *geo.Point {
	if l.Coords != nil || s.geocoder == nil {
		return nil
	}
	p, err := s.geocoder.Forward(ctx, l.query())
	if err != nil {
		log.Warnw("profile location not geocoded", "error", err)
		return nil
	}
	return &p
}
