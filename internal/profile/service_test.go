package profile

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/incident-map/internal/geo"
	"github.com/i474232898/incident-map/internal/store"
)

type stubGeocoder struct {
	point geo.Point
	err   error
	query string
}

func (g *stubGeocoder) Forward(_ context.Context, q string) (geo.Point, error) {
	g.query = q
	return g.point, g.err
}

func zipProfile() UserProfile {
	return UserProfile{
		Location:  Location{ZipCode: "90012"},
		Household: Household{Size: 3, HasPets: true},
	}
}

func TestService_OnboardingLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewMemoryStore(), nil)

	done, err := svc.Onboarded(ctx)
	require.NoError(t, err)
	assert.False(t, done)

	_, err = svc.Get(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	saved, err := svc.CompleteOnboarding(ctx, zipProfile())
	require.NoError(t, err)
	assert.Equal(t, "90012", saved.Location.ZipCode)

	done, err = svc.Onboarded(ctx)
	require.NoError(t, err)
	assert.True(t, done)

	got, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Household.Size)
	assert.True(t, got.Household.HasPets)

	edited := got
	edited.Household.Size = 4
	_, err = svc.Update(ctx, edited)
	require.NoError(t, err)
	got, err = svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, got.Household.Size)

	require.NoError(t, svc.Reset(ctx))
	done, err = svc.Onboarded(ctx)
	require.NoError(t, err)
	assert.False(t, done)
	_, err = svc.Get(ctx)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_UpdateRequiresOnboarding(t *testing.T) {
	svc := NewService(store.NewMemoryStore(), nil)

	_, err := svc.Update(context.Background(), zipProfile())

	assert.ErrorIs(t, err, ErrNotOnboarded)
}

func TestService_RejectsInvalidProfile(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryStore()
	svc := NewService(kv, nil)

	bad := zipProfile()
	bad.Household.Size = 0
	_, err := svc.CompleteOnboarding(ctx, bad)

	assert.ErrorIs(t, err, ErrInvalid)
	done, _ := svc.Onboarded(ctx)
	assert.False(t, done)
}

func TestService_ResolvesLocation(t *testing.T) {
	ctx := context.Background()
	g := &stubGeocoder{point: geo.Point{Latitude: 34.06, Longitude: -118.24}}
	svc := NewService(store.NewMemoryStore(), g)

	saved, err := svc.CompleteOnboarding(ctx, zipProfile())

	require.NoError(t, err)
	assert.Equal(t, "90012", g.query)
	require.NotNil(t, saved.Point())
	assert.Equal(t, 34.06, saved.Point().Latitude)

	got, err := svc.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, got.Resolved)
}

func TestService_GeocodeFailureIsNotFatal(t *testing.T) {
	g := &stubGeocoder{err: errors.New("quota")}
	svc := NewService(store.NewMemoryStore(), g)

	saved, err := svc.CompleteOnboarding(context.Background(), zipProfile())

	require.NoError(t, err)
	assert.Nil(t, saved.Point())
}

func TestService_CoordsSkipGeocoding(t *testing.T) {
	g := &stubGeocoder{}
	svc := NewService(store.NewMemoryStore(), g)
	p := UserProfile{
		Location:  Location{Coords: &geo.Point{Latitude: 34.1, Longitude: -118.1}, Address: "Pasadena, CA"},
		Household: Household{Size: 1},
	}

	saved, err := svc.CompleteOnboarding(context.Background(), p)

	require.NoError(t, err)
	assert.Empty(t, g.query)
	assert.Equal(t, 34.1, saved.Point().Latitude)
}

func TestService_SQLiteBacked(t *testing.T) {
	ctx := context.Background()
	kv, err := store.OpenSQLite(":memory:")
	require.NoError(t, err)
	defer kv.Close()
	svc := NewService(kv, nil)

	_, err = svc.CompleteOnboarding(ctx, zipProfile())
	require.NoError(t, err)

	got, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "90012", got.Location.ZipCode)
}

type failingKV struct{ err error }

func (f failingKV) Get(context.Context, string) ([]byte, error) { return nil, f.err }
func (f failingKV) Set(context.Context, string, []byte) error   { return f.err }
func (f failingKV) Delete(context.Context, string) error        { return f.err }

func TestService_StorageErrorsWrap(t *testing.T) {
	boom := errors.New("disk full")
	svc := NewService(failingKV{err: boom}, nil)

	_, err := svc.Get(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrNotFound)

	_, err = svc.Onboarded(context.Background())
	assert.ErrorIs(t, err, boom)

	assert.ErrorIs(t, svc.Reset(context.Background()), boom)
}
