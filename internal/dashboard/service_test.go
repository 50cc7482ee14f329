package dashboard_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alurubalakarthikeya/Zephra/internal/dashboard"
	"github.com/alurubalakarthikeya/Zephra/internal/store"
)

// fakeProvider counts calls and returns a canned response.
type fakeProvider struct {
	name  string
	calls int
	err   error
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) GetDashboardData(_ context.Context, location string) (*dashboard.DashboardResponse, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &dashboard.DashboardResponse{
		Location:   location,
		Source:     f.name,
		CurrentAQI: 87,
	}, nil
}

// fakeSeeds lets tests drive day rollover explicitly.
type fakeSeeds struct {
	seed    int
	changed bool
}

func (f *fakeSeeds) DateSeed() int { return f.seed }

func (f *fakeSeeds) RefreshIfDayChanged(time.Time) bool {
	if f.changed {
		f.changed = false
		f.seed++
		return true
	}
	return false
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func newTestService(t *testing.T, mock, live dashboard.Provider) (*dashboard.Service, *fakeSeeds, *store.MemoryCache) {
	t.Helper()
	seeds := &fakeSeeds{seed: 1000}
	cache := store.NewMemoryCache(0)
	svc, err := dashboard.NewService(seeds, cache, quietLogger(), mock, live, dashboard.ModeMock, "New York")
	require.NoError(t, err)
	return svc, seeds, cache
}

func TestServiceDefaultsToConfiguredLocation(t *testing.T) {
	mock := &fakeProvider{name: "mock"}
	svc, _, _ := newTestService(t, mock, nil)

	resp, err := svc.GetDashboard(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "New York", resp.Location)
}

func TestServiceSetLocation(t *testing.T) {
	mock := &fakeProvider{name: "mock"}
	svc, _, _ := newTestService(t, mock, nil)

	require.NoError(t, svc.SetLocation("Delhi"))
	assert.Equal(t, "Delhi", svc.Location())

	resp, err := svc.GetDashboard(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "Delhi", resp.Location)

	assert.Error(t, svc.SetLocation("   "))
}

func TestServiceCachesWithinSeedEpoch(t *testing.T) {
	mock := &fakeProvider{name: "mock"}
	svc, _, _ := newTestService(t, mock, nil)

	first, err := svc.GetDashboard(context.Background(), "New York")
	require.NoError(t, err)
	second, err := svc.GetDashboard(context.Background(), "New York")
	require.NoError(t, err)

	assert.Equal(t, 1, mock.calls, "second call must be served from cache")
	assert.Equal(t, first.CurrentAQI, second.CurrentAQI)

	// Each call carries its own request ID even on a cache hit.
	assert.NotEqual(t, first.RequestID, second.RequestID)
	assert.NotEmpty(t, first.RequestID)
}

func TestServiceRefreshInvalidatesCache(t *testing.T) {
	mock := &fakeProvider{name: "mock"}
	svc, seeds, _ := newTestService(t, mock, nil)

	_, err := svc.GetDashboard(context.Background(), "New York")
	require.NoError(t, err)

	// No rollover: nothing changes, cache still hot.
	assert.False(t, svc.RefreshIfDayChanged())
	_, err = svc.GetDashboard(context.Background(), "New York")
	require.NoError(t, err)
	assert.Equal(t, 1, mock.calls)

	// Rollover: seed moves, cache flushed, next call regenerates.
	seeds.changed = true
	assert.True(t, svc.RefreshIfDayChanged())
	_, err = svc.GetDashboard(context.Background(), "New York")
	require.NoError(t, err)
	assert.Equal(t, 2, mock.calls)
}

func TestServiceModeSwitching(t *testing.T) {
	mock := &fakeProvider{name: "mock"}
	live := &fakeProvider{name: "live"}
	svc, _, _ := newTestService(t, mock, live)

	resp, err := svc.GetDashboard(context.Background(), "New York")
	require.NoError(t, err)
	assert.Equal(t, "mock", resp.Source)

	require.NoError(t, svc.SetMode(dashboard.ModeLive))
	assert.Equal(t, dashboard.ModeLive, svc.Mode())

	resp, err = svc.GetDashboard(context.Background(), "New York")
	require.NoError(t, err)
	assert.Equal(t, "live", resp.Source)
	assert.Equal(t, 1, live.calls)

	// Modes cache independently.
	assert.Equal(t, 1, mock.calls)

	assert.Error(t, svc.SetMode(dashboard.Mode("bogus")))
}

func TestServiceRejectsModeWithoutProvider(t *testing.T) {
	mock := &fakeProvider{name: "mock"}
	svc, _, _ := newTestService(t, mock, nil)

	err := svc.SetMode(dashboard.ModeLive)
	assert.Error(t, err)
	assert.Equal(t, dashboard.ModeMock, svc.Mode())
}

func TestServicePropagatesProviderErrors(t *testing.T) {
	mock := &fakeProvider{name: "mock", err: errors.New("boom")}
	svc, _, _ := newTestService(t, mock, nil)

	_, err := svc.GetDashboard(context.Background(), "New York")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "mock")
}

func TestNewServiceValidation(t *testing.T) {
	seeds := &fakeSeeds{seed: 1}
	cache := store.NewMemoryCache(0)
	mock := &fakeProvider{name: "mock"}

	_, err := dashboard.NewService(seeds, cache, quietLogger(), mock, nil, dashboard.Mode("bogus"), "New York")
	assert.Error(t, err)

	_, err = dashboard.NewService(seeds, cache, quietLogger(), mock, nil, dashboard.ModeMock, "  ")
	assert.Error(t, err)

	_, err = dashboard.NewService(seeds, cache, quietLogger(), nil, nil, dashboard.ModeMock, "New York")
	assert.Error(t, err)
}
