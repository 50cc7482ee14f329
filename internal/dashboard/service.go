package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Service is the mode manager: it owns the mode flag and the default
// location, forwards dashboard requests to the selected provider, and
// caches responses per location until the daily seed rolls over. It is
// an explicit state object created once at startup and shared by
// reference, not a package-level singleton.
type Service struct {
	seeds SeedSource
	cache Cache
	log   *logrus.Logger

	mu              sync.RWMutex
	mode            Mode
	defaultLocation string
	providers       map[Mode]Provider
}

// NewService creates a Service. Both providers may be supplied; a
// missing provider makes the corresponding mode unavailable.
func NewService(seeds SeedSource, cache Cache, log *logrus.Logger, mock, live Provider, mode Mode, defaultLocation string) (*Service, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("invalid data mode %q", mode)
	}
	if strings.TrimSpace(defaultLocation) == "" {
		return nil, errors.New("default location must not be empty")
	}

	providers := make(map[Mode]Provider)
	if mock != nil {
		providers[ModeMock] = mock
	}
	if live != nil {
		providers[ModeLive] = live
	}
	if _, ok := providers[mode]; !ok {
		return nil, fmt.Errorf("no provider configured for mode %q", mode)
	}

	return &Service{
		seeds:           seeds,
		cache:           cache,
		log:             log,
		mode:            mode,
		defaultLocation: defaultLocation,
		providers:       providers,
	}, nil
}

// GetDashboard returns the dashboard for a location, using the default
// location when name is empty. Responses are cached per (mode,
// location) under the current seed epoch; each call gets a fresh
// request ID even on a cache hit.
func (s *Service) GetDashboard(ctx context.Context, name string) (*DashboardResponse, error) {
	s.mu.RLock()
	mode := s.mode
	if strings.TrimSpace(name) == "" {
		name = s.defaultLocation
	}
	provider := s.providers[mode]
	s.mu.RUnlock()

	epoch := s.seeds.DateSeed()
	key := string(mode) + ":" + name

	if cached, err := s.cache.Get(key, epoch); err == nil {
		resp := *cached
		resp.RequestID = uuid.NewString()
		return &resp, nil
	}

	resp, err := provider.GetDashboardData(ctx, name)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"provider": provider.Name(),
			"location": name,
		}).WithError(err).Error("dashboard fetch failed")
		return nil, fmt.Errorf("provider %s: %w", provider.Name(), err)
	}

	s.cache.Put(key, epoch, resp)

	out := *resp
	out.RequestID = uuid.NewString()

	s.log.WithFields(logrus.Fields{
		"provider": provider.Name(),
		"location": name,
		"aqi":      out.CurrentAQI,
	}).Debug("dashboard generated")

	return &out, nil
}

// SetMode switches the active data source.
func (s *Service) SetMode(mode Mode) error {
	if !mode.Valid() {
		return fmt.Errorf("invalid data mode %q", mode)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.providers[mode]; !ok {
		return fmt.Errorf("no provider configured for mode %q", mode)
	}
	s.mode = mode
	s.log.WithField("mode", mode).Info("data mode switched")
	return nil
}

// Mode returns the active data source mode.
func (s *Service) Mode() Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// SetLocation changes the default location used when a request names none.
func (s *Service) SetLocation(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("location name must not be empty")
	}

	s.mu.Lock()
	s.defaultLocation = name
	s.mu.Unlock()
	return nil
}

// Location returns the current default location.
func (s *Service) Location() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.defaultLocation
}

// RefreshIfDayChanged polls the seed state and invalidates every cached
// dashboard when local midnight rolled over. Returns whether it did.
func (s *Service) RefreshIfDayChanged() bool {
	changed := s.seeds.RefreshIfDayChanged(time.Now())
	if changed {
		s.cache.InvalidateAll()
		s.log.Info("daily seed rolled over; dashboard cache invalidated")
	}
	return changed
}
