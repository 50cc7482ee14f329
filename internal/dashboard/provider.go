package dashboard

import (
	"context"
	"time"
)

// Mode selects which data source backs the dashboard.
type Mode string

const (
	ModeMock Mode = "mock"
	ModeLive Mode = "live"
)

// Valid reports whether the mode is one of the two supported values.
func (m Mode) Valid() bool {
	return m == ModeMock || m == ModeLive
}

// Provider abstracts a dashboard data source (the synthetic generator or
// a live HTTP API).
type Provider interface {
	Name() string
	GetDashboardData(ctx context.Context, location string) (*DashboardResponse, error)
}

// SeedSource exposes the cached daily seed the service keys its cache
// on. Refreshing is polled by the scheduler, never timer-driven.
type SeedSource interface {
	DateSeed() int
	RefreshIfDayChanged(now time.Time) bool
}

// Cache is the contract the in-memory dashboard cache must satisfy.
// Entries are scoped to a seed epoch; a rollover invalidates everything.
type Cache interface {
	Get(key string, epoch int) (*DashboardResponse, error)
	Put(key string, epoch int, resp *DashboardResponse)
	InvalidateAll()
}
