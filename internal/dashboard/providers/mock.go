package providers

import (
	"context"
	"time"

	"github.com/alurubalakarthikeya/Zephra/internal/dashboard"
	"github.com/alurubalakarthikeya/Zephra/internal/simulate"
)

// MockProvider serves deterministic synthetic dashboards from the
// seeded generator. An optional artificial delay emulates network
// latency; it is purely cosmetic and safe to configure to zero.
type MockProvider struct {
	name    string
	seeds   dashboard.SeedSource
	gen     *simulate.Generator
	latency time.Duration
	now     func() time.Time
}

// NewMockProvider wires the generator to the shared seed state.
func NewMockProvider(seeds dashboard.SeedSource, gen *simulate.Generator, latency time.Duration) *MockProvider {
	return &MockProvider{
		name:    "mock",
		seeds:   seeds,
		gen:     gen,
		latency: latency,
		now:     time.Now,
	}
}

func (p *MockProvider) Name() string {
	return p.name
}

// GetDashboardData generates the full synthetic dashboard. Generation
// cannot fail; the only error path is context cancellation during the
// artificial delay.
func (p *MockProvider) GetDashboardData(ctx context.Context, location string) (*dashboard.DashboardResponse, error) {
	if p.latency > 0 {
		timer := time.NewTimer(p.latency)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	return p.gen.GenerateDashboard(p.seeds.DateSeed(), location, p.now()), nil
}
