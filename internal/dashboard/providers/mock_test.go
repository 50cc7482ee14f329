package providers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alurubalakarthikeya/Zephra/internal/simulate"
)

func TestMockProviderDeterministic(t *testing.T) {
	seeds := simulate.NewSeedState(time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC))
	p := NewMockProvider(seeds, simulate.NewGenerator(), 0)
	p.now = func() time.Time { return time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC) }

	first, err := p.GetDashboardData(context.Background(), "New York")
	require.NoError(t, err)
	second, err := p.GetDashboardData(context.Background(), "New York")
	require.NoError(t, err)

	assert.Equal(t, first.AirQuality, second.AirQuality)
	assert.Equal(t, "mock", first.Source)
	assert.Len(t, first.AirQuality, 24)
}

func TestMockProviderLatencyRespectsContext(t *testing.T) {
	seeds := simulate.NewSeedState(time.Now())
	p := NewMockProvider(seeds, simulate.NewGenerator(), 5*time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := p.GetDashboardData(ctx, "New York")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestMockProviderZeroLatency(t *testing.T) {
	seeds := simulate.NewSeedState(time.Now())
	p := NewMockProvider(seeds, simulate.NewGenerator(), 0)

	resp, err := p.GetDashboardData(context.Background(), "New York")
	require.NoError(t, err)
	assert.NotNil(t, resp)
}
