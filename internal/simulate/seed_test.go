package simulate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHashStringPortable(t *testing.T) {
	// h = h*31 + byte over int32, then abs. These values pin the
	// rolling hash so a reimplementation on another runtime can be
	// checked against them.
	assert.Equal(t, 0, hashString(""))
	assert.Equal(t, int('a'), hashString("a"))
	assert.Equal(t, 31*int('a')+int('b'), hashString("ab"))
	assert.GreaterOrEqual(t, hashString("2024-01-15"), 0)
	assert.GreaterOrEqual(t, hashString("New York"), 0)
}

func TestHashStringNeverNegative(t *testing.T) {
	for _, s := range []string{"2024-01-15", "New York", "Los Angeles", "São Paulo", "東京", "a very long location name that wraps the 32-bit accumulator several times over"} {
		assert.GreaterOrEqualf(t, hashString(s), 0, "hash of %q", s)
	}
}

func TestDateSeedStableWithinDay(t *testing.T) {
	morning := time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2024, 1, 15, 22, 59, 0, 0, time.UTC)
	nextDay := time.Date(2024, 1, 16, 0, 1, 0, 0, time.UTC)

	assert.Equal(t, DateSeed(morning), DateSeed(evening))
	assert.NotEqual(t, DateSeed(morning), DateSeed(nextDay))
}

func TestCombinedSeedDivergesByLocation(t *testing.T) {
	date := DateSeed(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))
	assert.NotEqual(t, CombinedSeed(date, "New York"), CombinedSeed(date, "Los Angeles"))
	assert.Equal(t, CombinedSeed(date, "New York"), date+LocationSeed("New York"))
}

func TestSeedStateRefresh(t *testing.T) {
	day1 := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 1, 16, 0, 0, 1, 0, time.UTC)

	state := NewSeedState(day1)
	before := state.DateSeed()

	assert.False(t, state.RefreshIfDayChanged(day1.Add(2*time.Hour)))
	assert.Equal(t, before, state.DateSeed())

	assert.True(t, state.RefreshIfDayChanged(day2))
	assert.NotEqual(t, before, state.DateSeed())
	assert.Equal(t, DateSeed(day2), state.DateSeed())

	// A second poll on the same day reports no change.
	assert.False(t, state.RefreshIfDayChanged(day2.Add(time.Hour)))
}

func TestRandRangeAndDeterminism(t *testing.T) {
	for seed := -500.0; seed < 500.0; seed += 7.3 {
		v := Rand(seed)
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
		assert.Equal(t, v, Rand(seed))
	}
}

func TestRandDistinctOffsets(t *testing.T) {
	base := 12345
	assert.NotEqual(t, Rand(SeedAt(base, 0)), Rand(SeedAt(base, 1)))
	assert.NotEqual(t, Rand(SeedAt(base, 1)), Rand(SeedAt(base, 2)))
}
