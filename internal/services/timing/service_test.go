package timing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sendagame/progress/internal/model"
)

func TestElapsedNormalRange(t *testing.T) {
	svc := New(DefaultConfig())

	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	now := start.Add(245 * time.Second)

	assert.Equal(t, int64(245), svc.Elapsed(&start, now))
}

func TestElapsedClampsToFloor(t *testing.T) {
	svc := New(DefaultConfig())
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	// Sub-second completion
	assert.Equal(t, int64(1), svc.Elapsed(&start, start.Add(200*time.Millisecond)))
	// Clock skew: now before start never goes negative
	assert.Equal(t, int64(1), svc.Elapsed(&start, start.Add(-10*time.Second)))
}

func TestElapsedClampsToCeiling(t *testing.T) {
	svc := New(DefaultConfig())
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	// Client disconnect: 9000s elapsed is clamped to the ceiling
	assert.Equal(t, int64(3600), svc.Elapsed(&start, start.Add(9000*time.Second)))
}

func TestElapsedMissingStartFallsBackToFloor(t *testing.T) {
	svc := New(DefaultConfig())
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, int64(1), svc.Elapsed(nil, now))
}

func TestOverrideWithinRange(t *testing.T) {
	svc := New(DefaultConfig())

	d, err := svc.Override(120)
	require.NoError(t, err)
	assert.Equal(t, int64(120), d)
}

func TestOverrideClampedToCeiling(t *testing.T) {
	svc := New(DefaultConfig())

	// Valid for the override bound but clamped like the computed path
	d, err := svc.Override(7200)
	require.NoError(t, err)
	assert.Equal(t, int64(3600), d)
}

func TestOverrideRejectsOutOfRange(t *testing.T) {
	svc := New(DefaultConfig())

	_, err := svc.Override(0)
	assert.ErrorIs(t, err, model.ErrInvalidDuration)

	_, err = svc.Override(-5)
	assert.ErrorIs(t, err, model.ErrInvalidDuration)

	_, err = svc.Override(86401)
	assert.ErrorIs(t, err, model.ErrInvalidDuration)
}

func TestCustomClampBounds(t *testing.T) {
	svc := New(Config{FloorSeconds: 5, CeilingSeconds: 60, OverrideMaxSeconds: 600})
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, int64(5), svc.Elapsed(&start, start.Add(2*time.Second)))
	assert.Equal(t, int64(60), svc.Elapsed(&start, start.Add(2*time.Minute)))
	assert.Equal(t, int64(5), svc.Elapsed(nil, start))
}
