package factory

import (
	"time"

	"github.com/sendagame/progress/internal/dependencies/mocks"
	"github.com/sendagame/progress/internal/levels"
	"github.com/sendagame/progress/internal/services/timing"
	"github.com/sendagame/progress/internal/storage/memory"
	"github.com/sendagame/progress/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(
		store,
		levels.Default(),
		timing.DefaultConfig(),
		mockClock,
		mockRandom,
		testutil.NopLogger(),
	)

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}
