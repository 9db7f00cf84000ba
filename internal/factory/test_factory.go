package factory

import (
	"time"

	"github.com/pixelquest/accounts/internal/dependencies/mocks"
	"github.com/pixelquest/accounts/internal/storage/memory"
	"github.com/pixelquest/accounts/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock    *mocks.MockClock
	MockRandom   *mocks.MockRandom
	MockVerifier *mocks.MockVerifier
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	mockVerifier := mocks.NewMockVerifier()

	app := newWithDependencies(store, mockClock, mockRandom, mockVerifier, testutil.NopLogger())

	return &TestApp{
		App:          app,
		MockClock:    mockClock,
		MockRandom:   mockRandom,
		MockVerifier: mockVerifier,
	}
}
