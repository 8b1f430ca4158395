package refresh

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/LerianStudio/lib-license-verify/test/mocks"
	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubValidator struct {
	calls atomic.Int32
	err   error
	ran   chan struct{}
}

func (s *stubValidator) Revalidate(context.Context) error {
	s.calls.Add(1)
	s.ran <- struct{}{}

	return s.err
}

func waitRun(t *testing.T, ran <-chan struct{}) {
	t.Helper()

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("revalidation did not run")
	}
}

func TestManagerRevalidatesOnEveryTick(t *testing.T) {
	mock := clock.NewMock()
	validator := &stubValidator{ran: make(chan struct{}, 1)}
	logger := mocks.NewLogger()

	m := New(validator, time.Hour, mock, logger)
	m.Start(context.Background())
	m.Start(context.Background())

	mock.Add(time.Hour)
	waitRun(t, validator.ran)

	mock.Add(time.Hour)
	waitRun(t, validator.ran)

	m.Shutdown()

	assert.Equal(t, int32(2), validator.calls.Load())
	assert.Equal(t, mock.Now(), m.LastAttemptedRefresh())
	assert.Equal(t, mock.Now(), m.LastSuccessfulRefresh())
	assert.True(t, logger.ContainsAt("INFO", "Background license refresh shutdown complete"))

	mock.Add(time.Hour)
	assert.Equal(t, int32(2), validator.calls.Load())
}

func TestManagerLogsFailures(t *testing.T) {
	mock := clock.NewMock()
	validator := &stubValidator{ran: make(chan struct{}, 1), err: errors.New("license expired")}
	logger := mocks.NewLogger()

	m := New(validator, time.Minute, mock, logger)
	m.Start(context.Background())
	t.Cleanup(m.Shutdown)

	mock.Add(time.Minute)
	waitRun(t, validator.ran)

	require.Eventually(t, func() bool {
		return logger.ContainsAt("ERROR", "Scheduled license validation failed: license expired")
	}, 2*time.Second, 10*time.Millisecond)

	assert.True(t, m.LastSuccessfulRefresh().IsZero())
}

func TestManagerStopsWithContext(t *testing.T) {
	logger := mocks.NewLogger()
	ctx, cancel := context.WithCancel(context.Background())

	m := New(&stubValidator{ran: make(chan struct{}, 1)}, time.Hour, clock.NewMock(), logger)
	m.Start(ctx)
	cancel()

	require.Eventually(t, func() bool {
		return logger.Contains("Background license refresh stopped")
	}, 2*time.Second, 10*time.Millisecond)

	m.Shutdown()
}

func TestShutdownWithoutStart(t *testing.T) {
	m := New(&stubValidator{}, time.Hour, nil, mocks.NewLogger())

	assert.NotPanics(t, m.Shutdown)
}
