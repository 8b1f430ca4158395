package refresh

import (
	"context"
	"sync"
	"time"

	"github.com/LerianStudio/lib-commons/commons/log"
	"github.com/benbjohnson/clock"
)

// Validator re-checks the active license. Licenses expire while the process runs.
type Validator interface {
	Revalidate(ctx context.Context) error
}

// Manager runs Revalidate on every tick of its clock until shut down.
type Manager struct {
	refreshInterval       time.Duration
	clock                 clock.Clock
	started               bool
	mu                    sync.Mutex
	cancel                context.CancelFunc
	done                  chan struct{}
	validator             Validator
	logger                log.Logger
	lastAttemptedRefresh  time.Time
	lastSuccessfulRefresh time.Time
}

// New creates a new background refresh manager
func New(validator Validator, refreshInterval time.Duration, clk clock.Clock, logger log.Logger) *Manager {
	if clk == nil {
		clk = clock.New()
	}

	return &Manager{
		validator:       validator,
		refreshInterval: refreshInterval,
		clock:           clk,
		logger:          logger,
	}
}

// Start begins the background refresh process. Calling it again while running is a no-op.
func (m *Manager) Start(ctx context.Context) {
	m.mu.Lock()
	if m.started {
		m.mu.Unlock()
		return
	}

	refreshCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.started = true
	m.done = make(chan struct{})
	done := m.done
	m.mu.Unlock()

	ticker := m.clock.Ticker(m.refreshInterval)

	go func() {
		defer close(done)
		defer ticker.Stop()

		m.logger.Infof("Starting background license refresh every %s", m.refreshInterval)

		for {
			select {
			case <-refreshCtx.Done():
				m.logger.Info("Background license refresh stopped")
				return
			case <-ticker.C:
				m.attemptValidation(refreshCtx)
			}
		}
	}()
}

// Shutdown stops the background refresh process and waits for it to exit.
func (m *Manager) Shutdown() {
	m.mu.Lock()

	if !m.started {
		m.mu.Unlock()
		return
	}

	m.cancel()
	m.cancel = nil
	m.started = false
	done := m.done
	m.mu.Unlock()

	<-done

	m.logger.Info("Background license refresh shutdown complete")
}

// LastAttemptedRefresh returns when the last refresh ran.
func (m *Manager) LastAttemptedRefresh() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.lastAttemptedRefresh
}

// LastSuccessfulRefresh returns when the last refresh succeeded.
func (m *Manager) LastSuccessfulRefresh() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.lastSuccessfulRefresh
}

func (m *Manager) attemptValidation(ctx context.Context) {
	m.mu.Lock()
	m.lastAttemptedRefresh = m.clock.Now()
	m.mu.Unlock()

	m.logger.Debug("Running scheduled license validation")

	if err := m.validator.Revalidate(ctx); err != nil {
		m.logger.Errorf("Scheduled license validation failed: %v", err)
		return
	}

	m.mu.Lock()
	m.lastSuccessfulRefresh = m.clock.Now()
	m.mu.Unlock()

	m.logger.Debug("Scheduled license validation successful")
}
