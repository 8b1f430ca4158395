package shutdown

import (
	"sync"

	"github.com/LerianStudio/lib-license-verify/model"
)

// Handler is called with the failing result when the installation license is rejected.
type Handler func(result model.ValidationResult)

// DefaultHandler panics with the operator message of result.
// The panic is meant to be caught by the application's graceful shutdown handler.
func DefaultHandler(result model.ValidationResult) {
	panic("LICENSE VALIDATION FAILED: " + result.Message())
}

// Manager handles termination behavior
type Manager struct {
	handler Handler
	mu      sync.RWMutex
}

// New creates a new termination manager with the default handler
func New() *Manager {
	return &Manager{
		handler: DefaultHandler,
	}
}

// SetHandler updates the termination handler. A nil handler is ignored.
func (m *Manager) SetHandler(handler Handler) {
	if handler == nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.handler = handler
}

// Terminate invokes the termination handler
func (m *Manager) Terminate(result model.ValidationResult) {
	m.mu.RLock()
	handler := m.handler
	m.mu.RUnlock()

	handler(result)
}
