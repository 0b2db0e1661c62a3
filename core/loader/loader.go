package loader

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Feature is a self-contained module that registers routes on the application.
type Feature interface {
	Name() string
	IsEnabled() bool
	Load(app fiber.Router) error
}

// Runner is implemented by features that own background work (polling, warm-up).
// Start must not block; the work stops when ctx is cancelled.
type Runner interface {
	Start(ctx context.Context)
}

// Manager holds the registry of features.
type Manager struct {
	features []Feature
}

// NewManager creates an empty feature manager.
func NewManager() *Manager {
	return &Manager{}
}

// Register adds a feature to the registry.
func (m *Manager) Register(f Feature) {
	m.features = append(m.features, f)
}

// Features returns the registered features in registration order.
func (m *Manager) Features() []Feature {
	return m.features
}

// LoadAll loads every enabled feature onto the router.
func (m *Manager) LoadAll(app fiber.Router) error {
	for _, f := range m.features {
		if !f.IsEnabled() {
			continue
		}
		if err := f.Load(app); err != nil {
			return fmt.Errorf("failed to load feature %s: %w", f.Name(), err)
		}
	}
	return nil
}

// StartAll starts the background work of every enabled feature implementing Runner.
func (m *Manager) StartAll(ctx context.Context) {
	for _, f := range m.features {
		if !f.IsEnabled() {
			continue
		}
		if r, ok := f.(Runner); ok {
			r.Start(ctx)
		}
	}
}
