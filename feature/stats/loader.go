package stats

import (
	"context"

	"catalog/feature/items/store"

	metrics "github.com/bool64/stats"
	"github.com/gofiber/fiber/v2"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature and loader.Runner interfaces.
type Feature struct {
	cfg         Config
	coordinator *Coordinator
	handler     *Handler
}

// NewFeature creates a new Stats feature over s.
func NewFeature(s store.Store, logger *zap.Logger, cfg Config, tracker metrics.Tracker) *Feature {
	return newFeature(s, logger, cfg, tracker, clockwork.NewRealClock())
}

func newFeature(s store.Store, logger *zap.Logger, cfg Config, tracker metrics.Tracker, clock clockwork.Clock) *Feature {
	cache := NewCache(cfg.TTL(), clock, tracker)
	detector := NewDetector(s, cache, cfg.PollInterval(), clock, logger)
	co := NewCoordinator(cache, detector, s, clock, logger, tracker, cfg.RefreshTimeout())
	return &Feature{
		cfg:         cfg,
		coordinator: co,
		handler:     NewHandler(co, logger),
	}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "stats"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}

// Start begins change polling and, if configured, cache warm-up.
func (f *Feature) Start(ctx context.Context) {
	f.coordinator.Start(ctx, f.cfg.WarmUp)
}

// Coordinator exposes the coordinator for one-shot use outside HTTP.
func (f *Feature) Coordinator() *Coordinator {
	return f.coordinator
}
