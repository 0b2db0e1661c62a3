package stats

import (
	"context"
	"errors"
	"sync"
	"time"

	"catalog/feature/items/store"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

// ModTimeReader exposes the modification time of the watched collection.
type ModTimeReader interface {
	ModTime(ctx context.Context) (time.Time, error)
}

// Invalidator is notified when a change is detected.
type Invalidator interface {
	Invalidate()
}

// Detector polls the collection modification time and invalidates the cache
// when it advances past the last observed watermark.
type Detector struct {
	source   ModTimeReader
	target   Invalidator
	interval time.Duration
	clock    clockwork.Clock
	logger   *zap.Logger

	mu        sync.Mutex
	watermark time.Time
	observed  bool
}

// NewDetector creates a detector polling source every interval.
func NewDetector(source ModTimeReader, target Invalidator, interval time.Duration, clock clockwork.Clock, logger *zap.Logger) *Detector {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Detector{
		source:   source,
		target:   target,
		interval: interval,
		clock:    clock,
		logger:   logger,
	}
}

// Poll checks the modification time once and reports whether it invalidated.
// A missing or unreadable source counts as no change and keeps the watermark.
// The source is read outside the lock; the watermark only moves forward.
func (d *Detector) Poll(ctx context.Context) bool {
	current, err := d.source.ModTime(ctx)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			d.logger.Debug("Change poll failed", zap.Error(err))
		}
		return false
	}

	d.mu.Lock()
	previous, observed := d.watermark, d.observed
	if !observed || current.After(previous) {
		d.watermark = current
		d.observed = true
	}
	d.mu.Unlock()

	if !observed || !current.After(previous) {
		return false
	}

	d.logger.Info("Data source modified, invalidating stats cache",
		zap.Time("previous", previous),
		zap.Time("current", current))
	d.target.Invalidate()
	return true
}

// Watermark returns the last observed modification time.
func (d *Detector) Watermark() (time.Time, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.watermark, d.observed
}

// Interval returns the poll period.
func (d *Detector) Interval() time.Duration {
	return d.interval
}

// Run polls every interval until ctx is cancelled.
func (d *Detector) Run(ctx context.Context) {
	ticker := d.clock.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			d.Poll(ctx)
		}
	}
}
