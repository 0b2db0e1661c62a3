package stats

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	itemmodels "catalog/feature/items/models"
	"catalog/feature/items/store"
	"catalog/feature/stats/models"

	metrics "github.com/bool64/stats"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ItemLister reads the full item collection.
type ItemLister interface {
	List(ctx context.Context) ([]itemmodels.Item, error)
}

// Result is the outcome of Serve.
type Result struct {
	Snapshot *models.Snapshot
	// Hit is true when the snapshot came from the cache.
	Hit bool
	// Age is the time since the snapshot was installed, set on hits.
	Age time.Duration
}

// Coordinator serves snapshots from the cache and recomputes them on a miss.
//
// Concurrent misses share one computation through a singleflight group keyed
// by cache generation, and computeMu keeps computations from different
// generations from overlapping. Waiting callers all receive the same snapshot.
type Coordinator struct {
	cache          *Cache
	detector       *Detector
	items          ItemLister
	clock          clockwork.Clock
	logger         *zap.Logger
	stat           metrics.Tracker
	refreshTimeout time.Duration

	group     singleflight.Group
	computeMu sync.Mutex
	aggregate func([]itemmodels.Item) *models.Snapshot
}

// NewCoordinator wires the cache, detector and item source together.
func NewCoordinator(cache *Cache, detector *Detector, items ItemLister, clock clockwork.Clock, logger *zap.Logger, tracker metrics.Tracker, refreshTimeout time.Duration) *Coordinator {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if tracker == nil {
		tracker = metrics.NoOp{}
	}
	return &Coordinator{
		cache:          cache,
		detector:       detector,
		items:          items,
		clock:          clock,
		logger:         logger,
		stat:           tracker,
		refreshTimeout: refreshTimeout,
		aggregate:      Aggregate,
	}
}

// Serve polls for changes, then answers from the cache or computes once.
func (co *Coordinator) Serve(ctx context.Context) (*Result, error) {
	co.detector.Poll(ctx)

	if entry, ok := co.cache.Lookup(); ok {
		return &Result{
			Snapshot: entry.Snapshot,
			Hit:      true,
			Age:      co.clock.Since(entry.UpdatedAt),
		}, nil
	}

	snap, err := co.refresh(ctx, co.cache.Generation())
	if err != nil {
		return nil, err
	}
	return &Result{Snapshot: snap}, nil
}

// ForceRefresh invalidates the cache and synchronously computes a new snapshot.
func (co *Coordinator) ForceRefresh(ctx context.Context) (*models.Snapshot, error) {
	if co.refreshTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, co.refreshTimeout)
		defer cancel()
	}

	gen := co.cache.invalidate()
	co.logger.Info("Stats cache invalidated for forced refresh", zap.Uint64("generation", gen))
	return co.refresh(ctx, gen)
}

// WarmUp computes the first snapshot in the background. The returned channel
// is closed once the attempt finishes; failures are only logged.
func (co *Coordinator) WarmUp(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		if _, err := co.refresh(ctx, co.cache.Generation()); err != nil {
			co.logger.Warn("Failed to warm stats cache", zap.Error(err))
			return
		}
		co.logger.Info("Stats cache warmed on startup")
	}()
	return done
}

// Start records the initial watermark, launches the poll loop and, if
// warmUp is set, the warm-up. Both stop with ctx.
func (co *Coordinator) Start(ctx context.Context, warmUp bool) {
	co.detector.Poll(ctx)
	go co.detector.Run(ctx)
	if warmUp {
		co.WarmUp(ctx)
	}
}

// Info returns the cache state for introspection.
func (co *Coordinator) Info() models.CacheInfo {
	info := co.cache.Info()
	info.FileWatching = fmt.Sprintf("polling every %s", co.detector.Interval())
	return info
}

// refresh joins or starts the flight for gen. The flight itself runs detached
// from ctx; ctx only bounds how long this caller waits.
func (co *Coordinator) refresh(ctx context.Context, gen uint64) (*models.Snapshot, error) {
	flightCtx := context.WithoutCancel(ctx)
	ch := co.group.DoChan(strconv.FormatUint(gen, 10), func() (any, error) {
		return co.compute(flightCtx, gen)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*models.Snapshot), nil
	}
}

func (co *Coordinator) compute(ctx context.Context, gen uint64) (*models.Snapshot, error) {
	co.computeMu.Lock()
	defer co.computeMu.Unlock()

	// A flight that finished while we waited may already have installed a snapshot.
	if snap, ok := co.cache.Get(); ok {
		return snap, nil
	}

	co.cache.SetCalculating(true)

	items, err := co.items.List(ctx)
	if errors.Is(err, store.ErrNotFound) {
		co.logger.Info("Item store not found, computing empty stats")
		items, err = nil, nil
	}
	if err != nil {
		co.cache.SetCalculating(false)
		co.stat.Add(ctx, MetricComputeFailed, 1)
		co.logger.Error("Error refreshing stats cache", zap.Error(err))
		return nil, fmt.Errorf("failed to load items: %w", err)
	}

	snap := co.aggregate(items)
	snap.ComputedAt = co.clock.Now()
	co.stat.Add(ctx, MetricCompute, 1)

	if !co.cache.SetIfCurrent(gen, snap) {
		co.cache.SetCalculating(false)
		co.stat.Add(ctx, MetricDiscarded, 1)
		co.logger.Debug("Discarding stats computed before an invalidation", zap.Uint64("generation", gen))
	}

	co.logger.Info("Stats calculated",
		zap.Int("items", snap.Total),
		zap.Float64("duration_ms", snap.CalculationDurationMs))
	return snap, nil
}
