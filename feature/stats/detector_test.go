package stats

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"catalog/feature/items/store"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeModTime struct {
	mu  sync.Mutex
	t   time.Time
	err error
}

func (f *fakeModTime) ModTime(ctx context.Context) (time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t, f.err
}

func (f *fakeModTime) set(t time.Time, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.t, f.err = t, err
}

type countingInvalidator struct {
	n atomic.Int32
}

func (c *countingInvalidator) Invalidate() {
	c.n.Add(1)
}

func TestDetector_Poll(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	src := &fakeModTime{t: base}
	target := &countingInvalidator{}
	d := NewDetector(src, target, 30*time.Second, clockwork.NewFakeClock(), zap.NewNop())
	ctx := context.Background()

	assert.False(t, d.Poll(ctx), "first observation only records the watermark")
	wm, ok := d.Watermark()
	require.True(t, ok)
	assert.Equal(t, base, wm)

	assert.False(t, d.Poll(ctx), "unchanged time")

	src.set(base.Add(time.Second), nil)
	assert.True(t, d.Poll(ctx))
	assert.Equal(t, int32(1), target.n.Load())

	src.set(base, nil)
	assert.False(t, d.Poll(ctx), "older time is not a change")

	wm, _ = d.Watermark()
	assert.Equal(t, base.Add(time.Second), wm, "watermark never moves back")

	src.set(time.Time{}, errors.New("permission denied"))
	assert.False(t, d.Poll(ctx))
	wm, _ = d.Watermark()
	assert.Equal(t, base.Add(time.Second), wm, "failed read keeps the watermark")

	assert.Equal(t, int32(1), target.n.Load())
}

// slowModTime blocks ModTime until release is closed.
type slowModTime struct {
	t       time.Time
	entered chan struct{}
	release chan struct{}
}

func (s *slowModTime) ModTime(ctx context.Context) (time.Time, error) {
	s.entered <- struct{}{}
	<-s.release
	return s.t, nil
}

func TestDetector_SlowSourceDoesNotHoldLock(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	src := &slowModTime{t: base, entered: make(chan struct{}, 1), release: make(chan struct{})}
	target := &countingInvalidator{}
	d := NewDetector(src, target, time.Second, clockwork.NewFakeClock(), zap.NewNop())

	done := make(chan bool, 1)
	go func() {
		done <- d.Poll(context.Background())
	}()
	<-src.entered

	read := make(chan struct{})
	go func() {
		d.Watermark()
		close(read)
	}()

	select {
	case <-read:
	case <-time.After(time.Second):
		t.Fatal("watermark read blocked behind a slow poll")
	}

	close(src.release)
	assert.False(t, <-done)
	wm, ok := d.Watermark()
	require.True(t, ok)
	assert.Equal(t, base, wm)
}

func TestDetector_PollMissingSource(t *testing.T) {
	src := &fakeModTime{err: store.ErrNotFound}
	target := &countingInvalidator{}
	d := NewDetector(src, target, time.Second, clockwork.NewFakeClock(), zap.NewNop())

	assert.False(t, d.Poll(context.Background()))
	_, ok := d.Watermark()
	assert.False(t, ok)

	src.set(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), nil)
	assert.False(t, d.Poll(context.Background()), "first appearance sets the watermark")
	assert.Zero(t, target.n.Load())
}

func TestDetector_Run(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	src := &fakeModTime{t: base}
	target := &countingInvalidator{}
	clock := clockwork.NewFakeClock()
	d := NewDetector(src, target, 30*time.Second, clock, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	d.Poll(ctx)

	done := make(chan struct{})
	go func() {
		d.Run(ctx)
		close(done)
	}()

	clock.BlockUntil(1)
	src.set(base.Add(time.Minute), nil)
	clock.Advance(30 * time.Second)

	assert.Eventually(t, func() bool {
		return target.n.Load() == 1
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancellation")
	}
}
