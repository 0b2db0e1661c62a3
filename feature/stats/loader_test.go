package stats

import (
	"context"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoader(t *testing.T) {
	feature := NewFeature(&fakeStore{items: testItems()}, zap.NewNop(), Config{WarmUp: true}, nil)

	assert.Equal(t, "stats", feature.Name())
	assert.True(t, feature.IsEnabled())
	assert.NotNil(t, feature.Coordinator())

	app := fiber.New()
	assert.NoError(t, feature.Load(app))

}

func TestLoader_StartPrimesAndWarms(t *testing.T) {
	modTime := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	fs := &fakeStore{items: testItems(), modTime: modTime}
	clock := clockwork.NewFakeClock()
	feature := newFeature(fs, zap.NewNop(), Config{WarmUp: true}, nil, clock)
	co := feature.Coordinator()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	feature.Start(ctx)

	wm, ok := co.detector.Watermark()
	require.True(t, ok)
	assert.Equal(t, modTime, wm)

	assert.Eventually(t, co.cache.IsValid, time.Second, 5*time.Millisecond)

	res, err := co.Serve(ctx)
	require.NoError(t, err)
	assert.True(t, res.Hit, "first request after warm-up is served from cache")
}

func TestLoader_StartWithoutWarmUp(t *testing.T) {
	fs := &fakeStore{items: testItems(), modTime: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	feature := newFeature(fs, zap.NewNop(), Config{}, nil, clockwork.NewFakeClock())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	feature.Start(ctx)

	res, err := feature.Coordinator().Serve(ctx)
	require.NoError(t, err)
	assert.False(t, res.Hit)
}

func TestConfig_Defaults(t *testing.T) {
	var cfg Config
	assert.Equal(t, "5m0s", cfg.TTL().String())
	assert.Equal(t, "30s", cfg.PollInterval().String())
	assert.Zero(t, cfg.RefreshTimeout())

	cfg = Config{TTLSeconds: 10, PollIntervalSeconds: 2, RefreshTimeoutSeconds: 5}
	assert.Equal(t, "10s", cfg.TTL().String())
	assert.Equal(t, "2s", cfg.PollInterval().String())
	assert.Equal(t, "5s", cfg.RefreshTimeout().String())
}
