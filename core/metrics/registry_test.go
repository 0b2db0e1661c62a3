package metrics

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Add(t *testing.T) {
	ctx := context.Background()
	r := NewRegistry()

	r.Add(ctx, "stats_cache_hit", 1)
	r.Add(ctx, "stats_cache_hit", 2)
	r.Add(ctx, "stats_cache_hit", -5)
	r.Add(ctx, "dangling", 1, "label")

	assert.Equal(t, 3.0, testutil.ToFloat64(r.counters["stats_cache_hit"]))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.counters["dangling"]))
}

func TestRegistry_SetWithLabels(t *testing.T) {
	ctx := context.Background()
	r := NewRegistry()

	r.Set(ctx, "items", 10, "store", "file")
	r.Set(ctx, "items", 4, "store", "file")
	r.Set(ctx, "items", 1, "other", "x")

	assert.Equal(t, 4.0, testutil.ToFloat64(r.gauges["items"].WithLabelValues("file")))
	assert.Equal(t, 1, testutil.CollectAndCount(r.gauges["items"]), "mismatched label names are dropped")
}

func TestRegistry_Handler(t *testing.T) {
	r := NewRegistry()
	r.Add(context.Background(), "stats_compute", 2)
	r.Set(context.Background(), "items", 7, "store", "file")

	app := fiber.New()
	app.Get("/metrics", r.Handler())

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/plain")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "stats_compute 2\n")
	assert.Contains(t, string(body), `items{store="file"} 7`)
	assert.Contains(t, string(body), "go_goroutines")
}
