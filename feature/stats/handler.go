package stats

import (
	"errors"
	"fmt"
	"strconv"

	"catalog/core/logger"
	"catalog/feature/items/store"
	"catalog/feature/stats/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	headerCache           = "X-Cache"
	headerCacheAge        = "X-Cache-Age"
	headerCalculationTime = "X-Calculation-Time"
)

// Handler handles HTTP requests for stats.
type Handler struct {
	coordinator *Coordinator
	logger      *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(coordinator *Coordinator, logger *zap.Logger) *Handler {
	return &Handler{coordinator: coordinator, logger: logger}
}

// RegisterRoutes registers the stats routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/api/stats")
	group.Get("/", h.HandleStats)
	group.Post("/refresh", h.HandleRefresh)
	group.Get("/cache-info", h.HandleCacheInfo)
}

// HandleStats returns the cached statistics snapshot.
// @Summary Get Stats
// @Description Aggregate statistics over all items, served from a TTL cache.
// @Tags stats
// @Produce json
// @Success 200 {object} models.Snapshot
// @Header 200 {string} X-Cache "HIT or MISS"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/stats [get]
func (h *Handler) HandleStats(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	res, err := h.coordinator.Serve(c.UserContext())
	if err != nil {
		l.Error("Stats request failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": errorMessage(err)})
	}

	if res.Hit {
		c.Set(headerCache, "HIT")
		c.Set(headerCacheAge, strconv.FormatInt(int64(res.Age.Seconds()), 10))
	} else {
		c.Set(headerCache, "MISS")
		c.Set(headerCalculationTime, fmt.Sprintf("%gms", res.Snapshot.CalculationDurationMs))
	}
	return c.JSON(res.Snapshot)
}

// HandleRefresh invalidates the cache and recomputes the snapshot.
// @Summary Refresh Stats
// @Tags stats
// @Produce json
// @Success 200 {object} models.RefreshResponse
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/stats/refresh [post]
func (h *Handler) HandleRefresh(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	snap, err := h.coordinator.ForceRefresh(c.UserContext())
	if err != nil {
		l.Error("Stats refresh failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": errorMessage(err)})
	}

	return c.JSON(models.RefreshResponse{
		Message: "Stats cache refreshed successfully",
		Stats:   snap,
	})
}

// HandleCacheInfo reports the cache state.
// @Summary Stats Cache Info
// @Tags stats
// @Produce json
// @Success 200 {object} models.CacheInfo
// @Router /api/stats/cache-info [get]
func (h *Handler) HandleCacheInfo(c *fiber.Ctx) error {
	return c.JSON(h.coordinator.Info())
}

func errorMessage(err error) string {
	if errors.Is(err, store.ErrCorrupted) {
		return "Data file is corrupted"
	}
	return "Internal Server Error"
}
