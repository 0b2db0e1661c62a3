package items

import (
	"encoding/json"
	"errors"
	"time"

	"catalog/core/logger"
	"catalog/feature/items/models"
	"catalog/feature/items/store"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"go.uber.org/zap"
)

const (
	createRateLimit  = 10
	createRateWindow = time.Minute
)

// Handler handles HTTP requests for items.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the items routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/api/items")
	group.Get("/", h.HandleList)
	group.Get("/:id", h.HandleGet)
	group.Post("/", limiter.New(limiter.Config{
		Max:        createRateLimit,
		Expiration: createRateWindow,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Rate limit exceeded. Too many requests.",
			})
		},
	}), h.HandleCreate)
}

// HandleList returns a filtered, sorted page of items.
// @Summary List Items
// @Description Paginated item listing with case-insensitive search on name and category.
// @Tags items
// @Produce json
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 20, max 100)"
// @Param q query string false "Search term"
// @Param sortBy query string false "name, category, price or id"
// @Param sortOrder query string false "asc or desc"
// @Success 200 {object} models.ListResponse
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/items [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	q := models.ListQuery{
		Page:      c.QueryInt("page", 1),
		Limit:     c.QueryInt("limit", defaultLimit),
		Query:     c.Query("q"),
		SortBy:    c.Query("sortBy", "name"),
		SortOrder: c.Query("sortOrder", "asc"),
	}

	resp, err := h.service.List(c.UserContext(), q)
	if err != nil {
		l.Error("Item listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": storeErrorMessage(err)})
	}
	return c.JSON(resp)
}

// HandleGet returns a single item.
// @Summary Get Item
// @Tags items
// @Produce json
// @Param id path int true "Item ID"
// @Success 200 {object} models.Item
// @Failure 400 {object} map[string]string "Invalid ID"
// @Failure 404 {object} map[string]string "Item not found"
// @Router /api/items/{id} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid item id"})
	}

	item, err := h.service.Get(c.UserContext(), int64(id))
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Item not found"})
		}
		l.Error("Item lookup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": storeErrorMessage(err)})
	}
	return c.JSON(item)
}

// HandleCreate validates and stores a new item.
// @Summary Create Item
// @Tags items
// @Accept json
// @Produce json
// @Param item body object true "name (required), category, price"
// @Success 201 {object} models.Item
// @Failure 400 {object} models.ValidationErrorResponse
// @Failure 415 {object} map[string]string "Unsupported Media Type"
// @Failure 429 {object} map[string]string "Rate limited"
// @Router /api/items [post]
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	if !c.Is("json") {
		return c.Status(fiber.StatusUnsupportedMediaType).JSON(fiber.Map{
			"error": "Content-Type must be application/json",
		})
	}

	var payload map[string]any
	if err := json.Unmarshal(c.Body(), &payload); err != nil || payload == nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ValidationErrorResponse{
			Error:     "Validation Error",
			Message:   "Request body must be a valid JSON object",
			Details:   []models.FieldError{{Field: "body", Message: "Request body must be a valid JSON object"}},
			Timestamp: time.Now().UTC(),
		})
	}

	item, err := h.service.Create(c.UserContext(), payload)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			return c.Status(fiber.StatusBadRequest).JSON(models.ValidationErrorResponse{
				Error:     "Validation Error",
				Message:   verr.Error(),
				Details:   verr.Details,
				Timestamp: time.Now().UTC(),
			})
		}
		l.Error("Item creation failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": storeErrorMessage(err)})
	}

	return c.Status(fiber.StatusCreated).JSON(item)
}

// storeErrorMessage hides backend details except for corruption, which operators must act on.
func storeErrorMessage(err error) string {
	if errors.Is(err, store.ErrCorrupted) {
		return "Data file is corrupted"
	}
	return "Internal Server Error"
}
