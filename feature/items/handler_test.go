package items

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"catalog/feature/items/models"
	"catalog/feature/items/store"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(items []models.Item) (*fiber.App, *memoryStore) {
	app := fiber.New()
	ms := &memoryStore{items: items, nextID: 100}
	NewHandler(NewService(ms, zap.NewNop())).RegisterRoutes(app)
	return app, ms
}

func TestHandleList(t *testing.T) {
	app, _ := setupTestApp(sampleItems())

	resp, err := app.Test(httptest.NewRequest("GET", "/api/items?limit=2&sortBy=price&sortOrder=desc", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body models.ListResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Data, 2)
	assert.Equal(t, "Laptop Pro", body.Data[0].Name)
	assert.Equal(t, 3, body.Pagination.TotalPages)
	assert.True(t, body.Pagination.HasNextPage)
}

func TestHandleList_Corrupted(t *testing.T) {
	app, ms := setupTestApp(nil)
	ms.listErr = store.ErrCorrupted

	resp, err := app.Test(httptest.NewRequest("GET", "/api/items", nil))
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Data file is corrupted", body["error"])
}

func TestHandleGet(t *testing.T) {
	app, _ := setupTestApp(sampleItems())

	tests := []struct {
		name string
		path string
		want int
	}{
		{"Found", "/api/items/3", 200},
		{"NotFound", "/api/items/77", 404},
		{"BadID", "/api/items/abc", 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", tt.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestHandleCreate(t *testing.T) {
	app, ms := setupTestApp(nil)

	req := httptest.NewRequest("POST", "/api/items", strings.NewReader(`{"name":"Lamp","category":"Home","price":25}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)

	var item models.Item
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&item))
	assert.Equal(t, int64(101), item.ID)
	assert.Equal(t, "Lamp", item.Name)
	assert.Len(t, ms.items, 1)
}

func TestHandleCreate_Rejected(t *testing.T) {
	app, ms := setupTestApp(nil)

	tests := []struct {
		name        string
		body        string
		contentType string
		want        int
	}{
		{"WrongContentType", `{"name":"x"}`, "text/plain", 415},
		{"NotJSON", `{"name":`, "application/json", 400},
		{"NotObject", `[1,2]`, "application/json", 400},
		{"Invalid", `{"price":"free"}`, "application/json", 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/items", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", tt.contentType)
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}

	req := httptest.NewRequest("POST", "/api/items", strings.NewReader(`{"price":"free"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	var body models.ValidationErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Validation Error", body.Error)
	assert.Len(t, body.Details, 2)
	assert.Empty(t, ms.items)
}

func TestHandleCreate_RateLimited(t *testing.T) {
	app, _ := setupTestApp(nil)

	var last int
	for i := 0; i <= createRateLimit; i++ {
		req := httptest.NewRequest("POST", "/api/items", strings.NewReader(`{"name":"spam"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		last = resp.StatusCode
	}
	assert.Equal(t, 429, last)
}
