package auth_test

import (
	"net/http/httptest"
	"testing"

	"catalog/core/middleware/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(cfg auth.Config) *fiber.App {
	app := fiber.New()
	app.Use(auth.New(cfg))
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestAuth(t *testing.T) {
	tests := []struct {
		name   string
		cfg    auth.Config
		path   string
		header string
		want   int
	}{
		{"Disabled", auth.Config{}, "/", "", 200},
		{"MissingKey", auth.Config{ApiKey: "secret"}, "/", "", 401},
		{"WrongKey", auth.Config{ApiKey: "secret"}, "/", "nope", 401},
		{"HeaderKey", auth.Config{ApiKey: "secret"}, "/", "secret", 200},
		{"QueryKey", auth.Config{ApiKey: "secret"}, "/?api_key=secret", "", 200},
		{"Skipped", auth.Config{ApiKey: "secret", Next: func(c *fiber.Ctx) bool { return c.Path() == "/health" }}, "/health", "", 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			if tt.header != "" {
				req.Header.Set(auth.Header, tt.header)
			}
			resp, err := newApp(tt.cfg).Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}
