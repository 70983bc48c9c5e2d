package server_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"table-sync/core/server"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Address(t *testing.T) {
	tests := []struct {
		name string
		port string
		want string
	}{
		{"Port only", "8080", ":8080"},
		{"Host and port", "127.0.0.1:9000", "127.0.0.1:9000"},
		{"Leading colon", ":7000", ":7000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := server.Config{Port: tt.port}
			assert.Equal(t, tt.want, c.Address())
		})
	}
}

func TestConfig_Auth(t *testing.T) {
	assert.False(t, server.Config{}.AuthEnabled())
	assert.True(t, server.Config{ApiKey: "secret"}.AuthEnabled())
}

func TestConfig_Timeouts(t *testing.T) {
	c := server.Config{ReadTimeoutSeconds: 5, WriteTimeoutSeconds: 60}
	assert.Equal(t, 5*time.Second, c.ReadTimeout())
	assert.Equal(t, time.Minute, c.WriteTimeout())
}

func TestConfig_CORS(t *testing.T) {
	preflight := func(t *testing.T, c server.Config, origin string) string {
		t.Helper()
		app := fiber.New()
		app.Use(cors.New(c.CORS()))
		app.Get("/sync-tables", func(c *fiber.Ctx) error { return c.JSON("done") })

		req := httptest.NewRequest("OPTIONS", "/sync-tables", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", "GET")
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp.Header.Get("Access-Control-Allow-Origin")
	}

	t.Run("Any Origin By Default", func(t *testing.T) {
		assert.Equal(t, "*", preflight(t, server.Config{}, "http://dashboard.local"))
	})

	t.Run("Listed Origins", func(t *testing.T) {
		c := server.Config{CORSOrigins: "http://a.local, http://b.local"}
		assert.Equal(t, "http://b.local", preflight(t, c, "http://b.local"))
		assert.Empty(t, preflight(t, c, "http://evil.local"))
	})
}
