package server

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/middleware/cors"
)

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API. Empty disables the check.
	ApiKey string `mapstructure:"api_key" default:""`
	// ReadTimeoutSeconds bounds reading a request.
	ReadTimeoutSeconds int `mapstructure:"read_timeout_seconds" default:"30"`
	// WriteTimeoutSeconds bounds writing a response. Sync triggers answer only when the run ends.
	WriteTimeoutSeconds int `mapstructure:"write_timeout_seconds" default:"900"`
	// CORSOrigins is a comma separated list of origins allowed to call the API, "*" for any.
	CORSOrigins string `mapstructure:"cors_origins" default:"*"`
}

// Address returns the listen address for Port.
func (c Config) Address() string {
	if strings.Contains(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

// AuthEnabled reports whether requests must carry the API key.
func (c Config) AuthEnabled() bool {
	return c.ApiKey != ""
}

// ReadTimeout returns ReadTimeoutSeconds as a duration; zero means no limit.
func (c Config) ReadTimeout() time.Duration {
	return time.Duration(c.ReadTimeoutSeconds) * time.Second
}

// WriteTimeout returns WriteTimeoutSeconds as a duration; zero means no limit.
func (c Config) WriteTimeout() time.Duration {
	return time.Duration(c.WriteTimeoutSeconds) * time.Second
}

// CORS returns the cross-origin settings for the trigger routes.
// An empty CORSOrigins allows any origin.
func (c Config) CORS() cors.Config {
	origins := strings.TrimSpace(c.CORSOrigins)
	if origins == "" {
		origins = "*"
	}
	return cors.Config{
		AllowOrigins: origins,
		AllowMethods: "GET,DELETE,OPTIONS",
	}
}
