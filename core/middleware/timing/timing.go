package timing

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
)

// HeaderName is the response header carrying the handler duration, e.g. "0.0123 sec".
const HeaderName = "X-Process-Time"

// New creates a middleware reporting how long the rest of the chain took.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		c.Set(HeaderName, fmt.Sprintf("%0.4f sec", time.Since(start).Seconds()))
		return err
	}
}
