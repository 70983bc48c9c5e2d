// Package loader provides the plugin-like feature loading system.
//
// Each feature implements the Feature interface and contributes its routes to the Fiber app.
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// The Manager keeps features in registration order; LoadAll loads the enabled ones.
package loader
