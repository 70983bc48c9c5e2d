// Package logger provides a structured logging facility based on Zap.
//
// New builds a development configuration for the debug level and a production one otherwise,
// encoded as json or console.
//
// # Context Awareness
//
// WithRayID attaches the request's RayID from a Fiber context so every log line of a request
// can be correlated. WithJob scopes a logger to one job of a sync run.
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Server started")
//
//	l := logger.WithRayID(log, c)
//	l.Error("Handler failed", zap.Error(err))
package logger
