// Package server holds the HTTP server configuration.
//
// The start command builds the Fiber application from this configuration: listen address,
// request timeouts and the optional API key enforced by the auth middleware.
package server
