// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation protecting the trigger endpoints.
//   - rayid: a unique Request ID (RayID) per request, stored in the context and echoed in
//     the response headers for tracing.
//   - timing: the X-Process-Time response header.
package middleware
