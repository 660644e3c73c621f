// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation to protect endpoints.
//   - rayid: a unique Request ID (RayID) for every incoming request,
//     injected into the context and response headers for tracing.
//
// RayID must be registered first so every later log line carries it.
package middleware
