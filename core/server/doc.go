// Package server holds the HTTP server configuration.
//
// The start command builds the Fiber application from this configuration:
// the listen port, the API key guarding every route, and the TTL of the
// verification result cache shared by concurrent identical requests.
package server
