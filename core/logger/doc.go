// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance for both the command-line verifier
// and the HTTP service.
//
// # Context Awareness
//
// The WithRayID helper extracts the RayID from a Fiber context and attaches it to the
// log entry, ensuring that all logs related to a specific request can be correlated.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Encoding: json (production) or console (development)
//
// Logs are written to stderr so verification reports printed on stdout can be
// piped into other tools.
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Server started")
//
//	// From a command with --verbose:
//	log, _ := logger.NewForCLI(cfg.Log, verbose)
package logger
