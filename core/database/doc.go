// Package database connects to the optional verification history database.
//
// Two drivers are supported through GORM:
//   - sqlite: a local file (default asset-verifier.db), suited to CI runners.
//   - mysql: a shared server, suited to the HTTP service.
//
// The connection is optional. Commands log a warning and continue without
// history when Connect fails.
package database
