// Package integrity provides preflight checks for exports and the history store.
//
// Unlike the 'assets' package, which reconciles asset sets, this package only
// validates that the inputs of a verification are present and well formed.
//
// # Checks Provided
//
//   - Artifacts: the export carries assetmap.json and metadata.json.
//   - Platforms: which supported platforms the export metadata describes.
//   - Manifest: the native build's embedded manifest exists (optional).
//   - History: the verification_reports table matches the Report model.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/export : Runs the export preflight (?export_path, ?platform, ?embedded_manifest_path).
//   - GET /integrity/history : Runs the history schema check.
package integrity
