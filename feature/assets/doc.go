// Package assets implements native asset verification.
//
// It checks that every static asset an exported app references is available at
// runtime, either embedded into the native binary or shipped in the platform's
// over-the-air payload. It reconciles three sources:
//  1. Embedded manifest: the app.manifest written by the native build (packagerHash per asset).
//  2. Asset map: assetmap.json of the export, keyed by asset hash.
//  3. Export metadata: metadata.json of the export, listing each platform's assets
//     under the "assets/" storage root.
//
// An asset in the asset map that is in neither the embedded manifest nor the
// platform payload is orphaned and fails the check.
//
// # Reconcile Adapter
//
// This package plugs into core/reconcile through Adapter, which reads the three
// sets from a Source (local filesystem or object storage bucket).
//
// # Errors
//
//   - IOError: a file is missing or unreadable.
//   - FormatError: a file is not the expected JSON.
//   - MissingArtifactError: the export lacks assetmap.json or metadata.json.
//   - UnsupportedPlatformError: the platform is not ios/android or not in the export.
//
// A fail verdict is not an error. Commands wrap it with ErrOrphanedAssets.
//
// # Components
//
//   - Service: runs verifications and records them in the history store.
//   - Handler: exposes HTTP endpoints for bucket exports.
//   - Feature: registers the handler with the application.
//
// # HTTP Endpoints
//
//   - POST /assets/verify : Verify an export stored in the bucket.
//   - GET /assets/reports : List recorded verifications.
package assets
