// Package reconcile provides the three-way asset set reconciliation used to
// verify that a native build and its over-the-air export together carry every
// static asset the application references.
//
// # Model
//
// Three sets of asset identifiers take part in a pass:
//
//   - Embedded: assets baked into the native binary at build time.
//   - Full: every asset referenced anywhere in the export.
//   - Platform: assets shipped in the over-the-air payload for one platform.
//
// The engine computes covered = Embedded ∪ Platform and
// orphaned = Full − covered. The verdict is pass iff no asset is orphaned.
// Assets in both Embedded and Platform are reported as redundant; redundancy
// is never a failure.
//
// # Architecture
//
// 1. Engine: pure set logic (Reconcile) plus ReconcileAll, which loads the
//    inputs through an adapter.
//
// 2. Adapter: source-specific loading (local export directory, object storage
//    bucket). Adapters normalize identifiers so the sets are comparable.
//
// 3. Cache: TTL-based result cache with singleflight stampede protection,
//    used by the HTTP API where the same export is verified repeatedly.
//
// # Usage Example
//
//	job := &reconcile.Job{Adapter: adapter}
//	result, err := reconcile.ReconcileAll(ctx, job)
//	if err != nil {
//	    // could not check
//	}
//	if !result.Passed() {
//	    fmt.Println(result.Orphaned)
//	}
package reconcile
