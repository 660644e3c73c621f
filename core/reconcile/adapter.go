package reconcile

import "context"

// Adapter defines the interface for source-specific loading logic.
// Each adapter knows where its three sets live (local export, bucket export)
// and how to normalize identifiers so the sets are comparable.
type Adapter interface {
	// Name returns the unique name of this adapter (e.g., "local", "bucket").
	Name() string

	// CacheKey identifies the inputs this adapter reads, so two adapters
	// reading the same artifacts share a cache entry.
	CacheKey() string

	// LoadEmbeddedSet returns the identifiers embedded into the native build.
	LoadEmbeddedSet(ctx context.Context) (AssetSet, error)

	// LoadFullSet returns every identifier referenced by the export.
	LoadFullSet(ctx context.Context) (AssetSet, error)

	// LoadPlatformSet returns the identifiers shipped in the platform's
	// over-the-air payload, already normalized to the form of the other sets.
	LoadPlatformSet(ctx context.Context) (AssetSet, error)
}
