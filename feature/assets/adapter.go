package assets

import (
	"context"
	"strings"

	"asset-verifier/core/reconcile"
)

// Adapter implements reconcile.Adapter over an export and a native manifest.
type Adapter struct {
	src  Source
	opts Options
	norm Normalizer
}

// NewAdapter creates an adapter reading from src with the resolved options.
func NewAdapter(src Source, opts Options) *Adapter {
	return &Adapter{
		src:  src,
		opts: opts,
		norm: NewNormalizer(opts.AssetPrefix),
	}
}

func (a *Adapter) Name() string {
	return a.src.Name()
}

func (a *Adapter) CacheKey() string {
	return strings.Join([]string{
		a.src.Location(),
		a.opts.ExportPath,
		a.opts.EmbeddedManifestPath,
		string(a.opts.Platform),
		a.opts.HashField,
		a.opts.AssetPrefix,
	}, "|")
}

func (a *Adapter) LoadEmbeddedSet(ctx context.Context) (reconcile.AssetSet, error) {
	return ReadEmbeddedManifest(ctx, a.src, a.opts.EmbeddedManifestPath, a.opts.HashField)
}

func (a *Adapter) LoadFullSet(ctx context.Context) (reconcile.AssetSet, error) {
	return ReadAssetMap(ctx, a.src, a.opts.ExportPath)
}

func (a *Adapter) LoadPlatformSet(ctx context.Context) (reconcile.AssetSet, error) {
	return ReadPlatformAssets(ctx, a.src, a.opts.ExportPath, a.opts.Platform, a.norm)
}
