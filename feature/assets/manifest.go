package assets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"asset-verifier/core/reconcile"
)

// embeddedManifest is the part of a native build's app.manifest we read.
type embeddedManifest struct {
	Assets []map[string]json.RawMessage `json:"assets"`
}

// ReadEmbeddedManifest returns the identifiers of the assets embedded into a
// native build. hashField names the asset field holding the identifier.
// A manifest without an assets array yields an empty set.
func ReadEmbeddedManifest(ctx context.Context, src Source, manifestPath, hashField string) (reconcile.AssetSet, error) {
	data, err := src.ReadFile(ctx, manifestPath)
	if err != nil {
		return nil, &IOError{Path: manifestPath, Err: err}
	}

	var manifest *embeddedManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, &FormatError{Path: manifestPath, Err: err}
	}
	if manifest == nil {
		return nil, &FormatError{Path: manifestPath, Err: errors.New("manifest is not a JSON object")}
	}

	set := reconcile.NewAssetSet()
	for i, asset := range manifest.Assets {
		raw, ok := asset[hashField]
		if !ok {
			continue
		}
		var hash string
		if err := json.Unmarshal(raw, &hash); err != nil {
			return nil, &FormatError{Path: manifestPath, Err: fmt.Errorf("assets[%d].%s is not a string", i, hashField)}
		}
		if hash != "" {
			set.Add(hash)
		}
	}

	return set, nil
}
