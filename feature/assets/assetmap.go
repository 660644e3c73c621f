package assets

import (
	"context"
	"encoding/json"
	"errors"

	"asset-verifier/core/reconcile"
)

// AssetMapFile is the export artifact keyed by asset identifier.
const AssetMapFile = "assetmap.json"

// ReadAssetMap returns every asset identifier referenced by the export,
// taken from the top-level keys of assetmap.json.
func ReadAssetMap(ctx context.Context, src Source, exportPath string) (reconcile.AssetSet, error) {
	data, err := readArtifact(ctx, src, exportPath, AssetMapFile)
	if err != nil {
		return nil, err
	}

	var assetMap map[string]json.RawMessage
	if err := json.Unmarshal(data, &assetMap); err != nil {
		return nil, &FormatError{Path: src.Join(exportPath, AssetMapFile), Err: err}
	}
	// null decodes without error; an empty object is the only valid empty map.
	if assetMap == nil {
		return nil, &FormatError{Path: src.Join(exportPath, AssetMapFile), Err: errors.New("asset map is not a JSON object")}
	}

	set := reconcile.NewAssetSet()
	for id := range assetMap {
		set.Add(id)
	}
	return set, nil
}

// readArtifact reads a required export artifact, failing with
// MissingArtifactError when the export does not contain it.
func readArtifact(ctx context.Context, src Source, exportPath, artifact string) ([]byte, error) {
	p := src.Join(exportPath, artifact)

	exists, err := src.Exists(ctx, p)
	if err != nil {
		return nil, &IOError{Path: p, Err: err}
	}
	if !exists {
		return nil, &MissingArtifactError{Path: p, Artifact: artifact, Hint: ExportHint}
	}

	data, err := src.ReadFile(ctx, p)
	if err != nil {
		return nil, &IOError{Path: p, Err: err}
	}
	return data, nil
}
