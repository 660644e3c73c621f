package assets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"asset-verifier/core/reconcile"
)

// MetadataFile is the export artifact describing per-platform payloads.
const MetadataFile = "metadata.json"

// ExportMetadata is the part of metadata.json we read.
type ExportMetadata struct {
	FileMetadata map[string]*PlatformMetadata `json:"fileMetadata"`
}

// PlatformMetadata describes one platform's over-the-air payload.
type PlatformMetadata struct {
	Assets []ExportedAsset `json:"assets"`
}

// ExportedAsset is one asset entry of a platform payload.
type ExportedAsset struct {
	Path string `json:"path"`
	Ext  string `json:"ext"`
}

// Platforms returns the platform keys present in the metadata, sorted.
func (m *ExportMetadata) Platforms() []string {
	keys := make([]string, 0, len(m.FileMetadata))
	for k := range m.FileMetadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// LoadMetadata reads and parses the export's metadata.json.
func LoadMetadata(ctx context.Context, src Source, exportPath string) (*ExportMetadata, error) {
	data, err := readArtifact(ctx, src, exportPath, MetadataFile)
	if err != nil {
		return nil, err
	}

	var meta ExportMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, &FormatError{Path: src.Join(exportPath, MetadataFile), Err: err}
	}
	if meta.FileMetadata == nil {
		return nil, &FormatError{Path: src.Join(exportPath, MetadataFile), Err: errors.New("fileMetadata is not a JSON object")}
	}
	return &meta, nil
}

// ReadPlatformAssets returns the identifiers shipped in the platform's
// over-the-air payload, normalized with norm.
func ReadPlatformAssets(ctx context.Context, src Source, exportPath string, platform Platform, norm Normalizer) (reconcile.AssetSet, error) {
	meta, err := LoadMetadata(ctx, src, exportPath)
	if err != nil {
		return nil, err
	}

	payload, ok := meta.FileMetadata[string(platform)]
	if !ok {
		return nil, &UnsupportedPlatformError{Platform: string(platform)}
	}
	if payload == nil {
		return nil, &FormatError{
			Path: src.Join(exportPath, MetadataFile),
			Err:  fmt.Errorf("fileMetadata.%s is not a JSON object", platform),
		}
	}

	set := reconcile.NewAssetSet()
	for i, asset := range payload.Assets {
		id, err := norm.Normalize(asset.Path, asset.Ext)
		if err != nil {
			return nil, &FormatError{
				Path: src.Join(exportPath, MetadataFile),
				Err:  fmt.Errorf("fileMetadata.%s.assets[%d]: %w", platform, i, err),
			}
		}
		set.Add(id)
	}
	return set, nil
}
