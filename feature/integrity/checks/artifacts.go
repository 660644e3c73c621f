package checks

import (
	"context"
	"fmt"

	"asset-verifier/feature/assets"
)

// RequiredArtifacts lists the files an export must carry to be verified.
var RequiredArtifacts = []string{
	assets.AssetMapFile,
	assets.MetadataFile,
}

// CheckArtifacts returns the required artifacts missing from the export.
func CheckArtifacts(ctx context.Context, src assets.Source, exportPath string) ([]string, error) {
	missing := []string{}

	for _, name := range RequiredArtifacts {
		ok, err := src.Exists(ctx, src.Join(exportPath, name))
		if err != nil {
			return nil, fmt.Errorf("failed to check %s: %w", name, err)
		}
		if !ok {
			missing = append(missing, name)
		}
	}

	return missing, nil
}

// CheckManifest reports whether the native build's embedded manifest exists.
func CheckManifest(ctx context.Context, src assets.Source, manifestPath string) (bool, error) {
	ok, err := src.Exists(ctx, manifestPath)
	if err != nil {
		return false, fmt.Errorf("failed to check embedded manifest: %w", err)
	}
	return ok, nil
}
