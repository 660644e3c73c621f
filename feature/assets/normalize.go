package assets

import (
	"fmt"
	"path"
	"strings"
)

// Normalizer turns an export metadata asset path into a bare asset identifier
// comparable with asset map keys and manifest hashes.
//
// Export metadata stores assets under a storage root ("assets/<hash>"), while
// the asset map and embedded manifest use the bare hash.
type Normalizer struct {
	// Prefix is the storage-root prefix to strip. Empty strips nothing.
	Prefix string
}

// NewNormalizer returns a Normalizer for the given storage-root prefix.
func NewNormalizer(prefix string) Normalizer {
	return Normalizer{Prefix: prefix}
}

// Normalize strips the storage-root prefix and the file extension from assetPath.
// When ext is set only ".<ext>" is stripped; otherwise any trailing extension is.
// Paths outside the storage root are rejected so a layout change fails loudly.
func (n Normalizer) Normalize(assetPath, ext string) (string, error) {
	if !strings.HasPrefix(assetPath, n.Prefix) {
		return "", fmt.Errorf("asset path %q is outside storage root %q", assetPath, n.Prefix)
	}
	id := strings.TrimPrefix(assetPath, n.Prefix)

	if ext != "" {
		id = strings.TrimSuffix(id, "."+strings.TrimPrefix(ext, "."))
	} else {
		id = strings.TrimSuffix(id, path.Ext(id))
	}

	if id == "" {
		return "", fmt.Errorf("asset path %q has no identifier", assetPath)
	}
	return id, nil
}
