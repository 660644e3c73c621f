package assets

import (
	"errors"
	"fmt"
)

// ErrOrphanedAssets marks a completed check that found orphaned assets.
// Readers never return it; callers wrap a fail verdict with it so
// "checked and found a problem" stays distinguishable from "could not check".
var ErrOrphanedAssets = errors.New("orphaned assets found")

// ExportHint is the remediation for exports missing their asset map or metadata.
const ExportHint = `generate the bundle with "npx expo export --dump-assetmap"`

// IOError reports a file that is missing or unreadable.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("failed to read %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// FormatError reports content that is not in the expected format.
type FormatError struct {
	Path string
	Err  error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid format in %s: %v", e.Path, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// MissingArtifactError reports an artifact absent from an otherwise valid export.
type MissingArtifactError struct {
	// Path is the full location that was checked.
	Path string
	// Artifact is the artifact file name (e.g., assetmap.json).
	Artifact string
	// Hint tells the user how to produce the artifact.
	Hint string
}

func (e *MissingArtifactError) Error() string {
	return fmt.Sprintf("the export bundle chosen does not contain %s (looked for %s); please %s", e.Artifact, e.Path, e.Hint)
}

// UnsupportedPlatformError reports a platform outside {ios, android}
// or absent from the export metadata.
type UnsupportedPlatformError struct {
	Platform string
}

func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("unsupported platform %q", e.Platform)
}
