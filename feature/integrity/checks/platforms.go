package checks

import (
	"context"

	"asset-verifier/feature/assets"
)

// PlatformReport lists which supported platforms the export metadata describes.
type PlatformReport struct {
	Present []string `json:"present" yaml:"present"`
	Missing []string `json:"missing" yaml:"missing"`
	// Unknown holds fileMetadata keys that are not supported platforms (e.g. web).
	Unknown []string `json:"unknown" yaml:"unknown"`
}

// CheckPlatforms reads the export metadata and reports platform coverage.
func CheckPlatforms(ctx context.Context, src assets.Source, exportPath string) (*PlatformReport, error) {
	meta, err := assets.LoadMetadata(ctx, src, exportPath)
	if err != nil {
		return nil, err
	}

	report := &PlatformReport{
		Present: []string{},
		Missing: []string{},
		Unknown: []string{},
	}

	supported := make(map[string]bool)
	for _, p := range assets.Platforms() {
		supported[string(p)] = true
		if _, ok := meta.FileMetadata[string(p)]; ok {
			report.Present = append(report.Present, string(p))
		} else {
			report.Missing = append(report.Missing, string(p))
		}
	}

	for _, key := range meta.Platforms() {
		if !supported[key] {
			report.Unknown = append(report.Unknown, key)
		}
	}

	return report, nil
}
