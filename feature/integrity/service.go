package integrity

import (
	"context"
	"errors"
	"fmt"

	"asset-verifier/feature/assets"
	"asset-verifier/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrPreflightFailed marks a completed preflight that found problems.
var ErrPreflightFailed = errors.New("export preflight found problems")

// ExportReport is the outcome of a preflight over one export.
type ExportReport struct {
	Source           string                 `json:"source" yaml:"source"`
	ExportPath       string                 `json:"export_path" yaml:"export_path"`
	MissingArtifacts []string               `json:"missing_artifacts" yaml:"missing_artifacts"`
	Platforms        *checks.PlatformReport `json:"platforms,omitempty" yaml:"platforms,omitempty"`
	ManifestPath     string                 `json:"embedded_manifest_path,omitempty" yaml:"embedded_manifest_path,omitempty"`
	ManifestFound    *bool                  `json:"manifest_found,omitempty" yaml:"manifest_found,omitempty"`
	// Platform is the platform the export must carry, if any.
	Platform string `json:"platform,omitempty" yaml:"platform,omitempty"`
}

// OK reports whether the export is ready to be verified.
// Platforms missing from the metadata only fail the preflight when
// Platform names one of them.
func (r *ExportReport) OK() bool {
	if len(r.MissingArtifacts) > 0 {
		return false
	}
	if r.ManifestFound != nil && !*r.ManifestFound {
		return false
	}
	if r.Platform != "" && r.Platforms != nil {
		for _, p := range r.Platforms.Missing {
			if p == r.Platform {
				return false
			}
		}
	}
	return true
}

// ExportRequest selects what the preflight looks at.
// An empty ManifestPath or Platform skips that check.
type ExportRequest struct {
	ExportPath   string
	ManifestPath string
	Platform     string
}

// Service handles integrity checks.
type Service struct {
	source assets.Source
	logger *zap.Logger
	db     *gorm.DB
}

// NewService creates a new integrity service reading exports from source.
// db may be nil, in which case the history check reports an error.
func NewService(source assets.Source, logger *zap.Logger, db *gorm.DB) *Service {
	return &Service{
		source: source,
		logger: logger,
		db:     db,
	}
}

// CheckExport runs the preflight for one export.
func (s *Service) CheckExport(ctx context.Context, req ExportRequest) (*ExportReport, error) {
	report := &ExportReport{
		Source:     s.source.Name(),
		ExportPath: req.ExportPath,
	}

	if req.Platform != "" {
		platform, err := assets.ParsePlatform(req.Platform)
		if err != nil {
			return nil, err
		}
		report.Platform = string(platform)
	}

	missing, err := checks.CheckArtifacts(ctx, s.source, req.ExportPath)
	if err != nil {
		return nil, err
	}
	report.MissingArtifacts = missing

	if !contains(missing, assets.MetadataFile) {
		platforms, err := checks.CheckPlatforms(ctx, s.source, req.ExportPath)
		if err != nil {
			return nil, err
		}
		report.Platforms = platforms
	}

	if req.ManifestPath != "" {
		found, err := checks.CheckManifest(ctx, s.source, req.ManifestPath)
		if err != nil {
			return nil, err
		}
		report.ManifestPath = req.ManifestPath
		report.ManifestFound = &found
	}

	if report.OK() {
		s.logger.Debug("Export preflight passed", zap.String("export_path", req.ExportPath))
	} else {
		s.logger.Warn("Export preflight found problems",
			zap.String("export_path", req.ExportPath),
			zap.Strings("missing_artifacts", report.MissingArtifacts),
		)
	}

	return report, nil
}

// CheckHistory verifies the history table schema.
func (s *Service) CheckHistory() (*checks.HistoryReport, error) {
	if s.db == nil {
		return nil, fmt.Errorf("history database is not configured")
	}
	return checks.CheckHistorySchema(s.db)
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
