package assets

import (
	"context"
	"fmt"
	"time"

	"asset-verifier/core/reconcile"
	"asset-verifier/feature/assets/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultReportLimit caps history listings when no limit is given.
const DefaultReportLimit = 20

// ReportStore persists verification outcomes.
type ReportStore struct {
	db *gorm.DB
}

// NewReportStore creates a store over db.
func NewReportStore(db *gorm.DB) *ReportStore {
	return &ReportStore{db: db}
}

// Migrate creates or updates the report table.
func (s *ReportStore) Migrate() error {
	if err := s.db.AutoMigrate(&models.Report{}); err != nil {
		return fmt.Errorf("failed to migrate report table: %w", err)
	}
	return nil
}

// Save stores a report.
func (s *ReportStore) Save(ctx context.Context, report *models.Report) error {
	if err := s.db.WithContext(ctx).Create(report).Error; err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

// List returns the most recent reports, newest first.
func (s *ReportStore) List(ctx context.Context, limit int) ([]models.Report, error) {
	if limit <= 0 {
		limit = DefaultReportLimit
	}

	var reports []models.Report
	err := s.db.WithContext(ctx).
		Order("created_at desc").
		Limit(limit).
		Find(&reports).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return reports, nil
}

// NewReport builds the stored form of a verification result.
func NewReport(source string, opts Options, res *reconcile.Result) *models.Report {
	return &models.Report{
		ID:                   uuid.NewString(),
		CreatedAt:            time.Now().UTC(),
		Source:               source,
		Platform:             string(opts.Platform),
		ExportPath:           opts.ExportPath,
		EmbeddedManifestPath: opts.EmbeddedManifestPath,
		Verdict:              string(res.Verdict),
		FullCount:            res.Summary.Full,
		EmbeddedCount:        res.Summary.Embedded,
		PlatformCount:        res.Summary.Platform,
		CoveredCount:         res.Summary.Covered,
		RedundantCount:       res.Summary.Redundant,
		Orphaned:             res.Orphaned,
	}
}
