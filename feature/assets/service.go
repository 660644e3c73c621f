package assets

import (
	"context"
	"errors"
	"time"

	"asset-verifier/core/reconcile"
	"asset-verifier/feature/assets/models"

	"go.uber.org/zap"
)

// ErrHistoryDisabled is returned by history operations when no database is configured.
var ErrHistoryDisabled = errors.New("verification history is disabled (no database)")

// Service runs verifications and records their outcomes.
type Service struct {
	logger   *zap.Logger
	store    *ReportStore
	cacheTTL time.Duration
}

// NewService creates a new assets service.
// store may be nil, in which case history is disabled.
// A positive cacheTTL reuses results for identical inputs.
func NewService(logger *zap.Logger, store *ReportStore, cacheTTL time.Duration) *Service {
	return &Service{
		logger:   logger,
		store:    store,
		cacheTTL: cacheTTL,
	}
}

// Verify reconciles the embedded manifest, the full export and the platform
// payload read from src. A fail verdict is returned as a result, not an error.
func (s *Service) Verify(ctx context.Context, src Source, opts Options) (*reconcile.Result, error) {
	l := s.logger.With(
		zap.String("source", src.Name()),
		zap.String("platform", opts.Platform.String()),
	)
	l.Debug("Resolved options",
		zap.String("export_path", opts.ExportPath),
		zap.String("embedded_manifest_path", opts.EmbeddedManifestPath),
		zap.String("hash_field", opts.HashField),
		zap.String("asset_prefix", opts.AssetPrefix),
	)

	job := s.job(src, opts)

	res, err := reconcile.GetOrBuild(ctx, job)
	if err != nil {
		return nil, err
	}

	l.Debug("Embedded asset set", zap.Strings("assets", res.Sets.Embedded.Sorted()))
	l.Debug("Full asset set", zap.Strings("assets", res.Sets.Full.Sorted()))
	l.Debug("Platform asset set", zap.Strings("assets", res.Sets.Platform.Sorted()))

	if res.Passed() {
		l.Info("All exported assets are covered",
			zap.Int("full", res.Summary.Full),
			zap.Int("redundant", res.Summary.Redundant),
		)
	} else {
		l.Warn("Orphaned assets detected",
			zap.Int("orphaned", res.Summary.Orphaned),
			zap.Strings("assets", res.Orphaned),
		)
	}

	return res, nil
}

// Invalidate drops any cached result for src and opts, so the next Verify
// reads the artifacts again.
func (s *Service) Invalidate(src Source, opts Options) {
	reconcile.InvalidateCache(s.job(src, opts))
	s.logger.Debug("Invalidated cached verification",
		zap.String("source", src.Name()),
		zap.String("export_path", opts.ExportPath),
	)
}

func (s *Service) job(src Source, opts Options) *reconcile.Job {
	return &reconcile.Job{
		Adapter:  NewAdapter(src, opts),
		CacheTTL: s.cacheTTL,
	}
}

// Record stores the outcome of a verification.
func (s *Service) Record(ctx context.Context, source string, opts Options, res *reconcile.Result) (*models.Report, error) {
	if s.store == nil {
		return nil, ErrHistoryDisabled
	}
	report := NewReport(source, opts, res)
	if err := s.store.Save(ctx, report); err != nil {
		return nil, err
	}
	s.logger.Debug("Recorded verification", zap.String("report_id", report.ID))
	return report, nil
}

// Reports lists recorded verifications, newest first.
func (s *Service) Reports(ctx context.Context, limit int) ([]models.Report, error) {
	if s.store == nil {
		return nil, ErrHistoryDisabled
	}
	return s.store.List(ctx, limit)
}

// HistoryEnabled reports whether outcomes can be recorded.
func (s *Service) HistoryEnabled() bool {
	return s.store != nil
}
