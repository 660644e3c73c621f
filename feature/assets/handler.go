package assets

import (
	"errors"

	"asset-verifier/core/logger"
	"asset-verifier/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for asset verification.
type Handler struct {
	service  *Service
	source   Source
	defaults Config
}

// NewHandler creates a new HTTP handler verifying exports read from source.
func NewHandler(service *Service, source Source, defaults Config) *Handler {
	return &Handler{service: service, source: source, defaults: defaults}
}

// VerifyRequest selects the export to verify. Empty fields use the configured defaults.
type VerifyRequest struct {
	ExportPath           string `json:"export_path"`
	EmbeddedManifestPath string `json:"embedded_manifest_path"`
	Platform             string `json:"platform"`
}

// VerifyResponse is returned for completed verifications, pass or fail.
type VerifyResponse struct {
	ReportView
	ReportID string `json:"report_id,omitempty"`
}

// RegisterRoutes registers the asset routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/assets")
	group.Post("/verify", h.HandleVerify)
	group.Get("/reports", h.HandleListReports)
}

// HandleVerify runs a verification against the configured bucket.
// @Summary Verify Native Assets
// @Description Checks that every asset of an export is either embedded in the native build or shipped in the platform payload.
// @Tags assets
// @Accept json
// @Produce json
// @Param request body VerifyRequest false "Export selection"
// @Param fresh query boolean false "Bypass a cached result"
// @Success 200 {object} VerifyResponse "Verification result (pass or fail)"
// @Failure 400 {object} map[string]string "Unsupported platform"
// @Failure 422 {object} map[string]string "Missing or malformed artifact"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /assets/verify [post]
func (h *Handler) HandleVerify(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req VerifyRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
	}

	cfg := h.defaults
	if req.ExportPath != "" {
		cfg.ExportPath = req.ExportPath
	}
	if req.EmbeddedManifestPath != "" {
		cfg.EmbeddedManifestPath = req.EmbeddedManifestPath
	}
	if req.Platform != "" {
		cfg.Platform = req.Platform
	}

	opts, err := cfg.Resolve(h.source, "")
	if err != nil {
		return c.Status(StatusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}

	if c.QueryBool("fresh") {
		h.service.Invalidate(h.source, opts)
	}

	res, err := h.service.Verify(c.Context(), h.source, opts)
	if err != nil {
		l.Error("Asset verification failed", zap.Error(err))
		return c.Status(StatusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}

	resp := VerifyResponse{ReportView: NewReportView(opts, res, false)}
	if h.service.HistoryEnabled() {
		if report, err := h.service.Record(c.Context(), h.source.Name(), opts, res); err != nil {
			l.Warn("Failed to record verification", zap.Error(err))
		} else {
			resp.ReportID = report.ID
		}
	}

	return c.JSON(resp)
}

// HandleListReports lists recorded verifications.
// @Summary List Verification Reports
// @Tags assets
// @Produce json
// @Param limit query int false "Maximum number of reports"
// @Success 200 {array} models.Report "Reports, newest first"
// @Failure 503 {object} map[string]string "History disabled"
// @Router /assets/reports [get]
func (h *Handler) HandleListReports(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	reports, err := h.service.Reports(c.Context(), c.QueryInt("limit", DefaultReportLimit))
	if err != nil {
		if errors.Is(err, ErrHistoryDisabled) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
		}
		l.Error("Failed to list reports", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(reports)
}

// StatusFor maps a verification error to an HTTP status.
func StatusFor(err error) int {
	var (
		platformErr *UnsupportedPlatformError
		missingErr  *MissingArtifactError
		formatErr   *FormatError
		ioErr       *IOError
	)
	switch {
	case errors.As(err, &platformErr):
		return fiber.StatusBadRequest
	case errors.As(err, &missingErr), errors.As(err, &formatErr):
		return fiber.StatusUnprocessableEntity
	case errors.As(err, &ioErr) && storage.IsNotFound(ioErr.Err):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}
