package integrity

import (
	"asset-verifier/core/logger"
	"asset-verifier/feature/assets"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service  *Service
	defaults assets.Config
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, defaults assets.Config) *Handler {
	return &Handler{service: service, defaults: defaults}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/", h.HandleIntegrityCheck)
	group.Get("/export", h.HandleExportCheck)
	group.Get("/history", h.HandleHistoryCheck)
}

// HandleIntegrityCheck triggers all integrity checks.
// @Summary Run All Integrity Checks
// @Description Runs the export preflight against the configured export and the history schema check.
// @Tags integrity
// @Produce json
// @Success 200 {object} map[string]interface{} "Combined Report"
// @Router /integrity [get]
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")

	report := make(map[string]interface{})

	if exportReport, err := h.service.CheckExport(c.Context(), h.exportRequest(c)); err != nil {
		report["export"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["export"] = map[string]interface{}{"status": status(exportReport.OK()), "report": exportReport}
	}

	if historyReport, err := h.service.CheckHistory(); err != nil {
		report["history"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["history"] = map[string]interface{}{"status": status(historyReport.Matched), "report": historyReport}
	}

	return c.JSON(report)
}

// HandleExportCheck runs the export preflight.
// @Summary Check Export
// @Description Checks that an export carries its asset map and metadata, and which platforms it describes.
// @Tags integrity
// @Produce json
// @Param export_path query string false "Export path in the bucket"
// @Param embedded_manifest_path query string false "Embedded manifest to look for"
// @Param platform query string false "Platform the export must carry"
// @Success 200 {object} ExportReport "Export Report"
// @Failure 400 {object} map[string]string "Unsupported platform"
// @Failure 422 {object} map[string]string "Malformed metadata"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/export [get]
func (h *Handler) HandleExportCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckExport(c.Context(), h.exportRequest(c))
	if err != nil {
		l.Error("Export check failed", zap.Error(err))
		return c.Status(assets.StatusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(report)
}

// HandleHistoryCheck checks the history table schema.
// @Summary Check History Schema
// @Tags integrity
// @Produce json
// @Success 200 {object} checks.HistoryReport "History Check Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/history [get]
func (h *Handler) HandleHistoryCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckHistory()
	if err != nil {
		l.Error("History schema check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(report)
}

func (h *Handler) exportRequest(c *fiber.Ctx) ExportRequest {
	src := h.service.source
	return ExportRequest{
		ExportPath:   src.Resolve("", c.Query("export_path", h.defaults.ExportPath)),
		ManifestPath: c.Query("embedded_manifest_path"),
		Platform:     c.Query("platform"),
	}
}

func status(ok bool) string {
	if ok {
		return "ok"
	}
	return "problems"
}
