package tablesync

import (
	"errors"
	"net/url"

	"table-sync/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Legacy trigger routes and the family each one runs.
var legacyRoutes = map[string]string{
	"/sync-tables":                  FamilyTables,
	"/selective-column-sync-tables": FamilySelectiveColumn,
	"/combine-table-and-sync":       FamilyCombine,
}

// Handler handles HTTP requests for sync runs.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the sync routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/", h.HandleHello)
	for path, family := range legacyRoutes {
		app.Get(path, h.legacyTrigger(family))
	}

	app.Get("/families", h.HandleFamilies)
	app.Get("/sync/:family", h.HandleSync)
	app.Get("/check/:family", h.HandleCheck)

	reports := app.Group("/reports")
	reports.Get("/", h.HandleListReports)
	reports.Get("/*", h.HandleGetReport)
	reports.Delete("/*", h.HandleDeleteReport)
}

// HandleHello answers liveness probes.
// @Summary Hello
// @Tags sync
// @Produce json
// @Success 200 {object} map[string]string
// @Router / [get]
func (h *Handler) HandleHello(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"Hello": "World"})
}

// legacyTrigger runs family and answers "done" or "not done".
// @Summary Legacy Sync Triggers
// @Description Runs the tables, selective-column or combine family. The body is "done" only when every job succeeded.
// @Tags sync
// @Produce json
// @Success 200 {string} string "done | not done"
// @Router /sync-tables [get]
// @Router /selective-column-sync-tables [get]
// @Router /combine-table-and-sync [get]
func (h *Handler) legacyTrigger(family string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		l := logger.WithRayID(h.service.logger, c)
		report, err := h.service.Run(c.Context(), family, Options{})
		if err != nil {
			l.Error("Sync trigger failed", zap.String("family", family), zap.Error(err))
			return c.JSON("not done")
		}
		if !report.OK {
			l.Warn("Sync run reported errors", zap.String("family", family), zap.Strings("errors", report.Errors))
			return c.JSON("not done")
		}
		return c.JSON("done")
	}
}

// HandleFamilies lists the configured job families.
// @Summary List Job Families
// @Tags sync
// @Produce json
// @Success 200 {array} Family
// @Router /families [get]
func (h *Handler) HandleFamilies(c *fiber.Ctx) error {
	return c.JSON(h.service.Families())
}

// HandleSync runs a job family and returns the run report.
// @Summary Run Job Family
// @Description Runs every job of the family. Responds 500 with the report when any job failed.
// @Tags sync
// @Produce json
// @Param family path string true "Family name (e.g. 'combine')"
// @Param dry_run query boolean false "Compute changes without writing"
// @Success 200 {object} RunReport
// @Failure 404 {object} map[string]string "Unknown family"
// @Failure 500 {object} RunReport "Run with errors"
// @Router /sync/{family} [get]
func (h *Handler) HandleSync(c *fiber.Ctx) error {
	family := c.Params("family")
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.Run(c.Context(), family, Options{DryRun: c.QueryBool("dry_run")})
	if err != nil {
		return h.fail(c, l, err)
	}
	if !report.OK {
		return c.Status(fiber.StatusInternalServerError).JSON(report)
	}
	return c.JSON(report)
}

// HandleCheck verifies the destination schema for every job of a family.
// @Summary Check Destination Schema
// @Tags sync
// @Produce json
// @Param family path string true "Family name"
// @Success 200 {array} CheckResult
// @Failure 404 {object} map[string]string "Unknown family"
// @Router /check/{family} [get]
func (h *Handler) HandleCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	results, err := h.service.Check(c.Context(), c.Params("family"))
	if err != nil {
		return h.fail(c, l, err)
	}
	return c.JSON(results)
}

// HandleListReports lists archived run reports.
// @Summary List Run Reports
// @Tags reports
// @Produce json
// @Param family query string false "Only reports of this family"
// @Success 200 {array} ReportInfo
// @Failure 503 {object} map[string]string "Archive disabled"
// @Router /reports [get]
func (h *Handler) HandleListReports(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	reports, err := h.service.Reports(c.Context(), c.Query("family"))
	if err != nil {
		return h.fail(c, l, err)
	}
	return c.JSON(reports)
}

// HandleGetReport returns one archived run report.
// @Summary Get Run Report
// @Tags reports
// @Produce json
// @Param name path string true "Object name (e.g. 'runs/combine/2024-01-02/<id>.json')"
// @Success 200 {object} RunReport
// @Failure 503 {object} map[string]string "Archive disabled"
// @Router /reports/{name} [get]
func (h *Handler) HandleGetReport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	name, err := url.PathUnescape(c.Params("*"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	report, err := h.service.Report(c.Context(), name)
	if err != nil {
		return h.fail(c, l, err)
	}
	return c.JSON(report)
}

// HandleDeleteReport removes one archived run report.
// @Summary Delete Run Report
// @Tags reports
// @Param name path string true "Object name"
// @Success 204
// @Failure 503 {object} map[string]string "Archive disabled"
// @Router /reports/{name} [delete]
func (h *Handler) HandleDeleteReport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	name, err := url.PathUnescape(c.Params("*"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := h.service.DeleteReport(c.Context(), name); err != nil {
		return h.fail(c, l, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) fail(c *fiber.Ctx, l *zap.Logger, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, ErrUnknownFamily):
		status = fiber.StatusNotFound
	case errors.Is(err, ErrArchiveDisabled), errors.Is(err, ErrRunnerDisabled):
		status = fiber.StatusServiceUnavailable
	default:
		l.Error("Request failed", zap.String("path", c.Path()), zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
