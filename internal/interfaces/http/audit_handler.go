package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/intranet-api/internal/application/audit"
)

// AuditHandler consulta de la bitácora (solo admin).
type AuditHandler struct {
	recorder *audit.Recorder
	log      zerolog.Logger
}

// NewAuditHandler construye el handler.
func NewAuditHandler(r *audit.Recorder, log zerolog.Logger) *AuditHandler {
	return &AuditHandler{recorder: r, log: log}
}

// List godoc
// @Summary      Últimas 100 entradas de auditoría
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.AuditLogResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/audit/logs [get]
func (h *AuditHandler) List(c *fiber.Ctx) error {
	out, err := h.recorder.List(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Reporte PDF de auditoría
// @Tags         audit
// @Security     Bearer
// @Produce      application/pdf
// @Success      200
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/audit/logs/report.pdf [get]
func (h *AuditHandler) Report(c *fiber.Ctx) error {
	pdf, err := h.recorder.Report(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="auditoria.pdf"`)
	return c.Send(pdf)
}
