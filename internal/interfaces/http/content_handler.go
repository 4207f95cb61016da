package http

import (
	"encoding/json"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	appcontent "github.com/jhoicas/intranet-api/internal/application/content"
	"github.com/jhoicas/intranet-api/internal/application/dto"
)

// ContentHandler expone el contenido editable de cada sección.
type ContentHandler struct {
	pipeline *appcontent.Pipeline
	log      zerolog.Logger
}

// NewContentHandler construye el handler.
func NewContentHandler(p *appcontent.Pipeline, log zerolog.Logger) *ContentHandler {
	return &ContentHandler{pipeline: p, log: log}
}

// Get godoc
// @Summary      Contenido de una sección
// @Description  Si la sección no tiene documento o le faltan herramientas, se inicializa con las por defecto.
// @Tags         content
// @Security     Bearer
// @Produce      json
// @Param        section  path  string  true  "admin | servicio | talento | organizacional"
// @Success      200  {object}  dto.ContentResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/content/{section} [get]
func (h *ContentHandler) Get(c *fiber.Ctx) error {
	content, err := h.pipeline.Get(c.UserContext(), c.Params("section"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.NewContentResponse(content))
}

// Update godoc
// @Summary      Actualizar campos de una sección
// @Description  Solo se aplican los campos editables que cambian; cada cambio queda en el historial.
// @Tags         content
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        section  path  string  true  "Sección"
// @Param        body     body  object  true  "mission, vision, corporateValues, diagnostic, specificObjective, tools"
// @Success      200  {object}  dto.ContentResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/content/{section} [put]
func (h *ContentHandler) Update(c *fiber.Ctx) error {
	var updates map[string]any
	if err := json.Unmarshal(c.Body(), &updates); err != nil || updates == nil {
		return badRequest(c, "INVALID_BODY", "se esperaba un objeto JSON")
	}
	content, err := h.pipeline.UpdateSection(c.UserContext(), c.Params("section"), GetActor(c), updates)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.NewContentResponse(content))
}

// UpdateTool godoc
// @Summary      Actualizar la URL de una herramienta embebida
// @Description  El nombre se compara sin mayúsculas, tildes ni espacios.
// @Tags         content
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        section   path  string                    true  "Sección"
// @Param        toolName  path  string                    true  "Nombre de la herramienta"
// @Param        body      body  dto.UpdateToolURLRequest  true  "url"
// @Success      200  {object}  dto.ContentResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/content/{section}/tool/{toolName} [put]
func (h *ContentHandler) UpdateTool(c *fiber.Ctx) error {
	var in dto.UpdateToolURLRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	toolName, err := url.PathUnescape(c.Params("toolName"))
	if err != nil {
		return badRequest(c, "VALIDATION", "nombre de herramienta inválido")
	}
	content, err := h.pipeline.UpdateToolValue(c.UserContext(), c.Params("section"), toolName, in.URL, GetActor(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.NewContentResponse(content))
}

// History godoc
// @Summary      Historial de cambios de una sección (solo admin)
// @Tags         content
// @Security     Bearer
// @Produce      json
// @Param        section  path  string  true  "Sección"
// @Success      200  {array}   dto.HistoryEntryResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/content/{section}/history [get]
func (h *ContentHandler) History(c *fiber.Ctx) error {
	entries, err := h.pipeline.History(c.UserContext(), c.Params("section"), GetActor(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(entries)
}
