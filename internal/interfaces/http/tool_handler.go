package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/intranet-api/internal/application/dto"
	"github.com/jhoicas/intranet-api/internal/application/tool"
)

// ToolHandler maneja el catálogo de herramientas configurables.
type ToolHandler struct {
	uc  *tool.UseCase
	log zerolog.Logger
}

// NewToolHandler construye el handler.
func NewToolHandler(uc *tool.UseCase, log zerolog.Logger) *ToolHandler {
	return &ToolHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Crear herramienta
// @Tags         tools
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateToolRequest  true  "title, section, category, allowsUrl, allowsFile"
// @Success      201   {object}  dto.ToolResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/tools [post]
func (h *ToolHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateToolRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Create(c.UserContext(), in, GetActor(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListBySection godoc
// @Summary      Herramientas de una sección agrupadas por categoría
// @Tags         tools
// @Security     Bearer
// @Produce      json
// @Param        section  path  string  true  "Sección"
// @Success      200  {object}  dto.ToolsBySectionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/tools/{section} [get]
func (h *ToolHandler) ListBySection(c *fiber.Ctx) error {
	out, err := h.uc.ListBySection(c.UserContext(), c.Params("section"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// UpdateData godoc
// @Summary      Actualizar URL y/o archivo de una herramienta
// @Tags         tools
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        id        path      string  true   "ID de la herramienta"
// @Param        urlValue  formData  string  false  "URL"
// @Param        file      formData  file    false  "Archivo (PDF, DOC/DOCX, imagen; máx. 5 MB)"
// @Success      200  {object}  dto.ToolResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tools/{id}/data [put]
func (h *ToolHandler) UpdateData(c *fiber.Ctx) error {
	var urlValue *string
	if isMultipart(c) {
		form, err := c.MultipartForm()
		if err != nil {
			return badRequest(c, "INVALID_BODY", "formulario inválido")
		}
		if v, ok := form.Value["urlValue"]; ok && len(v) > 0 {
			urlValue = &v[0]
		}
	} else {
		var in struct {
			URLValue *string `json:"urlValue"`
		}
		if err := c.BodyParser(&in); err != nil {
			return badRequest(c, "INVALID_BODY", "cuerpo inválido")
		}
		urlValue = in.URLValue
	}

	file, closeFile, err := formFile(c, "file")
	if err != nil {
		return badRequest(c, "INVALID_BODY", "archivo inválido")
	}
	defer closeFile()

	out, err := h.uc.UpdateData(c.UserContext(), c.Params("id"), urlValue, file, GetActor(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar herramienta
// @Tags         tools
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la herramienta"
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tools/{id} [delete]
func (h *ToolHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id"), GetActor(c)); err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.MessageResponse{Message: "herramienta eliminada"})
}
