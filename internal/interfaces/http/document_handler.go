package http

import (
	"fmt"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/intranet-api/internal/application/document"
	"github.com/jhoicas/intranet-api/internal/application/dto"
)

// DocumentHandler maneja el repositorio de documentos.
type DocumentHandler struct {
	uc  *document.UseCase
	log zerolog.Logger
}

// NewDocumentHandler construye el handler.
func NewDocumentHandler(uc *document.UseCase, log zerolog.Logger) *DocumentHandler {
	return &DocumentHandler{uc: uc, log: log}
}

// Upload godoc
// @Summary      Subir documento
// @Tags         documents
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file      formData  file    true   "Archivo (PDF, DOC/DOCX, imagen; máx. 5 MB)"
// @Param        category  formData  string  false  "Categoría (por defecto General)"
// @Success      201  {object}  dto.DocumentResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/documents [post]
func (h *DocumentHandler) Upload(c *fiber.Ctx) error {
	file, closeFile, err := formFile(c, "file")
	if err != nil {
		return badRequest(c, "INVALID_BODY", "archivo inválido")
	}
	defer closeFile()
	if file == nil {
		return badRequest(c, "VALIDATION", "no se proporcionó ningún archivo")
	}

	out, err := h.uc.Upload(c.UserContext(), GetActor(c), file, c.FormValue("category"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar documentos
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.DocumentResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/documents [get]
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetActor(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Download godoc
// @Summary      Descargar documento
// @Tags         documents
// @Security     Bearer
// @Produce      octet-stream
// @Param        id  path  string  true  "ID del documento"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/{id}/download [get]
func (h *DocumentHandler) Download(c *fiber.Ctx) error {
	doc, rc, err := h.uc.Download(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, doc.MimeType)
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename*=UTF-8''%s`, url.PathEscape(doc.FileName)))
	// fasthttp cierra el stream al terminar de enviarlo.
	size := int(doc.FileSize)
	if size <= 0 {
		size = -1
	}
	return c.SendStream(rc, size)
}

// Delete godoc
// @Summary      Eliminar documento
// @Description  Si el archivo físico ya no existe se elimina igualmente la referencia.
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del documento"
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/{id} [delete]
func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetActor(c), c.Params("id")); err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.MessageResponse{Message: "documento eliminado correctamente"})
}
