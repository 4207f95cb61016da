package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/intranet-api/internal/application/ports"
)

func isMultipart(c *fiber.Ctx) bool {
	return strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm)
}

// formFile lee el archivo multipart del campo indicado. Devuelve (nil, no-op, nil) si no viene.
// El llamador debe invocar close al terminar.
func formFile(c *fiber.Ctx, field string) (*ports.Upload, func(), error) {
	noop := func() {}
	if !isMultipart(c) {
		return nil, noop, nil
	}
	form, err := c.MultipartForm()
	if err != nil {
		return nil, noop, err
	}
	files := form.File[field]
	if len(files) == 0 {
		return nil, noop, nil
	}
	fh := files[0]
	f, err := fh.Open()
	if err != nil {
		return nil, noop, err
	}
	contentType := fh.Header.Get(fiber.HeaderContentType)
	if contentType == "" {
		contentType = fiber.MIMEOctetStream
	}
	return &ports.Upload{
		FileName:    fh.Filename,
		ContentType: contentType,
		Size:        fh.Size,
		Body:        f,
	}, func() { _ = f.Close() }, nil
}
