package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/intranet-api/internal/application/dto"
	"github.com/jhoicas/intranet-api/internal/domain"
)

const internalMessage = "error interno del servidor"

// errorStatus traduce un error de dominio a status HTTP y código.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidSection):
		return fiber.StatusBadRequest, "INVALID_SECTION"
	case errors.Is(err, domain.ErrFileNotAllowed):
		return fiber.StatusBadRequest, "FILE_NOT_ALLOWED"
	case errors.Is(err, domain.ErrFileTooLarge):
		return fiber.StatusBadRequest, "FILE_TOO_LARGE"
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidRole),
		errors.Is(err, domain.ErrInvalidAction):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrTokenRevoked):
		return fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrPhysicalFileMissing):
		return fiber.StatusNotFound, "PHYSICAL_FILE_MISSING"
	case errors.Is(err, domain.ErrToolNotFound):
		return fiber.StatusNotFound, "TOOL_NOT_FOUND"
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrDuplicateUser),
		errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrVersionConflict):
		return fiber.StatusConflict, "CONFLICT"
	}
	return fiber.StatusInternalServerError, "INTERNAL"
}

// writeError responde {"code","message"}. Los 500 nunca exponen el detalle; se registran en log.
func writeError(c *fiber.Ctx, log zerolog.Logger, err error) error {
	status, code := errorStatus(err)
	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
		msg = internalMessage
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func badRequest(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

// ErrorHandler fiber.Config.ErrorHandler con la misma forma JSON que writeError.
func ErrorHandler(log zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code := "INTERNAL"
			switch fe.Code {
			case fiber.StatusNotFound:
				code = "NOT_FOUND"
			case fiber.StatusMethodNotAllowed:
				code = "METHOD_NOT_ALLOWED"
			case fiber.StatusRequestEntityTooLarge:
				code = "FILE_TOO_LARGE"
			case fiber.StatusBadRequest:
				code = "INVALID_BODY"
			}
			msg := fe.Message
			if fe.Code >= fiber.StatusInternalServerError {
				log.Error().Err(err).Str("path", c.Path()).Msg("error no controlado")
				msg = internalMessage
			}
			return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: code, Message: msg})
		}
		return writeError(c, log, err)
	}
}
