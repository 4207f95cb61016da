package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/intranet-api/internal/application/auth"
	"github.com/jhoicas/intranet-api/internal/application/dto"
)

// AuthHandler maneja registro, login, logout y cambio de contraseña.
type AuthHandler struct {
	uc  *auth.AuthUseCase
	log zerolog.Logger
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, log: log}
}

// Register godoc
// @Summary      Registrar usuario (solo admin)
// @Description  La contraseña inicial es el número de documento; debe cambiarse en el primer ingreso.
// @Tags         auth
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "name, email, documentType, documentNumber"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.Name == "" || in.Email == "" || in.DocumentType == "" || in.DocumentNumber == "" {
		return badRequest(c, "VALIDATION", "todos los campos son obligatorios")
	}
	user, err := h.uc.RegisterUser(c.UserContext(), in, GetActor(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "documentNumber, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.DocumentNumber == "" || in.Password == "" {
		return badRequest(c, "VALIDATION", "por favor ingrese documento y contraseña")
	}
	out, err := h.uc.Login(c.UserContext(), in, ClientIP(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Logout godoc
// @Summary      Cerrar sesión (revoca el token actual)
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	claims := GetClaims(c)
	var tokenID string
	if claims != nil {
		tokenID = claims.ID
	}
	if err := h.uc.Logout(c.UserContext(), GetActor(c), tokenID, tokenExpiry(claims)); err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.MessageResponse{Message: "sesión cerrada"})
}

// ChangePassword godoc
// @Summary      Cambiar contraseña
// @Description  Exige la contraseña actual cuando AUTH_STRICT_PASSWORD_CHANGE está activo.
// @Tags         auth
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ChangePasswordRequest  true  "currentPassword, newPassword"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/change-password [put]
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	return h.changePassword(c, false)
}

// FirstLoginPassword godoc
// @Summary      Cambiar contraseña en el primer ingreso
// @Description  No exige la contraseña actual mientras el usuario tenga mustChangePassword.
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ChangePasswordRequest  true  "newPassword"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/users/change-password [put]
func (h *AuthHandler) FirstLoginPassword(c *fiber.Ctx) error {
	return h.changePassword(c, true)
}

func (h *AuthHandler) changePassword(c *fiber.Ctx, firstLogin bool) error {
	var in dto.ChangePasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if err := h.uc.ChangePassword(c.UserContext(), GetActor(c), in, firstLogin); err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.MessageResponse{Message: "contraseña actualizada correctamente"})
}
