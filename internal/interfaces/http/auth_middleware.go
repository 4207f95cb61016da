package http

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/intranet-api/internal/application/dto"
	"github.com/jhoicas/intranet-api/internal/domain/access"
	"github.com/jhoicas/intranet-api/internal/domain/entity"
	"github.com/jhoicas/intranet-api/pkg/jwt"
)

// Locals keys para el actor y los claims del token en Fiber.
const (
	LocalActor  = "actor"
	LocalClaims = "claims"
	LocalUser   = "user"
)

// userLoader carga el usuario vigente en cada petición (lo implementa *usecase.UserUseCase).
type userLoader interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
}

// revocationChecker consulta la lista de tokens revocados (lo implementa *auth.AuthUseCase).
type revocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// AuthMiddleware valida el Bearer Token JWT, rechaza tokens revocados y carga el usuario
// desde la base: el rol vigente es el de la base, no el del token.
func AuthMiddleware(jwtSecret string, users userLoader, revocations revocationChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return unauthorized(c, "MISSING_TOKEN", "Authorization header requerido")
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return unauthorized(c, "INVALID_TOKEN", "formato: Bearer <token>")
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return unauthorized(c, "MISSING_TOKEN", "token vacío")
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return unauthorized(c, "INVALID_TOKEN", "token inválido o expirado")
		}

		ctx := c.UserContext()
		revoked, err := revocations.IsRevoked(ctx, claims.ID)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "SESSION_CHECK_FAILED",
				Message: "no se pudo verificar la sesión, intente más tarde",
			})
		}
		if revoked {
			return unauthorized(c, "TOKEN_REVOKED", "la sesión fue cerrada")
		}

		user, err := users.GetByID(ctx, claims.UserID)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "SESSION_CHECK_FAILED",
				Message: "no se pudo verificar la sesión, intente más tarde",
			})
		}
		if user == nil {
			return unauthorized(c, "USER_NOT_FOUND", "el usuario del token ya no existe")
		}
		if user.Role == "" {
			return unauthorized(c, "MISSING_ROLE", "el usuario no tiene rol asignado")
		}

		c.Locals(LocalClaims, claims)
		c.Locals(LocalUser, user)
		c.Locals(LocalActor, access.Actor{
			ID:             user.ID,
			Role:           user.Role,
			DocumentNumber: user.DocumentNumber,
			IP:             ClientIP(c),
		})
		return c.Next()
	}
}

// RequireRole deja pasar solo a los roles indicados. Debe usarse DESPUÉS de AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return unauthorized(c, "MISSING_ROLE", "rol no encontrado en la sesión")
		}
		if !access.HasRole(role, roles...) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "no tiene permisos para acceder a este recurso",
			})
		}
		return c.Next()
	}
}

// RequireSectionEditor verifica con la tabla de permisos que el rol pueda editar la sección
// del parámetro de ruta indicado. Debe usarse DESPUÉS de AuthMiddleware.
func RequireSectionEditor(param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := access.CanEditSection(c.Params(param), GetRole(c)); err != nil {
			status, code := errorStatus(err)
			return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
		}
		return c.Next()
	}
}

// GetActor devuelve el actor autenticado (zero value si no pasó por AuthMiddleware).
func GetActor(c *fiber.Ctx) access.Actor {
	a, _ := c.Locals(LocalActor).(access.Actor)
	return a
}

// GetRole devuelve el rol vigente del usuario autenticado.
func GetRole(c *fiber.Ctx) string {
	return GetActor(c).Role
}

// GetUserID devuelve el ID del usuario autenticado.
func GetUserID(c *fiber.Ctx) string {
	return GetActor(c).ID
}

// GetClaims devuelve los claims del token de la petición.
func GetClaims(c *fiber.Ctx) *jwt.Claims {
	cl, _ := c.Locals(LocalClaims).(*jwt.Claims)
	return cl
}

// GetUser devuelve el usuario cargado por AuthMiddleware.
func GetUser(c *fiber.Ctx) *entity.User {
	u, _ := c.Locals(LocalUser).(*entity.User)
	return u
}

// ClientIP primer salto de X-Forwarded-For si viene; si no, la IP de la conexión.
func ClientIP(c *fiber.Ctx) string {
	if xff := c.Get(fiber.HeaderXForwardedFor); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	return c.IP()
}

func tokenExpiry(cl *jwt.Claims) time.Time {
	if cl == nil {
		return time.Time{}
	}
	return cl.ExpiresAtTime()
}

func unauthorized(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: code, Message: msg})
}
