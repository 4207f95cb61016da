package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/intranet-api/internal/application/dto"
	"github.com/jhoicas/intranet-api/internal/domain/entity"
	apphttp "github.com/jhoicas/intranet-api/internal/interfaces/http"
	"github.com/jhoicas/intranet-api/internal/mocks"
	pkgjwt "github.com/jhoicas/intranet-api/pkg/jwt"
)

// userLoader adapta el repositorio en memoria al contrato del middleware.
type userLoader struct{ repo *mocks.UserRepository }

func (l userLoader) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return l.repo.FindByID(ctx, id)
}

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para parsear el JWT y cargar el actor
//   - RequireRole para autorizar el acceso
//   - Un handler dummy que devuelve el actor si pasa los middlewares
func buildTestApp(t *testing.T, revoker *mocks.TokenRevoker, allowedRoles ...string) (*fiber.App, *mocks.UserRepository) {
	t.Helper()
	users := mocks.NewUserRepository(
		newUser(t, "admin-1", entity.RoleAdmin, "1000"),
		newUser(t, "talento-1", entity.RoleTalento, "2000"),
	)
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret, userLoader{users}, revoker),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			a := apphttp.GetActor(c)
			return c.JSON(fiber.Map{"id": a.ID, "role": a.Role, "ip": a.IP})
		},
	)
	return app, users
}

func doRequest(t *testing.T, app *fiber.App, authHeader string, headers ...string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestRequireRole_AdminAccedeRutaAdmin(t *testing.T) {
	app, _ := buildTestApp(t, &mocks.TokenRevoker{}, entity.RoleAdmin)
	resp := doRequest(t, app, bearer(t, "admin-1", entity.RoleAdmin))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode[map[string]string](t, resp)
	assert.Equal(t, "admin-1", body["id"])
	assert.Equal(t, entity.RoleAdmin, body["role"])
}

func TestRequireRole_TalentoBloqueadoEnRutaAdmin(t *testing.T) {
	app, _ := buildTestApp(t, &mocks.TokenRevoker{}, entity.RoleAdmin)
	resp := doRequest(t, app, bearer(t, "talento-1", entity.RoleTalento))

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", decode[dto.ErrorResponse](t, resp).Code)
}

func TestRequireRole_MultiRol(t *testing.T) {
	app, _ := buildTestApp(t, &mocks.TokenRevoker{}, entity.RoleAdmin, entity.RoleTalento)
	resp := doRequest(t, app, bearer(t, "talento-1", entity.RoleTalento))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// El rol vigente es el de la base: un token emitido como admin no sirve si el usuario ya no lo es.
func TestAuthMiddleware_RolDesdeLaBase(t *testing.T) {
	app, _ := buildTestApp(t, &mocks.TokenRevoker{}, entity.RoleAdmin)
	resp := doRequest(t, app, bearer(t, "talento-1", entity.RoleAdmin))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAuthMiddleware_UsuarioEliminado(t *testing.T) {
	app, _ := buildTestApp(t, &mocks.TokenRevoker{}, entity.RoleAdmin)
	resp := doRequest(t, app, bearer(t, "no-existe", entity.RoleAdmin))

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "USER_NOT_FOUND", decode[dto.ErrorResponse](t, resp).Code)
}

func TestAuthMiddleware_SinHeader(t *testing.T) {
	app, _ := buildTestApp(t, &mocks.TokenRevoker{}, entity.RoleAdmin)
	resp := doRequest(t, app, "")

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_TOKEN", decode[dto.ErrorResponse](t, resp).Code)
}

func TestAuthMiddleware_TokenInvalido(t *testing.T) {
	app, _ := buildTestApp(t, &mocks.TokenRevoker{}, entity.RoleAdmin)

	for _, h := range []string{"Bearer token.invalido.aqui", "Basic abc", "Bearer "} {
		resp := doRequest(t, app, h)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, h)
	}
}

func TestAuthMiddleware_TokenRevocado(t *testing.T) {
	revoker := &mocks.TokenRevoker{}
	app, _ := buildTestApp(t, revoker, entity.RoleAdmin)

	tok, err := pkgjwt.Generate(testJWTSecret, "admin-1", entity.RoleAdmin, testIssuer, testExpMin)
	require.NoError(t, err)
	require.NoError(t, revoker.Revoke(context.Background(), tok.ID, tok.ExpiresAt))

	resp := doRequest(t, app, "Bearer "+tok.Value)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "TOKEN_REVOKED", decode[dto.ErrorResponse](t, resp).Code)
}

func TestAuthMiddleware_ClientIPDesdeXForwardedFor(t *testing.T) {
	app, _ := buildTestApp(t, &mocks.TokenRevoker{}, entity.RoleAdmin)
	resp := doRequest(t, app, bearer(t, "admin-1", entity.RoleAdmin),
		"X-Forwarded-For", "203.0.113.7, 10.0.0.1")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "203.0.113.7", decode[map[string]string](t, resp)["ip"])
}
