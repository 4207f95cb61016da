package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/intranet-api/internal/application/auth"
	"github.com/jhoicas/intranet-api/internal/application/dto"
	"github.com/jhoicas/intranet-api/internal/domain"
	"github.com/jhoicas/intranet-api/internal/domain/access"
	"github.com/jhoicas/intranet-api/internal/domain/entity"
	"github.com/jhoicas/intranet-api/internal/mocks"
	"github.com/jhoicas/intranet-api/pkg/jwt"
)

const secret = "secreto-de-prueba"

var admin = access.Actor{ID: "admin-1", Role: entity.RoleAdmin, IP: "10.0.0.1"}

func jwtCfg() auth.JWTConfig {
	return auth.JWTConfig{Secret: secret, ExpMinutes: 30 * 24 * 60, Issuer: "intranet-api"}
}

func userWithPassword(t *testing.T, id, doc, password string, mustChange bool) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &entity.User{
		ID: id, Name: "Usuario " + id, Email: id + "@empresa.com", DocumentType: entity.DocumentTypeCC,
		DocumentNumber: doc, PasswordHash: string(hash), Role: entity.RoleServicio, MustChangePassword: mustChange,
	}
}

func validRegister() dto.RegisterRequest {
	return dto.RegisterRequest{Name: "Laura Gómez", Email: "Laura@Empresa.com", DocumentType: "CC", DocumentNumber: "1020304050"}
}

func TestRegister_ValoresPorDefecto(t *testing.T) {
	repo := mocks.NewUserRepository()
	audit := &mocks.AuditRecorder{}
	uc := auth.NewAuthUseCase(repo, nil, audit, jwtCfg(), true)

	out, err := uc.RegisterUser(context.Background(), validRegister(), admin)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleInvitado, out.Role)
	assert.Equal(t, "laura@empresa.com", out.Email)
	assert.Equal(t, auth.DefaultPosition, out.Position)
	assert.Equal(t, auth.DefaultArea, out.Area)
	assert.True(t, out.MustChangePassword)
	assert.Equal(t, []string{entity.ActionUserCreate}, audit.Actions())

	// La contraseña inicial es el número de documento.
	login, err := uc.Login(context.Background(), dto.LoginRequest{DocumentNumber: "1020304050", Password: "1020304050"}, "10.0.0.9")
	require.NoError(t, err)
	assert.True(t, login.User.MustChangePassword)
}

func TestRegister_Duplicado(t *testing.T) {
	repo := mocks.NewUserRepository()
	uc := auth.NewAuthUseCase(repo, nil, &mocks.AuditRecorder{}, jwtCfg(), true)

	_, err := uc.RegisterUser(context.Background(), validRegister(), admin)
	require.NoError(t, err)

	dup := validRegister()
	dup.Email = "otra@empresa.com"
	_, err = uc.RegisterUser(context.Background(), dup, admin)
	assert.ErrorIs(t, err, domain.ErrDuplicateUser)
	assert.Equal(t, 1, repo.Count(), "no se crea un segundo registro")
}

func TestRegister_Validaciones(t *testing.T) {
	uc := auth.NewAuthUseCase(mocks.NewUserRepository(), nil, &mocks.AuditRecorder{}, jwtCfg(), true)

	_, err := uc.RegisterUser(context.Background(), validRegister(), access.Actor{ID: "x", Role: entity.RoleTalento})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	in := validRegister()
	in.Email = ""
	_, err = uc.RegisterUser(context.Background(), in, admin)
	assert.ErrorIs(t, err, domain.ErrValidation)

	for _, email := range []string{"no-es-correo", "ana@", "Ana <ana@empresa.com>", "ana@localhost"} {
		in = validRegister()
		in.Email = email
		_, err = uc.RegisterUser(context.Background(), in, admin)
		assert.ErrorIs(t, err, domain.ErrValidation, email)
	}

	in = validRegister()
	in.DocumentType = "PASAPORTE"
	_, err = uc.RegisterUser(context.Background(), in, admin)
	assert.ErrorIs(t, err, domain.ErrValidation)

	in = validRegister()
	in.Role = "superadmin"
	_, err = uc.RegisterUser(context.Background(), in, admin)
	assert.ErrorIs(t, err, domain.ErrInvalidRole)
}

func TestLogin_TokenYAuditoria(t *testing.T) {
	u := userWithPassword(t, "u1", "555", "clave123", false)
	audit := &mocks.AuditRecorder{}
	uc := auth.NewAuthUseCase(mocks.NewUserRepository(u), nil, audit, jwtCfg(), true)

	out, err := uc.Login(context.Background(), dto.LoginRequest{DocumentNumber: "555", Password: "clave123"}, "10.1.1.1")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleServicio, out.User.Role)

	claims, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.WithinDuration(t, time.Now().Add(30*24*time.Hour), claims.ExpiresAtTime(), time.Minute)

	entries := audit.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, entity.ActionLogin, entries[0].Action)
	assert.Equal(t, "10.1.1.1", entries[0].Actor.IP)
	assert.Equal(t, entity.RoleServicio, entries[0].Actor.Role)
}

func TestLogin_MismoErrorParaUsuarioYClave(t *testing.T) {
	u := userWithPassword(t, "u1", "555", "clave123", false)
	audit := &mocks.AuditRecorder{}
	uc := auth.NewAuthUseCase(mocks.NewUserRepository(u), nil, audit, jwtCfg(), true)

	_, errUser := uc.Login(context.Background(), dto.LoginRequest{DocumentNumber: "999", Password: "clave123"}, "")
	_, errPass := uc.Login(context.Background(), dto.LoginRequest{DocumentNumber: "555", Password: "otra"}, "")
	assert.ErrorIs(t, errUser, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, errPass, domain.ErrInvalidCredentials)
	assert.Equal(t, errUser.Error(), errPass.Error())
	assert.Empty(t, audit.Actions())
}

func TestChangePassword_Estricto(t *testing.T) {
	u := userWithPassword(t, "u1", "555", "clave123", true)
	repo := mocks.NewUserRepository(u)
	audit := &mocks.AuditRecorder{}
	uc := auth.NewAuthUseCase(repo, nil, audit, jwtCfg(), true)
	actor := access.Actor{ID: "u1", Role: entity.RoleServicio}

	err := uc.ChangePassword(context.Background(), actor, dto.ChangePasswordRequest{CurrentPassword: "clave123", NewPassword: "corta"}, false)
	assert.ErrorIs(t, err, domain.ErrValidation)

	err = uc.ChangePassword(context.Background(), actor, dto.ChangePasswordRequest{CurrentPassword: "mala", NewPassword: "nueva123"}, false)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	err = uc.ChangePassword(context.Background(), actor, dto.ChangePasswordRequest{CurrentPassword: "clave123", NewPassword: "nueva123"}, false)
	require.NoError(t, err)

	stored, err := repo.FindByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.False(t, stored.MustChangePassword)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("nueva123")))
	assert.Equal(t, []string{entity.ActionPassChange}, audit.Actions())
}

func TestChangePassword_PrimerIngresoSinClaveActual(t *testing.T) {
	u := userWithPassword(t, "u1", "555", "555", true)
	repo := mocks.NewUserRepository(u)
	uc := auth.NewAuthUseCase(repo, nil, &mocks.AuditRecorder{}, jwtCfg(), true)
	actor := access.Actor{ID: "u1", Role: entity.RoleServicio}

	require.NoError(t, uc.ChangePassword(context.Background(), actor, dto.ChangePasswordRequest{NewPassword: "nueva123"}, true))

	// Una vez cambiada, el flujo de primer ingreso vuelve a exigir la contraseña actual.
	err := uc.ChangePassword(context.Background(), actor, dto.ChangePasswordRequest{NewPassword: "otra1234"}, true)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestChangePassword_NoEstricto(t *testing.T) {
	u := userWithPassword(t, "u1", "555", "clave123", false)
	uc := auth.NewAuthUseCase(mocks.NewUserRepository(u), nil, &mocks.AuditRecorder{}, jwtCfg(), false)

	err := uc.ChangePassword(context.Background(), access.Actor{ID: "u1", Role: entity.RoleServicio}, dto.ChangePasswordRequest{NewPassword: "nueva123"}, false)
	assert.NoError(t, err)
}

func TestLogout_RevocaToken(t *testing.T) {
	revoker := &mocks.TokenRevoker{}
	audit := &mocks.AuditRecorder{}
	uc := auth.NewAuthUseCase(mocks.NewUserRepository(), revoker, audit, jwtCfg(), true)

	require.NoError(t, uc.Logout(context.Background(), admin, "jti-1", time.Now().Add(time.Hour)))
	revoked, err := uc.IsRevoked(context.Background(), "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)
	assert.Equal(t, []string{entity.ActionLogout}, audit.Actions())

	revoked, err = uc.IsRevoked(context.Background(), "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)
}
