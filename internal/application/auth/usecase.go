package auth

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/intranet-api/internal/application/dto"
	"github.com/jhoicas/intranet-api/internal/application/ports"
	"github.com/jhoicas/intranet-api/internal/domain"
	"github.com/jhoicas/intranet-api/internal/domain/access"
	"github.com/jhoicas/intranet-api/internal/domain/entity"
	"github.com/jhoicas/intranet-api/internal/domain/repository"
	"github.com/jhoicas/intranet-api/pkg/jwt"
)

// MinPasswordLength longitud mínima de una contraseña nueva.
const MinPasswordLength = 6

// Valores por defecto de cargo y área en el registro.
const (
	DefaultPosition = "Sin definir"
	DefaultArea     = "General"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro, login, logout y cambio de contraseña.
type AuthUseCase struct {
	userRepo repository.UserRepository
	revoker  ports.TokenRevoker
	audit    ports.AuditRecorder
	jwtCfg   JWTConfig
	// strictPasswordChange exige la contraseña actual al cambiarla.
	strictPasswordChange bool
	now                  func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth. revoker nil equivale a no revocar tokens.
func NewAuthUseCase(userRepo repository.UserRepository, revoker ports.TokenRevoker, audit ports.AuditRecorder, jwtCfg JWTConfig, strictPasswordChange bool) *AuthUseCase {
	if revoker == nil {
		revoker = ports.NoopRevoker{}
	}
	return &AuthUseCase{
		userRepo:             userRepo,
		revoker:              revoker,
		audit:                audit,
		jwtCfg:               jwtCfg,
		strictPasswordChange: strictPasswordChange,
		now:                  time.Now,
	}
}

// RegisterUser crea un usuario (solo admin). La contraseña inicial es el número de documento
// y debe cambiarse en el primer ingreso. ErrDuplicateUser si el email o el documento ya existen.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest, actor access.Actor) (*dto.UserResponse, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: solo admin puede registrar usuarios", domain.ErrForbidden)
	}
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	docNumber := strings.TrimSpace(in.DocumentNumber)
	if name == "" || email == "" || in.DocumentType == "" || docNumber == "" {
		return nil, fmt.Errorf("%w: todos los campos son obligatorios", domain.ErrValidation)
	}
	if !isEmail(email) {
		return nil, fmt.Errorf("%w: email %q inválido", domain.ErrValidation, in.Email)
	}
	if !entity.IsValidDocumentType(in.DocumentType) {
		return nil, fmt.Errorf("%w: tipo de documento %q", domain.ErrValidation, in.DocumentType)
	}
	role := in.Role
	if role == "" {
		role = entity.RoleInvitado
	}
	if !entity.IsValidRole(role) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidRole, role)
	}

	exists, err := uc.userRepo.ExistsByEmailOrDocument(ctx, email, docNumber)
	if err != nil {
		return nil, fmt.Errorf("auth: verificar duplicados: %w", err)
	}
	if exists {
		return nil, domain.ErrDuplicateUser
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(docNumber), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := uc.now().UTC()
	user := &entity.User{
		ID:                 uuid.New().String(),
		Name:               name,
		Email:              email,
		DocumentType:       in.DocumentType,
		DocumentNumber:     docNumber,
		Position:           orDefault(in.Position, DefaultPosition),
		Area:               orDefault(in.Area, DefaultArea),
		PasswordHash:       string(hash),
		Role:               role,
		MustChangePassword: true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	uc.audit.Record(ctx, ports.AuditEntry{
		Actor:       actor,
		Action:      entity.ActionUserCreate,
		Description: fmt.Sprintf("Usuario creado: %s (%s) con rol: %s.", user.Name, user.Email, user.Role),
		TargetID:    user.ID,
	})
	return dto.NewUserResponse(user), nil
}

// Login verifica documento/contraseña, genera JWT y retorna token + usuario.
// Usuario inexistente y contraseña incorrecta devuelven el mismo error.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest, ip string) (*dto.LoginResponse, error) {
	docNumber := strings.TrimSpace(in.DocumentNumber)
	if docNumber == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: ingrese documento y contraseña", domain.ErrValidation)
	}
	user, err := uc.userRepo.FindByDocument(ctx, docNumber)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}

	uc.audit.Record(ctx, ports.AuditEntry{
		Actor:       access.Actor{ID: user.ID, Role: user.Role, DocumentNumber: user.DocumentNumber, IP: ip},
		Action:      entity.ActionLogin,
		Description: fmt.Sprintf("Login exitoso: %s", user.Name),
		TargetID:    user.ID,
	})
	return &dto.LoginResponse{
		Token: token.Value,
		User:  *dto.NewUserResponse(user),
	}, nil
}

// Logout revoca el token (jti) hasta su expiración y audita la salida.
func (uc *AuthUseCase) Logout(ctx context.Context, actor access.Actor, tokenID string, expiresAt time.Time) error {
	if tokenID != "" {
		if err := uc.revoker.Revoke(ctx, tokenID, expiresAt); err != nil {
			return fmt.Errorf("auth: revocar token: %w", err)
		}
	}
	uc.audit.Record(ctx, ports.AuditEntry{
		Actor:       actor,
		Action:      entity.ActionLogout,
		Description: "Cierre de sesión",
		TargetID:    actor.ID,
	})
	return nil
}

// IsRevoked informa si el token fue revocado en logout.
func (uc *AuthUseCase) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if tokenID == "" {
		return false, nil
	}
	return uc.revoker.IsRevoked(ctx, tokenID)
}

// ChangePassword cambia la contraseña del actor y limpia mustChangePassword.
// Con firstLogin la contraseña actual no se exige mientras el usuario aún deba cambiarla;
// en cualquier otro caso se exige si la configuración es estricta.
func (uc *AuthUseCase) ChangePassword(ctx context.Context, actor access.Actor, in dto.ChangePasswordRequest, firstLogin bool) error {
	if len(in.NewPassword) < MinPasswordLength {
		return fmt.Errorf("%w: la contraseña debe tener al menos %d caracteres", domain.ErrValidation, MinPasswordLength)
	}
	user, err := uc.userRepo.FindByID(ctx, actor.ID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}

	requireCurrent := uc.strictPasswordChange && !(firstLogin && user.MustChangePassword)
	if requireCurrent {
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.CurrentPassword)); err != nil {
			return fmt.Errorf("%w: la contraseña actual no coincide", domain.ErrInvalidCredentials)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.MustChangePassword = false
	user.UpdatedAt = uc.now().UTC()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("auth: guardar contraseña: %w", err)
	}

	uc.audit.Record(ctx, ports.AuditEntry{
		Actor:       actor,
		Action:      entity.ActionPassChange,
		Description: "Cambio de contraseña",
		TargetID:    user.ID,
	})
	return nil
}

// isEmail acepta solo una dirección simple (sin nombre ni <>).
func isEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s && strings.Contains(s[strings.LastIndex(s, "@"):], ".")
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return def
}
