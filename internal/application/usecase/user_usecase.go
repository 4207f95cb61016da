package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/intranet-api/internal/application/dto"
	"github.com/jhoicas/intranet-api/internal/application/ports"
	"github.com/jhoicas/intranet-api/internal/domain"
	"github.com/jhoicas/intranet-api/internal/domain/access"
	"github.com/jhoicas/intranet-api/internal/domain/entity"
	"github.com/jhoicas/intranet-api/internal/domain/repository"
)

// UserUseCase aplica reglas de negocio para la administración de usuarios.
type UserUseCase struct {
	repo  repository.UserRepository
	audit ports.AuditRecorder
	now   func() time.Time
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository, audit ports.AuditRecorder) *UserUseCase {
	return &UserUseCase{repo: repo, audit: audit, now: time.Now}
}

// GetByID obtiene un usuario por ID (nil si no existe).
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return uc.repo.FindByID(ctx, id)
}

// List devuelve todos los usuarios sin hash ni número de documento (solo admin).
func (uc *UserUseCase) List(ctx context.Context, actor access.Actor) ([]dto.UserResponse, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: se requiere rol de administrador", domain.ErrForbidden)
	}
	users, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("users: listar: %w", err)
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		r := dto.NewUserResponse(u)
		r.DocumentNumber = ""
		out = append(out, *r)
	}
	return out, nil
}

// ChangeRole cambia el rol de otro usuario. Un admin no puede cambiar su propio rol
// ni el de otro admin; cualquier otro rol recibe ErrForbidden.
func (uc *UserUseCase) ChangeRole(ctx context.Context, actor access.Actor, targetID, role string) (*dto.UserResponse, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: solo admin puede cambiar roles", domain.ErrForbidden)
	}
	if !entity.IsValidRole(role) {
		return nil, fmt.Errorf("%w: rol %q no asignable", domain.ErrValidation, role)
	}
	if targetID == actor.ID {
		return nil, fmt.Errorf("%w: no puede cambiar su propio rol", domain.ErrForbidden)
	}
	target, err := uc.repo.FindByID(ctx, targetID)
	if err != nil {
		return nil, fmt.Errorf("users: buscar %s: %w", targetID, err)
	}
	if target == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, targetID)
	}
	if target.Role == entity.RoleAdmin {
		return nil, fmt.Errorf("%w: no puede cambiar el rol de otro administrador", domain.ErrForbidden)
	}
	if target.Role == role {
		return dto.NewUserResponse(target), nil
	}

	oldRole := target.Role
	target.Role = role
	target.UpdatedAt = uc.now().UTC()
	if err := uc.repo.Update(ctx, target); err != nil {
		return nil, fmt.Errorf("users: actualizar rol: %w", err)
	}

	uc.audit.Record(ctx, ports.AuditEntry{
		Actor:       actor,
		Action:      entity.ActionRoleChange,
		Description: fmt.Sprintf("Cambió el rol de %s: %s → %s", target.Name, oldRole, role),
		TargetID:    target.ID,
	})
	return dto.NewUserResponse(target), nil
}
