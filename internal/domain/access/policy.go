// Package access contiene la única tabla de permisos sección × rol del portal.
// Middleware HTTP y casos de uso consultan esta tabla; no debe duplicarse en otro lugar.
package access

import (
	"fmt"

	"github.com/jhoicas/intranet-api/internal/domain"
	"github.com/jhoicas/intranet-api/internal/domain/entity"
)

// SectionPolicy define qué roles pueden editar cada sección (cerrada y fija).
var SectionPolicy = map[string][]string{
	entity.SectionAdmin:          {entity.RoleAdmin},
	entity.SectionTalento:        {entity.RoleAdmin, entity.RoleTalento},
	entity.SectionServicio:       {entity.RoleAdmin, entity.RoleServicio},
	entity.SectionOrganizacional: {entity.RoleAdmin},
}

// DocumentRoles son los roles que pueden listar y eliminar documentos.
var DocumentRoles = []string{entity.RoleAdmin, entity.RoleTalento, entity.RoleServicio}

// CanEditSection devuelve nil si role puede editar section.
// ErrInvalidSection si la sección no existe; ErrForbidden si el rol no está en la fila.
func CanEditSection(section, role string) error {
	allowed, ok := SectionPolicy[section]
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrInvalidSection, section)
	}
	if !HasRole(role, allowed...) {
		return fmt.Errorf("%w: el rol %q no puede editar la sección %s", domain.ErrForbidden, role, section)
	}
	return nil
}

// HasRole informa si role está en allowed.
func HasRole(role string, allowed ...string) bool {
	if role == "" {
		return false
	}
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
