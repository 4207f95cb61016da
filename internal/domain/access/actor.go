package access

import "github.com/jhoicas/intranet-api/internal/domain/entity"

// Actor es el usuario autenticado que ejecuta una operación, con el rol vigente
// al momento de la petición y la IP de origen (para auditoría).
type Actor struct {
	ID             string
	Role           string
	DocumentNumber string // prefijo de los archivos que sube
	IP             string
}

// IsAdmin indica si el actor tiene rol admin.
func (a Actor) IsAdmin() bool { return a.Role == entity.RoleAdmin }

// Valid indica si el actor está resuelto (id y rol presentes).
func (a Actor) Valid() bool { return a.ID != "" && a.Role != "" }
