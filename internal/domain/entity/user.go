package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleTalento  = "talento"
	RoleServicio = "servicio"
	RoleInvitado = "invitado"
	RoleBasico   = "basico" // legado: aún presente en datos antiguos
)

// Tipos de documento de identidad aceptados.
const (
	DocumentTypeCC  = "CC"
	DocumentTypeTI  = "TI"
	DocumentTypeCE  = "CE"
	DocumentTypeNIT = "NIT"
)

// AssignableRoles son los roles que un admin puede asignar a otro usuario.
var AssignableRoles = []string{RoleAdmin, RoleTalento, RoleServicio, RoleBasico, RoleInvitado}

// IsValidRole indica si role pertenece al conjunto cerrado de roles.
func IsValidRole(role string) bool {
	for _, r := range AssignableRoles {
		if r == role {
			return true
		}
	}
	return false
}

// IsValidDocumentType indica si t es un tipo de documento aceptado.
func IsValidDocumentType(t string) bool {
	switch t {
	case DocumentTypeCC, DocumentTypeTI, DocumentTypeCE, DocumentTypeNIT:
		return true
	}
	return false
}

// User representa un usuario del portal. DocumentNumber es la llave de login.
type User struct {
	ID                 string
	Name               string
	Email              string
	DocumentType       string
	DocumentNumber     string
	Position           string
	Area               string
	PasswordHash       string // bcrypt hash, nunca plano en dominio después de persistir
	Role               string
	MustChangePassword bool // true hasta el primer cambio de contraseña
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
