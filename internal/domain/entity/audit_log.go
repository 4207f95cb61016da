package entity

import "time"

// Tipos de acción de auditoría (conjunto cerrado).
const (
	ActionLogin         = "LOGIN"
	ActionLogout        = "LOGOUT"
	ActionUserCreate    = "USER_CREATE"
	ActionUserUpdate    = "USER_UPDATE"
	ActionUserDelete    = "USER_DELETE"
	ActionDocUpload     = "DOC_UPLOAD"
	ActionDocDelete     = "DOC_DELETE"
	ActionPassChange    = "PASS_CHANGE"
	ActionRoleChange    = "ROLE_CHANGE"
	ActionToolCreate    = "TOOL_CREATE"
	ActionToolUpdate    = "TOOL_UPDATE"
	ActionToolDelete    = "TOOL_DELETE"
	ActionContentUpdate = "CONTENT_UPDATE"
)

var auditActions = map[string]struct{}{
	ActionLogin: {}, ActionLogout: {}, ActionUserCreate: {}, ActionUserUpdate: {},
	ActionUserDelete: {}, ActionDocUpload: {}, ActionDocDelete: {}, ActionPassChange: {},
	ActionRoleChange: {}, ActionToolCreate: {}, ActionToolUpdate: {}, ActionToolDelete: {},
	ActionContentUpdate: {},
}

// IsValidAuditAction indica si action pertenece al conjunto cerrado.
func IsValidAuditAction(action string) bool {
	_, ok := auditActions[action]
	return ok
}

// AuditLog es un hecho inmutable: quién, con qué rol, qué hizo y desde dónde.
type AuditLog struct {
	ID          string
	UserID      string // vacío solo para LOGIN/LOGOUT sin usuario resuelto
	UserRole    string // rol al momento de la acción
	ActionType  string
	Description string
	TargetID    string
	IPAddress   string
	CreatedAt   time.Time

	// User se llena solo en listados (join con users).
	User *UserSummary
}
