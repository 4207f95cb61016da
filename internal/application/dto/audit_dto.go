package dto

import "time"

// AuditLogResponse entrada de auditoría con el usuario resuelto.
type AuditLogResponse struct {
	ID          string               `json:"id"`
	UserID      string               `json:"userId,omitempty"`
	UserRole    string               `json:"userRole"`
	ActionType  string               `json:"actionType"`
	Description string               `json:"description"`
	TargetID    string               `json:"targetId,omitempty"`
	IPAddress   string               `json:"ipAddress"`
	User        *UserSummaryResponse `json:"user,omitempty"`
	CreatedAt   time.Time            `json:"createdAt"`
}
