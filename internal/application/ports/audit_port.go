package ports

import (
	"context"

	"github.com/jhoicas/intranet-api/internal/domain/access"
)

// AuditEntry acción a registrar. Actor incluye el rol vigente y la IP de origen.
type AuditEntry struct {
	Actor       access.Actor
	Action      string
	Description string
	TargetID    string
}

// AuditRecorder registra acciones de forma best-effort: nunca devuelve error al llamador.
type AuditRecorder interface {
	Record(ctx context.Context, entry AuditEntry)
}
