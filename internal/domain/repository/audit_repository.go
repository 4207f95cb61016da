package repository

import (
	"context"

	"github.com/jhoicas/intranet-api/internal/domain/entity"
)

// AuditLogRepository es append-only: no hay Update ni Delete.
type AuditLogRepository interface {
	Append(ctx context.Context, entry *entity.AuditLog) error
	// ListRecent devuelve las últimas limit entradas, más recientes primero, con User resuelto.
	ListRecent(ctx context.Context, limit int) ([]*entity.AuditLog, error)
}
