package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/intranet-api/internal/domain/entity"
	"github.com/jhoicas/intranet-api/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

// AuditLogRepo bitácora append-only sobre PostgreSQL.
type AuditLogRepo struct {
	pool *pgxpool.Pool
}

// NewAuditLogRepository construye el adaptador de auditoría.
func NewAuditLogRepository(pool *pgxpool.Pool) *AuditLogRepo {
	return &AuditLogRepo{pool: pool}
}

func (r *AuditLogRepo) Append(ctx context.Context, e *entity.AuditLog) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO audit_logs (id, user_id, user_role, action_type, description, target_id, ip_address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		e.ID, nullable(e.UserID), e.UserRole, e.ActionType, e.Description, e.TargetID, e.IPAddress, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

// ListRecent devuelve las últimas limit entradas, más recientes primero, con el usuario resuelto.
func (r *AuditLogRepo) ListRecent(ctx context.Context, limit int) ([]*entity.AuditLog, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT a.id, a.user_id, a.user_role, a.action_type, a.description, a.target_id, a.ip_address, a.created_at,
			u.name, u.email, u.role
		FROM audit_logs a
		LEFT JOIN users u ON u.id = a.user_id
		ORDER BY a.created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()

	var out []*entity.AuditLog
	for rows.Next() {
		var (
			e                 entity.AuditLog
			userID            *string
			name, email, role *string
		)
		if err := rows.Scan(&e.ID, &userID, &e.UserRole, &e.ActionType, &e.Description, &e.TargetID,
			&e.IPAddress, &e.CreatedAt, &name, &email, &role); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		e.UserID = deref(userID)
		if name != nil {
			e.User = &entity.UserSummary{ID: e.UserID, Name: *name, Email: deref(email), Role: deref(role)}
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}
