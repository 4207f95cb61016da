// Package audit registra y consulta la bitácora de acciones sensibles.
// Las escrituras son best-effort: un fallo se registra en log y en métricas
// pero nunca interrumpe la operación principal.
package audit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/jhoicas/intranet-api/internal/application/dto"
	"github.com/jhoicas/intranet-api/internal/application/ports"
	"github.com/jhoicas/intranet-api/internal/domain"
	"github.com/jhoicas/intranet-api/internal/domain/entity"
	"github.com/jhoicas/intranet-api/internal/domain/repository"
)

// RecentLimit es el máximo de entradas que devuelve el listado de auditoría.
const RecentLimit = 100

const writeTimeout = 5 * time.Second

// ReportRenderer genera el reporte PDF de auditoría.
type ReportRenderer interface {
	RenderAuditReport(logs []dto.AuditLogResponse, generatedAt time.Time) ([]byte, error)
}

// Recorder implementa ports.AuditRecorder sobre el repositorio de auditoría.
type Recorder struct {
	repo     repository.AuditLogRepository
	log      zerolog.Logger
	failures prometheus.Counter
	renderer ReportRenderer
	now      func() time.Time
}

var _ ports.AuditRecorder = (*Recorder)(nil)

// NewRecorder construye el recorder. renderer puede ser nil si no se expone el reporte PDF.
func NewRecorder(repo repository.AuditLogRepository, log zerolog.Logger, failures prometheus.Counter, renderer ReportRenderer) *Recorder {
	return &Recorder{
		repo:     repo,
		log:      log.With().Str("component", "audit").Logger(),
		failures: failures,
		renderer: renderer,
		now:      time.Now,
	}
}

// ParseAction valida un tipo de acción recibido desde afuera (sin coerción).
func ParseAction(s string) (string, error) {
	action := strings.TrimSpace(s)
	if !entity.IsValidAuditAction(action) {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidAction, s)
	}
	return action, nil
}

// Record persiste la entrada. Entradas sin actor resuelto se descartan salvo LOGIN/LOGOUT.
func (r *Recorder) Record(ctx context.Context, e ports.AuditEntry) {
	action, err := ParseAction(e.Action)
	if err != nil {
		r.log.Warn().Err(err).Msg("acción de auditoría descartada")
		return
	}
	if !e.Actor.Valid() && action != entity.ActionLogin && action != entity.ActionLogout {
		r.log.Warn().Str("action", action).Msg("acción de auditoría sin usuario resuelto, descartada")
		return
	}

	entry := &entity.AuditLog{
		ID:          uuid.New().String(),
		UserID:      e.Actor.ID,
		UserRole:    e.Actor.Role,
		ActionType:  action,
		Description: e.Description,
		TargetID:    e.TargetID,
		IPAddress:   e.Actor.IP,
		CreatedAt:   r.now().UTC(),
	}

	// La escritura no depende de la cancelación de la petición que la originó.
	wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), writeTimeout)
	defer cancel()
	if err := r.repo.Append(wctx, entry); err != nil {
		if r.failures != nil {
			r.failures.Inc()
		}
		r.log.Error().Err(err).
			Str("action", action).
			Str("user_id", entry.UserID).
			Str("target_id", entry.TargetID).
			Msg("no se pudo registrar auditoría")
	}
}

// List devuelve las últimas entradas, más recientes primero.
func (r *Recorder) List(ctx context.Context) ([]dto.AuditLogResponse, error) {
	logs, err := r.repo.ListRecent(ctx, RecentLimit)
	if err != nil {
		return nil, fmt.Errorf("audit: listar: %w", err)
	}
	out := make([]dto.AuditLogResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, dto.NewAuditLogResponse(l))
	}
	return out, nil
}

// Report genera el PDF con las mismas entradas que List.
func (r *Recorder) Report(ctx context.Context) ([]byte, error) {
	if r.renderer == nil {
		return nil, fmt.Errorf("audit: reporte PDF no configurado")
	}
	logs, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	return r.renderer.RenderAuditReport(logs, r.now())
}
