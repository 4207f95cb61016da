// Package content implementa el pipeline de actualización de secciones:
// permiso sección × rol, inicialización perezosa, diff con historial,
// escritura condicionada por versión y auditoría.
package content

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/jhoicas/intranet-api/internal/application/dto"
	"github.com/jhoicas/intranet-api/internal/application/ports"
	"github.com/jhoicas/intranet-api/internal/domain"
	"github.com/jhoicas/intranet-api/internal/domain/access"
	"github.com/jhoicas/intranet-api/internal/domain/content"
	"github.com/jhoicas/intranet-api/internal/domain/entity"
	"github.com/jhoicas/intranet-api/internal/domain/repository"
)

// MaxSaveAttempts intentos del ciclo leer-aplicar-guardar ante conflictos de versión.
const MaxSaveAttempts = 3

// Pipeline media todas las escrituras sobre el contenido de secciones.
type Pipeline struct {
	repo      repository.ContentRepository
	users     repository.UserRepository
	defaults  *content.Defaults
	audit     ports.AuditRecorder
	log       zerolog.Logger
	conflicts prometheus.Counter
	now       func() time.Time
}

// NewPipeline construye el pipeline. conflicts puede ser nil.
func NewPipeline(
	repo repository.ContentRepository,
	users repository.UserRepository,
	defaults *content.Defaults,
	audit ports.AuditRecorder,
	log zerolog.Logger,
	conflicts prometheus.Counter,
) *Pipeline {
	return &Pipeline{
		repo:      repo,
		users:     users,
		defaults:  defaults,
		audit:     audit,
		log:       log.With().Str("component", "content").Logger(),
		conflicts: conflicts,
		now:       time.Now,
	}
}

// Get devuelve el contenido de la sección, inicializándolo con las herramientas por defecto si hace falta.
func (p *Pipeline) Get(ctx context.Context, section string) (*entity.Content, error) {
	if !entity.IsValidSection(section) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidSection, section)
	}
	for attempt := 1; ; attempt++ {
		c, initialized, err := p.load(ctx, section)
		if err != nil {
			return nil, err
		}
		if !initialized {
			return c, nil
		}
		err = p.repo.Save(ctx, c)
		if err == nil {
			p.log.Info().Str("section", section).Int("tools", len(c.Tools)).Msg("contenido inicializado con herramientas por defecto")
			return c, nil
		}
		// Otra petición inicializó la sección al mismo tiempo: releer.
		if !errors.Is(err, domain.ErrVersionConflict) || attempt >= MaxSaveAttempts {
			return nil, fmt.Errorf("content: inicializar %s: %w", section, err)
		}
	}
}

// UpdateSection aplica updates (campo → valor) a la sección, registra historial por cada
// campo que cambió y audita CONTENT_UPDATE. Claves desconocidas se ignoran.
func (p *Pipeline) UpdateSection(ctx context.Context, section string, actor access.Actor, updates map[string]any) (*entity.Content, error) {
	if err := access.CanEditSection(section, actor.Role); err != nil {
		return nil, err
	}

	var changed []entity.HistoryEntry
	c, err := p.mutate(ctx, section, func(c *entity.Content, now time.Time) error {
		entries, err := content.ApplyUpdates(c, updates, actor.ID, now)
		if err != nil {
			return err
		}
		c.History = append(c.History, entries...)
		changed = entries
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(changed) > 0 {
		fields := make([]string, len(changed))
		for i, h := range changed {
			fields[i] = h.Field
		}
		p.audit.Record(ctx, ports.AuditEntry{
			Actor:       actor,
			Action:      entity.ActionContentUpdate,
			Description: fmt.Sprintf("Actualizó la sección %s: %s", section, strings.Join(fields, ", ")),
			TargetID:    c.ID,
		})
	}
	return c, nil
}

// UpdateToolValue cambia la URL de una herramienta embebida. La búsqueda por nombre
// ignora mayúsculas y espacios. ErrToolNotFound si no hay coincidencia.
func (p *Pipeline) UpdateToolValue(ctx context.Context, section, toolName, newURL string, actor access.Actor) (*entity.Content, error) {
	if err := access.CanEditSection(section, actor.Role); err != nil {
		return nil, err
	}
	newURL = strings.TrimSpace(newURL)

	var entry *entity.HistoryEntry
	c, err := p.mutate(ctx, section, func(c *entity.Content, now time.Time) error {
		entry = nil
		i := content.FindTool(c.Tools, toolName)
		if i < 0 {
			return fmt.Errorf("%w: %q en la sección %s", domain.ErrToolNotFound, toolName, section)
		}
		old := c.Tools[i].URL
		if old == newURL {
			return nil
		}
		c.Tools[i].URL = newURL
		entry = &entity.HistoryEntry{
			Field:      "tool_" + toolName,
			OldValue:   old,
			NewValue:   newURL,
			ChangedBy:  actor.ID,
			ChangeDate: now,
		}
		c.History = append(c.History, *entry)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if entry != nil {
		p.audit.Record(ctx, ports.AuditEntry{
			Actor:       actor,
			Action:      entity.ActionContentUpdate,
			Description: fmt.Sprintf("Actualizó el enlace de la herramienta %q en la sección %s", toolName, section),
			TargetID:    c.ID,
		})
	}
	return c, nil
}

// History devuelve el historial de la sección, más reciente primero (solo admin).
func (p *Pipeline) History(ctx context.Context, section string, actor access.Actor) ([]dto.HistoryEntryResponse, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: solo admin puede ver el historial", domain.ErrForbidden)
	}
	if !entity.IsValidSection(section) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidSection, section)
	}
	c, err := p.repo.FindBySection(ctx, section)
	if err != nil {
		return nil, fmt.Errorf("content: historial %s: %w", section, err)
	}
	if c == nil {
		return nil, fmt.Errorf("%w: la sección %s no tiene contenido", domain.ErrNotFound, section)
	}

	out := make([]dto.HistoryEntryResponse, len(c.History))
	users := map[string]*dto.UserSummaryResponse{}
	for i, h := range c.History {
		out[i] = dto.HistoryEntryResponse{
			Field:      h.Field,
			OldValue:   h.OldValue,
			NewValue:   h.NewValue,
			ChangedBy:  h.ChangedBy,
			ChangeDate: h.ChangeDate,
			User:       p.resolveUser(ctx, h.ChangedBy, users),
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ChangeDate.After(out[j].ChangeDate) })
	return out, nil
}

// resolveUser busca el autor de un cambio; si no existe (o falla la consulta) se devuelve nil.
func (p *Pipeline) resolveUser(ctx context.Context, id string, cache map[string]*dto.UserSummaryResponse) *dto.UserSummaryResponse {
	if id == "" {
		return nil
	}
	if s, ok := cache[id]; ok {
		return s
	}
	var s *dto.UserSummaryResponse
	u, err := p.users.FindByID(ctx, id)
	if err != nil {
		p.log.Warn().Err(err).Str("user_id", id).Msg("no se pudo resolver autor del historial")
	} else if u != nil {
		s = &dto.UserSummaryResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
	}
	cache[id] = s
	return s
}

// load lee la sección e inicializa en memoria si no existe o no tiene herramientas.
func (p *Pipeline) load(ctx context.Context, section string) (*entity.Content, bool, error) {
	c, err := p.repo.FindBySection(ctx, section)
	if err != nil {
		return nil, false, fmt.Errorf("content: leer %s: %w", section, err)
	}
	if !p.defaults.NeedsInitialization(c) {
		return c, false, nil
	}
	now := p.now().UTC()
	if c == nil {
		return content.New(section, p.defaults, now), true, nil
	}
	c.Tools = p.defaults.ToolsFor(section)
	c.UpdatedAt = now
	return c, true, nil
}

// mutate ejecuta el ciclo leer-aplicar-guardar con reintentos ante ErrVersionConflict.
// apply recibe siempre una copia fresca; si no cambia nada (ni hubo inicialización) no se escribe.
func (p *Pipeline) mutate(ctx context.Context, section string, apply func(c *entity.Content, now time.Time) error) (*entity.Content, error) {
	for attempt := 1; ; attempt++ {
		c, initialized, err := p.load(ctx, section)
		if err != nil {
			return nil, err
		}
		historyLen := len(c.History)
		now := p.now().UTC()
		if err := apply(c, now); err != nil {
			return nil, err
		}
		if !initialized && len(c.History) == historyLen {
			return c, nil
		}
		c.UpdatedAt = now

		err = p.repo.Save(ctx, c)
		if err == nil {
			return c, nil
		}
		if !errors.Is(err, domain.ErrVersionConflict) {
			return nil, fmt.Errorf("content: guardar %s: %w", section, err)
		}
		if p.conflicts != nil {
			p.conflicts.Inc()
		}
		p.log.Warn().Str("section", section).Int("attempt", attempt).Msg("conflicto de versión al guardar contenido")
		if attempt >= MaxSaveAttempts {
			return nil, fmt.Errorf("content: guardar %s tras %d intentos: %w", section, attempt, err)
		}
	}
}
