// Package tool gestiona el catálogo de herramientas configurables por sección
// (URL y/o archivo). Toda escritura pasa por la tabla de permisos de secciones.
package tool

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/jhoicas/intranet-api/internal/application/dto"
	"github.com/jhoicas/intranet-api/internal/application/ports"
	"github.com/jhoicas/intranet-api/internal/domain"
	"github.com/jhoicas/intranet-api/internal/domain/access"
	"github.com/jhoicas/intranet-api/internal/domain/entity"
	"github.com/jhoicas/intranet-api/internal/domain/repository"
	"github.com/jhoicas/intranet-api/internal/domain/upload"
)

// UseCase casos de uso del catálogo de herramientas.
type UseCase struct {
	repo     repository.ToolRepository
	storage  ports.FileStorage
	audit    ports.AuditRecorder
	log      zerolog.Logger
	maxBytes int64
	now      func() time.Time
}

// NewUseCase construye el caso de uso. maxBytes <= 0 usa el límite por defecto.
func NewUseCase(repo repository.ToolRepository, storage ports.FileStorage, audit ports.AuditRecorder, log zerolog.Logger, maxBytes int64) *UseCase {
	return &UseCase{
		repo:     repo,
		storage:  storage,
		audit:    audit,
		log:      log.With().Str("component", "tools").Logger(),
		maxBytes: maxBytes,
		now:      time.Now,
	}
}

// Create registra una herramienta en el catálogo de la sección.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateToolRequest, actor access.Actor) (*dto.ToolResponse, error) {
	title := strings.TrimSpace(in.Title)
	category := strings.TrimSpace(in.Category)
	if title == "" || in.Section == "" || category == "" {
		return nil, fmt.Errorf("%w: título, sección y categoría son obligatorios", domain.ErrValidation)
	}
	if err := access.CanEditSection(in.Section, actor.Role); err != nil {
		return nil, err
	}

	now := uc.now().UTC()
	t := &entity.Tool{
		ID:          uuid.New().String(),
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Section:     in.Section,
		Category:    category,
		Config:      entity.ToolConfig{AllowsURL: in.Config.AllowsURL, AllowsFile: in.Config.AllowsFile},
		CreatedBy:   actor.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("tools: crear: %w", err)
	}

	uc.audit.Record(ctx, ports.AuditEntry{
		Actor:       actor,
		Action:      entity.ActionToolCreate,
		Description: fmt.Sprintf("Creó herramienta %q en sección %s", t.Title, t.Section),
		TargetID:    t.ID,
	})
	resp := dto.NewToolResponse(t)
	return &resp, nil
}

// ListBySection devuelve las herramientas agrupadas por categoría (orden alfabético en español);
// dentro de cada categoría, más recientes primero.
func (uc *UseCase) ListBySection(ctx context.Context, section string) (*dto.ToolsBySectionResponse, error) {
	if !entity.IsValidSection(section) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidSection, section)
	}
	tools, err := uc.repo.ListBySection(ctx, section)
	if err != nil {
		return nil, fmt.Errorf("tools: listar %s: %w", section, err)
	}

	groups := map[string][]dto.ToolResponse{}
	for _, t := range tools {
		groups[t.Category] = append(groups[t.Category], dto.NewToolResponse(t))
	}
	categories := make([]string, 0, len(groups))
	for c := range groups {
		categories = append(categories, c)
	}
	// Un Collator no es seguro para uso concurrente: uno por llamada.
	collate.New(language.Spanish, collate.IgnoreCase).SortStrings(categories)

	out := &dto.ToolsBySectionResponse{Section: section, Categories: make([]dto.ToolCategoryGroup, 0, len(categories))}
	for _, c := range categories {
		items := groups[c]
		sort.SliceStable(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
		out.Categories = append(out.Categories, dto.ToolCategoryGroup{Category: c, Tools: items})
	}
	return out, nil
}

// UpdateData actualiza el valor de la herramienta: urlValue solo si la herramienta acepta URL,
// file solo si acepta archivo. Sin historial; se audita qué partes cambiaron.
func (uc *UseCase) UpdateData(ctx context.Context, id string, urlValue *string, file *ports.Upload, actor access.Actor) (*dto.ToolResponse, error) {
	t, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("tools: buscar %s: %w", id, err)
	}
	if t == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrToolNotFound, id)
	}
	if err := access.CanEditSection(t.Section, actor.Role); err != nil {
		return nil, err
	}

	applyFile := file != nil && t.Config.AllowsFile
	if applyFile {
		if err := upload.Check(file.FileName, file.ContentType, file.Size, uc.maxBytes); err != nil {
			return nil, err
		}
	}

	now := uc.now().UTC()
	var parts []string
	if urlValue != nil && t.Config.AllowsURL {
		t.URLValue = strings.TrimSpace(*urlValue)
		parts = append(parts, "cambió URL")
	}

	var stored, replaced string
	if applyFile {
		key := upload.ObjectKey("tools/"+t.ID, file.FileName, now)
		obj, err := uc.storage.Save(ctx, key, file.Body, file.Size, file.ContentType)
		if err != nil {
			return nil, fmt.Errorf("tools: guardar archivo: %w", err)
		}
		stored, replaced = obj.Key, t.FileURL
		t.FileURL = obj.Key
		t.OriginalFileName = file.FileName
		parts = append(parts, "subió nuevo archivo")
	}

	if len(parts) == 0 {
		resp := dto.NewToolResponse(t)
		return &resp, nil
	}

	t.UpdatedAt = now
	if err := uc.repo.Update(ctx, t); err != nil {
		if stored != "" {
			uc.release(ctx, stored, "archivo huérfano tras fallo al guardar herramienta")
		}
		return nil, fmt.Errorf("tools: actualizar %s: %w", id, err)
	}
	if replaced != "" && replaced != stored && !uc.storage.KeepsReplacedObjects() {
		uc.release(ctx, replaced, "archivo reemplazado")
	}

	uc.audit.Record(ctx, ports.AuditEntry{
		Actor:       actor,
		Action:      entity.ActionToolUpdate,
		Description: fmt.Sprintf("Actualizó herramienta %q (%s)", t.Title, strings.Join(parts, ", ")),
		TargetID:    t.ID,
	})
	resp := dto.NewToolResponse(t)
	return &resp, nil
}

// Delete elimina la herramienta y, si corresponde, libera su archivo.
func (uc *UseCase) Delete(ctx context.Context, id string, actor access.Actor) error {
	t, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("tools: buscar %s: %w", id, err)
	}
	if t == nil {
		return fmt.Errorf("%w: %s", domain.ErrToolNotFound, id)
	}
	if err := access.CanEditSection(t.Section, actor.Role); err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("tools: eliminar %s: %w", id, err)
	}
	// Al eliminar la herramienta el archivo se libera en cualquier backend.
	if t.FileURL != "" {
		uc.release(ctx, t.FileURL, "archivo de herramienta eliminada")
	}

	uc.audit.Record(ctx, ports.AuditEntry{
		Actor:       actor,
		Action:      entity.ActionToolDelete,
		Description: fmt.Sprintf("Eliminó herramienta %q", t.Title),
		TargetID:    t.ID,
	})
	return nil
}

func (uc *UseCase) release(ctx context.Context, key, reason string) {
	if err := uc.storage.Delete(ctx, key); err != nil {
		uc.log.Warn().Err(err).Str("key", key).Msg("no se pudo liberar " + reason)
	}
}
