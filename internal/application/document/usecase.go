// Package document gestiona la metadata de archivos subidos y su binario en el almacenamiento.
package document

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/intranet-api/internal/application/dto"
	"github.com/jhoicas/intranet-api/internal/application/ports"
	"github.com/jhoicas/intranet-api/internal/domain"
	"github.com/jhoicas/intranet-api/internal/domain/access"
	"github.com/jhoicas/intranet-api/internal/domain/entity"
	"github.com/jhoicas/intranet-api/internal/domain/repository"
	"github.com/jhoicas/intranet-api/internal/domain/upload"
)

// UseCase casos de uso de documentos.
type UseCase struct {
	repo     repository.DocumentRepository
	storage  ports.FileStorage
	audit    ports.AuditRecorder
	log      zerolog.Logger
	maxBytes int64
	now      func() time.Time
}

// NewUseCase construye el caso de uso. maxBytes <= 0 usa el límite por defecto.
func NewUseCase(repo repository.DocumentRepository, storage ports.FileStorage, audit ports.AuditRecorder, log zerolog.Logger, maxBytes int64) *UseCase {
	return &UseCase{
		repo:     repo,
		storage:  storage,
		audit:    audit,
		log:      log.With().Str("component", "documents").Logger(),
		maxBytes: maxBytes,
		now:      time.Now,
	}
}

// Upload valida el archivo, lo guarda y registra su metadata.
// Si la metadata no se puede guardar, el objeto recién subido se elimina.
func (uc *UseCase) Upload(ctx context.Context, actor access.Actor, file *ports.Upload, category string) (*dto.DocumentResponse, error) {
	if file == nil {
		return nil, fmt.Errorf("%w: no se proporcionó ningún archivo", domain.ErrValidation)
	}
	if err := upload.Check(file.FileName, file.ContentType, file.Size, uc.maxBytes); err != nil {
		return nil, err
	}
	category = strings.TrimSpace(category)
	if category == "" {
		category = entity.DefaultDocumentCategory
	}

	now := uc.now().UTC()
	obj, err := uc.storage.Save(ctx, upload.ObjectKey(actor.DocumentNumber, file.FileName, now), file.Body, file.Size, file.ContentType)
	if err != nil {
		return nil, fmt.Errorf("documents: guardar archivo: %w", err)
	}

	doc := &entity.Document{
		ID:           uuid.New().String(),
		FileName:     file.FileName,
		FilePath:     obj.Key,
		MimeType:     file.ContentType,
		FileSize:     obj.Size,
		UploadedBy:   actor.ID,
		UploaderRole: actor.Role,
		Category:     category,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, doc); err != nil {
		if derr := uc.storage.Delete(ctx, obj.Key); derr != nil {
			uc.log.Warn().Err(derr).Str("key", obj.Key).Msg("no se pudo borrar el archivo huérfano")
		}
		return nil, fmt.Errorf("documents: guardar metadata: %w", err)
	}

	uc.audit.Record(ctx, ports.AuditEntry{
		Actor:       actor,
		Action:      entity.ActionDocUpload,
		Description: fmt.Sprintf("Documento subido: %s. Categoría: %s.", doc.FileName, doc.Category),
		TargetID:    doc.ID,
	})
	resp := dto.NewDocumentResponse(doc)
	return &resp, nil
}

// List devuelve todos los documentos, más recientes primero (roles admin, talento, servicio).
func (uc *UseCase) List(ctx context.Context, actor access.Actor) ([]dto.DocumentResponse, error) {
	if !access.HasRole(actor.Role, access.DocumentRoles...) {
		return nil, fmt.Errorf("%w: el rol %q no puede ver documentos", domain.ErrForbidden, actor.Role)
	}
	docs, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("documents: listar: %w", err)
	}
	out := make([]dto.DocumentResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, dto.NewDocumentResponse(d))
	}
	return out, nil
}

// Download devuelve la metadata y el contenido. ErrPhysicalFileMissing si el objeto ya no existe.
// El llamador debe cerrar el ReadCloser.
func (uc *UseCase) Download(ctx context.Context, id string) (*entity.Document, io.ReadCloser, error) {
	doc, err := uc.find(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	rc, err := uc.storage.Open(ctx, doc.FilePath)
	if err != nil {
		if errors.Is(err, domain.ErrPhysicalFileMissing) {
			uc.log.Warn().Str("document_id", id).Str("key", doc.FilePath).Msg("referencia rota: archivo físico no encontrado")
		}
		return nil, nil, fmt.Errorf("documents: abrir %s: %w", id, err)
	}
	return doc, rc, nil
}

// Delete elimina el objeto (si ya no existe no es error) y luego la metadata.
func (uc *UseCase) Delete(ctx context.Context, actor access.Actor, id string) error {
	if !access.HasRole(actor.Role, access.DocumentRoles...) {
		return fmt.Errorf("%w: el rol %q no puede eliminar documentos", domain.ErrForbidden, actor.Role)
	}
	doc, err := uc.find(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.storage.Delete(ctx, doc.FilePath); err != nil {
		uc.log.Warn().Err(err).Str("key", doc.FilePath).Msg("no se pudo borrar el archivo físico, se elimina la referencia")
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("documents: eliminar %s: %w", id, err)
	}

	uc.audit.Record(ctx, ports.AuditEntry{
		Actor:       actor,
		Action:      entity.ActionDocDelete,
		Description: fmt.Sprintf("Documento eliminado: %s", doc.FileName),
		TargetID:    doc.ID,
	})
	return nil
}

func (uc *UseCase) find(ctx context.Context, id string) (*entity.Document, error) {
	doc, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("documents: buscar %s: %w", id, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: documento %s", domain.ErrNotFound, id)
	}
	return doc, nil
}
