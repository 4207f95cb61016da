package repository

import (
	"context"

	"github.com/jhoicas/intranet-api/internal/domain/entity"
)

// DocumentRepository define el puerto de persistencia de metadata de documentos.
type DocumentRepository interface {
	Create(ctx context.Context, doc *entity.Document) error
	FindByID(ctx context.Context, id string) (*entity.Document, error)
	// List devuelve todos los documentos, más recientes primero, con Uploader resuelto.
	List(ctx context.Context) ([]*entity.Document, error)
	Delete(ctx context.Context, id string) error
}
