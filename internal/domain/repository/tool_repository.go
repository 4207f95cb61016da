package repository

import (
	"context"

	"github.com/jhoicas/intranet-api/internal/domain/entity"
)

// ToolRepository define el puerto de persistencia del catálogo de herramientas.
type ToolRepository interface {
	Create(ctx context.Context, tool *entity.Tool) error
	FindByID(ctx context.Context, id string) (*entity.Tool, error)
	// ListBySection devuelve las herramientas de la sección, más recientes primero.
	ListBySection(ctx context.Context, section string) ([]*entity.Tool, error)
	Update(ctx context.Context, tool *entity.Tool) error
	Delete(ctx context.Context, id string) error
}
