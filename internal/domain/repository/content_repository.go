package repository

import (
	"context"

	"github.com/jhoicas/intranet-api/internal/domain/entity"
)

// ContentRepository persiste el documento completo de cada sección.
type ContentRepository interface {
	// FindBySection devuelve (nil, nil) si la sección aún no tiene documento.
	FindBySection(ctx context.Context, section string) (*entity.Content, error)
	// Save inserta (Version == 0) o sobrescribe el documento completo.
	// En sobrescritura exige que la versión almacenada coincida con content.Version;
	// si no coincide devuelve domain.ErrVersionConflict. En éxito incrementa content.Version.
	Save(ctx context.Context, content *entity.Content) error
}
