package repository

import (
	"context"

	"github.com/jhoicas/intranet-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Los métodos Find* devuelven (nil, nil) cuando no existe el registro.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id string) (*entity.User, error)
	FindByDocument(ctx context.Context, documentNumber string) (*entity.User, error)
	// ExistsByEmailOrDocument informa si ya hay un usuario con ese email o documento.
	ExistsByEmailOrDocument(ctx context.Context, email, documentNumber string) (bool, error)
	Update(ctx context.Context, user *entity.User) error
	List(ctx context.Context) ([]*entity.User, error)
}
