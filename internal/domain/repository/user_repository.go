package repository

import (
	"context"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para las credenciales (DIP).
type UserRepository interface {
	// FindByEmail devuelve (nil, nil) si no existe.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	// Create solo lo usa storectl; la API nunca registra usuarios.
	Create(ctx context.Context, user *entity.User) (int64, error)
}
