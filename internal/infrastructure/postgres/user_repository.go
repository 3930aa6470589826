package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// ErrEmailAlreadyExists al crear una credencial con un email ya registrado.
var ErrEmailAlreadyExists = fmt.Errorf("%w: el email ya está registrado", domain.ErrInvalidInput)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
// La columna password guarda el hash bcrypt.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// FindByEmail obtiene un usuario por email exacto. (nil, nil) si no existe.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `
		SELECT id, email, COALESCE(password, ''), COALESCE(name, ''), COALESCE(lastname, ''),
		       COALESCE(phone, ''), COALESCE(address, ''), COALESCE(house_apt, ''),
		       COALESCE(city, ''), COALESCE(state, ''), COALESCE(postal_code, '')
		FROM users WHERE email = $1 LIMIT 1`
	var u entity.User
	err := r.q.QueryRow(ctx, query, email).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Lastname, &u.Phone,
		&u.Address, &u.HouseApt, &u.City, &u.State, &u.PostalCode,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &u, nil
}

// Create persiste una credencial nueva (solo storectl).
func (r *UserRepo) Create(ctx context.Context, u *entity.User) (int64, error) {
	query := `
		INSERT INTO users (email, password, name, lastname, phone, address, house_apt, city, state, postal_code)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	var id int64
	err := r.q.QueryRow(ctx, query,
		u.Email, u.PasswordHash, u.Name, u.Lastname, u.Phone, u.Address, u.HouseApt,
		u.City, u.State, u.PostalCode,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrEmailAlreadyExists
		}
		return 0, fmt.Errorf("insert user: %w", err)
	}
	u.ID = id
	return id, nil
}
