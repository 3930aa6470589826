package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// ErrEmailAlreadyExists al crear una credencial con un email ya registrado.
var ErrEmailAlreadyExists = fmt.Errorf("%w: el email ya está registrado", domain.ErrInvalidInput)

type userRow struct {
	ID         int64  `db:"id"`
	Email      string `db:"email"`
	Password   string `db:"password"`
	Name       string `db:"name"`
	Lastname   string `db:"lastname"`
	Phone      string `db:"phone"`
	Address    string `db:"address"`
	HouseApt   string `db:"house_apt"`
	City       string `db:"city"`
	State      string `db:"state"`
	PostalCode string `db:"postal_code"`
}

// UserRepo implementación del puerto UserRepository sobre SQLite.
type UserRepo struct {
	db *sqlx.DB
}

// NewUserRepository construye el adaptador SQLite para usuarios.
func NewUserRepository(db *sqlx.DB) *UserRepo {
	return &UserRepo{db: db}
}

// FindByEmail obtiene un usuario por email exacto. (nil, nil) si no existe.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var row userRow
	err := r.db.GetContext(ctx, &row, `
		SELECT id, email, COALESCE(password, '') AS password, COALESCE(name, '') AS name,
		       COALESCE(lastname, '') AS lastname, COALESCE(phone, '') AS phone,
		       COALESCE(address, '') AS address, COALESCE(house_apt, '') AS house_apt,
		       COALESCE(city, '') AS city, COALESCE(state, '') AS state,
		       COALESCE(postal_code, '') AS postal_code
		FROM users WHERE email = ? LIMIT 1`, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &entity.User{
		ID:           row.ID,
		Email:        row.Email,
		PasswordHash: row.Password,
		Name:         row.Name,
		Lastname:     row.Lastname,
		Phone:        row.Phone,
		Address:      row.Address,
		HouseApt:     row.HouseApt,
		City:         row.City,
		State:        row.State,
		PostalCode:   row.PostalCode,
	}, nil
}

// Create persiste una credencial nueva.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) (int64, error) {
	res, err := r.db.NamedExecContext(ctx, `
		INSERT INTO users (email, password, name, lastname, phone, address, house_apt, city, state, postal_code)
		VALUES (:email, :password, :name, :lastname, :phone, :address, :house_apt, :city, :state, :postal_code)`,
		userRow{
			Email: u.Email, Password: u.PasswordHash, Name: u.Name, Lastname: u.Lastname,
			Phone: u.Phone, Address: u.Address, HouseApt: u.HouseApt, City: u.City,
			State: u.State, PostalCode: u.PostalCode,
		})
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrEmailAlreadyExists
		}
		return 0, fmt.Errorf("insert user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	u.ID = id
	return id, nil
}
