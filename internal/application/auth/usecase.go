package auth

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	"github.com/jhoicas/tienda-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// dummyHash se compara cuando el email no existe, para que el tiempo de respuesta
// no revele si la cuenta existe.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("tienda-api-dummy"), bcrypt.DefaultCost)

// AuthUseCase emite sesiones a partir de email/password.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Login verifica email/password y emite el token con el perfil.
// Email o password vacíos, email inexistente y password incorrecto devuelven
// el mismo domain.ErrUnauthorized, sin más detalle.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" {
		return nil, domain.ErrUnauthorized
	}
	user, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || user.PasswordHash == "" {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(in.Password))
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	profile := user.Profile()
	token, exp, err := jwt.Generate(uc.jwtCfg.Secret, profile, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, ExpiresAt: exp.Unix(), User: profile}, nil
}

// Session valida un token emitido por Login y devuelve el perfil embebido.
func (uc *AuthUseCase) Session(_ context.Context, token string) (*dto.SessionResponse, error) {
	claims, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	out := &dto.SessionResponse{User: claims.Profile}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Unix()
	}
	return out, nil
}

// HashPassword genera el hash bcrypt usado al dar de alta credenciales (storectl).
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password vacío")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CreateUser da de alta una credencial fuera de la API (no hay flujo de registro).
func (uc *AuthUseCase) CreateUser(ctx context.Context, user *entity.User, password string) (int64, error) {
	user.Email = strings.TrimSpace(user.Email)
	if user.Email == "" {
		return 0, domain.ErrInvalidInput
	}
	hash, err := HashPassword(password)
	if err != nil {
		return 0, err
	}
	user.PasswordHash = hash
	return uc.userRepo.Create(ctx, user)
}
