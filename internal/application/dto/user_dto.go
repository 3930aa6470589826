package dto

import "github.com/jhoicas/tienda-api/internal/domain/entity"

// LoginRequest entrada para login. Ambos campos vacíos equivalen a un objeto de credenciales vacío.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse token de sesión más el perfil embebido en él.
type LoginResponse struct {
	Token     string         `json:"token"`
	ExpiresAt int64          `json:"expires_at"`
	User      entity.Profile `json:"user"`
}

// SessionResponse sesión vigente leída desde el token.
type SessionResponse struct {
	User      entity.Profile `json:"user"`
	ExpiresAt int64          `json:"expires_at"`
}
