package http_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/application/dto"
)

// loginToken inicia sesión con el usuario de prueba y devuelve el token.
func loginToken(t *testing.T, env *testEnv) string {
	t.Helper()
	status, body := env.do(t, http.MethodPost, "/api/auth/login",
		fmt.Sprintf(`{"email":%q,"password":%q}`, testEmail, testPassword))
	require.Equal(t, http.StatusOK, status, string(body))
	return decode[dto.LoginResponse](t, body).Token
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_OK(t *testing.T) {
	env := buildTestApp(t, false)
	status, body := env.do(t, http.MethodPost, "/api/auth/login",
		fmt.Sprintf(`{"email":%q,"password":%q}`, testEmail, testPassword))
	require.Equal(t, http.StatusOK, status)

	out := decode[dto.LoginResponse](t, body)
	assert.NotEmpty(t, out.Token)
	assert.Positive(t, out.ExpiresAt)
	assert.Equal(t, testEmail, out.User.Email)
	assert.Equal(t, "Ana", out.User.Name)
	assert.Equal(t, "Medellín", out.User.City)
	assert.NotContains(t, string(body), "password", "el perfil no expone el password")
}

func TestLogin_AliasSession(t *testing.T) {
	env := buildTestApp(t, false)
	status, body := env.do(t, http.MethodPost, "/api/auth/session",
		fmt.Sprintf(`{"email":%q,"password":%q}`, testEmail, testPassword))
	require.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, decode[dto.LoginResponse](t, body).Token)
}

func TestLogin_FallosIndistinguibles(t *testing.T) {
	env := buildTestApp(t, false)

	wrongStatus, wrongBody := env.do(t, http.MethodPost, "/api/auth/login",
		fmt.Sprintf(`{"email":%q,"password":"otra"}`, testEmail))
	unknownStatus, unknownBody := env.do(t, http.MethodPost, "/api/auth/login",
		`{"email":"nadie@tienda.test","password":"otra"}`)

	assert.Equal(t, http.StatusUnauthorized, wrongStatus)
	assert.Equal(t, http.StatusUnauthorized, unknownStatus)
	assert.JSONEq(t, string(wrongBody), string(unknownBody), "password incorrecto y email inexistente responden igual")
}

func TestLogin_CuerpoInvalido_401(t *testing.T) {
	env := buildTestApp(t, false)
	for _, body := range []string{"", "{", `{"email":""}`, `[]`} {
		status, resp := env.do(t, http.MethodPost, "/api/auth/login", body)
		assert.Equal(t, http.StatusUnauthorized, status, "cuerpo %q", body)
		assert.Equal(t, "UNAUTHORIZED", decode[dto.ErrorResponse](t, resp).Code)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Sesión
// ──────────────────────────────────────────────────────────────────────────────

func TestSession_ConToken(t *testing.T) {
	env := buildTestApp(t, false)
	token := loginToken(t, env)

	status, body := env.do(t, http.MethodGet, "/api/auth/session", "", "Authorization", "Bearer "+token)
	require.Equal(t, http.StatusOK, status)
	out := decode[dto.SessionResponse](t, body)
	assert.Equal(t, testEmail, out.User.Email)
	assert.Equal(t, "Pérez", out.User.Lastname)
	assert.Positive(t, out.ExpiresAt)
}

func TestSession_SinTokenOTokenInvalido_401(t *testing.T) {
	env := buildTestApp(t, false)

	status, body := env.do(t, http.MethodGet, "/api/auth/session", "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "MISSING_TOKEN", decode[dto.ErrorResponse](t, body).Code)

	status, _ = env.do(t, http.MethodGet, "/api/auth/session", "", "Authorization", "Bearer no.es.jwt")
	assert.Equal(t, http.StatusUnauthorized, status)
}
