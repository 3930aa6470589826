package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
	pkgjwt "github.com/jhoicas/tienda-api/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "tienda-api-test"
	testExpMin    = 60
)

var testProfile = entity.Profile{
	ID:       "7",
	Name:     "Ana",
	Lastname: "Pérez",
	Email:    "ana@tienda.test",
	City:     "Bogotá",
}

func TestJWT_GenerateAndParse_ConPerfil(t *testing.T) {
	tok, exp, err := pkgjwt.Generate(testJWTSecret, testProfile, testIssuer, testExpMin)
	require.NoError(t, err)
	require.NotEmpty(t, tok)
	assert.WithinDuration(t, time.Now().Add(testExpMin*time.Minute), exp, 5*time.Second)

	claims, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, testProfile, claims.Profile)
	assert.Equal(t, "7", claims.Subject)
	assert.Equal(t, testIssuer, claims.Issuer)
	assert.NotEmpty(t, claims.RegisteredClaims.ID, "cada token lleva un jti")
}

func TestJWT_JTIUnico(t *testing.T) {
	a, _, err := pkgjwt.Generate(testJWTSecret, testProfile, testIssuer, testExpMin)
	require.NoError(t, err)
	b, _, err := pkgjwt.Generate(testJWTSecret, testProfile, testIssuer, testExpMin)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestJWT_TokenExpirado_RetornaError(t *testing.T) {
	// Token con expiración -1 minuto (ya expirado)
	tok, _, err := pkgjwt.Generate(testJWTSecret, testProfile, testIssuer, -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testJWTSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestJWT_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, _, err := pkgjwt.Generate(testJWTSecret, testProfile, testIssuer, testExpMin)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}

func TestJWT_SecretVacio(t *testing.T) {
	_, _, err := pkgjwt.Generate("", testProfile, testIssuer, testExpMin)
	assert.Error(t, err)
}
