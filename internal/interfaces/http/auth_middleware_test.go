package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
	apphttp "github.com/jhoicas/tienda-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/tienda-api/pkg/jwt"
)

func newJSONRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// profileApp expone el perfil que dejó el middleware.
func profileApp() *fiber.App {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		p, ok := apphttp.GetProfile(c)
		if !ok {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.JSON(p)
	})
	return app
}

func TestAuthMiddleware_PerfilEnLocals(t *testing.T) {
	token, _, err := pkgjwt.Generate(testJWTSecret, entity.Profile{ID: "7", Email: "luis@tienda.test", City: "Cali"}, testIssuer, testExpMin)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "bearer "+token)
	resp, err := profileApp().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode, "el esquema Bearer no distingue mayúsculas")
	var got entity.Profile
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, "luis@tienda.test", got.Email)
	assert.Equal(t, "Cali", got.City)
}

func TestAuthMiddleware_Rechazos(t *testing.T) {
	otherToken, _, err := pkgjwt.Generate("otro-secreto", entity.Profile{ID: "7"}, testIssuer, testExpMin)
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
	}{
		{"sin header", ""},
		{"sin esquema", otherToken},
		{"esquema Basic", "Basic dXNlcjpwYXNz"},
		{"bearer vacío", "Bearer "},
		{"firma de otro secreto", "Bearer " + otherToken},
	}
	app := profileApp()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestAuthMiddleware_TokenExpirado(t *testing.T) {
	token, _, err := pkgjwt.Generate(testJWTSecret, entity.Profile{ID: "7"}, testIssuer, -1)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := profileApp().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProtectWrites_TokenFirmadoFueraDelLogin(t *testing.T) {
	env := buildTestApp(t, true)
	token, _, err := pkgjwt.Generate(testJWTSecret, entity.Profile{ID: "1", Email: testEmail}, testIssuer, testExpMin)
	require.NoError(t, err)

	status, _ := env.do(t, http.MethodPut, "/api/products/1", `{"title":"x"}`)
	assert.Equal(t, http.StatusUnauthorized, status)

	id := env.createProduct(t, "Authorization", "Bearer "+token)
	assert.Positive(t, id)
}
