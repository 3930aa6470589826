package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/application/auth"
	"github.com/jhoicas/tienda-api/internal/application/catalog"
	"github.com/jhoicas/tienda-api/internal/application/checkout"
	domaincatalog "github.com/jhoicas/tienda-api/internal/domain/catalog"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/infrastructure/pdf"
	"github.com/jhoicas/tienda-api/internal/infrastructure/sqlite"
	apphttp "github.com/jhoicas/tienda-api/internal/interfaces/http"
	"github.com/jhoicas/tienda-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "tienda-api-test"
	testExpMin    = 60
	testEmail     = "ana@tienda.test"
	testPassword  = "Secreta123!"
)

var testSizeRange = entity.SizeRange{Min: 18, Max: 45}

type testEnv struct {
	app  *fiber.App
	auth *auth.AuthUseCase
}

// buildTestApp arma la API completa sobre SQLite en memoria, con un usuario de prueba.
func buildTestApp(t *testing.T, protectWrites bool) *testEnv {
	t.Helper()
	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	_, err = sqlite.Migrate(context.Background(), db)
	require.NoError(t, err)

	log := logger.Nop()
	products := sqlite.NewProductRepository(db, domaincatalog.NewCodec(testSizeRange, true))
	catalogUC := catalog.NewUseCase(products, catalog.Defaults{SizeRange: testSizeRange})
	authUC := auth.NewAuthUseCase(sqlite.NewUserRepository(db), auth.JWTConfig{
		Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer,
	})
	_, err = authUC.CreateUser(context.Background(), &entity.User{
		Email: testEmail, Name: "Ana", Lastname: "Pérez", City: "Medellín",
	}, testPassword)
	require.NoError(t, err)
	checkoutUC := checkout.NewUseCase(catalogUC, pdf.NewMarotoQuoteGenerator("Tienda Test"), decimal.RequireFromString("0.19"))

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(log)})
	app.Use(requestid.New())
	app.Use(apphttp.AccessLog(log))
	app.Use(recover.New())
	apphttp.Router(app, apphttp.RouterDeps{
		CatalogUC:     catalogUC,
		AuthUC:        authUC,
		CheckoutUC:    checkoutUC,
		JWTSecret:     testJWTSecret,
		ProtectWrites: protectWrites,
		Log:           log,
	})
	return &testEnv{app: app, auth: authUC}
}

// do lanza la petición y devuelve status y cuerpo.
func (e *testEnv) do(t *testing.T, method, path, body string, headers ...string) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, b
}

func decode[T any](t *testing.T, b []byte) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(b, &out), "cuerpo: %s", string(b))
	return out
}

const validProduct = `{"title":"Camiseta","price":"59.90","images":["a.jpg"],"tags":["verano"],"trackInventory":true,"quantity":5}`

// createProduct crea un producto válido y devuelve su id.
func (e *testEnv) createProduct(t *testing.T, headers ...string) int64 {
	t.Helper()
	status, body := e.do(t, http.MethodPost, "/api/products", validProduct, headers...)
	require.Equal(t, http.StatusCreated, status, string(body))
	out := decode[struct {
		Data struct {
			ID int64 `json:"id"`
		} `json:"data"`
	}](t, body)
	return out.Data.ID
}
