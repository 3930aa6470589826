package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/application/auth"
	"github.com/jhoicas/tienda-api/internal/application/catalog"
	"github.com/jhoicas/tienda-api/internal/application/checkout"
	"github.com/jhoicas/tienda-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CatalogUC     *catalog.UseCase
	AuthUC        *auth.AuthUseCase
	CheckoutUC    *checkout.UseCase
	JWTSecret     string
	ProtectWrites bool // escrituras de productos detrás de AuthMiddleware
	Log           *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	api := app.Group("/api")

	// Auth (público). /session acepta POST como alias de /login.
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, log)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/session", authHandler.Login)
	authGroup.Get("/session", authHandler.Session)

	// Products: lectura pública; escrituras opcionalmente protegidas
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.CatalogUC, log)
	write := func(c *fiber.Ctx) error { return c.Next() }
	if deps.ProtectWrites {
		write = AuthMiddleware(deps.JWTSecret)
	}
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/import", write, productHandler.Import)
	products.Post("/", write, productHandler.Create)
	products.Put("/", write, productHandler.Update)
	products.Put("/:id", write, productHandler.Update)
	products.Delete("/", write, productHandler.Delete)
	products.Delete("/:id", write, productHandler.Delete)

	// Checkout (público)
	if deps.CheckoutUC != nil {
		checkoutGroup := api.Group("/checkout")
		checkoutHandler := NewCheckoutHandler(deps.CheckoutUC, log)
		checkoutGroup.Post("/quote", checkoutHandler.Quote)
		checkoutGroup.Post("/quote.pdf", checkoutHandler.QuotePDF)
	}
}
