package http

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/application/checkout"
	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/pkg/logger"
)

// CheckoutHandler cotiza el carrito.
type CheckoutHandler struct {
	uc  *checkout.UseCase
	log *logger.Logger
}

// NewCheckoutHandler construye el handler.
func NewCheckoutHandler(uc *checkout.UseCase, log *logger.Logger) *CheckoutHandler {
	return &CheckoutHandler{uc: uc, log: log}
}

func parseQuoteRequest(c *fiber.Ctx) (dto.QuoteRequest, bool) {
	var in dto.QuoteRequest
	if err := json.Unmarshal(c.Body(), &in); err != nil {
		return in, false
	}
	return in, true
}

// Quote godoc
// @Summary      Cotizar carrito
// @Description  shipping: standard | express | priority. Todos los problemas del carrito se devuelven juntos.
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        body  body  dto.QuoteRequest  true  "Items y método de envío"
// @Success      200   {object}  dto.QuoteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/checkout/quote [post]
func (h *CheckoutHandler) Quote(c *fiber.Ctx) error {
	in, ok := parseQuoteRequest(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	q, err := h.uc.Quote(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(checkout.ToQuoteResponse(q))
}

// QuotePDF godoc
// @Summary      Cotización en PDF
// @Tags         checkout
// @Accept       json
// @Produce      application/pdf
// @Param        body  body  dto.QuoteRequest  true  "Items y método de envío"
// @Success      200   {file}    binary
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/checkout/quote.pdf [post]
func (h *CheckoutHandler) QuotePDF(c *fiber.Ctx) error {
	in, ok := parseQuoteRequest(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	pdf, err := h.uc.QuotePDF(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="cotizacion-%s.pdf"`, time.Now().Format("20060102-150405")))
	return c.Send(pdf)
}
