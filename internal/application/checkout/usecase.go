// Package checkout valoriza el carrito del cliente: subtotal, impuesto, envío y total.
package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// Métodos de envío y su recargo sobre el subtotal.
const (
	ShippingStandard = "standard"
	ShippingExpress  = "express"
	ShippingPriority = "priority"
)

var shippingRates = map[string]decimal.Decimal{
	ShippingStandard: decimal.RequireFromString("0.10"),
	ShippingExpress:  decimal.RequireFromString("0.15"),
	ShippingPriority: decimal.RequireFromString("0.20"),
}

// Line línea del pedido ya valorizada.
type Line struct {
	Product   *entity.Product
	Quantity  int
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

// Quote resumen del pedido.
type Quote struct {
	Lines     []Line
	Shipping  string
	Subtotal  decimal.Decimal
	TaxRate   decimal.Decimal
	Tax       decimal.Decimal
	Delivery  decimal.Decimal
	Total     decimal.Decimal
	CreatedAt time.Time
}

// UseCase casos de uso de checkout.
type UseCase struct {
	products ProductReader
	pdf      QuotePDFGenerator
	taxRate  decimal.Decimal
}

// NewUseCase construye el caso de uso. pdf puede ser nil si no se expone el PDF.
func NewUseCase(products ProductReader, pdf QuotePDFGenerator, taxRate decimal.Decimal) *UseCase {
	return &UseCase{products: products, pdf: pdf, taxRate: taxRate}
}

// Quote valida el carrito y calcula totales. Todas las líneas inválidas se reportan juntas.
func (uc *UseCase) Quote(ctx context.Context, in dto.QuoteRequest) (*Quote, error) {
	verr := &domain.ValidationError{}
	shipping := strings.ToLower(strings.TrimSpace(in.Shipping))
	if shipping == "" {
		shipping = ShippingStandard
	}
	rate, ok := shippingRates[shipping]
	if !ok {
		verr.Add("shipping", "debe ser standard, express o priority")
	}
	if len(in.Items) == 0 {
		verr.Add("items", "el carrito está vacío")
		return nil, verr
	}

	// Agrupar por producto conservando el orden de aparición.
	order := make([]int64, 0, len(in.Items))
	qty := make(map[int64]int, len(in.Items))
	for i, item := range in.Items {
		field := fmt.Sprintf("items[%d]", i)
		if item.ProductID <= 0 {
			verr.Add(field+".productId", "id de producto inválido")
			continue
		}
		if item.Quantity < 1 {
			verr.Add(field+".quantity", "debe ser al menos 1")
			continue
		}
		if _, seen := qty[item.ProductID]; !seen {
			order = append(order, item.ProductID)
		}
		qty[item.ProductID] += item.Quantity
	}

	quote := &Quote{Shipping: shipping, TaxRate: uc.taxRate, CreatedAt: time.Now()}
	for _, id := range order {
		field := fmt.Sprintf("product[%d]", id)
		p, err := uc.products.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				verr.Add(field, "producto no encontrado")
				continue
			}
			return nil, err
		}
		if p.Status != entity.StatusActive {
			verr.Add(field, "producto no disponible")
			continue
		}
		n := qty[id]
		if p.TrackInventory && n > p.Quantity {
			verr.Add(field, fmt.Sprintf("stock insuficiente (disponible %d)", p.Quantity))
			continue
		}
		lineTotal := p.Price.Mul(decimal.NewFromInt(int64(n)))
		quote.Lines = append(quote.Lines, Line{Product: p, Quantity: n, UnitPrice: p.Price, LineTotal: lineTotal})
		quote.Subtotal = quote.Subtotal.Add(lineTotal)
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	quote.Tax = quote.Subtotal.Mul(uc.taxRate).Round(2)
	quote.Delivery = quote.Subtotal.Mul(rate).Round(2)
	quote.Total = quote.Subtotal.Add(quote.Tax).Add(quote.Delivery).Round(2)
	return quote, nil
}

// QuotePDF calcula el resumen y lo devuelve como PDF.
func (uc *UseCase) QuotePDF(ctx context.Context, in dto.QuoteRequest) ([]byte, error) {
	if uc.pdf == nil {
		return nil, errors.New("checkout: generador PDF no configurado")
	}
	quote, err := uc.Quote(ctx, in)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateQuotePDF(ctx, quote)
}

// ToQuoteResponse convierte el resumen en la salida JSON (importes con 2 decimales).
func ToQuoteResponse(q *Quote) *dto.QuoteResponse {
	out := &dto.QuoteResponse{
		Lines:    make([]dto.QuoteLine, 0, len(q.Lines)),
		Shipping: q.Shipping,
		Subtotal: money(q.Subtotal),
		Tax:      money(q.Tax),
		TaxRate:  json.Number(q.TaxRate.String()),
		Delivery: money(q.Delivery),
		Total:    money(q.Total),
	}
	for _, l := range q.Lines {
		line := dto.QuoteLine{
			ProductID: l.Product.ID,
			Title:     l.Product.Title,
			Quantity:  l.Quantity,
			UnitPrice: money(l.UnitPrice),
			LineTotal: money(l.LineTotal),
		}
		if len(l.Product.Images) > 0 {
			line.Image = l.Product.Images[0]
		}
		out.Lines = append(out.Lines, line)
	}
	return out
}

func money(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}
