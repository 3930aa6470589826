package dto

import "encoding/json"

// QuoteItemRequest línea del carrito enviada por el cliente.
type QuoteItemRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// QuoteRequest carrito completo más el método de envío.
type QuoteRequest struct {
	Items    []QuoteItemRequest `json:"items"`
	Shipping string             `json:"shipping"`
}

// QuoteLine línea valorizada.
type QuoteLine struct {
	ProductID int64       `json:"productId"`
	Title     string      `json:"title"`
	Image     string      `json:"image,omitempty"`
	Quantity  int         `json:"quantity"`
	UnitPrice json.Number `json:"unitPrice"`
	LineTotal json.Number `json:"lineTotal"`
}

// QuoteResponse resumen del pedido antes de pagar.
type QuoteResponse struct {
	Lines    []QuoteLine `json:"lines"`
	Shipping string      `json:"shipping"`
	Subtotal json.Number `json:"subtotal"`
	Tax      json.Number `json:"tax"`
	TaxRate  json.Number `json:"taxRate"`
	Delivery json.Number `json:"delivery"`
	Total    json.Number `json:"total"`
}
