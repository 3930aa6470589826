package dto

import (
	"encoding/json"
	"time"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// SizeRangeDTO rango de tallas en las respuestas.
type SizeRangeDTO struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// ProductResponse salida de un producto con todas las colecciones ya decodificadas.
type ProductResponse struct {
	ID             int64        `json:"id"`
	Title          string       `json:"title"`
	Description    *string      `json:"description"`
	Price          json.Number  `json:"price"`
	CompareAtPrice *json.Number `json:"compareAtPrice"`
	CostPerItem    *json.Number `json:"costPerItem"`
	Vendor         *string      `json:"vendor"`
	ProductType    *string      `json:"productType"`
	Category       *string      `json:"category"`
	SKU            *string      `json:"sku"`
	Barcode        *string      `json:"barcode"`
	Quantity       int          `json:"quantity"`
	TrackInventory bool         `json:"trackInventory"`
	Status         string       `json:"status"`
	Images         []string     `json:"images"`
	Tags           []string     `json:"tags"`
	Sizes          []string     `json:"sizes"`
	Colors         []string     `json:"colors"`
	SizeRange      SizeRangeDTO `json:"sizeRange"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

// CreateProductResponse cuerpo del 201.
type CreateProductResponse struct {
	Message string          `json:"message"`
	Data    ProductResponse `json:"data"`
}

// UpdateProductResponse cuerpo del 200 de PUT.
type UpdateProductResponse struct {
	Message string          `json:"message"`
	Data    ProductResponse `json:"data"`
}

// DeleteProductResponse cuerpo del 200 de DELETE.
type DeleteProductResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	DeletedID int64  `json:"deletedId"`
}

// ImportResult resumen de una importación masiva.
type ImportResult struct {
	Created []int64       `json:"created"`
	Failed  []ImportError `json:"failed"`
}

// ImportError fila rechazada durante la importación.
type ImportError struct {
	Line  int    `json:"line"`
	Error string `json:"error"`
}

// ToProductResponse convierte la entidad en la salida JSON.
func ToProductResponse(p *entity.Product) *ProductResponse {
	if p == nil {
		return nil
	}
	out := &ProductResponse{
		ID:             p.ID,
		Title:          p.Title,
		Description:    p.Description,
		Price:          json.Number(p.Price.String()),
		Vendor:         p.Vendor,
		ProductType:    p.ProductType,
		Category:       p.Category,
		SKU:            p.SKU,
		Barcode:        p.Barcode,
		Quantity:       p.Quantity,
		TrackInventory: p.TrackInventory,
		Status:         string(p.Status),
		Images:         nonNil(p.Images),
		Tags:           nonNil(p.Tags),
		Sizes:          nonNil(p.Sizes),
		Colors:         nonNil(p.Colors),
		SizeRange:      SizeRangeDTO{Min: p.SizeRange.Min, Max: p.SizeRange.Max},
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
	if p.CompareAtPrice != nil {
		n := json.Number(p.CompareAtPrice.String())
		out.CompareAtPrice = &n
	}
	if p.CostPerItem != nil {
		n := json.Number(p.CostPerItem.String())
		out.CostPerItem = &n
	}
	return out
}

func nonNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
