package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductStatus estado de publicación de un producto. En la tabla se guarda como 1 (active) / 0 (draft).
type ProductStatus string

const (
	StatusActive ProductStatus = "active"
	StatusDraft  ProductStatus = "draft"
)

// Flag devuelve la representación entera almacenada.
func (s ProductStatus) Flag() int {
	if s == StatusDraft {
		return 0
	}
	return 1
}

// StatusFromFlag convierte la columna entera en ProductStatus.
func StatusFromFlag(flag int64) ProductStatus {
	if flag == 0 {
		return StatusDraft
	}
	return StatusActive
}

// SizeRange rango de tallas {min, max}; se persiste como texto JSON.
type SizeRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Product representa un producto del catálogo de la tienda.
// Images, Tags, Sizes, Colors y SizeRange se persisten serializados y se materializan al leer.
type Product struct {
	ID             int64
	Title          string
	Description    *string
	Price          decimal.Decimal
	CompareAtPrice *decimal.Decimal
	CostPerItem    *decimal.Decimal
	Vendor         *string
	ProductType    *string
	Category       *string
	SKU            *string
	Barcode        *string
	Quantity       int
	TrackInventory bool
	Status         ProductStatus
	Images         []string
	Tags           []string
	Sizes          []string
	Colors         []string
	SizeRange      SizeRange
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Optional marca un campo presente en una actualización parcial.
// Set=false significa "no tocar la columna".
type Optional[T any] struct {
	Set   bool
	Value T
}

// Some construye un Optional presente.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: v}
}

// ProductPatch actualización parcial: solo los campos con Set=true se escriben.
type ProductPatch struct {
	Title          Optional[string]
	Description    Optional[*string]
	Price          Optional[decimal.Decimal]
	CompareAtPrice Optional[*decimal.Decimal]
	CostPerItem    Optional[*decimal.Decimal]
	Vendor         Optional[*string]
	ProductType    Optional[*string]
	Category       Optional[*string]
	SKU            Optional[*string]
	Barcode        Optional[*string]
	Quantity       Optional[int]
	TrackInventory Optional[bool]
	Status         Optional[ProductStatus]
	Images         Optional[[]string]
	Tags           Optional[[]string]
	Sizes          Optional[[]string]
	Colors         Optional[[]string]
	SizeRange      Optional[SizeRange]
}

// IsEmpty indica si el patch no modifica ningún campo.
func (p ProductPatch) IsEmpty() bool {
	return !(p.Title.Set || p.Description.Set || p.Price.Set || p.CompareAtPrice.Set ||
		p.CostPerItem.Set || p.Vendor.Set || p.ProductType.Set || p.Category.Set ||
		p.SKU.Set || p.Barcode.Set || p.Quantity.Set || p.TrackInventory.Set ||
		p.Status.Set || p.Images.Set || p.Tags.Set || p.Sizes.Set || p.Colors.Set ||
		p.SizeRange.Set)
}
