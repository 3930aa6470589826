// Package catalog concentra la disciplina de codificación del catálogo: las colecciones
// (images, tags, sizes, colors) y el registro sizeRange se guardan como texto JSON y se
// reconstruyen al leer. Los adaptadores de Postgres y SQLite comparten este código.
package catalog

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// Columns orden canónico de columnas de la tabla products.
var Columns = []string{
	"id", "title", "description", "price", "compare_at_price", "cost_per_item",
	"vendor", "product_type", "category", "sku", "barcode", "quantity",
	"track_inventory", "status", "images", "tags", "sizes", "colors", "size_range",
	"created_at", "updated_at",
}

// SelectList devuelve las columnas separadas por coma para un SELECT.
func SelectList() string {
	return strings.Join(Columns, ", ")
}

// Codec codifica/decodifica filas de products.
// Legacy=true acepta texto heredado (listas separadas por coma) al leer; las escrituras siempre son JSON.
type Codec struct {
	DefaultSizeRange entity.SizeRange
	Legacy           bool
}

// NewCodec construye el codec con el sizeRange por defecto elegido en configuración.
func NewCodec(defaultSizeRange entity.SizeRange, legacy bool) Codec {
	return Codec{DefaultSizeRange: defaultSizeRange, Legacy: legacy}
}

// Row forma cruda de una fila de products tal como la entrega el driver.
type Row struct {
	ID             int64            `db:"id"`
	Title          string           `db:"title"`
	Description    *string          `db:"description"`
	Price          decimal.Decimal  `db:"price"`
	CompareAtPrice *decimal.Decimal `db:"compare_at_price"`
	CostPerItem    *decimal.Decimal `db:"cost_per_item"`
	Vendor         *string          `db:"vendor"`
	ProductType    *string          `db:"product_type"`
	Category       *string          `db:"category"`
	SKU            *string          `db:"sku"`
	Barcode        *string          `db:"barcode"`
	Quantity       int64            `db:"quantity"`
	TrackInventory int64            `db:"track_inventory"`
	Status         int64            `db:"status"`
	Images         *string          `db:"images"`
	Tags           *string          `db:"tags"`
	Sizes          *string          `db:"sizes"`
	Colors         *string          `db:"colors"`
	SizeRange      *string          `db:"size_range"`
	CreatedAt      time.Time        `db:"created_at"`
	UpdatedAt      time.Time        `db:"updated_at"`
}

// Targets devuelve los destinos de Scan en el orden de Columns.
func (r *Row) Targets() []any {
	return []any{
		&r.ID, &r.Title, &r.Description, &r.Price, &r.CompareAtPrice, &r.CostPerItem,
		&r.Vendor, &r.ProductType, &r.Category, &r.SKU, &r.Barcode, &r.Quantity,
		&r.TrackInventory, &r.Status, &r.Images, &r.Tags, &r.Sizes, &r.Colors, &r.SizeRange,
		&r.CreatedAt, &r.UpdatedAt,
	}
}

// Decode materializa una fila: decodifica colecciones y sizeRange.
func (c Codec) Decode(r Row) (*entity.Product, error) {
	p := &entity.Product{
		ID:             r.ID,
		Title:          r.Title,
		Description:    r.Description,
		Price:          r.Price,
		CompareAtPrice: r.CompareAtPrice,
		CostPerItem:    r.CostPerItem,
		Vendor:         r.Vendor,
		ProductType:    r.ProductType,
		Category:       r.Category,
		SKU:            r.SKU,
		Barcode:        r.Barcode,
		Quantity:       int(r.Quantity),
		TrackInventory: r.TrackInventory != 0,
		Status:         entity.StatusFromFlag(r.Status),
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
	var err error
	if p.Images, err = c.DecodeList(r.Images); err != nil {
		return nil, fmt.Errorf("producto %d images: %w", r.ID, err)
	}
	if p.Tags, err = c.DecodeList(r.Tags); err != nil {
		return nil, fmt.Errorf("producto %d tags: %w", r.ID, err)
	}
	if p.Sizes, err = c.DecodeList(r.Sizes); err != nil {
		return nil, fmt.Errorf("producto %d sizes: %w", r.ID, err)
	}
	if p.Colors, err = c.DecodeList(r.Colors); err != nil {
		return nil, fmt.Errorf("producto %d colors: %w", r.ID, err)
	}
	if p.SizeRange, err = c.DecodeSizeRange(r.SizeRange); err != nil {
		return nil, fmt.Errorf("producto %d size_range: %w", r.ID, err)
	}
	return p, nil
}

// DecodeList reconstruye una colección. NULL o vacío → lista vacía.
// Texto que no es JSON se parte por comas solo en modo Legacy; JSON válido que no es
// un arreglo de strings se descarta como lista vacía (mismo criterio del storefront original).
func (c Codec) DecodeList(raw *string) ([]string, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return []string{}, nil
	}
	var out []string
	if err := json.Unmarshal([]byte(*raw), &out); err == nil {
		if out == nil {
			out = []string{}
		}
		return out, nil
	}
	if !c.Legacy {
		return nil, fmt.Errorf("%w: lista no es JSON", domain.ErrCorruptData)
	}
	if json.Valid([]byte(*raw)) {
		return []string{}, nil
	}
	return SplitCSV(*raw), nil
}

// DecodeSizeRange reconstruye sizeRange. NULL o vacío → valor por defecto.
func (c Codec) DecodeSizeRange(raw *string) (entity.SizeRange, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return c.DefaultSizeRange, nil
	}
	var sr entity.SizeRange
	if err := json.Unmarshal([]byte(*raw), &sr); err != nil {
		if c.Legacy {
			return c.DefaultSizeRange, nil
		}
		return entity.SizeRange{}, fmt.Errorf("%w: size_range no es JSON", domain.ErrCorruptData)
	}
	return sr, nil
}

// SplitCSV parte "a, b,,c" en [a b c].
func SplitCSV(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// EncodeList serializa una colección como JSON; nil se guarda como "[]".
func EncodeList(v []string) string {
	if v == nil {
		v = []string{}
	}
	b, _ := json.Marshal(v)
	return string(b)
}

// EncodeSizeRange serializa sizeRange como JSON.
func EncodeSizeRange(sr entity.SizeRange) string {
	b, _ := json.Marshal(sr)
	return string(b)
}

// Assignment par columna/valor listo para un INSERT o UPDATE.
type Assignment struct {
	Column string
	Value  any
}

// InsertAssignments devuelve las columnas de un INSERT (sin id; created_at/updated_at los pone el adaptador).
func InsertAssignments(p *entity.Product) []Assignment {
	return []Assignment{
		{"title", p.Title},
		{"description", p.Description},
		{"price", p.Price},
		{"compare_at_price", p.CompareAtPrice},
		{"cost_per_item", p.CostPerItem},
		{"vendor", p.Vendor},
		{"product_type", p.ProductType},
		{"category", p.Category},
		{"sku", p.SKU},
		{"barcode", p.Barcode},
		{"quantity", p.Quantity},
		{"track_inventory", boolFlag(p.TrackInventory)},
		{"status", p.Status.Flag()},
		{"images", EncodeList(p.Images)},
		{"tags", EncodeList(p.Tags)},
		{"sizes", EncodeList(p.Sizes)},
		{"colors", EncodeList(p.Colors)},
		{"size_range", EncodeSizeRange(p.SizeRange)},
	}
}

// PatchAssignments devuelve solo las columnas presentes en el patch, en orden estable.
func PatchAssignments(p entity.ProductPatch) []Assignment {
	var out []Assignment
	add := func(set bool, col string, v any) {
		if set {
			out = append(out, Assignment{col, v})
		}
	}
	add(p.Title.Set, "title", p.Title.Value)
	add(p.Description.Set, "description", p.Description.Value)
	add(p.Price.Set, "price", p.Price.Value)
	add(p.CompareAtPrice.Set, "compare_at_price", p.CompareAtPrice.Value)
	add(p.CostPerItem.Set, "cost_per_item", p.CostPerItem.Value)
	add(p.Vendor.Set, "vendor", p.Vendor.Value)
	add(p.ProductType.Set, "product_type", p.ProductType.Value)
	add(p.Category.Set, "category", p.Category.Value)
	add(p.SKU.Set, "sku", p.SKU.Value)
	add(p.Barcode.Set, "barcode", p.Barcode.Value)
	add(p.Quantity.Set, "quantity", p.Quantity.Value)
	add(p.TrackInventory.Set, "track_inventory", boolFlag(p.TrackInventory.Value))
	add(p.Status.Set, "status", p.Status.Value.Flag())
	add(p.Images.Set, "images", EncodeList(p.Images.Value))
	add(p.Tags.Set, "tags", EncodeList(p.Tags.Value))
	add(p.Sizes.Set, "sizes", EncodeList(p.Sizes.Value))
	add(p.Colors.Set, "colors", EncodeList(p.Colors.Value))
	add(p.SizeRange.Set, "size_range", EncodeSizeRange(p.SizeRange.Value))
	return out
}

func boolFlag(b bool) int {
	if b {
		return 1
	}
	return 0
}
