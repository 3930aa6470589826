package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

var fold = cases.Fold()

// decodeInput convierte un cuerpo JSON en un ProductPatch. Solo las claves presentes quedan con Set=true.
// Un cuerpo que no es un objeto JSON devuelve ErrInvalidInput; los campos con tipo o valor
// inválido se acumulan en verr (todos, no solo el primero).
func decodeInput(body []byte) (entity.ProductPatch, *domain.ValidationError, error) {
	var patch entity.ProductPatch
	var raw map[string]json.RawMessage
	if len(bytes.TrimSpace(body)) == 0 {
		return patch, nil, fmt.Errorf("%w: cuerpo vacío", domain.ErrInvalidInput)
	}
	if err := json.Unmarshal(body, &raw); err != nil || raw == nil {
		return patch, nil, fmt.Errorf("%w: el cuerpo debe ser un objeto JSON", domain.ErrInvalidInput)
	}

	verr := &domain.ValidationError{}
	p := inputParser{raw: raw, verr: verr}

	if v, ok := p.requiredString("title"); ok {
		patch.Title = entity.Some(v)
	}
	patch.Description = p.optionalString("description")
	if v, ok := p.decimal("price", false); ok {
		if v == nil || !v.IsPositive() {
			verr.Add("price", "debe ser un número mayor que 0")
		} else {
			patch.Price = entity.Some(*v)
		}
	}
	if v, ok := p.decimal("compareAtPrice", true); ok {
		if v != nil && v.IsNegative() {
			verr.Add("compareAtPrice", "no puede ser negativo")
		} else {
			patch.CompareAtPrice = entity.Some(v)
		}
	}
	if v, ok := p.decimal("costPerItem", true); ok {
		if v != nil && v.IsNegative() {
			verr.Add("costPerItem", "no puede ser negativo")
		} else {
			patch.CostPerItem = entity.Some(v)
		}
	}
	patch.Vendor = p.optionalString("vendor")
	patch.ProductType = p.optionalString("productType")
	patch.Category = p.optionalString("category")
	patch.SKU = p.optionalString("sku")
	patch.Barcode = p.optionalString("barcode")
	if v, ok := p.integer("quantity"); ok {
		if v < 0 {
			verr.Add("quantity", "no puede ser negativo")
		} else {
			patch.Quantity = entity.Some(v)
		}
	}
	if v, ok := p.flag("trackInventory"); ok {
		patch.TrackInventory = entity.Some(v)
	}
	if v, ok := p.status("status"); ok {
		patch.Status = entity.Some(v)
	}
	if v, ok := p.list("images", false); ok {
		if len(v) == 0 {
			verr.Add("images", "debe contener al menos una imagen")
		} else {
			patch.Images = entity.Some(v)
		}
	}
	if v, ok := p.list("tags", true); ok {
		patch.Tags = entity.Some(v)
	}
	if v, ok := p.list("sizes", true); ok {
		patch.Sizes = entity.Some(v)
	}
	if v, ok := p.list("colors", true); ok {
		patch.Colors = entity.Some(v)
	}
	if v, ok := p.sizeRange("sizeRange"); ok {
		patch.SizeRange = entity.Some(v)
	}
	return patch, verr, nil
}

// inputParser lee campos individuales registrando violaciones en verr.
// Cada método devuelve ok=false si la clave no está o si el valor es inválido.
type inputParser struct {
	raw  map[string]json.RawMessage
	verr *domain.ValidationError
}

func (p inputParser) get(key string) (json.RawMessage, bool) {
	v, ok := p.raw[key]
	return v, ok
}

func isNull(v json.RawMessage) bool {
	return string(bytes.TrimSpace(v)) == "null"
}

func (p inputParser) requiredString(key string) (string, bool) {
	v, ok := p.get(key)
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil || isNull(v) {
		p.verr.Add(key, "debe ser un texto")
		return "", false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		p.verr.Add(key, "no puede estar vacío")
		return "", false
	}
	return s, true
}

// optionalString: null o "" limpian la columna (NULL).
func (p inputParser) optionalString(key string) entity.Optional[*string] {
	v, ok := p.get(key)
	if !ok {
		return entity.Optional[*string]{}
	}
	if isNull(v) {
		return entity.Some[*string](nil)
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		p.verr.Add(key, "debe ser un texto")
		return entity.Optional[*string]{}
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return entity.Some[*string](nil)
	}
	return entity.Some(&s)
}

// decimal acepta número JSON o texto numérico. null solo se admite si nullable.
func (p inputParser) decimal(key string, nullable bool) (*decimal.Decimal, bool) {
	v, ok := p.get(key)
	if !ok {
		return nil, false
	}
	if isNull(v) {
		if nullable {
			return nil, true
		}
		p.verr.Add(key, "es requerido")
		return nil, false
	}
	d, err := parseNumber(v)
	if err != nil {
		p.verr.Add(key, "debe ser numérico")
		return nil, false
	}
	return &d, true
}

func parseNumber(v json.RawMessage) (decimal.Decimal, error) {
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return decimal.NewFromString(strings.TrimSpace(s))
	}
	var n json.Number
	if err := json.Unmarshal(v, &n); err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromString(n.String())
}

func (p inputParser) integer(key string) (int, bool) {
	v, ok := p.get(key)
	if !ok {
		return 0, false
	}
	d, err := parseNumber(v)
	if err != nil || !d.IsInteger() || d.GreaterThan(decimal.NewFromInt(1<<31-1)) {
		p.verr.Add(key, "debe ser un entero")
		return 0, false
	}
	return int(d.IntPart()), true
}

// flag acepta true/false, 1/0 y sus formas en texto.
func (p inputParser) flag(key string) (bool, bool) {
	v, ok := p.get(key)
	if !ok {
		return false, false
	}
	b, err := parseFlag(v)
	if err != nil {
		p.verr.Add(key, "debe ser booleano")
		return false, false
	}
	return b, true
}

func parseFlag(v json.RawMessage) (bool, error) {
	var b bool
	if err := json.Unmarshal(v, &b); err == nil && !isNull(v) {
		return b, nil
	}
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return strconv.ParseBool(strings.TrimSpace(s))
	}
	d, err := parseNumber(v)
	if err != nil {
		return false, err
	}
	switch {
	case d.IsZero():
		return false, nil
	case d.Equal(decimal.NewFromInt(1)):
		return true, nil
	}
	return false, fmt.Errorf("flag fuera de rango: %s", d)
}

// status acepta "active"/"draft" (sin distinguir mayúsculas) o un flag booleano.
func (p inputParser) status(key string) (entity.ProductStatus, bool) {
	v, ok := p.get(key)
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		switch entity.ProductStatus(fold.String(strings.TrimSpace(s))) {
		case entity.StatusActive:
			return entity.StatusActive, true
		case entity.StatusDraft:
			return entity.StatusDraft, true
		}
	}
	if b, err := parseFlag(v); err == nil {
		if b {
			return entity.StatusActive, true
		}
		return entity.StatusDraft, true
	}
	p.verr.Add(key, "debe ser active o draft")
	return "", false
}

// list exige un arreglo JSON de textos no vacíos. null → lista vacía si nullable.
func (p inputParser) list(key string, nullable bool) ([]string, bool) {
	v, ok := p.get(key)
	if !ok {
		return nil, false
	}
	if isNull(v) {
		if nullable {
			return []string{}, true
		}
		p.verr.Add(key, "es requerido")
		return nil, false
	}
	var out []string
	if err := json.Unmarshal(v, &out); err != nil {
		p.verr.Add(key, "debe ser un arreglo de textos")
		return nil, false
	}
	for i, item := range out {
		item = strings.TrimSpace(item)
		if item == "" {
			p.verr.Add(key, fmt.Sprintf("el elemento %d está vacío", i))
			return nil, false
		}
		out[i] = item
	}
	return out, true
}

func (p inputParser) sizeRange(key string) (entity.SizeRange, bool) {
	v, ok := p.get(key)
	if !ok {
		return entity.SizeRange{}, false
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(v, &obj); err != nil || obj == nil {
		p.verr.Add(key, "debe ser un objeto {min, max}")
		return entity.SizeRange{}, false
	}
	minRaw, okMin := obj["min"]
	maxRaw, okMax := obj["max"]
	if !okMin || !okMax {
		p.verr.Add(key, "min y max son requeridos")
		return entity.SizeRange{}, false
	}
	lo, errMin := parseNumber(minRaw)
	hi, errMax := parseNumber(maxRaw)
	if errMin != nil || errMax != nil {
		p.verr.Add(key, "min y max deben ser numéricos")
		return entity.SizeRange{}, false
	}
	if lo.IsNegative() || hi.IsNegative() {
		p.verr.Add(key, "min y max no pueden ser negativos")
		return entity.SizeRange{}, false
	}
	if lo.GreaterThan(hi) {
		p.verr.Add(key, "min no puede ser mayor que max")
		return entity.SizeRange{}, false
	}
	return entity.SizeRange{Min: lo.InexactFloat64(), Max: hi.InexactFloat64()}, true
}
