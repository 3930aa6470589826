// Package catalog implementa los casos de uso del catálogo: lectura, alta, actualización
// parcial y baja de productos, con la validación y coerción de los cuerpos JSON.
package catalog

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// Defaults valores aplicados a los campos ausentes en un alta.
type Defaults struct {
	SizeRange entity.SizeRange
}

// UseCase casos de uso del catálogo.
type UseCase struct {
	repo     repository.ProductRepository
	defaults Defaults
}

// NewUseCase construye el caso de uso con el repositorio inyectado.
func NewUseCase(repo repository.ProductRepository, defaults Defaults) *UseCase {
	return &UseCase{repo: repo, defaults: defaults}
}

// ParseID valida que el identificador sea un entero positivo.
func ParseID(raw string) (int64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fmt.Errorf("%w: id de producto requerido", domain.ErrInvalidInput)
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%w: id de producto inválido", domain.ErrInvalidInput)
		}
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: id de producto inválido", domain.ErrInvalidInput)
	}
	return id, nil
}

// Get obtiene un producto. Un id mal formado nunca llega al repositorio.
func (uc *UseCase) Get(ctx context.Context, rawID string) (*entity.Product, error) {
	id, err := ParseID(rawID)
	if err != nil {
		return nil, err
	}
	return uc.repo.GetByID(ctx, id)
}

// GetByID obtiene un producto por id numérico (usado por checkout).
func (uc *UseCase) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: id de producto inválido", domain.ErrInvalidInput)
	}
	return uc.repo.GetByID(ctx, id)
}

// List devuelve todos los productos en orden de almacenamiento.
func (uc *UseCase) List(ctx context.Context) ([]*entity.Product, error) {
	return uc.repo.List(ctx)
}

// Create valida el cuerpo, aplica defaults y persiste. Reporta todas las violaciones juntas.
func (uc *UseCase) Create(ctx context.Context, body []byte) (*entity.Product, error) {
	patch, verr, err := decodeInput(body)
	if err != nil {
		return nil, err
	}
	requirePresent(verr, "title", patch.Title.Set)
	requirePresent(verr, "price", patch.Price.Set)
	requirePresent(verr, "images", patch.Images.Set)
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	id, err := uc.repo.Create(ctx, uc.newProduct(patch))
	if err != nil {
		return nil, err
	}
	return uc.repo.GetByID(ctx, id)
}

// Update aplica una actualización parcial: solo cambian las claves presentes.
// Un cuerpo sin campos reconocidos se rechaza antes de tocar la base.
func (uc *UseCase) Update(ctx context.Context, rawID string, body []byte) (*entity.Product, error) {
	id, err := ParseID(rawID)
	if err != nil {
		return nil, err
	}
	patch, verr, err := decodeInput(body)
	if err != nil {
		return nil, err
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return nil, fmt.Errorf("%w: no se proporcionaron campos para actualizar", domain.ErrInvalidInput)
	}
	if err := uc.repo.Update(ctx, id, patch); err != nil {
		return nil, err
	}
	return uc.repo.GetByID(ctx, id)
}

// Delete elimina un producto y devuelve el id eliminado.
func (uc *UseCase) Delete(ctx context.Context, rawID string) (int64, error) {
	id, err := ParseID(rawID)
	if err != nil {
		return 0, err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return 0, err
	}
	return id, nil
}

func requirePresent(verr *domain.ValidationError, field string, set bool) {
	if !set && !verr.Has(field) {
		verr.Add(field, "es requerido")
	}
}

// newProduct arma la entidad a partir de un patch ya validado con los campos requeridos.
func (uc *UseCase) newProduct(patch entity.ProductPatch) *entity.Product {
	p := &entity.Product{
		Title:          patch.Title.Value,
		Description:    patch.Description.Value,
		Price:          patch.Price.Value,
		CompareAtPrice: patch.CompareAtPrice.Value,
		CostPerItem:    patch.CostPerItem.Value,
		Vendor:         patch.Vendor.Value,
		ProductType:    patch.ProductType.Value,
		Category:       patch.Category.Value,
		SKU:            patch.SKU.Value,
		Barcode:        patch.Barcode.Value,
		Quantity:       patch.Quantity.Value,
		TrackInventory: patch.TrackInventory.Value,
		Status:         entity.StatusActive,
		Images:         patch.Images.Value,
		Tags:           orEmpty(patch.Tags.Value),
		Sizes:          orEmpty(patch.Sizes.Value),
		Colors:         orEmpty(patch.Colors.Value),
		SizeRange:      uc.defaults.SizeRange,
	}
	if patch.Status.Set {
		p.Status = patch.Status.Value
	}
	if patch.SizeRange.Set {
		p.SizeRange = patch.SizeRange.Value
	}
	return p
}

func orEmpty(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
