package catalog_test

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// fakeRepo repositorio en memoria que cuenta las llamadas recibidas.
type fakeRepo struct {
	mu       sync.Mutex
	nextID   int64
	products map[int64]entity.Product
	calls    int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{nextID: 1, products: map[int64]entity.Product{}}
}

func (r *fakeRepo) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

func (r *fakeRepo) Create(_ context.Context, p *entity.Product) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	cp := *p
	cp.ID = r.nextID
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	r.products[cp.ID] = cp
	r.nextID++
	return cp.ID, nil
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (r *fakeRepo) List(_ context.Context) ([]*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	out := []*entity.Product{}
	for id := int64(1); id < r.nextID; id++ {
		if p, ok := r.products[id]; ok {
			out = append(out, &p)
		}
	}
	return out, nil
}

func (r *fakeRepo) Update(_ context.Context, id int64, patch entity.ProductPatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	p, ok := r.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	if patch.Title.Set {
		p.Title = patch.Title.Value
	}
	if patch.Description.Set {
		p.Description = patch.Description.Value
	}
	if patch.Price.Set {
		p.Price = patch.Price.Value
	}
	if patch.Quantity.Set {
		p.Quantity = patch.Quantity.Value
	}
	if patch.TrackInventory.Set {
		p.TrackInventory = patch.TrackInventory.Value
	}
	if patch.Status.Set {
		p.Status = patch.Status.Value
	}
	if patch.Images.Set {
		p.Images = patch.Images.Value
	}
	if patch.Tags.Set {
		p.Tags = patch.Tags.Value
	}
	if patch.Sizes.Set {
		p.Sizes = patch.Sizes.Value
	}
	if patch.Colors.Set {
		p.Colors = patch.Colors.Value
	}
	if patch.SizeRange.Set {
		p.SizeRange = patch.SizeRange.Value
	}
	p.UpdatedAt = time.Now()
	r.products[id] = p
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if _, ok := r.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.products, id)
	return nil
}
