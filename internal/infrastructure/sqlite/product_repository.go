package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/catalog"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre SQLite.
type ProductRepo struct {
	db    *sqlx.DB
	codec catalog.Codec
	now   func() time.Time
}

// NewProductRepository construye el adaptador SQLite para productos.
func NewProductRepository(db *sqlx.DB, codec catalog.Codec) *ProductRepo {
	return &ProductRepo{db: db, codec: codec, now: func() time.Time { return time.Now().UTC() }}
}

// Create inserta el producto; created_at y updated_at se fijan en UTC desde Go.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) (int64, error) {
	as := catalog.InsertAssignments(product)
	cols := make([]string, 0, len(as)+2)
	args := make([]any, 0, len(as)+2)
	for _, a := range as {
		cols = append(cols, a.Column)
		args = append(args, a.Value)
	}
	ts := r.now()
	cols = append(cols, "created_at", "updated_at")
	args = append(args, ts, ts)

	query := `INSERT INTO products (` + strings.Join(cols, ", ") + `) VALUES (` +
		strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ") + `)`
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("insert product: %w", err)
	}
	return res.LastInsertId()
}

// GetByID obtiene un producto por ID ya decodificado.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	var row catalog.Row
	err := r.db.GetContext(ctx, &row, `SELECT `+catalog.SelectList()+` FROM products WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return r.codec.Decode(row)
}

// List devuelve todos los productos por id ascendente.
func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	var rows []catalog.Row
	if err := r.db.SelectContext(ctx, &rows, `SELECT `+catalog.SelectList()+` FROM products ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	list := make([]*entity.Product, 0, len(rows))
	for _, row := range rows {
		p, err := r.codec.Decode(row)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, nil
}

// Update escribe solo las columnas presentes en el patch.
func (r *ProductRepo) Update(ctx context.Context, id int64, patch entity.ProductPatch) error {
	as := catalog.PatchAssignments(patch)
	if len(as) == 0 {
		return fmt.Errorf("%w: patch vacío", domain.ErrInvalidInput)
	}
	set := make([]string, 0, len(as)+1)
	args := make([]any, 0, len(as)+2)
	for _, a := range as {
		set = append(set, a.Column+" = ?")
		args = append(args, a.Value)
	}
	set = append(set, "updated_at = ?")
	args = append(args, r.now(), id)

	res, err := r.db.ExecContext(ctx, `UPDATE products SET `+strings.Join(set, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return requireAffected(res)
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
