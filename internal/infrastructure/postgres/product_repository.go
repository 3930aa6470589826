package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/catalog"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q     Querier
	codec catalog.Codec
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier, codec catalog.Codec) *ProductRepo {
	return &ProductRepo{q: q, codec: codec}
}

// Create persiste un nuevo producto y devuelve el id asignado por la base.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) (int64, error) {
	cols, placeholders, args := renderInsert(catalog.InsertAssignments(product))
	query := `INSERT INTO products (` + cols + `, created_at, updated_at)
		VALUES (` + placeholders + `, now(), now()) RETURNING id`
	var id int64
	if err := r.q.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert product: %w", err)
	}
	return id, nil
}

// GetByID obtiene un producto por ID ya decodificado.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	query := `SELECT ` + catalog.SelectList() + ` FROM products WHERE id = $1`
	var row catalog.Row
	if err := r.q.QueryRow(ctx, query, id).Scan(row.Targets()...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return r.codec.Decode(row)
}

// List devuelve todos los productos por id ascendente.
func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, `SELECT `+catalog.SelectList()+` FROM products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	list := []*entity.Product{}
	for rows.Next() {
		var row catalog.Row
		if err := rows.Scan(row.Targets()...); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		p, err := r.codec.Decode(row)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Update escribe solo las columnas presentes en el patch.
func (r *ProductRepo) Update(ctx context.Context, id int64, patch entity.ProductPatch) error {
	set, args := renderAssignments(catalog.PatchAssignments(patch))
	if set == "" {
		return fmt.Errorf("%w: patch vacío", domain.ErrInvalidInput)
	}
	args = append(args, id)
	query := fmt.Sprintf(`UPDATE products SET %s, updated_at = now() WHERE id = $%d`, set, len(args))
	cmd, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
