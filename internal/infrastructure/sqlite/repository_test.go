package sqlite_test

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/catalog"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/infrastructure/sqlite"
)

var defaultRange = entity.SizeRange{Min: 18, Max: 45}

// openTestDB base en memoria con las migraciones aplicadas.
func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	applied, err := sqlite.Migrate(context.Background(), db)
	require.NoError(t, err)
	assert.Equal(t, []string{"001_products", "002_users"}, applied)
	return db
}

func sampleProduct() *entity.Product {
	desc := "Algodón peinado"
	compare := decimal.RequireFromString("79.90")
	return &entity.Product{
		Title:          "Camiseta",
		Description:    &desc,
		Price:          decimal.RequireFromString("59.90"),
		CompareAtPrice: &compare,
		Quantity:       4,
		TrackInventory: true,
		Status:         entity.StatusActive,
		Images:         []string{"a.jpg", "b.jpg"},
		Tags:           []string{"verano"},
		Sizes:          []string{"S", "M"},
		Colors:         []string{},
		SizeRange:      entity.SizeRange{Min: 20, Max: 40},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Migraciones
// ──────────────────────────────────────────────────────────────────────────────

func TestMigrate_Idempotente(t *testing.T) {
	db := openTestDB(t)
	applied, err := sqlite.Migrate(context.Background(), db)
	require.NoError(t, err)
	assert.Empty(t, applied, "la segunda corrida no debe aplicar nada")
}

// ──────────────────────────────────────────────────────────────────────────────
// ProductRepo
// ──────────────────────────────────────────────────────────────────────────────

func TestProductRepo_IdaYVuelta(t *testing.T) {
	db := openTestDB(t)
	repo := sqlite.NewProductRepository(db, catalog.NewCodec(defaultRange, false))
	ctx := context.Background()

	in := sampleProduct()
	id, err := repo.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, in.Title, got.Title)
	require.NotNil(t, got.Description)
	assert.Equal(t, *in.Description, *got.Description)
	assert.True(t, in.Price.Equal(got.Price), "price %s", got.Price)
	require.NotNil(t, got.CompareAtPrice)
	assert.True(t, in.CompareAtPrice.Equal(*got.CompareAtPrice))
	assert.Nil(t, got.CostPerItem)
	assert.Nil(t, got.Vendor)
	assert.Equal(t, 4, got.Quantity)
	assert.True(t, got.TrackInventory)
	assert.Equal(t, entity.StatusActive, got.Status)
	assert.Equal(t, in.Images, got.Images)
	assert.Equal(t, in.Tags, got.Tags)
	assert.Equal(t, in.Sizes, got.Sizes)
	assert.Equal(t, []string{}, got.Colors)
	assert.Equal(t, in.SizeRange, got.SizeRange)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestProductRepo_UpdateParcial(t *testing.T) {
	db := openTestDB(t)
	repo := sqlite.NewProductRepository(db, catalog.NewCodec(defaultRange, false))
	ctx := context.Background()

	id, err := repo.Create(ctx, sampleProduct())
	require.NoError(t, err)

	err = repo.Update(ctx, id, entity.ProductPatch{
		Title:       entity.Some("Camiseta oversize"),
		Description: entity.Some[*string](nil),
		Status:      entity.Some(entity.StatusDraft),
		Colors:      entity.Some([]string{"negro"}),
	})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Camiseta oversize", got.Title)
	assert.Nil(t, got.Description)
	assert.Equal(t, entity.StatusDraft, got.Status)
	assert.Equal(t, []string{"negro"}, got.Colors)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, got.Images, "campos no enviados se conservan")
	assert.Equal(t, 4, got.Quantity)

	assert.ErrorIs(t, repo.Update(ctx, 999, entity.ProductPatch{Title: entity.Some("x")}), domain.ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, id, entity.ProductPatch{}), domain.ErrInvalidInput)
}

func TestProductRepo_DeleteYList(t *testing.T) {
	db := openTestDB(t)
	repo := sqlite.NewProductRepository(db, catalog.NewCodec(defaultRange, false))
	ctx := context.Background()

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	id1, err := repo.Create(ctx, sampleProduct())
	require.NoError(t, err)
	id2, err := repo.Create(ctx, sampleProduct())
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, id1))
	assert.ErrorIs(t, repo.Delete(ctx, id1), domain.ErrNotFound)

	_, err = repo.GetByID(ctx, id1)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, id2, list[0].ID)
}

func TestProductRepo_FilasHeredadas(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	_, err := db.ExecContext(ctx, `
		INSERT INTO products (title, price, quantity, track_inventory, status, images, tags, sizes, colors, size_range, created_at, updated_at)
		VALUES ('Heredado', 12.5, 0, 0, 1, 'a.jpg, b.jpg', NULL, '', 'rojo,azul', 'sin-json', '2023-01-02 03:04:05', '2023-01-02 03:04:05')`)
	require.NoError(t, err)

	lenient := sqlite.NewProductRepository(db, catalog.NewCodec(defaultRange, true))
	got, err := lenient.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, got.Images)
	assert.Equal(t, []string{}, got.Tags)
	assert.Equal(t, []string{}, got.Sizes)
	assert.Equal(t, []string{"rojo", "azul"}, got.Colors)
	assert.Equal(t, defaultRange, got.SizeRange)
	assert.Equal(t, 2023, got.CreatedAt.Year())

	strict := sqlite.NewProductRepository(db, catalog.NewCodec(defaultRange, false))
	_, err = strict.GetByID(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrCorruptData)
}

// ──────────────────────────────────────────────────────────────────────────────
// UserRepo
// ──────────────────────────────────────────────────────────────────────────────

func TestUserRepo_CreateYFindByEmail(t *testing.T) {
	db := openTestDB(t)
	repo := sqlite.NewUserRepository(db)
	ctx := context.Background()

	u := &entity.User{Email: "ana@tienda.test", PasswordHash: "$2a$10$hash", Name: "Ana", City: "Cali"}
	id, err := repo.Create(ctx, u)
	require.NoError(t, err)
	assert.Equal(t, id, u.ID)

	got, err := repo.FindByEmail(ctx, "ana@tienda.test")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Ana", got.Name)
	assert.Equal(t, "$2a$10$hash", got.PasswordHash)
	assert.Equal(t, "", got.Lastname)

	missing, err := repo.FindByEmail(ctx, "nadie@tienda.test")
	require.NoError(t, err)
	assert.Nil(t, missing)

	_, err = repo.Create(ctx, &entity.User{Email: "ana@tienda.test", PasswordHash: "x"})
	assert.ErrorIs(t, err, sqlite.ErrEmailAlreadyExists)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
