package checkout

import (
	"context"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// ProductReader lectura de productos para valorizar el carrito.
type ProductReader interface {
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
}

// QuotePDFGenerator genera la representación imprimible del resumen del pedido.
type QuotePDFGenerator interface {
	GenerateQuotePDF(ctx context.Context, quote *Quote) ([]byte, error)
}
