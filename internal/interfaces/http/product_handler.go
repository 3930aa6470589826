package http

import (
	"bytes"
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/application/catalog"
	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/pkg/logger"
)

// ProductHandler maneja las peticiones HTTP del catálogo.
// El id se acepta como segmento (/api/products/:id) o como query (?id=).
type ProductHandler struct {
	uc  *catalog.UseCase
	log *logger.Logger
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *catalog.UseCase, log *logger.Logger) *ProductHandler {
	return &ProductHandler{uc: uc, log: log}
}

// productID toma el id del path y, si no viene, de la query.
func productID(c *fiber.Ctx) string {
	if id := c.Params("id"); id != "" {
		return id
	}
	return c.Query("id")
}

// List godoc
// @Summary      Listar productos u obtener uno con ?id=
// @Tags         products
// @Produce      json
// @Param        id   query  int  false  "ID del producto"
// @Success      200  {array}   dto.ProductResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	if c.Context().QueryArgs().Has("id") {
		return h.GetByID(c)
	}
	products, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	out := make([]*dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, dto.ToProductResponse(p))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	p, err := h.uc.Get(c.UserContext(), productID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.ToProductResponse(p))
}

// Create godoc
// @Summary      Crear producto
// @Description  title, price e images son obligatorios. Los errores de validación se listan todos juntos.
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body  object  true  "Producto"
// @Success      201   {object}  dto.CreateProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	p, err := h.uc.Create(c.UserContext(), c.Body())
	if err != nil {
		return writeError(c, h.log, err)
	}
	h.log.Info().Int64("product_id", p.ID).Msg("producto creado")
	return c.Status(fiber.StatusCreated).JSON(dto.CreateProductResponse{
		Message: "Producto creado exitosamente",
		Data:    *dto.ToProductResponse(p),
	})
}

// Update godoc
// @Summary      Actualizar producto (parcial)
// @Description  Solo se modifican los campos enviados. Un cuerpo sin campos se rechaza.
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id    path  int     true  "ID del producto"
// @Param        body  body  object  true  "Campos a actualizar"
// @Success      200   {object}  dto.UpdateProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	p, err := h.uc.Update(c.UserContext(), productID(c), c.Body())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.UpdateProductResponse{
		Message: "Producto actualizado exitosamente",
		Data:    *dto.ToProductResponse(p),
	})
}

// Delete godoc
// @Summary      Eliminar producto
// @Tags         products
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.DeleteProductResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := h.uc.Delete(c.UserContext(), productID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	h.log.Info().Int64("product_id", id).Msg("producto eliminado")
	return c.JSON(dto.DeleteProductResponse{
		Success:   true,
		Message:   "Producto eliminado exitosamente",
		DeletedID: id,
	})
}

// Import godoc
// @Summary      Importar productos desde CSV
// @Description  Acepta multipart (campo file) o el CSV como cuerpo. latin1=true para exportaciones Windows-1252.
// @Tags         products
// @Accept       mpfd
// @Produce      json
// @Param        file    formData  file  false  "Archivo CSV"
// @Param        latin1  query     bool  false  "Decodificar como Windows-1252"
// @Success      200     {object}  dto.ImportResult
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/products/import [post]
func (h *ProductHandler) Import(c *fiber.Ctx) error {
	latin1, _ := strconv.ParseBool(c.Query("latin1", "false"))

	var r io.Reader = bytes.NewReader(c.Body())
	if fh, err := c.FormFile("file"); err == nil {
		f, err := fh.Open()
		if err != nil {
			return writeError(c, h.log, err)
		}
		defer f.Close()
		r = f
	}

	res, err := h.uc.Import(c.UserContext(), r, catalog.ImportOptions{Latin1: latin1})
	if err != nil {
		return writeError(c, h.log, err)
	}
	h.log.Info().Int("created", len(res.Created)).Int("failed", len(res.Failed)).Msg("importación de productos")
	return c.JSON(res)
}
