package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/firmeza/firmeza-api/internal/application/dto"
	"github.com/firmeza/firmeza-api/internal/application/sales"
	"github.com/firmeza/firmeza-api/internal/domain/entity"
	"github.com/firmeza/firmeza-api/internal/infrastructure/excel"
)

// SaleHandler maneja checkout, historial, recibos y el reporte de ventas.
type SaleHandler struct {
	createUC *sales.CreateSaleUseCase
	queryUC  *sales.SaleQueryUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(createUC *sales.CreateSaleUseCase, queryUC *sales.SaleQueryUseCase) *SaleHandler {
	return &SaleHandler{createUC: createUC, queryUC: queryUC}
}

// Create godoc
// @Summary      Crear venta (checkout)
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "Carrito"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	// Un cliente solo compra a su propio nombre; el token manda.
	if GetRole(c) == entity.RoleCustomer {
		in.CustomerID = GetCustomerID(c)
	}
	out, err := h.createUC.CreateSale(c.Context(), in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// MySales godoc
// @Summary      Historial de compras del cliente autenticado
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SaleResponse
// @Router       /api/sales/my-sales [get]
func (h *SaleHandler) MySales(c *fiber.Ctx) error {
	limit, offset := limitOffset(c)
	out, err := h.queryUC.ListMySales(c.Context(), GetCustomerID(c), limit, offset)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Detalle de una venta
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	isAdmin := GetRole(c) == entity.RoleAdmin
	out, err := h.queryUC.GetSale(c.Context(), c.Params("id"), GetCustomerID(c), isAdmin)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// Receipt godoc
// @Summary      Descargar el recibo PDF de una venta
// @Tags         sales
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {file}  file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/receipt [get]
func (h *SaleHandler) Receipt(c *fiber.Ctx) error {
	isAdmin := GetRole(c) == entity.RoleAdmin
	fileName, data, err := h.queryUC.ReceiptFile(c.Context(), c.Params("id"), GetCustomerID(c), isAdmin)
	if err != nil {
		return errorResponse(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, fileName))
	return c.Send(data)
}

// ListAdmin godoc
// @Summary      Listar todas las ventas (back-office)
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SaleResponse
// @Router       /api/admin/sales [get]
func (h *SaleHandler) ListAdmin(c *fiber.Ctx) error {
	limit, offset := limitOffset(c)
	out, err := h.queryUC.ListAll(c.Context(), limit, offset)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar el reporte de ventas en xlsx
// @Tags         admin
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  file
// @Router       /api/admin/sales/export [get]
func (h *SaleHandler) Export(c *fiber.Ctx) error {
	limit, offset := c.QueryInt("limit", 1000), c.QueryInt("offset", 0)
	if limit <= 0 || limit > 10000 {
		limit = 1000
	}
	if offset < 0 {
		offset = 0
	}
	salesList, err := h.queryUC.ListAll(c.Context(), limit, offset)
	if err != nil {
		return errorResponse(c, err)
	}
	data, err := excel.WriteSalesReport(salesList)
	if err != nil {
		return errorResponse(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="ventas.xlsx"`)
	return c.Send(data)
}
