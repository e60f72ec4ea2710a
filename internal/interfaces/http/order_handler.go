package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/titya18/pos-react-front-office-sub001/internal/application/dto"
	"github.com/titya18/pos-react-front-office-sub001/internal/application/order"
)

// OrderHandler maneja documentos comerciales y sus líneas (protegido).
type OrderHandler struct {
	uc *order.UseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *order.UseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// Create godoc
// @Summary      Crear documento
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.CreateOrderRequest  true  "kind, reference, cargos"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar documentos
// @Tags         orders
// @Produce      json
// @Security     Bearer
// @Param        kind    query  string  false  "invoice | purchase | quotation"
// @Param        status  query  string  false  "open | approved | completed | cancelled"
// @Param        limit   query  int     false  "máximo 100"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200     {object}  dto.OrderListResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	q := dto.OrderListQuery{
		Kind:   c.Query("kind"),
		Status: c.Query("status"),
		PageRequest: dto.PageRequest{
			Limit:  c.QueryInt("limit", 20),
			Offset: c.QueryInt("offset", 0),
		},
	}
	out, err := h.uc.List(c.Context(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener documento con líneas y saldo
// @Tags         orders
// @Produce      json
// @Security     Bearer
// @Param        id   path      string  true  "ID del documento"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AddLine agrega una línea.
// POST /api/orders/:id/lines
func (h *OrderHandler) AddLine(c *fiber.Ctx) error {
	var in dto.LineRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.AddLine(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateLine reemplaza los datos de una línea.
// PUT /api/orders/:id/lines/:lineId
func (h *OrderHandler) UpdateLine(c *fiber.Ctx) error {
	var in dto.LineRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateLine(c.Context(), c.Params("id"), c.Params("lineId"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RemoveLine quita una línea.
// DELETE /api/orders/:id/lines/:lineId?expected_version=
func (h *OrderHandler) RemoveLine(c *fiber.Ctx) error {
	version := int64(c.QueryInt("expected_version", 0))
	out, err := h.uc.RemoveLine(c.Context(), c.Params("id"), c.Params("lineId"), version)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateCharges cambia envío, descuento e impuesto del documento.
// PUT /api/orders/:id/charges
func (h *OrderHandler) UpdateCharges(c *fiber.Ctx) error {
	var in dto.UpdateChargesRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateCharges(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Approve POST /api/orders/:id/approve
func (h *OrderHandler) Approve(c *fiber.Ctx) error {
	return h.transition(c, h.uc.Approve)
}

// Complete POST /api/orders/:id/complete
func (h *OrderHandler) Complete(c *fiber.Ctx) error {
	return h.transition(c, h.uc.Complete)
}

// Cancel POST /api/orders/:id/cancel
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	return h.transition(c, h.uc.Cancel)
}

type transitionFunc func(ctx context.Context, id string, expectedVersion int64) (*dto.OrderResponse, error)

func (h *OrderHandler) transition(c *fiber.Ctx, fn transitionFunc) error {
	var in dto.VersionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := fn(c.Context(), c.Params("id"), in.ExpectedVersion)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
