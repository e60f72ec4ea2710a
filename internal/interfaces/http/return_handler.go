package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/titya18/pos-react-front-office-sub001/internal/application/dto"
	"github.com/titya18/pos-react-front-office-sub001/internal/application/returns"
)

// ReturnHandler maneja devoluciones contra documentos aprobados (protegido).
type ReturnHandler struct {
	uc *returns.UseCase
}

// NewReturnHandler construye el handler.
func NewReturnHandler(uc *returns.UseCase) *ReturnHandler {
	return &ReturnHandler{uc: uc}
}

// Returnable lista por línea lo vendido, lo devuelto y lo que aún se puede devolver.
// GET /api/orders/:id/returnable
func (h *ReturnHandler) Returnable(c *fiber.Ctx) error {
	out, err := h.uc.ListReturnable(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List GET /api/orders/:id/returns
func (h *ReturnHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListReturns(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Submit registra una devolución.
// POST /api/orders/:id/returns
func (h *ReturnHandler) Submit(c *fiber.Ctx) error {
	var in dto.SubmitReturnRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.SubmitReturn(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// AdjustQuantity aplica un +/- a la cantidad en captura respetando el máximo.
// POST /api/returns/adjust-quantity
func (h *ReturnHandler) AdjustQuantity(c *fiber.Ctx) error {
	var in dto.AdjustQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.AdjustQuantity(in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
