package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/titya18/pos-react-front-office-sub001/internal/application/dto"
	"github.com/titya18/pos-react-front-office-sub001/internal/application/settlement"
)

// PaymentHandler maneja pagos, vista previa de saldo y estado de cuenta (protegido).
type PaymentHandler struct {
	uc *settlement.UseCase
}

// NewPaymentHandler construye el handler.
func NewPaymentHandler(uc *settlement.UseCase) *PaymentHandler {
	return &PaymentHandler{uc: uc}
}

// List lista los pagos del documento; include_deleted=true agrega los eliminados.
// GET /api/orders/:id/payments
func (h *PaymentHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListPayments(c.Context(), c.Params("id"), c.QueryBool("include_deleted", false))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Record registra un pago.
// POST /api/orders/:id/payments
func (h *PaymentHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.RecordPayment(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Preview calcula el saldo que quedaría con el pago en captura. No persiste.
// POST /api/orders/:id/payments/preview
func (h *PaymentHandler) Preview(c *fiber.Ctx) error {
	var in dto.PreviewDueRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.PreviewDue(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete elimina lógicamente un pago (motivo obligatorio).
// DELETE /api/payments/:id
func (h *PaymentHandler) Delete(c *fiber.Ctx) error {
	var in dto.DeletePaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.DeletePayment(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Statement descarga el estado de cuenta en PDF.
// GET /api/orders/:id/statement.pdf
func (h *PaymentHandler) Statement(c *fiber.Ctx) error {
	pdf, filename, err := h.uc.Statement(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(pdf)
}
