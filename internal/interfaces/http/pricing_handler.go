package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/titya18/pos-react-front-office-sub001/internal/application/dto"
	"github.com/titya18/pos-react-front-office-sub001/internal/application/order"
)

// PriceLine calcula el desglose de una línea sin persistir nada.
// POST /api/pricing/line
func PriceLine(c *fiber.Ctx) error {
	var in dto.PriceLineRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := order.PriceLine(in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// PriceDocument calcula los totales de un documento sin persistir nada.
// POST /api/pricing/document
func PriceDocument(c *fiber.Ctx) error {
	var in dto.PriceDocumentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := order.PriceDocument(in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
