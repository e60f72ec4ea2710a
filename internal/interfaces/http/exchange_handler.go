package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/titya18/pos-react-front-office-sub001/internal/application/dto"
	"github.com/titya18/pos-react-front-office-sub001/internal/application/exchange"
)

// ExchangeHandler consulta y registra tasas de cambio (protegido).
type ExchangeHandler struct {
	uc *exchange.UseCase
}

// NewExchangeHandler construye el handler.
func NewExchangeHandler(uc *exchange.UseCase) *ExchangeHandler {
	return &ExchangeHandler{uc: uc}
}

// Latest godoc
// @Summary      Tasa de cambio vigente (sugerencia para captura de pagos)
// @Tags         exchange-rates
// @Produce      json
// @Security     Bearer
// @Success      200  {object}  dto.ExchangeRateResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/exchange-rates/latest [get]
func (h *ExchangeHandler) Latest(c *fiber.Ctx) error {
	out, err := h.uc.Latest(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Register godoc
// @Summary      Registrar tasa de cambio
// @Tags         exchange-rates
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.RegisterRateRequest  true  "rate, effective_at"
// @Success      201   {object}  dto.ExchangeRateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/exchange-rates [post]
func (h *ExchangeHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRateRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Register(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
