package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/titya18/pos-react-front-office-sub001/internal/application/exchange"
	"github.com/titya18/pos-react-front-office-sub001/internal/application/order"
	"github.com/titya18/pos-react-front-office-sub001/internal/application/returns"
	"github.com/titya18/pos-react-front-office-sub001/internal/application/settlement"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	OrderUC      *order.UseCase
	SettlementUC *settlement.UseCase
	ReturnUC     *returns.UseCase
	ExchangeUC   *exchange.UseCase
	Gatherer     prometheus.Gatherer // nil → sin /metrics
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	// Operación (público)
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	if deps.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	// Rutas protegidas (requieren Bearer Token)
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))
	read := RequireRole(rolesRead...)
	write := RequireRole(rolesWrite...)
	manage := RequireRole(rolesManage...)

	// Orders
	orderHandler := NewOrderHandler(deps.OrderUC)
	orders := api.Group("/orders")
	orders.Post("/", write, orderHandler.Create)
	orders.Get("/", read, orderHandler.List)
	orders.Get("/:id", read, orderHandler.GetByID)
	orders.Post("/:id/lines", write, orderHandler.AddLine)
	orders.Put("/:id/lines/:lineId", write, orderHandler.UpdateLine)
	orders.Delete("/:id/lines/:lineId", write, orderHandler.RemoveLine)
	orders.Put("/:id/charges", write, orderHandler.UpdateCharges)
	orders.Post("/:id/approve", write, orderHandler.Approve)
	orders.Post("/:id/complete", write, orderHandler.Complete)
	orders.Post("/:id/cancel", write, orderHandler.Cancel)

	// Pricing (calculadoras puras, sin persistencia)
	pricing := api.Group("/pricing", read)
	pricing.Post("/line", PriceLine)
	pricing.Post("/document", PriceDocument)

	// Payments
	paymentHandler := NewPaymentHandler(deps.SettlementUC)
	orders.Get("/:id/payments", read, paymentHandler.List)
	orders.Post("/:id/payments", write, paymentHandler.Record)
	orders.Post("/:id/payments/preview", read, paymentHandler.Preview)
	orders.Get("/:id/statement.pdf", read, paymentHandler.Statement)
	api.Delete("/payments/:id", manage, paymentHandler.Delete)

	// Returns
	returnHandler := NewReturnHandler(deps.ReturnUC)
	orders.Get("/:id/returnable", read, returnHandler.Returnable)
	orders.Get("/:id/returns", read, returnHandler.List)
	orders.Post("/:id/returns", write, returnHandler.Submit)
	api.Post("/returns/adjust-quantity", read, returnHandler.AdjustQuantity)

	// Exchange rates
	exchangeHandler := NewExchangeHandler(deps.ExchangeUC)
	api.Get("/exchange-rates/latest", read, exchangeHandler.Latest)
	api.Post("/exchange-rates", manage, exchangeHandler.Register)
}
