package metrics_test

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/titya18/pos-react-front-office-sub001/internal/infrastructure/metrics"
)

func TestObserve_CuentaPorOperacionYResultado(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	m.Observe("payment_record", "ok")
	m.Observe("payment_record", "ok")
	m.Observe("payment_record", "stale_data")

	count, err := testutil.GatherAndCount(reg, "pos_operations_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestMiddleware_RegistraLatenciaPorRuta(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	app := fiber.New()
	app.Use(m.Middleware())
	app.Get("/orders/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	resp, err := app.Test(httptest.NewRequest("GET", "/orders/abc", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	count, err := testutil.GatherAndCount(reg, "pos_http_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
