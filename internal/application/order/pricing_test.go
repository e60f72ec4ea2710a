package order_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/titya18/pos-react-front-office-sub001/internal/application/dto"
	"github.com/titya18/pos-react-front-office-sub001/internal/application/order"
	"github.com/titya18/pos-react-front-office-sub001/internal/domain"
)

func TestPriceLine_Calculadora(t *testing.T) {
	resp, err := order.PriceLine(dto.PriceLineRequest{
		UnitPrice: dec("100"), Quantity: 2,
		DiscountMethod: "fixed", DiscountValue: dec("10"),
		TaxMethod: "exclude", TaxRatePercent: dec("10"),
	})
	require.NoError(t, err)
	assert.True(t, dec("90").Equal(resp.DiscountedUnit))
	assert.True(t, dec("9").Equal(resp.TaxPerUnit))
	assert.True(t, dec("198").Equal(resp.Total))
}

func TestPriceLine_ImpuestoIncluidoMuestraCero(t *testing.T) {
	resp, err := order.PriceLine(dto.PriceLineRequest{
		UnitPrice: dec("100"), Quantity: 1,
		DiscountMethod: "percent", DiscountValue: dec("0"),
		TaxMethod: "include", TaxRatePercent: dec("10"),
	})
	require.NoError(t, err)
	assert.True(t, resp.TaxPerUnit.IsZero())
	assert.True(t, dec("100").Equal(resp.Total))
}

func TestPriceLine_MetodoDesconocido(t *testing.T) {
	_, err := order.PriceLine(dto.PriceLineRequest{Quantity: 1, DiscountMethod: "bogus", TaxMethod: "exclude"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestPriceDocument_CargosDelDocumento(t *testing.T) {
	line := func(price string) dto.PriceLineRequest {
		return dto.PriceLineRequest{UnitPrice: dec(price), Quantity: 1, DiscountMethod: "fixed", TaxMethod: "include"}
	}
	resp, err := order.PriceDocument(dto.PriceDocumentRequest{
		Lines:          []dto.PriceLineRequest{line("200"), line("250")},
		ShippingAmount: dec("20"),
		DiscountAmount: dec("25"),
		TaxRatePercent: dec("5"),
	})
	require.NoError(t, err)
	assert.True(t, dec("450").Equal(resp.LineSum))
	assert.True(t, dec("21.25").Equal(resp.TaxAmount))
	assert.True(t, dec("466.25").Equal(resp.GrandTotal), resp.GrandTotal.String())
	assert.Len(t, resp.Lines, 2)
}
