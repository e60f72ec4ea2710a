package pricing

import (
	"github.com/shopspring/decimal"
	"github.com/titya18/pos-react-front-office-sub001/internal/domain/entity"
)

// Totals desglose del total del documento.
type Totals struct {
	LineSum          decimal.Decimal
	AfterDocDiscount decimal.Decimal
	TaxAmount        decimal.Decimal
	ShippingAmount   decimal.Decimal
	GrandTotal       decimal.Decimal
}

// AggregateTotals suma las líneas (ya valoradas por PriceLine) y aplica descuento,
// tasa de impuesto y envío del documento:
//
//	grandTotal = (Σ total - descuento) * (1 + tasa/100) + envío
//
// Supone descuento y tasa no negativos (los valida el caso de uso). Es una función pura:
// el resultado no depende del orden de las líneas.
func AggregateTotals(lines []entity.OrderLine, shippingAmount, discountAmount, taxRatePercent decimal.Decimal) Totals {
	lineSum := decimal.Zero
	for _, l := range lines {
		lineSum = lineSum.Add(l.Total)
	}
	after := lineSum.Sub(discountAmount)
	tax := after.Mul(taxRatePercent).Div(hundred)
	return Totals{
		LineSum:          lineSum,
		AfterDocDiscount: after,
		TaxAmount:        tax.Round(MoneyPlaces),
		ShippingAmount:   shippingAmount,
		GrandTotal:       after.Add(tax).Add(shippingAmount).Round(MoneyPlaces),
	}
}

// Aggregate devuelve solo el gran total del documento.
func Aggregate(lines []entity.OrderLine, shippingAmount, discountAmount, taxRatePercent decimal.Decimal) decimal.Decimal {
	return AggregateTotals(lines, shippingAmount, discountAmount, taxRatePercent).GrandTotal
}

// Recompute vuelve a valorar todas las líneas y el gran total del documento desde cero.
func Recompute(doc *entity.OrderDocument) {
	for i := range doc.Lines {
		Reprice(&doc.Lines[i])
	}
	doc.GrandTotal = Aggregate(doc.Lines, doc.ShippingAmount, doc.DiscountAmount, doc.TaxRatePercent)
}
