// Package pricing contiene el cálculo puro de totales: precio de línea y agregado del documento.
// Todas las pantallas (carrito, factura, compra, devolución) usan estas mismas funciones.
package pricing

import (
	"github.com/shopspring/decimal"
	"github.com/titya18/pos-react-front-office-sub001/internal/domain/entity"
)

// MoneyPlaces decimales de los montos persistidos y mostrados.
const MoneyPlaces = 2

// Decimales máximos que el esquema guarda sin redondear.
const (
	InputPlaces = 4 // precios, descuentos, cargos, montos recibidos y tasas de impuesto
	RatePlaces  = 6 // tipo de cambio
)

// FitsPlaces indica si d se guarda con places decimales sin perder precisión.
// Los ceros finales no cuentan: "10.50000" cabe en 4.
func FitsPlaces(d decimal.Decimal, places int32) bool {
	return d.Equal(d.Truncate(places))
}

var hundred = decimal.NewFromInt(100)

// LineBreakdown desglose por unidad de una línea.
// TaxPerUnit es el impuesto sumado encima del precio con descuento (cero con TaxInclude).
type LineBreakdown struct {
	DiscountedUnit decimal.Decimal
	TaxPerUnit     decimal.Decimal
	PricedUnit     decimal.Decimal
	Total          decimal.Decimal
}

// Breakdown aplica descuento, luego impuesto y finalmente la cantidad.
// No se recorta nada: un descuento mayor al precio produce un precio negativo y
// la validación corresponde al caller. Solo el total se redondea.
func Breakdown(
	unitPrice decimal.Decimal,
	quantity int64,
	discountMethod entity.DiscountMethod,
	discountValue decimal.Decimal,
	taxMethod entity.TaxMethod,
	taxRatePercent decimal.Decimal,
) LineBreakdown {
	var discounted decimal.Decimal
	if discountMethod == entity.DiscountPercent {
		discounted = unitPrice.Mul(hundred.Sub(discountValue)).Div(hundred)
	} else {
		discounted = unitPrice.Sub(discountValue)
	}

	tax := decimal.Zero
	if taxMethod != entity.TaxInclude {
		tax = discounted.Mul(taxRatePercent).Div(hundred)
	}
	priced := discounted.Add(tax)

	return LineBreakdown{
		DiscountedUnit: discounted,
		TaxPerUnit:     tax,
		PricedUnit:     priced,
		Total:          priced.Mul(decimal.NewFromInt(quantity)).Round(MoneyPlaces),
	}
}

// PriceLine total monetario de una línea: quantity * precio unitario con descuento e impuesto.
func PriceLine(
	unitPrice decimal.Decimal,
	quantity int64,
	discountMethod entity.DiscountMethod,
	discountValue decimal.Decimal,
	taxMethod entity.TaxMethod,
	taxRatePercent decimal.Decimal,
) decimal.Decimal {
	return Breakdown(unitPrice, quantity, discountMethod, discountValue, taxMethod, taxRatePercent).Total
}

// PriceOrderLine calcula el total de la línea con sus propios parámetros.
func PriceOrderLine(l entity.OrderLine) decimal.Decimal {
	return PriceLine(l.UnitPrice, l.Quantity, l.DiscountMethod, l.DiscountValue, l.TaxMethod, l.TaxRatePercent)
}

// Reprice recalcula y asigna Total. Es el único camino para fijar el total de una línea.
func Reprice(l *entity.OrderLine) {
	l.Total = PriceOrderLine(*l)
}
