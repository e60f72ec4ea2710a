package entity

import "github.com/shopspring/decimal"

// DiscountMethod forma de aplicar el descuento de línea.
type DiscountMethod string

const (
	DiscountFixed   DiscountMethod = "fixed"   // resta un monto absoluto al precio
	DiscountPercent DiscountMethod = "percent" // escala el precio por (100 - x)/100
)

// Valid indica si el método es conocido.
func (m DiscountMethod) Valid() bool { return m == DiscountFixed || m == DiscountPercent }

// TaxMethod indica si el impuesto ya viene en el precio o se suma encima.
type TaxMethod string

const (
	TaxInclude TaxMethod = "include" // impuesto incluido en el precio unitario
	TaxExclude TaxMethod = "exclude" // impuesto sumado sobre el precio con descuento
)

// Valid indica si el método es conocido.
func (m TaxMethod) Valid() bool { return m == TaxInclude || m == TaxExclude }

// OrderLine línea con precio de un documento. Total es derivado y siempre lo calcula pricing.PriceOrderLine.
type OrderLine struct {
	ID             string
	OrderID        string
	SourceID       string // variante de producto o servicio (opaco para el motor)
	Position       int
	UnitPrice      decimal.Decimal
	Quantity       int64
	DiscountMethod DiscountMethod
	DiscountValue  decimal.Decimal
	TaxMethod      TaxMethod
	TaxRatePercent decimal.Decimal
	Total          decimal.Decimal
}
