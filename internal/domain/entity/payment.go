package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment evento de liquidación contra un documento. La tasa de cambio se captura al crear
// el pago y no se modifica; TotalPaid se deriva de los montos recibidos y esa tasa.
type Payment struct {
	ID                        string
	OrderID                   string
	PaymentMethodID           string
	ReceivedPrimaryCurrency   decimal.Decimal // ej. USD
	ReceivedSecondaryCurrency decimal.Decimal // ej. KHR
	ExchangeRate              decimal.Decimal // primaria → secundaria
	TotalPaid                 decimal.Decimal
	CreatedBy                 string
	CreatedAt                 time.Time
	DeletedAt                 *time.Time
	DeleteReason              string
}

// IsLive indica si el pago cuenta para el saldo (no fue eliminado).
func (p *Payment) IsLive() bool { return p.DeletedAt == nil }
