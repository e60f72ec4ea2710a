package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate tasa primaria → secundaria vigente desde EffectiveAt.
// Solo se usa como sugerencia para pagos nuevos.
type ExchangeRate struct {
	ID          string
	Rate        decimal.Decimal
	EffectiveAt time.Time
	CreatedBy   string
	CreatedAt   time.Time
}
