package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/titya18/pos-react-front-office-sub001/internal/domain/entity"
)

// RegisterRateRequest body para POST /api/exchange-rates.
type RegisterRateRequest struct {
	Rate        decimal.Decimal `json:"rate"`
	EffectiveAt *time.Time      `json:"effective_at,omitempty"`
}

// ExchangeRateResponse tasa primaria → secundaria.
type ExchangeRateResponse struct {
	ID                string          `json:"id"`
	Rate              decimal.Decimal `json:"rate"`
	PrimaryCurrency   string          `json:"primary_currency"`
	SecondaryCurrency string          `json:"secondary_currency"`
	EffectiveAt       time.Time       `json:"effective_at"`
	CreatedBy         string          `json:"created_by,omitempty"`
}

// NewExchangeRateResponse mapea la entidad con los códigos de moneda configurados.
func NewExchangeRateResponse(r *entity.ExchangeRate, primary, secondary string) ExchangeRateResponse {
	return ExchangeRateResponse{
		ID:                r.ID,
		Rate:              r.Rate,
		PrimaryCurrency:   primary,
		SecondaryCurrency: secondary,
		EffectiveAt:       r.EffectiveAt,
		CreatedBy:         r.CreatedBy,
	}
}
