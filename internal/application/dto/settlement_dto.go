package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/titya18/pos-react-front-office-sub001/internal/domain/entity"
)

// RecordPaymentRequest body para POST /api/orders/:id/payments.
// ExchangeRate es obligatoria: es la tasa capturada al momento del cobro.
type RecordPaymentRequest struct {
	ExpectedVersion   int64           `json:"expected_version" validate:"min=1"`
	PaymentMethodID   string          `json:"payment_method_id" validate:"required"`
	ReceivedPrimary   decimal.Decimal `json:"received_primary"`
	ReceivedSecondary decimal.Decimal `json:"received_secondary"`
	ExchangeRate      decimal.Decimal `json:"exchange_rate"`
}

// PreviewDueRequest body para POST /api/orders/:id/payments/preview.
// Si ExchangeRate es nil se usa la última tasa registrada como sugerencia.
type PreviewDueRequest struct {
	ReceivedPrimary   decimal.Decimal  `json:"received_primary"`
	ReceivedSecondary decimal.Decimal  `json:"received_secondary"`
	ExchangeRate      *decimal.Decimal `json:"exchange_rate,omitempty"`
}

// DeletePaymentRequest body para DELETE /api/payments/:id.
type DeletePaymentRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// PaymentResponse pago en respuestas.
type PaymentResponse struct {
	ID                string          `json:"id"`
	OrderID           string          `json:"order_id"`
	PaymentMethodID   string          `json:"payment_method_id"`
	ReceivedPrimary   decimal.Decimal `json:"received_primary"`
	ReceivedSecondary decimal.Decimal `json:"received_secondary"`
	ExchangeRate      decimal.Decimal `json:"exchange_rate"`
	TotalPaid         decimal.Decimal `json:"total_paid"`
	CreatedBy         string          `json:"created_by,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	DeletedAt         *time.Time      `json:"deleted_at,omitempty"`
	DeleteReason      string          `json:"delete_reason,omitempty"`
}

// NewPaymentResponse mapea la entidad.
func NewPaymentResponse(p *entity.Payment) PaymentResponse {
	return PaymentResponse{
		ID:                p.ID,
		OrderID:           p.OrderID,
		PaymentMethodID:   p.PaymentMethodID,
		ReceivedPrimary:   p.ReceivedPrimaryCurrency,
		ReceivedSecondary: p.ReceivedSecondaryCurrency,
		ExchangeRate:      p.ExchangeRate,
		TotalPaid:         p.TotalPaid,
		CreatedBy:         p.CreatedBy,
		CreatedAt:         p.CreatedAt,
		DeletedAt:         p.DeletedAt,
		DeleteReason:      p.DeleteReason,
	}
}

// SettlementResponse resultado de registrar o eliminar un pago.
type SettlementResponse struct {
	Payment    PaymentResponse `json:"payment"`
	PaidAmount decimal.Decimal `json:"paid_amount"`
	DueBalance decimal.Decimal `json:"due_balance"`
	Version    int64           `json:"version"`
}

// DuePreviewResponse saldo mostrado mientras se edita un pago (no se persiste).
type DuePreviewResponse struct {
	Committed    decimal.Decimal `json:"committed"`
	LiveEntry    decimal.Decimal `json:"live_entry"`
	DueBalance   decimal.Decimal `json:"due_balance"`
	Settled      bool            `json:"settled"`
	ExchangeRate decimal.Decimal `json:"exchange_rate"`
}
