// Package settlement reglas puras de liquidación: conversión de pagos en dos monedas,
// saldo pendiente y validación de un pago contra ese saldo.
//
// El saldo siempre se deriva del conjunto completo de pagos vigentes; nunca se ajusta
// de forma incremental.
package settlement

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/titya18/pos-react-front-office-sub001/internal/domain"
	"github.com/titya18/pos-react-front-office-sub001/internal/domain/entity"
	"github.com/titya18/pos-react-front-office-sub001/internal/domain/pricing"
)

// ComputeTotalPaid = primaria + secundaria / tasa, redondeado a 2 decimales.
func ComputeTotalPaid(receivedPrimary, receivedSecondary, exchangeRate decimal.Decimal) (decimal.Decimal, error) {
	if !exchangeRate.IsPositive() {
		return decimal.Zero, domain.NewValidationError("exchange_rate", "la tasa de cambio debe ser mayor a cero")
	}
	return receivedPrimary.Add(receivedSecondary.Div(exchangeRate)).Round(pricing.MoneyPlaces), nil
}

// PaidAmount suma TotalPaid de los pagos vigentes.
func PaidAmount(payments []*entity.Payment) decimal.Decimal {
	sum := decimal.Zero
	for _, p := range payments {
		if p == nil || !p.IsLive() {
			continue
		}
		sum = sum.Add(p.TotalPaid)
	}
	return sum
}

// ComputeDueBalance = gran total - Σ pagos vigentes.
// El caller debe pasar el conjunto completo y actual de pagos del documento.
func ComputeDueBalance(doc *entity.OrderDocument, payments []*entity.Payment) decimal.Decimal {
	return doc.GrandTotal.Sub(PaidAmount(payments))
}

// IsSettled indica si el documento ya no admite pagos.
func IsSettled(doc *entity.OrderDocument, payments []*entity.Payment) bool {
	return !ComputeDueBalance(doc, payments).IsPositive()
}

// DuePreview saldo mostrado mientras el usuario digita montos. Nunca se persiste.
type DuePreview struct {
	Committed  decimal.Decimal // Σ pagos ya registrados
	LiveEntry  decimal.Decimal // total del pago en edición
	DueBalance decimal.Decimal // gran total - Committed - LiveEntry
	Settled    bool            // true si ya no quedaba saldo antes de la entrada
}

// PreviewDue calcula el saldo contra los pagos registrados menos la entrada en curso.
func PreviewDue(doc *entity.OrderDocument, committed []*entity.Payment, liveEntry decimal.Decimal) DuePreview {
	paid := PaidAmount(committed)
	return DuePreview{
		Committed:  paid,
		LiveEntry:  liveEntry,
		DueBalance: doc.GrandTotal.Sub(paid).Sub(liveEntry),
		Settled:    !doc.GrandTotal.Sub(paid).IsPositive(),
	}
}

// PaymentInput montos recibidos para un pago nuevo.
type PaymentInput struct {
	PaymentMethodID   string
	ReceivedPrimary   decimal.Decimal
	ReceivedSecondary decimal.Decimal
	ExchangeRate      decimal.Decimal
}

// ValidatePayment verifica un pago nuevo contra el saldo derivado de los pagos vigentes
// y devuelve su TotalPaid.
//   - ValidationError: montos negativos o con más decimales de los persistidos, ambos montos en cero, tasa no positiva,
//     método vacío o documento ya liquidado.
//   - InvariantViolation: el pago dejaría el saldo negativo.
func ValidatePayment(doc *entity.OrderDocument, committed []*entity.Payment, in PaymentInput) (decimal.Decimal, error) {
	if in.PaymentMethodID == "" {
		return decimal.Zero, domain.NewValidationError("payment_method_id", "requerido")
	}
	if in.ReceivedPrimary.IsNegative() || in.ReceivedSecondary.IsNegative() {
		return decimal.Zero, domain.NewValidationError("amount", "los montos recibidos no pueden ser negativos")
	}
	if !pricing.FitsPlaces(in.ReceivedPrimary, pricing.InputPlaces) || !pricing.FitsPlaces(in.ReceivedSecondary, pricing.InputPlaces) {
		return decimal.Zero, domain.NewValidationError("amount", fmt.Sprintf("los montos admiten a lo sumo %d decimales", pricing.InputPlaces))
	}
	if !pricing.FitsPlaces(in.ExchangeRate, pricing.RatePlaces) {
		return decimal.Zero, domain.NewValidationError("exchange_rate", fmt.Sprintf("la tasa admite a lo sumo %d decimales", pricing.RatePlaces))
	}
	if in.ReceivedPrimary.IsZero() && in.ReceivedSecondary.IsZero() {
		return decimal.Zero, domain.NewValidationError("amount", "ingrese un monto en moneda primaria o secundaria")
	}
	totalPaid, err := ComputeTotalPaid(in.ReceivedPrimary, in.ReceivedSecondary, in.ExchangeRate)
	if err != nil {
		return decimal.Zero, err
	}

	due := ComputeDueBalance(doc, committed)
	if !due.IsPositive() {
		return decimal.Zero, domain.NewValidationError("", "el documento ya está pagado en su totalidad")
	}
	if totalPaid.GreaterThan(due) {
		return decimal.Zero, domain.NewInvariantViolation("due_balance_non_negative",
			fmt.Sprintf("el pago %s supera el saldo pendiente %s", totalPaid.StringFixed(pricing.MoneyPlaces), due.StringFixed(pricing.MoneyPlaces)))
	}
	if !totalPaid.IsPositive() {
		return decimal.Zero, domain.NewValidationError("amount", "el pago redondeado es cero")
	}
	return totalPaid, nil
}

// ValidateDeleteReason exige un motivo no vacío para eliminar un pago.
func ValidateDeleteReason(reason string) error {
	if strings.TrimSpace(reason) != "" {
		return nil
	}
	return domain.NewValidationError("reason", "el motivo de eliminación es obligatorio")
}

// Without devuelve los pagos vigentes excluyendo paymentID. Sirve para recalcular el saldo
// tras una eliminación a partir del conjunto restante.
func Without(payments []*entity.Payment, paymentID string) []*entity.Payment {
	out := make([]*entity.Payment, 0, len(payments))
	for _, p := range payments {
		if p == nil || p.ID == paymentID || !p.IsLive() {
			continue
		}
		out = append(out, p)
	}
	return out
}
