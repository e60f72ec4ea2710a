package settlement

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/titya18/pos-react-front-office-sub001/internal/application/dto"
	"github.com/titya18/pos-react-front-office-sub001/internal/application/ports"
	"github.com/titya18/pos-react-front-office-sub001/internal/domain"
	"github.com/titya18/pos-react-front-office-sub001/internal/domain/entity"
	"github.com/titya18/pos-react-front-office-sub001/internal/domain/pricing"
	"github.com/titya18/pos-react-front-office-sub001/internal/domain/repository"
	ledger "github.com/titya18/pos-react-front-office-sub001/internal/domain/settlement"
)

// Currencies códigos de moneda primaria y secundaria.
type Currencies struct {
	Primary   string
	Secondary string
}

// UseCase registro y eliminación de pagos. El saldo pendiente siempre se deriva del
// conjunto completo de pagos vigentes leído dentro de la misma transacción.
type UseCase struct {
	orders     repository.OrderRepository
	payments   repository.PaymentRepository
	returns    repository.ReturnRepository
	rates      ports.RateProvider
	statements StatementGenerator
	tx         ports.TxRunner
	recorder   ports.OutcomeRecorder
	currencies Currencies
	log        zerolog.Logger
	now        func() time.Time
}

// Deps dependencias del caso de uso.
type Deps struct {
	Orders     repository.OrderRepository
	Payments   repository.PaymentRepository
	Returns    repository.ReturnRepository
	Rates      ports.RateProvider
	Statements StatementGenerator
	Tx         ports.TxRunner
	Recorder   ports.OutcomeRecorder
	Currencies Currencies
	Log        zerolog.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(d Deps) *UseCase {
	if d.Recorder == nil {
		d.Recorder = ports.NopRecorder{}
	}
	return &UseCase{
		orders:     d.Orders,
		payments:   d.Payments,
		returns:    d.Returns,
		rates:      d.Rates,
		statements: d.Statements,
		tx:         d.Tx,
		recorder:   d.Recorder,
		currencies: d.Currencies,
		log:        d.Log,
		now:        time.Now,
	}
}

// RecordPayment registra un pago sobre una factura o compra aprobada.
//
// Dentro de una transacción: bloquea el documento, compara la versión, lee todos los pagos
// vigentes, valida contra el saldo, inserta, recalcula PaidAmount desde el conjunto completo
// y guarda con UPDATE condicional por versión.
func (uc *UseCase) RecordPayment(ctx context.Context, userID, orderID string, in dto.RecordPaymentRequest) (*dto.SettlementResponse, error) {
	if err := dto.Validate(in); err != nil {
		uc.recorder.Observe("payment_record", domain.Outcome(err))
		uc.reject("payment_record", orderID, err)
		return nil, err
	}
	var (
		saved *entity.Payment
		doc   *entity.OrderDocument
	)
	err := uc.tx.Run(ctx, func(orders repository.OrderRepository, payments repository.PaymentRepository, _ repository.ReturnRepository) error {
		var err error
		doc, err = lockSettleable(ctx, orders, orderID, in.ExpectedVersion)
		if err != nil {
			return err
		}
		live, err := payments.ListLive(ctx, orderID)
		if err != nil {
			return fmt.Errorf("listar pagos vigentes: %w", err)
		}
		totalPaid, err := ledger.ValidatePayment(doc, live, ledger.PaymentInput{
			PaymentMethodID:   in.PaymentMethodID,
			ReceivedPrimary:   in.ReceivedPrimary,
			ReceivedSecondary: in.ReceivedSecondary,
			ExchangeRate:      in.ExchangeRate,
		})
		if err != nil {
			return err
		}
		now := uc.now()
		p := &entity.Payment{
			ID:                        uuid.New().String(),
			OrderID:                   orderID,
			PaymentMethodID:           in.PaymentMethodID,
			ReceivedPrimaryCurrency:   in.ReceivedPrimary,
			ReceivedSecondaryCurrency: in.ReceivedSecondary,
			ExchangeRate:              in.ExchangeRate,
			TotalPaid:                 totalPaid,
			CreatedBy:                 userID,
			CreatedAt:                 now,
		}
		if err := payments.Create(ctx, p); err != nil {
			return fmt.Errorf("registrar pago: %w", err)
		}
		doc.PaidAmount = ledger.PaidAmount(append(live, p))
		doc.Version = in.ExpectedVersion + 1
		doc.UpdatedAt = now
		if err := orders.UpdateHeader(ctx, doc, in.ExpectedVersion); err != nil {
			return err
		}
		saved = p
		return nil
	})
	uc.recorder.Observe("payment_record", domain.Outcome(err))
	if err != nil {
		uc.reject("payment_record", orderID, err)
		return nil, err
	}
	resp := uc.settlementResponse(saved, doc)
	uc.log.Info().Str("order_id", orderID).Str("payment_id", saved.ID).
		Str("total_paid", saved.TotalPaid.StringFixed(pricing.MoneyPlaces)).
		Str("due_balance", resp.DueBalance.StringFixed(pricing.MoneyPlaces)).
		Int64("version", doc.Version).Msg("pago registrado")
	return resp, nil
}

// DeletePayment elimina lógicamente un pago con motivo obligatorio y recalcula el saldo
// a partir de los pagos vigentes restantes.
func (uc *UseCase) DeletePayment(ctx context.Context, paymentID string, in dto.DeletePaymentRequest) (*dto.SettlementResponse, error) {
	if err := ledger.ValidateDeleteReason(in.Reason); err != nil {
		uc.recorder.Observe("payment_delete", domain.Outcome(err))
		uc.reject("payment_delete", paymentID, err)
		return nil, err
	}
	var (
		deleted *entity.Payment
		doc     *entity.OrderDocument
	)
	err := uc.tx.Run(ctx, func(orders repository.OrderRepository, payments repository.PaymentRepository, _ repository.ReturnRepository) error {
		p, err := payments.GetByID(ctx, paymentID)
		if err != nil {
			return fmt.Errorf("obtener pago: %w", err)
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if !p.IsLive() {
			return fmt.Errorf("%w: el pago ya fue eliminado", domain.ErrInvalidState)
		}
		doc, err = orders.GetForUpdate(ctx, p.OrderID)
		if err != nil {
			return fmt.Errorf("obtener documento: %w", err)
		}
		if doc == nil {
			return domain.ErrNotFound
		}
		now := uc.now()
		if err := payments.SoftDelete(ctx, paymentID, in.Reason, now); err != nil {
			return fmt.Errorf("eliminar pago: %w", err)
		}
		live, err := payments.ListLive(ctx, doc.ID)
		if err != nil {
			return fmt.Errorf("listar pagos vigentes: %w", err)
		}
		expected := doc.Version
		doc.PaidAmount = ledger.PaidAmount(ledger.Without(live, paymentID))
		doc.Version = expected + 1
		doc.UpdatedAt = now
		if err := orders.UpdateHeader(ctx, doc, expected); err != nil {
			return err
		}
		p.DeletedAt = &now
		p.DeleteReason = in.Reason
		deleted = p
		return nil
	})
	uc.recorder.Observe("payment_delete", domain.Outcome(err))
	if err != nil {
		uc.reject("payment_delete", paymentID, err)
		return nil, err
	}
	resp := uc.settlementResponse(deleted, doc)
	uc.log.Info().Str("order_id", doc.ID).Str("payment_id", paymentID).
		Str("due_balance", resp.DueBalance.StringFixed(pricing.MoneyPlaces)).
		Int64("version", doc.Version).Msg("pago eliminado")
	return resp, nil
}

// PreviewDue saldo que quedaría con el pago en edición. Solo lectura.
// Si el request no trae tasa se usa la última registrada como sugerencia.
func (uc *UseCase) PreviewDue(ctx context.Context, orderID string, in dto.PreviewDueRequest) (*dto.DuePreviewResponse, error) {
	doc, err := uc.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("obtener documento: %w", err)
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	if !doc.AcceptsSettlement() {
		return nil, fmt.Errorf("%w: el documento %s en estado %s no admite pagos", domain.ErrInvalidState, doc.Kind, doc.Status)
	}
	if in.ReceivedPrimary.IsNegative() || in.ReceivedSecondary.IsNegative() {
		return nil, domain.NewValidationError("amount", "los montos recibidos no pueden ser negativos")
	}
	rate, err := uc.resolveRate(ctx, in.ExchangeRate)
	if err != nil {
		return nil, err
	}
	entry, err := ledger.ComputeTotalPaid(in.ReceivedPrimary, in.ReceivedSecondary, rate)
	if err != nil {
		return nil, err
	}
	live, err := uc.payments.ListLive(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("listar pagos vigentes: %w", err)
	}
	p := ledger.PreviewDue(doc, live, entry)
	return &dto.DuePreviewResponse{
		Committed:    p.Committed,
		LiveEntry:    p.LiveEntry,
		DueBalance:   p.DueBalance,
		Settled:      p.Settled,
		ExchangeRate: rate,
	}, nil
}

// ListPayments pagos del documento; includeDeleted agrega los eliminados con su motivo.
func (uc *UseCase) ListPayments(ctx context.Context, orderID string, includeDeleted bool) ([]dto.PaymentResponse, error) {
	doc, err := uc.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("obtener documento: %w", err)
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.payments.ListByOrder(ctx, orderID, includeDeleted)
	if err != nil {
		return nil, fmt.Errorf("listar pagos: %w", err)
	}
	out := make([]dto.PaymentResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.NewPaymentResponse(p))
	}
	return out, nil
}

// Statement genera el estado de cuenta en PDF: líneas, totales, pagos vigentes y saldo.
func (uc *UseCase) Statement(ctx context.Context, orderID string) (pdfBytes []byte, filename string, err error) {
	doc, err := uc.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, "", fmt.Errorf("obtener documento: %w", err)
	}
	if doc == nil {
		return nil, "", domain.ErrNotFound
	}
	live, err := uc.payments.ListLive(ctx, orderID)
	if err != nil {
		return nil, "", fmt.Errorf("listar pagos vigentes: %w", err)
	}
	var rets []*entity.ReturnDocument
	if uc.returns != nil {
		if rets, err = uc.returns.ListByOrder(ctx, orderID); err != nil {
			return nil, "", fmt.Errorf("listar devoluciones: %w", err)
		}
	}
	data := StatementData{
		Order:             doc,
		Totals:            pricing.AggregateTotals(doc.Lines, doc.ShippingAmount, doc.DiscountAmount, doc.TaxRatePercent),
		Payments:          live,
		Returns:           rets,
		DueBalance:        ledger.ComputeDueBalance(doc, live),
		PrimaryCurrency:   uc.currencies.Primary,
		SecondaryCurrency: uc.currencies.Secondary,
		GeneratedAt:       uc.now(),
	}
	pdfBytes, err = uc.statements.GenerateStatement(ctx, data)
	if err != nil {
		return nil, "", fmt.Errorf("estado de cuenta: generación fallida: %w", err)
	}
	name := doc.Reference
	if name == "" {
		name = doc.ID
	}
	return pdfBytes, fmt.Sprintf("estado_cuenta_%s.pdf", name), nil
}

// lockSettleable bloquea el documento y verifica versión y que admita pagos/devoluciones.
func lockSettleable(ctx context.Context, orders repository.OrderRepository, orderID string, expectedVersion int64) (*entity.OrderDocument, error) {
	doc, err := orders.GetForUpdate(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("obtener documento: %w", err)
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	if doc.Version != expectedVersion {
		return nil, domain.NewStaleDataError("order", orderID, expectedVersion, doc.Version)
	}
	if !doc.AcceptsSettlement() {
		return nil, fmt.Errorf("%w: el documento %s en estado %s no admite pagos", domain.ErrInvalidState, doc.Kind, doc.Status)
	}
	return doc, nil
}

func (uc *UseCase) resolveRate(ctx context.Context, requested *decimal.Decimal) (decimal.Decimal, error) {
	if requested != nil {
		return *requested, nil
	}
	if uc.rates == nil {
		return decimal.Zero, domain.NewValidationError("exchange_rate", "requerida")
	}
	latest, err := uc.rates.Latest(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("obtener tasa vigente: %w", err)
	}
	if latest == nil {
		return decimal.Zero, domain.NewValidationError("exchange_rate", "no hay tasa registrada; ingrese una")
	}
	return latest.Rate, nil
}

func (uc *UseCase) settlementResponse(p *entity.Payment, doc *entity.OrderDocument) *dto.SettlementResponse {
	return &dto.SettlementResponse{
		Payment:    dto.NewPaymentResponse(p),
		PaidAmount: doc.PaidAmount,
		DueBalance: doc.GrandTotal.Sub(doc.PaidAmount),
		Version:    doc.Version,
	}
}

func (uc *UseCase) reject(op, id string, err error) {
	if domain.IsRejection(err) {
		uc.log.Warn().Err(err).Str("op", op).Str("id", id).Msg("operación rechazada")
		return
	}
	uc.log.Error().Err(err).Str("op", op).Str("id", id).Msg("operación fallida")
}
