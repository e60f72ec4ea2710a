package order

import (
	"context"
	"fmt"
	"sort"
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
)

// UseCase ciclo de vida de facturas, compras y cotizaciones: líneas, cargos y estados.
// Cada mutación recalcula el documento completo y aumenta la versión.
type UseCase struct {
	orders   repository.OrderRepository
	tx       ports.TxRunner
	recorder ports.OutcomeRecorder
	log      zerolog.Logger
	now      func() time.Time
}

// NewUseCase construye el caso de uso. recorder puede ser nil.
func NewUseCase(orders repository.OrderRepository, tx ports.TxRunner, recorder ports.OutcomeRecorder, log zerolog.Logger) *UseCase {
	if recorder == nil {
		recorder = ports.NopRecorder{}
	}
	return &UseCase{orders: orders, tx: tx, recorder: recorder, log: log, now: time.Now}
}

// Create crea un documento en estado Open, versión 1 y sin líneas.
func (uc *UseCase) Create(ctx context.Context, userID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if err := validateCharges(in.ShippingAmount, in.DiscountAmount, in.TaxRatePercent); err != nil {
		return nil, err
	}
	now := uc.now()
	doc := &entity.OrderDocument{
		ID:             uuid.New().String(),
		Kind:           entity.DocumentKind(in.Kind),
		Reference:      in.Reference,
		Status:         entity.StatusOpen,
		ShippingAmount: in.ShippingAmount,
		DiscountAmount: in.DiscountAmount,
		TaxRatePercent: in.TaxRatePercent,
		PaidAmount:     decimal.Zero,
		Version:        1,
		CreatedBy:      userID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	pricing.Recompute(doc)
	if err := uc.orders.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("crear documento: %w", err)
	}
	uc.recorder.Observe("order_create", "ok")
	uc.log.Info().Str("order_id", doc.ID).Str("kind", string(doc.Kind)).Int64("version", doc.Version).Msg("documento creado")
	resp := dto.NewOrderResponse(doc)
	return &resp, nil
}

// Get devuelve el documento con sus líneas.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.OrderResponse, error) {
	doc, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener documento: %w", err)
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	resp := dto.NewOrderResponse(doc)
	return &resp, nil
}

// List lista documentos filtrando por tipo y estado.
func (uc *UseCase) List(ctx context.Context, q dto.OrderListQuery) (*dto.OrderListResponse, error) {
	q.DefaultPage()
	if err := dto.Validate(q); err != nil {
		return nil, err
	}
	docs, total, err := uc.orders.List(ctx, repository.OrderFilter{
		Kind:   entity.DocumentKind(q.Kind),
		Status: entity.DocumentStatus(q.Status),
		Limit:  q.Limit,
		Offset: q.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("listar documentos: %w", err)
	}
	out := &dto.OrderListResponse{
		Items: make([]dto.OrderResponse, 0, len(docs)),
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset, Total: total},
	}
	for _, d := range docs {
		out.Items = append(out.Items, dto.NewOrderResponse(d))
	}
	return out, nil
}

// mutation cambia el documento bloqueado. Devuelve true si las líneas cambiaron y deben reescribirse.
type mutation func(doc *entity.OrderDocument, payments repository.PaymentRepository) (linesChanged bool, err error)

// mutate bloquea el documento, verifica la versión, aplica fn, recalcula desde el estado completo
// y guarda con control optimista.
func (uc *UseCase) mutate(ctx context.Context, op, id string, expectedVersion int64, fn mutation) (*dto.OrderResponse, error) {
	var saved *entity.OrderDocument
	err := uc.tx.Run(ctx, func(orders repository.OrderRepository, payments repository.PaymentRepository, _ repository.ReturnRepository) error {
		doc, err := orders.GetForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("obtener documento: %w", err)
		}
		if doc == nil {
			return domain.ErrNotFound
		}
		if doc.Version != expectedVersion {
			return domain.NewStaleDataError("order", id, expectedVersion, doc.Version)
		}
		linesChanged, err := fn(doc, payments)
		if err != nil {
			return err
		}
		pricing.Recompute(doc)
		doc.Version = expectedVersion + 1
		doc.UpdatedAt = uc.now()
		if linesChanged {
			if err := orders.SaveLines(ctx, doc.ID, doc.Lines); err != nil {
				return fmt.Errorf("guardar líneas: %w", err)
			}
		}
		if err := orders.UpdateHeader(ctx, doc, expectedVersion); err != nil {
			return err
		}
		saved = doc
		return nil
	})
	uc.recorder.Observe(op, domain.Outcome(err))
	if err != nil {
		if domain.IsRejection(err) {
			uc.log.Warn().Err(err).Str("op", op).Str("order_id", id).Int64("expected_version", expectedVersion).Msg("mutación rechazada")
		}
		return nil, err
	}
	uc.log.Info().Str("op", op).Str("order_id", saved.ID).Int64("version", saved.Version).
		Str("grand_total", saved.GrandTotal.StringFixed(pricing.MoneyPlaces)).Msg("documento actualizado")
	resp := dto.NewOrderResponse(saved)
	return &resp, nil
}

// UpdateCharges cambia envío, descuento e impuesto del documento (solo Open).
func (uc *UseCase) UpdateCharges(ctx context.Context, id string, in dto.UpdateChargesRequest) (*dto.OrderResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if err := validateCharges(in.ShippingAmount, in.DiscountAmount, in.TaxRatePercent); err != nil {
		return nil, err
	}
	return uc.mutate(ctx, "order_update_charges", id, in.ExpectedVersion, func(doc *entity.OrderDocument, _ repository.PaymentRepository) (bool, error) {
		if !doc.IsEditable() {
			return false, fmt.Errorf("%w: los cargos solo se editan en estado open (actual %s)", domain.ErrInvalidState, doc.Status)
		}
		doc.ShippingAmount = in.ShippingAmount
		doc.DiscountAmount = in.DiscountAmount
		doc.TaxRatePercent = in.TaxRatePercent
		return false, nil
	})
}

func validateCharges(shipping, discount, taxRate decimal.Decimal) error {
	switch {
	case shipping.IsNegative():
		return domain.NewValidationError("shipping_amount", "no puede ser negativo")
	case discount.IsNegative():
		return domain.NewValidationError("discount_amount", "no puede ser negativo")
	case taxRate.IsNegative():
		return domain.NewValidationError("tax_rate_percent", "no puede ser negativo")
	}
	return checkPlaces(map[string]decimal.Decimal{
		"shipping_amount":  shipping,
		"discount_amount":  discount,
		"tax_rate_percent": taxRate,
	})
}

// checkPlaces rechaza montos con más decimales de los que guarda el esquema.
func checkPlaces(fields map[string]decimal.Decimal) error {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if !pricing.FitsPlaces(fields[name], pricing.InputPlaces) {
			return domain.NewValidationError(name, fmt.Sprintf("admite a lo sumo %d decimales", pricing.InputPlaces))
		}
	}
	return nil
}
