package returns

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/titya18/pos-react-front-office-sub001/internal/application/dto"
	"github.com/titya18/pos-react-front-office-sub001/internal/application/ports"
	"github.com/titya18/pos-react-front-office-sub001/internal/domain"
	"github.com/titya18/pos-react-front-office-sub001/internal/domain/entity"
	"github.com/titya18/pos-react-front-office-sub001/internal/domain/pricing"
	"github.com/titya18/pos-react-front-office-sub001/internal/domain/repository"
	reconciler "github.com/titya18/pos-react-front-office-sub001/internal/domain/returns"
)

// UseCase devoluciones sobre facturas y compras aprobadas.
type UseCase struct {
	orders   repository.OrderRepository
	returns  repository.ReturnRepository
	tx       ports.TxRunner
	recorder ports.OutcomeRecorder
	mode     reconciler.PricingMode
	log      zerolog.Logger
	now      func() time.Time
}

// NewUseCase construye el caso de uso con el modo de valoración configurado.
func NewUseCase(orders repository.OrderRepository, returns repository.ReturnRepository, tx ports.TxRunner,
	recorder ports.OutcomeRecorder, mode reconciler.PricingMode, log zerolog.Logger) *UseCase {
	if recorder == nil {
		recorder = ports.NopRecorder{}
	}
	return &UseCase{orders: orders, returns: returns, tx: tx, recorder: recorder, mode: mode, log: log, now: time.Now}
}

// ListReturnable por cada línea original: vendido, devuelto y pendiente por devolver.
func (uc *UseCase) ListReturnable(ctx context.Context, orderID string) ([]dto.ReturnableLineResponse, error) {
	doc, err := uc.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("obtener documento: %w", err)
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	prior, err := uc.returns.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("listar devoluciones: %w", err)
	}
	lines := reconciler.ReturnableLines(doc, prior)
	out := make([]dto.ReturnableLineResponse, 0, len(lines))
	for _, r := range lines {
		out = append(out, dto.ReturnableLineResponse{
			LineID:    r.Line.ID,
			SourceID:  r.Line.SourceID,
			UnitPrice: r.Line.UnitPrice,
			Sold:      r.Sold,
			Returned:  r.Returned,
			Remaining: r.Remaining,
		})
	}
	return out, nil
}

// AdjustQuantity aplica el paso del selector de cantidad sin superar el máximo.
func (uc *UseCase) AdjustQuantity(in dto.AdjustQuantityRequest) (*dto.AdjustQuantityResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	a := reconciler.AdjustReturnQuantity(in.Current, in.Delta, in.Max)
	return &dto.AdjustQuantityResponse{Quantity: a.Quantity, Refused: a.Refused, Warning: a.Warning}, nil
}

// SubmitReturn registra una devolución. Dentro de la transacción bloquea el documento,
// compara versión, lee TODAS las devoluciones previas y valida contra lo vendido.
func (uc *UseCase) SubmitReturn(ctx context.Context, userID, orderID string, in dto.SubmitReturnRequest) (*dto.ReturnResponse, error) {
	if err := dto.Validate(in); err != nil {
		uc.recorder.Observe("return_submit", domain.Outcome(err))
		uc.log.Warn().Err(err).Str("order_id", orderID).Msg("devolución rechazada")
		return nil, err
	}
	items := make([]reconciler.ItemRequest, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, reconciler.ItemRequest{OriginalLineID: it.OriginalLineID, Quantity: it.Quantity})
	}

	var (
		ret     *entity.ReturnDocument
		version int64
	)
	err := uc.tx.Run(ctx, func(orders repository.OrderRepository, _ repository.PaymentRepository, returns repository.ReturnRepository) error {
		doc, err := orders.GetForUpdate(ctx, orderID)
		if err != nil {
			return fmt.Errorf("obtener documento: %w", err)
		}
		if doc == nil {
			return domain.ErrNotFound
		}
		if doc.Version != in.ExpectedVersion {
			return domain.NewStaleDataError("order", orderID, in.ExpectedVersion, doc.Version)
		}
		if !doc.AcceptsSettlement() {
			return fmt.Errorf("%w: el documento %s en estado %s no admite devoluciones", domain.ErrInvalidState, doc.Kind, doc.Status)
		}
		prior, err := returns.ListByOrder(ctx, orderID)
		if err != nil {
			return fmt.Errorf("listar devoluciones: %w", err)
		}
		built, err := reconciler.BuildReturn(doc, prior, items, uc.mode)
		if err != nil {
			return err
		}
		now := uc.now()
		built.ID = uuid.New().String()
		built.Note = strings.TrimSpace(in.Note)
		built.CreatedBy = userID
		built.CreatedAt = now
		for i := range built.Items {
			built.Items[i].ID = uuid.New().String()
			built.Items[i].ReturnID = built.ID
		}
		if err := returns.Create(ctx, built); err != nil {
			return fmt.Errorf("registrar devolución: %w", err)
		}
		doc.Version = in.ExpectedVersion + 1
		doc.UpdatedAt = now
		if err := orders.UpdateHeader(ctx, doc, in.ExpectedVersion); err != nil {
			return err
		}
		ret, version = built, doc.Version
		return nil
	})
	uc.recorder.Observe("return_submit", domain.Outcome(err))
	if err != nil {
		if domain.IsRejection(err) {
			uc.log.Warn().Err(err).Str("order_id", orderID).Int64("expected_version", in.ExpectedVersion).Msg("devolución rechazada")
		}
		return nil, err
	}
	uc.log.Info().Str("order_id", orderID).Str("return_id", ret.ID).
		Str("grand_total", ret.GrandTotal.StringFixed(pricing.MoneyPlaces)).
		Int64("version", version).Msg("devolución registrada")
	resp := dto.NewReturnResponse(ret)
	resp.Version = version
	return &resp, nil
}

// ListReturns historial de devoluciones del documento.
func (uc *UseCase) ListReturns(ctx context.Context, orderID string) ([]dto.ReturnResponse, error) {
	doc, err := uc.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("obtener documento: %w", err)
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.returns.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("listar devoluciones: %w", err)
	}
	out := make([]dto.ReturnResponse, 0, len(list))
	for _, r := range list {
		out = append(out, dto.NewReturnResponse(r))
	}
	return out, nil
}
