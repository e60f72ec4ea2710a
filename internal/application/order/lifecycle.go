package order

import (
	"context"
	"fmt"

	"github.com/titya18/pos-react-front-office-sub001/internal/application/dto"
	"github.com/titya18/pos-react-front-office-sub001/internal/domain"
	"github.com/titya18/pos-react-front-office-sub001/internal/domain/entity"
	"github.com/titya18/pos-react-front-office-sub001/internal/domain/repository"
)

// Approve Open → Approved. Requiere al menos una línea.
func (uc *UseCase) Approve(ctx context.Context, id string, expectedVersion int64) (*dto.OrderResponse, error) {
	return uc.mutate(ctx, "order_approve", id, expectedVersion, func(doc *entity.OrderDocument, _ repository.PaymentRepository) (bool, error) {
		if err := transition(doc, entity.StatusApproved); err != nil {
			return false, err
		}
		if len(doc.Lines) == 0 {
			return false, domain.NewValidationError("lines", "el documento no tiene líneas")
		}
		doc.Status = entity.StatusApproved
		return false, nil
	})
}

// Complete Approved → Completed.
func (uc *UseCase) Complete(ctx context.Context, id string, expectedVersion int64) (*dto.OrderResponse, error) {
	return uc.mutate(ctx, "order_complete", id, expectedVersion, func(doc *entity.OrderDocument, _ repository.PaymentRepository) (bool, error) {
		if err := transition(doc, entity.StatusCompleted); err != nil {
			return false, err
		}
		doc.Status = entity.StatusCompleted
		return false, nil
	})
}

// Cancel Open|Approved → Cancelled. Se rechaza si el documento tiene pagos vigentes.
func (uc *UseCase) Cancel(ctx context.Context, id string, expectedVersion int64) (*dto.OrderResponse, error) {
	return uc.mutate(ctx, "order_cancel", id, expectedVersion, func(doc *entity.OrderDocument, payments repository.PaymentRepository) (bool, error) {
		if err := transition(doc, entity.StatusCancelled); err != nil {
			return false, err
		}
		live, err := payments.ListLive(ctx, doc.ID)
		if err != nil {
			return false, fmt.Errorf("listar pagos: %w", err)
		}
		if len(live) > 0 {
			return false, domain.NewInvariantViolation("cancel_without_live_payments",
				fmt.Sprintf("el documento tiene %d pagos vigentes; elimínelos antes de anular", len(live)))
		}
		doc.Status = entity.StatusCancelled
		return false, nil
	})
}

func transition(doc *entity.OrderDocument, to entity.DocumentStatus) error {
	if !doc.CanTransition(to) {
		return fmt.Errorf("%w: no se puede pasar de %s a %s", domain.ErrInvalidState, doc.Status, to)
	}
	return nil
}
