package repository

import (
	"context"
	"time"

	"github.com/titya18/pos-react-front-office-sub001/internal/domain/entity"
)

// PaymentRepository persistencia de pagos. Solo inserciones y eliminación lógica con motivo.
type PaymentRepository interface {
	Create(ctx context.Context, p *entity.Payment) error
	GetByID(ctx context.Context, id string) (*entity.Payment, error)
	// ListLive devuelve el conjunto completo de pagos vigentes del documento.
	ListLive(ctx context.Context, orderID string) ([]*entity.Payment, error)
	ListByOrder(ctx context.Context, orderID string, includeDeleted bool) ([]*entity.Payment, error)
	SoftDelete(ctx context.Context, id, reason string, at time.Time) error
}
