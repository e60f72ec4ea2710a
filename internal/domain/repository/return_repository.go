package repository

import (
	"context"

	"github.com/titya18/pos-react-front-office-sub001/internal/domain/entity"
)

// ReturnRepository persistencia de devoluciones y sus ítems.
type ReturnRepository interface {
	Create(ctx context.Context, r *entity.ReturnDocument) error
	// ListByOrder devuelve el historial completo de devoluciones del documento.
	ListByOrder(ctx context.Context, orderID string) ([]*entity.ReturnDocument, error)
}
