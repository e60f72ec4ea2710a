package repository

import (
	"context"

	"github.com/titya18/pos-react-front-office-sub001/internal/domain/entity"
)

// OrderFilter filtros del listado de documentos.
type OrderFilter struct {
	Kind   entity.DocumentKind
	Status entity.DocumentStatus
	Limit  int
	Offset int
}

// OrderRepository define el puerto de persistencia para OrderDocument y sus líneas.
// GetByID y GetForUpdate devuelven (nil, nil) si el documento no existe.
type OrderRepository interface {
	Create(ctx context.Context, doc *entity.OrderDocument) error
	GetByID(ctx context.Context, id string) (*entity.OrderDocument, error)
	// GetForUpdate obtiene el documento y bloquea su fila (SELECT ... FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.OrderDocument, error)
	List(ctx context.Context, f OrderFilter) ([]*entity.OrderDocument, int, error)
	// SaveLines reemplaza el conjunto de líneas del documento.
	SaveLines(ctx context.Context, orderID string, lines []entity.OrderLine) error
	// UpdateHeader guarda cabecera y totales con doc.Version como nueva versión, solo si la
	// versión almacenada es expectedVersion. Si no coincide devuelve *domain.StaleDataError.
	UpdateHeader(ctx context.Context, doc *entity.OrderDocument, expectedVersion int64) error
}
