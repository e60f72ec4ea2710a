package ports

import (
	"context"

	"github.com/titya18/pos-react-front-office-sub001/internal/domain/entity"
	"github.com/titya18/pos-react-front-office-sub001/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Todo cambio de saldo o de devoluciones corre dentro de Run para que la lectura del conjunto
// completo de pagos/devoluciones y la escritura sean atómicas.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		orders repository.OrderRepository,
		payments repository.PaymentRepository,
		returns repository.ReturnRepository,
	) error) error
}

// OutcomeRecorder registra el resultado de cada operación de escritura (métricas).
type OutcomeRecorder interface {
	Observe(operation, outcome string)
}

// RateProvider última tasa de cambio registrada; (nil, nil) si no hay ninguna.
// Solo sirve como sugerencia: los pagos guardan la tasa capturada por el caller.
type RateProvider interface {
	Latest(ctx context.Context) (*entity.ExchangeRate, error)
}

// NopRecorder descarta las observaciones.
type NopRecorder struct{}

// Observe no hace nada.
func (NopRecorder) Observe(string, string) {}
