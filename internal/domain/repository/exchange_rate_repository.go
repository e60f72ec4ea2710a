package repository

import (
	"context"

	"github.com/titya18/pos-react-front-office-sub001/internal/domain/entity"
)

// ExchangeRateRepository tasas de cambio registradas. Latest devuelve (nil, nil) si no hay ninguna.
type ExchangeRateRepository interface {
	Create(ctx context.Context, rate *entity.ExchangeRate) error
	Latest(ctx context.Context) (*entity.ExchangeRate, error)
}
