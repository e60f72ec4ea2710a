package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/titya18/pos-react-front-office-sub001/internal/domain/entity"
	"github.com/titya18/pos-react-front-office-sub001/internal/domain/repository"
)

var _ repository.ExchangeRateRepository = (*ExchangeRateRepo)(nil)

// ExchangeRateRepo implementación de ExchangeRateRepository.
type ExchangeRateRepo struct {
	q Querier
}

// NewExchangeRateRepository construye el adaptador.
func NewExchangeRateRepository(q Querier) *ExchangeRateRepo {
	return &ExchangeRateRepo{q: q}
}

// Create registra una tasa.
func (r *ExchangeRateRepo) Create(ctx context.Context, rate *entity.ExchangeRate) error {
	if rate.ID == "" {
		rate.ID = uuid.New().String()
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO exchange_rates (id, rate, effective_at, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		rate.ID, rate.Rate, rate.EffectiveAt, rate.CreatedBy, rate.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert exchange rate: %w", err)
	}
	return nil
}

// Latest tasa con la fecha efectiva más reciente que ya esté vigente. (nil, nil) si no hay.
func (r *ExchangeRateRepo) Latest(ctx context.Context) (*entity.ExchangeRate, error) {
	var rate entity.ExchangeRate
	err := r.q.QueryRow(ctx, `
		SELECT id, rate, effective_at, created_by, created_at
		FROM exchange_rates
		WHERE effective_at <= now()
		ORDER BY effective_at DESC, created_at DESC
		LIMIT 1`).Scan(&rate.ID, &rate.Rate, &rate.EffectiveAt, &rate.CreatedBy, &rate.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("latest exchange rate: %w", err)
	}
	return &rate, nil
}
