package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/titya18/pos-react-front-office-sub001/internal/domain/entity"
	"github.com/titya18/pos-react-front-office-sub001/internal/domain/repository"
)

// LatestRateKey clave de la tasa vigente en Redis.
const LatestRateKey = "exchange_rate:latest"

var _ repository.ExchangeRateRepository = (*ExchangeRateCache)(nil)

// ExchangeRateCache lectura con caché de la tasa vigente sobre otro ExchangeRateRepository.
// Si Redis falla se lee directo del repositorio; la caché nunca bloquea un cobro.
type ExchangeRateCache struct {
	next   repository.ExchangeRateRepository
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

// NewExchangeRateCache envuelve next. Con client nil devuelve next sin caché.
func NewExchangeRateCache(next repository.ExchangeRateRepository, client *redis.Client, ttl time.Duration, log zerolog.Logger) repository.ExchangeRateRepository {
	if client == nil {
		return next
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ExchangeRateCache{next: next, client: client, ttl: ttl, log: log}
}

// Create registra la tasa e invalida la entrada en caché.
func (c *ExchangeRateCache) Create(ctx context.Context, rate *entity.ExchangeRate) error {
	if err := c.next.Create(ctx, rate); err != nil {
		return err
	}
	if err := c.client.Del(ctx, LatestRateKey).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", LatestRateKey).Msg("no se pudo invalidar la caché de tasas")
	}
	return nil
}

// Latest intenta Redis y, si no está, lee del repositorio y guarda el resultado.
func (c *ExchangeRateCache) Latest(ctx context.Context) (*entity.ExchangeRate, error) {
	raw, err := c.client.Get(ctx, LatestRateKey).Bytes()
	switch {
	case err == nil:
		rate, decErr := decodeRate(raw)
		if decErr == nil {
			return rate, nil
		}
		c.log.Warn().Err(decErr).Msg("entrada de caché inválida; se relee la tasa")
	case !errors.Is(err, redis.Nil):
		c.log.Warn().Err(err).Msg("redis no disponible; se lee la tasa de la base")
	}

	rate, err := c.next.Latest(ctx)
	if err != nil || rate == nil {
		return rate, err
	}
	payload, err := encodeRate(rate)
	if err == nil {
		err = c.client.Set(ctx, LatestRateKey, payload, c.ttl).Err()
	}
	if err != nil {
		c.log.Warn().Err(err).Msg("no se pudo guardar la tasa en caché")
	}
	return rate, nil
}

type cachedRate struct {
	ID          string          `json:"id"`
	Rate        decimal.Decimal `json:"rate"`
	EffectiveAt time.Time       `json:"effective_at"`
	CreatedBy   string          `json:"created_by"`
	CreatedAt   time.Time       `json:"created_at"`
}

func encodeRate(r *entity.ExchangeRate) ([]byte, error) {
	return json.Marshal(cachedRate{
		ID:          r.ID,
		Rate:        r.Rate,
		EffectiveAt: r.EffectiveAt,
		CreatedBy:   r.CreatedBy,
		CreatedAt:   r.CreatedAt,
	})
}

func decodeRate(raw []byte) (*entity.ExchangeRate, error) {
	var c cachedRate
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("decode cached rate: %w", err)
	}
	if c.ID == "" || !c.Rate.IsPositive() {
		return nil, errors.New("decode cached rate: entrada incompleta")
	}
	return &entity.ExchangeRate{
		ID:          c.ID,
		Rate:        c.Rate,
		EffectiveAt: c.EffectiveAt,
		CreatedBy:   c.CreatedBy,
		CreatedAt:   c.CreatedAt,
	}, nil
}
