package cache

import (
	"context"
	"testing"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/titya18/pos-react-front-office-sub001/internal/domain/entity"
)

type fakeRates struct {
	latest  *entity.ExchangeRate
	calls   int
	created []*entity.ExchangeRate
}

func (f *fakeRates) Create(_ context.Context, r *entity.ExchangeRate) error {
	f.created = append(f.created, r)
	f.latest = r
	return nil
}

func (f *fakeRates) Latest(_ context.Context) (*entity.ExchangeRate, error) {
	f.calls++
	return f.latest, nil
}

func unreachableClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func TestNewExchangeRateCache_SinClienteDevuelveElRepositorio(t *testing.T) {
	inner := &fakeRates{}
	assert.Same(t, inner, NewExchangeRateCache(inner, nil, time.Minute, zerolog.Nop()))
}

func TestLatest_RedisCaidoDegradaALaBase(t *testing.T) {
	client := unreachableClient()
	defer client.Close()
	inner := &fakeRates{latest: &entity.ExchangeRate{ID: "r-1", Rate: decimal.NewFromInt(4100), EffectiveAt: time.Now()}}
	c := NewExchangeRateCache(inner, client, time.Minute, zerolog.Nop())

	rate, err := c.Latest(context.Background())
	require.NoError(t, err)
	require.NotNil(t, rate)
	assert.Equal(t, "r-1", rate.ID)
	assert.Equal(t, 1, inner.calls)

	require.NoError(t, c.Create(context.Background(), &entity.ExchangeRate{ID: "r-2", Rate: decimal.NewFromInt(4200)}))
	assert.Len(t, inner.created, 1)
}

func TestEncodeDecodeRate(t *testing.T) {
	in := &entity.ExchangeRate{ID: "r-1", Rate: decimal.RequireFromString("4100.5"), EffectiveAt: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)}
	raw, err := encodeRate(in)
	require.NoError(t, err)

	out, err := decodeRate(raw)
	require.NoError(t, err)
	assert.True(t, in.Rate.Equal(out.Rate))
	assert.True(t, in.EffectiveAt.Equal(out.EffectiveAt))

	_, err = decodeRate([]byte(`{"id":"r-1","rate":"0"}`))
	assert.Error(t, err)
	_, err = decodeRate([]byte(`no-json`))
	assert.Error(t, err)
}
