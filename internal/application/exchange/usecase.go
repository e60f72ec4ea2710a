package exchange

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/titya18/pos-react-front-office-sub001/internal/application/dto"
	"github.com/titya18/pos-react-front-office-sub001/internal/domain"
	"github.com/titya18/pos-react-front-office-sub001/internal/domain/entity"
	"github.com/titya18/pos-react-front-office-sub001/internal/domain/pricing"
	"github.com/titya18/pos-react-front-office-sub001/internal/domain/repository"
)

// UseCase tasas de cambio primaria → secundaria. La tasa vigente solo es una sugerencia:
// cada pago conserva la tasa con la que se registró.
type UseCase struct {
	rates     repository.ExchangeRateRepository
	primary   string
	secondary string
	log       zerolog.Logger
	now       func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(rates repository.ExchangeRateRepository, primary, secondary string, log zerolog.Logger) *UseCase {
	return &UseCase{rates: rates, primary: primary, secondary: secondary, log: log, now: time.Now}
}

// Latest devuelve la última tasa registrada o ErrNotFound si no hay ninguna.
func (uc *UseCase) Latest(ctx context.Context) (*dto.ExchangeRateResponse, error) {
	rate, err := uc.rates.Latest(ctx)
	if err != nil {
		return nil, fmt.Errorf("obtener tasa vigente: %w", err)
	}
	if rate == nil {
		return nil, domain.ErrNotFound
	}
	resp := dto.NewExchangeRateResponse(rate, uc.primary, uc.secondary)
	return &resp, nil
}

// Register guarda una nueva tasa. Debe ser positiva; sin fecha efectiva rige desde ahora.
func (uc *UseCase) Register(ctx context.Context, userID string, in dto.RegisterRateRequest) (*dto.ExchangeRateResponse, error) {
	if !in.Rate.IsPositive() {
		return nil, domain.NewValidationError("rate", "la tasa debe ser mayor a cero")
	}
	if !pricing.FitsPlaces(in.Rate, pricing.RatePlaces) {
		return nil, domain.NewValidationError("rate", fmt.Sprintf("la tasa admite a lo sumo %d decimales", pricing.RatePlaces))
	}
	now := uc.now()
	rate := &entity.ExchangeRate{
		ID:          uuid.New().String(),
		Rate:        in.Rate,
		EffectiveAt: now,
		CreatedBy:   userID,
		CreatedAt:   now,
	}
	if in.EffectiveAt != nil {
		rate.EffectiveAt = *in.EffectiveAt
	}
	if err := uc.rates.Create(ctx, rate); err != nil {
		return nil, fmt.Errorf("registrar tasa: %w", err)
	}
	uc.log.Info().Str("rate_id", rate.ID).Str("rate", rate.Rate.String()).Time("effective_at", rate.EffectiveAt).Msg("tasa registrada")
	resp := dto.NewExchangeRateResponse(rate, uc.primary, uc.secondary)
	return &resp, nil
}
