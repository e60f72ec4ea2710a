package settlement

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/titya18/pos-react-front-office-sub001/internal/domain/entity"
	"github.com/titya18/pos-react-front-office-sub001/internal/domain/pricing"
)

// StatementData datos necesarios para el estado de cuenta de un documento.
type StatementData struct {
	Order             *entity.OrderDocument
	Totals            pricing.Totals
	Payments          []*entity.Payment // solo vigentes
	Returns           []*entity.ReturnDocument
	DueBalance        decimal.Decimal
	PrimaryCurrency   string
	SecondaryCurrency string
	GeneratedAt       time.Time
}

// StatementGenerator puerto de salida para renderizar el estado de cuenta (PDF).
type StatementGenerator interface {
	GenerateStatement(ctx context.Context, data StatementData) ([]byte, error)
}
