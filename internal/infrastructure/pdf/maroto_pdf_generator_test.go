package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/titya18/pos-react-front-office-sub001/internal/application/settlement"
	"github.com/titya18/pos-react-front-office-sub001/internal/domain/entity"
	"github.com/titya18/pos-react-front-office-sub001/internal/domain/pricing"
)

func statementFixture() settlement.StatementData {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	doc := &entity.OrderDocument{
		ID:        "ord-1",
		Kind:      entity.KindInvoice,
		Reference: "INV-0001",
		Status:    entity.StatusApproved,
		Lines: []entity.OrderLine{{
			ID: "l1", SourceID: "SKU-1", Position: 1,
			UnitPrice: decimal.NewFromInt(100), Quantity: 2,
			DiscountMethod: entity.DiscountPercent, DiscountValue: decimal.NewFromInt(10),
			TaxMethod: entity.TaxExclude, TaxRatePercent: decimal.NewFromInt(10),
		}},
		ShippingAmount: decimal.NewFromInt(5),
		DiscountAmount: decimal.Zero,
		TaxRatePercent: decimal.Zero,
		Version:        3,
		CreatedAt:      now,
	}
	pricing.Recompute(doc)
	totals := pricing.AggregateTotals(doc.Lines, doc.ShippingAmount, doc.DiscountAmount, doc.TaxRatePercent)
	return settlement.StatementData{
		Order:  doc,
		Totals: totals,
		Payments: []*entity.Payment{{
			ID: "p1", PaymentMethodID: "cash",
			ReceivedPrimaryCurrency:   decimal.NewFromInt(50),
			ReceivedSecondaryCurrency: decimal.NewFromInt(41000),
			ExchangeRate:              decimal.NewFromInt(4100),
			TotalPaid:                 decimal.NewFromInt(60),
			CreatedAt:                 now,
		}},
		Returns: []*entity.ReturnDocument{{
			ID: "r1", OrderID: "ord-1", Note: "dañado",
			Items:      []entity.ReturnItem{{OriginalLineID: "l1", Quantity: 1}},
			GrandTotal: decimal.NewFromInt(99),
			CreatedAt:  now,
		}},
		DueBalance:        totals.GrandTotal.Sub(decimal.NewFromInt(60)),
		PrimaryCurrency:   "USD",
		SecondaryCurrency: "KHR",
		GeneratedAt:       now,
	}
}

func TestGenerateStatement_ProducePDF(t *testing.T) {
	g := NewMarotoPDFGenerator("POS")

	out, err := g.GenerateStatement(context.Background(), statementFixture())

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateStatement_SinPagosNiDevoluciones(t *testing.T) {
	data := statementFixture()
	data.Payments = nil
	data.Returns = nil
	data.Order.Reference = ""

	out, err := NewMarotoPDFGenerator("POS").GenerateStatement(context.Background(), data)

	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestGenerateStatement_SinDocumento(t *testing.T) {
	_, err := NewMarotoPDFGenerator("POS").GenerateStatement(context.Background(), settlement.StatementData{})
	assert.Error(t, err)
}
