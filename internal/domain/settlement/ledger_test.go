package settlement_test

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/titya18/pos-react-front-office-sub001/internal/domain"
	"github.com/titya18/pos-react-front-office-sub001/internal/domain/entity"
	"github.com/titya18/pos-react-front-office-sub001/internal/domain/settlement"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func docWithTotal(total string) *entity.OrderDocument {
	return &entity.OrderDocument{ID: "ord-1", Kind: entity.KindInvoice, Status: entity.StatusApproved, GrandTotal: dec(total)}
}

func payment(id, total string) *entity.Payment {
	return &entity.Payment{ID: id, OrderID: "ord-1", TotalPaid: dec(total)}
}

func TestComputeTotalPaid(t *testing.T) {
	got, err := settlement.ComputeTotalPaid(dec("0"), dec("1130000"), dec("4000"))
	require.NoError(t, err)
	assert.True(t, dec("282.5").Equal(got))

	got, err = settlement.ComputeTotalPaid(dec("10"), dec("10000"), dec("4100"))
	require.NoError(t, err)
	assert.Equal(t, "12.44", got.StringFixed(2), "10 + 10000/4100 = 12.439... redondeado")

	_, err = settlement.ComputeTotalPaid(dec("10"), dec("0"), dec("0"))
	assert.True(t, errors.Is(err, domain.ErrValidation), "tasa cero debe rechazarse")
}

// Gran total 482.5, pago en USD y luego en KHR hasta saldar.
func TestLedger_PagoEnUSDLuegoEnKHRHastaSaldar(t *testing.T) {
	doc := docWithTotal("482.5")
	var committed []*entity.Payment

	tp1, err := settlement.ValidatePayment(doc, committed, settlement.PaymentInput{
		PaymentMethodID: "cash", ReceivedPrimary: dec("200"), ReceivedSecondary: dec("0"), ExchangeRate: dec("4000"),
	})
	require.NoError(t, err)
	assert.True(t, dec("200").Equal(tp1))
	committed = append(committed, payment("p1", tp1.String()))
	assert.True(t, dec("282.5").Equal(settlement.ComputeDueBalance(doc, committed)))

	tp2, err := settlement.ValidatePayment(doc, committed, settlement.PaymentInput{
		PaymentMethodID: "cash", ReceivedPrimary: dec("0"), ReceivedSecondary: dec("1130000"), ExchangeRate: dec("4000"),
	})
	require.NoError(t, err)
	assert.True(t, dec("282.5").Equal(tp2))
	committed = append(committed, payment("p2", tp2.String()))
	assert.True(t, settlement.ComputeDueBalance(doc, committed).IsZero())
	assert.True(t, settlement.IsSettled(doc, committed))

	_, err = settlement.ValidatePayment(doc, committed, settlement.PaymentInput{
		PaymentMethodID: "cash", ReceivedPrimary: dec("1"), ExchangeRate: dec("4000"),
	})
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr, "documento liquidado no admite más pagos")
}

func TestValidatePayment_CeroEnAmbasMonedas(t *testing.T) {
	for _, total := range []string{"0", "10", "482.5"} {
		_, err := settlement.ValidatePayment(docWithTotal(total), nil, settlement.PaymentInput{
			PaymentMethodID: "cash", ReceivedPrimary: dec("0"), ReceivedSecondary: dec("0"), ExchangeRate: dec("4000"),
		})
		assert.True(t, errors.Is(err, domain.ErrValidation), "usd=0 khr=0 siempre se rechaza (total %s)", total)
	}
}

func TestValidatePayment_Rechazos(t *testing.T) {
	doc := docWithTotal("100")
	cases := []struct {
		name string
		in   settlement.PaymentInput
		want error
	}{
		{"sin método", settlement.PaymentInput{ReceivedPrimary: dec("10"), ExchangeRate: dec("4000")}, domain.ErrValidation},
		{"monto negativo", settlement.PaymentInput{PaymentMethodID: "cash", ReceivedPrimary: dec("-1"), ExchangeRate: dec("4000")}, domain.ErrValidation},
		{"tasa negativa", settlement.PaymentInput{PaymentMethodID: "cash", ReceivedSecondary: dec("100"), ExchangeRate: dec("-1")}, domain.ErrValidation},
		{"sobrepago", settlement.PaymentInput{PaymentMethodID: "cash", ReceivedPrimary: dec("100.01"), ExchangeRate: dec("4000")}, domain.ErrInvariant},
		{"redondea a cero", settlement.PaymentInput{PaymentMethodID: "cash", ReceivedSecondary: dec("1"), ExchangeRate: dec("4000")}, domain.ErrValidation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := settlement.ValidatePayment(doc, nil, tc.in)
			assert.True(t, errors.Is(err, tc.want), "error obtenido: %v", err)
		})
	}
}

func TestValidatePayment_PagoExactoDejaSaldoCero(t *testing.T) {
	doc := docWithTotal("99.99")
	committed := []*entity.Payment{payment("p1", "50")}
	tp, err := settlement.ValidatePayment(doc, committed, settlement.PaymentInput{
		PaymentMethodID: "card", ReceivedPrimary: dec("49.99"), ExchangeRate: dec("4000"),
	})
	require.NoError(t, err)
	committed = append(committed, payment("p2", tp.String()))
	assert.True(t, settlement.ComputeDueBalance(doc, committed).IsZero())
}

func TestComputeDueBalance_IgnoraPagosEliminados(t *testing.T) {
	deleted := time.Now()
	doc := docWithTotal("300")
	payments := []*entity.Payment{
		payment("p1", "100"),
		{ID: "p2", TotalPaid: dec("150"), DeletedAt: &deleted, DeleteReason: "duplicado"},
	}
	assert.True(t, dec("200").Equal(settlement.ComputeDueBalance(doc, payments)))
}

func TestPreviewDue_NoIncluyeEntradaEnCommitted(t *testing.T) {
	doc := docWithTotal("482.5")
	pv := settlement.PreviewDue(doc, []*entity.Payment{payment("p1", "200")}, dec("82.5"))
	assert.True(t, dec("200").Equal(pv.Committed))
	assert.True(t, dec("82.5").Equal(pv.LiveEntry))
	assert.True(t, dec("200").Equal(pv.DueBalance))
	assert.False(t, pv.Settled)
}

// Registrar y luego eliminar un pago devuelve el saldo exactamente a su valor previo,
// para cualquier secuencia de altas y bajas.
func TestLedger_IdaYVueltaSinDeriva(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	doc := docWithTotal("1000000")
	var live []*entity.Payment
	for i := 0; i < 500; i++ {
		before := settlement.ComputeDueBalance(doc, live)
		tp, err := settlement.ComputeTotalPaid(decimal.New(rng.Int63n(10000), -2), decimal.New(rng.Int63n(500000), 0), dec("4037.5"))
		require.NoError(t, err)
		p := &entity.Payment{ID: "p", TotalPaid: tp}
		withPayment := append(append([]*entity.Payment(nil), live...), p)
		require.True(t, before.Sub(tp).Equal(settlement.ComputeDueBalance(doc, withPayment)))

		after := settlement.ComputeDueBalance(doc, settlement.Without(withPayment, "p"))
		require.True(t, before.Equal(after), "iteración %d: %s != %s", i, before, after)

		if rng.Intn(3) == 0 && tp.IsPositive() {
			live = append(live, &entity.Payment{ID: string(rune('A' + i%26)), TotalPaid: tp})
		}
	}
}

func TestValidateDeleteReason(t *testing.T) {
	assert.True(t, errors.Is(settlement.ValidateDeleteReason(""), domain.ErrValidation))
	assert.True(t, errors.Is(settlement.ValidateDeleteReason("   \t"), domain.ErrValidation))
	assert.NoError(t, settlement.ValidateDeleteReason("pago duplicado"))
}
