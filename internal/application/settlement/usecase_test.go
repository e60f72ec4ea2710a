package settlement_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/titya18/pos-react-front-office-sub001/internal/application/apptest"
	"github.com/titya18/pos-react-front-office-sub001/internal/application/dto"
	"github.com/titya18/pos-react-front-office-sub001/internal/application/settlement"
	"github.com/titya18/pos-react-front-office-sub001/internal/domain"
	"github.com/titya18/pos-react-front-office-sub001/internal/domain/entity"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fakeStatements struct {
	got settlement.StatementData
	err error
}

func (f *fakeStatements) GenerateStatement(_ context.Context, data settlement.StatementData) ([]byte, error) {
	f.got = data
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-1.3"), nil
}

type SettlementUseCaseTestSuite struct {
	suite.Suite
	ctx        context.Context
	store      *apptest.Store
	recorder   *apptest.Recorder
	statements *fakeStatements
	uc         *settlement.UseCase
}

func (s *SettlementUseCaseTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = apptest.NewStore()
	s.recorder = &apptest.Recorder{}
	s.statements = &fakeStatements{}
	s.uc = settlement.NewUseCase(settlement.Deps{
		Orders:     s.store.Orders(),
		Payments:   s.store.Payments(),
		Returns:    s.store.Returns(),
		Rates:      s.store.Rates(),
		Statements: s.statements,
		Tx:         s.store,
		Recorder:   s.recorder,
		Currencies: settlement.Currencies{Primary: "USD", Secondary: "KHR"},
		Log:        zerolog.Nop(),
	})
}

// putOrder guarda un documento aprobado con gran total 482.50 (líneas 500, descuento 50, impuesto 5%, envío 10).
func (s *SettlementUseCaseTestSuite) putOrder(id string, kind entity.DocumentKind, status entity.DocumentStatus) {
	s.store.Put(&entity.OrderDocument{
		ID:     id,
		Kind:   kind,
		Status: status,
		Lines: []entity.OrderLine{{
			ID: id + "-l1", OrderID: id, SourceID: "sku", Position: 1,
			UnitPrice: dec("500"), Quantity: 1,
			DiscountMethod: entity.DiscountFixed, TaxMethod: entity.TaxInclude,
			Total: dec("500"),
		}},
		ShippingAmount: dec("10"),
		DiscountAmount: dec("50"),
		TaxRatePercent: dec("5"),
		GrandTotal:     dec("482.5"),
		PaidAmount:     decimal.Zero,
		Version:        3,
		CreatedAt:      time.Now(),
	})
}

func (s *SettlementUseCaseTestSuite) pay(orderID string, version int64, usd, khr string) (*dto.SettlementResponse, error) {
	return s.uc.RecordPayment(s.ctx, "cashier-1", orderID, dto.RecordPaymentRequest{
		ExpectedVersion:   version,
		PaymentMethodID:   "cash",
		ReceivedPrimary:   dec(usd),
		ReceivedSecondary: dec(khr),
		ExchangeRate:      dec("4000"),
	})
}

func (s *SettlementUseCaseTestSuite) TestRecordPayment_PagoMixtoHastaSaldar() {
	s.putOrder("o-1", entity.KindInvoice, entity.StatusApproved)

	first, err := s.pay("o-1", 3, "200", "0")
	s.Require().NoError(err)
	s.True(dec("200").Equal(first.Payment.TotalPaid))
	s.True(dec("282.5").Equal(first.DueBalance))
	s.Equal(int64(4), first.Version)

	second, err := s.pay("o-1", 4, "0", "1130000")
	s.Require().NoError(err)
	s.True(dec("282.5").Equal(second.Payment.TotalPaid))
	s.True(second.DueBalance.IsZero())

	_, err = s.pay("o-1", 5, "1", "0")
	s.ErrorIs(err, domain.ErrValidation)

	stored := s.store.Order("o-1")
	s.True(dec("482.5").Equal(stored.PaidAmount))
	s.Equal(int64(5), stored.Version)
	s.Equal(2, s.recorder.Count("payment_record", "ok"))
	s.Equal(1, s.recorder.Count("payment_record", "validation"))
}

func (s *SettlementUseCaseTestSuite) TestRecordPayment_Sobrepago() {
	s.putOrder("o-1", entity.KindInvoice, entity.StatusApproved)

	_, err := s.pay("o-1", 3, "500", "0")
	s.ErrorIs(err, domain.ErrInvariant)

	payments, _ := s.store.Payments().ListLive(s.ctx, "o-1")
	s.Empty(payments)
	s.Equal(int64(3), s.store.Order("o-1").Version)
}

func (s *SettlementUseCaseTestSuite) TestRecordPayment_MontoCero() {
	s.putOrder("o-1", entity.KindInvoice, entity.StatusApproved)
	_, err := s.pay("o-1", 3, "0", "0")
	s.ErrorIs(err, domain.ErrValidation)
}

func (s *SettlementUseCaseTestSuite) TestRecordPayment_DecimalesQueElEsquemaRedondearia() {
	s.putOrder("o-1", entity.KindInvoice, entity.StatusApproved)

	_, err := s.pay("o-1", 3, "10.00005", "0")
	s.ErrorIs(err, domain.ErrValidation)

	_, err = s.uc.RecordPayment(s.ctx, "cashier-1", "o-1", dto.RecordPaymentRequest{
		ExpectedVersion:   3,
		PaymentMethodID:   "cash",
		ReceivedSecondary: dec("10000"),
		ExchangeRate:      dec("4100.1234567"),
	})
	var verr *domain.ValidationError
	s.Require().ErrorAs(err, &verr)
	s.Equal("exchange_rate", verr.Field)

	payments, _ := s.store.Payments().ListLive(s.ctx, "o-1")
	s.Empty(payments)
	s.Equal(int64(3), s.store.Order("o-1").Version)
}

func (s *SettlementUseCaseTestSuite) TestRecordPayment_VersionObsoleta() {
	s.putOrder("o-1", entity.KindInvoice, entity.StatusApproved)
	_, err := s.pay("o-1", 3, "100", "0")
	s.Require().NoError(err)

	// Segundo cajero con la misma versión leída: se rechaza y no se duplica el cobro.
	_, err = s.pay("o-1", 3, "100", "0")
	s.ErrorIs(err, domain.ErrStaleData)

	payments, _ := s.store.Payments().ListLive(s.ctx, "o-1")
	s.Len(payments, 1)
}

func (s *SettlementUseCaseTestSuite) TestRecordPayment_DocumentosNoCobrables() {
	s.putOrder("q-1", entity.KindQuotation, entity.StatusApproved)
	s.putOrder("o-open", entity.KindInvoice, entity.StatusOpen)
	s.putOrder("o-cancel", entity.KindPurchase, entity.StatusCancelled)

	for _, id := range []string{"q-1", "o-open", "o-cancel"} {
		_, err := s.pay(id, 3, "10", "0")
		s.ErrorIs(err, domain.ErrInvalidState, id)
	}
	_, err := s.pay("no-existe", 1, "10", "0")
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *SettlementUseCaseTestSuite) TestRecordPayment_RollbackSiFallaElCommit() {
	s.putOrder("o-1", entity.KindInvoice, entity.StatusCompleted)
	s.store.FailCommit = errors.New("commit falló")

	_, err := s.pay("o-1", 3, "10", "0")
	s.Error(err)

	payments, _ := s.store.Payments().ListLive(s.ctx, "o-1")
	s.Empty(payments)
	s.True(s.store.Order("o-1").PaidAmount.IsZero())
}

func (s *SettlementUseCaseTestSuite) TestDeletePayment_RecalculaDesdeLosVigentes() {
	s.putOrder("o-1", entity.KindInvoice, entity.StatusApproved)
	first, err := s.pay("o-1", 3, "200", "0")
	s.Require().NoError(err)
	_, err = s.pay("o-1", 4, "100", "0")
	s.Require().NoError(err)

	_, err = s.uc.DeletePayment(s.ctx, first.Payment.ID, dto.DeletePaymentRequest{Reason: "  "})
	s.ErrorIs(err, domain.ErrValidation)

	resp, err := s.uc.DeletePayment(s.ctx, first.Payment.ID, dto.DeletePaymentRequest{Reason: "cobro duplicado"})
	s.Require().NoError(err)
	s.True(dec("100").Equal(resp.PaidAmount))
	s.True(dec("382.5").Equal(resp.DueBalance))
	s.Equal(int64(6), resp.Version)
	s.Equal("cobro duplicado", resp.Payment.DeleteReason)

	_, err = s.uc.DeletePayment(s.ctx, first.Payment.ID, dto.DeletePaymentRequest{Reason: "otra vez"})
	s.ErrorIs(err, domain.ErrInvalidState)

	all, err := s.uc.ListPayments(s.ctx, "o-1", true)
	s.Require().NoError(err)
	s.Len(all, 2)
	live, err := s.uc.ListPayments(s.ctx, "o-1", false)
	s.Require().NoError(err)
	s.Len(live, 1)
}

func (s *SettlementUseCaseTestSuite) TestPreviewDue() {
	s.putOrder("o-1", entity.KindInvoice, entity.StatusApproved)
	_, err := s.pay("o-1", 3, "200", "0")
	s.Require().NoError(err)

	rate := dec("4000")
	preview, err := s.uc.PreviewDue(s.ctx, "o-1", dto.PreviewDueRequest{ReceivedSecondary: dec("400000"), ExchangeRate: &rate})
	s.Require().NoError(err)
	s.True(dec("200").Equal(preview.Committed))
	s.True(dec("100").Equal(preview.LiveEntry))
	s.True(dec("182.5").Equal(preview.DueBalance))
	s.False(preview.Settled)

	// Sin tasa en el request ni registrada: se exige.
	_, err = s.uc.PreviewDue(s.ctx, "o-1", dto.PreviewDueRequest{ReceivedPrimary: dec("1")})
	s.ErrorIs(err, domain.ErrValidation)

	s.Require().NoError(s.store.Rates().Create(s.ctx, &entity.ExchangeRate{Rate: dec("4100"), EffectiveAt: time.Now()}))
	preview, err = s.uc.PreviewDue(s.ctx, "o-1", dto.PreviewDueRequest{ReceivedPrimary: dec("1")})
	s.Require().NoError(err)
	s.True(dec("4100").Equal(preview.ExchangeRate))

	// La vista previa no persiste nada.
	s.Equal(int64(4), s.store.Order("o-1").Version)
}

func (s *SettlementUseCaseTestSuite) TestStatement() {
	s.putOrder("o-1", entity.KindInvoice, entity.StatusApproved)
	_, err := s.pay("o-1", 3, "82.5", "0")
	s.Require().NoError(err)

	pdf, name, err := s.uc.Statement(s.ctx, "o-1")
	s.Require().NoError(err)
	s.NotEmpty(pdf)
	s.Equal("estado_cuenta_o-1.pdf", name)
	s.Len(s.statements.got.Payments, 1)
	s.True(dec("400").Equal(s.statements.got.DueBalance))
	s.True(dec("22.5").Equal(s.statements.got.Totals.TaxAmount))
	s.Equal("KHR", s.statements.got.SecondaryCurrency)

	s.statements.err = errors.New("maroto")
	_, _, err = s.uc.Statement(s.ctx, "o-1")
	s.Error(err)
}

func TestSettlementUseCaseSuite(t *testing.T) {
	suite.Run(t, new(SettlementUseCaseTestSuite))
}
