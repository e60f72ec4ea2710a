package returns_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/titya18/pos-react-front-office-sub001/internal/application/apptest"
	"github.com/titya18/pos-react-front-office-sub001/internal/application/dto"
	"github.com/titya18/pos-react-front-office-sub001/internal/application/returns"
	"github.com/titya18/pos-react-front-office-sub001/internal/domain"
	"github.com/titya18/pos-react-front-office-sub001/internal/domain/entity"
	reconciler "github.com/titya18/pos-react-front-office-sub001/internal/domain/returns"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type ReturnUseCaseTestSuite struct {
	suite.Suite
	ctx      context.Context
	store    *apptest.Store
	recorder *apptest.Recorder
	uc       *returns.UseCase
}

func (s *ReturnUseCaseTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = apptest.NewStore()
	s.recorder = &apptest.Recorder{}
	s.uc = returns.NewUseCase(s.store.Orders(), s.store.Returns(), s.store, s.recorder, reconciler.PricingMirror, zerolog.Nop())

	// Línea de 10 unidades a 100 con 10% de descuento e impuesto excluido del 10%: 99 por unidad.
	s.store.Put(&entity.OrderDocument{
		ID: "o-1", Kind: entity.KindInvoice, Status: entity.StatusCompleted, Version: 7,
		Lines: []entity.OrderLine{{
			ID: "l-1", OrderID: "o-1", SourceID: "sku-1", Position: 1,
			UnitPrice: dec("100"), Quantity: 10,
			DiscountMethod: entity.DiscountPercent, DiscountValue: dec("10"),
			TaxMethod: entity.TaxExclude, TaxRatePercent: dec("10"),
			Total: dec("990"),
		}},
		GrandTotal: dec("990"),
		CreatedAt:  time.Now(),
	})
}

func (s *ReturnUseCaseTestSuite) submit(version, qty int64) (*dto.ReturnResponse, error) {
	return s.uc.SubmitReturn(s.ctx, "cashier-1", "o-1", dto.SubmitReturnRequest{
		ExpectedVersion: version,
		Note:            " producto dañado ",
		Items:           []dto.ReturnItemRequest{{OriginalLineID: "l-1", Quantity: qty}},
	})
}

func (s *ReturnUseCaseTestSuite) TestSubmitReturn_LimitadoPorDevolucionesPrevias() {
	first, err := s.submit(7, 4)
	s.Require().NoError(err)
	s.True(dec("396").Equal(first.GrandTotal))
	s.Equal(int64(8), first.Version)
	s.Equal("producto dañado", first.Note)

	_, err = s.submit(8, 7)
	s.ErrorIs(err, domain.ErrInvariant)

	returnable, err := s.uc.ListReturnable(s.ctx, "o-1")
	s.Require().NoError(err)
	s.Require().Len(returnable, 1)
	s.Equal(int64(4), returnable[0].Returned)
	s.Equal(int64(6), returnable[0].Remaining)

	last, err := s.submit(8, 6)
	s.Require().NoError(err)
	s.Equal(int64(9), last.Version)

	list, err := s.uc.ListReturns(s.ctx, "o-1")
	s.Require().NoError(err)
	s.Len(list, 2)
	s.Equal(2, s.recorder.Count("return_submit", "ok"))
	s.Equal(1, s.recorder.Count("return_submit", "invariant_violation"))
}

func (s *ReturnUseCaseTestSuite) TestSubmitReturn_VersionObsoleta() {
	_, err := s.submit(6, 1)
	s.ErrorIs(err, domain.ErrStaleData)
	list, _ := s.uc.ListReturns(s.ctx, "o-1")
	s.Empty(list)
}

func (s *ReturnUseCaseTestSuite) TestSubmitReturn_SinItemsPositivos() {
	_, err := s.submit(7, 0)
	s.ErrorIs(err, domain.ErrValidation)
}

func (s *ReturnUseCaseTestSuite) TestSubmitReturn_DocumentoNoAprobado() {
	s.store.Put(&entity.OrderDocument{ID: "o-2", Kind: entity.KindInvoice, Status: entity.StatusOpen, Version: 1})
	_, err := s.uc.SubmitReturn(s.ctx, "u", "o-2", dto.SubmitReturnRequest{
		ExpectedVersion: 1,
		Items:           []dto.ReturnItemRequest{{OriginalLineID: "x", Quantity: 1}},
	})
	s.ErrorIs(err, domain.ErrInvalidState)
}

func (s *ReturnUseCaseTestSuite) TestAdjustQuantity() {
	resp, err := s.uc.AdjustQuantity(dto.AdjustQuantityRequest{Current: 6, Delta: 1, Max: 6})
	s.Require().NoError(err)
	s.True(resp.Refused)
	s.Equal(int64(6), resp.Quantity)
	s.NotEmpty(resp.Warning)

	resp, err = s.uc.AdjustQuantity(dto.AdjustQuantityRequest{Current: 1, Delta: -3, Max: 6})
	s.Require().NoError(err)
	s.Equal(int64(0), resp.Quantity)
}

func TestReturnUseCaseSuite(t *testing.T) {
	suite.Run(t, new(ReturnUseCaseTestSuite))
}
