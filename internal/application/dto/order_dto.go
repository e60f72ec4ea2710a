package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/titya18/pos-react-front-office-sub001/internal/domain/entity"
	"github.com/titya18/pos-react-front-office-sub001/internal/domain/pricing"
)

// CreateOrderRequest body para POST /api/orders.
type CreateOrderRequest struct {
	Kind           string          `json:"kind" validate:"required,oneof=invoice purchase quotation"`
	Reference      string          `json:"reference" validate:"max=64"`
	ShippingAmount decimal.Decimal `json:"shipping_amount"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TaxRatePercent decimal.Decimal `json:"tax_rate_percent"`
}

// LineRequest body para agregar o editar una línea.
type LineRequest struct {
	ExpectedVersion int64           `json:"expected_version" validate:"min=1"`
	SourceID        string          `json:"source_id" validate:"required"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	Quantity        int64           `json:"quantity"`
	DiscountMethod  string          `json:"discount_method" validate:"required,oneof=fixed percent"`
	DiscountValue   decimal.Decimal `json:"discount_value"`
	TaxMethod       string          `json:"tax_method" validate:"required,oneof=include exclude"`
	TaxRatePercent  decimal.Decimal `json:"tax_rate_percent"`
}

// UpdateChargesRequest body para PUT /api/orders/:id/charges.
type UpdateChargesRequest struct {
	ExpectedVersion int64           `json:"expected_version" validate:"min=1"`
	ShippingAmount  decimal.Decimal `json:"shipping_amount"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	TaxRatePercent  decimal.Decimal `json:"tax_rate_percent"`
}

// VersionRequest body de las transiciones de estado (approve, complete, cancel).
type VersionRequest struct {
	ExpectedVersion int64 `json:"expected_version" validate:"min=1"`
}

// OrderListQuery filtros de GET /api/orders.
type OrderListQuery struct {
	Kind   string `query:"kind" validate:"omitempty,oneof=invoice purchase quotation"`
	Status string `query:"status" validate:"omitempty,oneof=open approved completed cancelled"`
	PageRequest
}

// OrderLineResponse línea con su desglose de precio.
type OrderLineResponse struct {
	ID             string          `json:"id"`
	SourceID       string          `json:"source_id"`
	Position       int             `json:"position"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	Quantity       int64           `json:"quantity"`
	DiscountMethod string          `json:"discount_method"`
	DiscountValue  decimal.Decimal `json:"discount_value"`
	TaxMethod      string          `json:"tax_method"`
	TaxRatePercent decimal.Decimal `json:"tax_rate_percent"`
	DiscountedUnit decimal.Decimal `json:"discounted_unit"`
	TaxPerUnit     decimal.Decimal `json:"tax_per_unit"` // 0 cuando el impuesto está incluido
	Total          decimal.Decimal `json:"total"`
}

// OrderResponse documento con totales y saldo.
type OrderResponse struct {
	ID             string              `json:"id"`
	Kind           string              `json:"kind"`
	Reference      string              `json:"reference,omitempty"`
	Status         string              `json:"status"`
	Lines          []OrderLineResponse `json:"lines"`
	LineSum        decimal.Decimal     `json:"line_sum"`
	ShippingAmount decimal.Decimal     `json:"shipping_amount"`
	DiscountAmount decimal.Decimal     `json:"discount_amount"`
	TaxRatePercent decimal.Decimal     `json:"tax_rate_percent"`
	TaxAmount      decimal.Decimal     `json:"tax_amount"`
	GrandTotal     decimal.Decimal     `json:"grand_total"`
	PaidAmount     decimal.Decimal     `json:"paid_amount"`
	DueBalance     decimal.Decimal     `json:"due_balance"`
	Version        int64               `json:"version"`
	CreatedBy      string              `json:"created_by,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

// OrderListResponse listado paginado.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// NewOrderResponse arma la respuesta a partir del documento. El saldo usa PaidAmount,
// que siempre se deriva del conjunto completo de pagos vigentes.
func NewOrderResponse(doc *entity.OrderDocument) OrderResponse {
	totals := pricing.AggregateTotals(doc.Lines, doc.ShippingAmount, doc.DiscountAmount, doc.TaxRatePercent)
	out := OrderResponse{
		ID:             doc.ID,
		Kind:           string(doc.Kind),
		Reference:      doc.Reference,
		Status:         string(doc.Status),
		Lines:          make([]OrderLineResponse, 0, len(doc.Lines)),
		LineSum:        totals.LineSum,
		ShippingAmount: doc.ShippingAmount,
		DiscountAmount: doc.DiscountAmount,
		TaxRatePercent: doc.TaxRatePercent,
		TaxAmount:      totals.TaxAmount,
		GrandTotal:     doc.GrandTotal,
		PaidAmount:     doc.PaidAmount,
		DueBalance:     doc.GrandTotal.Sub(doc.PaidAmount),
		Version:        doc.Version,
		CreatedBy:      doc.CreatedBy,
		CreatedAt:      doc.CreatedAt,
		UpdatedAt:      doc.UpdatedAt,
	}
	for _, l := range doc.Lines {
		b := pricing.Breakdown(l.UnitPrice, l.Quantity, l.DiscountMethod, l.DiscountValue, l.TaxMethod, l.TaxRatePercent)
		out.Lines = append(out.Lines, OrderLineResponse{
			ID:             l.ID,
			SourceID:       l.SourceID,
			Position:       l.Position,
			UnitPrice:      l.UnitPrice,
			Quantity:       l.Quantity,
			DiscountMethod: string(l.DiscountMethod),
			DiscountValue:  l.DiscountValue,
			TaxMethod:      string(l.TaxMethod),
			TaxRatePercent: l.TaxRatePercent,
			DiscountedUnit: b.DiscountedUnit,
			TaxPerUnit:     b.TaxPerUnit,
			Total:          l.Total,
		})
	}
	return out
}

// PriceLineRequest body para POST /api/pricing/line (calculadora sin persistencia).
type PriceLineRequest struct {
	UnitPrice      decimal.Decimal `json:"unit_price"`
	Quantity       int64           `json:"quantity" validate:"min=1"`
	DiscountMethod string          `json:"discount_method" validate:"required,oneof=fixed percent"`
	DiscountValue  decimal.Decimal `json:"discount_value"`
	TaxMethod      string          `json:"tax_method" validate:"required,oneof=include exclude"`
	TaxRatePercent decimal.Decimal `json:"tax_rate_percent"`
}

// PriceLineResponse desglose de la línea.
type PriceLineResponse struct {
	DiscountedUnit decimal.Decimal `json:"discounted_unit"`
	TaxPerUnit     decimal.Decimal `json:"tax_per_unit"`
	PricedUnit     decimal.Decimal `json:"priced_unit"`
	Total          decimal.Decimal `json:"total"`
}

// PriceDocumentRequest body para POST /api/pricing/document.
type PriceDocumentRequest struct {
	Lines          []PriceLineRequest `json:"lines" validate:"dive"`
	ShippingAmount decimal.Decimal    `json:"shipping_amount"`
	DiscountAmount decimal.Decimal    `json:"discount_amount"`
	TaxRatePercent decimal.Decimal    `json:"tax_rate_percent"`
}

// PriceDocumentResponse totales del documento.
type PriceDocumentResponse struct {
	Lines            []PriceLineResponse `json:"lines"`
	LineSum          decimal.Decimal     `json:"line_sum"`
	AfterDocDiscount decimal.Decimal     `json:"after_doc_discount"`
	TaxAmount        decimal.Decimal     `json:"tax_amount"`
	ShippingAmount   decimal.Decimal     `json:"shipping_amount"`
	GrandTotal       decimal.Decimal     `json:"grand_total"`
}
