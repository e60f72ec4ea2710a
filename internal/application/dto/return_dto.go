package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/titya18/pos-react-front-office-sub001/internal/domain/entity"
)

// ReturnItemRequest cantidad a devolver de una línea original.
type ReturnItemRequest struct {
	OriginalLineID string `json:"original_line_id" validate:"required"`
	Quantity       int64  `json:"quantity" validate:"min=0"`
}

// SubmitReturnRequest body para POST /api/orders/:id/returns.
type SubmitReturnRequest struct {
	ExpectedVersion int64               `json:"expected_version" validate:"min=1"`
	Note            string              `json:"note,omitempty" validate:"max=500"`
	Items           []ReturnItemRequest `json:"items" validate:"required,dive"`
}

// ReturnItemResponse ítem devuelto.
type ReturnItemResponse struct {
	ID             string          `json:"id"`
	OriginalLineID string          `json:"original_line_id"`
	Quantity       int64           `json:"quantity"`
	Total          decimal.Decimal `json:"total"`
}

// ReturnResponse devolución registrada.
type ReturnResponse struct {
	ID         string               `json:"id"`
	OrderID    string               `json:"order_id"`
	Items      []ReturnItemResponse `json:"items"`
	GrandTotal decimal.Decimal      `json:"grand_total"`
	Note       string               `json:"note,omitempty"`
	CreatedBy  string               `json:"created_by,omitempty"`
	CreatedAt  time.Time            `json:"created_at"`
	Version    int64                `json:"version,omitempty"` // versión del documento tras registrar
}

// NewReturnResponse mapea la entidad.
func NewReturnResponse(r *entity.ReturnDocument) ReturnResponse {
	out := ReturnResponse{
		ID:         r.ID,
		OrderID:    r.OrderID,
		Items:      make([]ReturnItemResponse, 0, len(r.Items)),
		GrandTotal: r.GrandTotal,
		Note:       r.Note,
		CreatedBy:  r.CreatedBy,
		CreatedAt:  r.CreatedAt,
	}
	for _, it := range r.Items {
		out.Items = append(out.Items, ReturnItemResponse{
			ID:             it.ID,
			OriginalLineID: it.OriginalLineID,
			Quantity:       it.Quantity,
			Total:          it.Total,
		})
	}
	return out
}

// ReturnableLineResponse estado de devolución de una línea.
type ReturnableLineResponse struct {
	LineID    string          `json:"line_id"`
	SourceID  string          `json:"source_id"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Sold      int64           `json:"sold"`
	Returned  int64           `json:"returned"`
	Remaining int64           `json:"remaining"`
}

// AdjustQuantityRequest body para POST /api/returns/adjust-quantity.
type AdjustQuantityRequest struct {
	Current int64 `json:"current" validate:"min=0"`
	Delta   int64 `json:"delta"`
	Max     int64 `json:"max" validate:"min=0"`
}

// AdjustQuantityResponse resultado del stepper de cantidad.
type AdjustQuantityResponse struct {
	Quantity int64  `json:"quantity"`
	Refused  bool   `json:"refused"`
	Warning  string `json:"warning,omitempty"`
}
