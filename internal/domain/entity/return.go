package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReturnItem cantidad devuelta de una línea original y su total recalculado.
type ReturnItem struct {
	ID             string
	ReturnID       string
	OriginalLineID string
	Quantity       int64
	Total          decimal.Decimal
}

// ReturnDocument devolución parcial de un documento. GrandTotal es la suma de sus ítems;
// no vuelve a aplicar envío ni descuento del documento original.
type ReturnDocument struct {
	ID         string
	OrderID    string
	Items      []ReturnItem
	GrandTotal decimal.Decimal
	Note       string
	CreatedBy  string
	CreatedAt  time.Time
}
