package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentKind tipo de documento comercial.
type DocumentKind string

const (
	KindInvoice   DocumentKind = "invoice"   // factura de venta
	KindPurchase  DocumentKind = "purchase"  // compra a proveedor
	KindQuotation DocumentKind = "quotation" // cotización (no se cobra ni se devuelve)
)

// Valid indica si el tipo es conocido.
func (k DocumentKind) Valid() bool {
	switch k {
	case KindInvoice, KindPurchase, KindQuotation:
		return true
	}
	return false
}

// DocumentStatus estado del flujo del documento.
// Open → Approved → {Completed | Cancelled}; Open → Cancelled.
type DocumentStatus string

const (
	StatusOpen      DocumentStatus = "open"
	StatusApproved  DocumentStatus = "approved"
	StatusCompleted DocumentStatus = "completed"
	StatusCancelled DocumentStatus = "cancelled"
)

// OrderDocument cabecera de una factura, compra o cotización con sus líneas.
// GrandTotal y PaidAmount son derivados: GrandTotal lo recalcula pricing.Aggregate
// y PaidAmount solo lo actualiza la liquidación a partir de los pagos vigentes.
type OrderDocument struct {
	ID             string
	Kind           DocumentKind
	Reference      string
	Status         DocumentStatus
	Lines          []OrderLine
	ShippingAmount decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxRatePercent decimal.Decimal
	GrandTotal     decimal.Decimal
	PaidAmount     decimal.Decimal
	Version        int64 // se incrementa en cada mutación (control optimista)
	CreatedBy      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsEditable: las líneas y cargos solo se modifican en estado Open.
func (d *OrderDocument) IsEditable() bool {
	return d.Status == StatusOpen
}

// IsPostApproval indica si el documento ya fue aprobado y sigue vigente.
func (d *OrderDocument) IsPostApproval() bool {
	return d.Status == StatusApproved || d.Status == StatusCompleted
}

// AcceptsSettlement: se registran pagos y devoluciones sobre facturas/compras aprobadas.
func (d *OrderDocument) AcceptsSettlement() bool {
	return d.Kind != KindQuotation && d.IsPostApproval()
}

// LineByID busca una línea por ID. Devuelve nil si no existe.
func (d *OrderDocument) LineByID(id string) *OrderLine {
	for i := range d.Lines {
		if d.Lines[i].ID == id {
			return &d.Lines[i]
		}
	}
	return nil
}

// CanTransition valida la máquina de estados del documento.
func (d *OrderDocument) CanTransition(to DocumentStatus) bool {
	switch d.Status {
	case StatusOpen:
		return to == StatusApproved || to == StatusCancelled
	case StatusApproved:
		return to == StatusCompleted || to == StatusCancelled
	}
	return false
}
