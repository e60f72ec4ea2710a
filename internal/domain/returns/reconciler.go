// Package returns reconcilia devoluciones parciales contra las cantidades vendidas.
// Para cada línea original: Σ cantidad devuelta (todas las devoluciones) ≤ cantidad vendida.
package returns

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/titya18/pos-react-front-office-sub001/internal/domain"
	"github.com/titya18/pos-react-front-office-sub001/internal/domain/entity"
	"github.com/titya18/pos-react-front-office-sub001/internal/domain/pricing"
)

// PricingMode fórmula usada para valorar ítems devueltos.
type PricingMode string

const (
	// PricingMirror usa el método de descuento e impuesto de la línea original.
	PricingMirror PricingMode = "mirror"
	// PricingLegacy resta el descuento como monto fijo y suma el impuesto como excluido,
	// sin importar los métodos de la línea original.
	PricingLegacy PricingMode = "legacy"
)

// ParsePricingMode interpreta la configuración; valor vacío o desconocido → PricingMirror.
func ParsePricingMode(s string) PricingMode {
	if PricingMode(s) == PricingLegacy {
		return PricingLegacy
	}
	return PricingMirror
}

// ReturnedQuantity Σ cantidades devueltas de la línea en todas las devoluciones previas.
func ReturnedQuantity(lineID string, prior []*entity.ReturnDocument) int64 {
	var sum int64
	for _, r := range prior {
		if r == nil {
			continue
		}
		for _, it := range r.Items {
			if it.OriginalLineID == lineID {
				sum += it.Quantity
			}
		}
	}
	return sum
}

// MaxReturnable = cantidad vendida - Σ devuelta en todas las devoluciones previas.
// El caller debe pasar el historial completo de devoluciones del documento.
func MaxReturnable(line entity.OrderLine, prior []*entity.ReturnDocument) int64 {
	return line.Quantity - ReturnedQuantity(line.ID, prior)
}

// Adjustment resultado de ajustar la cantidad a devolver.
type Adjustment struct {
	Quantity int64
	Refused  bool   // el ajuste superaba el máximo y no se aplicó
	Warning  string // mensaje para el usuario cuando Refused
}

// AdjustReturnQuantity aplica delta dentro de [0, maxQty]. Superar maxQty no es un error: el ajuste
// se ignora y se informa el límite. Bajar de cero se recorta a cero.
func AdjustReturnQuantity(current, delta, maxQty int64) Adjustment {
	if maxQty < 0 {
		maxQty = 0
	}
	if current > maxQty {
		current = maxQty
	}
	if current < 0 {
		current = 0
	}
	// con current en [0, maxQty] las restas no desbordan
	if delta > maxQty-current {
		return Adjustment{
			Quantity: current,
			Refused:  true,
			Warning:  fmt.Sprintf("la cantidad máxima a devolver es %d", maxQty),
		}
	}
	if delta < -current {
		return Adjustment{Quantity: 0}
	}
	return Adjustment{Quantity: current + delta}
}

// PriceItem valora una cantidad devuelta de la línea original según el modo.
func PriceItem(line entity.OrderLine, quantity int64, mode PricingMode) decimal.Decimal {
	if mode == PricingLegacy {
		return pricing.PriceLine(line.UnitPrice, quantity, entity.DiscountFixed, line.DiscountValue, entity.TaxExclude, line.TaxRatePercent)
	}
	return pricing.PriceLine(line.UnitPrice, quantity, line.DiscountMethod, line.DiscountValue, line.TaxMethod, line.TaxRatePercent)
}

// ItemRequest cantidad pedida para una línea original.
type ItemRequest struct {
	OriginalLineID string
	Quantity       int64
}

// BuildReturn compone una devolución contra el historial completo de devoluciones previas.
//   - ValidationError: cantidades negativas, línea inexistente o ningún ítem con cantidad > 0.
//   - InvariantViolation: la cantidad supera lo que queda por devolver de la línea.
//
// Los ítems con cantidad cero se descartan; pedidos repetidos de la misma línea se suman.
// El GrandTotal es la suma de los ítems y no aplica envío ni descuento del documento.
func BuildReturn(order *entity.OrderDocument, prior []*entity.ReturnDocument, items []ItemRequest, mode PricingMode) (*entity.ReturnDocument, error) {
	requested := make(map[string]int64)
	var lineOrder []string
	for _, it := range items {
		if it.Quantity < 0 {
			return nil, domain.NewValidationError("quantity", "la cantidad no puede ser negativa")
		}
		if it.Quantity == 0 {
			continue
		}
		if order.LineByID(it.OriginalLineID) == nil {
			return nil, domain.NewValidationError("original_line_id", fmt.Sprintf("la línea %q no pertenece al documento", it.OriginalLineID))
		}
		if _, seen := requested[it.OriginalLineID]; !seen {
			lineOrder = append(lineOrder, it.OriginalLineID)
		}
		requested[it.OriginalLineID] += it.Quantity
	}
	if len(lineOrder) == 0 {
		return nil, domain.NewValidationError("items", "seleccione al menos un ítem con cantidad mayor a cero")
	}

	ret := &entity.ReturnDocument{OrderID: order.ID, GrandTotal: decimal.Zero}
	for _, lineID := range lineOrder {
		line := order.LineByID(lineID)
		qty := requested[lineID]
		if remaining := MaxReturnable(*line, prior); qty > remaining {
			return nil, domain.NewInvariantViolation("returned_quantity_le_sold",
				fmt.Sprintf("línea %s: se piden %d y quedan %d por devolver", lineID, qty, remaining))
		}
		total := PriceItem(*line, qty, mode)
		ret.Items = append(ret.Items, entity.ReturnItem{OriginalLineID: lineID, Quantity: qty, Total: total})
		ret.GrandTotal = ret.GrandTotal.Add(total)
	}
	return ret, nil
}

// Returnable estado de devolución de una línea original.
type Returnable struct {
	Line      entity.OrderLine
	Sold      int64
	Returned  int64
	Remaining int64
}

// ReturnableLines resume lo vendido, devuelto y pendiente por línea, en el orden del documento.
func ReturnableLines(order *entity.OrderDocument, prior []*entity.ReturnDocument) []Returnable {
	out := make([]Returnable, 0, len(order.Lines))
	for _, l := range order.Lines {
		returned := ReturnedQuantity(l.ID, prior)
		out = append(out, Returnable{Line: l, Sold: l.Quantity, Returned: returned, Remaining: l.Quantity - returned})
	}
	return out
}

// CheckInvariant verifica que ninguna línea tenga más devuelto que vendido.
func CheckInvariant(order *entity.OrderDocument, all []*entity.ReturnDocument) error {
	for _, l := range order.Lines {
		if returned := ReturnedQuantity(l.ID, all); returned > l.Quantity {
			return domain.NewInvariantViolation("returned_quantity_le_sold",
				fmt.Sprintf("línea %s: devuelto %d, vendido %d", l.ID, returned, l.Quantity))
		}
	}
	return nil
}
