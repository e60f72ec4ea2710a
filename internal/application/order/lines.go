package order

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/titya18/pos-react-front-office-sub001/internal/application/dto"
	"github.com/titya18/pos-react-front-office-sub001/internal/domain"
	"github.com/titya18/pos-react-front-office-sub001/internal/domain/entity"
	"github.com/titya18/pos-react-front-office-sub001/internal/domain/pricing"
	"github.com/titya18/pos-react-front-office-sub001/internal/domain/repository"
)

// Política del carrito: el motor acepta cualquier entero positivo, la captura limita a [1, 25].
const (
	MinCartQuantity int64 = 1
	MaxCartQuantity int64 = 25
)

// AddLine agrega una línea al final del documento.
func (uc *UseCase) AddLine(ctx context.Context, orderID string, in dto.LineRequest) (*dto.OrderResponse, error) {
	line, err := lineFromRequest(in)
	if err != nil {
		return nil, err
	}
	return uc.mutate(ctx, "order_add_line", orderID, in.ExpectedVersion, func(doc *entity.OrderDocument, _ repository.PaymentRepository) (bool, error) {
		if !doc.IsEditable() {
			return false, fmt.Errorf("%w: las líneas solo se editan en estado open (actual %s)", domain.ErrInvalidState, doc.Status)
		}
		line.ID = uuid.New().String()
		line.OrderID = doc.ID
		line.Position = nextPosition(doc.Lines)
		doc.Lines = append(doc.Lines, line)
		return true, nil
	})
}

// UpdateLine reemplaza los parámetros de precio y cantidad de una línea existente.
func (uc *UseCase) UpdateLine(ctx context.Context, orderID, lineID string, in dto.LineRequest) (*dto.OrderResponse, error) {
	line, err := lineFromRequest(in)
	if err != nil {
		return nil, err
	}
	return uc.mutate(ctx, "order_update_line", orderID, in.ExpectedVersion, func(doc *entity.OrderDocument, _ repository.PaymentRepository) (bool, error) {
		if !doc.IsEditable() {
			return false, fmt.Errorf("%w: las líneas solo se editan en estado open (actual %s)", domain.ErrInvalidState, doc.Status)
		}
		current := doc.LineByID(lineID)
		if current == nil {
			return false, domain.ErrNotFound
		}
		line.ID = current.ID
		line.OrderID = current.OrderID
		line.Position = current.Position
		*current = line
		return true, nil
	})
}

// RemoveLine quita la línea y renumera las posiciones restantes.
func (uc *UseCase) RemoveLine(ctx context.Context, orderID, lineID string, expectedVersion int64) (*dto.OrderResponse, error) {
	return uc.mutate(ctx, "order_remove_line", orderID, expectedVersion, func(doc *entity.OrderDocument, _ repository.PaymentRepository) (bool, error) {
		if !doc.IsEditable() {
			return false, fmt.Errorf("%w: las líneas solo se editan en estado open (actual %s)", domain.ErrInvalidState, doc.Status)
		}
		kept := doc.Lines[:0]
		found := false
		for _, l := range doc.Lines {
			if l.ID == lineID {
				found = true
				continue
			}
			kept = append(kept, l)
		}
		if !found {
			return false, domain.ErrNotFound
		}
		for i := range kept {
			kept[i].Position = i + 1
		}
		doc.Lines = kept
		return true, nil
	})
}

func lineFromRequest(in dto.LineRequest) (entity.OrderLine, error) {
	if err := dto.Validate(in); err != nil {
		return entity.OrderLine{}, err
	}
	if in.Quantity < MinCartQuantity || in.Quantity > MaxCartQuantity {
		return entity.OrderLine{}, domain.NewValidationError("quantity",
			fmt.Sprintf("la cantidad debe estar entre %d y %d", MinCartQuantity, MaxCartQuantity))
	}
	line := entity.OrderLine{
		SourceID:       in.SourceID,
		UnitPrice:      in.UnitPrice,
		Quantity:       in.Quantity,
		DiscountMethod: entity.DiscountMethod(in.DiscountMethod),
		DiscountValue:  in.DiscountValue,
		TaxMethod:      entity.TaxMethod(in.TaxMethod),
		TaxRatePercent: in.TaxRatePercent,
	}
	if err := validateLine(line); err != nil {
		return entity.OrderLine{}, err
	}
	return line, nil
}

// validateLine rechaza precios, descuentos o tasas que el pricer aceptaría pero que producen
// valores sin sentido (precio negativo tras descuento).
func validateLine(l entity.OrderLine) error {
	switch {
	case l.UnitPrice.IsNegative():
		return domain.NewValidationError("unit_price", "no puede ser negativo")
	case l.DiscountValue.IsNegative():
		return domain.NewValidationError("discount_value", "no puede ser negativo")
	case l.TaxRatePercent.IsNegative():
		return domain.NewValidationError("tax_rate_percent", "no puede ser negativo")
	}
	if err := checkPlaces(map[string]decimal.Decimal{
		"unit_price":       l.UnitPrice,
		"discount_value":   l.DiscountValue,
		"tax_rate_percent": l.TaxRatePercent,
	}); err != nil {
		return err
	}
	b := pricing.Breakdown(l.UnitPrice, l.Quantity, l.DiscountMethod, l.DiscountValue, l.TaxMethod, l.TaxRatePercent)
	if b.DiscountedUnit.IsNegative() {
		return domain.NewValidationError("discount_value", "el descuento supera el precio unitario")
	}
	return nil
}

func nextPosition(lines []entity.OrderLine) int {
	maxPos := 0
	for _, l := range lines {
		if l.Position > maxPos {
			maxPos = l.Position
		}
	}
	return maxPos + 1
}
