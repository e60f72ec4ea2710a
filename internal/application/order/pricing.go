package order

import (
	"github.com/titya18/pos-react-front-office-sub001/internal/application/dto"
	"github.com/titya18/pos-react-front-office-sub001/internal/domain/entity"
	"github.com/titya18/pos-react-front-office-sub001/internal/domain/pricing"
)

// PriceLine calculadora pura de una línea (no persiste nada).
func PriceLine(in dto.PriceLineRequest) (*dto.PriceLineResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	line := lineFromPriceRequest(in)
	if err := validateLine(line); err != nil {
		return nil, err
	}
	resp := toPriceLineResponse(line)
	return &resp, nil
}

// PriceDocument calculadora pura del documento completo.
func PriceDocument(in dto.PriceDocumentRequest) (*dto.PriceDocumentResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if err := validateCharges(in.ShippingAmount, in.DiscountAmount, in.TaxRatePercent); err != nil {
		return nil, err
	}
	lines := make([]entity.OrderLine, 0, len(in.Lines))
	out := &dto.PriceDocumentResponse{Lines: make([]dto.PriceLineResponse, 0, len(in.Lines))}
	for _, l := range in.Lines {
		line := lineFromPriceRequest(l)
		if err := validateLine(line); err != nil {
			return nil, err
		}
		pricing.Reprice(&line)
		lines = append(lines, line)
		out.Lines = append(out.Lines, toPriceLineResponse(line))
	}
	t := pricing.AggregateTotals(lines, in.ShippingAmount, in.DiscountAmount, in.TaxRatePercent)
	out.LineSum = t.LineSum
	out.AfterDocDiscount = t.AfterDocDiscount
	out.TaxAmount = t.TaxAmount
	out.ShippingAmount = t.ShippingAmount
	out.GrandTotal = t.GrandTotal
	return out, nil
}

func lineFromPriceRequest(in dto.PriceLineRequest) entity.OrderLine {
	return entity.OrderLine{
		UnitPrice:      in.UnitPrice,
		Quantity:       in.Quantity,
		DiscountMethod: entity.DiscountMethod(in.DiscountMethod),
		DiscountValue:  in.DiscountValue,
		TaxMethod:      entity.TaxMethod(in.TaxMethod),
		TaxRatePercent: in.TaxRatePercent,
	}
}

func toPriceLineResponse(l entity.OrderLine) dto.PriceLineResponse {
	b := pricing.Breakdown(l.UnitPrice, l.Quantity, l.DiscountMethod, l.DiscountValue, l.TaxMethod, l.TaxRatePercent)
	return dto.PriceLineResponse{
		DiscountedUnit: b.DiscountedUnit,
		TaxPerUnit:     b.TaxPerUnit,
		PricedUnit:     b.PricedUnit,
		Total:          b.Total,
	}
}
