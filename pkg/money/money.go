// Package money agrupa el parseo y el formato de montos. Los montos viajan como
// decimal.Decimal; nunca se limpian cadenas con expresiones regulares ni pasan por float.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Notation separadores con los que se escribió un monto.
type Notation struct {
	Decimal byte
	Group   byte
}

var (
	Point = Notation{Decimal: '.', Group: ','} // 1,234.56
	Comma = Notation{Decimal: ',', Group: '.'} // 1.234,56
)

// Parse convierte un monto en notación Point. Vacío cuenta como cero.
func Parse(s string) (decimal.Decimal, error) {
	return Point.Parse(s)
}

// Parse convierte un monto escrito en esta notación. El separador de miles solo se acepta
// agrupando de a tres dígitos: en Point, "0,5" y "4100,5" son inválidos.
func (n Notation) Parse(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	plain, ok := n.normalize(s)
	if !ok {
		return decimal.Zero, fmt.Errorf("monto inválido %q: separador decimal esperado %q, miles de a tres dígitos con %q",
			s, string(n.Decimal), string(n.Group))
	}
	d, err := decimal.NewFromString(plain)
	if err != nil {
		return decimal.Zero, fmt.Errorf("monto inválido %q: %w", s, err)
	}
	return d, nil
}

// normalize devuelve el monto con punto decimal y sin separadores de miles.
func (n Notation) normalize(s string) (string, bool) {
	sign := ""
	if s[0] == '-' || s[0] == '+' {
		sign, s = s[:1], s[1:]
	}
	intPart, frac, hasFrac := strings.Cut(s, string(n.Decimal))
	if hasFrac && strings.ContainsAny(frac, string([]byte{n.Decimal, n.Group})) {
		return "", false
	}
	if strings.IndexByte(intPart, n.Group) >= 0 {
		groups := strings.Split(intPart, string(n.Group))
		if len(groups[0]) == 0 || len(groups[0]) > 3 {
			return "", false
		}
		for _, g := range groups[1:] {
			if len(g) != 3 {
				return "", false
			}
		}
		intPart = strings.Join(groups, "")
	}
	if hasFrac {
		return sign + intPart + "." + frac, true
	}
	return sign + intPart, true
}

const displayPlaces = 2

// currencyPlaces decimales de presentación por moneda; el riel no usa centavos.
var currencyPlaces = map[string]int32{
	"KHR": 0,
	"JPY": 0,
	"COP": 0,
}

// Format devuelve el monto con separador de miles y el código de moneda, ej. "USD 1,234.50".
// Es solo presentación: los cálculos nunca pasan por aquí.
func Format(d decimal.Decimal, currency string) string {
	places, ok := currencyPlaces[strings.ToUpper(currency)]
	if !ok {
		places = displayPlaces
	}
	amount := group(d.StringFixed(places), Point)
	if currency == "" {
		return amount
	}
	return strings.ToUpper(currency) + " " + amount
}

// group inserta el separador de miles en la parte entera de un decimal ya fijado.
func group(fixed string, n Notation) string {
	var b strings.Builder
	if strings.HasPrefix(fixed, "-") {
		b.WriteByte('-')
		fixed = fixed[1:]
	}
	intPart, frac, hasFrac := strings.Cut(fixed, ".")
	for i := 0; i < len(intPart); i++ {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(n.Group)
		}
		b.WriteByte(intPart[i])
	}
	if hasFrac {
		b.WriteByte(n.Decimal)
		b.WriteString(frac)
	}
	return b.String()
}
