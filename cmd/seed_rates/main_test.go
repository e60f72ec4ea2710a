package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/titya18/pos-react-front-office-sub001/pkg/money"
)

func TestParseRates_UTF8ConEncabezado(t *testing.T) {
	in := "fecha;tasa\n2024-02-01;4,105.5\n2024-01-01;4100\n"

	rows, err := parseRates(strings.NewReader(in), false, money.Point)

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "2024-01-01", rows[0].effectiveAt.Format("2006-01-02"))
	assert.Equal(t, "4100", rows[0].rate.String())
	assert.Equal(t, "4105.5", rows[1].rate.String())
}

func TestParseRates_Latin1(t *testing.T) {
	encoded, err := charmap.ISO8859_1.NewEncoder().String("Día;Tasa riel\n15/03/2024;4090\n")
	require.NoError(t, err)

	rows, err := parseRates(bytes.NewReader([]byte(encoded)), true, money.Point)

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "2024-03-15", rows[0].effectiveAt.Format("2006-01-02"))
}

func TestParseRates_ComaDecimalSinOpcionEsError(t *testing.T) {
	for _, in := range []string{"2024-01-01;0,5\n", "2024-01-01;4100,5\n"} {
		_, err := parseRates(strings.NewReader(in), false, money.Point)
		assert.Error(t, err, in)
	}
}

func TestParseRates_ComaDecimal(t *testing.T) {
	encoded, err := charmap.ISO8859_1.NewEncoder().String("Fecha;Tasa\n02/01/2024;4.100,5\n01/01/2024;4100,25\n")
	require.NoError(t, err)

	rows, err := parseRates(bytes.NewReader([]byte(encoded)), true, money.Comma)

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "4100.25", rows[0].rate.String())
	assert.Equal(t, "4100.5", rows[1].rate.String())
}

func TestParseRates_DemasiadosDecimales(t *testing.T) {
	_, err := parseRates(strings.NewReader("2024-01-01;4100.1234567\n"), false, money.Point)
	assert.Error(t, err)
}

func TestParseRates_TasaNoPositiva(t *testing.T) {
	_, err := parseRates(strings.NewReader("2024-01-01;0\n"), false, money.Point)
	assert.Error(t, err)
}

func TestWriteSQL_Idempotente(t *testing.T) {
	rows, err := parseRates(strings.NewReader("2024-01-01;4100\n2024-01-02;4110\n"), false, money.Point)
	require.NoError(t, err)

	var first, second bytes.Buffer
	require.NoError(t, writeSQL(&first, rows, "tasas.csv"))
	require.NoError(t, writeSQL(&second, rows, "tasas.csv"))

	sql := first.String()
	assert.Equal(t, sql, second.String(), "ids derivados de la fecha: misma salida en cada corrida")
	assert.Contains(t, sql, "INSERT INTO exchange_rates")
	assert.Contains(t, sql, "4110, '2024-01-02T00:00:00Z', 'seed')\n")
	assert.Contains(t, sql, "ON CONFLICT (id) DO UPDATE")
}

func TestWriteSQL_SinFilas(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, writeSQL(&out, nil, "vacio.csv"))
	assert.NotContains(t, out.String(), "INSERT")
}
