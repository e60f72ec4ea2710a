package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/titya18/pos-react-front-office-sub001/pkg/money"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", "0", false},
		{"  12.5 ", "12.5", false},
		{"1,234.56", "1234.56", false},
		{"1,234,567", "1234567", false},
		{"-3", "-3", false},
		{"-4,100.25", "-4100.25", false},
		{"12abc", "", true},
		{"1.2.3", "", true},
		{"0,5", "", true},
		{"4100,5", "", true},
		{"1,23.4", "", true},
		{",123", "", true},
		{"1.5,0", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := money.Parse(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestComma_Parse(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"0,5", "0.5", false},
		{"4100,5", "4100.5", false},
		{"4.105,75", "4105.75", false},
		{"4100", "4100", false},
		{"4100.5", "", true},
		{"1,2,3", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := money.Comma.Parse(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "USD 1,234.50", money.Format(decimal.RequireFromString("1234.5"), "USD"))
	assert.Equal(t, "KHR 410,000", money.Format(decimal.RequireFromString("410000"), "khr"))
	assert.Equal(t, "0.00", money.Format(decimal.Zero, ""))
	assert.Equal(t, "-999.99", money.Format(decimal.RequireFromString("-999.99"), ""))
	assert.Equal(t, "-1,000.00", money.Format(decimal.RequireFromString("-999.995"), ""))
}

func TestFormat_SinPerderPrecisionEnMontosGrandes(t *testing.T) {
	// 9007199254740993 no es representable en float64
	assert.Equal(t, "USD 9,007,199,254,740,993.01",
		money.Format(decimal.RequireFromString("9007199254740993.01"), "USD"))
}
