package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestAssembler_Total(t *testing.T) {
	tests := []struct {
		name          string
		allowNegative bool
		subtotal      string
		tax           string
		fee           string
		discount      string
		expected      string
	}{
		{name: "All components", allowNegative: true, subtotal: "100", tax: "5", fee: "2000", discount: "10", expected: "2095.00"},
		{name: "No discount equals round2 of sum", allowNegative: true, subtotal: "19.994", tax: "1.001", fee: "0", discount: "0", expected: "21.00"},
		{name: "Half rounds up", allowNegative: true, subtotal: "0.125", tax: "0", fee: "0", discount: "0", expected: "0.13"},
		{name: "Negative total allowed", allowNegative: true, subtotal: "10", tax: "0", fee: "0", discount: "25", expected: "-15.00"},
		{name: "Negative total floored", allowNegative: false, subtotal: "10", tax: "0", fee: "0", discount: "25", expected: "0.00"},
		{name: "Positive total unaffected by floor", allowNegative: false, subtotal: "10", tax: "1", fee: "2", discount: "3", expected: "10.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Assembler{AllowNegativeTotal: tt.allowNegative}

			total := a.Total(d(tt.subtotal), d(tt.tax), d(tt.fee), d(tt.discount))

			assert.Equal(t, tt.expected, total.StringFixed(2))
		})
	}
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "5.00", Percent(d("5"), d("100")).StringFixed(2))
	assert.Equal(t, "0.00", Percent(d("0"), d("100")).StringFixed(2))
	assert.Equal(t, "33.33", Percent(d("33.333"), d("100")).StringFixed(2))
}
