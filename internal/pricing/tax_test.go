package pricing

import (
	"context"
	"errors"
	"testing"

	"github.com/horsh321/teem-server/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTaxes struct {
	rates map[string]*model.Tax
	err   error
}

func (s *stubTaxes) FindEnabledByState(ctx context.Context, merchantCode, state string) (*model.Tax, error) {
	if s.err != nil {
		return nil, s.err
	}
	tax, ok := s.rates[merchantCode+"/"+state]
	if !ok || !tax.Enabled {
		return nil, nil
	}
	return tax, nil
}

func TestTaxCalculator_Calculate(t *testing.T) {
	finder := &stubTaxes{rates: map[string]*model.Tax{
		"M1/Lagos": {State: "Lagos", StandardRate: decimal.NewFromInt(5), Enabled: true},
		"M1/Abuja": {State: "Abuja", StandardRate: decimal.RequireFromString("7.5"), Enabled: true},
		"M1/Kano":  {State: "Kano", StandardRate: decimal.NewFromInt(10), Enabled: false},
	}}
	calc := NewTaxCalculator(finder, zerolog.Nop())

	tests := []struct {
		name     string
		state    string
		subtotal string
		expected string
	}{
		{name: "Configured rate", state: "Lagos", subtotal: "100.00", expected: "5.00"},
		{name: "Fractional rate rounds half up", state: "Abuja", subtotal: "33.30", expected: "2.50"},
		{name: "Disabled rate is zero", state: "Kano", subtotal: "100.00", expected: "0.00"},
		{name: "Missing rate is zero", state: "Oyo", subtotal: "100.00", expected: "0.00"},
		{name: "Zero subtotal", state: "Lagos", subtotal: "0", expected: "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, err := calc.Calculate(context.Background(), "M1", tt.state, decimal.RequireFromString(tt.subtotal))

			require.NoError(t, err)
			assert.Equal(t, tt.expected, amount.StringFixed(2))
		})
	}
}

func TestTaxCalculator_StoreError(t *testing.T) {
	calc := NewTaxCalculator(&stubTaxes{err: errors.New("timeout")}, zerolog.Nop())

	_, err := calc.Calculate(context.Background(), "M1", "Lagos", decimal.NewFromInt(10))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to look up tax rate")
}
