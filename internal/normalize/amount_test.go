package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billscan/internal/domain"
	"billscan/internal/normalize"
)

func TestAmount(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"currency prefix with comma decimal", "RSD2500,00", "2500.00"},
		{"grouping dots removed", "RSD1.234,56", "1234.56"},
		{"zero", "RSD0,00", "0.00"},
		{"no prefix", "318,77", "318.77"},
		{"already normalized", "1234.56", "1234.56"},
		{"surrounding whitespace", " RSD42,50 ", "42.50"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := normalize.Amount(tc.raw)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.StringFixed(2))
		})
	}
}

// Normalizing an already normalized value must not change it.
func TestAmount_Idempotent(t *testing.T) {
	first, err := normalize.Amount("RSD1.234,56")
	require.NoError(t, err)

	second, err := normalize.Amount(first.StringFixed(2))
	require.NoError(t, err)
	assert.True(t, first.Equal(second))
}

func TestAmount_NonNumeric(t *testing.T) {
	_, err := normalize.Amount("RSDabc")

	var formatErr *domain.FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, "amount", formatErr.Field)
	assert.Equal(t, "RSDabc", formatErr.Value)
}
