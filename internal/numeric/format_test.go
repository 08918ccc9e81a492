package numeric

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatDecimal_Truncates(t *testing.T) {
	cases := []struct {
		name     string
		value    string
		decimals int
		want     string
	}{
		{"truncates not rounds", "100.12699", 2, "100.12"},
		{"no trailing zeros", "50500.0000", 4, "50500"},
		{"exact fit", "0.0003", 4, "0.0003"},
		{"drops excess digits", "0.00039999", 4, "0.0003"},
		{"zero decimals", "123.999", 0, "123"},
		{"negative decimals clamped", "42.5", -3, "42"},
		{"integer unchanged", "50500", 4, "50500"},
		{"zero value", "0", 2, "0"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v, err := decimal.NewFromString(tc.value)
			assert.NoError(t, err)
			assert.Equal(t, tc.want, FormatDecimal(v, tc.decimals))
		})
	}
}

func TestFormatDecimal_NeverExceedsInput(t *testing.T) {
	// Truncation must never produce a value above the input.
	values := []string{"0.123456789", "99999.99999", "1.00000001", "0.00000001"}
	for _, raw := range values {
		v, _ := decimal.NewFromString(raw)
		for d := 0; d <= 8; d++ {
			out, err := decimal.NewFromString(FormatDecimal(v, d))
			assert.NoError(t, err)
			assert.True(t, out.LessThanOrEqual(v), "FormatDecimal(%s, %d) = %s rounded up", raw, d, out)
		}
	}
}
