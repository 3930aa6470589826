package pdf

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":           "$0.00",
		"5.5":         "$5.50",
		"1234.5":      "$1,234.50",
		"1234567.891": "$1,234,567.89",
		"-2500":       "-$2,500.00",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatMoney(decimal.RequireFromString(in)), in)
	}
}
