package invoice

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	tests := map[string]string{
		"0":        "0",
		"300":      "300",
		"1400":     "1,400",
		"1234567":  "1,234,567",
		"99.5":     "99.50",
		"1999.955": "1,999.96",
		"-2500.25": "-2,500.25",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatAmount(decimal.RequireFromString(in)), in)
	}
}
