package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   string
	}{
		{"whole dollars", 5, "$5.00"},
		{"cents", 1.5, "$1.50"},
		{"sub-cent rounds", 2.999, "$3.00"},
		{"zero", 0, "$0.00"},
		{"negative", -4.25, "-$4.25"},
		{"large", 12345.6, "$12345.60"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatPrice(tt.amount))
		})
	}
}
