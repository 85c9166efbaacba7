package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want float64
	}{
		{"full currency format", "R$ 200.000,00", 200000},
		{"smaller amount", "R$ 8.000,00", 8000},
		{"cents", "R$ 1.234,56", 1234.56},
		{"no currency symbol", "1.234,56", 1234.56},
		{"plain number with dot decimal", "1234.56", 1234.56},
		{"plain integer", "8000", 8000},
		{"zero", "R$ 0,00", 0},
		{"empty", "", 0},
		{"whitespace only", "   ", 0},
		{"garbage", "n/a", 0},
		{"non-breaking space", "R$ 500,00", 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParsePrice(tt.in))
		})
	}
}

func TestParseDate(t *testing.T) {
	iso := func(s string) *string { return &s }

	tests := []struct {
		name string
		in   string
		want *string
	}{
		{"locale text", "15/01/2024", iso("2024-01-15")},
		{"unpadded day and month", "5/1/2024", iso("2024-01-05")},
		{"already iso", "2024-01-15", iso("2024-01-15")},
		{"native short rendering", "1-15-24", iso("2024-01-15")},
		{"empty", "", nil},
		{"impossible date", "31/02/2024", nil},
		{"garbage", "not a date", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDate(tt.in)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestPadNumber(t *testing.T) {
	assert.Equal(t, "005349", PadNumber("5349"))
	assert.Equal(t, "000001", PadNumber("1"))
	assert.Equal(t, "038031", PadNumber("038031"))
	assert.Equal(t, "005349", PadNumber("  5349  "))
	// wider values pass through untouched
	assert.Equal(t, "1234567", PadNumber("1234567"))
}
