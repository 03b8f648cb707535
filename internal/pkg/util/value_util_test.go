package util

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestToFloat64(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  float64
	}{
		{"int", 42, 42},
		{"int64", int64(7), 7},
		{"uint", uint32(3), 3},
		{"float", 38750.5, 38750.5},
		{"float32", float32(1.5), 1.5},
		{"true", true, 1},
		{"false", false, 0},
		{"nil", nil, 0},
		{"numeric string", "12.5", 12.5},
		{"numeric prefix", "123abc", 123},
		{"signed prefix", "-4.5kg", -4.5},
		{"unparsable string", "abc", 0},
		{"empty string", "", 0},
		{"empty slice", []any{}, 1},
		{"map", map[string]any{"a": 1}, 1},
		{"struct", struct{ A int }{A: 2}, 1},
		{"struct pointer", &struct{ A int }{A: 2}, 1},
		{"nil pointer", (*int)(nil), 0},
		{"decimal", decimal.RequireFromString("9.75"), 9.75},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ToFloat64(tt.value), 1e-9)
		})
	}
}

func TestParseNumericPrefix(t *testing.T) {
	assert.Equal(t, 1e3, ParseNumericPrefix("1e3 items"))
	assert.Equal(t, 0.5, ParseNumericPrefix(" .5"))
	assert.Equal(t, float64(0), ParseNumericPrefix("x1"))
}
