package utils_test

import (
	"encoding/json"
	"math"
	"testing"

	"catalog/core/utils"

	"github.com/stretchr/testify/assert"
)

func TestToFloat(t *testing.T) {
	tests := []struct {
		name   string
		in     any
		want   float64
		wantOK bool
	}{
		{"Float", 10.5, 10.5, true},
		{"Int", 7, 7, true},
		{"Int64", int64(-3), -3, true},
		{"JSONNumber", json.Number("12.25"), 12.25, true},
		{"NumericString", " 42 ", 42, true},
		{"BadString", "bad", 0, false},
		{"EmptyString", "", 0, false},
		{"Nil", nil, 0, false},
		{"Bool", true, 0, false},
		{"NaN", math.NaN(), 0, false},
		{"Inf", math.Inf(1), 0, false},
		{"InfString", "Infinity", 0, false},
		{"Map", map[string]any{}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := utils.ToFloat(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRound(t *testing.T) {
	assert.Equal(t, 11.67, utils.Round(35.0/3.0, 2))
	assert.Equal(t, 0.13, utils.Round(0.125, 2))
	assert.Equal(t, 35.0, utils.Round(35, 2))
	assert.Equal(t, 0.0, utils.Round(0, 2))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", utils.Truncate("  abc  ", 10))
	assert.Equal(t, "ab", utils.Truncate("abc", 2))
	assert.Equal(t, "héé", utils.Truncate("héééé", 3))
}
