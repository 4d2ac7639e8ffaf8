package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{math.Copysign(0, -1), "0"},
		{8, "8"},
		{-15, "-15"},
		{0.5, "0.5"},
		{123.456, "123.456"},
		{0.30000000000000004, "0.30000000000000004"},
		{1e20, "100000000000000000000"},
		{1e21, "1e+21"},
		{2.5e21, "2.5e+21"},
		{1e-6, "0.000001"},
		{1.5e-6, "0.0000015"},
		{1e-7, "1e-7"},
		{1.5e-7, "1.5e-7"},
		{-1e-7, "-1e-7"},
		{math.MaxFloat64, "1.7976931348623157e+308"},
		{5e-324, "5e-324"},
		{math.NaN(), "NaN"},
		{math.Inf(1), "Infinity"},
		{math.Inf(-1), "-Infinity"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatNumber(tt.in))
		})
	}
}

func TestFormatNumber_RoundTrips(t *testing.T) {
	values := []float64{1.0 / 3, 2.0 / 3, 1e-5, 12345.6789, -98.76, 4.35e15, 7e-300}
	for _, v := range values {
		_, ok := leadingNumber(FormatNumber(v))
		assert.True(t, ok, "formatted %v should parse back", v)
		got, err := Eval(FormatNumber(v))
		if assert.NoError(t, err) {
			assert.Equal(t, v, got)
		}
	}
}
