package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPrice(t *testing.T) {
	cases := []struct {
		minor int64
		want  string
	}{
		{0, "0"},
		{99, "0"},
		{100, "1"},
		{2500000, "25,000"},
		{100000000, "1,000,000"},
		{123456789, "1,234,567"},
		{-2500000, "-25,000"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, FormatPrice(c.minor), "FormatPrice(%d)", c.minor)
	}
}

func TestImpliedOriginalPrice(t *testing.T) {
	// 20% off a 8,000.00 price implies 10,000.00 originally.
	got, ok := ImpliedOriginalPrice(800000, 20)
	assert.True(t, ok)
	assert.Equal(t, int64(1000000), got)

	for _, d := range []int{0, -5, 100, 150} {
		_, ok := ImpliedOriginalPrice(800000, d)
		assert.False(t, ok, "discount %d must be undefined", d)
	}
}

func TestSavings(t *testing.T) {
	got, ok := Savings(1000000, 800000)
	assert.True(t, ok)
	assert.Equal(t, int64(200000), got)

	_, ok = Savings(800000, 800000)
	assert.False(t, ok)

	// Never negative.
	_, ok = Savings(700000, 800000)
	assert.False(t, ok)
}
