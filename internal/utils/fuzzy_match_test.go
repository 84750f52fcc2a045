package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFoldAccents(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "precio", "precio"},
		{"uppercase", "PRECIO", "precio"},
		{"acute accents", "¿Cuánto cuesta el café?", "¿cuanto cuesta el cafe?"},
		{"tilde n", "Año de cosecha", "ano de cosecha"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FoldAccents(tt.input))
		})
	}
}

func TestNormalizeUnit(t *testing.T) {
	tests := []struct {
		input  string
		want   string
		wantOK bool
	}{
		{"pound", "pound", true},
		{" Libras ", "pound", true},
		{"lb", "pound", true},
		{"kilogram", "kilogram", true},
		{"KG", "kilogram", true},
		{"kilógramos", "kilogram", true},
		{"arroba", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := NormalizeUnit(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeCurrency(t *testing.T) {
	tests := []struct {
		input  string
		want   string
		wantOK bool
	}{
		{"USD", "USD", true},
		{"usd", "USD", true},
		{"dólares", "USD", true},
		{"COP", "COP", true},
		{"pesos", "COP", true},
		{"EUR", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := NormalizeCurrency(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDistinctSorted(t *testing.T) {
	got := DistinctSorted([]string{"Geisha", "", "Caturra", "Geisha", "caturra"})
	assert.Equal(t, []string{"Caturra", "Geisha", "caturra"}, got)
}

func TestShortFloat(t *testing.T) {
	assert.Equal(t, "3.0", ShortFloat(3))
	assert.Equal(t, "3.25", ShortFloat(3.25))
	assert.Equal(t, "10.5", ShortFloat(10.5))
	assert.Equal(t, "0.0", ShortFloat(0))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 3.14, Round2(3.14159))
	assert.Equal(t, 2.5, Round2(2.499999))
	assert.Equal(t, 40.0, Round2(40))
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "40.00", FormatMoney(40))
	assert.Equal(t, "3.50", FormatMoney(3.5))
}

func TestContainsFold(t *testing.T) {
	assert.True(t, ContainsFold("¿Cuánto cuesta el TÍPICA?", "Típica"))
	assert.True(t, ContainsFold("precio del tipica", "Típica"))
	assert.False(t, ContainsFold("precio del geisha", "Caturra"))
}
