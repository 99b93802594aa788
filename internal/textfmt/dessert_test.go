package textfmt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatDessert(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "yaourt plus fruit",
			input:    "Yaourt Fruit du jour",
			expected: "Yaourt / Fruit du jour",
		},
		{
			name:     "affineur plus mousse",
			input:    "Sélection de notre affineur Mousse au chocolat",
			expected: "Sélection de notre affineur / Mousse au chocolat",
		},
		{
			name:     "fromage blanc plus compote",
			input:    "Fromage blanc Compote de pomme",
			expected: "Fromage blanc / Compote de pomme",
		},
		{
			name:     "already separated passes through",
			input:    "Yaourt / Fruit du jour",
			expected: "Yaourt / Fruit du jour",
		},
		{
			name:     "single dessert unchanged",
			input:    "Mousse au chocolat",
			expected: "Mousse au chocolat",
		},
		{
			name:     "lone category unchanged",
			input:    "Yaourt",
			expected: "Yaourt",
		},
		{
			name:     "empty unchanged",
			input:    "",
			expected: "",
		},
		{
			name:     "indicator fallback",
			input:    "Compote de pomme Cookies maison",
			expected: "Compote de pomme / Cookies maison",
		},
		{
			name:     "lowercase continuation is one item",
			input:    "Yaourt nature sucré",
			expected: "Yaourt nature sucré",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, FormatDessert(tc.input))
		})
	}
}
