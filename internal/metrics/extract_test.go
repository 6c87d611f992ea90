package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractNumber(t *testing.T) {
	tests := []struct {
		name     string
		input    interface{}
		expected *float64
	}{
		{"nil input", nil, nil},
		{"plain float", 42.5, ptr(42.5)},
		{"integer", 100, ptr(100.0)},
		{"int64", int64(7), ptr(7.0)},
		{"numeric string", "1200", ptr(1200.0)},
		{"currency string", "$1,200,000", ptr(1200000.0)},
		{"decimal string", "42.5%", ptr(42.5)},
		{"spaced currency", "USD 500 000", ptr(500000.0)},
		{"no digits", "not available", nil},
		{"empty string", "", nil},
		{"boolean", true, nil},
		{"multiple dots", "1.2.3", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ExtractNumber(tt.input)
			if tt.expected == nil {
				assert.Nil(t, result)
				return
			}
			require.NotNil(t, result)
			assert.InDelta(t, *tt.expected, *result, 0.0001)
		})
	}
}

func ptr(v float64) *float64 {
	return &v
}
