package checkout

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name     string
		lines    []OrderLine
		expected Totals
	}{
		{
			name:     "above free shipping threshold",
			lines:    []OrderLine{{UnitPrice: 50, Quantity: 2}},
			expected: Totals{Subtotal: 100, Tax: 10, Shipping: 0, Total: 110},
		},
		{
			name:     "below threshold pays flat shipping",
			lines:    []OrderLine{{UnitPrice: 10, Quantity: 1}},
			expected: Totals{Subtotal: 10, Tax: 1, Shipping: 5.99, Total: 16.99},
		},
		{
			name:     "exactly at threshold still pays shipping",
			lines:    []OrderLine{{UnitPrice: 25, Quantity: 2}},
			expected: Totals{Subtotal: 50, Tax: 5, Shipping: 5.99, Total: 60.99},
		},
		{
			name:     "empty order",
			lines:    nil,
			expected: Totals{Subtotal: 0, Tax: 0, Shipping: 5.99, Total: 5.99},
		},
		{
			name:     "half cent rounds away from zero",
			lines:    []OrderLine{{UnitPrice: 0.05, Quantity: 1}},
			expected: Totals{Subtotal: 0.05, Tax: 0.01, Shipping: 5.99, Total: 6.05},
		},
		{
			name:     "multiple lines accumulate before rounding",
			lines:    []OrderLine{{UnitPrice: 19.99, Quantity: 2}, {UnitPrice: 12.49, Quantity: 1}},
			expected: Totals{Subtotal: 52.47, Tax: 5.25, Shipping: 0, Total: 57.72},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTotals(tt.lines)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestNormalizeShippingAddress(t *testing.T) {
	t.Run("defaults country", func(t *testing.T) {
		got := NormalizeShippingAddress(ShippingAddress{Name: "Jane Reader"})
		assert.Equal(t, "United States", got.Country)
		assert.Equal(t, "Jane Reader", got.Name)
	})

	t.Run("keeps explicit country", func(t *testing.T) {
		got := NormalizeShippingAddress(ShippingAddress{Country: "Canada"})
		assert.Equal(t, "Canada", got.Country)
	})
}

func TestNewOrderNumber(t *testing.T) {
	now := time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)
	number := newOrderNumber(now)
	assert.Regexp(t, regexp.MustCompile(`^ORD-20250314-150926-\d{3}$`), number)
}

func TestNewOrderID(t *testing.T) {
	now := time.Now()
	id := newOrderID(now)
	assert.Regexp(t, regexp.MustCompile(`^\d+$`), id)
	assert.GreaterOrEqual(t, len(id), 16)
}
