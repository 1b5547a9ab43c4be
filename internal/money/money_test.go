package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateExample(t *testing.T) {
	// cart [{price:10000, qty:2, content:1}], tax 11%
	totals := Calculate([]Line{{UnitPrice: 10000, Quantity: 2, Content: 1}}, 1100, 0, 0)

	assert.Equal(t, int64(20000), totals.Subtotal)
	assert.Equal(t, int64(2200), totals.Tax)
	assert.Equal(t, int64(22200), totals.Total)
}

func TestCalculateContentMultiplier(t *testing.T) {
	totals := Calculate([]Line{
		{UnitPrice: 25000, Quantity: 2, Content: 10},
		{UnitPrice: 15000, Quantity: 1, Content: 1},
	}, 1100, 0, 0)

	assert.Equal(t, int64(515000), totals.Subtotal)
	assert.Equal(t, int64(56650), totals.Tax)
	assert.Equal(t, int64(571650), totals.Total)
}

func TestCalculateRoundsTaxHalfUp(t *testing.T) {
	// 50 × 11% = 5.5 → 6
	totals := Calculate([]Line{{UnitPrice: 50, Quantity: 1, Content: 1}}, 1100, 0, 0)
	assert.Equal(t, int64(6), totals.Tax)

	// 41 × 11% = 4.51 → 5
	totals = Calculate([]Line{{UnitPrice: 41, Quantity: 1, Content: 1}}, 1100, 0, 0)
	assert.Equal(t, int64(5), totals.Tax)

	// 40 × 11% = 4.4 → 4
	totals = Calculate([]Line{{UnitPrice: 40, Quantity: 1, Content: 1}}, 1100, 0, 0)
	assert.Equal(t, int64(4), totals.Tax)
}

func TestCalculateShippingAndDiscount(t *testing.T) {
	totals := Calculate([]Line{{UnitPrice: 10000, Quantity: 1, Content: 1}}, 1100, 5000, 2000)

	assert.Equal(t, int64(10000), totals.Subtotal)
	assert.Equal(t, int64(1100), totals.Tax)
	assert.Equal(t, int64(14100), totals.Total)
}

func TestCalculateEmptyCart(t *testing.T) {
	totals := Calculate(nil, 1100, 0, 0)
	assert.Equal(t, Totals{}, totals)
}

func TestCalculateDeterministic(t *testing.T) {
	lines := []Line{
		{UnitPrice: 33333, Quantity: 7, Content: 3},
		{UnitPrice: 101, Quantity: 13, Content: 1},
	}
	first := Calculate(lines, 1100, 1500, 300)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, Calculate(lines, 1100, 1500, 300))
	}
	// total always recomposes from its parts, no second rounding step
	assert.Equal(t, first.Subtotal+first.Tax+1500-300, first.Total)
}

func TestItemTotalMatchesCalculateContribution(t *testing.T) {
	lines := []Line{
		{UnitPrice: 12500, Quantity: 4, Content: 10},
		{UnitPrice: 999, Quantity: 3, Content: 1},
	}
	totals := Calculate(lines, 0, 0, 0)

	var sum int64
	for _, l := range lines {
		sum += ItemTotal(l.UnitPrice, l.Quantity, l.Content)
	}
	assert.Equal(t, sum, totals.Subtotal)
}
