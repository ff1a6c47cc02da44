package collection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateMetrics(t *testing.T) {
	tests := []struct {
		name            string
		price           float64
		soldCount       int
		costOfGoods     float64
		expectedRevenue float64
		expectedProfit  float64
	}{
		{"typical product", 100, 50, 30, 5000, 3500},
		{"zero cost of goods", 50, 100, 0, 5000, 5000},
		{"fractional price and cost", 19.99, 25, 5.5, 499.75, 362.25},
		{"large volume", 1000, 10000, 300, 10000000, 7000000},
		{"zero sold count", 42.5, 0, 10, 0, 0},
		{"cost above price yields negative profit", 10, 5, 12, 50, -10},
		{"negative price flows through", -10, 5, 0, -50, -50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			revenue, profit := CalculateMetrics(tt.price, tt.soldCount, tt.costOfGoods)
			assert.InDelta(t, tt.expectedRevenue, revenue, 0.0001)
			assert.InDelta(t, tt.expectedProfit, profit, 0.0001)
		})
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
	}{
		{"$49.99", 49.99},
		{"49.99", 49.99},
		{"USD 1,299.00", 1299.00},
		{"€15", 15},
		{"8.50 kr", 8.50},
		{"free", 0},
		{"", 0},
		{".", 0},
		{"1.299.00", 1.299},
		{"price: 20 - 30", 2030},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.InDelta(t, tt.expected, ParsePrice(tt.input), 0.0001)
		})
	}
}
