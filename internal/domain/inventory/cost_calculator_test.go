package inventory

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestWeightedAverageCost(t *testing.T) {
	tests := []struct {
		name                       string
		stock, cost, inQty, inCost string
		want                       string
	}{
		{"primeira entrada", "0", "0", "10", "5", "5"},
		{"mesmo custo", "10", "5", "10", "5", "5"},
		{"custo maior", "10", "10", "10", "20", "15"},
		{"proporcional", "30", "10", "10", "30", "15"},
		{"estoque negativo vira zero", "-4", "8", "2", "12", "12"},
		{"entrada zerada", "0", "0", "0", "10", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WeightedAverageCost(d(tt.stock), d(tt.cost), d(tt.inQty), d(tt.inCost))
			assert.True(t, d(tt.want).Equal(got), "esperado %s, obtido %s", tt.want, got)
		})
	}
}
