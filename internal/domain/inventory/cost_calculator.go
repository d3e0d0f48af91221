package inventory

import "github.com/shopspring/decimal"

// WeightedAverageCost calcula o custo médio ponderado após uma entrada.
// novoCusto = ((estoqueAtual × custoAtual) + (qtdEntrada × custoEntrada)) / (estoqueAtual + qtdEntrada)
// Estoque atual negativo é tratado como zero.
func WeightedAverageCost(currentStock, currentCost, inQty, inCost decimal.Decimal) decimal.Decimal {
	if currentStock.IsNegative() {
		currentStock = decimal.Zero
	}
	sum := currentStock.Add(inQty)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := currentStock.Mul(currentCost).Add(inQty.Mul(inCost))
	return num.Div(sum).Round(4)
}
