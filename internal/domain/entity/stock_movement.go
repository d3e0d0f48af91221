package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimentação.
const (
	MovementEntrada = "ENTRADA"
	MovementSaida   = "SAIDA"
	MovementAjuste  = "AJUSTE"
)

// Motivos de movimentação.
const (
	ReasonCompra     = "COMPRA"
	ReasonDevolucao  = "DEVOLUCAO"
	ReasonVenda      = "VENDA"
	ReasonPerda      = "PERDA"
	ReasonUsoInterno = "USO_INTERNO"
	ReasonAjuste     = "AJUSTE"
)

var movementReasons = map[string][]string{
	MovementEntrada: {ReasonCompra, ReasonDevolucao, ReasonAjuste},
	MovementSaida:   {ReasonVenda, ReasonPerda, ReasonUsoInterno, ReasonDevolucao, ReasonAjuste},
	MovementAjuste:  {ReasonAjuste, ReasonPerda},
}

// ReasonAllowed informa se o motivo é compatível com o tipo de movimentação.
func ReasonAllowed(movementType, reason string) bool {
	for _, r := range movementReasons[movementType] {
		if r == reason {
			return true
		}
	}
	return false
}

// StockMovement registra uma entrada, saída ou ajuste de estoque.
// Em AJUSTE a quantidade é o novo saldo absoluto do produto.
type StockMovement struct {
	ID           string
	UnitID       string
	ProductID    string
	MovementType string
	Reason       string
	Quantity     decimal.Decimal
	UnitCost     decimal.Decimal
	TotalCost    decimal.Decimal // coluna gerada: quantity × unit_cost
	SupplierID   *string
	OrderID      *string
	Notes        *string
	PerformedBy  string
	CreatedAt    time.Time
}
