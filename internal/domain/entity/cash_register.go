package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status do caixa.
const (
	CashOpen   = "ABERTO"
	CashClosed = "FECHADO"
)

// Tipos de movimentação de caixa.
const (
	CashSuprimento = "SUPRIMENTO"
	CashSangria    = "SANGRIA"
	CashVenda      = "VENDA"
)

// CashRegister sessão de caixa de uma unidade (uma aberta por vez).
type CashRegister struct {
	ID              string
	UnitID          string
	Status          string
	OpeningBalance  decimal.Decimal
	ClosingBalance  *decimal.Decimal
	ExpectedBalance *decimal.Decimal
	Difference      *decimal.Decimal
	OpenedBy        string
	ClosedBy        *string
	OpenedAt        time.Time
	ClosedAt        *time.Time
	Notes           *string
}

// CashMovement entrada ou saída de dinheiro no caixa.
type CashMovement struct {
	ID             string
	CashRegisterID string
	UnitID         string
	Type           string
	Amount         decimal.Decimal
	Description    string
	OrderID        *string
	PerformedBy    string
	CreatedAt      time.Time
}

// CashSummary totais por tipo de movimentação.
type CashSummary struct {
	Sales       decimal.Decimal
	Suprimentos decimal.Decimal
	Sangrias    decimal.Decimal
}

// ExpectedBalance saldo esperado = abertura + vendas em dinheiro + suprimentos − sangrias.
func (s CashSummary) ExpectedBalance(opening decimal.Decimal) decimal.Decimal {
	return opening.Add(s.Sales).Add(s.Suprimentos).Sub(s.Sangrias)
}

// Summarize soma as movimentações por tipo.
func Summarize(movs []*CashMovement) CashSummary {
	s := CashSummary{Sales: decimal.Zero, Suprimentos: decimal.Zero, Sangrias: decimal.Zero}
	for _, m := range movs {
		switch m.Type {
		case CashVenda:
			s.Sales = s.Sales.Add(m.Amount)
		case CashSuprimento:
			s.Suprimentos = s.Suprimentos.Add(m.Amount)
		case CashSangria:
			s.Sangrias = s.Sangrias.Add(m.Amount)
		}
	}
	return s
}
