package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de lançamento bancário.
const (
	StatementCredito = "CREDITO"
	StatementDebito  = "DEBITO"
)

// Status de conciliação.
const (
	StatementPendente   = "PENDENTE"
	StatementConciliado = "CONCILIADO"
	StatementIgnorado   = "IGNORADO"
)

// BankStatement linha de extrato bancário importada.
type BankStatement struct {
	ID                  string
	UnitID              string
	BankAccount         string
	TransactionDate     time.Time
	Description         string
	Amount              decimal.Decimal // sempre positivo; o sinal está em Type
	Type                string
	ExternalID          string
	Status              string
	ReconciledExpenseID *string
	ImportedBy          string
	CreatedAt           time.Time
}
