package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankStatementColumns colunas de bank_statements graváveis pela API.
var BankStatementColumns = []string{
	"unit_id", "bank_account", "transaction_date", "description", "amount", "type", "external_id",
}

// BankStatementLineDTO uma linha de extrato, digitada ou vinda da importação.
type BankStatementLineDTO struct {
	UnitID          string           `json:"unit_id" validate:"required,uuid"`
	BankAccount     string           `json:"bank_account" validate:"required,max=60"`
	TransactionDate *time.Time       `json:"transaction_date" validate:"required"`
	Description     string           `json:"description" validate:"required,max=300"`
	Amount          *decimal.Decimal `json:"amount" validate:"required,gt=0"`
	Type            string           `json:"type" validate:"required,oneof=CREDITO DEBITO"`
	ExternalID      string           `json:"external_id" validate:"required,max=128"`
}

// NewBankStatementLineDTO monta o DTO a partir do corpo cru.
func NewBankStatementLineDTO(raw map[string]any) (*BankStatementLineDTO, error) {
	var d BankStatementLineDTO
	if err := decode(raw, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Validate aplica as regras de uma linha de extrato.
func (d *BankStatementLineDTO) Validate() ValidationResult {
	return check(d).result()
}

// ToObject devolve apenas colunas permitidas com valor definido.
func (d *BankStatementLineDTO) ToObject() map[string]any {
	return pick(BankStatementColumns, map[string]any{
		"unit_id":          d.UnitID,
		"bank_account":     d.BankAccount,
		"transaction_date": d.TransactionDate,
		"description":      d.Description,
		"amount":           d.Amount,
		"type":             d.Type,
		"external_id":      d.ExternalID,
	})
}

// ImportStatementDTO campos de formulário que acompanham o arquivo importado.
type ImportStatementDTO struct {
	BankAccount string `json:"bank_account" validate:"required,max=60"`
	FileName    string `json:"file_name" validate:"required"`
}

// Validate aplica as regras da importação.
func (d *ImportStatementDTO) Validate() ValidationResult {
	return check(d).result()
}

// StatementFilter filtros da listagem de extrato.
type StatementFilter struct {
	Status string
	Type   string
	From   *time.Time
	To     *time.Time
	Page   PageRequest
}

// BankStatementResponse saída de uma linha de extrato.
type BankStatementResponse struct {
	ID                  string          `json:"id"`
	UnitID              string          `json:"unit_id"`
	BankAccount         string          `json:"bank_account"`
	TransactionDate     time.Time       `json:"transaction_date"`
	Description         string          `json:"description"`
	Amount              decimal.Decimal `json:"amount"`
	Type                string          `json:"type"`
	ExternalID          string          `json:"external_id"`
	Status              string          `json:"status"`
	ReconciledExpenseID *string         `json:"reconciled_expense_id,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
}

// BankStatementListResponse lista paginada de extrato.
type BankStatementListResponse struct {
	Items []BankStatementResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}

// ImportStatementResponse resultado da importação.
type ImportStatementResponse struct {
	Read       int      `json:"read"`       // linhas lidas do arquivo
	Imported   int      `json:"imported"`   // linhas novas gravadas
	Duplicated int      `json:"duplicated"` // external_id já existente
	Rejected   []string `json:"rejected"`   // linhas inválidas (com motivo)
}

// ReconcileMatchResponse par linha × despesa conciliado.
type ReconcileMatchResponse struct {
	StatementID string  `json:"statement_id"`
	ExpenseID   string  `json:"expense_id"`
	DaysApart   int     `json:"days_apart"`
	Similarity  float64 `json:"similarity"`
}

// ReconcileResponse resultado de POST /api/bank-statements/reconcile.
type ReconcileResponse struct {
	Matched []ReconcileMatchResponse `json:"matched"`
	Pending int                      `json:"pending"` // débitos que continuam sem par
}
