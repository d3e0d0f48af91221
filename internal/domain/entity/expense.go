package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status de despesa.
const (
	ExpensePendente  = "PENDENTE"
	ExpensePago      = "PAGO"
	ExpenseAtrasado  = "ATRASADO"
	ExpenseCancelado = "CANCELADO"
)

// Tipos de despesa.
const (
	ExpenseFixa     = "FIXA"
	ExpenseVariavel = "VARIAVEL"
)

// Expense despesa (conta a pagar) da unidade.
type Expense struct {
	ID                 string
	UnitID             string
	Description        string
	Category           string
	ExpenseType        string
	Value              decimal.Decimal
	CompetenceDate     time.Time
	DueDate            time.Time
	PaymentDate        *time.Time
	Status             string
	PaymentMethod      *string
	SupplierID         *string
	RecurringExpenseID *string
	Notes              *string
	CreatedBy          string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// RecurringExpense modelo que gera uma despesa por mês.
type RecurringExpense struct {
	ID                  string
	UnitID              string
	Description         string
	Category            string
	Value               decimal.Decimal
	DayOfMonth          int
	SupplierID          *string
	IsActive            bool
	LastGeneratedPeriod *string // YYYY-MM
	CreatedBy           string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Period formata o período de competência (YYYY-MM).
func Period(t time.Time) string {
	return t.Format("2006-01")
}

// DueDateFor devolve o vencimento no mês de ref, ajustando dias inexistentes para o último dia do mês.
func (r *RecurringExpense) DueDateFor(ref time.Time) time.Time {
	firstOfNext := time.Date(ref.Year(), ref.Month()+1, 1, 0, 0, 0, 0, ref.Location())
	lastDay := firstOfNext.AddDate(0, 0, -1).Day()
	day := r.DayOfMonth
	if day > lastDay {
		day = lastDay
	}
	if day < 1 {
		day = 1
	}
	return time.Date(ref.Year(), ref.Month(), day, 0, 0, 0, 0, ref.Location())
}

// DueIn informa se o modelo ainda não gerou a despesa do período de ref.
func (r *RecurringExpense) DueIn(ref time.Time) bool {
	if !r.IsActive {
		return false
	}
	return r.LastGeneratedPeriod == nil || *r.LastGeneratedPeriod < Period(ref)
}
