package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseColumns colunas de expenses graváveis pela API.
var ExpenseColumns = []string{
	"unit_id", "description", "category", "expense_type", "value", "competence_date", "due_date",
	"payment_date", "status", "payment_method", "supplier_id", "notes",
}

// CreateExpenseDTO entrada para lançar uma despesa.
type CreateExpenseDTO struct {
	UnitID         string           `json:"unit_id" validate:"required,uuid"`
	Description    string           `json:"description" validate:"required,min=2,max=200"`
	Category       string           `json:"category" validate:"required,max=60"`
	ExpenseType    *string          `json:"expense_type" validate:"omitempty,oneof=FIXA VARIAVEL"`
	Value          *decimal.Decimal `json:"value" validate:"required,gt=0"`
	CompetenceDate *time.Time       `json:"competence_date" validate:"required"`
	DueDate        *time.Time       `json:"due_date" validate:"required"`
	PaymentDate    *time.Time       `json:"payment_date"`
	Status         *string          `json:"status" validate:"omitempty,oneof=PENDENTE PAGO ATRASADO CANCELADO"`
	PaymentMethod  *string          `json:"payment_method" validate:"omitempty,oneof=DINHEIRO PIX CARTAO_CREDITO CARTAO_DEBITO BOLETO TRANSFERENCIA"`
	SupplierID     *string          `json:"supplier_id" validate:"omitempty,uuid"`
	Notes          *string          `json:"notes" validate:"omitempty,max=500"`
}

// NewCreateExpenseDTO monta o DTO a partir do corpo cru.
func NewCreateExpenseDTO(raw map[string]any) (*CreateExpenseDTO, error) {
	var d CreateExpenseDTO
	if err := decode(raw, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Validate aplica as regras de despesa. Despesa paga exige data de pagamento.
func (d *CreateExpenseDTO) Validate() ValidationResult {
	c := check(d)
	checkPaid(c, d.Status, d.PaymentDate)
	return c.result()
}

// ToObject devolve apenas colunas permitidas com valor definido.
func (d *CreateExpenseDTO) ToObject() map[string]any {
	return pick(ExpenseColumns, map[string]any{
		"unit_id":         d.UnitID,
		"description":     d.Description,
		"category":        d.Category,
		"expense_type":    d.ExpenseType,
		"value":           d.Value,
		"competence_date": d.CompetenceDate,
		"due_date":        d.DueDate,
		"payment_date":    d.PaymentDate,
		"status":          d.Status,
		"payment_method":  d.PaymentMethod,
		"supplier_id":     d.SupplierID,
		"notes":           d.Notes,
	})
}

// UpdateExpenseDTO atualização parcial de despesa.
type UpdateExpenseDTO struct {
	Description    *string          `json:"description" validate:"omitempty,min=2,max=200"`
	Category       *string          `json:"category" validate:"omitempty,max=60"`
	ExpenseType    *string          `json:"expense_type" validate:"omitempty,oneof=FIXA VARIAVEL"`
	Value          *decimal.Decimal `json:"value" validate:"omitempty,gt=0"`
	CompetenceDate *time.Time       `json:"competence_date"`
	DueDate        *time.Time       `json:"due_date"`
	PaymentDate    *time.Time       `json:"payment_date"`
	Status         *string          `json:"status" validate:"omitempty,oneof=PENDENTE PAGO ATRASADO CANCELADO"`
	PaymentMethod  *string          `json:"payment_method" validate:"omitempty,oneof=DINHEIRO PIX CARTAO_CREDITO CARTAO_DEBITO BOLETO TRANSFERENCIA"`
	SupplierID     *string          `json:"supplier_id" validate:"omitempty,uuid"`
	Notes          *string          `json:"notes" validate:"omitempty,max=500"`
}

// NewUpdateExpenseDTO monta o DTO a partir do corpo cru.
func NewUpdateExpenseDTO(raw map[string]any) (*UpdateExpenseDTO, error) {
	var d UpdateExpenseDTO
	if err := decode(raw, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Validate aplica as regras de atualização de despesa.
func (d *UpdateExpenseDTO) Validate() ValidationResult {
	c := check(d)
	checkPaid(c, d.Status, d.PaymentDate)
	if len(d.ToObject()) == 0 {
		c.add("body", "nenhum campo para atualizar")
	}
	return c.result()
}

// ToObject devolve apenas colunas permitidas com valor definido.
func (d *UpdateExpenseDTO) ToObject() map[string]any {
	return pick(ExpenseColumns[1:], map[string]any{
		"description":     d.Description,
		"category":        d.Category,
		"expense_type":    d.ExpenseType,
		"value":           d.Value,
		"competence_date": d.CompetenceDate,
		"due_date":        d.DueDate,
		"payment_date":    d.PaymentDate,
		"status":          d.Status,
		"payment_method":  d.PaymentMethod,
		"supplier_id":     d.SupplierID,
		"notes":           d.Notes,
	})
}

func checkPaid(c *checker, status *string, paymentDate *time.Time) {
	if status != nil && *status == "PAGO" && paymentDate == nil {
		c.add("payment_date", "payment_date é obrigatório para despesa paga")
	}
}

// PayExpenseDTO entrada de POST /api/expenses/:id/pay.
type PayExpenseDTO struct {
	PaymentDate   *time.Time `json:"payment_date"`
	PaymentMethod string     `json:"payment_method" validate:"required,oneof=DINHEIRO PIX CARTAO_CREDITO CARTAO_DEBITO BOLETO TRANSFERENCIA"`
}

// NewPayExpenseDTO monta o DTO a partir do corpo cru.
func NewPayExpenseDTO(raw map[string]any) (*PayExpenseDTO, error) {
	var d PayExpenseDTO
	if err := decode(raw, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Validate aplica as regras de pagamento.
func (d *PayExpenseDTO) Validate() ValidationResult {
	return check(d).result()
}

// ToObject colunas alteradas pelo pagamento; sem data informada, usa now.
func (d *PayExpenseDTO) ToObject(now time.Time) map[string]any {
	paid := now
	if d.PaymentDate != nil {
		paid = *d.PaymentDate
	}
	return map[string]any{
		"status":         "PAGO",
		"payment_date":   paid,
		"payment_method": d.PaymentMethod,
	}
}

// RecurringExpenseColumns colunas de recurring_expenses graváveis pela API.
var RecurringExpenseColumns = []string{
	"unit_id", "description", "category", "value", "day_of_month", "supplier_id", "is_active",
}

// RecurringExpenseDTO entrada para criar ou substituir um modelo de despesa recorrente (mensal).
type RecurringExpenseDTO struct {
	UnitID      string           `json:"unit_id" validate:"required,uuid"`
	Description string           `json:"description" validate:"required,min=2,max=200"`
	Category    string           `json:"category" validate:"required,max=60"`
	Value       *decimal.Decimal `json:"value" validate:"required,gt=0"`
	DayOfMonth  int              `json:"day_of_month" validate:"required,min=1,max=31"`
	SupplierID  *string          `json:"supplier_id" validate:"omitempty,uuid"`
	IsActive    *bool            `json:"is_active"`
}

// NewRecurringExpenseDTO monta o DTO a partir do corpo cru.
func NewRecurringExpenseDTO(raw map[string]any) (*RecurringExpenseDTO, error) {
	var d RecurringExpenseDTO
	if err := decode(raw, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Validate aplica as regras do modelo recorrente.
func (d *RecurringExpenseDTO) Validate() ValidationResult {
	return check(d).result()
}

// ToObject devolve apenas colunas permitidas com valor definido.
func (d *RecurringExpenseDTO) ToObject() map[string]any {
	return pick(RecurringExpenseColumns, map[string]any{
		"unit_id":      d.UnitID,
		"description":  d.Description,
		"category":     d.Category,
		"value":        d.Value,
		"day_of_month": d.DayOfMonth,
		"supplier_id":  d.SupplierID,
		"is_active":    d.IsActive,
	})
}

// ExpenseFilter filtros da listagem de despesas.
type ExpenseFilter struct {
	Status   string
	Category string
	From     *time.Time // due_date >= From
	To       *time.Time // due_date <= To
	Page     PageRequest
}

// ExpenseResponse saída de uma despesa.
type ExpenseResponse struct {
	ID                 string          `json:"id"`
	UnitID             string          `json:"unit_id"`
	Description        string          `json:"description"`
	Category           string          `json:"category"`
	ExpenseType        string          `json:"expense_type"`
	Value              decimal.Decimal `json:"value"`
	ValueFormatted     string          `json:"value_formatted"`
	CompetenceDate     time.Time       `json:"competence_date"`
	DueDate            time.Time       `json:"due_date"`
	PaymentDate        *time.Time      `json:"payment_date,omitempty"`
	Status             string          `json:"status"`
	PaymentMethod      *string         `json:"payment_method,omitempty"`
	SupplierID         *string         `json:"supplier_id,omitempty"`
	RecurringExpenseID *string         `json:"recurring_expense_id,omitempty"`
	Notes              *string         `json:"notes,omitempty"`
	CreatedBy          string          `json:"created_by"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// ExpenseListResponse lista paginada de despesas.
type ExpenseListResponse struct {
	Items []ExpenseResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// RecurringExpenseResponse saída de um modelo recorrente.
type RecurringExpenseResponse struct {
	ID                  string          `json:"id"`
	UnitID              string          `json:"unit_id"`
	Description         string          `json:"description"`
	Category            string          `json:"category"`
	Value               decimal.Decimal `json:"value"`
	DayOfMonth          int             `json:"day_of_month"`
	SupplierID          *string         `json:"supplier_id,omitempty"`
	IsActive            bool            `json:"is_active"`
	LastGeneratedPeriod *string         `json:"last_generated_period,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
}

// GenerateRecurringResponse resultado da geração manual ou agendada.
type GenerateRecurringResponse struct {
	Period    string `json:"period"`
	Generated int    `json:"generated"`
	Skipped   int    `json:"skipped"`
}
