package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OpenCashRegisterDTO entrada para abrir o caixa.
type OpenCashRegisterDTO struct {
	OpeningBalance *decimal.Decimal `json:"opening_balance" validate:"required,gte=0"`
	Notes          *string          `json:"notes" validate:"omitempty,max=500"`
}

// NewOpenCashRegisterDTO monta o DTO a partir do corpo cru.
func NewOpenCashRegisterDTO(raw map[string]any) (*OpenCashRegisterDTO, error) {
	var d OpenCashRegisterDTO
	if err := decode(raw, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Validate aplica as regras de abertura.
func (d *OpenCashRegisterDTO) Validate() ValidationResult {
	return check(d).result()
}

// ToObject devolve apenas colunas permitidas com valor definido.
func (d *OpenCashRegisterDTO) ToObject() map[string]any {
	return pick([]string{"opening_balance", "notes"}, map[string]any{
		"opening_balance": d.OpeningBalance,
		"notes":           d.Notes,
	})
}

// CloseCashRegisterDTO entrada para fechar o caixa com o valor contado.
type CloseCashRegisterDTO struct {
	ClosingBalance *decimal.Decimal `json:"closing_balance" validate:"required,gte=0"`
	Notes          *string          `json:"notes" validate:"omitempty,max=500"`
}

// NewCloseCashRegisterDTO monta o DTO a partir do corpo cru.
func NewCloseCashRegisterDTO(raw map[string]any) (*CloseCashRegisterDTO, error) {
	var d CloseCashRegisterDTO
	if err := decode(raw, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Validate aplica as regras de fechamento.
func (d *CloseCashRegisterDTO) Validate() ValidationResult {
	return check(d).result()
}

// CashMovementDTO suprimento ou sangria manual.
type CashMovementDTO struct {
	Type        string           `json:"type" validate:"required,oneof=SUPRIMENTO SANGRIA"`
	Amount      *decimal.Decimal `json:"amount" validate:"required,gt=0"`
	Description string           `json:"description" validate:"required,min=2,max=200"`
}

// NewCashMovementDTO monta o DTO a partir do corpo cru.
func NewCashMovementDTO(raw map[string]any) (*CashMovementDTO, error) {
	var d CashMovementDTO
	if err := decode(raw, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Validate aplica as regras da movimentação de caixa.
func (d *CashMovementDTO) Validate() ValidationResult {
	return check(d).result()
}

// ToObject devolve apenas colunas permitidas com valor definido.
func (d *CashMovementDTO) ToObject() map[string]any {
	return pick([]string{"type", "amount", "description"}, map[string]any{
		"type":        d.Type,
		"amount":      d.Amount,
		"description": d.Description,
	})
}

// CashMovementResponse saída de uma movimentação de caixa.
type CashMovementResponse struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	OrderID     *string         `json:"order_id,omitempty"`
	PerformedBy string          `json:"performed_by"`
	CreatedAt   time.Time       `json:"created_at"`
}

// CashRegisterResponse saída de um caixa com o resumo das movimentações.
type CashRegisterResponse struct {
	ID              string                 `json:"id"`
	UnitID          string                 `json:"unit_id"`
	Status          string                 `json:"status"`
	OpeningBalance  decimal.Decimal        `json:"opening_balance"`
	ClosingBalance  *decimal.Decimal       `json:"closing_balance,omitempty"`
	ExpectedBalance decimal.Decimal        `json:"expected_balance"`
	Difference      *decimal.Decimal       `json:"difference,omitempty"`
	Sales           decimal.Decimal        `json:"sales"`
	Suprimentos     decimal.Decimal        `json:"suprimentos"`
	Sangrias        decimal.Decimal        `json:"sangrias"`
	OpenedBy        string                 `json:"opened_by"`
	ClosedBy        *string                `json:"closed_by,omitempty"`
	OpenedAt        time.Time              `json:"opened_at"`
	ClosedAt        *time.Time             `json:"closed_at,omitempty"`
	Notes           *string                `json:"notes,omitempty"`
	Movements       []CashMovementResponse `json:"movements,omitempty"`
}

// CashRegisterListResponse lista paginada de caixas.
type CashRegisterListResponse struct {
	Items []CashRegisterResponse `json:"items"`
	Page  PageResponse           `json:"page"`
}
