package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// GoalColumns colunas de goals graváveis pela API.
var GoalColumns = []string{"unit_id", "professional_id", "goal_type", "target_value", "period_start", "period_end"}

// CreateGoalDTO entrada para cadastrar uma meta.
type CreateGoalDTO struct {
	UnitID         string           `json:"unit_id" validate:"required,uuid"`
	ProfessionalID *string          `json:"professional_id" validate:"omitempty,uuid"`
	GoalType       string           `json:"goal_type" validate:"required,oneof=FATURAMENTO ATENDIMENTOS TICKET_MEDIO PRODUTOS"`
	TargetValue    *decimal.Decimal `json:"target_value" validate:"required,gt=0"`
	PeriodStart    *time.Time       `json:"period_start" validate:"required"`
	PeriodEnd      *time.Time       `json:"period_end" validate:"required"`
}

// NewCreateGoalDTO monta o DTO a partir do corpo cru.
func NewCreateGoalDTO(raw map[string]any) (*CreateGoalDTO, error) {
	var d CreateGoalDTO
	if err := decode(raw, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Validate aplica as regras de meta; o fim do período precisa ser posterior ao início.
func (d *CreateGoalDTO) Validate() ValidationResult {
	c := check(d)
	if c.ok("period_start", "period_end") && !d.PeriodEnd.After(*d.PeriodStart) {
		c.add("period_end", "period_end deve ser posterior a period_start")
	}
	return c.result()
}

// ToObject devolve apenas colunas permitidas com valor definido.
func (d *CreateGoalDTO) ToObject() map[string]any {
	return pick(GoalColumns, map[string]any{
		"unit_id":         d.UnitID,
		"professional_id": d.ProfessionalID,
		"goal_type":       d.GoalType,
		"target_value":    d.TargetValue,
		"period_start":    d.PeriodStart,
		"period_end":      d.PeriodEnd,
	})
}

// GoalResponse saída de uma meta.
type GoalResponse struct {
	ID             string          `json:"id"`
	UnitID         string          `json:"unit_id"`
	ProfessionalID *string         `json:"professional_id,omitempty"`
	GoalType       string          `json:"goal_type"`
	TargetValue    decimal.Decimal `json:"target_value"`
	PeriodStart    time.Time       `json:"period_start"`
	PeriodEnd      time.Time       `json:"period_end"`
	CreatedAt      time.Time       `json:"created_at"`
}
