package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de meta.
const (
	GoalFaturamento  = "FATURAMENTO"
	GoalAtendimentos = "ATENDIMENTOS"
	GoalTicketMedio  = "TICKET_MEDIO"
	GoalProdutos     = "PRODUTOS"
)

// Goal meta mensal da unidade ou de um profissional.
type Goal struct {
	ID             string
	UnitID         string
	ProfessionalID *string
	GoalType       string
	TargetValue    decimal.Decimal
	PeriodStart    time.Time
	PeriodEnd      time.Time
	CreatedBy      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
