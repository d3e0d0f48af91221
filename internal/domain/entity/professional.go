package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status na lista da vez.
const (
	QueueDisponivel = "DISPONIVEL"
	QueueAtendendo  = "ATENDENDO"
	QueuePausado    = "PAUSADO"
)

// Professional profissional (barbeiro) da unidade.
type Professional struct {
	ID             string
	UnitID         string
	UserID         *string
	Name           string
	Email          *string
	Phone          *string
	CPF            *string
	Specialty      *string
	CommissionRate decimal.Decimal
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// QueueEntry posição de um profissional na lista da vez.
type QueueEntry struct {
	UnitID         string
	ProfessionalID string
	Name           string
	Position       int
	Status         string
	ServedCount    int
	LastServedAt   *time.Time
	JoinedAt       time.Time
}
