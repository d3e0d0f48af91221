package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProfessionalColumns colunas de professionals graváveis pela API.
var ProfessionalColumns = []string{
	"unit_id", "user_id", "name", "email", "phone", "cpf", "specialty", "commission_rate", "is_active",
}

// CreateProfessionalDTO entrada para cadastrar um profissional.
type CreateProfessionalDTO struct {
	UnitID         string           `json:"unit_id" validate:"required,uuid"`
	UserID         *string          `json:"user_id" validate:"omitempty,uuid"`
	Name           string           `json:"name" validate:"required,min=2,max=120"`
	Email          *string          `json:"email" validate:"omitempty,email"`
	Phone          *string          `json:"phone" validate:"omitempty,phone_br"`
	CPF            *string          `json:"cpf" validate:"omitempty,cpf"`
	Specialty      *string          `json:"specialty" validate:"omitempty,max=80"`
	CommissionRate *decimal.Decimal `json:"commission_rate" validate:"required,gte=0,lte=100"`
	IsActive       *bool            `json:"is_active"`
}

// NewCreateProfessionalDTO monta o DTO a partir do corpo cru.
func NewCreateProfessionalDTO(raw map[string]any) (*CreateProfessionalDTO, error) {
	var d CreateProfessionalDTO
	if err := decode(raw, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Validate aplica as regras de profissional.
func (d *CreateProfessionalDTO) Validate() ValidationResult {
	return check(d).result()
}

// ToObject devolve apenas colunas permitidas com valor definido.
func (d *CreateProfessionalDTO) ToObject() map[string]any {
	return pick(ProfessionalColumns, map[string]any{
		"unit_id":         d.UnitID,
		"user_id":         d.UserID,
		"name":            d.Name,
		"email":           d.Email,
		"phone":           digitsPtr(d.Phone),
		"cpf":             digitsPtr(d.CPF),
		"specialty":       d.Specialty,
		"commission_rate": d.CommissionRate,
		"is_active":       d.IsActive,
	})
}

// UpdateProfessionalDTO atualização parcial de profissional.
type UpdateProfessionalDTO struct {
	UserID         *string          `json:"user_id" validate:"omitempty,uuid"`
	Name           *string          `json:"name" validate:"omitempty,min=2,max=120"`
	Email          *string          `json:"email" validate:"omitempty,email"`
	Phone          *string          `json:"phone" validate:"omitempty,phone_br"`
	CPF            *string          `json:"cpf" validate:"omitempty,cpf"`
	Specialty      *string          `json:"specialty" validate:"omitempty,max=80"`
	CommissionRate *decimal.Decimal `json:"commission_rate" validate:"omitempty,gte=0,lte=100"`
	IsActive       *bool            `json:"is_active"`
}

// NewUpdateProfessionalDTO monta o DTO a partir do corpo cru.
func NewUpdateProfessionalDTO(raw map[string]any) (*UpdateProfessionalDTO, error) {
	var d UpdateProfessionalDTO
	if err := decode(raw, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Validate aplica as regras de atualização.
func (d *UpdateProfessionalDTO) Validate() ValidationResult {
	c := check(d)
	if len(d.ToObject()) == 0 {
		c.add("body", "nenhum campo para atualizar")
	}
	return c.result()
}

// ToObject devolve apenas colunas permitidas com valor definido.
func (d *UpdateProfessionalDTO) ToObject() map[string]any {
	return pick(ProfessionalColumns[1:], map[string]any{
		"user_id":         d.UserID,
		"name":            d.Name,
		"email":           d.Email,
		"phone":           digitsPtr(d.Phone),
		"cpf":             digitsPtr(d.CPF),
		"specialty":       d.Specialty,
		"commission_rate": d.CommissionRate,
		"is_active":       d.IsActive,
	})
}

// ProfessionalResponse saída de um profissional.
type ProfessionalResponse struct {
	ID             string          `json:"id"`
	UnitID         string          `json:"unit_id"`
	UserID         *string         `json:"user_id,omitempty"`
	Name           string          `json:"name"`
	Email          *string         `json:"email,omitempty"`
	Phone          *string         `json:"phone,omitempty"`
	CPF            *string         `json:"cpf,omitempty"`
	Specialty      *string         `json:"specialty,omitempty"`
	CommissionRate decimal.Decimal `json:"commission_rate"`
	IsActive       bool            `json:"is_active"`
	CreatedAt      time.Time       `json:"created_at"`
}

// QueueEntryResponse posição na lista da vez.
type QueueEntryResponse struct {
	ProfessionalID string     `json:"professional_id"`
	Name           string     `json:"name"`
	Position       int        `json:"position"`
	Status         string     `json:"status"`
	ServedCount    int        `json:"served_count"`
	LastServedAt   *time.Time `json:"last_served_at,omitempty"`
	JoinedAt       time.Time  `json:"joined_at"`
}
