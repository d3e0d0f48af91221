package dto

import "time"

// CreateUnitRequest entrada para cadastrar uma unidade (barbearia).
type CreateUnitRequest struct {
	Name    string   `json:"name" validate:"required,min=2,max=150"`
	CNPJ    string   `json:"cnpj" validate:"required,cnpj"`
	Address string   `json:"address" validate:"omitempty,max=200"`
	Phone   string   `json:"phone" validate:"omitempty,phone_br"`
	Email   string   `json:"email" validate:"omitempty,email"`
	Modules []string `json:"modules" validate:"omitempty,dive,oneof=estoque financeiro atendimento"`
}

// UnitResponse saída de uma unidade.
type UnitResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CNPJ      string    `json:"cnpj"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Status    string    `json:"status"`
	Modules   []string  `json:"modules"`
	CreatedAt time.Time `json:"created_at"`
}

// UnitListResponse lista paginada de unidades.
type UnitListResponse struct {
	Items []UnitResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// AuditLogResponse saída de um registro de auditoria.
type AuditLogResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Entity    string    `json:"entity"`
	EntityID  *string   `json:"entity_id,omitempty"`
	Action    string    `json:"action"`
	Success   bool      `json:"success"`
	ErrorKind *string   `json:"error_kind,omitempty"`
	Before    any       `json:"before,omitempty"`
	After     any       `json:"after,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// AuditLogFilter filtros da consulta de auditoria.
type AuditLogFilter struct {
	Entity string
	UserID string
	From   *time.Time
	To     *time.Time
	Page   PageRequest
}

// AuditLogListResponse lista paginada de auditoria.
type AuditLogListResponse struct {
	Items []AuditLogResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
