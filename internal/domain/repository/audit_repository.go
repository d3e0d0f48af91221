package repository

import (
	"context"
	"time"

	"github.com/barberpro/barber-analytics-api/internal/domain/entity"
)

// AuditFilter filtros da consulta de auditoria.
type AuditFilter struct {
	Entity string
	UserID string
	From, To *time.Time
	Limit  int
	Offset int
}

// AuditRepository port de persistência da trilha de auditoria.
type AuditRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
	List(ctx context.Context, unitID string, f AuditFilter) ([]*entity.AuditLog, int, error)
}
