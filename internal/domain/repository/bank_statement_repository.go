package repository

import (
	"context"
	"time"

	"github.com/barberpro/barber-analytics-api/internal/domain/entity"
)

// StatementFilter filtros de listagem de extrato.
type StatementFilter struct {
	Status string
	Type   string
	From, To *time.Time
	Limit  int
	Offset int
}

// BankStatementRepository port de persistência de linhas de extrato.
type BankStatementRepository interface {
	// Insert grava a linha; devolve false quando o external_id já existe na unidade.
	Insert(ctx context.Context, values map[string]any) (bool, error)
	FindByID(ctx context.Context, unitID, id string) (*entity.BankStatement, error)
	List(ctx context.Context, unitID string, f StatementFilter) ([]*entity.BankStatement, int, error)
	ListPendingDebits(ctx context.Context, unitID string) ([]*entity.BankStatement, error)
	MarkReconciled(ctx context.Context, unitID, id, expenseID string) error
	SetStatus(ctx context.Context, unitID, id, status string) error
}
