package repository

import (
	"context"
	"time"

	"github.com/barberpro/barber-analytics-api/internal/domain/entity"
)

// ExpenseFilter filtros de listagem de despesas (por vencimento).
type ExpenseFilter struct {
	Status   string
	Category string
	From, To *time.Time
	Limit  int
	Offset int
}

// ExpenseRepository port de persistência de despesas.
type ExpenseRepository interface {
	Create(ctx context.Context, values map[string]any) (*entity.Expense, error)
	FindByID(ctx context.Context, unitID, id string) (*entity.Expense, error)
	Update(ctx context.Context, unitID, id string, values map[string]any) (*entity.Expense, error)
	SoftDelete(ctx context.Context, unitID, id string) error
	List(ctx context.Context, unitID string, f ExpenseFilter) ([]*entity.Expense, int, error)
	// ListOpenDue despesas PENDENTE ou ATRASADO com vencimento entre from e to.
	ListOpenDue(ctx context.Context, unitID string, from, to time.Time) ([]*entity.Expense, error)
	// MarkPaid quita a despesa só se ainda estiver PENDENTE ou ATRASADO; caso contrário ErrConflict.
	MarkPaid(ctx context.Context, unitID, id string, paidAt time.Time, method string) error
	// MarkOverdue muda para ATRASADO as despesas pendentes vencidas antes de today (todas as unidades).
	MarkOverdue(ctx context.Context, today time.Time) (int64, error)
}

// RecurringExpenseRepository port de persistência dos modelos de despesa recorrente.
type RecurringExpenseRepository interface {
	Create(ctx context.Context, values map[string]any) (*entity.RecurringExpense, error)
	FindByID(ctx context.Context, unitID, id string) (*entity.RecurringExpense, error)
	Update(ctx context.Context, unitID, id string, values map[string]any) (*entity.RecurringExpense, error)
	Deactivate(ctx context.Context, unitID, id string) error
	List(ctx context.Context, unitID string) ([]*entity.RecurringExpense, error)
	// ListDue modelos ativos que ainda não geraram a despesa do período (unitID vazio = todas as unidades).
	ListDue(ctx context.Context, unitID, period string) ([]*entity.RecurringExpense, error)
	// MarkGenerated grava o período gerado; devolve false se outro processo já o fez.
	MarkGenerated(ctx context.Context, id, period string) (bool, error)
}
