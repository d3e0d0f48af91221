package postgres

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/barberpro/barber-analytics-api/internal/domain"
	"github.com/barberpro/barber-analytics-api/internal/domain/entity"
	"github.com/barberpro/barber-analytics-api/internal/domain/repository"
)

var (
	_ repository.ExpenseRepository          = (*ExpenseRepo)(nil)
	_ repository.RecurringExpenseRepository = (*RecurringExpenseRepo)(nil)
)

const expenseColumns = "id, unit_id, description, category, expense_type, value, competence_date, due_date, " +
	"payment_date, status, payment_method, supplier_id, recurring_expense_id, notes, created_by, created_at, updated_at"

// ExpenseRepo despesas (contas a pagar).
type ExpenseRepo struct {
	base
}

// NewExpenseRepository constrói o adaptador de despesas.
func NewExpenseRepository(q Querier, timeout time.Duration) *ExpenseRepo {
	return &ExpenseRepo{base: newBase(q, timeout)}
}

func scanExpense(s scanner) (*entity.Expense, error) {
	var e entity.Expense
	err := s.Scan(
		&e.ID, &e.UnitID, &e.Description, &e.Category, &e.ExpenseType, &e.Value, &e.CompetenceDate, &e.DueDate,
		&e.PaymentDate, &e.Status, &e.PaymentMethod, &e.SupplierID, &e.RecurringExpenseID, &e.Notes, &e.CreatedBy,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *ExpenseRepo) one(ctx context.Context, op string, qb squirrel.Sqlizer) (*entity.Expense, error) {
	var e *entity.Expense
	err := r.queryRow(ctx, op, qb, func(s scanner) (err error) {
		e, err = scanExpense(s)
		return err
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *ExpenseRepo) many(ctx context.Context, op string, qb squirrel.Sqlizer) ([]*entity.Expense, error) {
	list := make([]*entity.Expense, 0)
	err := r.queryRows(ctx, op, qb, func(s scanner) error {
		e, err := scanExpense(s)
		if err != nil {
			return err
		}
		list = append(list, e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// Create insere a despesa.
func (r *ExpenseRepo) Create(ctx context.Context, values map[string]any) (*entity.Expense, error) {
	return r.one(ctx, "insert expense", psql.Insert("expenses").SetMap(values).Suffix("RETURNING "+expenseColumns))
}

// FindByID busca uma despesa não excluída.
func (r *ExpenseRepo) FindByID(ctx context.Context, unitID, id string) (*entity.Expense, error) {
	qb := psql.Select(expenseColumns).From("expenses").
		Where(squirrel.Eq{"id": id, "unit_id": unitID}).
		Where("deleted_at IS NULL")
	return r.one(ctx, "find expense", qb)
}

// Update altera apenas as colunas informadas.
func (r *ExpenseRepo) Update(ctx context.Context, unitID, id string, values map[string]any) (*entity.Expense, error) {
	qb := psql.Update("expenses").SetMap(values).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id, "unit_id": unitID}).
		Where("deleted_at IS NULL").
		Suffix("RETURNING " + expenseColumns)
	return r.one(ctx, "update expense", qb)
}

// MarkPaid UPDATE condicionado ao status em aberto; zero linhas vira conflito.
func (r *ExpenseRepo) MarkPaid(ctx context.Context, unitID, id string, paidAt time.Time, method string) error {
	qb := psql.Update("expenses").
		Set("status", entity.ExpensePago).
		Set("payment_date", paidAt).
		Set("payment_method", method).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id, "unit_id": unitID, "status": []string{entity.ExpensePendente, entity.ExpenseAtrasado}}).
		Where("deleted_at IS NULL")
	n, err := r.exec(ctx, "mark expense paid", qb)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.Conflict("Despesa não está mais em aberto.")
	}
	return nil
}

// SoftDelete marca deleted_at.
func (r *ExpenseRepo) SoftDelete(ctx context.Context, unitID, id string) error {
	qb := psql.Update("expenses").
		Set("deleted_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id, "unit_id": unitID}).
		Where("deleted_at IS NULL")
	return r.execOne(ctx, "delete expense", qb)
}

func expenseWhere(qb squirrel.SelectBuilder, unitID string, f repository.ExpenseFilter) squirrel.SelectBuilder {
	qb = qb.From("expenses").Where(squirrel.Eq{"unit_id": unitID}).Where("deleted_at IS NULL")
	if f.Status != "" {
		qb = qb.Where(squirrel.Eq{"status": f.Status})
	}
	if f.Category != "" {
		qb = qb.Where(squirrel.Eq{"category": f.Category})
	}
	if f.From != nil {
		qb = qb.Where(squirrel.GtOrEq{"due_date": *f.From})
	}
	if f.To != nil {
		qb = qb.Where(squirrel.LtOrEq{"due_date": *f.To})
	}
	return qb
}

// List despesas por vencimento.
func (r *ExpenseRepo) List(ctx context.Context, unitID string, f repository.ExpenseFilter) ([]*entity.Expense, int, error) {
	total, err := r.count(ctx, "count expenses", expenseWhere(psql.Select("COUNT(*)"), unitID, f))
	if err != nil {
		return nil, 0, err
	}
	qb := page(expenseWhere(psql.Select(expenseColumns), unitID, f).OrderBy("due_date", "description"), f.Limit, f.Offset)
	list, err := r.many(ctx, "list expenses", qb)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListOpenDue despesas em aberto com vencimento na janela.
func (r *ExpenseRepo) ListOpenDue(ctx context.Context, unitID string, from, to time.Time) ([]*entity.Expense, error) {
	qb := psql.Select(expenseColumns).From("expenses").
		Where(squirrel.Eq{"unit_id": unitID, "status": []string{entity.ExpensePendente, entity.ExpenseAtrasado}}).
		Where("deleted_at IS NULL").
		Where(squirrel.GtOrEq{"due_date": from}).
		Where(squirrel.LtOrEq{"due_date": to}).
		OrderBy("due_date")
	return r.many(ctx, "list open expenses", qb)
}

// MarkOverdue muda PENDENTE vencidas para ATRASADO.
func (r *ExpenseRepo) MarkOverdue(ctx context.Context, today time.Time) (int64, error) {
	qb := psql.Update("expenses").
		Set("status", entity.ExpenseAtrasado).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"status": entity.ExpensePendente}).
		Where(squirrel.Lt{"due_date": today}).
		Where("deleted_at IS NULL")
	return r.exec(ctx, "mark overdue expenses", qb)
}

const recurringColumns = "id, unit_id, description, category, value, day_of_month, supplier_id, is_active, " +
	"last_generated_period, created_by, created_at, updated_at"

// RecurringExpenseRepo modelos de despesa recorrente.
type RecurringExpenseRepo struct {
	base
}

// NewRecurringExpenseRepository constrói o adaptador de modelos recorrentes.
func NewRecurringExpenseRepository(q Querier, timeout time.Duration) *RecurringExpenseRepo {
	return &RecurringExpenseRepo{base: newBase(q, timeout)}
}

func scanRecurring(s scanner) (*entity.RecurringExpense, error) {
	var re entity.RecurringExpense
	err := s.Scan(
		&re.ID, &re.UnitID, &re.Description, &re.Category, &re.Value, &re.DayOfMonth, &re.SupplierID, &re.IsActive,
		&re.LastGeneratedPeriod, &re.CreatedBy, &re.CreatedAt, &re.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &re, nil
}

func (r *RecurringExpenseRepo) one(ctx context.Context, op string, qb squirrel.Sqlizer) (*entity.RecurringExpense, error) {
	var re *entity.RecurringExpense
	err := r.queryRow(ctx, op, qb, func(s scanner) (err error) {
		re, err = scanRecurring(s)
		return err
	})
	if err != nil {
		return nil, err
	}
	return re, nil
}

func (r *RecurringExpenseRepo) many(ctx context.Context, op string, qb squirrel.Sqlizer) ([]*entity.RecurringExpense, error) {
	list := make([]*entity.RecurringExpense, 0)
	err := r.queryRows(ctx, op, qb, func(s scanner) error {
		re, err := scanRecurring(s)
		if err != nil {
			return err
		}
		list = append(list, re)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// Create insere o modelo.
func (r *RecurringExpenseRepo) Create(ctx context.Context, values map[string]any) (*entity.RecurringExpense, error) {
	qb := psql.Insert("recurring_expenses").SetMap(values).Suffix("RETURNING " + recurringColumns)
	return r.one(ctx, "insert recurring expense", qb)
}

// FindByID busca um modelo da unidade.
func (r *RecurringExpenseRepo) FindByID(ctx context.Context, unitID, id string) (*entity.RecurringExpense, error) {
	qb := psql.Select(recurringColumns).From("recurring_expenses").Where(squirrel.Eq{"id": id, "unit_id": unitID})
	return r.one(ctx, "find recurring expense", qb)
}

// Update altera apenas as colunas informadas.
func (r *RecurringExpenseRepo) Update(ctx context.Context, unitID, id string, values map[string]any) (*entity.RecurringExpense, error) {
	qb := psql.Update("recurring_expenses").SetMap(values).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id, "unit_id": unitID}).
		Suffix("RETURNING " + recurringColumns)
	return r.one(ctx, "update recurring expense", qb)
}

// Deactivate desliga o modelo; despesas já geradas ficam.
func (r *RecurringExpenseRepo) Deactivate(ctx context.Context, unitID, id string) error {
	qb := psql.Update("recurring_expenses").
		Set("is_active", false).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id, "unit_id": unitID})
	return r.execOne(ctx, "deactivate recurring expense", qb)
}

// List modelos da unidade.
func (r *RecurringExpenseRepo) List(ctx context.Context, unitID string) ([]*entity.RecurringExpense, error) {
	qb := psql.Select(recurringColumns).From("recurring_expenses").
		Where(squirrel.Eq{"unit_id": unitID}).
		OrderBy("day_of_month", "description")
	return r.many(ctx, "list recurring expenses", qb)
}

// ListDue modelos ativos pendentes de geração no período.
func (r *RecurringExpenseRepo) ListDue(ctx context.Context, unitID, period string) ([]*entity.RecurringExpense, error) {
	qb := psql.Select(recurringColumns).From("recurring_expenses").
		Where(squirrel.Eq{"is_active": true}).
		Where(squirrel.Or{squirrel.Eq{"last_generated_period": nil}, squirrel.Lt{"last_generated_period": period}}).
		OrderBy("unit_id", "day_of_month")
	if unitID != "" {
		qb = qb.Where(squirrel.Eq{"unit_id": unitID})
	}
	return r.many(ctx, "list due recurring expenses", qb)
}

// MarkGenerated grava o período; a condição impede geração dupla em execuções concorrentes.
func (r *RecurringExpenseRepo) MarkGenerated(ctx context.Context, id, period string) (bool, error) {
	qb := psql.Update("recurring_expenses").
		Set("last_generated_period", period).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Or{squirrel.Eq{"last_generated_period": nil}, squirrel.Lt{"last_generated_period": period}})
	n, err := r.exec(ctx, "mark recurring generated", qb)
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
