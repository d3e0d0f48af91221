package postgres

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/barberpro/barber-analytics-api/internal/domain/entity"
	"github.com/barberpro/barber-analytics-api/internal/domain/repository"
)

var _ repository.BankStatementRepository = (*BankStatementRepo)(nil)

const statementColumns = "id, unit_id, bank_account, transaction_date, description, amount, type, external_id, " +
	"status, reconciled_expense_id, imported_by, created_at"

// BankStatementRepo linhas de extrato importadas.
type BankStatementRepo struct {
	base
}

// NewBankStatementRepository constrói o adaptador de extrato.
func NewBankStatementRepository(q Querier, timeout time.Duration) *BankStatementRepo {
	return &BankStatementRepo{base: newBase(q, timeout)}
}

func scanStatement(s scanner) (*entity.BankStatement, error) {
	var b entity.BankStatement
	err := s.Scan(
		&b.ID, &b.UnitID, &b.BankAccount, &b.TransactionDate, &b.Description, &b.Amount, &b.Type, &b.ExternalID,
		&b.Status, &b.ReconciledExpenseID, &b.ImportedBy, &b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BankStatementRepo) many(ctx context.Context, op string, qb squirrel.Sqlizer) ([]*entity.BankStatement, error) {
	list := make([]*entity.BankStatement, 0)
	err := r.queryRows(ctx, op, qb, func(s scanner) error {
		b, err := scanStatement(s)
		if err != nil {
			return err
		}
		list = append(list, b)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// Insert grava a linha ignorando external_id repetido na unidade.
func (r *BankStatementRepo) Insert(ctx context.Context, values map[string]any) (bool, error) {
	qb := psql.Insert("bank_statements").SetMap(values).Suffix("ON CONFLICT (unit_id, external_id) DO NOTHING")
	n, err := r.exec(ctx, "insert bank statement", qb)
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// FindByID busca uma linha da unidade.
func (r *BankStatementRepo) FindByID(ctx context.Context, unitID, id string) (*entity.BankStatement, error) {
	var b *entity.BankStatement
	qb := psql.Select(statementColumns).From("bank_statements").Where(squirrel.Eq{"id": id, "unit_id": unitID})
	err := r.queryRow(ctx, "find bank statement", qb, func(s scanner) (err error) {
		b, err = scanStatement(s)
		return err
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

func statementWhere(qb squirrel.SelectBuilder, unitID string, f repository.StatementFilter) squirrel.SelectBuilder {
	qb = qb.From("bank_statements").Where(squirrel.Eq{"unit_id": unitID})
	if f.Status != "" {
		qb = qb.Where(squirrel.Eq{"status": f.Status})
	}
	if f.Type != "" {
		qb = qb.Where(squirrel.Eq{"type": f.Type})
	}
	if f.From != nil {
		qb = qb.Where(squirrel.GtOrEq{"transaction_date": *f.From})
	}
	if f.To != nil {
		qb = qb.Where(squirrel.LtOrEq{"transaction_date": *f.To})
	}
	return qb
}

// List extrato por data de transação (mais recente primeiro).
func (r *BankStatementRepo) List(ctx context.Context, unitID string, f repository.StatementFilter) ([]*entity.BankStatement, int, error) {
	total, err := r.count(ctx, "count bank statements", statementWhere(psql.Select("COUNT(*)"), unitID, f))
	if err != nil {
		return nil, 0, err
	}
	qb := page(statementWhere(psql.Select(statementColumns), unitID, f).OrderBy("transaction_date DESC", "created_at DESC"), f.Limit, f.Offset)
	list, err := r.many(ctx, "list bank statements", qb)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListPendingDebits débitos ainda não conciliados.
func (r *BankStatementRepo) ListPendingDebits(ctx context.Context, unitID string) ([]*entity.BankStatement, error) {
	qb := psql.Select(statementColumns).From("bank_statements").
		Where(squirrel.Eq{"unit_id": unitID, "type": entity.StatementDebito, "status": entity.StatementPendente}).
		OrderBy("transaction_date")
	return r.many(ctx, "list pending debits", qb)
}

// MarkReconciled vincula a linha à despesa.
func (r *BankStatementRepo) MarkReconciled(ctx context.Context, unitID, id, expenseID string) error {
	qb := psql.Update("bank_statements").
		Set("status", entity.StatementConciliado).
		Set("reconciled_expense_id", expenseID).
		Where(squirrel.Eq{"id": id, "unit_id": unitID, "status": entity.StatementPendente})
	return r.execOne(ctx, "reconcile bank statement", qb)
}

// SetStatus altera o status (ex.: IGNORADO).
func (r *BankStatementRepo) SetStatus(ctx context.Context, unitID, id, status string) error {
	qb := psql.Update("bank_statements").Set("status", status).Where(squirrel.Eq{"id": id, "unit_id": unitID})
	return r.execOne(ctx, "update bank statement status", qb)
}
