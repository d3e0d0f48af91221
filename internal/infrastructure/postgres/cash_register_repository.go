package postgres

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/barberpro/barber-analytics-api/internal/domain/entity"
	"github.com/barberpro/barber-analytics-api/internal/domain/repository"
)

var _ repository.CashRegisterRepository = (*CashRegisterRepo)(nil)

const (
	registerColumns = "id, unit_id, status, opening_balance, closing_balance, expected_balance, difference, " +
		"opened_by, closed_by, opened_at, closed_at, notes"
	cashMovementColumns = "id, cash_register_id, unit_id, type, amount, description, order_id, performed_by, created_at"
)

// CashRegisterRepo caixas e movimentações de caixa.
// O índice único parcial cash_registers_one_open_per_unit garante um caixa aberto por unidade.
type CashRegisterRepo struct {
	base
}

// NewCashRegisterRepository constrói o adaptador de caixa.
func NewCashRegisterRepository(q Querier, timeout time.Duration) *CashRegisterRepo {
	return &CashRegisterRepo{base: newBase(q, timeout)}
}

func scanRegister(s scanner) (*entity.CashRegister, error) {
	var c entity.CashRegister
	err := s.Scan(
		&c.ID, &c.UnitID, &c.Status, &c.OpeningBalance, &c.ClosingBalance, &c.ExpectedBalance, &c.Difference,
		&c.OpenedBy, &c.ClosedBy, &c.OpenedAt, &c.ClosedAt, &c.Notes,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func scanCashMovement(s scanner) (*entity.CashMovement, error) {
	var m entity.CashMovement
	err := s.Scan(&m.ID, &m.CashRegisterID, &m.UnitID, &m.Type, &m.Amount, &m.Description, &m.OrderID, &m.PerformedBy, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *CashRegisterRepo) one(ctx context.Context, op string, qb squirrel.Sqlizer) (*entity.CashRegister, error) {
	var c *entity.CashRegister
	err := r.queryRow(ctx, op, qb, func(s scanner) (err error) {
		c, err = scanRegister(s)
		return err
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Open abre um caixa; segunda abertura na unidade viola o índice único (ErrDuplicate).
func (r *CashRegisterRepo) Open(ctx context.Context, values map[string]any) (*entity.CashRegister, error) {
	qb := psql.Insert("cash_registers").SetMap(values).Suffix("RETURNING " + registerColumns)
	return r.one(ctx, "open cash register", qb)
}

func selectRegister(where squirrel.Eq) squirrel.SelectBuilder {
	return psql.Select(registerColumns).From("cash_registers").Where(where)
}

// FindByID busca um caixa da unidade.
func (r *CashRegisterRepo) FindByID(ctx context.Context, unitID, id string) (*entity.CashRegister, error) {
	return r.one(ctx, "find cash register", selectRegister(squirrel.Eq{"id": id, "unit_id": unitID}))
}

// FindByIDForUpdate igual a FindByID, com a linha travada até o fim da transação.
func (r *CashRegisterRepo) FindByIDForUpdate(ctx context.Context, unitID, id string) (*entity.CashRegister, error) {
	qb := selectRegister(squirrel.Eq{"id": id, "unit_id": unitID}).Suffix("FOR UPDATE")
	return r.one(ctx, "lock cash register", qb)
}

// FindOpen caixa aberto da unidade.
func (r *CashRegisterRepo) FindOpen(ctx context.Context, unitID string) (*entity.CashRegister, error) {
	return r.one(ctx, "find open cash register", selectRegister(squirrel.Eq{"unit_id": unitID, "status": entity.CashOpen}))
}

// FindOpenForUpdate caixa aberto travado: sangrias, fechamento e vendas em dinheiro passam por ele em fila.
func (r *CashRegisterRepo) FindOpenForUpdate(ctx context.Context, unitID string) (*entity.CashRegister, error) {
	qb := selectRegister(squirrel.Eq{"unit_id": unitID, "status": entity.CashOpen}).Suffix("FOR UPDATE")
	return r.one(ctx, "lock open cash register", qb)
}

// Close grava o fechamento somente se o caixa ainda estiver aberto.
func (r *CashRegisterRepo) Close(ctx context.Context, unitID, id string, values map[string]any) (*entity.CashRegister, error) {
	qb := psql.Update("cash_registers").SetMap(values).
		Set("status", entity.CashClosed).
		Set("closed_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id, "unit_id": unitID, "status": entity.CashOpen}).
		Suffix("RETURNING " + registerColumns)
	return r.one(ctx, "close cash register", qb)
}

// List caixas mais recentes primeiro.
func (r *CashRegisterRepo) List(ctx context.Context, unitID string, limit, offset int) ([]*entity.CashRegister, int, error) {
	where := squirrel.Eq{"unit_id": unitID}
	total, err := r.count(ctx, "count cash registers", psql.Select("COUNT(*)").From("cash_registers").Where(where))
	if err != nil {
		return nil, 0, err
	}
	qb := page(psql.Select(registerColumns).From("cash_registers").Where(where).OrderBy("opened_at DESC"), limit, offset)
	list := make([]*entity.CashRegister, 0)
	err = r.queryRows(ctx, "list cash registers", qb, func(s scanner) error {
		c, err := scanRegister(s)
		if err != nil {
			return err
		}
		list = append(list, c)
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// AddMovement registra suprimento, sangria ou venda em dinheiro.
func (r *CashRegisterRepo) AddMovement(ctx context.Context, values map[string]any) (*entity.CashMovement, error) {
	var m *entity.CashMovement
	qb := psql.Insert("cash_movements").SetMap(values).Suffix("RETURNING " + cashMovementColumns)
	err := r.queryRow(ctx, "insert cash movement", qb, func(s scanner) (err error) {
		m, err = scanCashMovement(s)
		return err
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// ListMovements movimentações do caixa em ordem cronológica.
func (r *CashRegisterRepo) ListMovements(ctx context.Context, unitID, registerID string) ([]*entity.CashMovement, error) {
	qb := psql.Select(cashMovementColumns).From("cash_movements").
		Where(squirrel.Eq{"unit_id": unitID, "cash_register_id": registerID}).
		OrderBy("created_at")
	list := make([]*entity.CashMovement, 0)
	err := r.queryRows(ctx, "list cash movements", qb, func(s scanner) error {
		m, err := scanCashMovement(s)
		if err != nil {
			return err
		}
		list = append(list, m)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}
