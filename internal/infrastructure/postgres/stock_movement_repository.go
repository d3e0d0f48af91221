package postgres

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/barberpro/barber-analytics-api/internal/domain/entity"
	"github.com/barberpro/barber-analytics-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const movementColumns = "id, unit_id, product_id, movement_type, reason, quantity, unit_cost, total_cost, " +
	"supplier_id, order_id, notes, performed_by, created_at"

// StockMovementRepo movimentações de estoque. O trigger trg_apply_stock_movement atualiza o saldo.
type StockMovementRepo struct {
	base
}

// NewStockMovementRepository constrói o adaptador de movimentações.
func NewStockMovementRepository(q Querier, timeout time.Duration) *StockMovementRepo {
	return &StockMovementRepo{base: newBase(q, timeout)}
}

func scanMovement(s scanner) (*entity.StockMovement, error) {
	var m entity.StockMovement
	err := s.Scan(
		&m.ID, &m.UnitID, &m.ProductID, &m.MovementType, &m.Reason, &m.Quantity, &m.UnitCost, &m.TotalCost,
		&m.SupplierID, &m.OrderID, &m.Notes, &m.PerformedBy, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create insere a movimentação. Saldo negativo resulta em ErrInsufficientStock.
func (r *StockMovementRepo) Create(ctx context.Context, values map[string]any) (*entity.StockMovement, error) {
	var m *entity.StockMovement
	qb := psql.Insert("stock_movements").SetMap(values).Suffix("RETURNING " + movementColumns)
	err := r.queryRow(ctx, "insert stock movement", qb, func(s scanner) (err error) {
		m, err = scanMovement(s)
		return err
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// FindByID busca uma movimentação da unidade.
func (r *StockMovementRepo) FindByID(ctx context.Context, unitID, id string) (*entity.StockMovement, error) {
	var m *entity.StockMovement
	qb := psql.Select(movementColumns).From("stock_movements").Where(squirrel.Eq{"id": id, "unit_id": unitID})
	err := r.queryRow(ctx, "find stock movement", qb, func(s scanner) (err error) {
		m, err = scanMovement(s)
		return err
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

func movementWhere(qb squirrel.SelectBuilder, unitID string, f repository.StockMovementFilter) squirrel.SelectBuilder {
	qb = qb.From("stock_movements").Where(squirrel.Eq{"unit_id": unitID})
	if f.ProductID != "" {
		qb = qb.Where(squirrel.Eq{"product_id": f.ProductID})
	}
	if f.MovementType != "" {
		qb = qb.Where(squirrel.Eq{"movement_type": f.MovementType})
	}
	if f.From != nil {
		qb = qb.Where(squirrel.GtOrEq{"created_at": *f.From})
	}
	if f.To != nil {
		qb = qb.Where(squirrel.Lt{"created_at": f.To.AddDate(0, 0, 1)})
	}
	return qb
}

// List movimentações mais recentes primeiro.
func (r *StockMovementRepo) List(ctx context.Context, unitID string, f repository.StockMovementFilter) ([]*entity.StockMovement, int, error) {
	total, err := r.count(ctx, "count stock movements", movementWhere(psql.Select("COUNT(*)"), unitID, f))
	if err != nil {
		return nil, 0, err
	}
	qb := page(movementWhere(psql.Select(movementColumns), unitID, f).OrderBy("created_at DESC"), f.Limit, f.Offset)
	list := make([]*entity.StockMovement, 0)
	err = r.queryRows(ctx, "list stock movements", qb, func(s scanner) error {
		m, err := scanMovement(s)
		if err != nil {
			return err
		}
		list = append(list, m)
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}
