package postgres

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/barberpro/barber-analytics-api/internal/domain/entity"
	"github.com/barberpro/barber-analytics-api/internal/domain/repository"
)

var _ repository.GoalRepository = (*GoalRepo)(nil)

const goalColumns = "id, unit_id, professional_id, goal_type, target_value, period_start, period_end, created_by, created_at, updated_at"

// GoalRepo metas mensais.
type GoalRepo struct {
	base
}

// NewGoalRepository constrói o adaptador de metas.
func NewGoalRepository(q Querier, timeout time.Duration) *GoalRepo {
	return &GoalRepo{base: newBase(q, timeout)}
}

func scanGoal(s scanner) (*entity.Goal, error) {
	var g entity.Goal
	err := s.Scan(&g.ID, &g.UnitID, &g.ProfessionalID, &g.GoalType, &g.TargetValue, &g.PeriodStart, &g.PeriodEnd, &g.CreatedBy, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *GoalRepo) one(ctx context.Context, op string, qb squirrel.Sqlizer) (*entity.Goal, error) {
	var g *entity.Goal
	err := r.queryRow(ctx, op, qb, func(s scanner) (err error) {
		g, err = scanGoal(s)
		return err
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

// Create insere a meta.
func (r *GoalRepo) Create(ctx context.Context, values map[string]any) (*entity.Goal, error) {
	return r.one(ctx, "insert goal", psql.Insert("goals").SetMap(values).Suffix("RETURNING "+goalColumns))
}

// FindByID busca uma meta não excluída.
func (r *GoalRepo) FindByID(ctx context.Context, unitID, id string) (*entity.Goal, error) {
	qb := psql.Select(goalColumns).From("goals").Where(squirrel.Eq{"id": id, "unit_id": unitID}).Where("deleted_at IS NULL")
	return r.one(ctx, "find goal", qb)
}

// SoftDelete marca deleted_at.
func (r *GoalRepo) SoftDelete(ctx context.Context, unitID, id string) error {
	qb := psql.Update("goals").Set("deleted_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id, "unit_id": unitID}).
		Where("deleted_at IS NULL")
	return r.execOne(ctx, "delete goal", qb)
}

// ListOverlapping metas cujo período cruza [from, to].
func (r *GoalRepo) ListOverlapping(ctx context.Context, unitID string, from, to time.Time) ([]*entity.Goal, error) {
	qb := psql.Select(goalColumns).From("goals").
		Where(squirrel.Eq{"unit_id": unitID}).
		Where("deleted_at IS NULL").
		Where(squirrel.LtOrEq{"period_start": to}).
		Where(squirrel.GtOrEq{"period_end": from}).
		OrderBy("goal_type", "period_start")
	list := make([]*entity.Goal, 0)
	err := r.queryRows(ctx, "list goals", qb, func(s scanner) error {
		g, err := scanGoal(s)
		if err != nil {
			return err
		}
		list = append(list, g)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}
