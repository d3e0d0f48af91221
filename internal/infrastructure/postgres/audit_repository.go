package postgres

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/barberpro/barber-analytics-api/internal/domain/entity"
	"github.com/barberpro/barber-analytics-api/internal/domain/repository"
)

var _ repository.AuditRepository = (*AuditRepo)(nil)

const auditColumns = "id, unit_id, user_id, entity, entity_id, action, success, error_kind, before, after, created_at"

// AuditRepo trilha de auditoria (somente inserção e consulta).
type AuditRepo struct {
	base
}

// NewAuditRepository constrói o adaptador de auditoria.
func NewAuditRepository(q Querier, timeout time.Duration) *AuditRepo {
	return &AuditRepo{base: newBase(q, timeout)}
}

func jsonArg(raw []byte) any {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}

// Create grava o registro.
func (r *AuditRepo) Create(ctx context.Context, log *entity.AuditLog) error {
	qb := psql.Insert("audit_logs").
		Columns("unit_id", "user_id", "entity", "entity_id", "action", "success", "error_kind", "before", "after").
		Values(log.UnitID, log.UserID, log.Entity, log.EntityID, log.Action, log.Success, log.ErrorKind, jsonArg(log.Before), jsonArg(log.After)).
		Suffix("RETURNING id, created_at")
	return r.queryRow(ctx, "insert audit log", qb, func(s scanner) error {
		return s.Scan(&log.ID, &log.CreatedAt)
	})
}

func auditWhere(qb squirrel.SelectBuilder, unitID string, f repository.AuditFilter) squirrel.SelectBuilder {
	qb = qb.From("audit_logs").Where(squirrel.Eq{"unit_id": unitID})
	if f.Entity != "" {
		qb = qb.Where(squirrel.Eq{"entity": f.Entity})
	}
	if f.UserID != "" {
		qb = qb.Where(squirrel.Eq{"user_id": f.UserID})
	}
	if f.From != nil {
		qb = qb.Where(squirrel.GtOrEq{"created_at": *f.From})
	}
	if f.To != nil {
		qb = qb.Where(squirrel.Lt{"created_at": f.To.AddDate(0, 0, 1)})
	}
	return qb
}

// List registros mais recentes primeiro.
func (r *AuditRepo) List(ctx context.Context, unitID string, f repository.AuditFilter) ([]*entity.AuditLog, int, error) {
	total, err := r.count(ctx, "count audit logs", auditWhere(psql.Select("COUNT(*)"), unitID, f))
	if err != nil {
		return nil, 0, err
	}
	qb := page(auditWhere(psql.Select(auditColumns), unitID, f).OrderBy("created_at DESC"), f.Limit, f.Offset)
	list := make([]*entity.AuditLog, 0)
	err = r.queryRows(ctx, "list audit logs", qb, func(s scanner) error {
		var a entity.AuditLog
		var before, after *string
		if err := s.Scan(&a.ID, &a.UnitID, &a.UserID, &a.Entity, &a.EntityID, &a.Action, &a.Success, &a.ErrorKind, &before, &after, &a.CreatedAt); err != nil {
			return err
		}
		if before != nil {
			a.Before = []byte(*before)
		}
		if after != nil {
			a.After = []byte(*after)
		}
		list = append(list, &a)
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}
