package postgres

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/barberpro/barber-analytics-api/internal/domain/entity"
	"github.com/barberpro/barber-analytics-api/internal/domain/repository"
)

var _ repository.UnitRepository = (*UnitRepo)(nil)

const unitColumns = "id, name, cnpj, phone, email, address, status, created_at, updated_at"

// UnitRepo unidades (barbearias) e módulos contratados.
type UnitRepo struct {
	base
}

// NewUnitRepository constrói o adaptador de unidades.
func NewUnitRepository(q Querier, timeout time.Duration) *UnitRepo {
	return &UnitRepo{base: newBase(q, timeout)}
}

func scanUnit(s scanner) (*entity.Unit, error) {
	var u entity.Unit
	if err := s.Scan(&u.ID, &u.Name, &u.CNPJ, &u.Phone, &u.Email, &u.Address, &u.Status, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create persiste a unidade (ID gerado pelo chamador). CNPJ repetido resulta em ErrDuplicate.
func (r *UnitRepo) Create(ctx context.Context, u *entity.Unit) error {
	qb := psql.Insert("units").
		Columns("id", "name", "cnpj", "phone", "email", "address", "status", "created_at", "updated_at").
		Values(u.ID, u.Name, u.CNPJ, u.Phone, u.Email, u.Address, u.Status, u.CreatedAt, u.UpdatedAt)
	_, err := r.exec(ctx, "insert unit", qb)
	return err
}

// FindByID busca uma unidade.
func (r *UnitRepo) FindByID(ctx context.Context, id string) (*entity.Unit, error) {
	var u *entity.Unit
	err := r.queryRow(ctx, "find unit", psql.Select(unitColumns).From("units").Where(squirrel.Eq{"id": id}), func(s scanner) (err error) {
		u, err = scanUnit(s)
		return err
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

// List unidades em ordem alfabética.
func (r *UnitRepo) List(ctx context.Context, limit, offset int) ([]*entity.Unit, int, error) {
	total, err := r.count(ctx, "count units", psql.Select("COUNT(*)").From("units"))
	if err != nil {
		return nil, 0, err
	}
	list := make([]*entity.Unit, 0)
	err = r.queryRows(ctx, "list units", page(psql.Select(unitColumns).From("units").OrderBy("name"), limit, offset), func(s scanner) error {
		u, err := scanUnit(s)
		if err != nil {
			return err
		}
		list = append(list, u)
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// EnableModule ativa (ou reativa) um módulo para a unidade.
func (r *UnitRepo) EnableModule(ctx context.Context, unitID, module string) error {
	qb := psql.Insert("unit_modules").
		Columns("unit_id", "module_name", "is_active").
		Values(unitID, module, true).
		Suffix("ON CONFLICT (unit_id, module_name) DO UPDATE SET is_active = true, activated_at = now()")
	_, err := r.exec(ctx, "enable unit module", qb)
	return err
}

func activeModule() squirrel.Sqlizer {
	return squirrel.And{
		squirrel.Eq{"is_active": true},
		squirrel.Or{squirrel.Eq{"expires_at": nil}, squirrel.Expr("expires_at > now()")},
	}
}

// ListModules módulos ativos e vigentes da unidade.
func (r *UnitRepo) ListModules(ctx context.Context, unitID string) ([]string, error) {
	qb := psql.Select("module_name").From("unit_modules").
		Where(squirrel.Eq{"unit_id": unitID}).
		Where(activeModule()).
		OrderBy("module_name")
	modules := make([]string, 0)
	err := r.queryRows(ctx, "list unit modules", qb, func(s scanner) error {
		var m string
		if err := s.Scan(&m); err != nil {
			return err
		}
		modules = append(modules, m)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return modules, nil
}

// HasActiveModule informa se a unidade tem o módulo ativo e sem vencimento.
func (r *UnitRepo) HasActiveModule(ctx context.Context, unitID, module string) (bool, error) {
	sub := psql.Select("1").From("unit_modules").
		Where(squirrel.Eq{"unit_id": unitID, "module_name": module}).
		Where(activeModule())
	qb := psql.Select().Column(squirrel.Expr("EXISTS (?)", sub))
	var active bool
	err := r.queryRow(ctx, "check unit module", qb, func(s scanner) error { return s.Scan(&active) })
	return active, err
}
