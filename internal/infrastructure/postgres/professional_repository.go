package postgres

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/barberpro/barber-analytics-api/internal/domain/entity"
	"github.com/barberpro/barber-analytics-api/internal/domain/repository"
)

var (
	_ repository.ProfessionalRepository = (*ProfessionalRepo)(nil)
	_ repository.QueueRepository        = (*QueueRepo)(nil)
)

const professionalColumns = "id, unit_id, user_id, name, email, phone, cpf, specialty, commission_rate, is_active, created_at, updated_at"

// ProfessionalRepo profissionais da unidade.
type ProfessionalRepo struct {
	base
}

// NewProfessionalRepository constrói o adaptador de profissionais.
func NewProfessionalRepository(q Querier, timeout time.Duration) *ProfessionalRepo {
	return &ProfessionalRepo{base: newBase(q, timeout)}
}

func scanProfessional(s scanner) (*entity.Professional, error) {
	var p entity.Professional
	err := s.Scan(&p.ID, &p.UnitID, &p.UserID, &p.Name, &p.Email, &p.Phone, &p.CPF, &p.Specialty, &p.CommissionRate, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProfessionalRepo) one(ctx context.Context, op string, qb squirrel.Sqlizer) (*entity.Professional, error) {
	var p *entity.Professional
	err := r.queryRow(ctx, op, qb, func(s scanner) (err error) {
		p, err = scanProfessional(s)
		return err
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Create insere o profissional.
func (r *ProfessionalRepo) Create(ctx context.Context, values map[string]any) (*entity.Professional, error) {
	return r.one(ctx, "insert professional", psql.Insert("professionals").SetMap(values).Suffix("RETURNING "+professionalColumns))
}

// FindByID busca um profissional não excluído.
func (r *ProfessionalRepo) FindByID(ctx context.Context, unitID, id string) (*entity.Professional, error) {
	qb := psql.Select(professionalColumns).From("professionals").
		Where(squirrel.Eq{"id": id, "unit_id": unitID}).
		Where("deleted_at IS NULL")
	return r.one(ctx, "find professional", qb)
}

// Update altera apenas as colunas informadas.
func (r *ProfessionalRepo) Update(ctx context.Context, unitID, id string, values map[string]any) (*entity.Professional, error) {
	qb := psql.Update("professionals").SetMap(values).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id, "unit_id": unitID}).
		Where("deleted_at IS NULL").
		Suffix("RETURNING " + professionalColumns)
	return r.one(ctx, "update professional", qb)
}

// SoftDelete inativa e marca deleted_at.
func (r *ProfessionalRepo) SoftDelete(ctx context.Context, unitID, id string) error {
	qb := psql.Update("professionals").
		Set("is_active", false).
		Set("deleted_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id, "unit_id": unitID}).
		Where("deleted_at IS NULL")
	return r.execOne(ctx, "delete professional", qb)
}

// List profissionais em ordem alfabética.
func (r *ProfessionalRepo) List(ctx context.Context, unitID string, onlyActive bool) ([]*entity.Professional, error) {
	qb := psql.Select(professionalColumns).From("professionals").
		Where(squirrel.Eq{"unit_id": unitID}).
		Where("deleted_at IS NULL").
		OrderBy("name")
	if onlyActive {
		qb = qb.Where(squirrel.Eq{"is_active": true})
	}
	list := make([]*entity.Professional, 0)
	err := r.queryRows(ctx, "list professionals", qb, func(s scanner) error {
		p, err := scanProfessional(s)
		if err != nil {
			return err
		}
		list = append(list, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

const queueColumns = "q.unit_id, q.professional_id, p.name, q.position, q.status, q.served_count, q.last_served_at, q.joined_at"

// QueueRepo lista da vez (queue_entries).
type QueueRepo struct {
	base
}

// NewQueueRepository constrói o adaptador da lista da vez.
func NewQueueRepository(q Querier, timeout time.Duration) *QueueRepo {
	return &QueueRepo{base: newBase(q, timeout)}
}

func scanQueueEntry(s scanner) (*entity.QueueEntry, error) {
	var e entity.QueueEntry
	if err := s.Scan(&e.UnitID, &e.ProfessionalID, &e.Name, &e.Position, &e.Status, &e.ServedCount, &e.LastServedAt, &e.JoinedAt); err != nil {
		return nil, err
	}
	return &e, nil
}

func queueSelect() squirrel.SelectBuilder {
	return psql.Select(queueColumns).From("queue_entries q").Join("professionals p ON p.id = q.professional_id")
}

func (r *QueueRepo) one(ctx context.Context, op string, qb squirrel.Sqlizer) (*entity.QueueEntry, error) {
	var e *entity.QueueEntry
	err := r.queryRow(ctx, op, qb, func(s scanner) (err error) {
		e, err = scanQueueEntry(s)
		return err
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *QueueRepo) find(ctx context.Context, unitID, professionalID string) (*entity.QueueEntry, error) {
	return r.one(ctx, "find queue entry", queueSelect().Where(squirrel.Eq{"q.unit_id": unitID, "q.professional_id": professionalID}))
}

// List fila por posição.
func (r *QueueRepo) List(ctx context.Context, unitID string) ([]*entity.QueueEntry, error) {
	qb := queueSelect().Where(squirrel.Eq{"q.unit_id": unitID}).OrderBy("q.position")
	list := make([]*entity.QueueEntry, 0)
	err := r.queryRows(ctx, "list queue", qb, func(s scanner) error {
		e, err := scanQueueEntry(s)
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

// Join coloca o profissional no fim da fila. Entrar duas vezes viola a chave primária (ErrDuplicate).
func (r *QueueRepo) Join(ctx context.Context, unitID, professionalID string) (*entity.QueueEntry, error) {
	qb := psql.Insert("queue_entries").
		Columns("unit_id", "professional_id", "position", "status").
		Values(unitID, professionalID, squirrel.Expr("(SELECT COALESCE(MAX(position), 0) + 1 FROM queue_entries WHERE unit_id = ?)", unitID), entity.QueueDisponivel)
	if _, err := r.exec(ctx, "join queue", qb); err != nil {
		return nil, err
	}
	return r.find(ctx, unitID, professionalID)
}

// Leave retira o profissional da fila.
func (r *QueueRepo) Leave(ctx context.Context, unitID, professionalID string) error {
	qb := psql.Delete("queue_entries").Where(squirrel.Eq{"unit_id": unitID, "professional_id": professionalID})
	return r.execOne(ctx, "leave queue", qb)
}

// SetStatus altera o status do profissional na fila.
func (r *QueueRepo) SetStatus(ctx context.Context, unitID, professionalID, status string) (*entity.QueueEntry, error) {
	qb := psql.Update("queue_entries").Set("status", status).
		Where(squirrel.Eq{"unit_id": unitID, "professional_id": professionalID})
	if err := r.execOne(ctx, "update queue status", qb); err != nil {
		return nil, err
	}
	return r.find(ctx, unitID, professionalID)
}

// LockNextAvailable trava o próximo DISPONIVEL; linhas travadas por outra chamada são puladas.
func (r *QueueRepo) LockNextAvailable(ctx context.Context, unitID string) (*entity.QueueEntry, error) {
	qb := queueSelect().
		Where(squirrel.Eq{"q.unit_id": unitID, "q.status": entity.QueueDisponivel}).
		OrderBy("q.position").
		Limit(1).
		Suffix("FOR UPDATE OF q SKIP LOCKED")
	return r.one(ctx, "lock next in queue", qb)
}

// LockPositions lock consultivo da transação, por unidade. MAX(position)+1 só é lido com ele;
// o índice único queue_entries_unit_position barra o que escapar.
func (r *QueueRepo) LockPositions(ctx context.Context, unitID string) error {
	qb := psql.Select().Column(squirrel.Expr("pg_advisory_xact_lock(hashtext(?))", "queue_entries:"+unitID))
	_, err := r.exec(ctx, "lock queue positions", qb)
	return err
}

// MoveToEnd marca ATENDENDO, move para o fim e conta o atendimento.
func (r *QueueRepo) MoveToEnd(ctx context.Context, unitID, professionalID string) (*entity.QueueEntry, error) {
	qb := psql.Update("queue_entries").
		Set("status", entity.QueueAtendendo).
		Set("position", squirrel.Expr("(SELECT COALESCE(MAX(position), 0) + 1 FROM queue_entries WHERE unit_id = ?)", unitID)).
		Set("served_count", squirrel.Expr("served_count + 1")).
		Set("last_served_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"unit_id": unitID, "professional_id": professionalID})
	if err := r.execOne(ctx, "move queue entry", qb); err != nil {
		return nil, err
	}
	return r.find(ctx, unitID, professionalID)
}
