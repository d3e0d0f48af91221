package postgres

import (
	"context"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/barberpro/barber-analytics-api/internal/domain/entity"
	"github.com/barberpro/barber-analytics-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = "id, unit_id, email, password_hash, name, role, status, created_at, updated_at"

// UserRepo usuários do sistema.
type UserRepo struct {
	base
}

// NewUserRepository constrói o adaptador de usuários.
func NewUserRepository(q Querier, timeout time.Duration) *UserRepo {
	return &UserRepo{base: newBase(q, timeout)}
}

// Create persiste o usuário (ID gerado pelo chamador). E-mail repetido resulta em ErrDuplicate.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	qb := psql.Insert("users").
		Columns("id", "unit_id", "email", "password_hash", "name", "role", "status", "created_at", "updated_at").
		Values(u.ID, u.UnitID, strings.ToLower(u.Email), u.PasswordHash, u.Name, string(u.Role), u.Status, u.CreatedAt, u.UpdatedAt)
	_, err := r.exec(ctx, "insert user", qb)
	return err
}

func (r *UserRepo) find(ctx context.Context, op string, where squirrel.Eq) (*entity.User, error) {
	var u entity.User
	var role string
	err := r.queryRow(ctx, op, psql.Select(userColumns).From("users").Where(where), func(s scanner) error {
		return s.Scan(&u.ID, &u.UnitID, &u.Email, &u.PasswordHash, &u.Name, &role, &u.Status, &u.CreatedAt, &u.UpdatedAt)
	})
	if err != nil {
		return nil, err
	}
	u.Role = entity.Role(role)
	return &u, nil
}

// FindByID busca um usuário.
func (r *UserRepo) FindByID(ctx context.Context, id string) (*entity.User, error) {
	return r.find(ctx, "find user", squirrel.Eq{"id": id})
}

// FindByEmail busca um usuário pelo e-mail (sem diferenciar maiúsculas).
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.find(ctx, "find user by email", squirrel.Eq{"email": strings.ToLower(strings.TrimSpace(email))})
}

// CountByUnit quantidade de usuários da unidade.
func (r *UserRepo) CountByUnit(ctx context.Context, unitID string) (int, error) {
	return r.count(ctx, "count users", psql.Select("COUNT(*)").From("users").Where(squirrel.Eq{"unit_id": unitID}))
}
