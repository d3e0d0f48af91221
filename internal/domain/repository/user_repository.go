package repository

import (
	"context"

	"github.com/barberpro/barber-analytics-api/internal/domain/entity"
)

// UserRepository port de persistência de usuários.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	CountByUnit(ctx context.Context, unitID string) (int, error)
}
