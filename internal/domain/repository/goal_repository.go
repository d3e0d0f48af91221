package repository

import (
	"context"
	"time"

	"github.com/barberpro/barber-analytics-api/internal/domain/entity"
)

// GoalRepository port de persistência de metas.
type GoalRepository interface {
	Create(ctx context.Context, values map[string]any) (*entity.Goal, error)
	FindByID(ctx context.Context, unitID, id string) (*entity.Goal, error)
	SoftDelete(ctx context.Context, unitID, id string) error
	// ListOverlapping metas cujo período cruza [from, to].
	ListOverlapping(ctx context.Context, unitID string, from, to time.Time) ([]*entity.Goal, error)
}
