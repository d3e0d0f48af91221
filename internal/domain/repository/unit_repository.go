package repository

import (
	"context"

	"github.com/barberpro/barber-analytics-api/internal/domain/entity"
)

// UnitRepository port de persistência de unidades e módulos contratados.
type UnitRepository interface {
	Create(ctx context.Context, unit *entity.Unit) error
	FindByID(ctx context.Context, id string) (*entity.Unit, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Unit, int, error)
	EnableModule(ctx context.Context, unitID, module string) error
	ListModules(ctx context.Context, unitID string) ([]string, error)
	HasActiveModule(ctx context.Context, unitID, module string) (bool, error)
}
