package repository

import (
	"context"
	"time"

	"github.com/barberpro/barber-analytics-api/internal/domain/entity"
)

// StockMovementFilter filtros de listagem de movimentações.
type StockMovementFilter struct {
	ProductID    string
	MovementType string
	From, To     *time.Time
	Limit  int
	Offset int
}

// StockMovementRepository port de persistência de movimentações de estoque.
// O saldo do produto é atualizado pelo trigger do banco a cada inserção.
type StockMovementRepository interface {
	Create(ctx context.Context, values map[string]any) (*entity.StockMovement, error)
	FindByID(ctx context.Context, unitID, id string) (*entity.StockMovement, error)
	List(ctx context.Context, unitID string, f StockMovementFilter) ([]*entity.StockMovement, int, error)
}
