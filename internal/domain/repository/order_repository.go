package repository

import (
	"context"
	"time"

	"github.com/barberpro/barber-analytics-api/internal/domain/entity"
)

// OrderFilter filtros de listagem de comandas.
type OrderFilter struct {
	Status         string
	ProfessionalID string
	From, To       *time.Time
	Limit  int
	Offset int
}

// OrderRepository port de persistência de comandas e itens.
type OrderRepository interface {
	Create(ctx context.Context, values map[string]any) (*entity.Order, error)
	// FindByID carrega a comanda com os itens.
	FindByID(ctx context.Context, unitID, id string) (*entity.Order, error)
	// Transition altera a comanda somente se ela ainda estiver no status from; senão ErrConflict.
	Transition(ctx context.Context, unitID, id, from string, values map[string]any) (*entity.Order, error)
	List(ctx context.Context, unitID string, f OrderFilter) ([]*entity.Order, int, error)

	AddItem(ctx context.Context, orderID string, values map[string]any) (*entity.OrderItem, error)
	RemoveItem(ctx context.Context, orderID, itemID string) error
}
