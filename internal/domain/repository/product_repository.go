package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/barberpro/barber-analytics-api/internal/domain/entity"
)

// ProductFilter filtros de listagem de produtos.
type ProductFilter struct {
	Search     string // nome, SKU ou código de barras
	Category   string
	OnlyActive bool
	LowStock   bool
	Limit      int
	Offset     int
}

// ProductRepository define o port de persistência de Product.
// Todas as operações são restritas à unidade informada.
type ProductRepository interface {
	Create(ctx context.Context, values map[string]any) (*entity.Product, error)
	FindByID(ctx context.Context, unitID, id string) (*entity.Product, error)
	// FindForUpdate trava a linha do produto até o fim da transação.
	FindForUpdate(ctx context.Context, unitID, id string) (*entity.Product, error)
	Update(ctx context.Context, unitID, id string, values map[string]any) (*entity.Product, error)
	UpdateCost(ctx context.Context, unitID, id string, cost decimal.Decimal) error
	SoftDelete(ctx context.Context, unitID, id string) error
	List(ctx context.Context, unitID string, f ProductFilter) ([]*entity.Product, int, error)
	ListLowStock(ctx context.Context, unitID string) ([]*entity.Product, error)
	Stats(ctx context.Context, unitID string) (*entity.ProductStats, error)
}
