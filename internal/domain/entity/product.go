package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa um produto vendido ou consumido pela barbearia.
// CurrentStock é mantido pelo trigger de movimentações; CostPrice pelo custo médio ponderado.
type Product struct {
	ID           string
	UnitID       string
	Name         string
	Description  *string
	SKU          *string
	Barcode      *string
	Category     *string
	Brand        *string
	UnitMeasure  string
	CostPrice    decimal.Decimal
	SalePrice    decimal.Decimal
	CurrentStock decimal.Decimal
	MinStock     decimal.Decimal
	MaxStock     *decimal.Decimal
	SupplierID   *string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsLowStock informa se o estoque atual está no mínimo ou abaixo dele.
func (p *Product) IsLowStock() bool {
	return p.CurrentStock.LessThanOrEqual(p.MinStock)
}

// SuggestedRestock quantidade sugerida para voltar ao estoque máximo (ou ao dobro do mínimo).
func (p *Product) SuggestedRestock() decimal.Decimal {
	target := p.MinStock.Mul(decimal.NewFromInt(2))
	if p.MaxStock != nil {
		target = *p.MaxStock
	}
	qty := target.Sub(p.CurrentStock)
	if qty.IsNegative() {
		return decimal.Zero
	}
	return qty
}

// ProductStats agregados de estoque de uma unidade.
type ProductStats struct {
	TotalProducts  int
	ActiveProducts int
	LowStockCount  int
	StockValue     decimal.Decimal // Σ current_stock × cost_price (ativos)
}
