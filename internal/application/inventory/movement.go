// Package inventory é o motor de movimentações de estoque: roda dentro de uma transação aberta
// pelo chamador (cadastro manual de movimentação ou fechamento de comanda).
package inventory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/barberpro/barber-analytics-api/internal/application/dto"
	"github.com/barberpro/barber-analytics-api/internal/domain"
	"github.com/barberpro/barber-analytics-api/internal/domain/entity"
	stockcost "github.com/barberpro/barber-analytics-api/internal/domain/inventory"
	"github.com/barberpro/barber-analytics-api/internal/domain/repository"
)

// Result movimentação gravada e o produto com o saldo resultante.
type Result struct {
	Movement *entity.StockMovement
	Product  *entity.Product
}

// Apply trava a linha do produto (SELECT FOR UPDATE), recalcula o custo médio nas entradas
// e grava a movimentação. O saldo é atualizado pelo trigger trg_apply_stock_movement, que também
// rejeita saldo negativo (ErrInsufficientStock).
func Apply(ctx context.Context, r repository.Repos, in *dto.CreateStockMovementDTO) (*Result, error) {
	product, err := r.Products.FindForUpdate(ctx, in.UnitID, in.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive && in.MovementType != entity.MovementAjuste {
		return nil, domain.Conflict("Produto inativo não aceita movimentações.")
	}

	qty := *in.Quantity
	values := in.ToObject()
	after := *product

	switch in.MovementType {
	case entity.MovementEntrada:
		cost := stockcost.WeightedAverageCost(product.CurrentStock, product.CostPrice, qty, *in.UnitCost)
		if !cost.Equal(product.CostPrice) {
			if err := r.Products.UpdateCost(ctx, in.UnitID, in.ProductID, cost); err != nil {
				return nil, err
			}
		}
		after.CostPrice = cost
		after.CurrentStock = product.CurrentStock.Add(qty)
	case entity.MovementSaida:
		if product.CurrentStock.LessThan(qty) {
			return nil, domain.ErrInsufficientStock
		}
		// saída sem custo informado sai pelo custo médio vigente
		if in.UnitCost == nil || in.UnitCost.IsZero() {
			values["unit_cost"] = product.CostPrice
		}
		after.CurrentStock = product.CurrentStock.Sub(qty)
	case entity.MovementAjuste:
		after.CurrentStock = qty
	}

	mov, err := r.Movements.Create(ctx, values)
	if err != nil {
		return nil, err
	}
	return &Result{Movement: mov, Product: &after}, nil
}

// SaleMovement monta a saída por venda de um item de comanda.
func SaleMovement(unitID, productID, orderID, performedBy string, qty decimal.Decimal) *dto.CreateStockMovementDTO {
	zero := decimal.Zero
	return &dto.CreateStockMovementDTO{
		UnitID:       unitID,
		ProductID:    productID,
		MovementType: entity.MovementSaida,
		Reason:       entity.ReasonVenda,
		Quantity:     &qty,
		UnitCost:     &zero,
		OrderID:      &orderID,
		PerformedBy:  performedBy,
	}
}
