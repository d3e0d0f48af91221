package dto

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/barberpro/barber-analytics-api/internal/domain/entity"
)

// StockMovementColumns colunas de stock_movements graváveis pela API.
// total_cost é coluna gerada no banco.
var StockMovementColumns = []string{
	"unit_id", "product_id", "movement_type", "reason", "quantity", "unit_cost",
	"supplier_id", "order_id", "notes", "performed_by",
}

// CreateStockMovementDTO entrada para registrar uma movimentação de estoque.
type CreateStockMovementDTO struct {
	UnitID       string           `json:"unit_id" validate:"required,uuid"`
	ProductID    string           `json:"product_id" validate:"required,uuid"`
	MovementType string           `json:"movement_type" validate:"required,oneof=ENTRADA SAIDA AJUSTE"`
	Reason       string           `json:"reason" validate:"required,oneof=COMPRA DEVOLUCAO VENDA PERDA USO_INTERNO AJUSTE"`
	Quantity     *decimal.Decimal `json:"quantity" validate:"required"`
	UnitCost     *decimal.Decimal `json:"unit_cost" validate:"required,gte=0"`
	SupplierID   *string          `json:"supplier_id" validate:"omitempty,uuid"`
	OrderID      *string          `json:"order_id" validate:"omitempty,uuid"`
	Notes        *string          `json:"notes" validate:"omitempty,max=500"`
	PerformedBy  string           `json:"performed_by" validate:"required,uuid"`
}

// NewCreateStockMovementDTO monta o DTO a partir do corpo cru.
func NewCreateStockMovementDTO(raw map[string]any) (*CreateStockMovementDTO, error) {
	var d CreateStockMovementDTO
	if err := decode(raw, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Validate aplica as regras de movimentação, inclusive a compatibilidade entre tipo e motivo.
// AJUSTE informa o saldo final e aceita zero; ENTRADA e SAIDA exigem quantidade positiva.
func (d *CreateStockMovementDTO) Validate() ValidationResult {
	c := check(d)
	if c.ok("quantity") && d.Quantity != nil {
		switch {
		case d.MovementType == entity.MovementAjuste && d.Quantity.IsNegative():
			c.add("quantity", "quantity não pode ser negativo")
		case d.MovementType != entity.MovementAjuste && !d.Quantity.IsPositive():
			c.add("quantity", "quantity deve ser maior que 0")
		}
	}
	if c.ok("movement_type", "reason") && !entity.ReasonAllowed(d.MovementType, d.Reason) {
		c.add("reason", fmt.Sprintf("reason %s não é permitido para movement_type %s", d.Reason, d.MovementType))
	}
	return c.result()
}

// ToObject devolve apenas colunas permitidas com valor definido.
func (d *CreateStockMovementDTO) ToObject() map[string]any {
	return pick(StockMovementColumns, map[string]any{
		"unit_id":       d.UnitID,
		"product_id":    d.ProductID,
		"movement_type": d.MovementType,
		"reason":        d.Reason,
		"quantity":      d.Quantity,
		"unit_cost":     d.UnitCost,
		"supplier_id":   d.SupplierID,
		"order_id":      d.OrderID,
		"notes":         d.Notes,
		"performed_by":  d.PerformedBy,
	})
}

// StockMovementFilter filtros da listagem de movimentações.
type StockMovementFilter struct {
	ProductID    string
	MovementType string
	From         *time.Time
	To           *time.Time
	Page         PageRequest
}

// StockMovementResponse saída de uma movimentação.
type StockMovementResponse struct {
	ID           string          `json:"id"`
	UnitID       string          `json:"unit_id"`
	ProductID    string          `json:"product_id"`
	MovementType string          `json:"movement_type"`
	Reason       string          `json:"reason"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	SupplierID   *string         `json:"supplier_id,omitempty"`
	OrderID      *string         `json:"order_id,omitempty"`
	Notes        *string         `json:"notes,omitempty"`
	PerformedBy  string          `json:"performed_by"`
	CreatedAt    time.Time       `json:"created_at"`
}

// StockMovementListResponse lista paginada de movimentações.
type StockMovementListResponse struct {
	Items []StockMovementResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}
