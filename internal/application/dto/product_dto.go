package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductColumns colunas de products graváveis pela API.
// current_stock fica de fora: é mantido pelas movimentações de estoque.
var ProductColumns = []string{
	"unit_id", "name", "description", "sku", "barcode", "category", "brand", "unit_measure",
	"cost_price", "sale_price", "min_stock", "max_stock", "supplier_id", "is_active",
}

// CreateProductDTO entrada para criar um produto.
type CreateProductDTO struct {
	UnitID      string           `json:"unit_id" validate:"required,uuid"`
	Name        string           `json:"name" validate:"required,min=2,max=120"`
	Description *string          `json:"description" validate:"omitempty,max=500"`
	SKU         *string          `json:"sku" validate:"omitempty,max=60"`
	Barcode     *string          `json:"barcode" validate:"omitempty,max=60"`
	Category    *string          `json:"category" validate:"omitempty,max=60"`
	Brand       *string          `json:"brand" validate:"omitempty,max=60"`
	UnitMeasure string           `json:"unit_measure" validate:"omitempty,oneof=UN ML L G KG CX"`
	CostPrice   *decimal.Decimal `json:"cost_price" validate:"required,gte=0"`
	SalePrice   *decimal.Decimal `json:"sale_price" validate:"required,gte=0"`
	MinStock    *decimal.Decimal `json:"min_stock" validate:"omitempty,gte=0"`
	MaxStock    *decimal.Decimal `json:"max_stock" validate:"omitempty,gte=0"`
	SupplierID  *string          `json:"supplier_id" validate:"omitempty,uuid"`
	IsActive    *bool            `json:"is_active"`
}

// NewCreateProductDTO monta o DTO a partir do corpo cru.
func NewCreateProductDTO(raw map[string]any) (*CreateProductDTO, error) {
	var d CreateProductDTO
	if err := decode(raw, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Validate aplica as regras de produto.
func (d *CreateProductDTO) Validate() ValidationResult {
	c := check(d)
	checkStockRange(c, d.MinStock, d.MaxStock)
	return c.result()
}

// ToObject devolve apenas colunas permitidas com valor definido.
func (d *CreateProductDTO) ToObject() map[string]any {
	values := map[string]any{
		"unit_id":     d.UnitID,
		"name":        d.Name,
		"description": d.Description,
		"sku":         d.SKU,
		"barcode":     d.Barcode,
		"category":    d.Category,
		"brand":       d.Brand,
		"cost_price":  d.CostPrice,
		"sale_price":  d.SalePrice,
		"min_stock":   d.MinStock,
		"max_stock":   d.MaxStock,
		"supplier_id": d.SupplierID,
		"is_active":   d.IsActive,
	}
	if d.UnitMeasure != "" {
		values["unit_measure"] = d.UnitMeasure
	}
	return pick(ProductColumns, values)
}

// UpdateProductDTO atualização parcial: só os campos enviados são alterados.
type UpdateProductDTO struct {
	Name        *string          `json:"name" validate:"omitempty,min=2,max=120"`
	Description *string          `json:"description" validate:"omitempty,max=500"`
	SKU         *string          `json:"sku" validate:"omitempty,max=60"`
	Barcode     *string          `json:"barcode" validate:"omitempty,max=60"`
	Category    *string          `json:"category" validate:"omitempty,max=60"`
	Brand       *string          `json:"brand" validate:"omitempty,max=60"`
	UnitMeasure *string          `json:"unit_measure" validate:"omitempty,oneof=UN ML L G KG CX"`
	CostPrice   *decimal.Decimal `json:"cost_price" validate:"omitempty,gte=0"`
	SalePrice   *decimal.Decimal `json:"sale_price" validate:"omitempty,gte=0"`
	MinStock    *decimal.Decimal `json:"min_stock" validate:"omitempty,gte=0"`
	MaxStock    *decimal.Decimal `json:"max_stock" validate:"omitempty,gte=0"`
	SupplierID  *string          `json:"supplier_id" validate:"omitempty,uuid"`
	IsActive    *bool            `json:"is_active"`
}

// NewUpdateProductDTO monta o DTO a partir do corpo cru.
func NewUpdateProductDTO(raw map[string]any) (*UpdateProductDTO, error) {
	var d UpdateProductDTO
	if err := decode(raw, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Validate aplica as regras de atualização de produto.
func (d *UpdateProductDTO) Validate() ValidationResult {
	c := check(d)
	checkStockRange(c, d.MinStock, d.MaxStock)
	if len(d.ToObject()) == 0 {
		c.add("body", "nenhum campo para atualizar")
	}
	return c.result()
}

// ToObject devolve apenas colunas permitidas com valor definido.
func (d *UpdateProductDTO) ToObject() map[string]any {
	return pick(ProductColumns[1:], map[string]any{
		"name":         d.Name,
		"description":  d.Description,
		"sku":          d.SKU,
		"barcode":      d.Barcode,
		"category":     d.Category,
		"brand":        d.Brand,
		"unit_measure": d.UnitMeasure,
		"cost_price":   d.CostPrice,
		"sale_price":   d.SalePrice,
		"min_stock":    d.MinStock,
		"max_stock":    d.MaxStock,
		"supplier_id":  d.SupplierID,
		"is_active":    d.IsActive,
	})
}

func checkStockRange(c *checker, minStock, maxStock *decimal.Decimal) {
	if minStock == nil || maxStock == nil || !c.ok("min_stock", "max_stock") {
		return
	}
	if maxStock.LessThan(*minStock) {
		c.add("max_stock", "max_stock deve ser maior ou igual a min_stock")
	}
}

// ProductFilter filtros da listagem de produtos.
type ProductFilter struct {
	Search     string
	Category   string
	OnlyActive bool
	LowStock   bool
	Page       PageRequest
}

// ProductResponse saída de um produto.
type ProductResponse struct {
	ID           string           `json:"id"`
	UnitID       string           `json:"unit_id"`
	Name         string           `json:"name"`
	Description  *string          `json:"description,omitempty"`
	SKU          *string          `json:"sku,omitempty"`
	Barcode      *string          `json:"barcode,omitempty"`
	Category     *string          `json:"category,omitempty"`
	Brand        *string          `json:"brand,omitempty"`
	UnitMeasure  string           `json:"unit_measure"`
	CostPrice    decimal.Decimal  `json:"cost_price"`
	SalePrice    decimal.Decimal  `json:"sale_price"`
	CurrentStock decimal.Decimal  `json:"current_stock"`
	MinStock     decimal.Decimal  `json:"min_stock"`
	MaxStock     *decimal.Decimal `json:"max_stock,omitempty"`
	SupplierID   *string          `json:"supplier_id,omitempty"`
	IsActive     bool             `json:"is_active"`
	LowStock     bool             `json:"low_stock"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// ProductListResponse lista paginada de produtos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// RestockSuggestion produto abaixo do mínimo com a quantidade sugerida de compra.
type RestockSuggestion struct {
	ProductID     string          `json:"product_id"`
	Name          string          `json:"name"`
	CurrentStock  decimal.Decimal `json:"current_stock"`
	MinStock      decimal.Decimal `json:"min_stock"`
	SuggestedQty  decimal.Decimal `json:"suggested_qty"`
	EstimatedCost decimal.Decimal `json:"estimated_cost"`
}

// ProductStatsResponse indicadores de estoque da unidade.
type ProductStatsResponse struct {
	TotalProducts  int                 `json:"total_products"`
	ActiveProducts int                 `json:"active_products"`
	LowStockCount  int                 `json:"low_stock_count"`
	StockValue     decimal.Decimal     `json:"stock_value"`
	StockValueBRL  string              `json:"stock_value_brl"`
	Restock        []RestockSuggestion `json:"restock"`
}
