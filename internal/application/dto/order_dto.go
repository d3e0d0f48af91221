package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OpenOrderDTO entrada para abrir uma comanda.
type OpenOrderDTO struct {
	ProfessionalID string  `json:"professional_id" validate:"required,uuid"`
	ClientName     *string `json:"client_name" validate:"omitempty,max=120"`
	ClientPhone    *string `json:"client_phone" validate:"omitempty,phone_br"`
}

// NewOpenOrderDTO monta o DTO a partir do corpo cru.
func NewOpenOrderDTO(raw map[string]any) (*OpenOrderDTO, error) {
	var d OpenOrderDTO
	if err := decode(raw, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Validate aplica as regras de abertura da comanda.
func (d *OpenOrderDTO) Validate() ValidationResult {
	return check(d).result()
}

// ToObject devolve apenas colunas permitidas com valor definido.
func (d *OpenOrderDTO) ToObject() map[string]any {
	return pick([]string{"professional_id", "client_name", "client_phone"}, map[string]any{
		"professional_id": d.ProfessionalID,
		"client_name":     d.ClientName,
		"client_phone":    digitsPtr(d.ClientPhone),
	})
}

// OrderItemColumns colunas de order_items graváveis pela API.
var OrderItemColumns = []string{"item_type", "product_id", "description", "quantity", "unit_price", "discount"}

// AddOrderItemDTO serviço ou produto lançado na comanda.
type AddOrderItemDTO struct {
	ItemType    string           `json:"item_type" validate:"required,oneof=SERVICO PRODUTO"`
	ProductID   *string          `json:"product_id" validate:"omitempty,uuid"`
	Description *string          `json:"description" validate:"omitempty,max=200"`
	Quantity    *decimal.Decimal `json:"quantity" validate:"required,gt=0"`
	UnitPrice   *decimal.Decimal `json:"unit_price" validate:"required,gte=0"`
	Discount    *decimal.Decimal `json:"discount" validate:"omitempty,gte=0"`
}

// NewAddOrderItemDTO monta o DTO a partir do corpo cru.
func NewAddOrderItemDTO(raw map[string]any) (*AddOrderItemDTO, error) {
	var d AddOrderItemDTO
	if err := decode(raw, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Validate aplica as regras do item: produto exige product_id, serviço exige descrição
// e o desconto não pode passar do valor do item.
func (d *AddOrderItemDTO) Validate() ValidationResult {
	c := check(d)
	if c.ok("item_type") {
		switch d.ItemType {
		case "PRODUTO":
			if d.ProductID == nil || *d.ProductID == "" {
				c.add("product_id", "product_id é obrigatório para item do tipo PRODUTO")
			}
		case "SERVICO":
			if d.Description == nil || *d.Description == "" {
				c.add("description", "description é obrigatório para item do tipo SERVICO")
			}
		}
	}
	if d.Discount != nil && c.ok("quantity", "unit_price", "discount") &&
		d.Discount.GreaterThan(d.Quantity.Mul(*d.UnitPrice)) {
		c.add("discount", "discount não pode ser maior que o valor do item")
	}
	return c.result()
}

// ToObject devolve apenas colunas permitidas com valor definido.
func (d *AddOrderItemDTO) ToObject() map[string]any {
	return pick(OrderItemColumns, map[string]any{
		"item_type":   d.ItemType,
		"product_id":  d.ProductID,
		"description": d.Description,
		"quantity":    d.Quantity,
		"unit_price":  d.UnitPrice,
		"discount":    d.Discount,
	})
}

// CloseOrderDTO entrada para fechar a comanda.
type CloseOrderDTO struct {
	PaymentMethod string           `json:"payment_method" validate:"required,oneof=DINHEIRO PIX CARTAO_CREDITO CARTAO_DEBITO"`
	Discount      *decimal.Decimal `json:"discount" validate:"omitempty,gte=0"`
}

// NewCloseOrderDTO monta o DTO a partir do corpo cru.
func NewCloseOrderDTO(raw map[string]any) (*CloseOrderDTO, error) {
	var d CloseOrderDTO
	if err := decode(raw, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Validate aplica as regras de fechamento.
func (d *CloseOrderDTO) Validate() ValidationResult {
	return check(d).result()
}

// OrderFilter filtros da listagem de comandas.
type OrderFilter struct {
	Status         string
	ProfessionalID string
	From           *time.Time
	To             *time.Time
	Page           PageRequest
}

// OrderItemResponse item na resposta.
type OrderItemResponse struct {
	ID          string          `json:"id"`
	ItemType    string          `json:"item_type"`
	ProductID   *string         `json:"product_id,omitempty"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Discount    decimal.Decimal `json:"discount"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// OrderResponse saída de uma comanda.
type OrderResponse struct {
	ID              string              `json:"id"`
	UnitID          string              `json:"unit_id"`
	Code            string              `json:"code"`
	ProfessionalID  string              `json:"professional_id"`
	ClientName      *string             `json:"client_name,omitempty"`
	ClientPhone     *string             `json:"client_phone,omitempty"`
	Status          string              `json:"status"`
	Discount        decimal.Decimal     `json:"discount"`
	Total           decimal.Decimal     `json:"total"`
	TotalFormatted  string              `json:"total_formatted"`
	CommissionValue decimal.Decimal     `json:"commission_value"`
	PaymentMethod   *string             `json:"payment_method,omitempty"`
	CashRegisterID  *string             `json:"cash_register_id,omitempty"`
	OpenedBy        string              `json:"opened_by"`
	OpenedAt        time.Time           `json:"opened_at"`
	ClosedAt        *time.Time          `json:"closed_at,omitempty"`
	Items           []OrderItemResponse `json:"items"`
}

// OrderListResponse lista paginada de comandas.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
