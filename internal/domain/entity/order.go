package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status de comanda.
const (
	OrderAberta    = "ABERTA"
	OrderFechada   = "FECHADA"
	OrderCancelada = "CANCELADA"
)

// Tipos de item.
const (
	ItemServico = "SERVICO"
	ItemProduto = "PRODUTO"
)

// Formas de pagamento.
const (
	PaymentDinheiro      = "DINHEIRO"
	PaymentPix           = "PIX"
	PaymentCartaoCredito = "CARTAO_CREDITO"
	PaymentCartaoDebito  = "CARTAO_DEBITO"
)

// Order comanda de atendimento.
type Order struct {
	ID              string
	UnitID          string
	Code            string
	ProfessionalID  string
	ClientName      *string
	ClientPhone     *string
	Status          string
	Discount        decimal.Decimal
	Total           decimal.Decimal
	CommissionValue decimal.Decimal
	PaymentMethod   *string
	CashRegisterID  *string
	OpenedBy        string
	OpenedAt        time.Time
	ClosedAt        *time.Time
	Items           []OrderItem
}

// OrderItem serviço ou produto lançado na comanda.
type OrderItem struct {
	ID          string
	OrderID     string
	ItemType    string
	ProductID   *string
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Discount    decimal.Decimal
	CreatedAt   time.Time
}

// Subtotal quantidade × preço − desconto do item.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Quantity.Mul(i.UnitPrice).Sub(i.Discount)
}

// OrderTotals totais calculados no fechamento.
type OrderTotals struct {
	Services   decimal.Decimal
	Products   decimal.Decimal
	Total      decimal.Decimal
	Commission decimal.Decimal
}

// ComputeTotals calcula o total (nunca negativo) e a comissão sobre os serviços.
// commissionRate em percentual (0..100).
func ComputeTotals(items []OrderItem, discount, commissionRate decimal.Decimal) OrderTotals {
	t := OrderTotals{Services: decimal.Zero, Products: decimal.Zero}
	for _, it := range items {
		if it.ItemType == ItemProduto {
			t.Products = t.Products.Add(it.Subtotal())
		} else {
			t.Services = t.Services.Add(it.Subtotal())
		}
	}
	t.Total = t.Services.Add(t.Products).Sub(discount)
	if t.Total.IsNegative() {
		t.Total = decimal.Zero
	}
	t.Commission = t.Services.Mul(commissionRate).Div(decimal.NewFromInt(100)).Round(2)
	return t
}
