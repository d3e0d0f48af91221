package entity

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestComputeTotals(t *testing.T) {
	items := []OrderItem{
		{ItemType: ItemServico, Quantity: dec("1"), UnitPrice: dec("45"), Discount: dec("5")},
		{ItemType: ItemServico, Quantity: dec("1"), UnitPrice: dec("30"), Discount: decimal.Zero},
		{ItemType: ItemProduto, Quantity: dec("2"), UnitPrice: dec("25.50"), Discount: decimal.Zero},
	}

	got := ComputeTotals(items, dec("10"), dec("40"))

	assert.True(t, dec("70").Equal(got.Services))
	assert.True(t, dec("51").Equal(got.Products))
	assert.True(t, dec("111").Equal(got.Total))
	assert.True(t, dec("28").Equal(got.Commission), "40% de 70")
}

func TestComputeTotals_NuncaNegativo(t *testing.T) {
	items := []OrderItem{{ItemType: ItemServico, Quantity: dec("1"), UnitPrice: dec("20"), Discount: decimal.Zero}}

	got := ComputeTotals(items, dec("50"), decimal.Zero)

	assert.True(t, got.Total.IsZero())
}

func TestCashSummary_ExpectedBalance(t *testing.T) {
	movs := []*CashMovement{
		{Type: CashVenda, Amount: dec("100")},
		{Type: CashVenda, Amount: dec("35.50")},
		{Type: CashSuprimento, Amount: dec("50")},
		{Type: CashSangria, Amount: dec("80")},
	}

	s := Summarize(movs)

	assert.True(t, dec("135.50").Equal(s.Sales))
	assert.True(t, dec("305.50").Equal(s.ExpectedBalance(dec("200"))))
}

func TestRecurringExpense_DueDateFor(t *testing.T) {
	r := &RecurringExpense{DayOfMonth: 31, IsActive: true}

	feb := r.DueDateFor(time.Date(2025, time.February, 10, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, 28, feb.Day(), "fevereiro ajusta para o último dia")

	leap := r.DueDateFor(time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, 29, leap.Day())

	r.DayOfMonth = 10
	assert.Equal(t, 10, r.DueDateFor(time.Date(2025, time.April, 30, 0, 0, 0, 0, time.UTC)).Day())
}

func TestRecurringExpense_DueIn(t *testing.T) {
	march := time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC)
	r := &RecurringExpense{IsActive: true}
	assert.True(t, r.DueIn(march), "nunca gerado")

	last := "2025-03"
	r.LastGeneratedPeriod = &last
	assert.False(t, r.DueIn(march), "já gerado no período")

	prev := "2025-02"
	r.LastGeneratedPeriod = &prev
	assert.True(t, r.DueIn(march))

	r.IsActive = false
	assert.False(t, r.DueIn(march))
}

func TestReasonAllowed(t *testing.T) {
	assert.True(t, ReasonAllowed(MovementEntrada, ReasonCompra))
	assert.True(t, ReasonAllowed(MovementSaida, ReasonVenda))
	assert.False(t, ReasonAllowed(MovementEntrada, ReasonVenda))
	assert.False(t, ReasonAllowed("TRANSFERENCIA", ReasonCompra))
}

func TestProduct_Restock(t *testing.T) {
	maxStock := dec("20")
	p := &Product{CurrentStock: dec("3"), MinStock: dec("5"), MaxStock: &maxStock}
	assert.True(t, p.IsLowStock())
	assert.True(t, dec("17").Equal(p.SuggestedRestock()))

	p.MaxStock = nil
	assert.True(t, dec("7").Equal(p.SuggestedRestock()), "sem máximo usa o dobro do mínimo")

	p.CurrentStock = dec("30")
	assert.False(t, p.IsLowStock())
	assert.True(t, p.SuggestedRestock().IsZero())
}
