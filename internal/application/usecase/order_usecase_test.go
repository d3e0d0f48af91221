package usecase

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barberpro/barber-analytics-api/internal/application/ports"
	"github.com/barberpro/barber-analytics-api/internal/domain"
	"github.com/barberpro/barber-analytics-api/internal/domain/entity"
	"github.com/barberpro/barber-analytics-api/internal/domain/repository"
)

type orderFixture struct {
	uc     *OrderUseCase
	orders *fakeOrders
	cash   *fakeCash
	tx     *fakeTx
	rec    *recorder
}

func newOrderFixture(withRegister bool) *orderFixture {
	orders := &fakeOrders{order: &entity.Order{
		ID:             "ord-1",
		UnitID:         testUnit,
		Code:           "K7P2QX",
		ProfessionalID: "prof-1",
		Status:         entity.OrderAberta,
		Discount:       dec("0"),
		Items: []entity.OrderItem{
			{ID: "i1", ItemType: entity.ItemServico, Description: "Corte", Quantity: dec("1"), UnitPrice: dec("50"), Discount: dec("0")},
			{ID: "i2", ItemType: entity.ItemServico, Description: "Barba", Quantity: dec("1"), UnitPrice: dec("30"), Discount: dec("0")},
		},
	}}
	professionals := &fakeProfessionals{byID: map[string]*entity.Professional{
		"prof-1": {ID: "prof-1", UnitID: testUnit, Name: "João", CommissionRate: dec("40"), IsActive: true},
	}}
	cash := &fakeCash{}
	if withRegister {
		cash.register = &entity.CashRegister{ID: "cx-1", UnitID: testUnit, Status: entity.CashOpen, OpeningBalance: dec("100")}
	}
	tx := &fakeTx{repos: repository.Repos{Orders: orders, Professionals: professionals, CashRegisters: cash}}
	rec := &recorder{}
	return &orderFixture{
		uc:     NewOrderUseCase(orders, nil, tx, rec.reporting()),
		orders: orders,
		cash:   cash,
		tx:     tx,
		rec:    rec,
	}
}

func TestOrderClose_DinheiroLancaVendaNoCaixa(t *testing.T) {
	f := newOrderFixture(true)

	res, err := f.uc.Close(context.Background(), barberActor, "ord-1", map[string]any{
		"payment_method": "DINHEIRO",
		"discount":       json.Number("10"),
	})
	require.NoError(t, err)

	assert.Equal(t, entity.OrderFechada, res.Status)
	assert.True(t, res.Total.Equal(dec("70")), "80 de serviços - 10 de desconto")
	require.Len(t, f.orders.transitions, 1)
	assert.True(t, f.orders.transitions[0]["commission_value"].(decimal.Decimal).Equal(dec("32")), "40% de 80")
	assert.Equal(t, "cx-1", f.orders.transitions[0]["cash_register_id"])

	require.Len(t, f.cash.movements, 1)
	assert.Equal(t, entity.CashVenda, f.cash.movements[0].Type)
	assert.True(t, f.cash.movements[0].Amount.Equal(dec("70")))
	assert.Equal(t, 1, f.cash.locks)

	require.NotEmpty(t, f.rec.notes)
	assert.Equal(t, ports.LevelSuccess, f.rec.notes[0].Level)
	require.Len(t, f.rec.audits, 1)
	assert.True(t, f.rec.audits[0].Success)
}

func TestOrderClose_PixNaoExigeCaixa(t *testing.T) {
	f := newOrderFixture(false)

	res, err := f.uc.Close(context.Background(), barberActor, "ord-1", map[string]any{"payment_method": "PIX"})
	require.NoError(t, err)
	assert.True(t, res.Total.Equal(dec("80")))
	assert.Empty(t, f.cash.movements)
	assert.NotContains(t, f.orders.transitions[0], "cash_register_id")
}

func TestOrderClose_DinheiroSemCaixaAberto(t *testing.T) {
	f := newOrderFixture(false)

	_, err := f.uc.Close(context.Background(), barberActor, "ord-1", map[string]any{"payment_method": "DINHEIRO"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Empty(t, f.orders.transitions)
	assert.Equal(t, entity.OrderAberta, f.orders.order.Status)
}

func TestOrderClose_ComandaJaFechada(t *testing.T) {
	f := newOrderFixture(true)
	f.orders.order.Status = entity.OrderFechada

	_, err := f.uc.Close(context.Background(), barberActor, "ord-1", map[string]any{"payment_method": "PIX"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	require.NotEmpty(t, f.rec.notes)
	assert.Equal(t, ports.LevelError, f.rec.notes[0].Level)
	require.Len(t, f.rec.audits, 1)
	assert.False(t, f.rec.audits[0].Success)
	assert.Equal(t, string(domain.KindConstraint), f.rec.audits[0].ErrorKind)
}

func TestOrderClose_SemItens(t *testing.T) {
	f := newOrderFixture(true)
	f.orders.order.Items = nil

	_, err := f.uc.Close(context.Background(), barberActor, "ord-1", map[string]any{"payment_method": "PIX"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestOrderClose_PagamentoInvalido(t *testing.T) {
	f := newOrderFixture(true)

	_, err := f.uc.Close(context.Background(), barberActor, "ord-1", map[string]any{"payment_method": "CHEQUE"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, f.tx.runs)
}

func TestOrderClose_SemUnidadeNoToken(t *testing.T) {
	f := newOrderFixture(true)

	_, err := f.uc.Close(context.Background(), Actor{UserID: "x", Role: entity.RoleAdmin}, "ord-1", map[string]any{"payment_method": "PIX"})
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	assert.Zero(t, f.tx.runs)
}

func TestOrderCancel(t *testing.T) {
	f := newOrderFixture(true)

	res, err := f.uc.Cancel(context.Background(), barberActor, "ord-1")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderCancelada, res.Status)

	_, err = f.uc.Cancel(context.Background(), barberActor, "ord-1")
	assert.ErrorIs(t, err, domain.ErrConflict)
}
