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

type fakeMovements struct {
	repository.StockMovementRepository
	created []map[string]any
}

func (f *fakeMovements) Create(_ context.Context, values map[string]any) (*entity.StockMovement, error) {
	f.created = append(f.created, values)
	m := &entity.StockMovement{
		ID:           "6a7b8c9d-0000-4000-8000-000000000001",
		UnitID:       values["unit_id"].(string),
		ProductID:    values["product_id"].(string),
		MovementType: values["movement_type"].(string),
		Reason:       values["reason"].(string),
		Quantity:     values["quantity"].(decimal.Decimal),
		UnitCost:     values["unit_cost"].(decimal.Decimal),
		PerformedBy:  values["performed_by"].(string),
	}
	m.TotalCost = m.Quantity.Mul(m.UnitCost)
	return m, nil
}

func newStockFixture(p *entity.Product) (*StockMovementUseCase, *memProducts, *fakeMovements, *fakeTx, *recorder) {
	products := newMemProducts(p)
	movs := &fakeMovements{}
	tx := &fakeTx{repos: repository.Repos{Products: products, Movements: movs}}
	rec := &recorder{}
	return NewStockMovementUseCase(movs, tx, rec.reporting()), products, movs, tx, rec
}

func movement(kind, reason, qty, cost string) map[string]any {
	return map[string]any{
		"product_id":    uuidProduct,
		"movement_type": kind,
		"reason":        reason,
		"quantity":      json.Number(qty),
		"unit_cost":     json.Number(cost),
	}
}

func TestStockEntrada_RecalculaCustoMedio(t *testing.T) {
	uc, products, movs, _, rec := newStockFixture(pomada())

	res, err := uc.Register(context.Background(), recepUUID, movement("ENTRADA", "COMPRA", "10", "7"))
	require.NoError(t, err)

	// (10 × 5 + 10 × 7) / 20
	require.Contains(t, products.costs, uuidProduct)
	assert.True(t, products.costs[uuidProduct].Equal(dec("6")))
	require.Len(t, movs.created, 1)
	assert.Equal(t, recepUUID.UserID, res.PerformedBy)
	assert.True(t, res.TotalCost.Equal(dec("70")))

	require.Len(t, rec.notes, 1, "saldo 20 acima do mínimo: sem alerta")
	assert.Equal(t, ports.LevelSuccess, rec.notes[0].Level)
}

func TestStockEntrada_MesmoCustoNaoAtualizaProduto(t *testing.T) {
	uc, products, movs, _, _ := newStockFixture(pomada())

	_, err := uc.Register(context.Background(), recepUUID, movement("ENTRADA", "COMPRA", "4", "5"))
	require.NoError(t, err)
	assert.Empty(t, products.costs)
	assert.Len(t, movs.created, 1)
}

func TestStockSaida_EstoqueInsuficiente(t *testing.T) {
	uc, _, movs, tx, rec := newStockFixture(pomada())

	_, err := uc.Register(context.Background(), recepUUID, movement("SAIDA", "VENDA", "10.5", "0"))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 1, tx.runs)
	assert.Empty(t, movs.created)

	require.Len(t, rec.notes, 1)
	assert.Equal(t, ports.LevelError, rec.notes[0].Level)
	assert.Equal(t, domain.MsgStock, rec.notes[0].Message)
	require.Len(t, rec.audits, 1)
	assert.False(t, rec.audits[0].Success)
}

func TestStockSaida_SemCustoUsaCustoMedioEAlertaMinimo(t *testing.T) {
	uc, _, movs, _, rec := newStockFixture(pomada())

	_, err := uc.Register(context.Background(), recepUUID, movement("SAIDA", "USO_INTERNO", "7", "0"))
	require.NoError(t, err)
	require.Len(t, movs.created, 1)
	assert.True(t, movs.created[0]["unit_cost"].(decimal.Decimal).Equal(dec("5")))

	// saldo 3 = mínimo
	require.Len(t, rec.notes, 2)
	alert := rec.notes[1]
	assert.Equal(t, ports.LevelInfo, alert.Level)
	assert.Equal(t, "low_stock", alert.Action)
	assert.Equal(t, uuidUnit, alert.UnitID)
	assert.Empty(t, alert.UserID)
	assert.Contains(t, alert.Message, "Pomada modeladora")
}

func TestStockAjuste_ZeraSaldo(t *testing.T) {
	uc, _, movs, _, rec := newStockFixture(pomada())

	res, err := uc.Register(context.Background(), recepUUID, movement("AJUSTE", "PERDA", "0", "0"))
	require.NoError(t, err)
	assert.True(t, res.Quantity.IsZero())
	require.Len(t, movs.created, 1)
	require.Len(t, rec.notes, 2)
	assert.Equal(t, "low_stock", rec.notes[1].Action)
}

func TestStock_ProdutoInativoSoAceitaAjuste(t *testing.T) {
	p := pomada()
	p.IsActive = false
	uc, _, movs, _, _ := newStockFixture(p)

	_, err := uc.Register(context.Background(), recepUUID, movement("ENTRADA", "COMPRA", "1", "5"))
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Empty(t, movs.created)

	_, err = uc.Register(context.Background(), recepUUID, movement("AJUSTE", "AJUSTE", "2", "0"))
	require.NoError(t, err)
	assert.Len(t, movs.created, 1)
}

func TestStock_BarbeiroNaoMovimenta(t *testing.T) {
	uc, products, movs, tx, _ := newStockFixture(pomada())

	_, err := uc.Register(context.Background(), barberUUID, movement("ENTRADA", "COMPRA", "1", "5"))
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	assert.Zero(t, tx.runs)
	assert.Zero(t, products.calls)
	assert.Empty(t, movs.created)
}
