package usecase

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barberpro/barber-analytics-api/internal/domain"
	"github.com/barberpro/barber-analytics-api/internal/domain/entity"
	"github.com/barberpro/barber-analytics-api/internal/domain/repository"
)

func newCashFixture() (*CashRegisterUseCase, *fakeCash, *fakeTx, *recorder) {
	cash := &fakeCash{
		register: &entity.CashRegister{ID: "cx-1", UnitID: testUnit, Status: entity.CashOpen, OpeningBalance: dec("100")},
		movements: []*entity.CashMovement{
			{Type: entity.CashVenda, Amount: dec("70")},
			{Type: entity.CashSuprimento, Amount: dec("50")},
			{Type: entity.CashSangria, Amount: dec("20")},
		},
	}
	tx := &fakeTx{repos: repository.Repos{CashRegisters: cash}}
	rec := &recorder{}
	return NewCashRegisterUseCase(cash, nil, tx, nil, rec.reporting()), cash, tx, rec
}

func TestCashClose_CalculaEsperadoEDiferenca(t *testing.T) {
	uc, cash, _, rec := newCashFixture()
	recep := Actor{UserID: "u-recep", UnitID: testUnit, Role: entity.RoleRecepcionista}

	res, err := uc.Close(context.Background(), recep, "cx-1", map[string]any{"closing_balance": json.Number("195")})
	require.NoError(t, err)

	// 100 + 70 + 50 - 20
	assert.True(t, res.ExpectedBalance.Equal(dec("200")))
	require.NotNil(t, res.Difference)
	assert.True(t, res.Difference.Equal(dec("-5")))
	assert.Equal(t, entity.CashClosed, res.Status)
	assert.Equal(t, "u-recep", cash.closed["closed_by"])
	assert.Equal(t, 1, cash.locks, "esperado calculado com o caixa travado")

	require.NotEmpty(t, rec.notes)
	assert.Contains(t, rec.notes[0].Message, "-5.00")
}

func TestCashClose_CaixaJaFechado(t *testing.T) {
	uc, cash, _, _ := newCashFixture()
	cash.register.Status = entity.CashClosed

	_, err := uc.Close(context.Background(), adminActor, "cx-1", map[string]any{"closing_balance": json.Number("10")})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Nil(t, cash.closed)
}

func TestCashMovement_SangriaLimitadaAoSaldo(t *testing.T) {
	uc, cash, _, _ := newCashFixture()

	_, err := uc.AddMovement(context.Background(), adminActor, map[string]any{
		"type": "SANGRIA", "amount": json.Number("200.01"), "description": "Depósito bancário",
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Len(t, cash.movements, 3)

	m, err := uc.AddMovement(context.Background(), adminActor, map[string]any{
		"type": "SANGRIA", "amount": json.Number("200"), "description": "Depósito bancário",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.CashSangria, m.Type)
	assert.Len(t, cash.movements, 4)
	assert.Equal(t, 2, cash.locks, "cada sangria lê o saldo com o caixa travado")
}

func TestCashMovement_BarbeiroNaoMexeNoCaixa(t *testing.T) {
	uc, cash, tx, rec := newCashFixture()

	_, err := uc.AddMovement(context.Background(), barberActor, map[string]any{
		"type": "SUPRIMENTO", "amount": json.Number("10"), "description": "Troco",
	})
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	assert.Zero(t, tx.runs)
	assert.Len(t, cash.movements, 3)

	require.Len(t, rec.audits, 1)
	assert.False(t, rec.audits[0].Success)
	assert.Equal(t, string(domain.KindPermission), rec.audits[0].ErrorKind)
}
