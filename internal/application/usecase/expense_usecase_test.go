package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barberpro/barber-analytics-api/internal/domain"
	"github.com/barberpro/barber-analytics-api/internal/domain/entity"
	"github.com/barberpro/barber-analytics-api/internal/domain/repository"
)

type fakeRecurring struct {
	repository.RecurringExpenseRepository
	due       []*entity.RecurringExpense
	generated map[string]string
	failOn    string
}

func (f *fakeRecurring) ListDue(_ context.Context, unitID, _ string) ([]*entity.RecurringExpense, error) {
	var out []*entity.RecurringExpense
	for _, r := range f.due {
		if unitID == "" || r.UnitID == unitID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRecurring) MarkGenerated(_ context.Context, id, period string) (bool, error) {
	if id == f.failOn {
		return false, errors.New("conexão perdida")
	}
	if f.generated[id] == period {
		return false, nil
	}
	f.generated[id] = period
	return true, nil
}

func newRecurringFixture() (*RecurringExpenseUseCase, *fakeRecurring, *fakeExpenses) {
	recurring := &fakeRecurring{
		generated: map[string]string{"rec-3": "2024-02"},
		due: []*entity.RecurringExpense{
			{ID: "rec-1", UnitID: testUnit, Description: "Aluguel", Category: "Aluguel", Value: dec("1500"), DayOfMonth: 31, IsActive: true, CreatedBy: "u-admin"},
			{ID: "rec-2", UnitID: "unit-2", Description: "Internet", Category: "Utilidades", Value: dec("120"), DayOfMonth: 10, IsActive: true, CreatedBy: "u-x"},
			{ID: "rec-3", UnitID: testUnit, Description: "Contador", Category: "Serviços", Value: dec("400"), DayOfMonth: 5, IsActive: true, CreatedBy: "u-admin"},
		},
	}
	expenses := &fakeExpenses{updates: map[string]map[string]any{}}
	tx := &fakeTx{repos: repository.Repos{Recurring: recurring, Expenses: expenses}}
	return NewRecurringExpenseUseCase(recurring, tx, (&recorder{}).reporting()), recurring, expenses
}

func TestRecurringGenerate_UnidadeDoUsuario(t *testing.T) {
	uc, _, expenses := newRecurringFixture()
	ref := day(2024, 2, 1)

	res, err := uc.Generate(context.Background(), adminActor, ref)
	require.NoError(t, err)
	assert.Equal(t, "2024-02", res.Period)
	assert.Equal(t, 1, res.Generated)
	assert.Equal(t, 1, res.Skipped, "rec-3 já gerado no período")

	require.Len(t, expenses.created, 1)
	v := expenses.created[0]
	assert.Equal(t, testUnit, v["unit_id"])
	assert.Equal(t, "rec-1", v["recurring_expense_id"])
	assert.Equal(t, entity.ExpensePendente, v["status"])
	assert.Equal(t, day(2024, 2, 29), v["due_date"], "dia 31 vira o último dia de fevereiro")
	assert.Equal(t, day(2024, 2, 1), v["competence_date"])
}

func TestRecurringGenerate_Idempotente(t *testing.T) {
	uc, _, expenses := newRecurringFixture()
	ref := day(2024, 2, 15)

	_, err := uc.Generate(context.Background(), adminActor, ref)
	require.NoError(t, err)
	res, err := uc.Generate(context.Background(), adminActor, ref)
	require.NoError(t, err)

	assert.Zero(t, res.Generated)
	assert.Len(t, expenses.created, 1)
}

func TestRecurringGenerateAll_FalhaDeUmModeloNaoInterrompe(t *testing.T) {
	uc, recurring, expenses := newRecurringFixture()
	recurring.failOn = "rec-1"

	res, err := uc.GenerateAll(context.Background(), time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Generated)
	assert.Equal(t, 1, res.Skipped)
	assert.Len(t, expenses.created, 2)
}

func TestRecurringGenerate_BarbeiroNegado(t *testing.T) {
	uc, _, expenses := newRecurringFixture()

	_, err := uc.Generate(context.Background(), barberActor, day(2024, 2, 1))
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	assert.Empty(t, expenses.created)
}
