package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barberpro/barber-analytics-api/internal/domain"
	"github.com/barberpro/barber-analytics-api/internal/domain/entity"
	"github.com/barberpro/barber-analytics-api/internal/domain/repository"
)

type fakeStatements struct {
	repository.BankStatementRepository
	pending    []*entity.BankStatement
	reconciled map[string]string
}

func (f *fakeStatements) ListPendingDebits(context.Context, string) ([]*entity.BankStatement, error) {
	return f.pending, nil
}

func (f *fakeStatements) MarkReconciled(_ context.Context, _, id, expenseID string) error {
	f.reconciled[id] = expenseID
	return nil
}

type fakeExpenses struct {
	repository.ExpenseRepository
	open    []*entity.Expense
	updates map[string]map[string]any
	created []map[string]any
	paid    map[string]time.Time
	settled map[string]bool // pagas ou canceladas depois da listagem
}

func (f *fakeExpenses) MarkPaid(_ context.Context, _, id string, paidAt time.Time, method string) error {
	if f.settled[id] {
		return domain.Conflict("Despesa não está mais em aberto.")
	}
	if f.paid == nil {
		f.paid = map[string]time.Time{}
	}
	f.paid[id] = paidAt
	f.updates[id] = map[string]any{"status": entity.ExpensePago, "payment_date": paidAt, "payment_method": method}
	return nil
}

func (f *fakeExpenses) ListOpenDue(context.Context, string, time.Time, time.Time) ([]*entity.Expense, error) {
	return f.open, nil
}

func (f *fakeExpenses) Create(_ context.Context, values map[string]any) (*entity.Expense, error) {
	f.created = append(f.created, values)
	return &entity.Expense{ID: "exp-new"}, nil
}

func day(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

func TestStatementReconcile(t *testing.T) {
	statements := &fakeStatements{
		reconciled: map[string]string{},
		pending: []*entity.BankStatement{
			{ID: "st-1", UnitID: testUnit, TransactionDate: day(2024, 5, 10), Description: "PAG ALUGUEL SALA", Amount: dec("1500"), Type: entity.StatementDebito, Status: entity.StatementPendente},
			{ID: "st-2", UnitID: testUnit, TransactionDate: day(2024, 5, 12), Description: "TARIFA", Amount: dec("19.90"), Type: entity.StatementDebito, Status: entity.StatementPendente},
		},
	}
	expenses := &fakeExpenses{
		updates: map[string]map[string]any{},
		open: []*entity.Expense{
			{ID: "exp-1", UnitID: testUnit, Description: "Aluguel sala", Value: dec("1500"), DueDate: day(2024, 5, 9), Status: entity.ExpensePendente},
			{ID: "exp-2", UnitID: testUnit, Description: "Energia", Value: dec("320"), DueDate: day(2024, 5, 10), Status: entity.ExpensePendente},
		},
	}
	tx := &fakeTx{repos: repository.Repos{Statements: statements, Expenses: expenses}}
	uc := NewStatementUseCase(statements, expenses, tx, nil, (&recorder{}).reporting())

	gerente := Actor{UserID: "u-ger", UnitID: testUnit, Role: entity.RoleGerente}
	res, err := uc.Reconcile(context.Background(), gerente)
	require.NoError(t, err)

	require.Len(t, res.Matched, 1)
	assert.Equal(t, "st-1", res.Matched[0].StatementID)
	assert.Equal(t, "exp-1", res.Matched[0].ExpenseID)
	assert.Equal(t, 1, res.Matched[0].DaysApart)
	assert.Equal(t, 1, res.Pending)

	assert.Equal(t, "exp-1", statements.reconciled["st-1"])
	upd := expenses.updates["exp-1"]
	require.NotNil(t, upd)
	assert.Equal(t, entity.ExpensePago, upd["status"])
	assert.Equal(t, day(2024, 5, 10), upd["payment_date"])
	assert.Equal(t, 1, tx.runs)
}

func TestStatementReconcile_SemPendentes(t *testing.T) {
	statements := &fakeStatements{reconciled: map[string]string{}}
	uc := NewStatementUseCase(statements, nil, &fakeTx{}, nil, (&recorder{}).reporting())

	res, err := uc.Reconcile(context.Background(), adminActor)
	require.NoError(t, err)
	assert.Empty(t, res.Matched)
	assert.Zero(t, res.Pending)
}

func TestStatementReconcile_RecepcionistaNegado(t *testing.T) {
	uc := NewStatementUseCase(nil, nil, nil, nil, (&recorder{}).reporting())

	_, err := uc.Reconcile(context.Background(), Actor{UserID: "u", UnitID: testUnit, Role: entity.RoleRecepcionista})
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
}

func TestStatementReconcile_DespesaQuitadaNoMeioTempoFicaPendente(t *testing.T) {
	statements := &fakeStatements{
		reconciled: map[string]string{},
		pending: []*entity.BankStatement{
			{ID: "st-1", UnitID: testUnit, TransactionDate: day(2024, 5, 10), Description: "PAG ALUGUEL SALA", Amount: dec("1500"), Type: entity.StatementDebito, Status: entity.StatementPendente},
			{ID: "st-2", UnitID: testUnit, TransactionDate: day(2024, 5, 11), Description: "ENERGIA ELETRICA", Amount: dec("320"), Type: entity.StatementDebito, Status: entity.StatementPendente},
		},
	}
	expenses := &fakeExpenses{
		updates: map[string]map[string]any{},
		settled: map[string]bool{"exp-1": true},
		open: []*entity.Expense{
			{ID: "exp-1", UnitID: testUnit, Description: "Aluguel sala", Value: dec("1500"), DueDate: day(2024, 5, 9), Status: entity.ExpensePendente},
			{ID: "exp-2", UnitID: testUnit, Description: "Energia eletrica", Value: dec("320"), DueDate: day(2024, 5, 10), Status: entity.ExpenseAtrasado},
		},
	}
	tx := &fakeTx{repos: repository.Repos{Statements: statements, Expenses: expenses}}
	uc := NewStatementUseCase(statements, expenses, tx, nil, (&recorder{}).reporting())

	res, err := uc.Reconcile(context.Background(), adminActor)
	require.NoError(t, err)

	require.Len(t, res.Matched, 1)
	assert.Equal(t, "exp-2", res.Matched[0].ExpenseID)
	assert.Equal(t, 1, res.Pending)
	assert.NotContains(t, expenses.paid, "exp-1")
	assert.Equal(t, day(2024, 5, 11), expenses.paid["exp-2"])
	assert.Equal(t, 2, tx.runs)
}
