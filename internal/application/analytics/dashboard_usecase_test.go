package analytics

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barberpro/barber-analytics-api/internal/domain"
	"github.com/barberpro/barber-analytics-api/internal/domain/entity"
	"github.com/barberpro/barber-analytics-api/internal/domain/repository"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fakeAnalytics struct {
	mu          sync.Mutex
	from, to    time.Time
	revenue     repository.RevenueSummary
	expenses    decimal.Decimal
	profs       []repository.ProfessionalRevenue
	lowStock    int
	expensesErr error
}

func (f *fakeAnalytics) Revenue(_ context.Context, _ string, from, to time.Time) (repository.RevenueSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.from, f.to = from, to
	return f.revenue, nil
}

func (f *fakeAnalytics) PaidExpenses(context.Context, string, time.Time, time.Time) (decimal.Decimal, error) {
	return f.expenses, f.expensesErr
}

func (f *fakeAnalytics) RevenueByProfessional(context.Context, string, time.Time, time.Time) ([]repository.ProfessionalRevenue, error) {
	return f.profs, nil
}

func (f *fakeAnalytics) LowStockCount(context.Context, string) (int, error) {
	return f.lowStock, nil
}

type fakeGoals struct {
	repository.GoalRepository
	goals []*entity.Goal
}

func (f *fakeGoals) ListOverlapping(context.Context, string, time.Time, time.Time) ([]*entity.Goal, error) {
	return f.goals, nil
}

func strPtr(s string) *string { return &s }

func marco() (*fakeAnalytics, *fakeGoals) {
	a := &fakeAnalytics{
		revenue:  repository.RevenueSummary{Revenue: dec("10000"), OrdersCount: 80, ProductsSold: dec("25")},
		expenses: dec("6500"),
		lowStock: 2,
		profs: []repository.ProfessionalRevenue{
			{ProfessionalID: "p-ana", Name: "Ana", Revenue: dec("4000"), OrdersCount: 30, Commission: dec("1600")},
			{ProfessionalID: "p-carlos", Name: "Carlos", Revenue: dec("6000"), OrdersCount: 50, Commission: dec("2400")},
			{ProfessionalID: "p-3", Name: "Bruno", Revenue: dec("10")},
			{ProfessionalID: "p-4", Name: "Davi", Revenue: dec("20")},
			{ProfessionalID: "p-5", Name: "Edu", Revenue: dec("30")},
			{ProfessionalID: "p-6", Name: "Fábio", Revenue: dec("5")},
		},
	}
	g := &fakeGoals{goals: []*entity.Goal{
		{ID: "g-unidade", GoalType: entity.GoalFaturamento, TargetValue: dec("12500")},
		{ID: "g-carlos", GoalType: entity.GoalAtendimentos, ProfessionalID: strPtr("p-carlos"), TargetValue: dec("40")},
		{ID: "g-ana", GoalType: entity.GoalTicketMedio, ProfessionalID: strPtr("p-ana"), TargetValue: dec("160")},
		{ID: "g-sem-vendas", GoalType: entity.GoalProdutos, ProfessionalID: strPtr("p-x"), TargetValue: dec("10")},
	}}
	return a, g
}

func TestGetSummary_IndicadoresDoMes(t *testing.T) {
	a, g := marco()
	uc := NewDashboardUseCase(a, g)
	month := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)

	s, err := uc.GetSummary(context.Background(), "unit-1", entity.RoleGerente, month)
	require.NoError(t, err)

	assert.Equal(t, month, a.from)
	assert.Equal(t, time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC), a.to)
	assert.Equal(t, "2025-03", s.Month)
	assert.Equal(t, "Março 2025", s.MonthLabel)
	assert.True(t, s.Profit.Equal(dec("3500")))
	assert.True(t, s.MarginPercent.Equal(dec("35")))
	assert.True(t, s.AverageTicket.Equal(dec("125")))
	assert.Equal(t, "R$ 10.000,00", s.RevenueFormatted)
	assert.Equal(t, "R$ 3.500,00", s.ProfitFormatted)
	assert.Equal(t, 2, s.LowStockCount)

	require.Len(t, s.TopProfessionals, dashboardTopProfessionals)
	assert.Equal(t, "Carlos", s.TopProfessionals[0].Name)
	assert.Equal(t, "Ana", s.TopProfessionals[1].Name)
	assert.Equal(t, "Bruno", s.TopProfessionals[4].Name)

	require.Len(t, s.Goals, 4)
	progress := map[string]string{}
	for _, gp := range s.Goals {
		progress[gp.GoalID] = gp.Percent.String()
	}
	assert.Equal(t, map[string]string{
		"g-unidade":    "80",
		"g-carlos":     "125",
		"g-ana":        "83.33", // ticket 133.33 / 160
		"g-sem-vendas": "0",
	}, progress)
}

func TestGetSummary_MesSemFaturamento(t *testing.T) {
	a := &fakeAnalytics{expenses: dec("300")}
	uc := NewDashboardUseCase(a, &fakeGoals{})

	s, err := uc.GetSummary(context.Background(), "unit-1", entity.RoleAdmin, time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, s.Profit.Equal(dec("-300")))
	assert.True(t, s.MarginPercent.IsZero())
	assert.True(t, s.AverageTicket.IsZero())
	assert.Empty(t, s.TopProfessionals)
	assert.Empty(t, s.Goals)
}

func TestGetSummary_Permissao(t *testing.T) {
	a, g := marco()
	uc := NewDashboardUseCase(a, g)
	month := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)

	for _, role := range []entity.Role{entity.RoleBarbeiro, entity.RoleRecepcionista} {
		_, err := uc.GetSummary(context.Background(), "unit-1", role, month)
		assert.ErrorIs(t, err, domain.ErrPermissionDenied, role)
	}
	_, err := uc.GetSummary(context.Background(), "", entity.RoleAdmin, month)
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
}

func TestGetSummary_FalhaDeConsulta(t *testing.T) {
	a, g := marco()
	a.expensesErr = domain.Wrap(domain.ErrNetwork, "query: %w", errors.New("timeout"))
	uc := NewDashboardUseCase(a, g)

	_, err := uc.GetSummary(context.Background(), "unit-1", entity.RoleAdmin, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, domain.ErrNetwork)
	assert.Contains(t, err.Error(), "despesas")
}

func TestParseMonth(t *testing.T) {
	now := time.Date(2025, time.July, 20, 10, 0, 0, 0, time.UTC)

	m, err := ParseMonth("", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC), m)

	m, err = ParseMonth("2024-12", now)
	require.NoError(t, err)
	assert.Equal(t, time.December, m.Month())

	_, err = ParseMonth("12/2024", now)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
