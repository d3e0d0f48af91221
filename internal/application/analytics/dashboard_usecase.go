// Package analytics contém o dashboard financeiro da unidade.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/barberpro/barber-analytics-api/internal/application/dto"
	"github.com/barberpro/barber-analytics-api/internal/domain"
	"github.com/barberpro/barber-analytics-api/internal/domain/entity"
	"github.com/barberpro/barber-analytics-api/internal/domain/repository"
	"github.com/barberpro/barber-analytics-api/pkg/format"
)

const dashboardTopProfessionals = 5 // profissionais no ranking do dashboard

var hundred = decimal.NewFromInt(100)

// DashboardUseCase gera o resumo financeiro do mês.
//
// Fonte de dados: AnalyticsRepository (consultas só de leitura) e GoalRepository.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	goalRepo      repository.GoalRepository
}

// NewDashboardUseCase constrói o caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, goalRepo repository.GoalRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo, goalRepo: goalRepo}
}

// ParseMonth lê YYYY-MM; vazio devolve o mês corrente.
func ParseMonth(s string, now time.Time) (time.Time, error) {
	if s == "" {
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), nil
	}
	t, err := time.ParseInLocation("2006-01", s, now.Location())
	if err != nil {
		return time.Time{}, domain.Invalid("month deve estar no formato YYYY-MM")
	}
	return t, nil
}

// GetSummary monta o DashboardSummaryDTO da unidade para o mês de month.
//
// Cinco consultas em paralelo:
//  1. Revenue               → faturamento, comandas e produtos vendidos
//  2. PaidExpenses          → despesas pagas
//  3. RevenueByProfessional → ranking e metas por profissional
//  4. LowStockCount         → alerta de estoque
//  5. ListOverlapping       → metas do mês
func (uc *DashboardUseCase) GetSummary(ctx context.Context, unitID string, role entity.Role, month time.Time) (*dto.DashboardSummaryDTO, error) {
	if unitID == "" {
		return nil, domain.ErrPermissionDenied
	}
	if err := domain.Authorize(role, domain.PermDashboardRead); err != nil {
		return nil, domain.Wrap(domain.ErrPermissionDenied, "%s não pode %s", role, domain.PermDashboardRead)
	}

	// ── Intervalo do mês ──────────────────────────────────────────────────────
	from := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	to := from.AddDate(0, 1, 0)

	// ── Goroutines para as consultas ──────────────────────────────────────────
	type revenueResult struct {
		sum repository.RevenueSummary
		err error
	}
	type expensesResult struct {
		total decimal.Decimal
		err   error
	}
	type professionalsResult struct {
		rows []repository.ProfessionalRevenue
		err  error
	}
	type lowStockResult struct {
		count int
		err   error
	}
	type goalsResult struct {
		goals []*entity.Goal
		err   error
	}

	revenueCh := make(chan revenueResult, 1)
	expensesCh := make(chan expensesResult, 1)
	profCh := make(chan professionalsResult, 1)
	lowCh := make(chan lowStockResult, 1)
	goalsCh := make(chan goalsResult, 1)

	go func() {
		sum, err := uc.analyticsRepo.Revenue(ctx, unitID, from, to)
		revenueCh <- revenueResult{sum, err}
	}()
	go func() {
		total, err := uc.analyticsRepo.PaidExpenses(ctx, unitID, from, to)
		expensesCh <- expensesResult{total, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.RevenueByProfessional(ctx, unitID, from, to)
		profCh <- professionalsResult{rows, err}
	}()
	go func() {
		n, err := uc.analyticsRepo.LowStockCount(ctx, unitID)
		lowCh <- lowStockResult{n, err}
	}()
	go func() {
		goals, err := uc.goalRepo.ListOverlapping(ctx, unitID, from, to.Add(-time.Nanosecond))
		goalsCh <- goalsResult{goals, err}
	}()

	revenue := <-revenueCh
	expenses := <-expensesCh
	profs := <-profCh
	low := <-lowCh
	goals := <-goalsCh

	if revenue.err != nil {
		return nil, fmt.Errorf("dashboard: faturamento: %w", revenue.err)
	}
	if expenses.err != nil {
		return nil, fmt.Errorf("dashboard: despesas: %w", expenses.err)
	}
	if profs.err != nil {
		return nil, fmt.Errorf("dashboard: profissionais: %w", profs.err)
	}
	if low.err != nil {
		return nil, fmt.Errorf("dashboard: estoque baixo: %w", low.err)
	}
	if goals.err != nil {
		return nil, fmt.Errorf("dashboard: metas: %w", goals.err)
	}

	// ── Indicadores ───────────────────────────────────────────────────────────
	rev := revenue.sum.Revenue.Round(2)
	profit := rev.Sub(expenses.total).Round(2)
	out := &dto.DashboardSummaryDTO{
		Month:            entity.Period(from),
		MonthLabel:       monthLabel(from),
		Revenue:          rev,
		Expenses:         expenses.total.Round(2),
		Profit:           profit,
		MarginPercent:    percent(profit, rev),
		OrdersCount:      revenue.sum.OrdersCount,
		AverageTicket:    ticket(rev, revenue.sum.OrdersCount),
		ProductsSold:     revenue.sum.ProductsSold,
		RevenueFormatted: format.BRL(rev),
		ProfitFormatted:  format.BRL(profit),
		LowStockCount:    low.count,
		Goals:            goalProgress(goals.goals, revenue.sum, profs.rows),
		TopProfessionals: topProfessionals(profs.rows, dashboardTopProfessionals),
	}
	return out, nil
}

// goalProgress mede cada meta contra o realizado da unidade ou do profissional.
func goalProgress(goals []*entity.Goal, unit repository.RevenueSummary, profs []repository.ProfessionalRevenue) []dto.GoalProgressDTO {
	byProf := make(map[string]repository.RevenueSummary, len(profs))
	for _, p := range profs {
		byProf[p.ProfessionalID] = repository.RevenueSummary{Revenue: p.Revenue, OrdersCount: p.OrdersCount, ProductsSold: p.ProductsSold}
	}
	out := make([]dto.GoalProgressDTO, 0, len(goals))
	for _, g := range goals {
		src := unit
		if g.ProfessionalID != nil {
			src = byProf[*g.ProfessionalID]
		}
		achieved := achievedFor(g.GoalType, src)
		out = append(out, dto.GoalProgressDTO{
			GoalID:         g.ID,
			GoalType:       g.GoalType,
			ProfessionalID: g.ProfessionalID,
			Target:         g.TargetValue,
			Achieved:       achieved,
			Percent:        percent(achieved, g.TargetValue),
		})
	}
	return out
}

func achievedFor(goalType string, s repository.RevenueSummary) decimal.Decimal {
	switch goalType {
	case entity.GoalFaturamento:
		return s.Revenue.Round(2)
	case entity.GoalAtendimentos:
		return decimal.NewFromInt(int64(s.OrdersCount))
	case entity.GoalTicketMedio:
		return ticket(s.Revenue, s.OrdersCount)
	case entity.GoalProdutos:
		return s.ProductsSold
	}
	return decimal.Zero
}

func topProfessionals(rows []repository.ProfessionalRevenue, limit int) []dto.TopProfessionalDTO {
	sorted := make([]repository.ProfessionalRevenue, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Revenue.GreaterThan(sorted[j].Revenue) })
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	out := make([]dto.TopProfessionalDTO, 0, len(sorted))
	for _, r := range sorted {
		out = append(out, dto.TopProfessionalDTO{
			ProfessionalID: r.ProfessionalID,
			Name:           r.Name,
			Revenue:        r.Revenue.Round(2),
			OrdersCount:    r.OrdersCount,
			Commission:     r.Commission.Round(2),
		})
	}
	return out
}

// percent part/whole*100 com duas casas; whole zero devolve zero.
func percent(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred).Round(2)
}

func ticket(revenue decimal.Decimal, orders int) decimal.Decimal {
	if orders == 0 {
		return decimal.Zero
	}
	return revenue.Div(decimal.NewFromInt(int64(orders))).Round(2)
}

// monthLabel devolve o rótulo do mês, ex: "Março 2025".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
		"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
