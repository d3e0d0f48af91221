package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// RevenueSummary agregados das comandas fechadas no período.
type RevenueSummary struct {
	Revenue      decimal.Decimal
	OrdersCount  int
	ProductsSold decimal.Decimal // quantidade de itens PRODUTO
}

// ProfessionalRevenue faturamento de um profissional no período.
type ProfessionalRevenue struct {
	ProfessionalID string
	Name           string
	Revenue        decimal.Decimal
	OrdersCount    int
	Commission     decimal.Decimal
	ProductsSold   decimal.Decimal
}

// AnalyticsRepository consultas de leitura do dashboard financeiro.
type AnalyticsRepository interface {
	Revenue(ctx context.Context, unitID string, from, to time.Time) (RevenueSummary, error)
	PaidExpenses(ctx context.Context, unitID string, from, to time.Time) (decimal.Decimal, error)
	RevenueByProfessional(ctx context.Context, unitID string, from, to time.Time) ([]ProfessionalRevenue, error)
	LowStockCount(ctx context.Context, unitID string) (int, error)
}
