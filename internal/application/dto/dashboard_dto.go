package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO resposta de GET /api/dashboard/summary.
// Indicadores financeiros do mês informado e progresso das metas.
type DashboardSummaryDTO struct {
	Month      string `json:"month"`       // YYYY-MM
	MonthLabel string `json:"month_label"` // ex: "Março 2025"

	Revenue       decimal.Decimal `json:"revenue"`        // comandas fechadas
	Expenses      decimal.Decimal `json:"expenses"`       // despesas pagas
	Profit        decimal.Decimal `json:"profit"`         // revenue - expenses
	MarginPercent decimal.Decimal `json:"margin_percent"` // profit / revenue * 100
	OrdersCount   int             `json:"orders_count"`
	AverageTicket decimal.Decimal `json:"average_ticket"`
	ProductsSold  decimal.Decimal `json:"products_sold"`

	RevenueFormatted string `json:"revenue_formatted"`
	ProfitFormatted  string `json:"profit_formatted"`

	LowStockCount    int                  `json:"low_stock_count"`
	Goals            []GoalProgressDTO    `json:"goals"`
	TopProfessionals []TopProfessionalDTO `json:"top_professionals"`
}

// GoalProgressDTO progresso de uma meta no mês.
type GoalProgressDTO struct {
	GoalID         string          `json:"goal_id"`
	GoalType       string          `json:"goal_type"`
	ProfessionalID *string         `json:"professional_id,omitempty"`
	Target         decimal.Decimal `json:"target"`
	Achieved       decimal.Decimal `json:"achieved"`
	Percent        decimal.Decimal `json:"percent"`
}

// TopProfessionalDTO profissional no ranking de faturamento do mês.
type TopProfessionalDTO struct {
	ProfessionalID string          `json:"professional_id"`
	Name           string          `json:"name"`
	Revenue        decimal.Decimal `json:"revenue"`
	OrdersCount    int             `json:"orders_count"`
	Commission     decimal.Decimal `json:"commission"`
}
