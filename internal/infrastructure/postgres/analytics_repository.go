package postgres

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"github.com/barberpro/barber-analytics-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas somente leitura do dashboard financeiro.
// Intervalos são semiabertos: [from, to).
type AnalyticsRepo struct {
	base
}

// NewAnalyticsRepository constrói o adaptador de analytics.
func NewAnalyticsRepository(q Querier, timeout time.Duration) *AnalyticsRepo {
	return &AnalyticsRepo{base: newBase(q, timeout)}
}

const revenueQuery = `
	SELECT
	    COALESCE(SUM(o.total), 0)                                        AS revenue,
	    COUNT(*)                                                         AS orders_count,
	    COALESCE(SUM((SELECT SUM(i.quantity) FROM order_items i
	                   WHERE i.order_id = o.id AND i.item_type = 'PRODUTO')), 0) AS products_sold
	FROM orders o
	WHERE o.unit_id   = $1
	  AND o.status    = 'FECHADA'
	  AND o.closed_at >= $2
	  AND o.closed_at <  $3`

// Revenue faturamento das comandas fechadas no período.
func (r *AnalyticsRepo) Revenue(ctx context.Context, unitID string, from, to time.Time) (repository.RevenueSummary, error) {
	var out repository.RevenueSummary
	err := r.queryRow(ctx, "analytics.Revenue", squirrel.Expr(revenueQuery, unitID, from, to), func(s scanner) error {
		return s.Scan(&out.Revenue, &out.OrdersCount, &out.ProductsSold)
	})
	return out, err
}

const paidExpensesQuery = `
	SELECT COALESCE(SUM(value), 0)
	FROM expenses
	WHERE unit_id      = $1
	  AND status       = 'PAGO'
	  AND deleted_at   IS NULL
	  AND payment_date >= $2
	  AND payment_date <  $3`

// PaidExpenses soma das despesas pagas no período.
func (r *AnalyticsRepo) PaidExpenses(ctx context.Context, unitID string, from, to time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	err := r.queryRow(ctx, "analytics.PaidExpenses", squirrel.Expr(paidExpensesQuery, unitID, from, to), func(s scanner) error {
		return s.Scan(&total)
	})
	return total, err
}

const byProfessionalQuery = `
	SELECT
	    p.id,
	    p.name,
	    COALESCE(SUM(o.total), 0)            AS revenue,
	    COUNT(o.id)                          AS orders_count,
	    COALESCE(SUM(o.commission_value), 0) AS commission,
	    COALESCE(SUM((SELECT SUM(i.quantity) FROM order_items i
	                   WHERE i.order_id = o.id AND i.item_type = 'PRODUTO')), 0) AS products_sold
	FROM professionals p
	JOIN orders o ON o.professional_id = p.id
	WHERE o.unit_id   = $1
	  AND o.status    = 'FECHADA'
	  AND o.closed_at >= $2
	  AND o.closed_at <  $3
	GROUP BY p.id, p.name
	ORDER BY revenue DESC`

// RevenueByProfessional ranking de faturamento por profissional.
func (r *AnalyticsRepo) RevenueByProfessional(ctx context.Context, unitID string, from, to time.Time) ([]repository.ProfessionalRevenue, error) {
	list := make([]repository.ProfessionalRevenue, 0)
	err := r.queryRows(ctx, "analytics.RevenueByProfessional", squirrel.Expr(byProfessionalQuery, unitID, from, to), func(s scanner) error {
		var row repository.ProfessionalRevenue
		if err := s.Scan(&row.ProfessionalID, &row.Name, &row.Revenue, &row.OrdersCount, &row.Commission, &row.ProductsSold); err != nil {
			return err
		}
		list = append(list, row)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// LowStockCount produtos ativos no estoque mínimo ou abaixo.
func (r *AnalyticsRepo) LowStockCount(ctx context.Context, unitID string) (int, error) {
	qb := psql.Select("COUNT(*)").From("products").
		Where(squirrel.Eq{"unit_id": unitID, "is_active": true}).
		Where("deleted_at IS NULL").
		Where("current_stock <= min_stock")
	return r.count(ctx, "analytics.LowStockCount", qb)
}

