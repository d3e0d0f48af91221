package postgres

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"github.com/barberpro/barber-analytics-api/internal/domain/entity"
	"github.com/barberpro/barber-analytics-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = "id, unit_id, name, description, sku, barcode, category, brand, unit_measure, " +
	"cost_price, sale_price, current_stock, min_stock, max_stock, supplier_id, is_active, created_at, updated_at"

// ProductRepo implementação de ProductRepository sobre PostgreSQL (pool ou tx).
type ProductRepo struct {
	base
}

// NewProductRepository constrói o adaptador de produtos.
func NewProductRepository(q Querier, timeout time.Duration) *ProductRepo {
	return &ProductRepo{base: newBase(q, timeout)}
}

func scanProduct(s scanner) (*entity.Product, error) {
	var p entity.Product
	err := s.Scan(
		&p.ID, &p.UnitID, &p.Name, &p.Description, &p.SKU, &p.Barcode, &p.Category, &p.Brand, &p.UnitMeasure,
		&p.CostPrice, &p.SalePrice, &p.CurrentStock, &p.MinStock, &p.MaxStock, &p.SupplierID, &p.IsActive,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepo) one(ctx context.Context, op string, qb squirrel.Sqlizer) (*entity.Product, error) {
	var p *entity.Product
	err := r.queryRow(ctx, op, qb, func(s scanner) (err error) {
		p, err = scanProduct(s)
		return err
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Create insere o produto e devolve a linha gravada.
func (r *ProductRepo) Create(ctx context.Context, values map[string]any) (*entity.Product, error) {
	qb := psql.Insert("products").SetMap(values).Suffix("RETURNING " + productColumns)
	return r.one(ctx, "insert product", qb)
}

func (r *ProductRepo) selectByID(unitID, id string) squirrel.SelectBuilder {
	return psql.Select(productColumns).From("products").
		Where(squirrel.Eq{"id": id, "unit_id": unitID}).
		Where("deleted_at IS NULL")
}

// FindByID busca um produto não excluído da unidade.
func (r *ProductRepo) FindByID(ctx context.Context, unitID, id string) (*entity.Product, error) {
	return r.one(ctx, "find product", r.selectByID(unitID, id))
}

// FindForUpdate igual a FindByID, com a linha travada (usar dentro de transação).
func (r *ProductRepo) FindForUpdate(ctx context.Context, unitID, id string) (*entity.Product, error) {
	return r.one(ctx, "lock product", r.selectByID(unitID, id).Suffix("FOR UPDATE"))
}

// Update altera apenas as colunas informadas.
func (r *ProductRepo) Update(ctx context.Context, unitID, id string, values map[string]any) (*entity.Product, error) {
	qb := psql.Update("products").SetMap(values).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id, "unit_id": unitID}).
		Where("deleted_at IS NULL").
		Suffix("RETURNING " + productColumns)
	return r.one(ctx, "update product", qb)
}

// UpdateCost grava o custo médio (usado pelas entradas de estoque).
func (r *ProductRepo) UpdateCost(ctx context.Context, unitID, id string, cost decimal.Decimal) error {
	qb := psql.Update("products").
		Set("cost_price", cost).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id, "unit_id": unitID})
	return r.execOne(ctx, "update product cost", qb)
}

// SoftDelete inativa o produto e marca deleted_at.
func (r *ProductRepo) SoftDelete(ctx context.Context, unitID, id string) error {
	qb := psql.Update("products").
		Set("is_active", false).
		Set("deleted_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id, "unit_id": unitID}).
		Where("deleted_at IS NULL")
	return r.execOne(ctx, "delete product", qb)
}

func productWhere(qb squirrel.SelectBuilder, unitID string, f repository.ProductFilter) squirrel.SelectBuilder {
	qb = qb.From("products").Where(squirrel.Eq{"unit_id": unitID}).Where("deleted_at IS NULL")
	if f.Search != "" {
		qb = qb.Where(ilike(f.Search, "name", "sku", "barcode"))
	}
	if f.Category != "" {
		qb = qb.Where(squirrel.Eq{"category": f.Category})
	}
	if f.OnlyActive {
		qb = qb.Where(squirrel.Eq{"is_active": true})
	}
	if f.LowStock {
		qb = qb.Where("current_stock <= min_stock")
	}
	return qb
}

// List devolve a página pedida e o total de registros do filtro.
func (r *ProductRepo) List(ctx context.Context, unitID string, f repository.ProductFilter) ([]*entity.Product, int, error) {
	total, err := r.count(ctx, "count products", productWhere(psql.Select("COUNT(*)"), unitID, f))
	if err != nil {
		return nil, 0, err
	}
	qb := page(productWhere(psql.Select(productColumns), unitID, f).OrderBy("name"), f.Limit, f.Offset)
	list, err := r.many(ctx, "list products", qb)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListLowStock produtos ativos no estoque mínimo ou abaixo dele.
func (r *ProductRepo) ListLowStock(ctx context.Context, unitID string) ([]*entity.Product, error) {
	f := repository.ProductFilter{OnlyActive: true, LowStock: true}
	qb := productWhere(psql.Select(productColumns), unitID, f).OrderBy("current_stock - min_stock", "name")
	return r.many(ctx, "list low stock", qb)
}

func (r *ProductRepo) many(ctx context.Context, op string, qb squirrel.Sqlizer) ([]*entity.Product, error) {
	list := make([]*entity.Product, 0)
	err := r.queryRows(ctx, op, qb, func(s scanner) error {
		p, err := scanProduct(s)
		if err != nil {
			return err
		}
		list = append(list, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// Stats agregados de estoque da unidade.
func (r *ProductRepo) Stats(ctx context.Context, unitID string) (*entity.ProductStats, error) {
	qb := psql.Select(
		"COUNT(*)",
		"COUNT(*) FILTER (WHERE is_active)",
		"COUNT(*) FILTER (WHERE is_active AND current_stock <= min_stock)",
		"COALESCE(SUM(current_stock * cost_price) FILTER (WHERE is_active), 0)",
	).From("products").Where(squirrel.Eq{"unit_id": unitID}).Where("deleted_at IS NULL")

	var st entity.ProductStats
	err := r.queryRow(ctx, "product stats", qb, func(s scanner) error {
		return s.Scan(&st.TotalProducts, &st.ActiveProducts, &st.LowStockCount, &st.StockValue)
	})
	if err != nil {
		return nil, err
	}
	return &st, nil
}
