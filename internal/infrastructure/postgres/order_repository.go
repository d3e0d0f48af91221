package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/barberpro/barber-analytics-api/internal/domain"
	"github.com/barberpro/barber-analytics-api/internal/domain/entity"
	"github.com/barberpro/barber-analytics-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const (
	orderColumns = "id, unit_id, code, professional_id, client_name, client_phone, status, discount, total, " +
		"commission_value, payment_method, cash_register_id, opened_by, opened_at, closed_at"
	orderItemColumns = "id, order_id, item_type, product_id, description, quantity, unit_price, discount, created_at"
)

// OrderRepo comandas e seus itens.
type OrderRepo struct {
	base
}

// NewOrderRepository constrói o adaptador de comandas.
func NewOrderRepository(q Querier, timeout time.Duration) *OrderRepo {
	return &OrderRepo{base: newBase(q, timeout)}
}

func scanOrder(s scanner) (*entity.Order, error) {
	var o entity.Order
	err := s.Scan(
		&o.ID, &o.UnitID, &o.Code, &o.ProfessionalID, &o.ClientName, &o.ClientPhone, &o.Status, &o.Discount,
		&o.Total, &o.CommissionValue, &o.PaymentMethod, &o.CashRegisterID, &o.OpenedBy, &o.OpenedAt, &o.ClosedAt,
	)
	if err != nil {
		return nil, err
	}
	o.Items = []entity.OrderItem{}
	return &o, nil
}

func scanOrderItem(s scanner) (entity.OrderItem, error) {
	var it entity.OrderItem
	err := s.Scan(&it.ID, &it.OrderID, &it.ItemType, &it.ProductID, &it.Description, &it.Quantity, &it.UnitPrice, &it.Discount, &it.CreatedAt)
	return it, err
}

func (r *OrderRepo) one(ctx context.Context, op string, qb squirrel.Sqlizer) (*entity.Order, error) {
	var o *entity.Order
	err := r.queryRow(ctx, op, qb, func(s scanner) (err error) {
		o, err = scanOrder(s)
		return err
	})
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *OrderRepo) withItems(ctx context.Context, o *entity.Order) (*entity.Order, error) {
	qb := psql.Select(orderItemColumns).From("order_items").Where(squirrel.Eq{"order_id": o.ID}).OrderBy("created_at")
	err := r.queryRows(ctx, "list order items", qb, func(s scanner) error {
		it, err := scanOrderItem(s)
		if err != nil {
			return err
		}
		o.Items = append(o.Items, it)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return o, nil
}

// Create insere a comanda (sem itens).
func (r *OrderRepo) Create(ctx context.Context, values map[string]any) (*entity.Order, error) {
	return r.one(ctx, "insert order", psql.Insert("orders").SetMap(values).Suffix("RETURNING "+orderColumns))
}

// FindByID busca a comanda com os itens.
func (r *OrderRepo) FindByID(ctx context.Context, unitID, id string) (*entity.Order, error) {
	o, err := r.one(ctx, "find order", psql.Select(orderColumns).From("orders").Where(squirrel.Eq{"id": id, "unit_id": unitID}))
	if err != nil {
		return nil, err
	}
	return r.withItems(ctx, o)
}

// Transition altera a comanda se ela ainda estiver no status from.
// Sem linha afetada: ErrNotFound se a comanda não existe, ErrConflict se mudou de status.
func (r *OrderRepo) Transition(ctx context.Context, unitID, id, from string, values map[string]any) (*entity.Order, error) {
	qb := psql.Update("orders").SetMap(values).
		Where(squirrel.Eq{"id": id, "unit_id": unitID, "status": from}).
		Suffix("RETURNING " + orderColumns)
	o, err := r.one(ctx, "update order", qb)
	if errors.Is(err, domain.ErrNotFound) {
		if _, ferr := r.one(ctx, "find order", psql.Select(orderColumns).From("orders").Where(squirrel.Eq{"id": id, "unit_id": unitID})); ferr != nil {
			return nil, ferr
		}
		return nil, domain.Conflict("A comanda não está mais " + statusLabel(from) + ".")
	}
	if err != nil {
		return nil, err
	}
	return r.withItems(ctx, o)
}

func statusLabel(status string) string {
	switch status {
	case entity.OrderAberta:
		return "aberta"
	case entity.OrderFechada:
		return "fechada"
	default:
		return "cancelada"
	}
}

func orderWhere(qb squirrel.SelectBuilder, unitID string, f repository.OrderFilter) squirrel.SelectBuilder {
	qb = qb.From("orders").Where(squirrel.Eq{"unit_id": unitID})
	if f.Status != "" {
		qb = qb.Where(squirrel.Eq{"status": f.Status})
	}
	if f.ProfessionalID != "" {
		qb = qb.Where(squirrel.Eq{"professional_id": f.ProfessionalID})
	}
	if f.From != nil {
		qb = qb.Where(squirrel.GtOrEq{"opened_at": *f.From})
	}
	if f.To != nil {
		qb = qb.Where(squirrel.Lt{"opened_at": f.To.AddDate(0, 0, 1)})
	}
	return qb
}

// List comandas mais recentes primeiro (sem itens).
func (r *OrderRepo) List(ctx context.Context, unitID string, f repository.OrderFilter) ([]*entity.Order, int, error) {
	total, err := r.count(ctx, "count orders", orderWhere(psql.Select("COUNT(*)"), unitID, f))
	if err != nil {
		return nil, 0, err
	}
	qb := page(orderWhere(psql.Select(orderColumns), unitID, f).OrderBy("opened_at DESC"), f.Limit, f.Offset)
	list := make([]*entity.Order, 0)
	err = r.queryRows(ctx, "list orders", qb, func(s scanner) error {
		o, err := scanOrder(s)
		if err != nil {
			return err
		}
		list = append(list, o)
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// AddItem insere um item na comanda.
func (r *OrderRepo) AddItem(ctx context.Context, orderID string, values map[string]any) (*entity.OrderItem, error) {
	row := make(map[string]any, len(values)+1)
	for k, v := range values {
		row[k] = v
	}
	row["order_id"] = orderID
	var it entity.OrderItem
	qb := psql.Insert("order_items").SetMap(row).Suffix("RETURNING " + orderItemColumns)
	err := r.queryRow(ctx, "insert order item", qb, func(s scanner) (err error) {
		it, err = scanOrderItem(s)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// RemoveItem remove um item da comanda.
func (r *OrderRepo) RemoveItem(ctx context.Context, orderID, itemID string) error {
	return r.execOne(ctx, "delete order item", psql.Delete("order_items").Where(squirrel.Eq{"id": itemID, "order_id": orderID}))
}
