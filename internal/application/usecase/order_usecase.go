package usecase

import (
	"context"
	"errors"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/shopspring/decimal"

	"github.com/barberpro/barber-analytics-api/internal/application/dto"
	"github.com/barberpro/barber-analytics-api/internal/application/inventory"
	"github.com/barberpro/barber-analytics-api/internal/domain"
	"github.com/barberpro/barber-analytics-api/internal/domain/entity"
	"github.com/barberpro/barber-analytics-api/internal/domain/repository"
	"github.com/barberpro/barber-analytics-api/pkg/format"
)

// alfabeto do código da comanda, sem 0/O e 1/I
const orderCodeAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"

const orderCodeSize = 6

// OrderUseCase comandas: abertura, itens, fechamento e cancelamento.
type OrderUseCase struct {
	repo     repository.OrderRepository
	products repository.ProductRepository
	tx       repository.TxRunner
	out      reporter
	newCode  func() (string, error)
}

// NewOrderUseCase constrói o caso de uso.
func NewOrderUseCase(repo repository.OrderRepository, products repository.ProductRepository, tx repository.TxRunner, rep Reporting) *OrderUseCase {
	return &OrderUseCase{
		repo:     repo,
		products: products,
		tx:       tx,
		out:      newReporter(rep),
		newCode: func() (string, error) {
			return gonanoid.Generate(orderCodeAlphabet, orderCodeSize)
		},
	}
}

// Open abre uma comanda para um profissional ativo.
func (uc *OrderUseCase) Open(ctx context.Context, a Actor, raw map[string]any) (*dto.OrderResponse, error) {
	var res *dto.OrderResponse
	err := a.authorize(domain.PermOrderWrite)
	if err == nil {
		res, err = uc.open(ctx, a, raw)
	}
	ev := event{entity: "order", action: "open"}
	if res != nil {
		ev.entityID, ev.after = res.ID, res
		ev.message = "Comanda " + res.Code + " aberta."
	}
	uc.out.done(ctx, a, ev, err)
	return res, err
}

func (uc *OrderUseCase) open(ctx context.Context, a Actor, raw map[string]any) (*dto.OrderResponse, error) {
	in, err := dto.NewOpenOrderDTO(raw)
	if err != nil {
		return nil, err
	}
	if err := in.Validate().Err(); err != nil {
		return nil, err
	}
	var o *entity.Order
	for attempt := 0; attempt < 3; attempt++ {
		err = uc.tx.Run(ctx, func(r repository.Repos) error {
			return uc.insertOrder(ctx, r, a, in, &o)
		})
		if !isDuplicateCode(err) {
			break
		}
	}
	if err != nil {
		return nil, err
	}
	return toOrderResponse(o), nil
}

func (uc *OrderUseCase) insertOrder(ctx context.Context, r repository.Repos, a Actor, in *dto.OpenOrderDTO, out **entity.Order) error {
	prof, err := r.Professionals.FindByID(ctx, a.UnitID, in.ProfessionalID)
	if err != nil {
		return err
	}
	if !prof.IsActive {
		return domain.Conflict("Profissional inativo não pode abrir comanda.")
	}
	code, err := uc.newCode()
	if err != nil {
		return err
	}
	values := in.ToObject()
	values["unit_id"] = a.UnitID
	values["opened_by"] = a.UserID
	values["status"] = entity.OrderAberta
	values["code"] = code
	*out, err = r.Orders.Create(ctx, values)
	return err
}

// GetByID comanda com itens.
func (uc *OrderUseCase) GetByID(ctx context.Context, a Actor, id string) (*dto.OrderResponse, error) {
	if err := a.authorize(domain.PermOrderRead); err != nil {
		return nil, err
	}
	o, err := uc.repo.FindByID(ctx, a.UnitID, id)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(o), nil
}

// List comandas da unidade.
func (uc *OrderUseCase) List(ctx context.Context, a Actor, f dto.OrderFilter) (*dto.OrderListResponse, error) {
	if err := a.authorize(domain.PermOrderRead); err != nil {
		return nil, err
	}
	pg := f.Page.Normalize()
	list, total, err := uc.repo.List(ctx, a.UnitID, repository.OrderFilter{
		Status:         f.Status,
		ProfessionalID: f.ProfessionalID,
		From:           f.From,
		To:             f.To,
		Limit:          pg.Limit,
		Offset:         pg.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *toOrderResponse(o))
	}
	return &dto.OrderListResponse{Items: items, Page: dto.PageResponse{Limit: pg.Limit, Offset: pg.Offset, Total: total}}, nil
}

// AddItem lança serviço ou produto numa comanda aberta. Produto sem descrição usa o nome do cadastro.
func (uc *OrderUseCase) AddItem(ctx context.Context, a Actor, orderID string, raw map[string]any) (*dto.OrderResponse, error) {
	var res *dto.OrderResponse
	err := a.authorize(domain.PermOrderWrite)
	if err == nil {
		res, err = uc.addItem(ctx, a, orderID, raw)
	}
	uc.out.done(ctx, a, event{entity: "order", action: "add_item", entityID: orderID, message: "Item adicionado à comanda.", after: res}, err)
	return res, err
}

func (uc *OrderUseCase) addItem(ctx context.Context, a Actor, orderID string, raw map[string]any) (*dto.OrderResponse, error) {
	in, err := dto.NewAddOrderItemDTO(raw)
	if err != nil {
		return nil, err
	}
	if err := in.Validate().Err(); err != nil {
		return nil, err
	}
	o, err := uc.openOrder(ctx, a.UnitID, orderID)
	if err != nil {
		return nil, err
	}
	values := in.ToObject()
	if in.ItemType == entity.ItemProduto {
		p, err := uc.products.FindByID(ctx, a.UnitID, *in.ProductID)
		if err != nil {
			return nil, err
		}
		if !p.IsActive {
			return nil, domain.Conflict("Produto inativo não pode ser vendido.")
		}
		if p.CurrentStock.LessThan(*in.Quantity) {
			return nil, domain.ErrInsufficientStock
		}
		if in.Description == nil || *in.Description == "" {
			values["description"] = p.Name
		}
	}
	if _, err := uc.repo.AddItem(ctx, o.ID, values); err != nil {
		return nil, err
	}
	o, err = uc.repo.FindByID(ctx, a.UnitID, orderID)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(o), nil
}

// RemoveItem tira um item de uma comanda aberta.
func (uc *OrderUseCase) RemoveItem(ctx context.Context, a Actor, orderID, itemID string) (*dto.OrderResponse, error) {
	var res *dto.OrderResponse
	err := a.authorize(domain.PermOrderWrite)
	if err == nil {
		res, err = uc.removeItem(ctx, a, orderID, itemID)
	}
	uc.out.done(ctx, a, event{entity: "order", action: "remove_item", entityID: orderID, message: "Item removido da comanda.", after: res}, err)
	return res, err
}

func (uc *OrderUseCase) removeItem(ctx context.Context, a Actor, orderID, itemID string) (*dto.OrderResponse, error) {
	if _, err := uc.openOrder(ctx, a.UnitID, orderID); err != nil {
		return nil, err
	}
	if err := uc.repo.RemoveItem(ctx, orderID, itemID); err != nil {
		return nil, err
	}
	o, err := uc.repo.FindByID(ctx, a.UnitID, orderID)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(o), nil
}

func (uc *OrderUseCase) openOrder(ctx context.Context, unitID, id string) (*entity.Order, error) {
	o, err := uc.repo.FindByID(ctx, unitID, id)
	if err != nil {
		return nil, err
	}
	if o.Status != entity.OrderAberta {
		return nil, domain.Conflict("A comanda não está mais aberta.")
	}
	return o, nil
}

// Close fecha a comanda numa única transação: totais e comissão, baixa de estoque dos
// produtos e, no pagamento em dinheiro, entrada no caixa aberto da unidade.
func (uc *OrderUseCase) Close(ctx context.Context, a Actor, id string, raw map[string]any) (*dto.OrderResponse, error) {
	var (
		res     *dto.OrderResponse
		touched []*entity.Product
	)
	err := a.authorize(domain.PermOrderWrite)
	if err == nil {
		res, touched, err = uc.close(ctx, a, id, raw)
	}
	ev := event{entity: "order", action: "close", entityID: id, after: res}
	if res != nil {
		ev.message = "Comanda " + res.Code + " fechada: " + res.TotalFormatted + "."
	}
	uc.out.done(ctx, a, ev, err)
	for _, p := range touched {
		uc.out.lowStock(ctx, a.UnitID, p)
	}
	return res, err
}

func (uc *OrderUseCase) close(ctx context.Context, a Actor, id string, raw map[string]any) (*dto.OrderResponse, []*entity.Product, error) {
	in, err := dto.NewCloseOrderDTO(raw)
	if err != nil {
		return nil, nil, err
	}
	if err := in.Validate().Err(); err != nil {
		return nil, nil, err
	}
	var (
		closed  *entity.Order
		touched []*entity.Product
	)
	err = uc.tx.Run(ctx, func(r repository.Repos) error {
		touched = nil
		o, err := r.Orders.FindByID(ctx, a.UnitID, id)
		if err != nil {
			return err
		}
		if o.Status != entity.OrderAberta {
			return domain.Conflict("A comanda não está mais aberta.")
		}
		if len(o.Items) == 0 {
			return domain.Conflict("Comanda sem itens não pode ser fechada.")
		}
		prof, err := r.Professionals.FindByID(ctx, a.UnitID, o.ProfessionalID)
		if err != nil {
			return err
		}
		discount := o.Discount
		if in.Discount != nil {
			discount = *in.Discount
		}
		totals := entity.ComputeTotals(o.Items, discount, prof.CommissionRate)

		values := map[string]any{
			"status":           entity.OrderFechada,
			"discount":         discount,
			"total":            totals.Total,
			"commission_value": totals.Commission,
			"payment_method":   in.PaymentMethod,
			"closed_at":        uc.out.now(),
		}
		var register *entity.CashRegister
		if in.PaymentMethod == entity.PaymentDinheiro {
			register, err = openRegister(ctx, r, a.UnitID)
			if err != nil {
				return err
			}
			values["cash_register_id"] = register.ID
		}
		closed, err = r.Orders.Transition(ctx, a.UnitID, id, entity.OrderAberta, values)
		if err != nil {
			return err
		}

		for _, it := range o.Items {
			if it.ItemType != entity.ItemProduto || it.ProductID == nil {
				continue
			}
			res, err := inventory.Apply(ctx, r, inventory.SaleMovement(a.UnitID, *it.ProductID, o.ID, a.UserID, it.Quantity))
			if err != nil {
				return err
			}
			touched = append(touched, res.Product)
		}

		if register != nil && totals.Total.IsPositive() {
			_, err = r.CashRegisters.AddMovement(ctx, map[string]any{
				"unit_id":          a.UnitID,
				"cash_register_id": register.ID,
				"type":             entity.CashVenda,
				"amount":           totals.Total,
				"description":      "Comanda " + o.Code,
				"order_id":         o.ID,
				"performed_by":     a.UserID,
			})
		}
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return toOrderResponse(closed), touched, nil
}

// Cancel cancela uma comanda aberta. Nada foi baixado do estoque nem do caixa.
func (uc *OrderUseCase) Cancel(ctx context.Context, a Actor, id string) (*dto.OrderResponse, error) {
	var res *dto.OrderResponse
	err := a.authorize(domain.PermOrderWrite)
	if err == nil {
		var o *entity.Order
		o, err = uc.repo.Transition(ctx, a.UnitID, id, entity.OrderAberta, map[string]any{
			"status":    entity.OrderCancelada,
			"closed_at": uc.out.now(),
		})
		if o != nil {
			res = toOrderResponse(o)
		}
	}
	uc.out.done(ctx, a, event{entity: "order", action: "cancel", entityID: id, message: "Comanda cancelada.", after: res}, err)
	return res, err
}

// isDuplicateCode colisão do código curto na unidade.
func isDuplicateCode(err error) bool {
	return errors.Is(err, domain.ErrDuplicate)
}

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	out := &dto.OrderResponse{
		ID:              o.ID,
		UnitID:          o.UnitID,
		Code:            o.Code,
		ProfessionalID:  o.ProfessionalID,
		ClientName:      o.ClientName,
		ClientPhone:     formatted(o.ClientPhone, format.Phone),
		Status:          o.Status,
		Discount:        o.Discount,
		Total:           o.Total,
		TotalFormatted:  format.BRL(o.Total),
		CommissionValue: o.CommissionValue,
		PaymentMethod:   o.PaymentMethod,
		CashRegisterID:  o.CashRegisterID,
		OpenedBy:        o.OpenedBy,
		OpenedAt:        o.OpenedAt,
		ClosedAt:        o.ClosedAt,
		Items:           make([]dto.OrderItemResponse, 0, len(o.Items)),
	}
	if o.Status == entity.OrderAberta {
		preview := entity.ComputeTotals(o.Items, o.Discount, decimal.Zero)
		out.Total = preview.Total
		out.TotalFormatted = format.BRL(preview.Total)
	}
	for _, it := range o.Items {
		out.Items = append(out.Items, dto.OrderItemResponse{
			ID:          it.ID,
			ItemType:    it.ItemType,
			ProductID:   it.ProductID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Discount:    it.Discount,
			Subtotal:    it.Subtotal(),
		})
	}
	return out
}
