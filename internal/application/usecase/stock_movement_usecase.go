package usecase

import (
	"context"

	"github.com/barberpro/barber-analytics-api/internal/application/dto"
	"github.com/barberpro/barber-analytics-api/internal/application/inventory"
	"github.com/barberpro/barber-analytics-api/internal/domain"
	"github.com/barberpro/barber-analytics-api/internal/domain/entity"
	"github.com/barberpro/barber-analytics-api/internal/domain/repository"
)

// StockMovementUseCase entradas, saídas e ajustes de estoque.
type StockMovementUseCase struct {
	repo repository.StockMovementRepository
	tx   repository.TxRunner
	out  reporter
}

// NewStockMovementUseCase constrói o caso de uso.
func NewStockMovementUseCase(repo repository.StockMovementRepository, tx repository.TxRunner, rep Reporting) *StockMovementUseCase {
	return &StockMovementUseCase{repo: repo, tx: tx, out: newReporter(rep)}
}

// Register grava a movimentação numa transação. Se o produto ficar no estoque mínimo
// ou abaixo, a unidade recebe um alerta.
func (uc *StockMovementUseCase) Register(ctx context.Context, a Actor, raw map[string]any) (*dto.StockMovementResponse, error) {
	var res *inventory.Result
	err := a.authorize(domain.PermStockWrite)
	if err == nil {
		res, err = uc.register(ctx, a, raw)
	}
	ev := event{entity: "stock_movement", action: "create", message: "Movimentação de estoque registrada."}
	var out *dto.StockMovementResponse
	if res != nil {
		out = toMovementResponse(res.Movement)
		ev.entityID, ev.after = out.ID, out
	}
	uc.out.done(ctx, a, ev, err)
	if err != nil {
		return nil, err
	}
	uc.out.lowStock(ctx, a.UnitID, res.Product)
	return out, nil
}

func (uc *StockMovementUseCase) register(ctx context.Context, a Actor, raw map[string]any) (*inventory.Result, error) {
	in, err := dto.NewCreateStockMovementDTO(a.scoped(raw, "performed_by"))
	if err != nil {
		return nil, err
	}
	if err := in.Validate().Err(); err != nil {
		return nil, err
	}
	var res *inventory.Result
	err = uc.tx.Run(ctx, func(r repository.Repos) error {
		var err error
		res, err = inventory.Apply(ctx, r, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// GetByID devolve uma movimentação.
func (uc *StockMovementUseCase) GetByID(ctx context.Context, a Actor, id string) (*dto.StockMovementResponse, error) {
	if err := a.authorize(domain.PermStockRead); err != nil {
		return nil, err
	}
	m, err := uc.repo.FindByID(ctx, a.UnitID, id)
	if err != nil {
		return nil, err
	}
	return toMovementResponse(m), nil
}

// List histórico de movimentações com filtros.
func (uc *StockMovementUseCase) List(ctx context.Context, a Actor, f dto.StockMovementFilter) (*dto.StockMovementListResponse, error) {
	if err := a.authorize(domain.PermStockRead); err != nil {
		return nil, err
	}
	pg := f.Page.Normalize()
	list, total, err := uc.repo.List(ctx, a.UnitID, repository.StockMovementFilter{
		ProductID:    f.ProductID,
		MovementType: f.MovementType,
		From:         f.From,
		To:           f.To,
		Limit:        pg.Limit,
		Offset:       pg.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockMovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMovementResponse(m))
	}
	return &dto.StockMovementListResponse{Items: items, Page: dto.PageResponse{Limit: pg.Limit, Offset: pg.Offset, Total: total}}, nil
}

func toMovementResponse(m *entity.StockMovement) *dto.StockMovementResponse {
	return &dto.StockMovementResponse{
		ID:           m.ID,
		UnitID:       m.UnitID,
		ProductID:    m.ProductID,
		MovementType: m.MovementType,
		Reason:       m.Reason,
		Quantity:     m.Quantity,
		UnitCost:     m.UnitCost,
		TotalCost:    m.TotalCost,
		SupplierID:   m.SupplierID,
		OrderID:      m.OrderID,
		Notes:        m.Notes,
		PerformedBy:  m.PerformedBy,
		CreatedAt:    m.CreatedAt,
	}
}
