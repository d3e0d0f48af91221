package usecase

import (
	"context"
	"errors"

	"github.com/barberpro/barber-analytics-api/internal/application/dto"
	"github.com/barberpro/barber-analytics-api/internal/application/ports"
	"github.com/barberpro/barber-analytics-api/internal/domain"
	"github.com/barberpro/barber-analytics-api/internal/domain/entity"
	"github.com/barberpro/barber-analytics-api/internal/domain/repository"
)

// CashRegisterUseCase abertura, movimentação e fechamento do caixa.
type CashRegisterUseCase struct {
	repo   repository.CashRegisterRepository
	units  repository.UnitRepository
	tx     repository.TxRunner
	report ports.CashReportGenerator
	out    reporter
}

// NewCashRegisterUseCase constrói o caso de uso.
func NewCashRegisterUseCase(repo repository.CashRegisterRepository, units repository.UnitRepository, tx repository.TxRunner, report ports.CashReportGenerator, rep Reporting) *CashRegisterUseCase {
	return &CashRegisterUseCase{repo: repo, units: units, tx: tx, report: report, out: newReporter(rep)}
}

// Open abre o caixa da unidade. Só pode haver um aberto por vez.
func (uc *CashRegisterUseCase) Open(ctx context.Context, a Actor, raw map[string]any) (*dto.CashRegisterResponse, error) {
	var res *dto.CashRegisterResponse
	err := a.authorize(domain.PermCashWrite)
	if err == nil {
		res, err = uc.open(ctx, a, raw)
	}
	ev := event{entity: "cash_register", action: "open", message: "Caixa aberto."}
	if res != nil {
		ev.entityID, ev.after = res.ID, res
	}
	uc.out.done(ctx, a, ev, err)
	return res, err
}

func (uc *CashRegisterUseCase) open(ctx context.Context, a Actor, raw map[string]any) (*dto.CashRegisterResponse, error) {
	in, err := dto.NewOpenCashRegisterDTO(raw)
	if err != nil {
		return nil, err
	}
	if err := in.Validate().Err(); err != nil {
		return nil, err
	}
	values := in.ToObject()
	values["unit_id"] = a.UnitID
	values["opened_by"] = a.UserID
	values["status"] = entity.CashOpen
	c, err := uc.repo.Open(ctx, values)
	if errors.Is(err, domain.ErrDuplicate) {
		return nil, domain.Conflict("Já existe um caixa aberto nesta unidade.")
	}
	if err != nil {
		return nil, err
	}
	return toRegisterResponse(c, nil), nil
}

// Current caixa aberto com o resumo parcial.
func (uc *CashRegisterUseCase) Current(ctx context.Context, a Actor) (*dto.CashRegisterResponse, error) {
	if err := a.authorize(domain.PermCashRead); err != nil {
		return nil, err
	}
	c, err := uc.repo.FindOpen(ctx, a.UnitID)
	if err != nil {
		return nil, err
	}
	return uc.withMovements(ctx, a.UnitID, c)
}

// GetByID caixa com todas as movimentações.
func (uc *CashRegisterUseCase) GetByID(ctx context.Context, a Actor, id string) (*dto.CashRegisterResponse, error) {
	if err := a.authorize(domain.PermCashRead); err != nil {
		return nil, err
	}
	c, err := uc.repo.FindByID(ctx, a.UnitID, id)
	if err != nil {
		return nil, err
	}
	return uc.withMovements(ctx, a.UnitID, c)
}

func (uc *CashRegisterUseCase) withMovements(ctx context.Context, unitID string, c *entity.CashRegister) (*dto.CashRegisterResponse, error) {
	movs, err := uc.repo.ListMovements(ctx, unitID, c.ID)
	if err != nil {
		return nil, err
	}
	return toRegisterResponse(c, movs), nil
}

// AddMovement registra suprimento ou sangria no caixa aberto.
func (uc *CashRegisterUseCase) AddMovement(ctx context.Context, a Actor, raw map[string]any) (*dto.CashMovementResponse, error) {
	var res *dto.CashMovementResponse
	err := a.authorize(domain.PermCashWrite)
	if err == nil {
		res, err = uc.addMovement(ctx, a, raw)
	}
	ev := event{entity: "cash_movement", action: "create", message: "Movimentação de caixa registrada."}
	if res != nil {
		ev.entityID, ev.after = res.ID, res
	}
	uc.out.done(ctx, a, ev, err)
	return res, err
}

func (uc *CashRegisterUseCase) addMovement(ctx context.Context, a Actor, raw map[string]any) (*dto.CashMovementResponse, error) {
	in, err := dto.NewCashMovementDTO(raw)
	if err != nil {
		return nil, err
	}
	if err := in.Validate().Err(); err != nil {
		return nil, err
	}
	var m *entity.CashMovement
	err = uc.tx.Run(ctx, func(r repository.Repos) error {
		c, err := openRegister(ctx, r, a.UnitID)
		if err != nil {
			return err
		}
		if in.Type == entity.CashSangria {
			movs, err := r.CashRegisters.ListMovements(ctx, a.UnitID, c.ID)
			if err != nil {
				return err
			}
			if entity.Summarize(movs).ExpectedBalance(c.OpeningBalance).LessThan(*in.Amount) {
				return domain.Conflict("Sangria maior que o saldo do caixa.")
			}
		}
		values := in.ToObject()
		values["unit_id"] = a.UnitID
		values["cash_register_id"] = c.ID
		values["performed_by"] = a.UserID
		m, err = r.CashRegisters.AddMovement(ctx, values)
		return err
	})
	if err != nil {
		return nil, err
	}
	out := toCashMovementResponse(m)
	return &out, nil
}

// openRegister trava o caixa aberto da unidade até o fim da transação; sem caixa aberto a operação é recusada.
func openRegister(ctx context.Context, r repository.Repos, unitID string) (*entity.CashRegister, error) {
	c, err := r.CashRegisters.FindOpenForUpdate(ctx, unitID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.Conflict("Nenhum caixa aberto nesta unidade.")
	}
	return c, err
}

// Close fecha o caixa com o valor contado e grava saldo esperado e diferença.
func (uc *CashRegisterUseCase) Close(ctx context.Context, a Actor, id string, raw map[string]any) (*dto.CashRegisterResponse, error) {
	var res *dto.CashRegisterResponse
	err := a.authorize(domain.PermCashWrite)
	if err == nil {
		res, err = uc.close(ctx, a, id, raw)
	}
	ev := event{entity: "cash_register", action: "close", entityID: id, message: "Caixa fechado.", after: res}
	if res != nil && res.Difference != nil && !res.Difference.IsZero() {
		ev.message = "Caixa fechado com diferença de " + res.Difference.StringFixed(2) + "."
	}
	uc.out.done(ctx, a, ev, err)
	return res, err
}

func (uc *CashRegisterUseCase) close(ctx context.Context, a Actor, id string, raw map[string]any) (*dto.CashRegisterResponse, error) {
	in, err := dto.NewCloseCashRegisterDTO(raw)
	if err != nil {
		return nil, err
	}
	if err := in.Validate().Err(); err != nil {
		return nil, err
	}
	var (
		closed *entity.CashRegister
		movs   []*entity.CashMovement
	)
	err = uc.tx.Run(ctx, func(r repository.Repos) error {
		c, err := r.CashRegisters.FindByIDForUpdate(ctx, a.UnitID, id)
		if err != nil {
			return err
		}
		if c.Status != entity.CashOpen {
			return domain.Conflict("Caixa já está fechado.")
		}
		movs, err = r.CashRegisters.ListMovements(ctx, a.UnitID, id)
		if err != nil {
			return err
		}
		expected := entity.Summarize(movs).ExpectedBalance(c.OpeningBalance)
		values := map[string]any{
			"closing_balance":  *in.ClosingBalance,
			"expected_balance": expected,
			"difference":       in.ClosingBalance.Sub(expected),
			"closed_by":        a.UserID,
		}
		if in.Notes != nil {
			values["notes"] = *in.Notes
		}
		closed, err = r.CashRegisters.Close(ctx, a.UnitID, id, values)
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Conflict("Caixa já está fechado.")
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return toRegisterResponse(closed, movs), nil
}

// List caixas da unidade.
func (uc *CashRegisterUseCase) List(ctx context.Context, a Actor, p dto.PageRequest) (*dto.CashRegisterListResponse, error) {
	if err := a.authorize(domain.PermCashRead); err != nil {
		return nil, err
	}
	pg := p.Normalize()
	list, total, err := uc.repo.List(ctx, a.UnitID, pg.Limit, pg.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CashRegisterResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toRegisterResponse(c, nil))
	}
	return &dto.CashRegisterListResponse{Items: items, Page: dto.PageResponse{Limit: pg.Limit, Offset: pg.Offset, Total: total}}, nil
}

// Report PDF do caixa com resumo e movimentações.
func (uc *CashRegisterUseCase) Report(ctx context.Context, a Actor, id string) ([]byte, error) {
	reg, err := uc.GetByID(ctx, a, id)
	if err != nil {
		return nil, err
	}
	unit, err := uc.units.FindByID(ctx, a.UnitID)
	if err != nil {
		return nil, err
	}
	return uc.report.CashRegisterReport(unit.Name, reg)
}

func toRegisterResponse(c *entity.CashRegister, movs []*entity.CashMovement) *dto.CashRegisterResponse {
	sum := entity.Summarize(movs)
	out := &dto.CashRegisterResponse{
		ID:              c.ID,
		UnitID:          c.UnitID,
		Status:          c.Status,
		OpeningBalance:  c.OpeningBalance,
		ClosingBalance:  c.ClosingBalance,
		ExpectedBalance: sum.ExpectedBalance(c.OpeningBalance),
		Difference:      c.Difference,
		Sales:           sum.Sales,
		Suprimentos:     sum.Suprimentos,
		Sangrias:        sum.Sangrias,
		OpenedBy:        c.OpenedBy,
		ClosedBy:        c.ClosedBy,
		OpenedAt:        c.OpenedAt,
		ClosedAt:        c.ClosedAt,
		Notes:           c.Notes,
	}
	if c.ExpectedBalance != nil && movs == nil {
		out.ExpectedBalance = *c.ExpectedBalance
	}
	for _, m := range movs {
		out.Movements = append(out.Movements, toCashMovementResponse(m))
	}
	return out
}

func toCashMovementResponse(m *entity.CashMovement) dto.CashMovementResponse {
	return dto.CashMovementResponse{
		ID:          m.ID,
		Type:        m.Type,
		Amount:      m.Amount,
		Description: m.Description,
		OrderID:     m.OrderID,
		PerformedBy: m.PerformedBy,
		CreatedAt:   m.CreatedAt,
	}
}
