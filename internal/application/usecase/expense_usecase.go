package usecase

import (
	"context"
	"time"

	"github.com/barberpro/barber-analytics-api/internal/application/dto"
	"github.com/barberpro/barber-analytics-api/internal/domain"
	"github.com/barberpro/barber-analytics-api/internal/domain/entity"
	"github.com/barberpro/barber-analytics-api/internal/domain/repository"
	"github.com/barberpro/barber-analytics-api/pkg/format"
)

// ExpenseUseCase contas a pagar da unidade.
type ExpenseUseCase struct {
	repo repository.ExpenseRepository
	out  reporter
}

// NewExpenseUseCase constrói o caso de uso.
func NewExpenseUseCase(repo repository.ExpenseRepository, rep Reporting) *ExpenseUseCase {
	return &ExpenseUseCase{repo: repo, out: newReporter(rep)}
}

// Create lança uma despesa.
func (uc *ExpenseUseCase) Create(ctx context.Context, a Actor, raw map[string]any) (*dto.ExpenseResponse, error) {
	var res *dto.ExpenseResponse
	err := a.authorize(domain.PermExpenseWrite)
	if err == nil {
		res, err = uc.create(ctx, a, raw)
	}
	ev := event{entity: "expense", action: "create", message: "Despesa cadastrada com sucesso."}
	if res != nil {
		ev.entityID, ev.after = res.ID, res
	}
	uc.out.done(ctx, a, ev, err)
	return res, err
}

func (uc *ExpenseUseCase) create(ctx context.Context, a Actor, raw map[string]any) (*dto.ExpenseResponse, error) {
	in, err := dto.NewCreateExpenseDTO(a.scoped(raw, ""))
	if err != nil {
		return nil, err
	}
	if err := in.Validate().Err(); err != nil {
		return nil, err
	}
	values := in.ToObject()
	values["created_by"] = a.UserID
	e, err := uc.repo.Create(ctx, values)
	if err != nil {
		return nil, err
	}
	return toExpenseResponse(e), nil
}

// GetByID devolve uma despesa.
func (uc *ExpenseUseCase) GetByID(ctx context.Context, a Actor, id string) (*dto.ExpenseResponse, error) {
	if err := a.authorize(domain.PermExpenseRead); err != nil {
		return nil, err
	}
	e, err := uc.repo.FindByID(ctx, a.UnitID, id)
	if err != nil {
		return nil, err
	}
	return toExpenseResponse(e), nil
}

// Update altera os campos enviados. Despesa paga ou cancelada não muda de valor.
func (uc *ExpenseUseCase) Update(ctx context.Context, a Actor, id string, raw map[string]any) (*dto.ExpenseResponse, error) {
	var before, after *dto.ExpenseResponse
	err := a.authorize(domain.PermExpenseWrite)
	if err == nil {
		before, after, err = uc.update(ctx, a, id, raw)
	}
	uc.out.done(ctx, a, event{entity: "expense", action: "update", entityID: id, message: "Despesa atualizada com sucesso.", before: before, after: after}, err)
	return after, err
}

func (uc *ExpenseUseCase) update(ctx context.Context, a Actor, id string, raw map[string]any) (*dto.ExpenseResponse, *dto.ExpenseResponse, error) {
	in, err := dto.NewUpdateExpenseDTO(raw)
	if err != nil {
		return nil, nil, err
	}
	if err := in.Validate().Err(); err != nil {
		return nil, nil, err
	}
	current, err := uc.repo.FindByID(ctx, a.UnitID, id)
	if err != nil {
		return nil, nil, err
	}
	before := toExpenseResponse(current)
	if in.Value != nil && closedExpense(current) {
		return before, nil, domain.Conflict("Despesa " + current.Status + " não pode ter o valor alterado")
	}
	e, err := uc.repo.Update(ctx, a.UnitID, id, in.ToObject())
	if err != nil {
		return before, nil, err
	}
	return before, toExpenseResponse(e), nil
}

// Pay registra o pagamento (PENDENTE ou ATRASADO para PAGO).
func (uc *ExpenseUseCase) Pay(ctx context.Context, a Actor, id string, raw map[string]any) (*dto.ExpenseResponse, error) {
	var before, after *dto.ExpenseResponse
	err := a.authorize(domain.PermExpenseWrite)
	if err == nil {
		before, after, err = uc.pay(ctx, a, id, raw)
	}
	uc.out.done(ctx, a, event{entity: "expense", action: "pay", entityID: id, message: "Pagamento registrado.", before: before, after: after}, err)
	return after, err
}

func (uc *ExpenseUseCase) pay(ctx context.Context, a Actor, id string, raw map[string]any) (*dto.ExpenseResponse, *dto.ExpenseResponse, error) {
	in, err := dto.NewPayExpenseDTO(raw)
	if err != nil {
		return nil, nil, err
	}
	if err := in.Validate().Err(); err != nil {
		return nil, nil, err
	}
	current, err := uc.repo.FindByID(ctx, a.UnitID, id)
	if err != nil {
		return nil, nil, err
	}
	before := toExpenseResponse(current)
	if closedExpense(current) {
		return before, nil, domain.Conflict("Despesa já está " + current.Status)
	}
	e, err := uc.repo.Update(ctx, a.UnitID, id, in.ToObject(uc.out.now()))
	if err != nil {
		return before, nil, err
	}
	return before, toExpenseResponse(e), nil
}

// Delete exclusão lógica.
func (uc *ExpenseUseCase) Delete(ctx context.Context, a Actor, id string) error {
	err := a.authorize(domain.PermExpenseWrite)
	if err == nil {
		err = uc.repo.SoftDelete(ctx, a.UnitID, id)
	}
	uc.out.done(ctx, a, event{entity: "expense", action: "delete", entityID: id, message: "Despesa excluída."}, err)
	return err
}

// List despesas por vencimento.
func (uc *ExpenseUseCase) List(ctx context.Context, a Actor, f dto.ExpenseFilter) (*dto.ExpenseListResponse, error) {
	if err := a.authorize(domain.PermExpenseRead); err != nil {
		return nil, err
	}
	pg := f.Page.Normalize()
	list, total, err := uc.repo.List(ctx, a.UnitID, repository.ExpenseFilter{
		Status:   f.Status,
		Category: f.Category,
		From:     f.From,
		To:       f.To,
		Limit:    pg.Limit,
		Offset:   pg.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ExpenseResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *toExpenseResponse(e))
	}
	return &dto.ExpenseListResponse{Items: items, Page: dto.PageResponse{Limit: pg.Limit, Offset: pg.Offset, Total: total}}, nil
}

// MarkOverdue tarefa diária: pendentes vencidas viram ATRASADO em todas as unidades.
func (uc *ExpenseUseCase) MarkOverdue(ctx context.Context) (int64, error) {
	now := uc.out.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	n, err := uc.repo.MarkOverdue(ctx, today)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		uc.out.Log.Info().Int64("despesas", n).Msg("despesas marcadas como atrasadas")
	}
	return n, nil
}

func closedExpense(e *entity.Expense) bool {
	return e.Status == entity.ExpensePago || e.Status == entity.ExpenseCancelado
}

func toExpenseResponse(e *entity.Expense) *dto.ExpenseResponse {
	return &dto.ExpenseResponse{
		ID:                 e.ID,
		UnitID:             e.UnitID,
		Description:        e.Description,
		Category:           e.Category,
		ExpenseType:        e.ExpenseType,
		Value:              e.Value,
		ValueFormatted:     format.BRL(e.Value),
		CompetenceDate:     e.CompetenceDate,
		DueDate:            e.DueDate,
		PaymentDate:        e.PaymentDate,
		Status:             e.Status,
		PaymentMethod:      e.PaymentMethod,
		SupplierID:         e.SupplierID,
		RecurringExpenseID: e.RecurringExpenseID,
		Notes:              e.Notes,
		CreatedBy:          e.CreatedBy,
		CreatedAt:          e.CreatedAt,
		UpdatedAt:          e.UpdatedAt,
	}
}

// RecurringExpenseUseCase modelos de despesa mensal e a geração do mês.
type RecurringExpenseUseCase struct {
	repo repository.RecurringExpenseRepository
	tx   repository.TxRunner
	out  reporter
}

// NewRecurringExpenseUseCase constrói o caso de uso.
func NewRecurringExpenseUseCase(repo repository.RecurringExpenseRepository, tx repository.TxRunner, rep Reporting) *RecurringExpenseUseCase {
	return &RecurringExpenseUseCase{repo: repo, tx: tx, out: newReporter(rep)}
}

// Create cadastra um modelo.
func (uc *RecurringExpenseUseCase) Create(ctx context.Context, a Actor, raw map[string]any) (*dto.RecurringExpenseResponse, error) {
	var res *dto.RecurringExpenseResponse
	err := a.authorize(domain.PermRecurringManage)
	if err == nil {
		res, err = uc.create(ctx, a, raw)
	}
	ev := event{entity: "recurring_expense", action: "create", message: "Despesa recorrente cadastrada."}
	if res != nil {
		ev.entityID, ev.after = res.ID, res
	}
	uc.out.done(ctx, a, ev, err)
	return res, err
}

func (uc *RecurringExpenseUseCase) create(ctx context.Context, a Actor, raw map[string]any) (*dto.RecurringExpenseResponse, error) {
	in, err := dto.NewRecurringExpenseDTO(a.scoped(raw, ""))
	if err != nil {
		return nil, err
	}
	if err := in.Validate().Err(); err != nil {
		return nil, err
	}
	values := in.ToObject()
	values["created_by"] = a.UserID
	r, err := uc.repo.Create(ctx, values)
	if err != nil {
		return nil, err
	}
	return toRecurringResponse(r), nil
}

// Update substitui os dados do modelo. A unidade não muda.
func (uc *RecurringExpenseUseCase) Update(ctx context.Context, a Actor, id string, raw map[string]any) (*dto.RecurringExpenseResponse, error) {
	var res *dto.RecurringExpenseResponse
	err := a.authorize(domain.PermRecurringManage)
	if err == nil {
		res, err = uc.update(ctx, a, id, raw)
	}
	uc.out.done(ctx, a, event{entity: "recurring_expense", action: "update", entityID: id, message: "Despesa recorrente atualizada.", after: res}, err)
	return res, err
}

func (uc *RecurringExpenseUseCase) update(ctx context.Context, a Actor, id string, raw map[string]any) (*dto.RecurringExpenseResponse, error) {
	in, err := dto.NewRecurringExpenseDTO(a.scoped(raw, ""))
	if err != nil {
		return nil, err
	}
	if err := in.Validate().Err(); err != nil {
		return nil, err
	}
	values := in.ToObject()
	delete(values, "unit_id")
	r, err := uc.repo.Update(ctx, a.UnitID, id, values)
	if err != nil {
		return nil, err
	}
	return toRecurringResponse(r), nil
}

// Deactivate para de gerar despesas do modelo.
func (uc *RecurringExpenseUseCase) Deactivate(ctx context.Context, a Actor, id string) error {
	err := a.authorize(domain.PermRecurringManage)
	if err == nil {
		err = uc.repo.Deactivate(ctx, a.UnitID, id)
	}
	uc.out.done(ctx, a, event{entity: "recurring_expense", action: "deactivate", entityID: id, message: "Despesa recorrente desativada."}, err)
	return err
}

// List modelos da unidade.
func (uc *RecurringExpenseUseCase) List(ctx context.Context, a Actor) ([]dto.RecurringExpenseResponse, error) {
	if err := a.authorize(domain.PermExpenseRead); err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx, a.UnitID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RecurringExpenseResponse, 0, len(list))
	for _, r := range list {
		out = append(out, *toRecurringResponse(r))
	}
	return out, nil
}

// Generate disparo manual da geração do mês de ref para a unidade do usuário.
func (uc *RecurringExpenseUseCase) Generate(ctx context.Context, a Actor, ref time.Time) (*dto.GenerateRecurringResponse, error) {
	var res *dto.GenerateRecurringResponse
	err := a.authorize(domain.PermRecurringManage)
	if err == nil {
		res, err = uc.generate(ctx, a.UnitID, ref)
	}
	ev := event{entity: "recurring_expense", action: "generate", message: "Despesas recorrentes geradas.", after: res}
	uc.out.done(ctx, a, ev, err)
	return res, err
}

// GenerateAll usado pelo agendador: todas as unidades.
func (uc *RecurringExpenseUseCase) GenerateAll(ctx context.Context, ref time.Time) (*dto.GenerateRecurringResponse, error) {
	return uc.generate(ctx, "", ref)
}

// generate cria uma despesa por modelo pendente. MarkGenerated e o insert ficam na mesma
// transação; se outro processo marcou o período antes, o modelo é contado como pulado.
func (uc *RecurringExpenseUseCase) generate(ctx context.Context, unitID string, ref time.Time) (*dto.GenerateRecurringResponse, error) {
	period := entity.Period(ref)
	due, err := uc.repo.ListDue(ctx, unitID, period)
	if err != nil {
		return nil, err
	}
	res := &dto.GenerateRecurringResponse{Period: period}
	for _, tpl := range due {
		created := false
		err := uc.tx.Run(ctx, func(r repository.Repos) error {
			ok, err := r.Recurring.MarkGenerated(ctx, tpl.ID, period)
			if err != nil || !ok {
				return err
			}
			_, err = r.Expenses.Create(ctx, recurringValues(tpl, ref))
			created = err == nil
			return err
		})
		if err != nil {
			uc.out.Log.Error().Err(err).Str("recurring_id", tpl.ID).Str("period", period).Msg("falha ao gerar despesa recorrente")
			res.Skipped++
			continue
		}
		if !created {
			res.Skipped++
			continue
		}
		res.Generated++
	}
	uc.out.Log.Info().Str("period", period).Int("geradas", res.Generated).Int("puladas", res.Skipped).Msg("geração de despesas recorrentes")
	return res, nil
}

func recurringValues(tpl *entity.RecurringExpense, ref time.Time) map[string]any {
	competence := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	v := map[string]any{
		"unit_id":              tpl.UnitID,
		"description":          tpl.Description,
		"category":             tpl.Category,
		"expense_type":         entity.ExpenseFixa,
		"value":                tpl.Value,
		"competence_date":      competence,
		"due_date":             tpl.DueDateFor(ref),
		"status":               entity.ExpensePendente,
		"recurring_expense_id": tpl.ID,
		"created_by":           tpl.CreatedBy,
	}
	if tpl.SupplierID != nil {
		v["supplier_id"] = *tpl.SupplierID
	}
	return v
}

func toRecurringResponse(r *entity.RecurringExpense) *dto.RecurringExpenseResponse {
	return &dto.RecurringExpenseResponse{
		ID:                  r.ID,
		UnitID:              r.UnitID,
		Description:         r.Description,
		Category:            r.Category,
		Value:               r.Value,
		DayOfMonth:          r.DayOfMonth,
		SupplierID:          r.SupplierID,
		IsActive:            r.IsActive,
		LastGeneratedPeriod: r.LastGeneratedPeriod,
		CreatedAt:           r.CreatedAt,
	}
}
