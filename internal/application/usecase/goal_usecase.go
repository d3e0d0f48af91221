package usecase

import (
	"context"
	"time"

	"github.com/barberpro/barber-analytics-api/internal/application/dto"
	"github.com/barberpro/barber-analytics-api/internal/domain"
	"github.com/barberpro/barber-analytics-api/internal/domain/entity"
	"github.com/barberpro/barber-analytics-api/internal/domain/repository"
)

// GoalUseCase metas mensais da unidade e dos profissionais.
type GoalUseCase struct {
	repo          repository.GoalRepository
	professionals repository.ProfessionalRepository
	out           reporter
}

// NewGoalUseCase constrói o caso de uso.
func NewGoalUseCase(repo repository.GoalRepository, professionals repository.ProfessionalRepository, rep Reporting) *GoalUseCase {
	return &GoalUseCase{repo: repo, professionals: professionals, out: newReporter(rep)}
}

// Create cadastra uma meta. Meta de profissional exige profissional da mesma unidade.
func (uc *GoalUseCase) Create(ctx context.Context, a Actor, raw map[string]any) (*dto.GoalResponse, error) {
	var res *dto.GoalResponse
	err := a.authorize(domain.PermGoalWrite)
	if err == nil {
		res, err = uc.create(ctx, a, raw)
	}
	ev := event{entity: "goal", action: "create", message: "Meta cadastrada com sucesso."}
	if res != nil {
		ev.entityID, ev.after = res.ID, res
	}
	uc.out.done(ctx, a, ev, err)
	return res, err
}

func (uc *GoalUseCase) create(ctx context.Context, a Actor, raw map[string]any) (*dto.GoalResponse, error) {
	in, err := dto.NewCreateGoalDTO(a.scoped(raw, ""))
	if err != nil {
		return nil, err
	}
	if err := in.Validate().Err(); err != nil {
		return nil, err
	}
	if in.ProfessionalID != nil {
		if _, err := uc.professionals.FindByID(ctx, a.UnitID, *in.ProfessionalID); err != nil {
			return nil, err
		}
	}
	values := in.ToObject()
	values["created_by"] = a.UserID
	g, err := uc.repo.Create(ctx, values)
	if err != nil {
		return nil, err
	}
	return toGoalResponse(g), nil
}

// Delete remove a meta.
func (uc *GoalUseCase) Delete(ctx context.Context, a Actor, id string) error {
	err := a.authorize(domain.PermGoalWrite)
	if err == nil {
		err = uc.repo.SoftDelete(ctx, a.UnitID, id)
	}
	uc.out.done(ctx, a, event{entity: "goal", action: "delete", entityID: id, message: "Meta removida."}, err)
	return err
}

// ListForMonth metas que cruzam o mês de month.
func (uc *GoalUseCase) ListForMonth(ctx context.Context, a Actor, month time.Time) ([]dto.GoalResponse, error) {
	if err := a.authorize(domain.PermGoalRead); err != nil {
		return nil, err
	}
	from := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	to := from.AddDate(0, 1, -1)
	list, err := uc.repo.ListOverlapping(ctx, a.UnitID, from, to)
	if err != nil {
		return nil, err
	}
	out := make([]dto.GoalResponse, 0, len(list))
	for _, g := range list {
		out = append(out, *toGoalResponse(g))
	}
	return out, nil
}

func toGoalResponse(g *entity.Goal) *dto.GoalResponse {
	return &dto.GoalResponse{
		ID:             g.ID,
		UnitID:         g.UnitID,
		ProfessionalID: g.ProfessionalID,
		GoalType:       g.GoalType,
		TargetValue:    g.TargetValue,
		PeriodStart:    g.PeriodStart,
		PeriodEnd:      g.PeriodEnd,
		CreatedAt:      g.CreatedAt,
	}
}
