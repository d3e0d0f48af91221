package usecase

import (
	"context"
	"errors"

	"github.com/barberpro/barber-analytics-api/internal/application/dto"
	"github.com/barberpro/barber-analytics-api/internal/domain"
	"github.com/barberpro/barber-analytics-api/internal/domain/entity"
	"github.com/barberpro/barber-analytics-api/internal/domain/repository"
	"github.com/barberpro/barber-analytics-api/pkg/format"
)

// ProfessionalUseCase cadastro de profissionais.
type ProfessionalUseCase struct {
	repo repository.ProfessionalRepository
	out  reporter
}

// NewProfessionalUseCase constrói o caso de uso.
func NewProfessionalUseCase(repo repository.ProfessionalRepository, rep Reporting) *ProfessionalUseCase {
	return &ProfessionalUseCase{repo: repo, out: newReporter(rep)}
}

// Create cadastra um profissional.
func (uc *ProfessionalUseCase) Create(ctx context.Context, a Actor, raw map[string]any) (*dto.ProfessionalResponse, error) {
	var res *dto.ProfessionalResponse
	err := a.authorize(domain.PermProfessionalWrite)
	if err == nil {
		res, err = uc.create(ctx, a, raw)
	}
	ev := event{entity: "professional", action: "create", message: "Profissional cadastrado com sucesso."}
	if res != nil {
		ev.entityID, ev.after = res.ID, res
	}
	uc.out.done(ctx, a, ev, err)
	return res, err
}

func (uc *ProfessionalUseCase) create(ctx context.Context, a Actor, raw map[string]any) (*dto.ProfessionalResponse, error) {
	in, err := dto.NewCreateProfessionalDTO(a.scoped(raw, ""))
	if err != nil {
		return nil, err
	}
	if err := in.Validate().Err(); err != nil {
		return nil, err
	}
	p, err := uc.repo.Create(ctx, in.ToObject())
	if err != nil {
		return nil, err
	}
	return toProfessionalResponse(p), nil
}

// GetByID devolve um profissional.
func (uc *ProfessionalUseCase) GetByID(ctx context.Context, a Actor, id string) (*dto.ProfessionalResponse, error) {
	if err := a.authorize(domain.PermProfessionalRead); err != nil {
		return nil, err
	}
	p, err := uc.repo.FindByID(ctx, a.UnitID, id)
	if err != nil {
		return nil, err
	}
	return toProfessionalResponse(p), nil
}

// Update atualização parcial.
func (uc *ProfessionalUseCase) Update(ctx context.Context, a Actor, id string, raw map[string]any) (*dto.ProfessionalResponse, error) {
	var res *dto.ProfessionalResponse
	err := a.authorize(domain.PermProfessionalWrite)
	if err == nil {
		res, err = uc.update(ctx, a, id, raw)
	}
	uc.out.done(ctx, a, event{entity: "professional", action: "update", entityID: id, message: "Profissional atualizado.", after: res}, err)
	return res, err
}

func (uc *ProfessionalUseCase) update(ctx context.Context, a Actor, id string, raw map[string]any) (*dto.ProfessionalResponse, error) {
	in, err := dto.NewUpdateProfessionalDTO(raw)
	if err != nil {
		return nil, err
	}
	if err := in.Validate().Err(); err != nil {
		return nil, err
	}
	p, err := uc.repo.Update(ctx, a.UnitID, id, in.ToObject())
	if err != nil {
		return nil, err
	}
	return toProfessionalResponse(p), nil
}

// Delete exclusão lógica.
func (uc *ProfessionalUseCase) Delete(ctx context.Context, a Actor, id string) error {
	err := a.authorize(domain.PermProfessionalWrite)
	if err == nil {
		err = uc.repo.SoftDelete(ctx, a.UnitID, id)
	}
	uc.out.done(ctx, a, event{entity: "professional", action: "delete", entityID: id, message: "Profissional removido."}, err)
	return err
}

// List profissionais da unidade.
func (uc *ProfessionalUseCase) List(ctx context.Context, a Actor, onlyActive bool) ([]dto.ProfessionalResponse, error) {
	if err := a.authorize(domain.PermProfessionalRead); err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx, a.UnitID, onlyActive)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProfessionalResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toProfessionalResponse(p))
	}
	return out, nil
}

func toProfessionalResponse(p *entity.Professional) *dto.ProfessionalResponse {
	return &dto.ProfessionalResponse{
		ID:             p.ID,
		UnitID:         p.UnitID,
		UserID:         p.UserID,
		Name:           p.Name,
		Email:          p.Email,
		Phone:          formatted(p.Phone, format.Phone),
		CPF:            formatted(p.CPF, format.CPF),
		Specialty:      p.Specialty,
		CommissionRate: p.CommissionRate,
		IsActive:       p.IsActive,
		CreatedAt:      p.CreatedAt,
	}
}

// QueueUseCase lista da vez: ordem de atendimento dos profissionais da unidade.
// Toda mudança é transmitida em tempo real com a fila completa.
type QueueUseCase struct {
	repo          repository.QueueRepository
	professionals repository.ProfessionalRepository
	tx            repository.TxRunner
	out           reporter
}

// NewQueueUseCase constrói o caso de uso.
func NewQueueUseCase(repo repository.QueueRepository, professionals repository.ProfessionalRepository, tx repository.TxRunner, rep Reporting) *QueueUseCase {
	return &QueueUseCase{repo: repo, professionals: professionals, tx: tx, out: newReporter(rep)}
}

// List fila na ordem de posição.
func (uc *QueueUseCase) List(ctx context.Context, a Actor) ([]dto.QueueEntryResponse, error) {
	if err := a.authorize(domain.PermProfessionalRead); err != nil {
		return nil, err
	}
	return uc.snapshot(ctx, a.UnitID)
}

func (uc *QueueUseCase) snapshot(ctx context.Context, unitID string) ([]dto.QueueEntryResponse, error) {
	list, err := uc.repo.List(ctx, unitID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.QueueEntryResponse, 0, len(list))
	for _, e := range list {
		out = append(out, toQueueResponse(e))
	}
	return out, nil
}

// Join coloca o profissional no fim da fila.
func (uc *QueueUseCase) Join(ctx context.Context, a Actor, professionalID string) ([]dto.QueueEntryResponse, error) {
	return uc.change(ctx, a, "join", professionalID, "entrou na fila", func() error {
		p, err := uc.professionals.FindByID(ctx, a.UnitID, professionalID)
		if err != nil {
			return err
		}
		if !p.IsActive {
			return domain.Conflict("Profissional inativo não entra na fila.")
		}
		return uc.tx.Run(ctx, func(r repository.Repos) error {
			if err := r.Queue.LockPositions(ctx, a.UnitID); err != nil {
				return err
			}
			_, err := r.Queue.Join(ctx, a.UnitID, professionalID)
			return err
		})
	})
}

// Leave tira o profissional da fila.
func (uc *QueueUseCase) Leave(ctx context.Context, a Actor, professionalID string) ([]dto.QueueEntryResponse, error) {
	return uc.change(ctx, a, "leave", professionalID, "saiu da fila", func() error {
		return uc.repo.Leave(ctx, a.UnitID, professionalID)
	})
}

// Pause mantém a posição mas o profissional deixa de ser chamado.
func (uc *QueueUseCase) Pause(ctx context.Context, a Actor, professionalID string) ([]dto.QueueEntryResponse, error) {
	return uc.change(ctx, a, "pause", professionalID, "pausou", func() error {
		_, err := uc.repo.SetStatus(ctx, a.UnitID, professionalID, entity.QueuePausado)
		return err
	})
}

// Finish encerra o atendimento (ou a pausa) e devolve o profissional a DISPONIVEL.
func (uc *QueueUseCase) Finish(ctx context.Context, a Actor, professionalID string) ([]dto.QueueEntryResponse, error) {
	return uc.change(ctx, a, "finish", professionalID, "está disponível", func() error {
		_, err := uc.repo.SetStatus(ctx, a.UnitID, professionalID, entity.QueueDisponivel)
		return err
	})
}

// Next chama o próximo disponível: trava a linha, marca ATENDENDO, manda para o fim e conta
// o atendimento, tudo na mesma transação.
func (uc *QueueUseCase) Next(ctx context.Context, a Actor) (*dto.QueueEntryResponse, error) {
	var called *entity.QueueEntry
	err := a.authorize(domain.PermQueueOperate)
	if err == nil {
		err = uc.tx.Run(ctx, func(r repository.Repos) error {
			if err := r.Queue.LockPositions(ctx, a.UnitID); err != nil {
				return err
			}
			next, err := r.Queue.LockNextAvailable(ctx, a.UnitID)
			if errors.Is(err, domain.ErrNotFound) {
				return domain.Conflict("Nenhum profissional disponível na lista da vez.")
			}
			if err != nil {
				return err
			}
			called, err = r.Queue.MoveToEnd(ctx, a.UnitID, next.ProfessionalID)
			return err
		})
	}
	ev := event{entity: "queue", action: "next"}
	var res *dto.QueueEntryResponse
	if called != nil {
		out := toQueueResponse(called)
		res = &out
		ev.entityID = called.ProfessionalID
		ev.message = "Próximo atendimento: " + called.Name + "."
		list, serr := uc.snapshot(ctx, a.UnitID)
		if serr != nil {
			uc.out.Log.Warn().Err(serr).Str("unit_id", a.UnitID).Msg("lista da vez indisponível para a notificação")
		}
		ev.after = list
	}
	uc.out.done(ctx, a, ev, err)
	return res, err
}

func (uc *QueueUseCase) change(ctx context.Context, a Actor, action, professionalID, verb string, fn func() error) ([]dto.QueueEntryResponse, error) {
	var list []dto.QueueEntryResponse
	err := a.authorize(domain.PermQueueOperate)
	if err == nil {
		err = fn()
	}
	if err == nil {
		list, err = uc.snapshot(ctx, a.UnitID)
	}
	ev := event{entity: "queue", action: action, entityID: professionalID, after: list}
	for _, e := range list {
		if e.ProfessionalID == professionalID {
			ev.message = e.Name + " " + verb + "."
		}
	}
	if ev.message == "" {
		ev.message = "Lista da vez atualizada."
	}
	uc.out.done(ctx, a, ev, err)
	return list, err
}

func toQueueResponse(e *entity.QueueEntry) dto.QueueEntryResponse {
	return dto.QueueEntryResponse{
		ProfessionalID: e.ProfessionalID,
		Name:           e.Name,
		Position:       e.Position,
		Status:         e.Status,
		ServedCount:    e.ServedCount,
		LastServedAt:   e.LastServedAt,
		JoinedAt:       e.JoinedAt,
	}
}
