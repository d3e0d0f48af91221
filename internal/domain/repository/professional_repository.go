package repository

import (
	"context"

	"github.com/barberpro/barber-analytics-api/internal/domain/entity"
)

// ProfessionalRepository port de persistência de profissionais.
type ProfessionalRepository interface {
	Create(ctx context.Context, values map[string]any) (*entity.Professional, error)
	FindByID(ctx context.Context, unitID, id string) (*entity.Professional, error)
	Update(ctx context.Context, unitID, id string, values map[string]any) (*entity.Professional, error)
	SoftDelete(ctx context.Context, unitID, id string) error
	List(ctx context.Context, unitID string, onlyActive bool) ([]*entity.Professional, error)
}

// QueueRepository port da lista da vez.
type QueueRepository interface {
	List(ctx context.Context, unitID string) ([]*entity.QueueEntry, error)
	// Join coloca o profissional no fim da fila como DISPONIVEL.
	Join(ctx context.Context, unitID, professionalID string) (*entity.QueueEntry, error)
	Leave(ctx context.Context, unitID, professionalID string) error
	SetStatus(ctx context.Context, unitID, professionalID, status string) (*entity.QueueEntry, error)
	// LockNextAvailable trava e devolve o DISPONIVEL de menor posição (ErrNotFound se não houver).
	LockNextAvailable(ctx context.Context, unitID string) (*entity.QueueEntry, error)
	// MoveToEnd marca ATENDENDO, manda para o fim da fila e incrementa o contador de atendimentos.
	MoveToEnd(ctx context.Context, unitID, professionalID string) (*entity.QueueEntry, error)
	// LockPositions serializa, até o fim da transação, quem calcula a próxima posição da unidade.
	// Chamar antes de Join e MoveToEnd, dentro de TxRunner.Run.
	LockPositions(ctx context.Context, unitID string) error
}
