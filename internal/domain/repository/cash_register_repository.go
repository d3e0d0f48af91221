package repository

import (
	"context"

	"github.com/barberpro/barber-analytics-api/internal/domain/entity"
)

// CashRegisterRepository port de persistência de caixas e suas movimentações.
type CashRegisterRepository interface {
	// Open falha com ErrDuplicate quando a unidade já tem um caixa aberto.
	Open(ctx context.Context, values map[string]any) (*entity.CashRegister, error)
	FindByID(ctx context.Context, unitID, id string) (*entity.CashRegister, error)
	// FindOpen devolve ErrNotFound quando não há caixa aberto.
	FindOpen(ctx context.Context, unitID string) (*entity.CashRegister, error)
	// Variantes com SELECT ... FOR UPDATE, para uso dentro de transação.
	FindByIDForUpdate(ctx context.Context, unitID, id string) (*entity.CashRegister, error)
	FindOpenForUpdate(ctx context.Context, unitID string) (*entity.CashRegister, error)
	Close(ctx context.Context, unitID, id string, values map[string]any) (*entity.CashRegister, error)
	List(ctx context.Context, unitID string, limit, offset int) ([]*entity.CashRegister, int, error)

	AddMovement(ctx context.Context, values map[string]any) (*entity.CashMovement, error)
	ListMovements(ctx context.Context, unitID, registerID string) ([]*entity.CashMovement, error)
}
