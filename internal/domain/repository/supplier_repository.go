package repository

import (
	"context"

	"github.com/barberpro/barber-analytics-api/internal/domain/entity"
)

// SupplierFilter filtros de listagem de fornecedores.
type SupplierFilter struct {
	Search string
	Status string
	Limit  int
	Offset int
}

// SupplierRepository port de persistência de fornecedores, contatos e arquivos.
type SupplierRepository interface {
	Create(ctx context.Context, values map[string]any) (*entity.Supplier, error)
	FindByID(ctx context.Context, unitID, id string) (*entity.Supplier, error)
	Update(ctx context.Context, unitID, id string, values map[string]any) (*entity.Supplier, error)
	// SoftDelete marca o fornecedor como INATIVO.
	SoftDelete(ctx context.Context, unitID, id string) error
	List(ctx context.Context, unitID string, f SupplierFilter) ([]*entity.Supplier, int, error)
	// ReplaceContacts apaga os contatos atuais e grava a lista informada.
	ReplaceContacts(ctx context.Context, supplierID string, contacts []map[string]any) ([]entity.SupplierContact, error)

	AddFile(ctx context.Context, file *entity.SupplierFile) error
	FindFile(ctx context.Context, unitID, fileID string) (*entity.SupplierFile, error)
	ListFiles(ctx context.Context, unitID, supplierID string) ([]*entity.SupplierFile, error)
	DeleteFile(ctx context.Context, unitID, fileID string) error
}
