package entity

import "time"

// Status de fornecedor.
const (
	SupplierAtivo     = "ATIVO"
	SupplierInativo   = "INATIVO"
	SupplierBloqueado = "BLOQUEADO"
)

// Supplier fornecedor de produtos ou serviços da unidade.
type Supplier struct {
	ID        string
	UnitID    string
	Name      string
	TradeName *string
	CNPJ      *string
	CPF       *string
	Email     *string
	Phone     *string
	Address   *string
	City      *string
	State     *string
	ZipCode   *string
	Notes     *string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
	Contacts  []SupplierContact
}

// SupplierContact pessoa de contato do fornecedor.
type SupplierContact struct {
	ID         string
	SupplierID string
	Name       string
	Role       *string
	Email      *string
	Phone      *string
	IsPrimary  bool
	CreatedAt  time.Time
}

// SupplierFile metadados de um arquivo (contrato, boleto, nota) guardado no storage.
type SupplierFile struct {
	ID          string
	UnitID      string
	SupplierID  string
	FileName    string
	StorageKey  string
	ContentType string
	SizeBytes   int64
	UploadedBy  string
	CreatedAt   time.Time
}
