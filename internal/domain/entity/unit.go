package entity

import "time"

// Unit representa uma barbearia (tenant). Todo dado operacional pertence a uma unidade.
type Unit struct {
	ID        string
	Name      string
	CNPJ      string
	Phone     string
	Email     string
	Address   string
	Status    string // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Módulos contratáveis (devem coincidir com o CHECK da tabela unit_modules).
const (
	ModuleEstoque     = "estoque"
	ModuleFinanceiro  = "financeiro"
	ModuleAtendimento = "atendimento"
)

// UnitModule representa a ativação de um módulo em uma unidade.
type UnitModule struct {
	UnitID      string
	ModuleName  string
	IsActive    bool
	ActivatedAt time.Time
	ExpiresAt   *time.Time // nil = sem vencimento
}
