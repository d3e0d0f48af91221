package dto

import (
	"time"

	"github.com/barberpro/barber-analytics-api/pkg/format"
)

// SupplierColumns colunas de suppliers graváveis pela API.
var SupplierColumns = []string{
	"unit_id", "name", "trade_name", "cnpj", "cpf", "email", "phone",
	"address", "city", "state", "zip_code", "notes", "status",
}

// SupplierContactColumns colunas de supplier_contacts graváveis pela API.
var SupplierContactColumns = []string{"name", "role", "email", "phone", "is_primary"}

// SupplierContactDTO contato informado junto com o fornecedor.
type SupplierContactDTO struct {
	Name      string  `json:"name" validate:"required,min=2,max=120"`
	Role      *string `json:"role" validate:"omitempty,max=60"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Phone     *string `json:"phone" validate:"omitempty,phone_br"`
	IsPrimary *bool   `json:"is_primary"`
}

// ToObject devolve apenas colunas permitidas com valor definido.
func (d SupplierContactDTO) ToObject() map[string]any {
	return pick(SupplierContactColumns, map[string]any{
		"name":       d.Name,
		"role":       d.Role,
		"email":      d.Email,
		"phone":      digitsPtr(d.Phone),
		"is_primary": d.IsPrimary,
	})
}

// CreateSupplierDTO entrada para cadastrar um fornecedor com seus contatos.
type CreateSupplierDTO struct {
	UnitID    string               `json:"unit_id" validate:"required,uuid"`
	Name      string               `json:"name" validate:"required,min=2,max=150"`
	TradeName *string              `json:"trade_name" validate:"omitempty,max=150"`
	CNPJ      *string              `json:"cnpj" validate:"omitempty,cnpj"`
	CPF       *string              `json:"cpf" validate:"omitempty,cpf"`
	Email     *string              `json:"email" validate:"omitempty,email"`
	Phone     *string              `json:"phone" validate:"omitempty,phone_br"`
	Address   *string              `json:"address" validate:"omitempty,max=200"`
	City      *string              `json:"city" validate:"omitempty,max=80"`
	State     *string              `json:"state" validate:"omitempty,len=2"`
	ZipCode   *string              `json:"zip_code" validate:"omitempty,cep"`
	Notes     *string              `json:"notes" validate:"omitempty,max=500"`
	Status    *string              `json:"status" validate:"omitempty,oneof=ATIVO INATIVO BLOQUEADO"`
	Contacts  []SupplierContactDTO `json:"contacts" validate:"omitempty,dive"`
}

// NewCreateSupplierDTO monta o DTO a partir do corpo cru.
func NewCreateSupplierDTO(raw map[string]any) (*CreateSupplierDTO, error) {
	var d CreateSupplierDTO
	if err := decode(raw, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Validate aplica as regras de fornecedor: CNPJ e CPF são mutuamente exclusivos
// e no máximo um contato pode ser o principal.
func (d *CreateSupplierDTO) Validate() ValidationResult {
	c := check(d)
	checkDocuments(c, d.CNPJ, d.CPF)
	checkPrimaryContact(c, d.Contacts)
	return c.result()
}

// ToObject devolve apenas colunas permitidas com valor definido (sem os contatos).
func (d *CreateSupplierDTO) ToObject() map[string]any {
	return pick(SupplierColumns, map[string]any{
		"unit_id":    d.UnitID,
		"name":       d.Name,
		"trade_name": d.TradeName,
		"cnpj":       digitsPtr(d.CNPJ),
		"cpf":        digitsPtr(d.CPF),
		"email":      d.Email,
		"phone":      digitsPtr(d.Phone),
		"address":    d.Address,
		"city":       d.City,
		"state":      d.State,
		"zip_code":   digitsPtr(d.ZipCode),
		"notes":      d.Notes,
		"status":     d.Status,
	})
}

// ContactObjects devolve os contatos prontos para persistir.
func (d *CreateSupplierDTO) ContactObjects() []map[string]any {
	return contactObjects(d.Contacts)
}

// UpdateSupplierDTO atualização parcial. Contacts, quando enviado, substitui a lista inteira.
type UpdateSupplierDTO struct {
	Name      *string              `json:"name" validate:"omitempty,min=2,max=150"`
	TradeName *string              `json:"trade_name" validate:"omitempty,max=150"`
	CNPJ      *string              `json:"cnpj" validate:"omitempty,cnpj"`
	CPF       *string              `json:"cpf" validate:"omitempty,cpf"`
	Email     *string              `json:"email" validate:"omitempty,email"`
	Phone     *string              `json:"phone" validate:"omitempty,phone_br"`
	Address   *string              `json:"address" validate:"omitempty,max=200"`
	City      *string              `json:"city" validate:"omitempty,max=80"`
	State     *string              `json:"state" validate:"omitempty,len=2"`
	ZipCode   *string              `json:"zip_code" validate:"omitempty,cep"`
	Notes     *string              `json:"notes" validate:"omitempty,max=500"`
	Status    *string              `json:"status" validate:"omitempty,oneof=ATIVO INATIVO BLOQUEADO"`
	Contacts  []SupplierContactDTO `json:"contacts" validate:"omitempty,dive"`
}

// NewUpdateSupplierDTO monta o DTO a partir do corpo cru.
func NewUpdateSupplierDTO(raw map[string]any) (*UpdateSupplierDTO, error) {
	var d UpdateSupplierDTO
	if err := decode(raw, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Validate aplica as regras de atualização de fornecedor.
func (d *UpdateSupplierDTO) Validate() ValidationResult {
	c := check(d)
	checkDocuments(c, d.CNPJ, d.CPF)
	checkPrimaryContact(c, d.Contacts)
	if len(d.ToObject()) == 0 && d.Contacts == nil {
		c.add("body", "nenhum campo para atualizar")
	}
	return c.result()
}

// ToObject devolve apenas colunas permitidas com valor definido.
func (d *UpdateSupplierDTO) ToObject() map[string]any {
	return pick(SupplierColumns[1:], map[string]any{
		"name":       d.Name,
		"trade_name": d.TradeName,
		"cnpj":       digitsPtr(d.CNPJ),
		"cpf":        digitsPtr(d.CPF),
		"email":      d.Email,
		"phone":      digitsPtr(d.Phone),
		"address":    d.Address,
		"city":       d.City,
		"state":      d.State,
		"zip_code":   digitsPtr(d.ZipCode),
		"notes":      d.Notes,
		"status":     d.Status,
	})
}

// ContactObjects devolve os contatos prontos para persistir (nil = manter os atuais).
func (d *UpdateSupplierDTO) ContactObjects() []map[string]any {
	if d.Contacts == nil {
		return nil
	}
	return contactObjects(d.Contacts)
}

func contactObjects(contacts []SupplierContactDTO) []map[string]any {
	out := make([]map[string]any, 0, len(contacts))
	for _, ct := range contacts {
		out = append(out, ct.ToObject())
	}
	return out
}

func checkDocuments(c *checker, cnpj, cpf *string) {
	if cnpj != nil && cpf != nil && *cnpj != "" && *cpf != "" {
		c.add("cnpj", "informe cnpj ou cpf, não ambos")
	}
}

func checkPrimaryContact(c *checker, contacts []SupplierContactDTO) {
	primary := 0
	for _, ct := range contacts {
		if ct.IsPrimary != nil && *ct.IsPrimary {
			primary++
		}
	}
	if primary > 1 {
		c.add("contacts", "apenas um contato pode ser o principal")
	}
}

func digitsPtr(s *string) *string {
	if s == nil {
		return nil
	}
	d := format.OnlyDigits(*s)
	return &d
}

// SupplierFilter filtros da listagem de fornecedores.
type SupplierFilter struct {
	Search string
	Status string
	Page   PageRequest
}

// SupplierContactResponse contato na resposta.
type SupplierContactResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Role      *string `json:"role,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	IsPrimary bool    `json:"is_primary"`
}

// SupplierResponse saída de um fornecedor; documentos e telefone já formatados.
type SupplierResponse struct {
	ID        string                    `json:"id"`
	UnitID    string                    `json:"unit_id"`
	Name      string                    `json:"name"`
	TradeName *string                   `json:"trade_name,omitempty"`
	CNPJ      *string                   `json:"cnpj,omitempty"`
	CPF       *string                   `json:"cpf,omitempty"`
	Email     *string                   `json:"email,omitempty"`
	Phone     *string                   `json:"phone,omitempty"`
	Address   *string                   `json:"address,omitempty"`
	City      *string                   `json:"city,omitempty"`
	State     *string                   `json:"state,omitempty"`
	ZipCode   *string                   `json:"zip_code,omitempty"`
	Notes     *string                   `json:"notes,omitempty"`
	Status    string                    `json:"status"`
	Contacts  []SupplierContactResponse `json:"contacts"`
	CreatedAt time.Time                 `json:"created_at"`
	UpdatedAt time.Time                 `json:"updated_at"`
}

// SupplierListResponse lista paginada de fornecedores.
type SupplierListResponse struct {
	Items []SupplierResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// SupplierFileResponse metadados de arquivo com URL temporária de download.
type SupplierFileResponse struct {
	ID          string    `json:"id"`
	SupplierID  string    `json:"supplier_id"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	DownloadURL string    `json:"download_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
