package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/barberpro/barber-analytics-api/internal/application/dto"
	"github.com/barberpro/barber-analytics-api/internal/domain"
	"github.com/barberpro/barber-analytics-api/internal/domain/entity"
	"github.com/barberpro/barber-analytics-api/internal/domain/repository"
	"github.com/barberpro/barber-analytics-api/pkg/format"
)

// ModuleService verifica quais módulos uma unidade tem ativos.
// É o único ponto da aplicação que conhece a regra de ativação de módulos.
type ModuleService struct {
	unitRepo repository.UnitRepository
}

// NewModuleService constrói o serviço de módulos.
func NewModuleService(unitRepo repository.UnitRepository) *ModuleService {
	return &ModuleService{unitRepo: unitRepo}
}

// HasActiveModule informa se a unidade tem o módulo ativo e sem vencimento.
// Devolve false (sem erro) quando o módulo não foi contratado; erro só em falha de infraestrutura.
func (s *ModuleService) HasActiveModule(ctx context.Context, unitID, module string) (bool, error) {
	if unitID == "" || module == "" {
		return false, fmt.Errorf("module: unitID e module são obrigatórios")
	}
	return s.unitRepo.HasActiveModule(ctx, unitID, module)
}

// UnitUseCase cadastro de unidades (barbearias).
type UnitUseCase struct {
	repo repository.UnitRepository
	tx   repository.TxRunner
	now  func() time.Time
}

// NewUnitUseCase constrói o caso de uso.
func NewUnitUseCase(repo repository.UnitRepository, tx repository.TxRunner) *UnitUseCase {
	return &UnitUseCase{repo: repo, tx: tx, now: time.Now}
}

// Create grava a unidade e ativa os módulos pedidos na mesma transação.
// Sem módulos informados a unidade recebe todos.
func (uc *UnitUseCase) Create(ctx context.Context, in dto.CreateUnitRequest) (*dto.UnitResponse, error) {
	if err := dto.ValidateStruct(in).Err(); err != nil {
		return nil, err
	}
	modules := in.Modules
	if len(modules) == 0 {
		modules = []string{entity.ModuleEstoque, entity.ModuleFinanceiro, entity.ModuleAtendimento}
	}
	now := uc.now()
	unit := &entity.Unit{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(in.Name),
		CNPJ:      format.OnlyDigits(in.CNPJ),
		Phone:     format.OnlyDigits(in.Phone),
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		Address:   strings.TrimSpace(in.Address),
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		if err := r.Units.Create(ctx, unit); err != nil {
			return err
		}
		for _, m := range modules {
			if err := r.Units.EnableModule(ctx, unit.ID, m); err != nil {
				return err
			}
		}
		return nil
	})
	if errors.Is(err, domain.ErrDuplicate) {
		return nil, domain.Conflict("Já existe uma unidade com este CNPJ.")
	}
	if err != nil {
		return nil, err
	}
	return toUnitResponse(unit, modules), nil
}

// List unidades com seus módulos ativos.
func (uc *UnitUseCase) List(ctx context.Context, p dto.PageRequest) (*dto.UnitListResponse, error) {
	pg := p.Normalize()
	list, total, err := uc.repo.List(ctx, pg.Limit, pg.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UnitResponse, 0, len(list))
	for _, u := range list {
		modules, err := uc.repo.ListModules(ctx, u.ID)
		if err != nil {
			return nil, err
		}
		items = append(items, *toUnitResponse(u, modules))
	}
	return &dto.UnitListResponse{Items: items, Page: dto.PageResponse{Limit: pg.Limit, Offset: pg.Offset, Total: total}}, nil
}

func toUnitResponse(u *entity.Unit, modules []string) *dto.UnitResponse {
	return &dto.UnitResponse{
		ID:        u.ID,
		Name:      u.Name,
		CNPJ:      format.CNPJ(u.CNPJ),
		Address:   u.Address,
		Phone:     format.Phone(u.Phone),
		Email:     u.Email,
		Status:    u.Status,
		Modules:   modules,
		CreatedAt: u.CreatedAt,
	}
}
