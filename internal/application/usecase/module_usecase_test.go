package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barberpro/barber-analytics-api/internal/application/dto"
	"github.com/barberpro/barber-analytics-api/internal/domain"
	"github.com/barberpro/barber-analytics-api/internal/domain/entity"
	"github.com/barberpro/barber-analytics-api/internal/domain/repository"
)

type fakeUnits struct {
	repository.UnitRepository
	units   map[string]*entity.Unit
	modules map[string][]string
}

func newFakeUnits() *fakeUnits {
	return &fakeUnits{units: map[string]*entity.Unit{}, modules: map[string][]string{}}
}

func (f *fakeUnits) Create(_ context.Context, u *entity.Unit) error {
	for _, existing := range f.units {
		if existing.CNPJ == u.CNPJ {
			return domain.ErrDuplicate
		}
	}
	f.units[u.ID] = u
	return nil
}

func (f *fakeUnits) EnableModule(_ context.Context, unitID, module string) error {
	f.modules[unitID] = append(f.modules[unitID], module)
	return nil
}

func (f *fakeUnits) HasActiveModule(_ context.Context, unitID, module string) (bool, error) {
	for _, m := range f.modules[unitID] {
		if m == module {
			return true, nil
		}
	}
	return false, nil
}

func TestUnitCreate_TodosOsModulosPorPadrao(t *testing.T) {
	units := newFakeUnits()
	uc := NewUnitUseCase(units, &fakeTx{repos: repository.Repos{Units: units}})

	res, err := uc.Create(context.Background(), dto.CreateUnitRequest{
		Name:  "Barbearia Centro",
		CNPJ:  "11.222.333/0001-81",
		Phone: "(11) 98765-4321",
	})
	require.NoError(t, err)

	assert.Equal(t, "11.222.333/0001-81", res.CNPJ)
	assert.ElementsMatch(t, []string{"estoque", "financeiro", "atendimento"}, res.Modules)
	assert.Equal(t, "11222333000181", units.units[res.ID].CNPJ, "gravado só com dígitos")

	svc := NewModuleService(units)
	ok, err := svc.HasActiveModule(context.Background(), res.ID, entity.ModuleFinanceiro)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUnitCreate_CNPJDuplicado(t *testing.T) {
	units := newFakeUnits()
	uc := NewUnitUseCase(units, &fakeTx{repos: repository.Repos{Units: units}})
	in := dto.CreateUnitRequest{Name: "Barbearia Centro", CNPJ: "11222333000181", Modules: []string{"estoque"}}

	_, err := uc.Create(context.Background(), in)
	require.NoError(t, err)
	_, err = uc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUnitCreate_CNPJInvalido(t *testing.T) {
	tx := &fakeTx{}
	uc := NewUnitUseCase(newFakeUnits(), tx)

	_, err := uc.Create(context.Background(), dto.CreateUnitRequest{Name: "Barbearia", CNPJ: "11.222.333/0001-00"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, tx.runs)
}

func TestModuleService_ParametrosObrigatorios(t *testing.T) {
	_, err := NewModuleService(newFakeUnits()).HasActiveModule(context.Background(), "", "estoque")
	assert.Error(t, err)
}
