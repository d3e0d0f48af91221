package usecase

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barberpro/barber-analytics-api/internal/application/dto"
	"github.com/barberpro/barber-analytics-api/internal/application/ports"
	"github.com/barberpro/barber-analytics-api/internal/domain"
	"github.com/barberpro/barber-analytics-api/internal/domain/entity"
	"github.com/barberpro/barber-analytics-api/internal/domain/repository"
)

// Os DTOs exigem UUID em unit_id e performed_by.
const (
	uuidUnit    = "0b6e4c1e-6a1d-4c59-9a55-2f1c7c3f0a01"
	uuidProduct = "5f0c2b8e-9d4a-4e7b-8c1f-3a2d6e9b7c10"
)

var (
	managerUUID = Actor{UserID: "7d1e5a90-2c3b-4f6d-9e8a-1b2c3d4e5f60", UnitID: uuidUnit, Role: entity.RoleGerente}
	recepUUID   = Actor{UserID: "8e2f6b01-3d4c-4a7e-8f9b-2c3d4e5f6a71", UnitID: uuidUnit, Role: entity.RoleRecepcionista}
	barberUUID  = Actor{UserID: "9f3a7c12-4e5d-4b8f-9a0c-3d4e5f6a7b82", UnitID: uuidUnit, Role: entity.RoleBarbeiro}
)

// memProducts produtos em memória; calls conta todo acesso ao repositório.
type memProducts struct {
	repository.ProductRepository
	items   map[string]*entity.Product
	created map[string]any
	costs   map[string]decimal.Decimal
	calls   int
}

func newMemProducts(ps ...*entity.Product) *memProducts {
	m := &memProducts{items: map[string]*entity.Product{}, costs: map[string]decimal.Decimal{}}
	for _, p := range ps {
		m.items[p.ID] = p
	}
	return m
}

func (m *memProducts) Create(_ context.Context, values map[string]any) (*entity.Product, error) {
	m.calls++
	m.created = values
	p := &entity.Product{
		ID:          uuidProduct,
		UnitID:      values["unit_id"].(string),
		Name:        values["name"].(string),
		UnitMeasure: "UN",
		CostPrice:   values["cost_price"].(decimal.Decimal),
		SalePrice:   values["sale_price"].(decimal.Decimal),
		IsActive:    true,
	}
	if v, ok := values["min_stock"].(decimal.Decimal); ok {
		p.MinStock = v
	}
	m.items[p.ID] = p
	return p, nil
}

func (m *memProducts) find(unitID, id string) (*entity.Product, error) {
	p, ok := m.items[id]
	if !ok || p.UnitID != unitID {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memProducts) FindByID(_ context.Context, unitID, id string) (*entity.Product, error) {
	m.calls++
	return m.find(unitID, id)
}

func (m *memProducts) FindForUpdate(_ context.Context, unitID, id string) (*entity.Product, error) {
	m.calls++
	return m.find(unitID, id)
}

func (m *memProducts) Update(_ context.Context, unitID, id string, values map[string]any) (*entity.Product, error) {
	m.calls++
	p, ok := m.items[id]
	if !ok || p.UnitID != unitID {
		return nil, domain.ErrNotFound
	}
	if v, ok := values["name"].(string); ok {
		p.Name = v
	}
	if v, ok := values["sale_price"].(decimal.Decimal); ok {
		p.SalePrice = v
	}
	cp := *p
	return &cp, nil
}

func (m *memProducts) UpdateCost(_ context.Context, unitID, id string, cost decimal.Decimal) error {
	m.calls++
	if _, ok := m.items[id]; !ok {
		return domain.ErrNotFound
	}
	m.costs[id] = cost
	m.items[id].CostPrice = cost
	return nil
}

func (m *memProducts) SoftDelete(_ context.Context, unitID, id string) error {
	m.calls++
	p, ok := m.items[id]
	if !ok || p.UnitID != unitID {
		return domain.ErrNotFound
	}
	p.IsActive = false
	return nil
}

func (m *memProducts) Stats(context.Context, string) (*entity.ProductStats, error) {
	m.calls++
	return &entity.ProductStats{TotalProducts: len(m.items), ActiveProducts: len(m.items), LowStockCount: 1, StockValue: dec("123.456")}, nil
}

func (m *memProducts) ListLowStock(_ context.Context, unitID string) ([]*entity.Product, error) {
	m.calls++
	var out []*entity.Product
	for _, p := range m.items {
		if p.UnitID == unitID && p.IsLowStock() {
			out = append(out, p)
		}
	}
	return out, nil
}

func pomada() *entity.Product {
	return &entity.Product{
		ID: uuidProduct, UnitID: uuidUnit, Name: "Pomada modeladora", UnitMeasure: "UN",
		CostPrice: dec("5"), SalePrice: dec("35"), CurrentStock: dec("10"), MinStock: dec("3"), IsActive: true,
	}
}

func TestProductCreate_GravaNaUnidadeDoUsuarioENotifica(t *testing.T) {
	repo := newMemProducts()
	rec := &recorder{}
	uc := NewProductUseCase(repo, rec.reporting())

	res, err := uc.Create(context.Background(), managerUUID, map[string]any{
		"unit_id":    "00000000-0000-4000-8000-000000000000",
		"name":       "Pomada modeladora",
		"cost_price": json.Number("12.50"),
		"sale_price": json.Number("35"),
	})
	require.NoError(t, err)
	assert.Equal(t, uuidUnit, repo.created["unit_id"], "unidade vem do token, nunca do corpo")
	assert.True(t, res.CostPrice.Equal(dec("12.50")))

	require.Len(t, rec.notes, 1)
	assert.Equal(t, ports.LevelSuccess, rec.notes[0].Level)
	assert.Equal(t, "Produto cadastrado com sucesso.", rec.notes[0].Message)
	assert.Equal(t, "product", rec.notes[0].Entity)
	require.Len(t, rec.audits, 1)
	assert.True(t, rec.audits[0].Success)
	assert.Equal(t, uuidProduct, rec.audits[0].EntityID)
	assert.NotNil(t, rec.audits[0].After)
}

func TestProductCreate_CamposObrigatorios(t *testing.T) {
	repo := newMemProducts()
	rec := &recorder{}
	uc := NewProductUseCase(repo, rec.reporting())

	_, err := uc.Create(context.Background(), managerUUID, map[string]any{"name": "P"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, repo.calls)
	require.Len(t, rec.notes, 1)
	assert.Equal(t, ports.LevelError, rec.notes[0].Level)
}

func TestProduct_BarbeiroNaoAlteraCadastro(t *testing.T) {
	repo := newMemProducts(pomada())
	rec := &recorder{}
	uc := NewProductUseCase(repo, rec.reporting())
	ctx := context.Background()

	_, err := uc.Create(ctx, barberUUID, map[string]any{"name": "Gel", "cost_price": json.Number("1"), "sale_price": json.Number("2")})
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	_, err = uc.Update(ctx, barberUUID, uuidProduct, map[string]any{"name": "Outro nome"})
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	err = uc.Delete(ctx, barberUUID, uuidProduct)
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)

	assert.Zero(t, repo.calls, "perfil negado não chega ao repositório")
	assert.True(t, repo.items[uuidProduct].IsActive)
	require.Len(t, rec.audits, 3)
	for _, a := range rec.audits {
		assert.False(t, a.Success)
		assert.Equal(t, string(domain.KindPermission), a.ErrorKind)
	}
}

func TestProductUpdate_AuditaAntesEDepois(t *testing.T) {
	repo := newMemProducts(pomada())
	rec := &recorder{}
	uc := NewProductUseCase(repo, rec.reporting())

	res, err := uc.Update(context.Background(), managerUUID, uuidProduct, map[string]any{"sale_price": json.Number("39.90")})
	require.NoError(t, err)
	assert.True(t, res.SalePrice.Equal(dec("39.90")))

	require.Len(t, rec.audits, 1)
	before, ok := rec.audits[0].Before.(*dto.ProductResponse)
	require.True(t, ok)
	assert.True(t, before.SalePrice.Equal(dec("35")))
	require.Len(t, rec.notes, 1)
	assert.Equal(t, "Produto atualizado com sucesso.", rec.notes[0].Message)
}

func TestProductDelete_InativaENotifica(t *testing.T) {
	repo := newMemProducts(pomada())
	rec := &recorder{}
	uc := NewProductUseCase(repo, rec.reporting())

	require.NoError(t, uc.Delete(context.Background(), managerUUID, uuidProduct))
	assert.False(t, repo.items[uuidProduct].IsActive)
	require.Len(t, rec.notes, 1)
	assert.Equal(t, "Produto excluído.", rec.notes[0].Message)
	assert.Equal(t, uuidProduct, rec.notes[0].EntityID)

	err := uc.Delete(context.Background(), managerUUID, "3c4d5e6f-0000-4000-8000-000000000001")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductStats_SugereReposicao(t *testing.T) {
	low := pomada()
	low.CurrentStock = dec("2")
	repo := newMemProducts(low)
	uc := NewProductUseCase(repo, (&recorder{}).reporting())

	st, err := uc.Stats(context.Background(), barberUUID)
	require.NoError(t, err)
	assert.True(t, st.StockValue.Equal(dec("123.46")))
	require.Len(t, st.Restock, 1)
	// sem máximo: volta ao dobro do mínimo (6 - 2)
	assert.True(t, st.Restock[0].SuggestedQty.Equal(dec("4")))
	assert.True(t, st.Restock[0].EstimatedCost.Equal(dec("20")))
}
