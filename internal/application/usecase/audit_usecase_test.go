package usecase

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barberpro/barber-analytics-api/internal/application/dto"
	"github.com/barberpro/barber-analytics-api/internal/application/ports"
	"github.com/barberpro/barber-analytics-api/internal/domain"
	"github.com/barberpro/barber-analytics-api/internal/domain/entity"
	"github.com/barberpro/barber-analytics-api/internal/domain/repository"
)

type fakeAudit struct {
	repository.AuditRepository
	logs   []*entity.AuditLog
	filter repository.AuditFilter
}

func (f *fakeAudit) Create(_ context.Context, l *entity.AuditLog) error {
	f.logs = append(f.logs, l)
	return nil
}

func (f *fakeAudit) List(_ context.Context, unitID string, flt repository.AuditFilter) ([]*entity.AuditLog, int, error) {
	f.filter = flt
	var out []*entity.AuditLog
	for _, l := range f.logs {
		if l.UnitID == unitID {
			out = append(out, l)
		}
	}
	return out, len(out), nil
}

func TestAuditRecord_SerializaAntesEDepois(t *testing.T) {
	repo := &fakeAudit{}
	uc := NewAuditUseCase(repo)

	err := uc.Record(context.Background(), ports.AuditEntry{
		UnitID: testUnit, UserID: "u-admin", Entity: "product", EntityID: "prod-1", Action: "update", Success: true,
		Before: &dto.ProductResponse{Name: "Pomada", SalePrice: dec("35")},
		After:  &dto.ProductResponse{Name: "Pomada", SalePrice: dec("39.9")},
	})
	require.NoError(t, err)
	require.Len(t, repo.logs, 1)
	l := repo.logs[0]
	require.NotNil(t, l.EntityID)
	assert.Equal(t, "prod-1", *l.EntityID)
	assert.Nil(t, l.ErrorKind)

	var after map[string]any
	require.NoError(t, json.Unmarshal(l.After, &after))
	assert.Equal(t, "39.9", after["sale_price"])
	assert.Contains(t, string(l.Before), `"sale_price":"35"`)
}

func TestAuditRecord_FalhaSemRegistroAfetado(t *testing.T) {
	repo := &fakeAudit{}
	uc := NewAuditUseCase(repo)

	var before *dto.ProductResponse
	require.NoError(t, uc.Record(context.Background(), ports.AuditEntry{
		UnitID: testUnit, UserID: "u-barber", Entity: "product", Action: "create",
		ErrorKind: string(domain.KindPermission), Before: before,
	}))
	l := repo.logs[0]
	assert.Nil(t, l.EntityID)
	require.NotNil(t, l.ErrorKind)
	assert.Equal(t, "PERMISSION_DENIED", *l.ErrorKind)
	assert.Nil(t, l.Before, "ponteiro nulo não vira \"null\"")
	assert.Nil(t, l.After)
}

func TestAuditList_SomenteAdmin(t *testing.T) {
	repo := &fakeAudit{}
	uc := NewAuditUseCase(repo)
	require.NoError(t, uc.Record(context.Background(), ports.AuditEntry{UnitID: testUnit, UserID: "u-admin", Entity: "goal", Action: "delete", Success: true}))
	require.NoError(t, uc.Record(context.Background(), ports.AuditEntry{UnitID: "unit-2", UserID: "u-x", Entity: "goal", Action: "delete", Success: true}))

	gerente := Actor{UserID: "u-ger", UnitID: testUnit, Role: entity.RoleGerente}
	_, err := uc.List(context.Background(), gerente, dto.AuditLogFilter{})
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)

	from := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	res, err := uc.List(context.Background(), adminActor, dto.AuditLogFilter{Entity: "goal", From: &from, Page: dto.PageRequest{Limit: 500}})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, 1, res.Page.Total)
	assert.Nil(t, res.Items[0].Before)
	assert.Equal(t, "goal", repo.filter.Entity)
	assert.Equal(t, &from, repo.filter.From)
	assert.LessOrEqual(t, repo.filter.Limit, 100)
}
