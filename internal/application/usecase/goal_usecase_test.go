package usecase

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barberpro/barber-analytics-api/internal/domain"
	"github.com/barberpro/barber-analytics-api/internal/domain/entity"
	"github.com/barberpro/barber-analytics-api/internal/domain/repository"
)

type fakeGoals struct {
	repository.GoalRepository
	created  map[string]any
	deleted  []string
	from, to time.Time
	goals    []*entity.Goal
}

func (f *fakeGoals) Create(_ context.Context, values map[string]any) (*entity.Goal, error) {
	f.created = values
	g := &entity.Goal{
		ID:          "meta-1",
		UnitID:      values["unit_id"].(string),
		GoalType:    values["goal_type"].(string),
		TargetValue: values["target_value"].(decimal.Decimal),
		PeriodStart: values["period_start"].(time.Time),
		PeriodEnd:   values["period_end"].(time.Time),
		CreatedBy:   values["created_by"].(string),
	}
	if v, ok := values["professional_id"].(string); ok {
		g.ProfessionalID = &v
	}
	return g, nil
}

func (f *fakeGoals) SoftDelete(_ context.Context, _ string, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeGoals) ListOverlapping(_ context.Context, _ string, from, to time.Time) ([]*entity.Goal, error) {
	f.from, f.to = from, to
	return f.goals, nil
}

const uuidProfessional = "a1b2c3d4-0000-4000-8000-0000000000aa"

func goalBody(professionalID string) map[string]any {
	raw := map[string]any{
		"goal_type":    "FATURAMENTO",
		"target_value": json.Number("15000"),
		"period_start": "2025-03-01",
		"period_end":   "2025-03-31",
	}
	if professionalID != "" {
		raw["professional_id"] = professionalID
	}
	return raw
}

func newGoalFixture() (*GoalUseCase, *fakeGoals, *recorder) {
	goals := &fakeGoals{}
	profs := &fakeProfessionals{byID: map[string]*entity.Professional{
		uuidProfessional: {ID: uuidProfessional, UnitID: uuidUnit, Name: "Carlos"},
	}}
	rec := &recorder{}
	return NewGoalUseCase(goals, profs, rec.reporting()), goals, rec
}

func TestGoalCreate_MetaDoProfissional(t *testing.T) {
	uc, goals, rec := newGoalFixture()

	res, err := uc.Create(context.Background(), managerUUID, goalBody(uuidProfessional))
	require.NoError(t, err)
	assert.Equal(t, managerUUID.UserID, goals.created["created_by"])
	assert.Equal(t, uuidUnit, res.UnitID)
	require.NotNil(t, res.ProfessionalID)
	assert.Equal(t, uuidProfessional, *res.ProfessionalID)
	assert.True(t, res.TargetValue.Equal(dec("15000")))

	require.Len(t, rec.notes, 1)
	assert.Equal(t, "Meta cadastrada com sucesso.", rec.notes[0].Message)
}

func TestGoalCreate_ProfissionalDeOutraUnidade(t *testing.T) {
	uc, goals, _ := newGoalFixture()

	_, err := uc.Create(context.Background(), managerUUID, goalBody("a1b2c3d4-0000-4000-8000-0000000000bb"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, goals.created)
}

func TestGoalCreate_PeriodoInvertido(t *testing.T) {
	uc, goals, _ := newGoalFixture()
	raw := goalBody("")
	raw["period_end"] = "2025-02-28"

	_, err := uc.Create(context.Background(), managerUUID, raw)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, goals.created)
}

func TestGoal_BarbeiroSoConsulta(t *testing.T) {
	uc, goals, _ := newGoalFixture()

	_, err := uc.Create(context.Background(), barberUUID, goalBody(""))
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	assert.ErrorIs(t, uc.Delete(context.Background(), barberUUID, "meta-1"), domain.ErrPermissionDenied)
	assert.Empty(t, goals.deleted)

	_, err = uc.ListForMonth(context.Background(), barberUUID, time.Date(2025, time.March, 17, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
}

func TestGoalListForMonth_IntervaloDoMes(t *testing.T) {
	uc, goals, _ := newGoalFixture()
	goals.goals = []*entity.Goal{{ID: "meta-1", UnitID: uuidUnit, GoalType: entity.GoalAtendimentos, TargetValue: dec("120")}}

	list, err := uc.ListForMonth(context.Background(), managerUUID, time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), goals.from)
	assert.Equal(t, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), goals.to)
}

func TestGoalDelete_Notifica(t *testing.T) {
	uc, goals, rec := newGoalFixture()

	require.NoError(t, uc.Delete(context.Background(), managerUUID, "meta-1"))
	assert.Equal(t, []string{"meta-1"}, goals.deleted)
	require.Len(t, rec.notes, 1)
	assert.Equal(t, "Meta removida.", rec.notes[0].Message)
}
