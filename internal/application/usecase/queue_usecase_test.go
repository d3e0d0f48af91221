package usecase

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barberpro/barber-analytics-api/internal/domain"
	"github.com/barberpro/barber-analytics-api/internal/domain/entity"
	"github.com/barberpro/barber-analytics-api/internal/domain/repository"
)

func newQueueFixture() (*QueueUseCase, *memQueue, *recorder) {
	q := &memQueue{entries: []*entity.QueueEntry{
		{UnitID: testUnit, ProfessionalID: "a", Name: "Ana", Position: 1, Status: entity.QueueDisponivel},
		{UnitID: testUnit, ProfessionalID: "b", Name: "Bruno", Position: 2, Status: entity.QueuePausado},
		{UnitID: testUnit, ProfessionalID: "c", Name: "Caio", Position: 3, Status: entity.QueueDisponivel},
	}}
	tx := &fakeTx{repos: repository.Repos{Queue: q}}
	rec := &recorder{}
	return NewQueueUseCase(q, nil, tx, rec.reporting()), q, rec
}

func TestQueueNext_RodizioPulaPausados(t *testing.T) {
	uc, _, rec := newQueueFixture()
	ctx := context.Background()

	first, err := uc.Next(ctx, barberActor)
	require.NoError(t, err)
	assert.Equal(t, "a", first.ProfessionalID)
	assert.Equal(t, entity.QueueAtendendo, first.Status)
	assert.Equal(t, 4, first.Position)
	assert.Equal(t, 1, first.ServedCount)

	second, err := uc.Next(ctx, barberActor)
	require.NoError(t, err)
	assert.Equal(t, "c", second.ProfessionalID)

	_, err = uc.Next(ctx, barberActor)
	assert.ErrorIs(t, err, domain.ErrConflict)

	require.NotEmpty(t, rec.notes)
	assert.Equal(t, "Próximo atendimento: Ana.", rec.notes[0].Message)
}

func TestQueueFinish_VoltaParaDisponivel(t *testing.T) {
	uc, q, _ := newQueueFixture()
	ctx := context.Background()

	_, err := uc.Next(ctx, barberActor)
	require.NoError(t, err)

	list, err := uc.Finish(ctx, barberActor, "a")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "b", list[0].ProfessionalID, "fila ordenada por posição")
	assert.Equal(t, "a", list[2].ProfessionalID)
	assert.Equal(t, entity.QueueDisponivel, list[2].Status)
	assert.Equal(t, entity.QueueDisponivel, q.entries[0].Status)
}

func TestQueue_SemUnidade(t *testing.T) {
	uc, _, _ := newQueueFixture()

	_, err := uc.Next(context.Background(), Actor{UserID: "x", Role: entity.RoleBarbeiro})
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
}

func TestQueueNext_TravaPosicoesAntesDeMover(t *testing.T) {
	uc, q, _ := newQueueFixture()

	_, err := uc.Next(context.Background(), barberActor)
	require.NoError(t, err)
	assert.Equal(t, 1, q.locks)
}

func TestQueueJoin_EntraNoFimComPosicoesTravadas(t *testing.T) {
	q := &memQueue{entries: []*entity.QueueEntry{
		{UnitID: testUnit, ProfessionalID: "a", Name: "Ana", Position: 1, Status: entity.QueueDisponivel},
		{UnitID: testUnit, ProfessionalID: "c", Name: "Caio", Position: 7, Status: entity.QueueAtendendo},
	}}
	profs := &fakeProfessionals{byID: map[string]*entity.Professional{
		"d": {ID: "d", UnitID: testUnit, Name: "Davi", IsActive: true},
		"e": {ID: "e", UnitID: testUnit, Name: "Edu"},
	}}
	tx := &fakeTx{repos: repository.Repos{Queue: q}}
	uc := NewQueueUseCase(q, profs, tx, (&recorder{}).reporting())
	ctx := context.Background()

	_, err := uc.Join(ctx, barberActor, "d")
	require.NoError(t, err)
	assert.Equal(t, 8, q.entries[2].Position)
	assert.Equal(t, 1, tx.runs)
	assert.Equal(t, 1, q.locks)

	_, err = uc.Join(ctx, barberActor, "d")
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Join(ctx, barberActor, "e")
	assert.ErrorIs(t, err, domain.ErrConflict, "profissional inativo")
	assert.Len(t, q.entries, 3)
}

func TestQueueNext_FalhaAoRelerFilaSoGeraAviso(t *testing.T) {
	uc, q, _ := newQueueFixture()
	var logs bytes.Buffer
	rec := &recorder{}
	uc.out = newReporter(Reporting{Notifier: rec, Audit: rec, Log: zerolog.New(&logs)})
	q.listErr = domain.Wrap(domain.ErrNetwork, "list: %w", errors.New("conexão perdida"))

	called, err := uc.Next(context.Background(), barberActor)
	require.NoError(t, err)
	assert.Equal(t, "a", called.ProfessionalID)

	assert.Contains(t, logs.String(), `"level":"warn"`)
	assert.Contains(t, logs.String(), "lista da vez indisponível")
	require.Len(t, rec.notes, 1)
	assert.Equal(t, "Próximo atendimento: Ana.", rec.notes[0].Message)
}
