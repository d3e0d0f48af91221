package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barberpro/barber-analytics-api/internal/application/dto"
)

type fakeRecurring struct {
	calls atomic.Int32
	ref   time.Time
	err   error
	block chan struct{}
}

func (f *fakeRecurring) GenerateAll(_ context.Context, ref time.Time) (*dto.GenerateRecurringResponse, error) {
	f.calls.Add(1)
	f.ref = ref
	if f.block != nil {
		<-f.block
	}
	if f.err != nil {
		return nil, f.err
	}
	return &dto.GenerateRecurringResponse{Period: "2025-03", Generated: 2}, nil
}

type fakeOverdue struct{ calls atomic.Int32 }

func (f *fakeOverdue) MarkOverdue(context.Context) (int64, error) {
	f.calls.Add(1)
	return 3, nil
}

func TestRunOnce_ExecutaAsDuasTarefas(t *testing.T) {
	rec, over := &fakeRecurring{}, &fakeOverdue{}
	loc := time.FixedZone("BRT", -3*3600)
	s := New(Config{Cron: "0 6 * * *", Location: loc}, rec, over, zerolog.Nop())
	s.now = func() time.Time { return time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC) }

	s.RunOnce(context.Background())

	assert.EqualValues(t, 1, rec.calls.Load())
	assert.EqualValues(t, 1, over.calls.Load())
	assert.Equal(t, loc, rec.ref.Location())
}

func TestRunOnce_FalhaNaGeracaoNaoImpedeVencidas(t *testing.T) {
	rec, over := &fakeRecurring{err: errors.New("db fora")}, &fakeOverdue{}
	s := New(Config{Cron: "0 6 * * *"}, rec, over, zerolog.Nop())

	s.RunOnce(context.Background())

	assert.EqualValues(t, 1, over.calls.Load())
}

func TestRunOnce_IgnoraExecucaoSobreposta(t *testing.T) {
	rec, over := &fakeRecurring{block: make(chan struct{})}, &fakeOverdue{}
	s := New(Config{Cron: "0 6 * * *"}, rec, over, zerolog.Nop())

	done := make(chan struct{})
	go func() {
		s.RunOnce(context.Background())
		close(done)
	}()
	require.Eventually(t, func() bool { return rec.calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	s.RunOnce(context.Background())
	close(rec.block)
	<-done

	assert.EqualValues(t, 1, rec.calls.Load())
	assert.EqualValues(t, 1, over.calls.Load())
}

func TestStart_CronInvalido(t *testing.T) {
	s := New(Config{Cron: "todo dia"}, &fakeRecurring{}, &fakeOverdue{}, zerolog.Nop())
	assert.Error(t, s.Start(context.Background()))
}
