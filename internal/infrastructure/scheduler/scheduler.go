// Package scheduler tarefas diárias: geração de despesas recorrentes e marcação de vencidas.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog"

	"github.com/barberpro/barber-analytics-api/internal/application/dto"
)

// RecurringGenerator gera as despesas do mês para todas as unidades.
type RecurringGenerator interface {
	GenerateAll(ctx context.Context, ref time.Time) (*dto.GenerateRecurringResponse, error)
}

// OverdueMarker marca despesas pendentes com vencimento passado.
type OverdueMarker interface {
	MarkOverdue(ctx context.Context) (int64, error)
}

// Config agendamento.
type Config struct {
	Cron     string // ex: "0 6 * * *"
	Location *time.Location
	Timeout  time.Duration // limite de cada execução
}

// Scheduler roda as tarefas financeiras diárias com gocron.
type Scheduler struct {
	cron      *gocron.Scheduler
	cfg       Config
	recurring RecurringGenerator
	overdue   OverdueMarker
	log       zerolog.Logger
	now       func() time.Time

	mu      sync.Mutex
	running bool
}

// New constrói o agendador (ainda parado).
func New(cfg Config, recurring RecurringGenerator, overdue OverdueMarker, log zerolog.Logger) *Scheduler {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Minute
	}
	return &Scheduler{
		cron:      gocron.NewScheduler(cfg.Location),
		cfg:       cfg,
		recurring: recurring,
		overdue:   overdue,
		log:       log.With().Str("component", "scheduler").Logger(),
		now:       time.Now,
	}
}

// Start agenda a execução diária e para quando ctx é cancelado.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.Cron(s.cfg.Cron).Do(s.RunOnce, ctx); err != nil {
		return fmt.Errorf("scheduler: agendar %q: %w", s.cfg.Cron, err)
	}
	s.cron.StartAsync()
	s.log.Info().Str("cron", s.cfg.Cron).Str("tz", s.cfg.Location.String()).Msg("agendador iniciado")

	go func() {
		<-ctx.Done()
		s.Stop()
	}()
	return nil
}

// Stop para o agendador.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.log.Info().Msg("agendador parado")
}

// RunOnce executa as duas tarefas. Execuções sobrepostas são ignoradas.
func (s *Scheduler) RunOnce(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		s.log.Info().Msg("execução anterior ainda em andamento, ignorando")
		return
	}
	s.running = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	started := s.now()
	res, err := s.recurring.GenerateAll(ctx, started.In(s.cfg.Location))
	if err != nil {
		s.log.Error().Err(err).Msg("falha ao gerar despesas recorrentes")
	} else {
		s.log.Info().Str("period", res.Period).Int("generated", res.Generated).Int("skipped", res.Skipped).Msg("despesas recorrentes geradas")
	}

	n, err := s.overdue.MarkOverdue(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("falha ao marcar despesas vencidas")
	} else {
		s.log.Info().Int64("count", n).Msg("despesas vencidas marcadas")
	}
	s.log.Debug().Dur("elapsed", s.now().Sub(started)).Msg("tarefas diárias concluídas")
}
