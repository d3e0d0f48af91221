package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/barberpro/barber-analytics-api/internal/application/ports"
	"github.com/barberpro/barber-analytics-api/internal/domain"
	"github.com/barberpro/barber-analytics-api/internal/domain/entity"
)

// Reporting dependências comuns de notificação e auditoria dos casos de uso.
type Reporting struct {
	Notifier ports.Notifier
	Audit    ports.AuditLogger
	Log      zerolog.Logger
}

// event descreve uma operação de escrita para notificação e auditoria.
type event struct {
	entity   string
	action   string
	entityID string
	message  string // mensagem de sucesso
	before   any
	after    any
}

type reporter struct {
	Reporting
	now func() time.Time
}

func newReporter(r Reporting) reporter {
	return reporter{Reporting: r, now: time.Now}
}

// done avisa o usuário e grava a auditoria do resultado, com sucesso ou falha.
// Falhas desses canais só são registradas em log.
func (r reporter) done(ctx context.Context, a Actor, ev event, err error) {
	ctx = context.WithoutCancel(ctx)

	n := ports.Notification{
		UnitID:    a.UnitID,
		UserID:    a.UserID,
		Entity:    ev.entity,
		Action:    ev.action,
		EntityID:  ev.entityID,
		CreatedAt: r.now(),
	}
	entry := ports.AuditEntry{
		UnitID:   a.UnitID,
		UserID:   a.UserID,
		Entity:   ev.entity,
		EntityID: ev.entityID,
		Action:   ev.action,
		Success:  err == nil,
		Before:   ev.before,
		After:    ev.after,
	}
	if err != nil {
		n.Level = ports.LevelError
		n.Message = domain.UserMessage(err)
		entry.ErrorKind = string(domain.KindOf(err))
	} else {
		n.Level = ports.LevelSuccess
		n.Message = ev.message
		n.Data = ev.after
	}

	if r.Notifier != nil {
		if nerr := r.Notifier.Notify(ctx, n); nerr != nil {
			r.Log.Warn().Err(nerr).Str("entity", ev.entity).Str("action", ev.action).Msg("falha ao notificar usuário")
		}
	}
	if r.Audit != nil && a.UnitID != "" && a.UserID != "" {
		if aerr := r.Audit.Record(ctx, entry); aerr != nil {
			r.Log.Warn().Err(aerr).Str("entity", ev.entity).Str("action", ev.action).Msg("falha ao gravar auditoria")
		}
	}
	if err != nil {
		r.Log.Debug().Err(err).Str("entity", ev.entity).Str("action", ev.action).Str("unit_id", a.UnitID).Msg("operação falhou")
	}
}

// lowStock alerta a unidade quando o produto chega ao estoque mínimo.
func (r reporter) lowStock(ctx context.Context, unitID string, p *entity.Product) {
	if p == nil || !p.IsLowStock() {
		return
	}
	r.broadcast(ctx, ports.Notification{
		UnitID:   unitID,
		Level:    ports.LevelInfo,
		Entity:   "product",
		Action:   "low_stock",
		EntityID: p.ID,
		Message:  fmt.Sprintf("Estoque baixo: %s (%s %s).", p.Name, p.CurrentStock.String(), p.UnitMeasure),
	})
}

// broadcast notificação sem usuário de origem (fila, alertas).
func (r reporter) broadcast(ctx context.Context, n ports.Notification) {
	if r.Notifier == nil {
		return
	}
	n.CreatedAt = r.now()
	if err := r.Notifier.Notify(context.WithoutCancel(ctx), n); err != nil {
		r.Log.Warn().Err(err).Str("entity", n.Entity).Str("action", n.Action).Msg("falha ao notificar unidade")
	}
}
