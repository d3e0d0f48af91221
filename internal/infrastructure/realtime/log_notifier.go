package realtime

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/barberpro/barber-analytics-api/internal/application/ports"
)

var _ ports.Notifier = LogNotifier{}

// LogNotifier registra as notificações no log quando o Redis está desabilitado.
type LogNotifier struct {
	Log zerolog.Logger
}

// Notify grava a notificação como evento estruturado.
func (n LogNotifier) Notify(_ context.Context, msg ports.Notification) error {
	ev := n.Log.Info()
	if msg.Level == ports.LevelError {
		ev = n.Log.Warn()
	}
	ev.Str("unit_id", msg.UnitID).
		Str("user_id", msg.UserID).
		Str("entity", msg.Entity).
		Str("action", msg.Action).
		Str("entity_id", msg.EntityID).
		Str("notification_level", msg.Level).
		Msg(msg.Message)
	return nil
}
