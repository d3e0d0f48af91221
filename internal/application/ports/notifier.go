package ports

import (
	"context"
	"time"
)

// Níveis de notificação exibidos ao usuário.
const (
	LevelSuccess = "success"
	LevelError   = "error"
	LevelInfo    = "info"
)

// Notification evento entregue em tempo real aos usuários da unidade.
type Notification struct {
	UnitID    string    `json:"unit_id"`
	UserID    string    `json:"user_id,omitempty"`
	Level     string    `json:"level"`
	Entity    string    `json:"entity"`
	Action    string    `json:"action"`
	EntityID  string    `json:"entity_id,omitempty"`
	Message   string    `json:"message"`
	Data      any       `json:"data,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Notifier publica notificações para o usuário. Falhas não devem interromper a operação de negócio.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// Subscription fluxo de notificações de uma unidade.
type Subscription interface {
	Events() <-chan Notification
	Close() error
}

// EventStream abre assinaturas por unidade (consumido pelo endpoint SSE).
type EventStream interface {
	Subscribe(ctx context.Context, unitID string) (Subscription, error)
}
