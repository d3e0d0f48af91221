// Package realtime entrega notificações aos usuários: Redis Pub/Sub por unidade ou, sem Redis, log.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/barberpro/barber-analytics-api/internal/application/ports"
)

var (
	_ ports.Notifier    = (*RedisNotifier)(nil)
	_ ports.EventStream = (*RedisNotifier)(nil)
)

const (
	pingTimeout      = 5 * time.Second
	subscriberBuffer = 32
)

// Options conexão com o Redis.
type Options struct {
	Addr     string
	Password string
	DB       int
	Prefix   string // prefixo dos canais, ex: "barber"
}

// Channel canal de eventos da unidade: <prefix>:<unit_id>:events.
func Channel(prefix, unitID string) string {
	return fmt.Sprintf("%s:%s:events", prefix, unitID)
}

// RedisNotifier publica notificações no canal da unidade e abre assinaturas para o SSE.
type RedisNotifier struct {
	client *redis.Client
	prefix string
	log    zerolog.Logger
}

// NewRedisNotifier conecta e valida o Redis com PING.
func NewRedisNotifier(opts Options, log zerolog.Logger) (*RedisNotifier, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("realtime: conectar ao redis: %w", err)
	}
	return NewRedisNotifierWithClient(client, opts.Prefix, log), nil
}

// NewRedisNotifierWithClient usa um cliente já criado.
func NewRedisNotifierWithClient(client *redis.Client, prefix string, log zerolog.Logger) *RedisNotifier {
	if prefix == "" {
		prefix = "barber"
	}
	return &RedisNotifier{client: client, prefix: prefix, log: log}
}

// Notify publica a notificação em JSON.
func (n *RedisNotifier) Notify(ctx context.Context, msg ports.Notification) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("realtime: serializar notificação: %w", err)
	}
	ch := Channel(n.prefix, msg.UnitID)
	if err := n.client.Publish(ctx, ch, data).Err(); err != nil {
		return fmt.Errorf("realtime: publicar em %s: %w", ch, err)
	}
	n.log.Debug().Str("channel", ch).Str("entity", msg.Entity).Str("action", msg.Action).Msg("notificação publicada")
	return nil
}

// Subscribe assina o canal da unidade. A assinatura termina com Close ou com o cancelamento de ctx.
func (n *RedisNotifier) Subscribe(ctx context.Context, unitID string) (ports.Subscription, error) {
	ch := Channel(n.prefix, unitID)
	pubsub := n.client.Subscribe(ctx, ch)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("realtime: assinar %s: %w", ch, err)
	}
	s := &subscription{
		pubsub: pubsub,
		events: make(chan ports.Notification, subscriberBuffer),
		done:   make(chan struct{}),
		log:    n.log.With().Str("channel", ch).Logger(),
	}
	go s.pump(ctx)
	return s, nil
}

// Close encerra o cliente.
func (n *RedisNotifier) Close() error {
	return n.client.Close()
}

type subscription struct {
	pubsub    *redis.PubSub
	events    chan ports.Notification
	done      chan struct{}
	closeOnce sync.Once
	log       zerolog.Logger
}

func (s *subscription) Events() <-chan ports.Notification { return s.events }

func (s *subscription) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.done)
		err = s.pubsub.Close()
	})
	return err
}

// pump decodifica as mensagens do Redis; cliente lento perde eventos em vez de travar o canal.
func (s *subscription) pump(ctx context.Context) {
	defer close(s.events)
	in := s.pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			_ = s.Close()
			return
		case <-s.done:
			return
		case msg, ok := <-in:
			if !ok {
				return
			}
			var n ports.Notification
			if err := json.Unmarshal([]byte(msg.Payload), &n); err != nil {
				s.log.Warn().Err(err).Msg("mensagem inválida no canal de eventos")
				continue
			}
			select {
			case s.events <- n:
			default:
				s.log.Warn().Str("action", n.Action).Msg("assinante lento, evento descartado")
			}
		}
	}
}
