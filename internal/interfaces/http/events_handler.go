package http

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"

	"github.com/barberpro/barber-analytics-api/internal/application/dto"
	"github.com/barberpro/barber-analytics-api/internal/application/ports"
	"github.com/barberpro/barber-analytics-api/internal/domain"
	"github.com/barberpro/barber-analytics-api/internal/domain/entity"
)

const heartbeatInterval = 25 * time.Second

// EventsHandler entrega as notificações da unidade via Server-Sent Events.
type EventsHandler struct {
	stream ports.EventStream
	log    zerolog.Logger
}

// NewEventsHandler constrói o handler; stream nil desativa o endpoint (503).
func NewEventsHandler(stream ports.EventStream, log zerolog.Logger) *EventsHandler {
	return &EventsHandler{stream: stream, log: log}
}

// Stream godoc
// @Summary      Notificações em tempo real (SSE)
// @Tags         events
// @Security     Bearer
// @Produce      text/event-stream
// @Success      200
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/events [get]
func (h *EventsHandler) Stream(c *fiber.Ctx) error {
	if h.stream == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Code: "REALTIME_DISABLED", Message: "Notificações em tempo real indisponíveis.",
		})
	}
	unitID, userID, role := GetUnitID(c), GetUserID(c), entity.Role(GetRole(c))
	// o stream writer roda depois do handler retornar; o contexto da requisição não serve
	ctx, cancel := context.WithCancel(context.Background())
	sub, err := h.stream.Subscribe(ctx, unitID)
	if err != nil {
		cancel()
		return fail(c, err)
	}
	log := h.log.With().Str("unit_id", unitID).Str("user_id", userID).Logger()

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancel()
		defer sub.Close()
		log.Debug().Msg("assinante SSE conectado")

		ticker := time.NewTicker(heartbeatInterval)
		defer ticker.Stop()
		fmt.Fprint(w, ": conectado\n\n")
		if err := w.Flush(); err != nil {
			return
		}
		for {
			select {
			case n, ok := <-sub.Events():
				if !ok {
					return
				}
				if !visible(n, userID, role) {
					continue
				}
				data, err := json.Marshal(n)
				if err != nil {
					log.Warn().Err(err).Msg("notificação não serializável")
					continue
				}
				fmt.Fprintf(w, "event: %s\ndata: %s\n\n", n.Level, data)
			case <-ticker.C:
				fmt.Fprint(w, ": ping\n\n")
			}
			if err := w.Flush(); err != nil {
				log.Debug().Msg("assinante SSE desconectado")
				return
			}
		}
	}))
	return nil
}

// visible erros só vão para quem executou a operação; registros só para perfis com leitura da entidade.
func visible(n ports.Notification, userID string, role entity.Role) bool {
	if n.Level == ports.LevelError && n.UserID != userID {
		return false
	}
	return domain.CanSee(role, n.Entity)
}
