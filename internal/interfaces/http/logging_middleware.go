package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// RequestLogger registra cada requisição e deixa o logger em c.UserContext() para os handlers.
func RequestLogger(base zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		l := base.With().Str("method", c.Method()).Str("path", c.Path()).Logger()
		c.SetUserContext(l.WithContext(c.UserContext()))

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		ev := l.Info()
		if status >= fiber.StatusInternalServerError {
			ev = l.Error().Err(err)
		}
		ev.Int("status", status).
			Dur("latency", time.Since(start)).
			Str("unit_id", GetUnitID(c)).
			Str("user_id", GetUserID(c)).
			Msg("requisição")
		return err
	}
}
