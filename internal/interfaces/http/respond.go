package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/barberpro/barber-analytics-api/internal/application/dto"
	"github.com/barberpro/barber-analytics-api/internal/application/usecase"
	"github.com/barberpro/barber-analytics-api/internal/domain"
	"github.com/barberpro/barber-analytics-api/internal/domain/entity"
)

// statusFor traduz a categoria do erro de domínio em status HTTP.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrPermissionDenied):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrNetwork):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, domain.ErrConstraint):
		return fiber.StatusConflict
	}
	return fiber.StatusInternalServerError
}

// fail responde o erro como dto.ErrorResponse. Erros fora da taxonomia não vazam detalhe técnico.
func fail(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	var de *domain.Error
	res := dto.ErrorResponse{Code: string(domain.KindUnknown), Message: domain.MsgUnknown}
	if errors.As(err, &de) {
		res.Code = string(de.Kind)
		if de.Code != "" {
			res.Code = de.Code
		}
		res.Message = domain.UserMessage(err)
		res.Details = de.Details
	}
	if status >= fiber.StatusInternalServerError {
		zerolog.Ctx(c.UserContext()).Error().Err(err).Str("path", c.Path()).Msg("erro na requisição")
	}
	return c.Status(status).JSON(res)
}

// ErrorHandler erros que escapam dos handlers (rota inexistente, corpo grande demais, panic recuperado).
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: "HTTP_" + strconv.Itoa(fe.Code), Message: fe.Message})
	}
	return fail(c, err)
}

// body lê o corpo JSON cru; números mantêm a precisão (json.Number).
func body(c *fiber.Ctx) (map[string]any, error) {
	raw := map[string]any{}
	if len(c.Body()) == 0 {
		return raw, nil
	}
	dec := json.NewDecoder(bytes.NewReader(c.Body()))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, domain.Invalid("corpo da requisição inválido")
	}
	return raw, nil
}

// actor monta o executor a partir dos locals do AuthMiddleware.
func actor(c *fiber.Ctx) usecase.Actor {
	return usecase.Actor{UserID: GetUserID(c), UnitID: GetUnitID(c), Role: entity.Role(GetRole(c))}
}

func page(c *fiber.Ctx) dto.PageRequest {
	return dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
}

// dateQuery lê um parâmetro de data opcional (YYYY-MM-DD ou DD/MM/YYYY).
func dateQuery(c *fiber.Ctx, key string) (*time.Time, error) {
	s := c.Query(key)
	if s == "" {
		return nil, nil
	}
	t, err := dto.ParseDate(s)
	if err != nil {
		return nil, domain.Invalid(key + " possui formato inválido")
	}
	return &t, nil
}

func dateRange(c *fiber.Ctx) (from, to *time.Time, err error) {
	if from, err = dateQuery(c, "from"); err != nil {
		return nil, nil, err
	}
	if to, err = dateQuery(c, "to"); err != nil {
		return nil, nil, err
	}
	return from, to, nil
}
