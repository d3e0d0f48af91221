package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/barberpro/barber-analytics-api/internal/application/dto"
)

// moduleChecker contrato mínimo do middleware; implementado por *usecase.ModuleService.
type moduleChecker interface {
	HasActiveModule(ctx context.Context, unitID, module string) (bool, error)
}

// RequireModule verifica se a unidade do token tem o módulo contratado. Usar depois do AuthMiddleware.
//
// Comportamento:
//   - 401 UNAUTHORIZED         → token sem unit_id.
//   - 403 MODULE_DISABLED      → módulo não contratado ou vencido.
//   - 503 MODULE_CHECK_FAILED  → falha ao consultar o banco.
func RequireModule(module string, checker moduleChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		unitID := GetUnitID(c)
		if unitID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "unit_id não encontrado no token.",
			})
		}

		active, err := checker.HasActiveModule(c.UserContext(), unitID, module)
		if err != nil {
			zerolog.Ctx(c.UserContext()).Error().Err(err).Str("module", module).Msg("falha ao verificar módulo")
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "MODULE_CHECK_FAILED",
				Message: "Não foi possível verificar o módulo. Tente novamente mais tarde.",
			})
		}
		if !active {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "MODULE_DISABLED",
				Message: "O módulo '" + module + "' não está ativo para esta unidade.",
			})
		}
		return c.Next()
	}
}
