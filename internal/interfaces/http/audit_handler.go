package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/barberpro/barber-analytics-api/internal/application/dto"
	"github.com/barberpro/barber-analytics-api/internal/application/usecase"
)

// AuditHandler consulta da trilha de auditoria.
type AuditHandler struct {
	uc *usecase.AuditUseCase
}

// NewAuditHandler constrói o handler.
func NewAuditHandler(uc *usecase.AuditUseCase) *AuditHandler {
	return &AuditHandler{uc: uc}
}

// List godoc
// @Summary      Trilha de auditoria (admin)
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Param        entity   query  string  false  "product, expense, order..."
// @Param        user_id  query  string  false  "Usuário"
// @Param        from     query  string  false  "Data inicial"
// @Param        to       query  string  false  "Data final"
// @Success      200  {object}  dto.AuditLogListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/audit-logs [get]
func (h *AuditHandler) List(c *fiber.Ctx) error {
	from, to, err := dateRange(c)
	if err != nil {
		return fail(c, err)
	}
	out, err := h.uc.List(c.UserContext(), actor(c), dto.AuditLogFilter{
		Entity: c.Query("entity"),
		UserID: c.Query("user_id"),
		From:   from,
		To:     to,
		Page:   page(c),
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
