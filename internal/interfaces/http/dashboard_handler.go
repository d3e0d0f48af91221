package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/barberpro/barber-analytics-api/internal/application/analytics"
	"github.com/barberpro/barber-analytics-api/internal/domain/entity"
)

// DashboardHandler resumo financeiro da unidade.
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler constrói o handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary godoc
// @Summary      Resumo do mês
// @Description  Faturamento, despesas pagas, lucro, ticket médio, ranking de profissionais e metas.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        month  query  string  false  "YYYY-MM (padrão: mês atual)"
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	month, err := analytics.ParseMonth(c.Query("month"), time.Now())
	if err != nil {
		return fail(c, err)
	}
	summary, err := h.uc.GetSummary(c.UserContext(), GetUnitID(c), entity.Role(GetRole(c)), month)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(summary)
}
