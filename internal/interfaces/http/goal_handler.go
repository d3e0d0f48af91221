package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/barberpro/barber-analytics-api/internal/application/analytics"
	"github.com/barberpro/barber-analytics-api/internal/application/usecase"
)

// GoalHandler metas mensais.
type GoalHandler struct {
	uc *usecase.GoalUseCase
}

// NewGoalHandler constrói o handler.
func NewGoalHandler(uc *usecase.GoalUseCase) *GoalHandler {
	return &GoalHandler{uc: uc}
}

// Create godoc
// @Summary      Cadastrar meta
// @Tags         goals
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateGoalDTO  true  "Meta da unidade ou do profissional"
// @Success      201   {object}  dto.GoalResponse
// @Router       /api/goals [post]
func (h *GoalHandler) Create(c *fiber.Ctx) error {
	raw, err := body(c)
	if err != nil {
		return fail(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), actor(c), raw)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Metas do mês
// @Tags         goals
// @Security     Bearer
// @Produce      json
// @Param        month  query  string  false  "YYYY-MM (padrão: mês atual)"
// @Success      200  {array}  dto.GoalResponse
// @Router       /api/goals [get]
func (h *GoalHandler) List(c *fiber.Ctx) error {
	month, err := analytics.ParseMonth(c.Query("month"), time.Now())
	if err != nil {
		return fail(c, err)
	}
	out, err := h.uc.ListForMonth(c.UserContext(), actor(c), month)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Remover meta
// @Tags         goals
// @Security     Bearer
// @Param        id   path  string  true  "ID"
// @Success      204
// @Router       /api/goals/{id} [delete]
func (h *GoalHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), actor(c), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
