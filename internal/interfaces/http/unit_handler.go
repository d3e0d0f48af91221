package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/barberpro/barber-analytics-api/internal/application/dto"
	"github.com/barberpro/barber-analytics-api/internal/application/usecase"
	"github.com/barberpro/barber-analytics-api/internal/domain"
)

// UnitHandler cadastro de unidades.
type UnitHandler struct {
	uc *usecase.UnitUseCase
}

// NewUnitHandler constrói o handler.
func NewUnitHandler(uc *usecase.UnitUseCase) *UnitHandler {
	return &UnitHandler{uc: uc}
}

// Create godoc
// @Summary      Cadastrar unidade
// @Description  Sem modules a unidade recebe estoque, financeiro e atendimento.
// @Tags         units
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUnitRequest  true  "Unidade"
// @Success      201   {object}  dto.UnitResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/units [post]
func (h *UnitHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUnitRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, domain.Invalid("corpo da requisição inválido"))
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar unidades
// @Tags         units
// @Produce      json
// @Param        limit   query  int  false  "Limite"
// @Param        offset  query  int  false  "Deslocamento"
// @Success      200  {object}  dto.UnitListResponse
// @Router       /api/units [get]
func (h *UnitHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), page(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
