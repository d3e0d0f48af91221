package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/barberpro/barber-analytics-api/internal/application/dto"
	"github.com/barberpro/barber-analytics-api/internal/application/usecase"
	"github.com/barberpro/barber-analytics-api/internal/domain"
)

// ProfessionalHandler profissionais e a fila de atendimento.
type ProfessionalHandler struct {
	professionals *usecase.ProfessionalUseCase
	queue         *usecase.QueueUseCase
}

// NewProfessionalHandler constrói o handler.
func NewProfessionalHandler(professionals *usecase.ProfessionalUseCase, queue *usecase.QueueUseCase) *ProfessionalHandler {
	return &ProfessionalHandler{professionals: professionals, queue: queue}
}

// Create godoc
// @Summary      Cadastrar profissional
// @Tags         professionals
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProfessionalDTO  true  "Profissional"
// @Success      201   {object}  dto.ProfessionalResponse
// @Router       /api/professionals [post]
func (h *ProfessionalHandler) Create(c *fiber.Ctx) error {
	raw, err := body(c)
	if err != nil {
		return fail(c, err)
	}
	out, err := h.professionals.Create(c.UserContext(), actor(c), raw)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Buscar profissional
// @Tags         professionals
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.ProfessionalResponse
// @Router       /api/professionals/{id} [get]
func (h *ProfessionalHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.professionals.GetByID(c.UserContext(), actor(c), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar profissionais
// @Tags         professionals
// @Security     Bearer
// @Produce      json
// @Param        active  query  bool  false  "Somente ativos"
// @Success      200  {array}  dto.ProfessionalResponse
// @Router       /api/professionals [get]
func (h *ProfessionalHandler) List(c *fiber.Ctx) error {
	out, err := h.professionals.List(c.UserContext(), actor(c), c.QueryBool("active", false))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Atualizar profissional
// @Tags         professionals
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID"
// @Param        body  body  dto.UpdateProfessionalDTO  true  "Campos a alterar"
// @Success      200   {object}  dto.ProfessionalResponse
// @Router       /api/professionals/{id} [put]
func (h *ProfessionalHandler) Update(c *fiber.Ctx) error {
	raw, err := body(c)
	if err != nil {
		return fail(c, err)
	}
	out, err := h.professionals.Update(c.UserContext(), actor(c), c.Params("id"), raw)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Inativar profissional
// @Tags         professionals
// @Security     Bearer
// @Param        id   path  string  true  "ID"
// @Success      204
// @Router       /api/professionals/{id} [delete]
func (h *ProfessionalHandler) Delete(c *fiber.Ctx) error {
	if err := h.professionals.Delete(c.UserContext(), actor(c), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Queue godoc
// @Summary      Fila de atendimento (lista da vez)
// @Tags         queue
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.QueueEntryResponse
// @Router       /api/queue [get]
func (h *ProfessionalHandler) Queue(c *fiber.Ctx) error {
	out, err := h.queue.List(c.UserContext(), actor(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Next godoc
// @Summary      Chamar o próximo da fila
// @Description  O primeiro disponível passa a atender e vai para o fim da fila.
// @Tags         queue
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.QueueEntryResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/queue/next [post]
func (h *ProfessionalHandler) Next(c *fiber.Ctx) error {
	out, err := h.queue.Next(c.UserContext(), actor(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// QueueAction godoc
// @Summary      Entrar, sair, pausar ou finalizar atendimento na fila
// @Tags         queue
// @Security     Bearer
// @Produce      json
// @Param        professionalId  path  string  true  "Profissional"
// @Param        action          path  string  true  "join, leave, pause ou finish"
// @Success      200  {array}  dto.QueueEntryResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/queue/{professionalId}/{action} [post]
func (h *ProfessionalHandler) QueueAction(c *fiber.Ctx) error {
	var op func(ctx context.Context, a usecase.Actor, professionalID string) ([]dto.QueueEntryResponse, error)
	switch c.Params("action") {
	case "join":
		op = h.queue.Join
	case "leave":
		op = h.queue.Leave
	case "pause":
		op = h.queue.Pause
	case "finish":
		op = h.queue.Finish
	default:
		return fail(c, domain.Wrap(domain.ErrNotFound, "ação de fila %q", c.Params("action")))
	}
	out, err := op(c.UserContext(), actor(c), c.Params("professionalId"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
