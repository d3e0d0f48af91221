package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/barberpro/barber-analytics-api/internal/application/dto"
	"github.com/barberpro/barber-analytics-api/internal/application/usecase"
)

// OrderHandler comandas (módulo atendimento).
type OrderHandler struct {
	uc *usecase.OrderUseCase
}

// NewOrderHandler constrói o handler.
func NewOrderHandler(uc *usecase.OrderUseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// Open godoc
// @Summary      Abrir comanda
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OpenOrderDTO  true  "Cliente e profissional"
// @Success      201   {object}  dto.OrderResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Open(c *fiber.Ctx) error {
	raw, err := body(c)
	if err != nil {
		return fail(c, err)
	}
	out, err := h.uc.Open(c.UserContext(), actor(c), raw)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Buscar comanda
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.OrderResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), actor(c), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar comandas
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        status           query  string  false  "ABERTA, FECHADA, CANCELADA"
// @Param        professional_id  query  string  false  "Profissional"
// @Param        from             query  string  false  "Data inicial"
// @Param        to               query  string  false  "Data final"
// @Success      200  {object}  dto.OrderListResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	from, to, err := dateRange(c)
	if err != nil {
		return fail(c, err)
	}
	out, err := h.uc.List(c.UserContext(), actor(c), dto.OrderFilter{
		Status:         c.Query("status"),
		ProfessionalID: c.Query("professional_id"),
		From:           from,
		To:             to,
		Page:           page(c),
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// AddItem godoc
// @Summary      Adicionar item à comanda
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID da comanda"
// @Param        body  body  dto.AddOrderItemDTO  true  "Serviço ou produto"
// @Success      200   {object}  dto.OrderResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/items [post]
func (h *OrderHandler) AddItem(c *fiber.Ctx) error {
	raw, err := body(c)
	if err != nil {
		return fail(c, err)
	}
	out, err := h.uc.AddItem(c.UserContext(), actor(c), c.Params("id"), raw)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// RemoveItem godoc
// @Summary      Remover item da comanda
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id      path  string  true  "ID da comanda"
// @Param        itemId  path  string  true  "ID do item"
// @Success      200  {object}  dto.OrderResponse
// @Router       /api/orders/{id}/items/{itemId} [delete]
func (h *OrderHandler) RemoveItem(c *fiber.Ctx) error {
	out, err := h.uc.RemoveItem(c.UserContext(), actor(c), c.Params("id"), c.Params("itemId"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Close godoc
// @Summary      Fechar comanda
// @Description  Baixa o estoque dos produtos e lança a venda no caixa aberto.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID"
// @Param        body  body  dto.CloseOrderDTO  true  "Pagamento e desconto"
// @Success      200   {object}  dto.OrderResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/close [post]
func (h *OrderHandler) Close(c *fiber.Ctx) error {
	raw, err := body(c)
	if err != nil {
		return fail(c, err)
	}
	out, err := h.uc.Close(c.UserContext(), actor(c), c.Params("id"), raw)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Cancelar comanda aberta
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.OrderResponse
// @Router       /api/orders/{id}/cancel [post]
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	out, err := h.uc.Cancel(c.UserContext(), actor(c), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
