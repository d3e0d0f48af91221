package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/barberpro/barber-analytics-api/internal/application/analytics"
	"github.com/barberpro/barber-analytics-api/internal/application/dto"
	"github.com/barberpro/barber-analytics-api/internal/application/usecase"
)

// ExpenseHandler despesas e despesas recorrentes (módulo financeiro).
type ExpenseHandler struct {
	expenses  *usecase.ExpenseUseCase
	recurring *usecase.RecurringExpenseUseCase
}

// NewExpenseHandler constrói o handler.
func NewExpenseHandler(expenses *usecase.ExpenseUseCase, recurring *usecase.RecurringExpenseUseCase) *ExpenseHandler {
	return &ExpenseHandler{expenses: expenses, recurring: recurring}
}

// Create godoc
// @Summary      Lançar despesa
// @Tags         expenses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateExpenseDTO  true  "Despesa"
// @Success      201   {object}  dto.ExpenseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/expenses [post]
func (h *ExpenseHandler) Create(c *fiber.Ctx) error {
	raw, err := body(c)
	if err != nil {
		return fail(c, err)
	}
	out, err := h.expenses.Create(c.UserContext(), actor(c), raw)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Buscar despesa
// @Tags         expenses
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.ExpenseResponse
// @Router       /api/expenses/{id} [get]
func (h *ExpenseHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.expenses.GetByID(c.UserContext(), actor(c), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar despesas
// @Tags         expenses
// @Security     Bearer
// @Produce      json
// @Param        status    query  string  false  "PENDENTE, PAGO, ATRASADO, CANCELADO"
// @Param        category  query  string  false  "Categoria"
// @Param        from      query  string  false  "Vencimento a partir de"
// @Param        to        query  string  false  "Vencimento até"
// @Success      200  {object}  dto.ExpenseListResponse
// @Router       /api/expenses [get]
func (h *ExpenseHandler) List(c *fiber.Ctx) error {
	from, to, err := dateRange(c)
	if err != nil {
		return fail(c, err)
	}
	out, err := h.expenses.List(c.UserContext(), actor(c), dto.ExpenseFilter{
		Status:   c.Query("status"),
		Category: c.Query("category"),
		From:     from,
		To:       to,
		Page:     page(c),
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Atualizar despesa
// @Tags         expenses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID"
// @Param        body  body  dto.UpdateExpenseDTO  true  "Campos a alterar"
// @Success      200   {object}  dto.ExpenseResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/expenses/{id} [put]
func (h *ExpenseHandler) Update(c *fiber.Ctx) error {
	raw, err := body(c)
	if err != nil {
		return fail(c, err)
	}
	out, err := h.expenses.Update(c.UserContext(), actor(c), c.Params("id"), raw)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Pay godoc
// @Summary      Pagar despesa
// @Tags         expenses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID"
// @Param        body  body  dto.PayExpenseDTO  true  "Data e forma de pagamento"
// @Success      200   {object}  dto.ExpenseResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/expenses/{id}/pay [post]
func (h *ExpenseHandler) Pay(c *fiber.Ctx) error {
	raw, err := body(c)
	if err != nil {
		return fail(c, err)
	}
	out, err := h.expenses.Pay(c.UserContext(), actor(c), c.Params("id"), raw)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Excluir despesa
// @Tags         expenses
// @Security     Bearer
// @Param        id   path  string  true  "ID"
// @Success      204
// @Router       /api/expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c *fiber.Ctx) error {
	if err := h.expenses.Delete(c.UserContext(), actor(c), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateRecurring godoc
// @Summary      Cadastrar despesa recorrente
// @Tags         recurring-expenses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecurringExpenseDTO  true  "Modelo mensal"
// @Success      201   {object}  dto.RecurringExpenseResponse
// @Router       /api/recurring-expenses [post]
func (h *ExpenseHandler) CreateRecurring(c *fiber.Ctx) error {
	raw, err := body(c)
	if err != nil {
		return fail(c, err)
	}
	out, err := h.recurring.Create(c.UserContext(), actor(c), raw)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListRecurring godoc
// @Summary      Listar despesas recorrentes
// @Tags         recurring-expenses
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.RecurringExpenseResponse
// @Router       /api/recurring-expenses [get]
func (h *ExpenseHandler) ListRecurring(c *fiber.Ctx) error {
	out, err := h.recurring.List(c.UserContext(), actor(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// UpdateRecurring godoc
// @Summary      Atualizar despesa recorrente
// @Tags         recurring-expenses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID"
// @Param        body  body  dto.RecurringExpenseDTO  true  "Campos a alterar"
// @Success      200   {object}  dto.RecurringExpenseResponse
// @Router       /api/recurring-expenses/{id} [put]
func (h *ExpenseHandler) UpdateRecurring(c *fiber.Ctx) error {
	raw, err := body(c)
	if err != nil {
		return fail(c, err)
	}
	out, err := h.recurring.Update(c.UserContext(), actor(c), c.Params("id"), raw)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// DeactivateRecurring godoc
// @Summary      Desativar despesa recorrente
// @Tags         recurring-expenses
// @Security     Bearer
// @Param        id   path  string  true  "ID"
// @Success      204
// @Router       /api/recurring-expenses/{id} [delete]
func (h *ExpenseHandler) DeactivateRecurring(c *fiber.Ctx) error {
	if err := h.recurring.Deactivate(c.UserContext(), actor(c), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GenerateRecurring godoc
// @Summary      Gerar despesas recorrentes do mês
// @Description  Mesma rotina do agendador diário, restrita à unidade do token. Cada modelo gera uma vez por mês.
// @Tags         recurring-expenses
// @Security     Bearer
// @Produce      json
// @Param        month  query  string  false  "YYYY-MM (padrão: mês atual)"
// @Success      200  {object}  dto.GenerateRecurringResponse
// @Router       /api/recurring-expenses/generate [post]
func (h *ExpenseHandler) GenerateRecurring(c *fiber.Ctx) error {
	ref, err := analytics.ParseMonth(c.Query("month"), time.Now())
	if err != nil {
		return fail(c, err)
	}
	out, err := h.recurring.Generate(c.UserContext(), actor(c), ref)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
