package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/barberpro/barber-analytics-api/internal/application/dto"
	"github.com/barberpro/barber-analytics-api/internal/application/usecase"
)

// StockMovementHandler movimentações de estoque.
type StockMovementHandler struct {
	uc *usecase.StockMovementUseCase
}

// NewStockMovementHandler constrói o handler.
func NewStockMovementHandler(uc *usecase.StockMovementUseCase) *StockMovementHandler {
	return &StockMovementHandler{uc: uc}
}

// Register godoc
// @Summary      Registrar movimentação (ENTRADA, SAIDA, AJUSTE)
// @Description  ENTRADA recalcula o custo médio do produto. Saldo negativo devolve 409.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockMovementDTO  true  "Movimentação"
// @Success      201   {object}  dto.StockMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock-movements [post]
func (h *StockMovementHandler) Register(c *fiber.Ctx) error {
	raw, err := body(c)
	if err != nil {
		return fail(c, err)
	}
	out, err := h.uc.Register(c.UserContext(), actor(c), raw)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Buscar movimentação
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.StockMovementResponse
// @Router       /api/stock-movements/{id} [get]
func (h *StockMovementHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), actor(c), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar movimentações
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id     query  string  false  "Produto"
// @Param        movement_type  query  string  false  "ENTRADA, SAIDA ou AJUSTE"
// @Param        from           query  string  false  "Data inicial (YYYY-MM-DD)"
// @Param        to             query  string  false  "Data final (YYYY-MM-DD)"
// @Success      200  {object}  dto.StockMovementListResponse
// @Router       /api/stock-movements [get]
func (h *StockMovementHandler) List(c *fiber.Ctx) error {
	from, to, err := dateRange(c)
	if err != nil {
		return fail(c, err)
	}
	out, err := h.uc.List(c.UserContext(), actor(c), dto.StockMovementFilter{
		ProductID:    c.Query("product_id"),
		MovementType: c.Query("movement_type"),
		From:         from,
		To:           to,
		Page:         page(c),
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
