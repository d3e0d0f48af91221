package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/barberpro/barber-analytics-api/internal/application/usecase"
)

// CashRegisterHandler caixa diário.
type CashRegisterHandler struct {
	uc *usecase.CashRegisterUseCase
}

// NewCashRegisterHandler constrói o handler.
func NewCashRegisterHandler(uc *usecase.CashRegisterUseCase) *CashRegisterHandler {
	return &CashRegisterHandler{uc: uc}
}

// Open godoc
// @Summary      Abrir caixa
// @Description  Só um caixa aberto por unidade.
// @Tags         cash-registers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OpenCashRegisterDTO  true  "Saldo de abertura"
// @Success      201   {object}  dto.CashRegisterResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cash-registers [post]
func (h *CashRegisterHandler) Open(c *fiber.Ctx) error {
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

// Current godoc
// @Summary      Caixa aberto da unidade
// @Tags         cash-registers
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CashRegisterResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cash-registers/current [get]
func (h *CashRegisterHandler) Current(c *fiber.Ctx) error {
	out, err := h.uc.Current(c.UserContext(), actor(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Buscar caixa com movimentos
// @Tags         cash-registers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.CashRegisterResponse
// @Router       /api/cash-registers/{id} [get]
func (h *CashRegisterHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), actor(c), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Histórico de caixas
// @Tags         cash-registers
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CashRegisterListResponse
// @Router       /api/cash-registers [get]
func (h *CashRegisterHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), actor(c), page(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// AddMovement godoc
// @Summary      Sangria ou suprimento no caixa aberto
// @Tags         cash-registers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CashMovementDTO  true  "Movimento"
// @Success      201   {object}  dto.CashMovementResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cash-registers/movements [post]
func (h *CashRegisterHandler) AddMovement(c *fiber.Ctx) error {
	raw, err := body(c)
	if err != nil {
		return fail(c, err)
	}
	out, err := h.uc.AddMovement(c.UserContext(), actor(c), raw)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Close godoc
// @Summary      Fechar caixa
// @Description  Calcula o saldo esperado e a diferença para o valor contado.
// @Tags         cash-registers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID"
// @Param        body  body  dto.CloseCashRegisterDTO  true  "Valor contado"
// @Success      200   {object}  dto.CashRegisterResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cash-registers/{id}/close [post]
func (h *CashRegisterHandler) Close(c *fiber.Ctx) error {
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

// Report godoc
// @Summary      Relatório do caixa em PDF
// @Tags         cash-registers
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID"
// @Success      200  {file}  binary
// @Router       /api/cash-registers/{id}/report [get]
func (h *CashRegisterHandler) Report(c *fiber.Ctx) error {
	id := c.Params("id")
	pdf, err := h.uc.Report(c.UserContext(), actor(c), id)
	if err != nil {
		return fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="caixa-%s.pdf"`, id))
	return c.Send(pdf)
}
