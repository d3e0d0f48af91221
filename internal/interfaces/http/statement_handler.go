package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/barberpro/barber-analytics-api/internal/application/dto"
	"github.com/barberpro/barber-analytics-api/internal/application/usecase"
	"github.com/barberpro/barber-analytics-api/internal/domain"
)

// StatementHandler importação e conciliação de extratos bancários.
type StatementHandler struct {
	uc *usecase.StatementUseCase
}

// NewStatementHandler constrói o handler.
func NewStatementHandler(uc *usecase.StatementUseCase) *StatementHandler {
	return &StatementHandler{uc: uc}
}

// Import godoc
// @Summary      Importar extrato (.xlsx ou .csv)
// @Description  Linhas já importadas (mesma data, descrição e valor na conta) são ignoradas. Linhas com problema voltam em errors.
// @Tags         statements
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file          formData  file    true  "Extrato"
// @Param        bank_account  formData  string  true  "Conta bancária"
// @Success      201  {object}  dto.ImportStatementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/statements/import [post]
func (h *StatementHandler) Import(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return fail(c, domain.Invalid("file é obrigatório"))
	}
	f, err := fh.Open()
	if err != nil {
		return fail(c, err)
	}
	defer f.Close()
	out, err := h.uc.Import(c.UserContext(), actor(c), c.FormValue("bank_account"), fh.Filename, f)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Reconcile godoc
// @Summary      Conciliar extrato com despesas
// @Description  Casa débitos pendentes com despesas pendentes de mesmo valor e vencimento próximo; a despesa é paga na data do extrato.
// @Tags         statements
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ReconcileResponse
// @Router       /api/statements/reconcile [post]
func (h *StatementHandler) Reconcile(c *fiber.Ctx) error {
	out, err := h.uc.Reconcile(c.UserContext(), actor(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Ignore godoc
// @Summary      Ignorar linha do extrato
// @Tags         statements
// @Security     Bearer
// @Param        id   path  string  true  "ID da linha"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/statements/{id}/ignore [post]
func (h *StatementHandler) Ignore(c *fiber.Ctx) error {
	if err := h.uc.Ignore(c.UserContext(), actor(c), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// List godoc
// @Summary      Listar linhas de extrato
// @Tags         statements
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "PENDENTE, CONCILIADO, IGNORADO"
// @Param        type    query  string  false  "CREDITO ou DEBITO"
// @Param        from    query  string  false  "Data inicial"
// @Param        to      query  string  false  "Data final"
// @Success      200  {object}  dto.BankStatementListResponse
// @Router       /api/statements [get]
func (h *StatementHandler) List(c *fiber.Ctx) error {
	from, to, err := dateRange(c)
	if err != nil {
		return fail(c, err)
	}
	out, err := h.uc.List(c.UserContext(), actor(c), dto.StatementFilter{
		Status: c.Query("status"),
		Type:   c.Query("type"),
		From:   from,
		To:     to,
		Page:   page(c),
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
