package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/barberpro/barber-analytics-api/internal/application/dto"
	"github.com/barberpro/barber-analytics-api/internal/application/usecase"
	"github.com/barberpro/barber-analytics-api/internal/domain"
)

// SupplierHandler fornecedores e seus arquivos.
type SupplierHandler struct {
	uc *usecase.SupplierUseCase
}

// NewSupplierHandler constrói o handler.
func NewSupplierHandler(uc *usecase.SupplierUseCase) *SupplierHandler {
	return &SupplierHandler{uc: uc}
}

// Create godoc
// @Summary      Cadastrar fornecedor (com contatos)
// @Tags         suppliers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSupplierDTO  true  "Fornecedor"
// @Success      201   {object}  dto.SupplierResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/suppliers [post]
func (h *SupplierHandler) Create(c *fiber.Ctx) error {
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

// GetByID godoc
// @Summary      Buscar fornecedor
// @Tags         suppliers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.SupplierResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/suppliers/{id} [get]
func (h *SupplierHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), actor(c), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar fornecedores
// @Tags         suppliers
// @Security     Bearer
// @Produce      json
// @Param        search  query  string  false  "Nome ou documento"
// @Param        status  query  string  false  "ATIVO, INATIVO, BLOQUEADO"
// @Success      200  {object}  dto.SupplierListResponse
// @Router       /api/suppliers [get]
func (h *SupplierHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), actor(c), dto.SupplierFilter{
		Search: c.Query("search"),
		Status: c.Query("status"),
		Page:   page(c),
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Atualizar fornecedor
// @Tags         suppliers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID"
// @Param        body  body  dto.UpdateSupplierDTO  true  "Campos a alterar"
// @Success      200   {object}  dto.SupplierResponse
// @Router       /api/suppliers/{id} [put]
func (h *SupplierHandler) Update(c *fiber.Ctx) error {
	raw, err := body(c)
	if err != nil {
		return fail(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), actor(c), c.Params("id"), raw)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Inativar fornecedor
// @Tags         suppliers
// @Security     Bearer
// @Param        id   path  string  true  "ID"
// @Success      204
// @Router       /api/suppliers/{id} [delete]
func (h *SupplierHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), actor(c), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UploadFile godoc
// @Summary      Anexar arquivo ao fornecedor
// @Tags         suppliers
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        id    path      string  true  "ID do fornecedor"
// @Param        file  formData  file    true  "PDF, imagem ou planilha (até 10 MB)"
// @Success      201   {object}  dto.SupplierFileResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/suppliers/{id}/files [post]
func (h *SupplierHandler) UploadFile(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return fail(c, domain.Invalid("file é obrigatório"))
	}
	f, err := fh.Open()
	if err != nil {
		return fail(c, err)
	}
	defer f.Close()
	out, err := h.uc.UploadFile(c.UserContext(), actor(c), c.Params("id"), fh.Filename, fh.Header.Get(fiber.HeaderContentType), fh.Size, f)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListFiles godoc
// @Summary      Arquivos do fornecedor (URLs temporárias)
// @Tags         suppliers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do fornecedor"
// @Success      200  {array}  dto.SupplierFileResponse
// @Router       /api/suppliers/{id}/files [get]
func (h *SupplierHandler) ListFiles(c *fiber.Ctx) error {
	out, err := h.uc.ListFiles(c.UserContext(), actor(c), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// DeleteFile godoc
// @Summary      Remover arquivo
// @Tags         suppliers
// @Security     Bearer
// @Param        fileId  path  string  true  "ID do arquivo"
// @Success      204
// @Router       /api/supplier-files/{fileId} [delete]
func (h *SupplierHandler) DeleteFile(c *fiber.Ctx) error {
	if err := h.uc.DeleteFile(c.UserContext(), actor(c), c.Params("fileId")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
