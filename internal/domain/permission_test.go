package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/barberpro/barber-analytics-api/internal/domain"
	"github.com/barberpro/barber-analytics-api/internal/domain/entity"
)

func TestAuthorize_PerfilNaLista(t *testing.T) {
	assert.NoError(t, domain.Authorize(entity.RoleGerente, domain.PermProductWrite))
	assert.NoError(t, domain.Authorize(entity.RoleBarbeiro, domain.PermOrderWrite))
	assert.NoError(t, domain.Authorize(entity.RoleRecepcionista, domain.PermCashWrite))
}

func TestAuthorize_PerfilForaDaLista(t *testing.T) {
	err := domain.Authorize(entity.RoleBarbeiro, domain.PermExpenseWrite)
	assert.True(t, errors.Is(err, domain.ErrPermissionDenied))
	assert.Equal(t, domain.KindPermission, domain.KindOf(err))

	assert.Error(t, domain.Authorize(entity.RoleGerente, domain.PermAuditRead), "auditoria é só admin")
}

func TestAuthorize_PerfilDesconhecidoSempreNegado(t *testing.T) {
	for _, p := range []domain.Permission{domain.PermProductRead, domain.PermOrderWrite, domain.PermQueueOperate} {
		assert.ErrorIs(t, domain.Authorize(entity.Role("dono"), p), domain.ErrPermissionDenied)
		assert.ErrorIs(t, domain.Authorize(entity.Role(""), p), domain.ErrPermissionDenied)
	}
}

func TestAuthorize_OperacaoSemListaNegada(t *testing.T) {
	assert.ErrorIs(t, domain.Authorize(entity.RoleAdmin, domain.Permission("inexistente")), domain.ErrPermissionDenied)
}

func TestAuthorize_AdminTemTodasAsPermissoes(t *testing.T) {
	perms := []domain.Permission{
		domain.PermProductRead, domain.PermProductWrite, domain.PermSupplierRead, domain.PermSupplierWrite,
		domain.PermStockRead, domain.PermStockWrite, domain.PermExpenseRead, domain.PermExpenseWrite,
		domain.PermStatementRead, domain.PermStatementWrite, domain.PermCashRead, domain.PermCashWrite,
		domain.PermOrderRead, domain.PermOrderWrite, domain.PermProfessionalRead, domain.PermProfessionalWrite,
		domain.PermQueueOperate, domain.PermGoalRead, domain.PermGoalWrite, domain.PermDashboardRead,
		domain.PermAuditRead, domain.PermRecurringManage, domain.PermUserManage,
	}
	for _, p := range perms {
		assert.NoError(t, domain.Authorize(entity.RoleAdmin, p), string(p))
		assert.NotEmpty(t, domain.AllowedRoles(p), string(p))
	}
}

func TestParseRole(t *testing.T) {
	r, err := entity.ParseRole("recepcionista")
	assert.NoError(t, err)
	assert.Equal(t, entity.RoleRecepcionista, r)

	_, err = entity.ParseRole("vendedor")
	assert.Error(t, err)
}

func TestCanSee_SegueLeituraDaEntidade(t *testing.T) {
	assert.False(t, domain.CanSee(entity.RoleBarbeiro, "expense"))
	assert.False(t, domain.CanSee(entity.RoleBarbeiro, "cash_register"))
	assert.False(t, domain.CanSee(entity.RoleRecepcionista, "bank_statement"))
	assert.True(t, domain.CanSee(entity.RoleBarbeiro, "order"))
	assert.True(t, domain.CanSee(entity.RoleBarbeiro, "queue"))
	assert.True(t, domain.CanSee(entity.RoleGerente, "expense"))
	assert.False(t, domain.CanSee(entity.RoleAdmin, "desconhecida"))
}
