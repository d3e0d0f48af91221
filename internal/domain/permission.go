package domain

import "github.com/barberpro/barber-analytics-api/internal/domain/entity"

// Permission identifica uma operação protegida por perfil.
type Permission string

const (
	PermProductRead       Permission = "product:read"
	PermProductWrite      Permission = "product:write"
	PermSupplierRead      Permission = "supplier:read"
	PermSupplierWrite     Permission = "supplier:write"
	PermStockRead         Permission = "stock:read"
	PermStockWrite        Permission = "stock:write"
	PermExpenseRead       Permission = "expense:read"
	PermExpenseWrite      Permission = "expense:write"
	PermStatementRead     Permission = "statement:read"
	PermStatementWrite    Permission = "statement:write"
	PermCashRead          Permission = "cash:read"
	PermCashWrite         Permission = "cash:write"
	PermOrderRead         Permission = "order:read"
	PermOrderWrite        Permission = "order:write"
	PermProfessionalWrite Permission = "professional:write"
	PermProfessionalRead  Permission = "professional:read"
	PermQueueOperate      Permission = "queue:operate"
	PermGoalRead          Permission = "goal:read"
	PermGoalWrite         Permission = "goal:write"
	PermDashboardRead     Permission = "dashboard:read"
	PermAuditRead         Permission = "audit:read"
	PermRecurringManage   Permission = "recurring:manage"
	PermUserManage        Permission = "user:manage"
)

var (
	everyone   = []entity.Role{entity.RoleAdmin, entity.RoleGerente, entity.RoleRecepcionista, entity.RoleBarbeiro}
	management = []entity.Role{entity.RoleAdmin, entity.RoleGerente}
	frontDesk  = []entity.Role{entity.RoleAdmin, entity.RoleGerente, entity.RoleRecepcionista}
)

var permissions = map[Permission][]entity.Role{
	PermProductRead:       everyone,
	PermProductWrite:      management,
	PermSupplierRead:      frontDesk,
	PermSupplierWrite:     management,
	PermStockRead:         everyone,
	PermStockWrite:        frontDesk,
	PermExpenseRead:       management,
	PermExpenseWrite:      management,
	PermStatementRead:     management,
	PermStatementWrite:    management,
	PermCashRead:          frontDesk,
	PermCashWrite:         frontDesk,
	PermOrderRead:         everyone,
	PermOrderWrite:        everyone,
	PermProfessionalRead:  everyone,
	PermProfessionalWrite: management,
	PermQueueOperate:      everyone,
	PermGoalRead:          everyone,
	PermGoalWrite:         management,
	PermDashboardRead:     management,
	PermAuditRead:         {entity.RoleAdmin},
	PermRecurringManage:   management,
	PermUserManage:        {entity.RoleAdmin},
}

// AllowedRoles devolve os perfis autorizados para a operação.
func AllowedRoles(p Permission) []entity.Role {
	return permissions[p]
}

// Authorize devolve ErrPermissionDenied quando o perfil não está na lista da operação.
// Perfis fora do enum e operações sem lista são sempre negados.
func Authorize(role entity.Role, p Permission) error {
	if !role.Valid() {
		return ErrPermissionDenied
	}
	for _, r := range permissions[p] {
		if r == role {
			return nil
		}
	}
	return ErrPermissionDenied
}

// leitura exigida para receber em tempo real os registros de cada entidade
var entityRead = map[string]Permission{
	"product":           PermProductRead,
	"stock_movement":    PermStockRead,
	"supplier":          PermSupplierRead,
	"supplier_file":     PermSupplierRead,
	"expense":           PermExpenseRead,
	"recurring_expense": PermRecurringManage,
	"bank_statement":    PermStatementRead,
	"cash_register":     PermCashRead,
	"cash_movement":     PermCashRead,
	"order":             PermOrderRead,
	"professional":      PermProfessionalRead,
	"queue":             PermQueueOperate,
	"goal":              PermGoalRead,
}

// ReadPermission permissão de leitura da entidade; false para entidades desconhecidas.
func ReadPermission(entityName string) (Permission, bool) {
	p, ok := entityRead[entityName]
	return p, ok
}

// CanSee informa se o perfil pode ler registros da entidade.
func CanSee(role entity.Role, entityName string) bool {
	p, ok := ReadPermission(entityName)
	return ok && Authorize(role, p) == nil
}
