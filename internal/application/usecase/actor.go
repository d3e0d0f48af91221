package usecase

import (
	"github.com/barberpro/barber-analytics-api/internal/domain"
	"github.com/barberpro/barber-analytics-api/internal/domain/entity"
)

// Actor quem executa a operação, extraído do token.
type Actor struct {
	UserID string
	UnitID string
	Role   entity.Role
}

// authorize valida o perfil antes de qualquer acesso a repositório.
func (a Actor) authorize(p domain.Permission) error {
	if a.UnitID == "" || a.UserID == "" {
		return domain.ErrPermissionDenied
	}
	if err := domain.Authorize(a.Role, p); err != nil {
		return domain.Wrap(domain.ErrPermissionDenied, "%s não pode %s", a.Role, p)
	}
	return nil
}

// scoped copia o corpo cru fixando a unidade (e, quando informado, o autor) do ator.
// O cliente nunca escolhe a unidade em que grava.
func (a Actor) scoped(raw map[string]any, authorField string) map[string]any {
	out := make(map[string]any, len(raw)+2)
	for k, v := range raw {
		out[k] = v
	}
	out["unit_id"] = a.UnitID
	if authorField != "" {
		out[authorField] = a.UserID
	}
	return out
}
