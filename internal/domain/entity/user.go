package entity

import (
	"fmt"
	"time"
)

// Role é o perfil de acesso de um usuário dentro da unidade.
type Role string

// Perfis válidos (devem coincidir com o CHECK da tabela users).
const (
	RoleAdmin         Role = "admin"
	RoleGerente       Role = "gerente"
	RoleRecepcionista Role = "recepcionista"
	RoleBarbeiro      Role = "barbeiro"
)

// Roles lista todos os perfis conhecidos.
func Roles() []Role {
	return []Role{RoleAdmin, RoleGerente, RoleRecepcionista, RoleBarbeiro}
}

// Valid informa se o perfil pertence ao conjunto fechado de perfis.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleGerente, RoleRecepcionista, RoleBarbeiro:
		return true
	default:
		return false
	}
}

// ParseRole converte texto em Role, rejeitando valores desconhecidos.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("perfil desconhecido: %q", s)
	}
	return r, nil
}

// User representa um usuário do sistema (pertence a uma Unit).
type User struct {
	ID           string
	UnitID       string
	Email        string
	PasswordHash string
	Name         string
	Role         Role
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
