package dto

import "time"

// RegisterRequest entrada para cadastro de usuário em uma unidade (senha em texto, hash no use case).
type RegisterRequest struct {
	UnitID   string `json:"unit_id" validate:"required,uuid"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required,min=2,max=120"`
	Role     string `json:"role" validate:"omitempty,oneof=admin gerente recepcionista barbeiro"`
}

// UserResponse saída de um usuário (sem senha).
type UserResponse struct {
	ID        string    `json:"id"`
	UnitID    string    `json:"unit_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoginRequest entrada de login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token JWT e usuário autenticado.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresIn int          `json:"expires_in"` // segundos
	User      UserResponse `json:"user"`
}
