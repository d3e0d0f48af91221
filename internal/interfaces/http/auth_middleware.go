package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/barberpro/barber-analytics-api/internal/application/dto"
	"github.com/barberpro/barber-analytics-api/pkg/jwt"
)

// Chaves de c.Locals preenchidas pelo AuthMiddleware.
const (
	LocalUserID = "user_id"
	LocalUnitID = "unit_id"
	LocalRole   = "role"
)

// AuthMiddleware valida o Bearer Token JWT e coloca user_id, unit_id e role em c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, res := bearer(c.Get(fiber.HeaderAuthorization))
		if res != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(res)
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "Token inválido ou expirado."})
		}
		setClaims(c, claims)
		return c.Next()
	}
}

// OptionalAuth preenche os locals quando há token válido e segue sem eles caso contrário.
func OptionalAuth(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if tokenString, res := bearer(c.Get(fiber.HeaderAuthorization)); res == nil {
			if claims, err := jwt.Parse(jwtSecret, tokenString); err == nil {
				setClaims(c, claims)
			}
		}
		return c.Next()
	}
}

func bearer(header string) (string, *dto.ErrorResponse) {
	if header == "" {
		return "", &dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Cabeçalho Authorization obrigatório."}
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", &dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "Formato esperado: Bearer <token>."}
	}
	tok := strings.TrimSpace(parts[1])
	if tok == "" {
		return "", &dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Token vazio."}
	}
	return tok, nil
}

func setClaims(c *fiber.Ctx, claims *jwt.Claims) {
	c.Locals(LocalUserID, claims.UserID)
	c.Locals(LocalUnitID, claims.UnitID)
	c.Locals(LocalRole, claims.Role)
}

func local(c *fiber.Ctx, key string) string {
	s, _ := c.Locals(key).(string)
	return s
}

// GetUserID devolve o UserID do contexto (depois do AuthMiddleware).
func GetUserID(c *fiber.Ctx) string { return local(c, LocalUserID) }

// GetUnitID devolve a unidade do token.
func GetUnitID(c *fiber.Ctx) string { return local(c, LocalUnitID) }

// GetRole devolve o perfil do token.
func GetRole(c *fiber.Ctx) string { return local(c, LocalRole) }

// RequireRole libera a rota só para os perfis informados. Usar depois do AuthMiddleware.
//   - 401 MISSING_ROLE → token sem perfil.
//   - 403 FORBIDDEN    → perfil fora da lista.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "Token sem perfil de acesso."})
		}
		if !allowed[role] {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "Você não tem permissão para acessar este recurso."})
		}
		return c.Next()
	}
}
