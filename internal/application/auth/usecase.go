package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/barberpro/barber-analytics-api/internal/application/dto"
	"github.com/barberpro/barber-analytics-api/internal/domain"
	"github.com/barberpro/barber-analytics-api/internal/domain/entity"
	"github.com/barberpro/barber-analytics-api/internal/domain/repository"
	"github.com/barberpro/barber-analytics-api/pkg/jwt"
)

const statusActive = "active"

// JWTConfig configuração para geração de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Caller usuário autenticado que faz o cadastro (nil no primeiro acesso da unidade).
type Caller struct {
	UserID string
	UnitID string
	Role   entity.Role
}

// AuthUseCase casos de uso de autenticação: cadastro e login.
type AuthUseCase struct {
	userRepo repository.UserRepository
	unitRepo repository.UnitRepository
	jwtCfg   JWTConfig
	now      func() time.Time
}

// NewAuthUseCase constrói o caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, unitRepo repository.UnitRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, unitRepo: unitRepo, jwtCfg: jwtCfg, now: time.Now}
}

// RegisterUser cria um usuário com senha bcrypt.
//
// O primeiro usuário de uma unidade é sempre admin e dispensa token. Depois disso só um admin
// da própria unidade cadastra usuários, escolhendo o perfil (padrão barbeiro).
func (uc *AuthUseCase) RegisterUser(ctx context.Context, caller *Caller, in dto.RegisterRequest) (*dto.UserResponse, error) {
	if err := dto.ValidateStruct(in).Err(); err != nil {
		return nil, err
	}
	if _, err := uc.unitRepo.FindByID(ctx, in.UnitID); err != nil {
		return nil, err
	}
	n, err := uc.userRepo.CountByUnit(ctx, in.UnitID)
	if err != nil {
		return nil, err
	}

	role := entity.RoleAdmin
	if n > 0 {
		if caller == nil {
			return nil, domain.ErrUnauthorized
		}
		if caller.UnitID != in.UnitID || domain.Authorize(caller.Role, domain.PermUserManage) != nil {
			return nil, domain.Wrap(domain.ErrPermissionDenied, "%s não pode %s", caller.Role, domain.PermUserManage)
		}
		role = entity.RoleBarbeiro
		if in.Role != "" {
			if role, err = entity.ParseRole(in.Role); err != nil {
				return nil, domain.Invalid(err.Error())
			}
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	user := &entity.User{
		ID:           uuid.New().String(),
		UnitID:       in.UnitID,
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(in.Name),
		Role:         role,
		Status:       statusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.Conflict("Já existe um usuário com este e-mail.")
		}
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifica email/senha, gera o JWT e devolve token + usuário.
// E-mail desconhecido e senha errada dão o mesmo erro.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := dto.ValidateStruct(in).Err(); err != nil {
		return nil, err
	}
	user, err := uc.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != statusActive {
		return nil, domain.Wrap(domain.ErrPermissionDenied, "usuário %s inativo", user.ID)
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.UnitID, string(user.Role), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		ExpiresIn: uc.jwtCfg.ExpMinutes * 60,
		User:      *toUserResponse(user),
	}, nil
}

// Me devolve o usuário do token.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        u.ID,
		UnitID:    u.UnitID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
