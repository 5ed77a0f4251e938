// Package auth registra usuarios y emite tokens de acceso.
package auth

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"github.com/jhoicas/ServiCampo-api/internal/application/dto"
	"github.com/jhoicas/ServiCampo-api/internal/domain"
	"github.com/jhoicas/ServiCampo-api/internal/domain/entity"
	"github.com/jhoicas/ServiCampo-api/internal/domain/repository"
	"github.com/jhoicas/ServiCampo-api/pkg/config"
	"github.com/jhoicas/ServiCampo-api/pkg/jwt"
	"github.com/jhoicas/ServiCampo-api/pkg/logger"
)

// UseCase casos de uso de autenticación: registro y login con JWT.
type UseCase struct {
	userRepo   repository.UserRepository
	tenantRepo repository.TenantRepository
	jwtCfg     config.JWTConfig
	log        *logger.Logger
}

// NewUseCase construye el caso de uso de auth.
func NewUseCase(userRepo repository.UserRepository, tenantRepo repository.TenantRepository, jwtCfg config.JWTConfig, log *logger.Logger) *UseCase {
	return &UseCase{userRepo: userRepo, tenantRepo: tenantRepo, jwtCfg: jwtCfg, log: log}
}

// Register crea un usuario del tenant con la contraseña hasheada (bcrypt).
// El rol por defecto es tecnico; admin y oficina deben pedirse explícitamente.
func (uc *UseCase) Register(in dto.RegisterRequest) (*dto.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || len(in.Password) < 8 || in.TenantID == "" {
		return nil, domain.ErrInvalidInput
	}
	role := in.Role
	if role == "" {
		role = entity.RoleTecnico
	}
	if role != entity.RoleAdmin && role != entity.RoleOficina && role != entity.RoleTecnico {
		return nil, domain.ErrInvalidInput
	}

	tenant, err := uc.tenantRepo.GetByID(in.TenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, domain.ErrNotFound
	}

	existing, err := uc.userRepo.GetByEmailAndTenant(email, in.TenantID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		TenantID:     in.TenantID,
		Email:        email,
		PasswordHash: string(hash),
		Name:         in.Name,
		Role:         role,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}

	uc.log.Info().Str("user", user.ID).Str("tenant", user.TenantID).Str("role", user.Role).Msg("usuario registrado")
	return toUserResponse(user), nil
}

// Login verifica credenciales y emite el token con user_id, tenant_id y role.
// Devuelve siempre ErrUnauthorized ante credenciales malas: no se filtra si el
// email existe o no.
func (uc *UseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	user, err := uc.userRepo.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Status != "active" {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.TenantID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.Expiration)
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("user", user.ID).Str("tenant", user.TenantID).Msg("login exitoso")
	return &dto.LoginResponse{Token: token, User: *toUserResponse(user)}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:       u.ID,
		TenantID: u.TenantID,
		Email:    u.Email,
		Name:     u.Name,
		Role:     u.Role,
	}
}
