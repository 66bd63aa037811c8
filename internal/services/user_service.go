package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/rafabene/gamehub-backend/internal/domain/access"
	"github.com/rafabene/gamehub-backend/internal/domain/entities"
	apperrors "github.com/rafabene/gamehub-backend/internal/domain/errors"
	"github.com/rafabene/gamehub-backend/internal/domain/ports"
	"github.com/rafabene/gamehub-backend/internal/domain/repositories"
	"github.com/rafabene/gamehub-backend/internal/domain/valueobjects"
)

// UserService contém a lógica de negócio para administração de usuários
type UserService struct {
	userRepo repositories.UserRepository
	logger   ports.Logger
}

// NewUserService cria um novo UserService
func NewUserService(userRepo repositories.UserRepository, logger ports.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// CreateUserInput representa os dados para provisionar um usuário
type CreateUserInput struct {
	Email    string
	Username string
	Password string
	Role     entities.Role
}

// CreateUser provisiona uma conta com role arbitrário, inclusive admin.
// Exige a permissão manage_users; é o único caminho para criar contas
// de administrador (não há auto-registro de admin por segredo
// compartilhado).
func (s *UserService) CreateUser(ctx context.Context, actor *entities.Actor, input CreateUserInput) (*entities.User, error) {
	if err := access.RequirePermission(actor, entities.PermissionManageUsers); err != nil {
		return nil, err
	}

	email, err := valueobjects.NewEmail(input.Email)
	if err != nil {
		return nil, apperrors.ErrInvalidEmail
	}

	existing, err := s.userRepo.FindByEmail(ctx, email.String())
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &entities.User{
		ID:           uuid.NewString(),
		Email:        email,
		Username:     input.Username,
		PasswordHash: string(hash),
		Role:         input.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := user.Validate(); err != nil {
		return nil, &apperrors.DomainError{
			Type:    apperrors.ProblemTypeValidation,
			Title:   "error.validation.title",
			Message: err.Error(),
			Err:     apperrors.ErrValidationFailed,
		}
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user provisioned",
		"user_id", user.ID,
		"role", string(user.Role),
		"created_by", actor.ID,
	)

	return user, nil
}

// GetUser busca um usuário por ID. Cada conta vê o próprio perfil;
// administradores veem qualquer perfil.
func (s *UserService) GetUser(ctx context.Context, actor *entities.Actor, id string) (*entities.User, error) {
	if err := access.RequireOwnership(actor, id); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

// ListUsers lista usuários com filtros. Exige manage_users.
func (s *UserService) ListUsers(ctx context.Context, actor *entities.Actor, filters repositories.UserFilters) ([]*entities.User, error) {
	if err := access.RequirePermission(actor, entities.PermissionManageUsers); err != nil {
		return nil, err
	}
	return s.userRepo.List(ctx, filters)
}
