package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/rafabene/gamehub-backend/internal/domain/entities"
	apperrors "github.com/rafabene/gamehub-backend/internal/domain/errors"
	"github.com/rafabene/gamehub-backend/internal/domain/ports"
	"github.com/rafabene/gamehub-backend/internal/domain/repositories"
	"github.com/rafabene/gamehub-backend/internal/domain/valueobjects"
)

// AuthService contém a lógica de registro e autenticação
type AuthService struct {
	userRepo     repositories.UserRepository
	tokenManager ports.TokenManager
	logger       ports.Logger
}

// NewAuthService cria um novo AuthService
func NewAuthService(
	userRepo repositories.UserRepository,
	tokenManager ports.TokenManager,
	logger ports.Logger,
) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		tokenManager: tokenManager,
		logger:       logger,
	}
}

// RegisterInput representa os dados para registrar uma conta
type RegisterInput struct {
	Email    string
	Username string
	Password string
	Role     entities.Role
}

// Register cria uma conta de jogador ou desenvolvedor.
// Contas de administrador não se auto-registram: são provisionadas por
// um administrador existente via UserService (permissão manage_users).
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*entities.User, error) {
	if input.Role != entities.RolePlayer && input.Role != entities.RoleDeveloper {
		return nil, &apperrors.DomainError{
			Type:    apperrors.ProblemTypeValidation,
			Title:   "error.validation.title",
			Message: "error.role_not_allowed",
			Err:     apperrors.ErrValidationFailed,
		}
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

	s.logger.Info("user registered",
		"user_id", user.ID,
		"role", string(user.Role),
	)

	return user, nil
}

// LoginOutput representa o resultado de um login bem sucedido
type LoginOutput struct {
	User      *entities.User
	Token     string
	ExpiresAt time.Time
}

// Login autentica por email e senha e emite um token de acesso
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginOutput, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || user.IsDeleted() {
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokenManager.Generate(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user logged in", "user_id", user.ID)

	return &LoginOutput{
		User:      user,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}
