package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/gamehub-backend/internal/domain/entities"
	"github.com/rafabene/gamehub-backend/internal/handlers/dto"
	"github.com/rafabene/gamehub-backend/internal/services"
)

// AuthHandler lida com registro e autenticação
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler cria um novo AuthHandler
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register registra uma conta de jogador ou desenvolvedor
//
//	@Summary	Registra uma nova conta
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		dto.RegisterRequest	true	"Dados de registro"
//	@Success	201		{object}	dto.UserResponse
//	@Failure	400		{object}	dto.ErrorResponse
//	@Failure	409		{object}	dto.ErrorResponse
//	@Router		/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		response := dto.ValidationErrorResponseI18n(c, dto.ValidationErrorsFromBinding(err))
		dto.RespondProblem(c, response)
		return
	}

	user, err := h.authService.Register(c.Request.Context(), services.RegisterInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
		Role:     entities.Role(req.Role),
	})
	if err != nil {
		dto.RespondProblem(c, dto.FromDomainError(c, err))
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// Login autentica por email e senha
//
//	@Summary	Autentica e emite um token de acesso
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		dto.LoginRequest	true	"Credenciais"
//	@Success	200		{object}	dto.LoginResponse
//	@Failure	401		{object}	dto.ErrorResponse
//	@Router		/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		response := dto.ValidationErrorResponseI18n(c, dto.ValidationErrorsFromBinding(err))
		dto.RespondProblem(c, response)
		return
	}

	output, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		dto.RespondProblem(c, dto.FromDomainError(c, err))
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:     output.Token,
		ExpiresAt: output.ExpiresAt,
		User:      dto.ToUserResponse(output.User),
	})
}
