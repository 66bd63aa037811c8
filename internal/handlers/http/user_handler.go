package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/gamehub-backend/internal/domain/entities"
	"github.com/rafabene/gamehub-backend/internal/domain/repositories"
	"github.com/rafabene/gamehub-backend/internal/handlers/dto"
	"github.com/rafabene/gamehub-backend/internal/handlers/middleware"
	"github.com/rafabene/gamehub-backend/internal/services"
)

// UserHandler lida com requisições HTTP relacionadas a usuários
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler cria um novo UserHandler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// CreateUser provisiona um usuário (exige manage_users)
//
//	@Summary	Provisiona uma conta, inclusive administradores
//	@Tags		users
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		dto.CreateUserRequest	true	"Dados do usuário"
//	@Success	201		{object}	dto.UserResponse
//	@Failure	403		{object}	dto.ErrorResponse
//	@Router		/users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		response := dto.ValidationErrorResponseI18n(c, dto.ValidationErrorsFromBinding(err))
		dto.RespondProblem(c, response)
		return
	}

	actor := middleware.CurrentActor(c)
	user, err := h.userService.CreateUser(c.Request.Context(), actor, services.CreateUserInput{
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

// GetMe retorna o perfil da conta autenticada
//
//	@Summary	Retorna o próprio perfil
//	@Tags		users
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	dto.UserResponse
//	@Router		/users/me [get]
func (h *UserHandler) GetMe(c *gin.Context) {
	actor := middleware.CurrentActor(c)
	if actor == nil {
		dto.RespondProblem(c, dto.UnauthorizedErrorResponseI18n(c))
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), actor, actor.ID)
	if err != nil {
		dto.RespondProblem(c, dto.FromDomainError(c, err))
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// GetUser busca um usuário por ID (dono ou admin)
//
//	@Summary	Busca um usuário por ID
//	@Tags		users
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"ID do usuário"
//	@Success	200	{object}	dto.UserResponse
//	@Failure	404	{object}	dto.ErrorResponse
//	@Router		/users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	id := c.Param("id")

	actor := middleware.CurrentActor(c)
	user, err := h.userService.GetUser(c.Request.Context(), actor, id)
	if err != nil {
		dto.RespondProblem(c, dto.FromDomainError(c, err))
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// ListUsers lista usuários (exige manage_users)
//
//	@Summary	Lista usuários
//	@Tags		users
//	@Produce	json
//	@Security	BearerAuth
//	@Param		role		query		string	false	"Filtro por role"
//	@Param		page		query		int		false	"Página"
//	@Param		page_size	query		int		false	"Itens por página"
//	@Success	200			{array}		dto.UserResponse
//	@Router		/users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	filters := repositories.UserFilters{}

	if roleParam := c.Query("role"); roleParam != "" {
		role := entities.Role(roleParam)
		filters.Role = &role
	}
	filters.Page = queryInt(c, "page", 1)
	filters.PageSize = queryInt(c, "page_size", 20)

	actor := middleware.CurrentActor(c)
	users, err := h.userService.ListUsers(c.Request.Context(), actor, filters)
	if err != nil {
		dto.RespondProblem(c, dto.FromDomainError(c, err))
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponses(users))
}
