package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/gamehub-backend/internal/domain/repositories"
	"github.com/rafabene/gamehub-backend/internal/handlers/dto"
	"github.com/rafabene/gamehub-backend/internal/handlers/middleware"
	"github.com/rafabene/gamehub-backend/internal/services"
)

// GameHandler lida com o catálogo público de jogos publicados
type GameHandler struct {
	gameService *services.GameService
}

// NewGameHandler cria um novo GameHandler
func NewGameHandler(gameService *services.GameService) *GameHandler {
	return &GameHandler{
		gameService: gameService,
	}
}

// ListGames lista os jogos publicados
//
//	@Summary	Lista o catálogo público
//	@Tags		games
//	@Produce	json
//	@Param		page		query		int	false	"Página"
//	@Param		page_size	query		int	false	"Itens por página"
//	@Success	200			{array}		dto.SubmissionResponse
//	@Router		/games [get]
func (h *GameHandler) ListGames(c *gin.Context) {
	filters := repositories.SubmissionFilters{
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "page_size", 20),
	}

	games, err := h.gameService.ListPublished(c.Request.Context(), filters)
	if err != nil {
		dto.RespondProblem(c, dto.FromDomainError(c, err))
		return
	}

	c.JSON(http.StatusOK, dto.ToSubmissionResponses(games))
}

// PlayGame retorna a URL assinada de validade limitada do pacote do jogo
//
//	@Summary	Gera a URL de jogo
//	@Tags		games
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"ID do jogo"
//	@Success	200	{object}	dto.PlayURLResponse
//	@Failure	404	{object}	dto.ErrorResponse
//	@Router		/games/{id}/play [get]
func (h *GameHandler) PlayGame(c *gin.Context) {
	actor := middleware.CurrentActor(c)

	url, err := h.gameService.PlayURL(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		dto.RespondProblem(c, dto.FromDomainError(c, err))
		return
	}

	c.JSON(http.StatusOK, dto.PlayURLResponse{URL: url})
}
