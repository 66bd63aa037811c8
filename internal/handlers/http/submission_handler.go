package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/gamehub-backend/internal/domain/entities"
	"github.com/rafabene/gamehub-backend/internal/domain/repositories"
	"github.com/rafabene/gamehub-backend/internal/handlers/dto"
	"github.com/rafabene/gamehub-backend/internal/handlers/middleware"
	"github.com/rafabene/gamehub-backend/internal/handlers/ws"
	"github.com/rafabene/gamehub-backend/internal/services"
)

// SubmissionHandler lida com o ciclo de vida de submissões de jogos:
// rascunhos, consultas e as transições de moderação
type SubmissionHandler struct {
	gameService       *services.GameService
	moderationService *services.ModerationService
	feed              *ws.ModerationFeed
}

// NewSubmissionHandler cria um novo SubmissionHandler
func NewSubmissionHandler(
	gameService *services.GameService,
	moderationService *services.ModerationService,
	feed *ws.ModerationFeed,
) *SubmissionHandler {
	return &SubmissionHandler{
		gameService:       gameService,
		moderationService: moderationService,
		feed:              feed,
	}
}

// CreateSubmission cria um rascunho de submissão
//
//	@Summary	Cria um rascunho de submissão
//	@Tags		submissions
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		dto.CreateSubmissionRequest	true	"Dados da submissão"
//	@Success	201		{object}	dto.SubmissionResponse
//	@Failure	403		{object}	dto.ErrorResponse
//	@Router		/submissions [post]
func (h *SubmissionHandler) CreateSubmission(c *gin.Context) {
	var req dto.CreateSubmissionRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		response := dto.ValidationErrorResponseI18n(c, dto.ValidationErrorsFromBinding(err))
		dto.RespondProblem(c, response)
		return
	}

	actor := middleware.CurrentActor(c)
	submission, err := h.gameService.CreateDraft(c.Request.Context(), actor, services.CreateDraftInput{
		Title:         req.Title,
		Description:   req.Description,
		Tags:          req.Tags,
		CategoryID:    req.CategoryID,
		PackagePath:   req.PackagePath,
		ThumbnailPath: req.ThumbnailPath,
	})
	if err != nil {
		dto.RespondProblem(c, dto.FromDomainError(c, err))
		return
	}

	c.JSON(http.StatusCreated, dto.ToSubmissionResponse(submission))
}

// UpdateSubmission edita metadados de um rascunho
//
//	@Summary	Edita um rascunho (somente dono, somente em draft)
//	@Tags		submissions
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string						true	"ID da submissão"
//	@Param		request	body		dto.UpdateSubmissionRequest	true	"Metadados"
//	@Success	200		{object}	dto.SubmissionResponse
//	@Failure	409		{object}	dto.ErrorResponse
//	@Router		/submissions/{id} [patch]
func (h *SubmissionHandler) UpdateSubmission(c *gin.Context) {
	var req dto.UpdateSubmissionRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		response := dto.ValidationErrorResponseI18n(c, dto.ValidationErrorsFromBinding(err))
		dto.RespondProblem(c, response)
		return
	}

	actor := middleware.CurrentActor(c)
	submission, err := h.gameService.UpdateDraft(c.Request.Context(), actor, c.Param("id"), services.UpdateDraftInput{
		Title:         req.Title,
		Description:   req.Description,
		Tags:          req.Tags,
		CategoryID:    req.CategoryID,
		PackagePath:   req.PackagePath,
		ThumbnailPath: req.ThumbnailPath,
	})
	if err != nil {
		dto.RespondProblem(c, dto.FromDomainError(c, err))
		return
	}

	c.JSON(http.StatusOK, dto.ToSubmissionResponse(submission))
}

// GetSubmission busca uma submissão (dono ou admin)
//
//	@Summary	Busca uma submissão com sua trilha de notas
//	@Tags		submissions
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"ID da submissão"
//	@Success	200	{object}	dto.SubmissionResponse
//	@Failure	404	{object}	dto.ErrorResponse
//	@Router		/submissions/{id} [get]
func (h *SubmissionHandler) GetSubmission(c *gin.Context) {
	actor := middleware.CurrentActor(c)
	submission, err := h.gameService.GetSubmission(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		dto.RespondProblem(c, dto.FromDomainError(c, err))
		return
	}

	c.JSON(http.StatusOK, dto.ToSubmissionResponse(submission))
}

// ListSubmissions lista submissões do desenvolvedor (ou todas, para admin)
//
//	@Summary	Lista submissões
//	@Tags		submissions
//	@Produce	json
//	@Security	BearerAuth
//	@Param		status		query		string	false	"Filtro por status"
//	@Param		page		query		int		false	"Página"
//	@Param		page_size	query		int		false	"Itens por página"
//	@Success	200			{array}		dto.SubmissionResponse
//	@Router		/submissions [get]
func (h *SubmissionHandler) ListSubmissions(c *gin.Context) {
	var query dto.ListSubmissionsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response := dto.ValidationErrorResponseI18n(c, dto.ValidationErrorsFromBinding(err))
		dto.RespondProblem(c, response)
		return
	}

	filters := repositories.SubmissionFilters{
		Page:     query.Page,
		PageSize: query.PageSize,
	}
	if query.Status != "" {
		status := entities.Status(query.Status)
		filters.Status = &status
	}

	actor := middleware.CurrentActor(c)
	submissions, err := h.gameService.ListSubmissions(c.Request.Context(), actor, filters)
	if err != nil {
		dto.RespondProblem(c, dto.FromDomainError(c, err))
		return
	}

	c.JSON(http.StatusOK, dto.ToSubmissionResponses(submissions))
}

// Submit move o rascunho para a fila de moderação
//
//	@Summary	Submete um rascunho para moderação
//	@Tags		moderation
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"ID da submissão"
//	@Success	200	{object}	dto.SubmissionResponse
//	@Failure	409	{object}	dto.ErrorResponse
//	@Router		/submissions/{id}/submit [post]
func (h *SubmissionHandler) Submit(c *gin.Context) {
	h.transition(c, entities.StatusDraft, func(actor *entities.Actor) (*entities.GameSubmission, error) {
		return h.moderationService.Submit(c.Request.Context(), actor, c.Param("id"))
	})
}

// StartReview inicia a revisão de uma submissão
//
//	@Summary	Inicia a revisão (admin)
//	@Tags		moderation
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"ID da submissão"
//	@Success	200	{object}	dto.SubmissionResponse
//	@Router		/submissions/{id}/start-review [post]
func (h *SubmissionHandler) StartReview(c *gin.Context) {
	h.transition(c, entities.StatusSubmitted, func(actor *entities.Actor) (*entities.GameSubmission, error) {
		return h.moderationService.StartReview(c.Request.Context(), actor, c.Param("id"))
	})
}

// Approve aprova uma submissão em revisão
//
//	@Summary	Aprova uma submissão (admin, nota opcional)
//	@Tags		moderation
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string				true	"ID da submissão"
//	@Param		request	body		dto.ApproveRequest	false	"Nota opcional"
//	@Success	200		{object}	dto.SubmissionResponse
//	@Router		/submissions/{id}/approve [post]
func (h *SubmissionHandler) Approve(c *gin.Context) {
	var req dto.ApproveRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response := dto.ValidationErrorResponseI18n(c, dto.ValidationErrorsFromBinding(err))
			dto.RespondProblem(c, response)
			return
		}
	}

	h.transition(c, entities.StatusInReview, func(actor *entities.Actor) (*entities.GameSubmission, error) {
		return h.moderationService.Approve(c.Request.Context(), actor, c.Param("id"), req.Note)
	})
}

// Reject rejeita uma submissão em revisão com motivo obrigatório
//
//	@Summary	Rejeita uma submissão (admin, motivo obrigatório)
//	@Tags		moderation
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string				true	"ID da submissão"
//	@Param		request	body		dto.RejectRequest	true	"Motivo da rejeição"
//	@Success	200		{object}	dto.SubmissionResponse
//	@Failure	400		{object}	dto.ErrorResponse
//	@Router		/submissions/{id}/reject [post]
func (h *SubmissionHandler) Reject(c *gin.Context) {
	var req dto.RejectRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response := dto.ValidationErrorResponseI18n(c, dto.ValidationErrorsFromBinding(err))
			dto.RespondProblem(c, response)
			return
		}
	}

	h.transition(c, entities.StatusInReview, func(actor *entities.Actor) (*entities.GameSubmission, error) {
		return h.moderationService.Reject(c.Request.Context(), actor, c.Param("id"), req.Reason)
	})
}

// Publish publica uma submissão aprovada.
// A visibilidade no catálogo decorre do status Published observado
// pelas consultas públicas, não de uma indexação inline.
//
//	@Summary	Publica uma submissão aprovada (admin)
//	@Tags		moderation
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"ID da submissão"
//	@Success	200	{object}	dto.SubmissionResponse
//	@Router		/submissions/{id}/publish [post]
func (h *SubmissionHandler) Publish(c *gin.Context) {
	h.transition(c, entities.StatusApproved, func(actor *entities.Actor) (*entities.GameSubmission, error) {
		return h.moderationService.Publish(c.Request.Context(), actor, c.Param("id"))
	})
}

// Resubmit devolve uma submissão rejeitada para rascunho
//
//	@Summary	Reabre uma submissão rejeitada para ressubmissão
//	@Tags		moderation
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"ID da submissão"
//	@Success	200	{object}	dto.SubmissionResponse
//	@Router		/submissions/{id}/resubmit [post]
func (h *SubmissionHandler) Resubmit(c *gin.Context) {
	h.transition(c, entities.StatusRejected, func(actor *entities.Actor) (*entities.GameSubmission, error) {
		return h.moderationService.Resubmit(c.Request.Context(), actor, c.Param("id"))
	})
}

// transition executa uma operação de moderação e, em caso de sucesso,
// publica o evento no feed administrativo. A publicação acontece aqui,
// observando o retorno do serviço; o serviço não emite eventos.
func (h *SubmissionHandler) transition(c *gin.Context, from entities.Status, op func(actor *entities.Actor) (*entities.GameSubmission, error)) {
	actor := middleware.CurrentActor(c)

	submission, err := op(actor)
	if err != nil {
		dto.RespondProblem(c, dto.FromDomainError(c, err))
		return
	}

	if h.feed != nil {
		h.feed.Broadcast(ws.ModerationEvent{
			SubmissionID: submission.ID,
			Title:        submission.Title,
			From:         string(from),
			To:           string(submission.Status),
			ActorID:      actor.ID,
			Version:      submission.Version,
			OccurredAt:   time.Now().UTC(),
		})
	}

	c.JSON(http.StatusOK, dto.ToSubmissionResponse(submission))
}
