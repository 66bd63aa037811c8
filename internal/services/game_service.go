package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rafabene/gamehub-backend/internal/domain/access"
	"github.com/rafabene/gamehub-backend/internal/domain/entities"
	apperrors "github.com/rafabene/gamehub-backend/internal/domain/errors"
	"github.com/rafabene/gamehub-backend/internal/domain/ports"
	"github.com/rafabene/gamehub-backend/internal/domain/repositories"
)

// GameService contém a lógica de negócio para submissões fora do fluxo
// de moderação: criação de rascunhos, consultas e acesso de jogo.
type GameService struct {
	submissionRepo repositories.SubmissionRepository
	blobStore      ports.BlobStore
	logger         ports.Logger
	playURLTTL     time.Duration
}

// NewGameService cria um novo GameService
func NewGameService(
	submissionRepo repositories.SubmissionRepository,
	blobStore ports.BlobStore,
	logger ports.Logger,
	playURLTTL time.Duration,
) *GameService {
	if playURLTTL <= 0 {
		playURLTTL = 15 * time.Minute
	}
	return &GameService{
		submissionRepo: submissionRepo,
		blobStore:      blobStore,
		logger:         logger,
		playURLTTL:     playURLTTL,
	}
}

// CreateDraftInput representa os dados para criar um rascunho de submissão
type CreateDraftInput struct {
	Title         string
	Description   string
	Tags          []string
	CategoryID    *string
	PackagePath   string
	ThumbnailPath *string
}

// CreateDraft cria uma submissão em Draft pertencente ao desenvolvedor
func (s *GameService) CreateDraft(ctx context.Context, actor *entities.Actor, input CreateDraftInput) (*entities.GameSubmission, error) {
	if err := access.RequireRole(actor, entities.RoleDeveloper); err != nil {
		return nil, err
	}
	if err := access.RequirePermission(actor, entities.PermissionSubmitGames); err != nil {
		return nil, err
	}

	submission := entities.NewGameSubmission(uuid.NewString(), actor.ID, input.Title)
	submission.Description = input.Description
	submission.Tags = input.Tags
	submission.CategoryID = input.CategoryID
	submission.PackagePath = input.PackagePath
	submission.ThumbnailPath = input.ThumbnailPath

	if err := s.submissionRepo.Create(ctx, submission); err != nil {
		return nil, err
	}

	s.logger.Info("draft submission created",
		"submission_id", submission.ID,
		"developer_id", actor.ID,
	)

	return submission, nil
}

// UpdateDraftInput representa os dados de metadados editáveis em Draft
type UpdateDraftInput struct {
	Title         *string
	Description   *string
	Tags          []string
	CategoryID    *string
	PackagePath   *string
	ThumbnailPath *string
}

// UpdateDraft atualiza metadados de uma submissão. Permitido somente ao
// dono enquanto o status é Draft; depois disso os direitos de mutação
// passam para a moderação.
func (s *GameService) UpdateDraft(ctx context.Context, actor *entities.Actor, submissionID string, input UpdateDraftInput) (*entities.GameSubmission, error) {
	submission, err := s.submissionRepo.FindByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	if submission == nil {
		return nil, apperrors.ErrSubmissionNotFound
	}

	if err := access.RequireRole(actor, entities.RoleDeveloper); err != nil {
		return nil, err
	}
	if err := access.RequireOwnership(actor, submission.DeveloperID); err != nil {
		return nil, err
	}
	if submission.Status != entities.StatusDraft {
		return nil, apperrors.NewTransitionError(string(submission.Status), string(entities.StatusDraft))
	}

	if input.Title != nil {
		submission.Title = *input.Title
	}
	if input.Description != nil {
		submission.Description = *input.Description
	}
	if input.Tags != nil {
		submission.Tags = input.Tags
	}
	if input.CategoryID != nil {
		submission.CategoryID = input.CategoryID
	}
	if input.PackagePath != nil {
		submission.PackagePath = *input.PackagePath
	}
	if input.ThumbnailPath != nil {
		submission.ThumbnailPath = input.ThumbnailPath
	}
	submission.UpdatedAt = time.Now().UTC()

	// O check otimista contra Draft garante que uma submissão movida
	// concorrentemente pela moderação não seja sobrescrita
	if err := s.submissionRepo.Save(ctx, submission, entities.StatusDraft); err != nil {
		return nil, err
	}

	return submission, nil
}

// GetSubmission busca uma submissão. Visível ao dono e a administradores.
func (s *GameService) GetSubmission(ctx context.Context, actor *entities.Actor, submissionID string) (*entities.GameSubmission, error) {
	submission, err := s.submissionRepo.FindByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	if submission == nil {
		return nil, apperrors.ErrSubmissionNotFound
	}

	if err := access.RequireOwnership(actor, submission.DeveloperID); err != nil {
		return nil, err
	}

	return submission, nil
}

// ListSubmissions lista submissões. Desenvolvedores veem apenas as
// próprias; administradores veem todas, com filtro opcional de status.
func (s *GameService) ListSubmissions(ctx context.Context, actor *entities.Actor, filters repositories.SubmissionFilters) ([]*entities.GameSubmission, error) {
	if err := access.RequireAuthenticated(actor); err != nil {
		return nil, err
	}

	if !actor.IsAdmin() {
		if err := access.RequireRole(actor, entities.RoleDeveloper); err != nil {
			return nil, err
		}
		developerID := actor.ID
		filters.DeveloperID = &developerID
	}

	return s.submissionRepo.List(ctx, filters)
}

// ListPublished lista os jogos visíveis no catálogo público.
// A visibilidade é uma consulta sobre Status=Published, não um efeito
// colateral do Publish.
func (s *GameService) ListPublished(ctx context.Context, filters repositories.SubmissionFilters) ([]*entities.GameSubmission, error) {
	published := entities.StatusPublished
	filters.Status = &published
	filters.DeveloperID = nil
	return s.submissionRepo.List(ctx, filters)
}

// PlayURL retorna uma URL assinada de validade limitada para o pacote
// do jogo. Exige a permissão play_games e jogo publicado.
func (s *GameService) PlayURL(ctx context.Context, actor *entities.Actor, submissionID string) (string, error) {
	if err := access.RequirePermission(actor, entities.PermissionPlayGames); err != nil {
		return "", err
	}

	submission, err := s.submissionRepo.FindByID(ctx, submissionID)
	if err != nil {
		return "", err
	}
	if submission == nil || submission.Status != entities.StatusPublished {
		return "", apperrors.ErrSubmissionNotFound
	}

	return s.blobStore.SignedURL(ctx, submission.PackagePath, s.playURLTTL)
}
