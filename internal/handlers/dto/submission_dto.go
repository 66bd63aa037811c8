package dto

import (
	"time"

	"github.com/rafabene/gamehub-backend/internal/domain/entities"
)

// CreateSubmissionRequest representa a requisição para criar um rascunho
type CreateSubmissionRequest struct {
	Title         string   `json:"title" binding:"required,min=2,max=255"`
	Description   string   `json:"description" binding:"max=5000"`
	Tags          []string `json:"tags" binding:"max=10,dive,min=2,max=30"`
	CategoryID    *string  `json:"category_id" binding:"omitempty,uuid"`
	PackagePath   string   `json:"package_path" binding:"required,max=500"`
	ThumbnailPath *string  `json:"thumbnail_path" binding:"omitempty,max=500"`
}

// UpdateSubmissionRequest representa a requisição para editar um rascunho
type UpdateSubmissionRequest struct {
	Title         *string  `json:"title" binding:"omitempty,min=2,max=255"`
	Description   *string  `json:"description" binding:"omitempty,max=5000"`
	Tags          []string `json:"tags" binding:"omitempty,max=10,dive,min=2,max=30"`
	CategoryID    *string  `json:"category_id" binding:"omitempty,uuid"`
	PackagePath   *string  `json:"package_path" binding:"omitempty,max=500"`
	ThumbnailPath *string  `json:"thumbnail_path" binding:"omitempty,max=500"`
}

// ApproveRequest representa a requisição de aprovação (nota opcional)
type ApproveRequest struct {
	Note string `json:"note" binding:"omitempty,max=2000"`
}

// RejectRequest representa a requisição de rejeição.
// O motivo vazio é rejeitado pelo serviço de moderação, não pelo binding,
// para que a regra viva junto do fluxo de transição.
type RejectRequest struct {
	Reason string `json:"reason" binding:"max=2000"`
}

// ListSubmissionsQuery representa os filtros de listagem
type ListSubmissionsQuery struct {
	Status   string `form:"status" binding:"omitempty,submissionstatus"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ReviewNoteResponse representa uma nota de revisão na resposta
type ReviewNoteResponse struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"author_id"`
	Content   string    `json:"content"`
	Severity  string    `json:"severity"`
	Resolved  bool      `json:"resolved"`
	CreatedAt time.Time `json:"created_at"`
}

// SubmissionResponse representa uma submissão na resposta
type SubmissionResponse struct {
	ID            string               `json:"id"`
	DeveloperID   string               `json:"developer_id"`
	Title         string               `json:"title"`
	Description   string               `json:"description,omitempty"`
	Tags          []string             `json:"tags,omitempty"`
	CategoryID    *string              `json:"category_id,omitempty"`
	ThumbnailPath *string              `json:"thumbnail_path,omitempty"`
	Status        string               `json:"status"`
	Version       int                  `json:"version"`
	SubmittedAt   *time.Time           `json:"submitted_at,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
	Notes         []ReviewNoteResponse `json:"notes,omitempty"`
}

// PlayURLResponse representa a URL assinada de acesso ao jogo
type PlayURLResponse struct {
	URL string `json:"url"`
}

// ToSubmissionResponse converte uma entidade GameSubmission para SubmissionResponse
func ToSubmissionResponse(submission *entities.GameSubmission) SubmissionResponse {
	notes := make([]ReviewNoteResponse, len(submission.Notes))
	for i, note := range submission.Notes {
		notes[i] = ReviewNoteResponse{
			ID:        note.ID,
			AuthorID:  note.AuthorID,
			Content:   note.Content,
			Severity:  string(note.Severity),
			Resolved:  note.Resolved,
			CreatedAt: note.CreatedAt,
		}
	}

	return SubmissionResponse{
		ID:            submission.ID,
		DeveloperID:   submission.DeveloperID,
		Title:         submission.Title,
		Description:   submission.Description,
		Tags:          submission.Tags,
		CategoryID:    submission.CategoryID,
		ThumbnailPath: submission.ThumbnailPath,
		Status:        string(submission.Status),
		Version:       submission.Version,
		SubmittedAt:   submission.SubmittedAt,
		CreatedAt:     submission.CreatedAt,
		UpdatedAt:     submission.UpdatedAt,
		Notes:         notes,
	}
}

// ToSubmissionResponses converte uma lista de submissões
func ToSubmissionResponses(submissions []*entities.GameSubmission) []SubmissionResponse {
	responses := make([]SubmissionResponse, len(submissions))
	for i, submission := range submissions {
		responses[i] = ToSubmissionResponse(submission)
	}
	return responses
}
