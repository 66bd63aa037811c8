package entities

import (
	"time"

	apperrors "github.com/rafabene/gamehub-backend/internal/domain/errors"
)

// Status representa o estado de uma submissão no ciclo de moderação
type Status string

const (
	StatusDraft     Status = "draft"
	StatusSubmitted Status = "submitted"
	StatusInReview  Status = "in_review"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusPublished Status = "published"
)

// IsValid verifica se o status pertence à enumeração fechada
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusSubmitted, StatusInReview,
		StatusApproved, StatusRejected, StatusPublished:
		return true
	}
	return false
}

// statusTransitions define o grafo de transições legais.
// Qualquer par (origem, destino) fora deste mapa é ilegal.
// Published é terminal; remoção é deleção, não transição.
var statusTransitions = map[Status][]Status{
	StatusDraft:     {StatusSubmitted},
	StatusSubmitted: {StatusInReview},
	StatusInReview:  {StatusApproved, StatusRejected},
	StatusApproved:  {StatusPublished},
	StatusRejected:  {StatusDraft},
	StatusPublished: {},
}

// CanTransitionTo verifica se a transição é legal a partir deste status.
// Status desconhecido não transiciona para nada (fail-closed).
func (s Status) CanTransitionTo(target Status) bool {
	for _, t := range statusTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// Severity representa a gravidade de uma nota de revisão
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// IsValid verifica se a severidade é conhecida
func (s Severity) IsValid() bool {
	switch s {
	case SeverityInfo, SeverityWarning, SeverityCritical:
		return true
	}
	return false
}

// ReviewNote é uma nota de auditoria anexada a uma submissão.
// Imutável após criada; a trilha é append-only.
type ReviewNote struct {
	ID        string
	AuthorID  string
	Content   string
	Severity  Severity
	Resolved  bool
	CreatedAt time.Time
}

// GameSubmission representa o jogo de um desenvolvedor no fluxo de moderação.
// Metadados (título, descrição, tags, categoria) são opacos para o fluxo;
// PackagePath e ThumbnailPath são caminhos opacos no blob store.
type GameSubmission struct {
	ID            string
	DeveloperID   string
	Title         string
	Description   string
	Tags          []string
	CategoryID    *string
	PackagePath   string
	ThumbnailPath *string
	Status        Status
	Version       int
	SubmittedAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Notes         []ReviewNote
}

// NewGameSubmission cria uma submissão no estado inicial Draft
func NewGameSubmission(id, developerID, title string) *GameSubmission {
	now := time.Now().UTC()
	return &GameSubmission{
		ID:          id,
		DeveloperID: developerID,
		Title:       title,
		Status:      StatusDraft,
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// CanTransition verifica se a submissão pode transicionar para o status alvo
func (g *GameSubmission) CanTransition(target Status) bool {
	return g.Status.CanTransitionTo(target)
}

// Transition aplica a transição de status, com os efeitos associados:
// Draft→Submitted registra o timestamp de submissão; Rejected→Draft
// incrementa a versão para ressubmissão. Transição ilegal retorna
// TransitionError com o status atual; o estado não é alterado.
func (g *GameSubmission) Transition(target Status) error {
	if !g.CanTransition(target) {
		return apperrors.NewTransitionError(string(g.Status), string(target))
	}

	now := time.Now().UTC()

	switch {
	case g.Status == StatusDraft && target == StatusSubmitted:
		g.SubmittedAt = &now
	case g.Status == StatusRejected && target == StatusDraft:
		g.Version++
	}

	g.Status = target
	g.UpdatedAt = now
	return nil
}

// AppendNote anexa uma nota de revisão à trilha de auditoria
func (g *GameSubmission) AppendNote(note ReviewNote) {
	g.Notes = append(g.Notes, note)
}

// IsOwnedBy verifica se o desenvolvedor é o dono da submissão
func (g *GameSubmission) IsOwnedBy(userID string) bool {
	return g.DeveloperID == userID
}
