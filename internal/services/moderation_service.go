package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rafabene/gamehub-backend/internal/domain/access"
	"github.com/rafabene/gamehub-backend/internal/domain/entities"
	apperrors "github.com/rafabene/gamehub-backend/internal/domain/errors"
	"github.com/rafabene/gamehub-backend/internal/domain/ports"
	"github.com/rafabene/gamehub-backend/internal/domain/repositories"
)

// ModerationService orquestra o ciclo de moderação de submissões.
// Cada operação corresponde a uma transição do grafo de status e segue
// a mesma sequência: carregar, validar legalidade, validar autoridade,
// aplicar transição e nota atomicamente, retornar a submissão atualizada.
// Efeitos colaterais ficam confinados à própria submissão; notificação e
// indexação de catálogo são responsabilidade de quem observa o retorno.
type ModerationService struct {
	submissionRepo repositories.SubmissionRepository
	uow            ports.UnitOfWork
	logger         ports.Logger
	timeout        time.Duration
}

// NewModerationService cria um novo ModerationService
func NewModerationService(
	submissionRepo repositories.SubmissionRepository,
	uow ports.UnitOfWork,
	logger ports.Logger,
	timeout time.Duration,
) *ModerationService {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &ModerationService{
		submissionRepo: submissionRepo,
		uow:            uow,
		logger:         logger,
		timeout:        timeout,
	}
}

// transitionSpec descreve uma transição: status alvo, autoridade exigida
// e a nota de revisão que a acompanha (obrigatória, opcional ou nenhuma)
type transitionSpec struct {
	target    entities.Status
	authorize func(actor *entities.Actor, sub *entities.GameSubmission) error
	note      func(actor *entities.Actor, sub *entities.GameSubmission) (*entities.ReviewNote, error)
}

// Submit move Draft → Submitted. Apenas o desenvolvedor dono.
func (s *ModerationService) Submit(ctx context.Context, actor *entities.Actor, submissionID string) (*entities.GameSubmission, error) {
	return s.applyTransition(ctx, actor, submissionID, transitionSpec{
		target:    entities.StatusSubmitted,
		authorize: requireOwningDeveloper,
	})
}

// StartReview move Submitted → InReview. Apenas administradores.
func (s *ModerationService) StartReview(ctx context.Context, actor *entities.Actor, submissionID string) (*entities.GameSubmission, error) {
	return s.applyTransition(ctx, actor, submissionID, transitionSpec{
		target:    entities.StatusInReview,
		authorize: requireModerator,
	})
}

// Approve move InReview → Approved. Apenas administradores.
// A nota é opcional; quando presente é registrada com severidade info.
func (s *ModerationService) Approve(ctx context.Context, actor *entities.Actor, submissionID, note string) (*entities.GameSubmission, error) {
	return s.applyTransition(ctx, actor, submissionID, transitionSpec{
		target:    entities.StatusApproved,
		authorize: requireModerator,
		note: func(actor *entities.Actor, _ *entities.GameSubmission) (*entities.ReviewNote, error) {
			content := strings.TrimSpace(note)
			if content == "" {
				return nil, nil
			}
			return newReviewNote(actor, content, entities.SeverityInfo), nil
		},
	})
}

// Reject move InReview → Rejected. Apenas administradores.
// Exige motivo não vazio, registrado como nota com severidade critical;
// motivo vazio falha com ErrValidationFailed sem alterar o status.
func (s *ModerationService) Reject(ctx context.Context, actor *entities.Actor, submissionID, reason string) (*entities.GameSubmission, error) {
	return s.applyTransition(ctx, actor, submissionID, transitionSpec{
		target:    entities.StatusRejected,
		authorize: requireModerator,
		note: func(actor *entities.Actor, _ *entities.GameSubmission) (*entities.ReviewNote, error) {
			content := strings.TrimSpace(reason)
			if content == "" {
				return nil, &apperrors.DomainError{
					Type:    apperrors.ProblemTypeValidation,
					Title:   "error.validation.title",
					Message: "error.rejection_reason_required",
					Err:     apperrors.ErrValidationFailed,
				}
			}
			return newReviewNote(actor, content, entities.SeverityCritical), nil
		},
	})
}

// Publish move Approved → Published. Apenas administradores.
// Tornar o jogo visível no catálogo é efeito do chamador ao observar
// o status retornado, não deste serviço.
func (s *ModerationService) Publish(ctx context.Context, actor *entities.Actor, submissionID string) (*entities.GameSubmission, error) {
	return s.applyTransition(ctx, actor, submissionID, transitionSpec{
		target:    entities.StatusPublished,
		authorize: requireModerator,
	})
}

// Resubmit move Rejected → Draft, incrementando a versão e preservando
// a trilha de notas. Apenas o desenvolvedor dono.
func (s *ModerationService) Resubmit(ctx context.Context, actor *entities.Actor, submissionID string) (*entities.GameSubmission, error) {
	return s.applyTransition(ctx, actor, submissionID, transitionSpec{
		target:    entities.StatusDraft,
		authorize: requireOwningDeveloper,
	})
}

// applyTransition executa a sequência load → legalidade → autoridade →
// aplicação atômica. Legalidade é verificada antes da autoridade para que
// transições ilegais sejam reportadas deterministicamente mesmo para
// actors autorizados. O par status+nota é persistido em uma única
// transação com check otimista sobre o status anterior; corrida perdida
// retorna ErrConflict e nenhuma mutação parcial fica observável.
func (s *ModerationService) applyTransition(ctx context.Context, actor *entities.Actor, submissionID string, spec transitionSpec) (*entities.GameSubmission, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	submission, err := s.submissionRepo.FindByID(ctx, submissionID)
	if err != nil {
		return nil, timeoutToUnavailable(err)
	}
	if submission == nil {
		return nil, apperrors.ErrSubmissionNotFound
	}

	if !submission.CanTransition(spec.target) {
		return nil, apperrors.NewTransitionError(string(submission.Status), string(spec.target))
	}

	if err := spec.authorize(actor, submission); err != nil {
		return nil, err
	}

	var note *entities.ReviewNote
	if spec.note != nil {
		note, err = spec.note(actor, submission)
		if err != nil {
			return nil, err
		}
	}

	priorStatus := submission.Status
	err = s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := submission.Transition(spec.target); err != nil {
			return err
		}
		if note != nil {
			submission.AppendNote(*note)
		}
		return s.submissionRepo.Save(txCtx, submission, priorStatus)
	})
	if err != nil {
		return nil, timeoutToUnavailable(err)
	}

	s.logger.Info("submission transition applied",
		"submission_id", submission.ID,
		"from", string(priorStatus),
		"to", string(submission.Status),
		"version", submission.Version,
		"actor_id", actor.ID,
	)

	return submission, nil
}

// timeoutToUnavailable traduz estouro do tempo limite em ErrUnavailable,
// mesmo quando o repositório propaga o erro de contexto cru. A transação
// abortada garante que nenhuma mutação parcial fica observável.
func timeoutToUnavailable(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return apperrors.ErrUnavailable
	}
	return err
}

// requireOwningDeveloper autoriza transições exclusivas do dono:
// precisa ser desenvolvedor, ter submit_games e ser o dono da submissão.
// Admins não submetem em nome de terceiros (o check de role exclui).
func requireOwningDeveloper(actor *entities.Actor, sub *entities.GameSubmission) error {
	if err := access.RequireRole(actor, entities.RoleDeveloper); err != nil {
		return err
	}
	if err := access.RequirePermission(actor, entities.PermissionSubmitGames); err != nil {
		return err
	}
	return access.RequireOwnership(actor, sub.DeveloperID)
}

// requireModerator autoriza transições administrativas
func requireModerator(actor *entities.Actor, _ *entities.GameSubmission) error {
	if err := access.RequireRole(actor, entities.RoleAdmin); err != nil {
		return err
	}
	return access.RequirePermission(actor, entities.PermissionModerateContent)
}

func newReviewNote(actor *entities.Actor, content string, severity entities.Severity) *entities.ReviewNote {
	return &entities.ReviewNote{
		ID:        uuid.NewString(),
		AuthorID:  actor.ID,
		Content:   content,
		Severity:  severity,
		CreatedAt: time.Now().UTC(),
	}
}
