package services_test

import (
	"context"
	"errors"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rafabene/gamehub-backend/internal/domain/entities"
	apperrors "github.com/rafabene/gamehub-backend/internal/domain/errors"
	"github.com/rafabene/gamehub-backend/internal/domain/ports"
	"github.com/rafabene/gamehub-backend/internal/domain/repositories"
	"github.com/rafabene/gamehub-backend/internal/services"
)

// fakeSubmissionRepo é um repositório em memória com o mesmo check otimista
// do repositório real: Save só aplica se o status armazenado ainda for o
// esperado. O hook afterFind simula um escritor concorrente entre a leitura
// e a gravação; findDelay e saveErr simulam um backend lento ou indisponível.
type fakeSubmissionRepo struct {
	mu        sync.Mutex
	subs      map[string]*entities.GameSubmission
	afterFind func()
	findDelay time.Duration
	saveErr   error
}

func newFakeSubmissionRepo() *fakeSubmissionRepo {
	return &fakeSubmissionRepo{subs: make(map[string]*entities.GameSubmission)}
}

func (r *fakeSubmissionRepo) put(sub *entities.GameSubmission) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subs[sub.ID] = cloneSubmission(sub)
}

func (r *fakeSubmissionRepo) get(id string) *entities.GameSubmission {
	r.mu.Lock()
	defer r.mu.Unlock()
	return cloneSubmission(r.subs[id])
}

func (r *fakeSubmissionRepo) Create(_ context.Context, sub *entities.GameSubmission) error {
	r.put(sub)
	return nil
}

func (r *fakeSubmissionRepo) FindByID(ctx context.Context, id string) (*entities.GameSubmission, error) {
	if r.findDelay > 0 {
		select {
		case <-time.After(r.findDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	r.mu.Lock()
	sub := cloneSubmission(r.subs[id])
	r.mu.Unlock()

	if r.afterFind != nil {
		r.afterFind()
	}
	return sub, nil
}

func (r *fakeSubmissionRepo) Save(_ context.Context, sub *entities.GameSubmission, expectedPriorStatus entities.Status) error {
	if r.saveErr != nil {
		return r.saveErr
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.subs[sub.ID]
	if !ok || stored.Status != expectedPriorStatus {
		return apperrors.ErrConflict
	}
	r.subs[sub.ID] = cloneSubmission(sub)
	return nil
}

func (r *fakeSubmissionRepo) List(_ context.Context, _ repositories.SubmissionFilters) ([]*entities.GameSubmission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*entities.GameSubmission
	for _, sub := range r.subs {
		out = append(out, cloneSubmission(sub))
	}
	return out, nil
}

func cloneSubmission(sub *entities.GameSubmission) *entities.GameSubmission {
	if sub == nil {
		return nil
	}
	clone := *sub
	clone.Notes = append([]entities.ReviewNote(nil), sub.Notes...)
	return &clone
}

// fakeUnitOfWork executa a função diretamente, sem transação real
type fakeUnitOfWork struct{}

func (fakeUnitOfWork) Begin(ctx context.Context) (context.Context, error) { return ctx, nil }
func (fakeUnitOfWork) Commit(context.Context) error                       { return nil }
func (fakeUnitOfWork) Rollback(context.Context) error                     { return nil }
func (fakeUnitOfWork) WithTransaction(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

type noopLogger struct{}

func (l noopLogger) Info(string, ...any)      {}
func (l noopLogger) Error(string, ...any)     {}
func (l noopLogger) Debug(string, ...any)     {}
func (l noopLogger) Warn(string, ...any)      {}
func (l noopLogger) With(...any) ports.Logger { return l }

var _ = Describe("ModerationService", func() {
	var (
		ctx  context.Context
		repo *fakeSubmissionRepo
		svc  *services.ModerationService

		developer *entities.Actor
		otherDev  *entities.Actor
		admin     *entities.Actor
		player    *entities.Actor
	)

	seed := func(status entities.Status, version int) *entities.GameSubmission {
		sub := &entities.GameSubmission{
			ID:          "sub-1",
			DeveloperID: "dev-1",
			Title:       "Space Miner",
			Status:      status,
			Version:     version,
			CreatedAt:   time.Now().UTC(),
			UpdatedAt:   time.Now().UTC(),
		}
		repo.put(sub)
		return sub
	}

	BeforeEach(func() {
		ctx = context.Background()
		repo = newFakeSubmissionRepo()
		svc = services.NewModerationService(repo, fakeUnitOfWork{}, noopLogger{}, time.Second)

		developer = &entities.Actor{ID: "dev-1", Role: entities.RoleDeveloper}
		otherDev = &entities.Actor{ID: "dev-2", Role: entities.RoleDeveloper}
		admin = &entities.Actor{ID: "admin-1", Role: entities.RoleAdmin}
		player = &entities.Actor{ID: "player-1", Role: entities.RolePlayer}
	})

	Describe("ciclo de vida completo", func() {
		It("leva uma submissão de draft a published", func() {
			seed(entities.StatusDraft, 1)

			sub, err := svc.Submit(ctx, developer, "sub-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(sub.Status).To(Equal(entities.StatusSubmitted))
			Expect(sub.SubmittedAt).NotTo(BeNil())

			sub, err = svc.StartReview(ctx, admin, "sub-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(sub.Status).To(Equal(entities.StatusInReview))

			sub, err = svc.Approve(ctx, admin, "sub-1", "looks good")
			Expect(err).NotTo(HaveOccurred())
			Expect(sub.Status).To(Equal(entities.StatusApproved))
			Expect(sub.Notes).To(HaveLen(1))
			Expect(sub.Notes[0].Severity).To(Equal(entities.SeverityInfo))
			Expect(sub.Notes[0].AuthorID).To(Equal("admin-1"))

			sub, err = svc.Publish(ctx, admin, "sub-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(sub.Status).To(Equal(entities.StatusPublished))
			Expect(sub.Version).To(Equal(1))

			Expect(repo.get("sub-1").Status).To(Equal(entities.StatusPublished))
		})

		It("aprova sem nota quando o comentário é vazio", func() {
			seed(entities.StatusInReview, 1)

			sub, err := svc.Approve(ctx, admin, "sub-1", "   ")
			Expect(err).NotTo(HaveOccurred())
			Expect(sub.Status).To(Equal(entities.StatusApproved))
			Expect(sub.Notes).To(BeEmpty())
		})
	})

	Describe("Reject", func() {
		It("exige motivo não vazio e não altera o status", func() {
			seed(entities.StatusInReview, 1)

			_, err := svc.Reject(ctx, admin, "sub-1", "   ")
			Expect(err).To(MatchError(apperrors.ErrValidationFailed))

			stored := repo.get("sub-1")
			Expect(stored.Status).To(Equal(entities.StatusInReview))
			Expect(stored.Notes).To(BeEmpty())
		})

		It("registra o motivo como nota critical", func() {
			seed(entities.StatusInReview, 1)

			sub, err := svc.Reject(ctx, admin, "sub-1", "missing age rating")
			Expect(err).NotTo(HaveOccurred())
			Expect(sub.Status).To(Equal(entities.StatusRejected))
			Expect(sub.Notes).To(HaveLen(1))
			Expect(sub.Notes[0].Content).To(Equal("missing age rating"))
			Expect(sub.Notes[0].Severity).To(Equal(entities.SeverityCritical))
		})
	})

	Describe("Resubmit", func() {
		It("incrementa a versão e preserva o histórico de notas", func() {
			seed(entities.StatusInReview, 1)

			_, err := svc.Reject(ctx, admin, "sub-1", "broken package")
			Expect(err).NotTo(HaveOccurred())

			sub, err := svc.Resubmit(ctx, developer, "sub-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(sub.Status).To(Equal(entities.StatusDraft))
			Expect(sub.Version).To(Equal(2))
			Expect(sub.Notes).To(HaveLen(1))
		})

		It("nega resubmissão por desenvolvedor que não é o dono", func() {
			seed(entities.StatusRejected, 1)

			_, err := svc.Resubmit(ctx, otherDev, "sub-1")
			Expect(err).To(MatchError(apperrors.ErrForbidden))
			Expect(repo.get("sub-1").Status).To(Equal(entities.StatusRejected))
		})
	})

	Describe("autoridade", func() {
		It("nega Submit a um player", func() {
			seed(entities.StatusDraft, 1)

			_, err := svc.Submit(ctx, player, "sub-1")
			Expect(err).To(MatchError(apperrors.ErrForbidden))
			Expect(repo.get("sub-1").Status).To(Equal(entities.StatusDraft))
		})

		It("nega Approve a um desenvolvedor, mesmo o dono", func() {
			seed(entities.StatusInReview, 1)

			_, err := svc.Approve(ctx, developer, "sub-1", "self approval")
			Expect(err).To(MatchError(apperrors.ErrForbidden))
			Expect(repo.get("sub-1").Status).To(Equal(entities.StatusInReview))
		})

		It("nega Submit a um admin em nome do desenvolvedor", func() {
			seed(entities.StatusDraft, 1)

			_, err := svc.Submit(ctx, admin, "sub-1")
			Expect(err).To(MatchError(apperrors.ErrForbidden))
		})

		It("falha com Unauthorized sem actor", func() {
			seed(entities.StatusSubmitted, 1)

			_, err := svc.StartReview(ctx, nil, "sub-1")
			Expect(err).To(MatchError(apperrors.ErrUnauthorized))
		})
	})

	Describe("legalidade da transição", func() {
		It("reporta transição ilegal antes de checar autoridade", func() {
			seed(entities.StatusDraft, 1)

			// Um player jamais poderia aprovar, mas o erro determinístico
			// é o de transição, pois draft não aprova
			_, err := svc.Approve(ctx, player, "sub-1", "")
			Expect(err).To(MatchError(apperrors.ErrInvalidTransition))

			var transitionErr *apperrors.TransitionError
			Expect(errors.As(err, &transitionErr)).To(BeTrue())
			Expect(transitionErr.CurrentStatus).To(Equal("draft"))
			Expect(transitionErr.RequestedStatus).To(Equal("approved"))
		})

		It("nega publicar uma submissão ainda em revisão", func() {
			seed(entities.StatusInReview, 1)

			_, err := svc.Publish(ctx, admin, "sub-1")
			Expect(err).To(MatchError(apperrors.ErrInvalidTransition))
			Expect(repo.get("sub-1").Status).To(Equal(entities.StatusInReview))
		})
	})

	Describe("concorrência otimista", func() {
		It("corrida perdida retorna ErrConflict sem mutação parcial", func() {
			seed(entities.StatusInReview, 1)

			// Escritor concorrente rejeita entre a leitura e a gravação
			repo.afterFind = func() {
				repo.afterFind = nil
				stored := repo.get("sub-1")
				Expect(stored.Transition(entities.StatusRejected)).To(Succeed())
				repo.put(stored)
			}

			_, err := svc.Approve(ctx, admin, "sub-1", "")
			Expect(err).To(MatchError(apperrors.ErrConflict))

			stored := repo.get("sub-1")
			Expect(stored.Status).To(Equal(entities.StatusRejected))
			Expect(stored.Notes).To(BeEmpty())
		})
	})

	Describe("tempo limite", func() {
		It("carga que excede o tempo limite falha com ErrUnavailable", func() {
			seed(entities.StatusInReview, 1)
			repo.findDelay = 200 * time.Millisecond
			svc = services.NewModerationService(repo, fakeUnitOfWork{}, noopLogger{}, 20*time.Millisecond)

			_, err := svc.Approve(ctx, admin, "sub-1", "")
			Expect(err).To(MatchError(apperrors.ErrUnavailable))

			stored := repo.get("sub-1")
			Expect(stored.Status).To(Equal(entities.StatusInReview))
			Expect(stored.Notes).To(BeEmpty())
		})

		It("gravação que estoura o tempo limite falha com ErrUnavailable sem mutação parcial", func() {
			seed(entities.StatusInReview, 1)
			// Repositório propagando o erro de contexto cru, sem traduzir
			repo.saveErr = context.DeadlineExceeded

			_, err := svc.Reject(ctx, admin, "sub-1", "missing age rating")
			Expect(err).To(MatchError(apperrors.ErrUnavailable))

			stored := repo.get("sub-1")
			Expect(stored.Status).To(Equal(entities.StatusInReview))
			Expect(stored.Notes).To(BeEmpty())
		})
	})

	Describe("submissão inexistente", func() {
		It("retorna ErrSubmissionNotFound", func() {
			_, err := svc.Submit(ctx, developer, "nope")
			Expect(err).To(MatchError(apperrors.ErrSubmissionNotFound))
		})
	})
})
