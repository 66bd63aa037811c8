package services_test

import (
	"context"
	"errors"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rafabene/gamehub-backend/internal/domain/entities"
	apperrors "github.com/rafabene/gamehub-backend/internal/domain/errors"
	"github.com/rafabene/gamehub-backend/internal/domain/repositories"
	"github.com/rafabene/gamehub-backend/internal/services"
)

// fakeUserRepo é um repositório de usuários em memória indexado por email
type fakeUserRepo struct {
	byEmail map[string]*entities.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*entities.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *entities.User) error {
	r.byEmail[user.Email.String()] = user
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*entities.User, error) {
	for _, user := range r.byEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entities.User, error) {
	return r.byEmail[email], nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entities.User) error {
	r.byEmail[user.Email.String()] = user
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	for email, user := range r.byEmail {
		if user.ID == id {
			delete(r.byEmail, email)
		}
	}
	return nil
}

func (r *fakeUserRepo) List(_ context.Context, _ repositories.UserFilters) ([]*entities.User, error) {
	var out []*entities.User
	for _, user := range r.byEmail {
		out = append(out, user)
	}
	return out, nil
}

type fakeTokenManager struct{}

func (fakeTokenManager) Generate(user *entities.User) (string, time.Time, error) {
	return "token-" + user.ID, time.Now().Add(time.Hour), nil
}

func (fakeTokenManager) Parse(string) (*entities.Actor, error) {
	return nil, apperrors.ErrUnauthorized
}

var _ = Describe("AuthService", func() {
	var (
		ctx  context.Context
		repo *fakeUserRepo
		svc  *services.AuthService
	)

	BeforeEach(func() {
		ctx = context.Background()
		repo = newFakeUserRepo()
		svc = services.NewAuthService(repo, fakeTokenManager{}, noopLogger{})
	})

	Describe("Register", func() {
		It("cria uma conta de desenvolvedor", func() {
			user, err := svc.Register(ctx, services.RegisterInput{
				Email:    "dev@example.com",
				Username: "rafael",
				Password: "s3cret",
				Role:     entities.RoleDeveloper,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(user.Role).To(Equal(entities.RoleDeveloper))
			Expect(user.PasswordHash).NotTo(BeEmpty())
			Expect(user.PasswordHash).NotTo(ContainSubstring("s3cret"))
		})

		It("nega auto-registro de administrador", func() {
			_, err := svc.Register(ctx, services.RegisterInput{
				Email:    "root@example.com",
				Username: "root",
				Password: "s3cret",
				Role:     entities.RoleAdmin,
			})
			Expect(err).To(MatchError(apperrors.ErrValidationFailed))
		})

		It("nega email duplicado", func() {
			_, err := svc.Register(ctx, services.RegisterInput{
				Email:    "dev@example.com",
				Username: "rafael",
				Password: "s3cret",
				Role:     entities.RoleDeveloper,
			})
			Expect(err).NotTo(HaveOccurred())

			_, err = svc.Register(ctx, services.RegisterInput{
				Email:    "dev@example.com",
				Username: "outro",
				Password: "s3cret",
				Role:     entities.RolePlayer,
			})
			Expect(err).To(MatchError(apperrors.ErrEmailAlreadyExists))
		})

		It("entidade inválida falha com ErrValidationFailed, não erro interno", func() {
			_, err := svc.Register(ctx, services.RegisterInput{
				Email:    "dev@example.com",
				Username: "x",
				Password: "s3cret",
				Role:     entities.RoleDeveloper,
			})
			Expect(err).To(MatchError(apperrors.ErrValidationFailed))

			var domainErr *apperrors.DomainError
			Expect(errors.As(err, &domainErr)).To(BeTrue())
			Expect(domainErr.Type).To(Equal(apperrors.ProblemTypeValidation))
		})
	})

	Describe("Login", func() {
		BeforeEach(func() {
			_, err := svc.Register(ctx, services.RegisterInput{
				Email:    "dev@example.com",
				Username: "rafael",
				Password: "s3cret",
				Role:     entities.RoleDeveloper,
			})
			Expect(err).NotTo(HaveOccurred())
		})

		It("emite token para credenciais válidas", func() {
			out, err := svc.Login(ctx, "dev@example.com", "s3cret")
			Expect(err).NotTo(HaveOccurred())
			Expect(strings.HasPrefix(out.Token, "token-")).To(BeTrue())
			Expect(out.User.Email.String()).To(Equal("dev@example.com"))
		})

		It("nega senha incorreta com ErrInvalidCredentials", func() {
			_, err := svc.Login(ctx, "dev@example.com", "wrong")
			Expect(err).To(MatchError(apperrors.ErrInvalidCredentials))
		})

		It("nega conta inexistente com ErrInvalidCredentials", func() {
			_, err := svc.Login(ctx, "ghost@example.com", "s3cret")
			Expect(err).To(MatchError(apperrors.ErrInvalidCredentials))
		})

		It("nega conta removida", func() {
			user, err := repo.FindByEmail(ctx, "dev@example.com")
			Expect(err).NotTo(HaveOccurred())
			user.SoftDelete()

			_, err = svc.Login(ctx, "dev@example.com", "s3cret")
			Expect(err).To(MatchError(apperrors.ErrInvalidCredentials))
		})
	})
})
