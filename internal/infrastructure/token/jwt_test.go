package token

import (
	"errors"
	"testing"
	"time"

	"github.com/rafabene/gamehub-backend/internal/domain/entities"
	apperrors "github.com/rafabene/gamehub-backend/internal/domain/errors"
)

func TestJWTManager(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)

	user := &entities.User{
		ID:       "user-1",
		Username: "rafael",
		Role:     entities.RoleDeveloper,
	}

	t.Run("round-trip preserva identidade e role", func(t *testing.T) {
		signed, expiresAt, err := manager.Generate(user)
		if err != nil {
			t.Fatalf("esperava sucesso, obteve erro: %v", err)
		}
		if time.Until(expiresAt) <= 0 {
			t.Error("esperava expiração no futuro")
		}

		actor, err := manager.Parse(signed)
		if err != nil {
			t.Fatalf("esperava sucesso, obteve erro: %v", err)
		}
		if actor.ID != "user-1" {
			t.Errorf("esperava ID user-1, obteve %s", actor.ID)
		}
		if actor.Role != entities.RoleDeveloper {
			t.Errorf("esperava role developer, obteve %s", actor.Role)
		}
		if actor.Username != "rafael" {
			t.Errorf("esperava username rafael, obteve %s", actor.Username)
		}
	})

	t.Run("token adulterado é rejeitado com Unauthorized", func(t *testing.T) {
		signed, _, err := manager.Generate(user)
		if err != nil {
			t.Fatalf("esperava sucesso, obteve erro: %v", err)
		}

		if _, err := manager.Parse(signed + "x"); !errors.Is(err, apperrors.ErrUnauthorized) {
			t.Errorf("esperava ErrUnauthorized, obteve %v", err)
		}
	})

	t.Run("token de outra chave é rejeitado", func(t *testing.T) {
		other := NewJWTManager("other-secret", time.Hour)
		signed, _, err := other.Generate(user)
		if err != nil {
			t.Fatalf("esperava sucesso, obteve erro: %v", err)
		}

		if _, err := manager.Parse(signed); !errors.Is(err, apperrors.ErrUnauthorized) {
			t.Errorf("esperava ErrUnauthorized, obteve %v", err)
		}
	})

	t.Run("token expirado é rejeitado", func(t *testing.T) {
		expired := &JWTManager{secret: []byte("test-secret"), expiry: -time.Minute}
		signed, _, err := expired.Generate(user)
		if err != nil {
			t.Fatalf("esperava sucesso, obteve erro: %v", err)
		}

		if _, err := manager.Parse(signed); !errors.Is(err, apperrors.ErrUnauthorized) {
			t.Errorf("esperava ErrUnauthorized, obteve %v", err)
		}
	})

	t.Run("role fora da enumeração é rejeitado (fail-closed)", func(t *testing.T) {
		bogus := &entities.User{ID: "user-2", Username: "eve", Role: entities.Role("superuser")}
		signed, _, err := manager.Generate(bogus)
		if err != nil {
			t.Fatalf("esperava sucesso, obteve erro: %v", err)
		}

		if _, err := manager.Parse(signed); !errors.Is(err, apperrors.ErrUnauthorized) {
			t.Errorf("esperava ErrUnauthorized, obteve %v", err)
		}
	})

	t.Run("lixo não é token", func(t *testing.T) {
		if _, err := manager.Parse("not-a-token"); !errors.Is(err, apperrors.ErrUnauthorized) {
			t.Errorf("esperava ErrUnauthorized, obteve %v", err)
		}
	})
}
