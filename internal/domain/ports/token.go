package ports

import (
	"time"

	"github.com/rafabene/gamehub-backend/internal/domain/entities"
)

// TokenManager define a interface para emissão e validação de tokens de acesso
type TokenManager interface {
	Generate(user *entities.User) (token string, expiresAt time.Time, err error)
	Parse(token string) (*entities.Actor, error)
}
