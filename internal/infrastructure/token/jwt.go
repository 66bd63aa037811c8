package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rafabene/gamehub-backend/internal/domain/entities"
	apperrors "github.com/rafabene/gamehub-backend/internal/domain/errors"
	"github.com/rafabene/gamehub-backend/internal/domain/ports"
)

// Claims são as claims do token de acesso
type Claims struct {
	Role     string `json:"role"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// JWTManager implementa ports.TokenManager usando HMAC-SHA256
type JWTManager struct {
	secret []byte
	expiry time.Duration
}

// NewJWTManager cria um novo JWTManager
func NewJWTManager(secret string, expiry time.Duration) ports.TokenManager {
	if expiry <= 0 {
		expiry = 24 * time.Hour
	}
	return &JWTManager{
		secret: []byte(secret),
		expiry: expiry,
	}
}

// Generate emite um token de acesso para o usuário
func (m *JWTManager) Generate(user *entities.User) (string, time.Time, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(m.expiry)

	claims := Claims{
		Role:     string(user.Role),
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, expiresAt, nil
}

// Parse valida o token e retorna o Actor correspondente.
// Token inválido, expirado ou com role fora da enumeração resulta em
// ErrUnauthorized (fail-closed).
func (m *JWTManager) Parse(tokenString string) (*entities.Actor, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperrors.ErrUnauthorized
	}

	role := entities.Role(claims.Role)
	if claims.Subject == "" || !role.IsValid() {
		return nil, apperrors.ErrUnauthorized
	}

	return &entities.Actor{
		ID:       claims.Subject,
		Role:     role,
		Username: claims.Username,
	}, nil
}
