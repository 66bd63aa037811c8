package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/gamehub-backend/internal/domain/entities"
	"github.com/rafabene/gamehub-backend/internal/domain/ports"
)

const (
	// ActorContextKey é a chave usada para armazenar o actor autenticado
	// no contexto do Gin
	ActorContextKey = "actor"
)

// AuthMiddleware extrai e valida o token Bearer das requisições
type AuthMiddleware struct {
	tokenManager ports.TokenManager
	logger       ports.Logger
}

// NewAuthMiddleware cria um novo middleware de autenticação
func NewAuthMiddleware(tokenManager ports.TokenManager, logger ports.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		tokenManager: tokenManager,
		logger:       logger,
	}
}

// RequireAuth exige um token Bearer válido e injeta o Actor no contexto.
// Token ausente ou inválido responde 401 sem chamar o handler.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := m.actorFromRequest(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"type":   "/problems/unauthorized",
				"title":  http.StatusText(http.StatusUnauthorized),
				"status": http.StatusUnauthorized,
			})
			return
		}

		c.Set(ActorContextKey, actor)
		c.Next()
	}
}

// OptionalAuth injeta o Actor quando há token válido, mas não bloqueia
// requisições anônimas (usado em endpoints públicos de catálogo)
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if actor, ok := m.actorFromRequest(c); ok {
			c.Set(ActorContextKey, actor)
		}
		c.Next()
	}
}

func (m *AuthMiddleware) actorFromRequest(c *gin.Context) (*entities.Actor, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return nil, false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, false
	}

	actor, err := m.tokenManager.Parse(strings.TrimSpace(parts[1]))
	if err != nil {
		m.logger.Debug("invalid access token", "error", err)
		return nil, false
	}

	return actor, true
}

// CurrentActor retorna o Actor autenticado do contexto, ou nil para
// requisições anônimas. Os guards de domínio tratam nil como
// não autenticado (fail-closed).
func CurrentActor(c *gin.Context) *entities.Actor {
	value, exists := c.Get(ActorContextKey)
	if !exists {
		return nil
	}

	actor, ok := value.(*entities.Actor)
	if !ok {
		return nil
	}
	return actor
}
