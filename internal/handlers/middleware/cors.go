package middleware

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS configura CORS para a aplicação.
// allowedOrigins é uma lista separada por vírgula; vazio libera tudo
// (apenas conveniente em desenvolvimento).
func CORS(allowedOrigins string) gin.HandlerFunc {
	config := cors.DefaultConfig()
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "Accept-Language"}
	config.MaxAge = 12 * time.Hour

	if allowedOrigins == "" {
		config.AllowAllOrigins = true
		return cors.New(config)
	}

	origins := strings.Split(allowedOrigins, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	config.AllowOrigins = origins
	config.AllowCredentials = true

	return cors.New(config)
}
