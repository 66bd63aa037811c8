package http

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// queryInt lê um query parameter inteiro com valor padrão
func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
