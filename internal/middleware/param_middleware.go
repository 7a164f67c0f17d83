package middleware

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Ключи контекста Gin
const (
	SessionIDKey = "sessionID"
	IndexKey     = "index"
)

// ExtractIndexParam создает middleware для извлечения неотрицательного индекса из URL.
// Значение сохраняется в контексте Gin как int под ключом contextKey.
func ExtractIndexParam(paramName, contextKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		idx, err := strconv.Atoi(c.Param(paramName))
		if err != nil || idx < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid %s", paramName)})
			c.Abort()
			return
		}
		c.Set(contextKey, idx)
		c.Next()
	}
}

// ExtractSessionID создает middleware для проверки UUID игровой сессии в URL
func ExtractSessionID(paramName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param(paramName))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid %s", paramName)})
			c.Abort()
			return
		}
		c.Set(SessionIDKey, id.String())
		c.Next()
	}
}
