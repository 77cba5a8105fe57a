package middlewares

import (
	"crypto/subtle"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

// APIKeyMiddleware validates the X-API-Key header against the configured
// key using a constant-time comparison.
func APIKeyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := os.Getenv("API_KEY")
		if apiKey == "" {
			apiKey = "dev-api-key"
		}

		header := c.Request.Header.Get("X-API-Key")
		if subtle.ConstantTimeCompare([]byte(header), []byte(apiKey)) != 1 {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"code": "UNAUTHORIZED", "message": "invalid api key"},
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
