package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// corsMiddleware lets a browser frontend on an allowed origin call the API.
// An empty allow list or "*" permits any origin.
func corsMiddleware(allowed []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		headers := c.Writer.Header()
		headers.Add("Vary", "Origin")
		if origin, ok := resolveOrigin(c.GetHeader("Origin"), allowed); ok {
			headers.Set("Access-Control-Allow-Origin", origin)
			headers.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			headers.Set("Access-Control-Allow-Headers", "Content-Type, "+requestIDHeader)
			headers.Set("Access-Control-Expose-Headers", requestIDHeader)
			headers.Set("Access-Control-Max-Age", "600")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func resolveOrigin(requestOrigin string, allowed []string) (string, bool) {
	if len(allowed) == 0 {
		return "*", true
	}
	for _, candidate := range allowed {
		if candidate == "*" {
			return "*", true
		}
		if requestOrigin != "" && strings.EqualFold(candidate, requestOrigin) {
			return requestOrigin, true
		}
	}
	return "", false
}
