package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// The API is JSON-only and authenticates with a bearer token, so the
// header and method lists stay narrow.
const (
	corsAllowedHeaders = "Authorization, Content-Type, Accept, Origin"
	corsAllowedMethods = "GET, POST, DELETE, OPTIONS"
	corsMaxAge         = "3600"
)

// CORS returns a middleware that answers cross-origin requests for the
// configured origins. Origins not on the list get no CORS headers at all,
// which makes the browser reject the response.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" && originAllowed(origin, allowedOrigins) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Headers", corsAllowedHeaders)
			c.Header("Access-Control-Allow-Methods", corsAllowedMethods)
			c.Header("Access-Control-Max-Age", corsMaxAge)
			c.Header("Vary", "Origin")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func originAllowed(origin string, allowedOrigins []string) bool {
	for _, allowed := range allowedOrigins {
		if strings.EqualFold(origin, allowed) {
			return true
		}
	}
	return false
}

// SecurityHeaders hardens the JSON API responses. The content security
// policy can stay maximally strict because nothing here serves HTML.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "no-referrer")
		c.Header("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		c.Header("Cache-Control", "no-store")

		c.Next()
	}
}
