package http

import (
	nethttp "net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/finanza-app/finanza-backend/pkg/logger"
)

const userIDKey = "user_id"

// AuthRequired validates the authorization token on every API request.
// If the token is missing or invalid, it aborts with 401.
// Session management proper lives in the external identity provider; this
// gate mirrors the static-token model used during development.
func AuthRequired(validToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		token = strings.TrimPrefix(token, "Bearer ")

		if token == "" {
			c.AbortWithStatusJSON(nethttp.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}

		if token != validToken {
			c.AbortWithStatusJSON(nethttp.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Next()
	}
}

// UserScope resolves the acting user from the X-User-ID header set by the
// identity layer in front of this service. Every repository call is scoped
// by it.
func UserScope() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("X-User-ID")
		userID, err := uuid.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(nethttp.StatusBadRequest, gin.H{"error": "missing or invalid X-User-ID header"})
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// RequestLogger logs one line per request with latency and status
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Infow("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start).String(),
		)
	}
}

// CORS applies the configured allowed origins
func CORS(allowedOrigins []string) gin.HandlerFunc {
	allowAll := false
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		if origin == "*" {
			allowAll = true
		}
		allowed[origin] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && (allowAll || allowed[origin]) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-User-ID")
		}

		if c.Request.Method == nethttp.MethodOptions {
			c.AbortWithStatus(nethttp.StatusNoContent)
			return
		}

		c.Next()
	}
}

// userID returns the acting user set by UserScope
func userID(c *gin.Context) uuid.UUID {
	return c.MustGet(userIDKey).(uuid.UUID)
}
