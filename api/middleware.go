package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/katryana/airport-api/internal/auth"
	"github.com/katryana/airport-api/internal/domain"
	"github.com/katryana/airport-api/internal/logger"
)

const identityKey = "api.identity"

// Authenticate resolves an optional bearer token into a caller identity. No
// token leaves the request anonymous; a present but invalid token is a 401
// regardless of what would be asked of it.
func Authenticate(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Authorization header must be: Bearer <token>."})
			return
		}

		ident, err := tokens.Verify(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Given token not valid for any token type."})
			return
		}

		c.Set(identityKey, ident)
		c.Next()
	}
}

func identityFrom(c *gin.Context) *auth.Identity {
	if v, ok := c.Get(identityKey); ok {
		if ident, ok := v.(*auth.Identity); ok {
			return ident
		}
	}
	return nil
}

// Guard applies one access policy to the read and write operations of a
// resource group.
type Guard struct {
	Read  gin.HandlerFunc
	Write gin.HandlerFunc
}

func NewGuard(policy auth.Policy) Guard {
	return Guard{
		Read:  require(policy, false),
		Write: require(policy, true),
	}
}

func require(policy auth.Policy, write bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := auth.Check(policy, identityFrom(c), write); err != nil {
			respondError(c, err)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAuth rejects anonymous callers; used for owner-scoped resources.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if identityFrom(c) == nil {
			respondError(c, domain.ErrUnauthorized)
			c.Abort()
			return
		}
		c.Next()
	}
}

func RateLimit(perSecond, burst int) gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Limit(perSecond), burst)
	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"detail": "Request was throttled."})
			return
		}
		c.Next()
	}
}

func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		line := "%s %s - %d (%s)"
		args := []interface{}{c.Request.Method, c.Request.URL.Path, status, time.Since(start)}
		switch {
		case status >= 500:
			log.Error("API", line, args...)
		case status >= 400:
			log.Warn("API", line, args...)
		default:
			log.Info("API", line, args...)
		}
	}
}
