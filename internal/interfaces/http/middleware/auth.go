package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	domainerrors "moto-club.backend/internal/domain/errors"
	"moto-club.backend/internal/interfaces/http/response"
	"moto-club.backend/pkg/jwt"
	"moto-club.backend/pkg/logger"
	"moto-club.backend/pkg/redis"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// SessionHeader names a Redis-backed login session
	SessionHeader = "X-Session-Id"
	// UserIDKey is the context key for user ID
	UserIDKey = "userId"
	// UserEmailKey is the context key for user email
	UserEmailKey = "userEmail"
	// IsAdminKey is the context key for the admin flag
	IsAdminKey = "isAdmin"
)

// SessionReader resolves a session id to its stored tokens.
type SessionReader interface {
	GetSession(ctx context.Context, sessionID string) (*redis.SessionData, error)
}

// AuthMiddleware resolves the caller from a bearer token or a session id.
// Every route behind it rejects anonymous requests.
func AuthMiddleware(verifier jwt.TokenVerifier, sessions SessionReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := extractToken(c, sessions)
		if err != nil {
			logger.Warn(c.Request.Context(), "Authentication failed",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
			)
			abortWith(c, err)
			return
		}

		claims, err := verifier.ValidateToken(tokenString)
		if err != nil {
			logger.Warn(c.Request.Context(), "Token rejected",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
			)
			if errors.Is(err, jwt.ErrExpiredToken) {
				abortWith(c, domainerrors.Wrap(domainerrors.Unauthorized("Token has expired."), domainerrors.ErrTokenExpired))
				return
			}
			abortWith(c, domainerrors.Unauthorized("Invalid token."))
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UserEmailKey, claims.Email)
		c.Set(IsAdminKey, claims.IsAdmin)

		ctx := context.WithValue(c.Request.Context(), logger.UserIDKey, claims.UserID.String())
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func extractToken(c *gin.Context, sessions SessionReader) (string, error) {
	if sessionID := c.GetHeader(SessionHeader); sessionID != "" && sessions != nil {
		session, err := sessions.GetSession(c.Request.Context(), sessionID)
		if err != nil {
			if errors.Is(err, redis.ErrSessionNotFound) {
				return "", domainerrors.Unauthorized("Session not found or expired.")
			}
			return "", domainerrors.Wrap(domainerrors.Unauthorized("Session lookup failed."), err)
		}
		return session.AccessToken, nil
	}

	authHeader := c.GetHeader(AuthorizationHeader)
	if authHeader == "" {
		return "", domainerrors.Unauthorized("Authorization header is required.")
	}
	if !strings.HasPrefix(authHeader, BearerPrefix) {
		return "", domainerrors.Unauthorized("Invalid authorization format. Use: Bearer <token>")
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, BearerPrefix))
	if token == "" {
		return "", domainerrors.Unauthorized("Authorization header is required.")
	}
	return token, nil
}

func abortWith(c *gin.Context, err error) {
	response.Error(c, err)
	c.Abort()
}

// GetUserID gets the user ID from context
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := userID.(uuid.UUID)
	return id, ok
}

// GetUserEmail gets the user email from context
func GetUserEmail(c *gin.Context) (string, bool) {
	email, exists := c.Get(UserEmailKey)
	if !exists {
		return "", false
	}
	s, ok := email.(string)
	return s, ok
}

// IsAdmin reports the admin flag of the authenticated caller.
func IsAdmin(c *gin.Context) bool {
	return c.GetBool(IsAdminKey)
}

// RequireAdmin rejects callers whose token does not carry the admin flag
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetUserID(c); !ok {
			abortWith(c, domainerrors.Unauthorized("Authentication required."))
			return
		}
		if !IsAdmin(c) {
			abortWith(c, domainerrors.Forbidden("Admin access required."))
			return
		}
		c.Next()
	}
}
