package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/staffhub/backend/internal/infrastructure/auth"
	"github.com/staffhub/backend/internal/interfaces/http/dto"
)

// Session context keys
const (
	SessionClaimsKey = "session_claims"
	SessionUserIDKey = "session_user_id"
	SessionOpenIDKey = "session_open_id"
	SessionRoleKey   = "session_role"
	AuthHeaderKey    = "Authorization"
	BearerPrefix     = "Bearer "
)

// SessionConfig holds configuration for the session middleware
type SessionConfig struct {
	// JWTService is required for token validation
	JWTService *auth.JWTService
	// CookieName is the session cookie checked before the Authorization header
	CookieName string
	// SkipPaths are paths that don't require an authenticated session.
	// Claims are still attached to the context when a valid token is present.
	SkipPaths []string
	// Logger for middleware logging
	Logger *zap.Logger
}

// DefaultSessionConfig returns the default session middleware configuration
func DefaultSessionConfig(jwtService *auth.JWTService, cookieName string) SessionConfig {
	return SessionConfig{
		JWTService: jwtService,
		CookieName: cookieName,
		SkipPaths: []string{
			"/health",
			"/api/v1/auth/login",
			"/api/v1/auth/logout",
			"/api/v1/auth/me",
		},
	}
}

// SessionAuth creates session authentication middleware. The session token
// is read from the configured cookie, with the Authorization bearer header as
// fallback.
func SessionAuth(cfg SessionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractSessionToken(c, cfg.CookieName)

		var claims *auth.SessionClaims
		var validateErr error
		if token != "" {
			claims, validateErr = cfg.JWTService.ValidateSession(token)
			if validateErr == nil {
				setSessionContext(c, claims)
			}
		}

		if pathSkipped(c.Request.URL.Path, cfg.SkipPaths) {
			c.Next()
			return
		}

		if token == "" {
			abortUnauthorized(c, cfg, nil, "Missing session token")
			return
		}
		if validateErr != nil {
			abortUnauthorized(c, cfg, validateErr, "Session validation failed")
			return
		}

		c.Next()
	}
}

// RequireRole creates middleware that rejects sessions without the given
// role. It must run after SessionAuth.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetSessionClaims(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(dto.ErrCodeUnauthorized, "Authentication required"))
			return
		}
		if claims.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.ErrCodeForbidden, "Insufficient role for this operation"))
			return
		}
		c.Next()
	}
}

func extractSessionToken(c *gin.Context, cookieName string) string {
	if cookieName != "" {
		if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
			return cookie
		}
	}
	authHeader := c.GetHeader(AuthHeaderKey)
	if strings.HasPrefix(authHeader, BearerPrefix) {
		return strings.TrimPrefix(authHeader, BearerPrefix)
	}
	return ""
}

func pathSkipped(path string, skipPaths []string) bool {
	for _, skip := range skipPaths {
		if path == skip {
			return true
		}
	}
	return false
}

func setSessionContext(c *gin.Context, claims *auth.SessionClaims) {
	c.Set(SessionClaimsKey, claims)
	c.Set(SessionUserIDKey, claims.UserID)
	c.Set(SessionOpenIDKey, claims.OpenID)
	c.Set(SessionRoleKey, claims.Role)
}

func abortUnauthorized(c *gin.Context, cfg SessionConfig, err error, message string) {
	if cfg.Logger != nil {
		cfg.Logger.Warn("Session authentication failed",
			zap.Error(err),
			zap.String("message", message),
			zap.String("path", c.Request.URL.Path),
		)
	}

	code := dto.ErrCodeUnauthorized
	errMessage := "Authentication required"
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		code = dto.ErrCodeTokenExpired
		errMessage = "Session has expired"
	case err != nil:
		code = dto.ErrCodeTokenInvalid
		errMessage = "Invalid session token"
	}

	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(code, errMessage))
}

// GetSessionClaims retrieves session claims from gin.Context
func GetSessionClaims(c *gin.Context) *auth.SessionClaims {
	if claims, exists := c.Get(SessionClaimsKey); exists {
		if sessionClaims, ok := claims.(*auth.SessionClaims); ok {
			return sessionClaims
		}
	}
	return nil
}

// GetSessionUserID retrieves the user ID from session claims in context.
// Returns zero when unauthenticated.
func GetSessionUserID(c *gin.Context) uint {
	if userID, exists := c.Get(SessionUserIDKey); exists {
		if id, ok := userID.(uint); ok {
			return id
		}
	}
	return 0
}

// GetSessionRole retrieves the role from session claims in context
func GetSessionRole(c *gin.Context) string {
	if role, exists := c.Get(SessionRoleKey); exists {
		if r, ok := role.(string); ok {
			return r
		}
	}
	return ""
}
