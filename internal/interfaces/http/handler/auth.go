package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/staffhub/backend/internal/application/identity"
	"github.com/staffhub/backend/internal/infrastructure/config"
	"github.com/staffhub/backend/internal/interfaces/http/dto"
	"github.com/staffhub/backend/internal/interfaces/http/middleware"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	BaseHandler
	authService *identity.AuthService
	cookieCfg   config.CookieConfig
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *identity.AuthService, cookieCfg config.CookieConfig) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cookieCfg:   cookieCfg,
	}
}

// Login authenticates an administrator, sets the session cookie and returns
// the signed-in user.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err, "Invalid request body")
		return
	}

	result, err := h.authService.Login(c.Request.Context(), identity.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.setSessionCookie(c, result.Session.Token, result.Session.ExpiresAt)
	h.Success(c, result)
}

// Me returns the current user, or null when unauthenticated.
func (h *AuthHandler) Me(c *gin.Context) {
	claims := middleware.GetSessionClaims(c)
	if claims == nil {
		h.Success(c, nil)
		return
	}

	user, err := h.authService.CurrentUser(c.Request.Context(), claims.UserID)
	if err != nil {
		// A stale session over an empty store reads as signed out.
		h.Success(c, nil)
		return
	}
	h.Success(c, user)
}

// Logout clears the session cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.clearSessionCookie(c)
	h.Success(c, gin.H{"message": "Logged out successfully"})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string, expiresAt time.Time) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     h.cookieCfg.Name,
		Value:    token,
		Path:     h.cookieCfg.Path,
		Domain:   h.cookieCfg.Domain,
		Expires:  expiresAt,
		MaxAge:   int(time.Until(expiresAt).Seconds()),
		Secure:   h.cookieCfg.Secure,
		HttpOnly: true,
		SameSite: sameSiteMode(h.cookieCfg.SameSite),
	})
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     h.cookieCfg.Name,
		Value:    "",
		Path:     h.cookieCfg.Path,
		Domain:   h.cookieCfg.Domain,
		MaxAge:   -1,
		Secure:   h.cookieCfg.Secure,
		HttpOnly: true,
		SameSite: sameSiteMode(h.cookieCfg.SameSite),
	})
}

func sameSiteMode(mode string) http.SameSite {
	switch mode {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
