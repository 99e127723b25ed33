package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffhub/backend/internal/infrastructure/auth"
	"github.com/staffhub/backend/internal/infrastructure/config"
)

func newTestRouter(jwtService *auth.JWTService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(SessionAuth(DefaultSessionConfig(jwtService, "staffhub_session")))

	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/api/v1/auth/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetSessionUserID(c)})
	})
	r.GET("/api/v1/employees", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"role": GetSessionRole(c)})
	})
	r.DELETE("/api/v1/employees/1", RequireRole("admin"), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func issueToken(t *testing.T, svc *auth.JWTService, role string) string {
	t.Helper()
	session, err := svc.GenerateSession(auth.GenerateSessionInput{
		UserID: 7,
		OpenID: "admin-someone",
		Role:   role,
	})
	require.NoError(t, err)
	return session.Token
}

func TestSessionAuth(t *testing.T) {
	svc := auth.NewJWTService(config.JWTConfig{
		Secret:     "test-secret-at-least-32-characters!!",
		Expiration: time.Hour,
		Issuer:     "staffhub-test",
	})
	router := newTestRouter(svc)

	t.Run("skip paths stay reachable without a token", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("protected route rejects missing token", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/employees", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("protected route rejects garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/employees", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("cookie token is accepted", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/employees", nil)
		req.AddCookie(&http.Cookie{Name: "staffhub_session", Value: issueToken(t, svc, "user")})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"role":"user"`)
	})

	t.Run("bearer token is accepted", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/employees", nil)
		req.Header.Set("Authorization", "Bearer "+issueToken(t, svc, "user"))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("claims attach on skipped paths when the token is valid", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
		req.AddCookie(&http.Cookie{Name: "staffhub_session", Value: issueToken(t, svc, "user")})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"user_id":7`)
	})
}

func TestRequireRole(t *testing.T) {
	svc := auth.NewJWTService(config.JWTConfig{
		Secret:     "test-secret-at-least-32-characters!!",
		Expiration: time.Hour,
		Issuer:     "staffhub-test",
	})
	router := newTestRouter(svc)

	t.Run("non-admin session is forbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/employees/1", nil)
		req.Header.Set("Authorization", "Bearer "+issueToken(t, svc, "user"))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin session passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/employees/1", nil)
		req.Header.Set("Authorization", "Bearer "+issueToken(t, svc, "admin"))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}
