package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffhub/backend/internal/infrastructure/persistence"
)

func TestDependencyCatalog(t *testing.T) {
	env := newTestEnv(t)
	admin := env.sessionToken(t, "admin-catalog", "admin")

	var entryID float64

	t.Run("create", func(t *testing.T) {
		w, envelope := env.do(t, http.MethodPost, "/api/v1/dependencies", requestOptions{
			token: admin,
			body: map[string]any{
				"name":             "Redis",
				"category":         "service",
				"version":          "7",
				"documentationUrl": "https://redis.io/docs",
			},
		})

		require.Equal(t, http.StatusCreated, w.Code)
		data := dataField(t, envelope)
		assert.Equal(t, "Redis", data["name"])
		assert.Equal(t, "service", data["category"])
		entryID = data["id"].(float64)
	})

	t.Run("create with an unknown category", func(t *testing.T) {
		w, _ := env.do(t, http.MethodPost, "/api/v1/dependencies", requestOptions{
			token: admin,
			body:  map[string]any{"name": "Thing", "category": "appliance"},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("list", func(t *testing.T) {
		w, envelope := env.do(t, http.MethodGet, "/api/v1/dependencies", requestOptions{token: admin})

		require.Equal(t, http.StatusOK, w.Code)
		require.Len(t, dataList(t, envelope), 1)
	})

	t.Run("update keeps unsent fields", func(t *testing.T) {
		path := fmt.Sprintf("/api/v1/dependencies/%.0f", entryID)
		w, envelope := env.do(t, http.MethodPut, path, requestOptions{
			token: admin,
			body:  map[string]any{"version": "7.2"},
		})

		require.Equal(t, http.StatusOK, w.Code)
		data := dataField(t, envelope)
		assert.Equal(t, "7.2", data["version"])
		assert.Equal(t, "Redis", data["name"])
	})

	t.Run("get missing id", func(t *testing.T) {
		w, envelope := env.do(t, http.MethodGet, "/api/v1/dependencies/4242", requestOptions{token: admin})

		assert.Equal(t, http.StatusNotFound, w.Code)
		errInfo := envelope["error"].(map[string]any)
		assert.Equal(t, "Dependência não encontrada", errInfo["message"])
	})

	t.Run("delete", func(t *testing.T) {
		path := fmt.Sprintf("/api/v1/dependencies/%.0f", entryID)
		w, _ := env.do(t, http.MethodDelete, path, requestOptions{token: admin})
		require.Equal(t, http.StatusOK, w.Code)

		w, _ = env.do(t, http.MethodGet, path, requestOptions{token: admin})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHealthEndpoint(t *testing.T) {
	t.Run("with storage", func(t *testing.T) {
		env := newTestEnv(t)

		w, envelope := env.do(t, http.MethodGet, "/health", requestOptions{})

		require.Equal(t, http.StatusOK, w.Code)
		data := dataField(t, envelope)
		assert.Equal(t, "healthy", data["status"])
		assert.Equal(t, "ok", data["database"])
	})

	t.Run("without storage", func(t *testing.T) {
		engine := gin.New()
		engine.GET("/health", NewSystemHandler(&persistence.Store{}).Health)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"database":"unavailable"`)
	})
}
