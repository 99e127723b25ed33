package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNewRouter(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	assert.NotNil(t, r)
	assert.Equal(t, "v1", r.apiVersion)
	assert.Empty(t, r.registrars)
}

func TestRouterWithAPIVersion(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithAPIVersion("v2"))

	assert.Equal(t, "v2", r.apiVersion)
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithAPIVersion("v1"))

	group := NewDomainGroup("directory", "/employees")
	group.GET("", func(c *gin.Context) {
		c.String(http.StatusOK, "listed")
	})

	r.Register(group)
	r.Setup()

	req := httptest.NewRequest("GET", "/api/v1/employees", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "listed", w.Body.String())
}

func TestRouterMiddleware(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	r.Use(func(c *gin.Context) {
		c.Header("X-Marker", "present")
		c.Next()
	})

	group := NewDomainGroup("catalog", "/dependencies")
	group.GET("", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	r.Register(group).Setup()

	req := httptest.NewRequest("GET", "/api/v1/dependencies", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "present", w.Header().Get("X-Marker"))
}

func TestDomainGroup(t *testing.T) {
	t.Run("creates group with name and prefix", func(t *testing.T) {
		g := NewDomainGroup("projects", "/projects")
		assert.Equal(t, "projects", g.Name())
		assert.Equal(t, "/projects", g.Prefix())
	})

	t.Run("registers routes for each method", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("projects", "/projects")
		g.GET("/:id", func(c *gin.Context) { c.String(http.StatusOK, "got "+c.Param("id")) })
		g.POST("", func(c *gin.Context) { c.Status(http.StatusCreated) })
		g.PUT("/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
		g.DELETE("/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

		api := engine.Group("/api/v1")
		g.RegisterRoutes(api)

		cases := []struct {
			method string
			path   string
			status int
		}{
			{"GET", "/api/v1/projects/7", http.StatusOK},
			{"POST", "/api/v1/projects", http.StatusCreated},
			{"PUT", "/api/v1/projects/7", http.StatusOK},
			{"DELETE", "/api/v1/projects/7", http.StatusNoContent},
		}
		for _, tc := range cases {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)
			assert.Equal(t, tc.status, w.Code, "%s %s", tc.method, tc.path)
		}
	})

	t.Run("group middleware runs before routes", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("projects", "/projects")
		g.Use(func(c *gin.Context) {
			c.AbortWithStatus(http.StatusForbidden)
		})
		g.GET("", func(c *gin.Context) { c.Status(http.StatusOK) })

		api := engine.Group("/api/v1")
		g.RegisterRoutes(api)

		req := httptest.NewRequest("GET", "/api/v1/projects", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
