package handler

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/staffhub/backend/internal/application/catalog"
	"github.com/staffhub/backend/internal/application/directory"
	"github.com/staffhub/backend/internal/application/identity"
	"github.com/staffhub/backend/internal/application/project"
	"github.com/staffhub/backend/internal/infrastructure/auth"
	"github.com/staffhub/backend/internal/infrastructure/config"
	"github.com/staffhub/backend/internal/infrastructure/persistence"
	"github.com/staffhub/backend/internal/infrastructure/persistence/models"
	"github.com/staffhub/backend/internal/interfaces/http/middleware"
	"github.com/staffhub/backend/internal/interfaces/http/router"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testEnv is a full HTTP stack over an in-memory database.
type testEnv struct {
	engine *gin.Engine
	store  *persistence.Store
	db     *gorm.DB
	jwt    *auth.JWTService
	admins *auth.AdminAccountRegistry
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:     "test-secret-key-32-characters-long",
		Expiration: time.Hour,
		Issuer:     "test-issuer",
	}
}

func testCookieConfig() config.CookieConfig {
	return config.CookieConfig{
		Name:     "staffhub_session",
		Path:     "/",
		Secure:   false,
		SameSite: "lax",
	}
}

// newTestEnv wires the handlers, middleware and routes the way the server
// entrypoint does, over an in-memory sqlite database.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.AllModels()...))

	store := persistence.NewStoreWithDB(db)
	log := zap.NewNop()

	userRepo := persistence.NewGormUserRepository(store)
	employeeRepo := persistence.NewGormEmployeeRepository(store)
	projectRepo := persistence.NewGormProjectRepository(store)
	dependencyRepo := persistence.NewGormDependencyRepository(store)
	integrationRepo := persistence.NewGormIntegrationRepository(store)

	admins := auth.NewAdminAccountRegistry(config.AdminConfig{
		Email:    "ops@example.com",
		Password: "super-secret",
	}, log)
	jwtService := auth.NewJWTService(testJWTConfig())

	authService := identity.NewAuthService(userRepo, admins, jwtService, log)
	employeeService := directory.NewEmployeeService(employeeRepo, log)
	integrationService := directory.NewIntegrationService(integrationRepo, employeeRepo, log)
	projectService := project.NewService(projectRepo, log)
	catalogService := catalog.NewService(dependencyRepo, log)

	authHandler := NewAuthHandler(authService, testCookieConfig())
	employeeHandler := NewEmployeeHandler(employeeService, integrationService)
	projectHandler := NewProjectHandler(projectService)
	dependencyHandler := NewDependencyHandler(catalogService)
	systemHandler := NewSystemHandler(store)

	engine := gin.New()
	engine.GET("/health", systemHandler.Health)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Use(middleware.SessionAuth(middleware.DefaultSessionConfig(jwtService, "staffhub_session")))

	adminOnly := middleware.RequireRole("admin")

	authRoutes := router.NewDomainGroup("auth", "/auth")
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.GET("/me", authHandler.Me)
	authRoutes.POST("/logout", authHandler.Logout)

	employeeRoutes := router.NewDomainGroup("directory", "/employees")
	employeeRoutes.GET("", employeeHandler.List)
	employeeRoutes.POST("", employeeHandler.Create)
	employeeRoutes.GET("/by-user/:userId", employeeHandler.GetByUserID)
	employeeRoutes.GET("/:id", employeeHandler.Get)
	employeeRoutes.PUT("/:id", employeeHandler.Update)
	employeeRoutes.DELETE("/:id", adminOnly, employeeHandler.Delete)
	employeeRoutes.GET("/:id/integrations", employeeHandler.ListIntegrations)
	employeeRoutes.PUT("/:id/integrations", employeeHandler.ConnectIntegration)
	employeeRoutes.DELETE("/:id/integrations/:platform", adminOnly, employeeHandler.DisconnectIntegration)

	projectRoutes := router.NewDomainGroup("projects", "/projects")
	projectRoutes.GET("", projectHandler.List)
	projectRoutes.POST("", projectHandler.Create)
	projectRoutes.GET("/:id", projectHandler.Get)
	projectRoutes.PUT("/:id", projectHandler.Update)
	projectRoutes.DELETE("/:id", adminOnly, projectHandler.Delete)
	projectRoutes.GET("/:id/members", projectHandler.ListMembers)
	projectRoutes.POST("/:id/members", projectHandler.AddMember)
	projectRoutes.DELETE("/:id/members/:employeeId", adminOnly, projectHandler.RemoveMember)
	projectRoutes.GET("/:id/dependencies", projectHandler.ListDependencies)
	projectRoutes.POST("/:id/dependencies", projectHandler.AddDependency)
	projectRoutes.DELETE("/:id/dependencies/:dependencyId", adminOnly, projectHandler.RemoveDependency)

	dependencyRoutes := router.NewDomainGroup("catalog", "/dependencies")
	dependencyRoutes.GET("", dependencyHandler.List)
	dependencyRoutes.POST("", dependencyHandler.Create)
	dependencyRoutes.GET("/:id", dependencyHandler.Get)
	dependencyRoutes.PUT("/:id", dependencyHandler.Update)
	dependencyRoutes.DELETE("/:id", adminOnly, dependencyHandler.Delete)

	r.Register(authRoutes).
		Register(employeeRoutes).
		Register(projectRoutes).
		Register(dependencyRoutes)
	r.Setup()

	return &testEnv{
		engine: engine,
		store:  store,
		db:     db,
		jwt:    jwtService,
		admins: admins,
	}
}

// sessionToken mints a token for a user row created directly in the database.
func (e *testEnv) sessionToken(t *testing.T, openID, role string) string {
	t.Helper()

	user := &models.User{
		OpenID:       openID,
		Name:         openID,
		Email:        openID + "@example.com",
		LoginMethod:  "password",
		Role:         models.UserRole(role),
		LastSignedIn: time.Now(),
	}
	require.NoError(t, e.db.Create(user).Error)

	token, err := e.jwt.GenerateSession(auth.GenerateSessionInput{
		UserID: user.ID,
		OpenID: user.OpenID,
		Role:   role,
	})
	require.NoError(t, err)
	return token.Token
}

type requestOptions struct {
	token string
	body  any
}

// do runs one request through the full stack and decodes the envelope.
func (e *testEnv) do(t *testing.T, method, path string, opts requestOptions) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if opts.body != nil {
		payload, err := json.Marshal(opts.body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if opts.token != "" {
		req.Header.Set("Authorization", "Bearer "+opts.token)
	}

	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)

	var envelope map[string]any
	if w.Body.Len() > 0 && w.Header().Get("Content-Type") != "" {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope),
			"body: %s", w.Body.String())
	}
	return w, envelope
}

func dataField(t *testing.T, envelope map[string]any) map[string]any {
	t.Helper()
	data, ok := envelope["data"].(map[string]any)
	require.True(t, ok, "envelope: %v", envelope)
	return data
}

func dataList(t *testing.T, envelope map[string]any) []any {
	t.Helper()
	if envelope["data"] == nil {
		return nil
	}
	data, ok := envelope["data"].([]any)
	require.True(t, ok, "envelope: %v", envelope)
	return data
}

func errorCode(t *testing.T, envelope map[string]any) string {
	t.Helper()
	errInfo, ok := envelope["error"].(map[string]any)
	require.True(t, ok, "envelope: %v", envelope)
	code, _ := errInfo["code"].(string)
	return code
}
