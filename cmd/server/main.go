package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	catalogapp "github.com/staffhub/backend/internal/application/catalog"
	directoryapp "github.com/staffhub/backend/internal/application/directory"
	identityapp "github.com/staffhub/backend/internal/application/identity"
	projectapp "github.com/staffhub/backend/internal/application/project"
	"github.com/staffhub/backend/internal/infrastructure/auth"
	"github.com/staffhub/backend/internal/infrastructure/config"
	"github.com/staffhub/backend/internal/infrastructure/logger"
	"github.com/staffhub/backend/internal/infrastructure/persistence"
	"github.com/staffhub/backend/internal/interfaces/http/handler"
	"github.com/staffhub/backend/internal/interfaces/http/middleware"
	"github.com/staffhub/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting StaffHub Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))

	// Connect to storage. A failed connection is logged and the server
	// starts anyway with storage marked unavailable.
	store, err := persistence.NewStore(&cfg.Database, gormLog)
	if err != nil {
		log.Warn("Storage unavailable, continuing without database", zap.Error(err))
	} else {
		log.Info("Database connected successfully")
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	// Initialize repositories
	userRepo := persistence.NewGormUserRepository(store)
	employeeRepo := persistence.NewGormEmployeeRepository(store)
	projectRepo := persistence.NewGormProjectRepository(store)
	dependencyRepo := persistence.NewGormDependencyRepository(store)
	integrationRepo := persistence.NewGormIntegrationRepository(store)

	// Initialize authentication
	adminRegistry := auth.NewAdminAccountRegistry(cfg.Admin, log)
	jwtService := auth.NewJWTService(cfg.JWT)

	// Initialize application services
	authService := identityapp.NewAuthService(userRepo, adminRegistry, jwtService, log)
	employeeService := directoryapp.NewEmployeeService(employeeRepo, log)
	integrationService := directoryapp.NewIntegrationService(integrationRepo, employeeRepo, log)
	projectService := projectapp.NewService(projectRepo, log)
	catalogService := catalogapp.NewService(dependencyRepo, log)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, cfg.Cookie)
	employeeHandler := handler.NewEmployeeHandler(employeeService, integrationService)
	projectHandler := handler.NewProjectHandler(projectService)
	dependencyHandler := handler.NewDependencyHandler(catalogService)
	systemHandler := handler.NewSystemHandler(store)

	// Initialize Gin
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()
	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Invalid trusted proxies", zap.Error(err))
	}

	// Global middleware
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", systemHandler.Health)

	// Setup API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	sessionConfig := middleware.DefaultSessionConfig(jwtService, cfg.Cookie.Name)
	sessionConfig.Logger = log
	r.Use(middleware.SessionAuth(sessionConfig))

	adminOnly := middleware.RequireRole("admin")

	// Authentication routes
	authRoutes := router.NewDomainGroup("auth", "/auth")
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.GET("/me", authHandler.Me)
	authRoutes.POST("/logout", authHandler.Logout)

	// Employee directory routes
	employeeRoutes := router.NewDomainGroup("directory", "/employees")
	employeeRoutes.GET("", employeeHandler.List)
	employeeRoutes.POST("", employeeHandler.Create)
	employeeRoutes.GET("/by-user/:userId", employeeHandler.GetByUserID)
	employeeRoutes.GET("/:id", employeeHandler.Get)
	employeeRoutes.PUT("/:id", employeeHandler.Update)
	employeeRoutes.DELETE("/:id", adminOnly, employeeHandler.Delete)
	// Communication integration routes
	employeeRoutes.GET("/:id/integrations", employeeHandler.ListIntegrations)
	employeeRoutes.PUT("/:id/integrations", employeeHandler.ConnectIntegration)
	employeeRoutes.DELETE("/:id/integrations/:platform", adminOnly, employeeHandler.DisconnectIntegration)

	// Project routes
	projectRoutes := router.NewDomainGroup("projects", "/projects")
	projectRoutes.GET("", projectHandler.List)
	projectRoutes.POST("", projectHandler.Create)
	projectRoutes.GET("/:id", projectHandler.Get)
	projectRoutes.PUT("/:id", projectHandler.Update)
	projectRoutes.DELETE("/:id", adminOnly, projectHandler.Delete)
	// Membership routes
	projectRoutes.GET("/:id/members", projectHandler.ListMembers)
	projectRoutes.POST("/:id/members", projectHandler.AddMember)
	projectRoutes.DELETE("/:id/members/:employeeId", adminOnly, projectHandler.RemoveMember)
	// Dependency link routes
	projectRoutes.GET("/:id/dependencies", projectHandler.ListDependencies)
	projectRoutes.POST("/:id/dependencies", projectHandler.AddDependency)
	projectRoutes.DELETE("/:id/dependencies/:dependencyId", adminOnly, projectHandler.RemoveDependency)

	// Dependency catalog routes
	dependencyRoutes := router.NewDomainGroup("catalog", "/dependencies")
	dependencyRoutes.GET("", dependencyHandler.List)
	dependencyRoutes.POST("", dependencyHandler.Create)
	dependencyRoutes.GET("/:id", dependencyHandler.Get)
	dependencyRoutes.PUT("/:id", dependencyHandler.Update)
	dependencyRoutes.DELETE("/:id", adminOnly, dependencyHandler.Delete)

	// System routes
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.Info)

	r.Register(authRoutes).
		Register(employeeRoutes).
		Register(projectRoutes).
		Register(dependencyRoutes).
		Register(systemRoutes)

	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
