package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "gitfolio-core/docs"
	"gitfolio-core/internal/application/service"
	"gitfolio-core/internal/clerk"
	"gitfolio-core/internal/config"
	"gitfolio-core/internal/database"
	"gitfolio-core/internal/domain/events"
	"gitfolio-core/internal/domain/generation"
	"gitfolio-core/internal/domain/profile"
	domainsync "gitfolio-core/internal/domain/sync"
	"gitfolio-core/internal/github"
	infraClerk "gitfolio-core/internal/infrastructure/clerk"
	infraGitHub "gitfolio-core/internal/infrastructure/github"
	"gitfolio-core/internal/infrastructure/persistence"
	"gitfolio-core/internal/logger"
	"gitfolio-core/internal/metrics"
	"gitfolio-core/internal/middleware"
	"gitfolio-core/internal/presentation/handlers"
)

// @title Gitfolio Core API
// @version 1.0
// @description Syncs a signed-in user's GitHub profile and repositories into a portfolio store

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey ClerkAuth
// @in header
// @name Authorization
// @description Clerk session JWT

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logging, cfg.Server.Name, cfg.Server.Version)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Service starting",
		zap.String("env", cfg.Server.Env),
		zap.String("address", cfg.GetServerAddress()),
		zap.String("db_driver", cfg.Database.Driver),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var tp interface{ Shutdown(context.Context) error }
	if cfg.Tracing.Enabled {
		provider, err := middleware.InitTracing(ctx, cfg)
		if err != nil {
			appLogger.Warn("Failed to initialize tracing", zap.Error(err))
		} else {
			tp = provider
			appLogger.Info("Tracing initialized",
				zap.String("endpoint", cfg.Tracing.Endpoint),
				zap.Float64("sample_rate", cfg.Tracing.SampleRate),
			)
		}
	}

	if cfg.Profiling.Enabled {
		profiler, err := middleware.InitProfiling(cfg)
		if err != nil {
			appLogger.Warn("Failed to initialize profiling", zap.Error(err))
		} else {
			appLogger.Info("Profiling initialized", zap.String("endpoint", cfg.Profiling.Endpoint))
			defer func() { _ = profiler.Stop() }()
		}
	}

	// Elevated store connection, shared by every request
	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		appLogger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	if err := db.ApplySchema(ctx, appLogger); err != nil {
		appLogger.Fatal("Failed to apply schema", zap.Error(err))
	}

	// External service clients
	clerkClient := clerk.NewClient(&cfg.Clerk)
	githubClient := github.NewClient(&cfg.GitHub)

	// Infrastructure implementations of domain services
	directory := infraClerk.NewClerkService(clerkClient)
	githubService := infraGitHub.NewGitHubService(githubClient)

	// Repository implementations
	profileRepository := persistence.NewProfileRepository(db)
	repositoryRepository := persistence.NewRepositoryRepository(db)
	scopedReader := persistence.NewScopedReader(db, cfg.Database.ReadRole)
	generationRepository := persistence.NewGenerationRepository(db)

	dispatcher := events.NewDispatcher(appLogger)
	dispatcher.Register(profile.EventTypeProfileSynced, func(ctx context.Context, e events.DomainEvent) error {
		ev := e.(*profile.ProfileSyncedEvent)
		metrics.ProfileSynced()
		appLogger.Info("Profile synced",
			zap.String("user_id", ev.UserID),
			zap.String("username", ev.Username),
			zap.Int("repos_count", ev.ReposCount),
		)
		return nil
	})
	dispatcher.Register(generation.EventTypeGenerationRequested, func(ctx context.Context, e events.DomainEvent) error {
		metrics.GenerationStatus(string(generation.StatusGenerating))
		return nil
	})
	dispatcher.Register(generation.EventTypeGenerationFinished, func(ctx context.Context, e events.DomainEvent) error {
		ev := e.(*generation.GenerationFinishedEvent)
		metrics.GenerationStatus(string(ev.Status))
		return nil
	})

	// Application services (use cases)
	syncService := service.NewSyncService(service.SyncDeps{
		Directory:     directory,
		ProfileSource: githubService,
		RepoSource:    githubService,
		Profiles:      profileRepository,
		Repositories:  repositoryRepository,
		Tx:            db,
		Dispatcher:    dispatcher,
		Guard:         domainsync.NewInFlightGuard(),
		Logger:        appLogger.Named("sync"),
	}, service.SyncOptions{
		OAuthProvider: cfg.Clerk.OAuthProvider,
		PerPage:       cfg.GitHub.PerPage,
		PrunePolicy:   cfg.Sync.PrunePolicy,
		AtomicWrites:  cfg.Sync.AtomicWrites,
	})
	portfolioService := service.NewPortfolioService(scopedReader, profileRepository, appLogger.Named("portfolio"))
	userService := service.NewUserService(directory, profileRepository, repositoryRepository)
	generationService := service.NewGenerationService(service.GenerationDeps{
		Generations: generationRepository,
		Profiles:    profileRepository,
		Tx:          db,
		Dispatcher:  dispatcher,
		Logger:      appLogger.Named("generation"),
	})

	authMiddleware, err := middleware.NewAuthMiddleware(ctx, &cfg.Clerk, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize auth middleware", zap.Error(err))
	}

	if os.Getenv("GIN_MODE") == "" && !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if tp != nil {
		router.Use(middleware.TracingMiddleware(cfg.Server.Name))
	}
	router.Use(middleware.LoggingMiddleware(appLogger))
	router.Use(middleware.PrometheusMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	healthHandler := handlers.NewHealthHandler(cfg.Server.Version, db)
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := &handlers.API{
		Sync:      handlers.NewSyncHandler(syncService),
		Portfolio: handlers.NewPortfolioHandler(portfolioService),
		User:      handlers.NewUserHandler(userService),

		Generation: handlers.NewGenerationHandler(generationService),
	}
	v1 := router.Group("/api/v1")
	v1.GET("/health", healthHandler.Health)
	api.Register(v1, authMiddleware.RequireAuth())

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		appLogger.Info("Server listening", zap.String("address", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutdown signal received")

	healthHandler.StartDraining()
	if delay := cfg.GetReadinessDrainDelay(); delay > 0 {
		appLogger.Info("Readiness drain started", zap.Duration("delay", delay))
		time.Sleep(delay)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GetShutdownTimeout())
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	if tp != nil {
		if err := tp.Shutdown(shutdownCtx); err != nil {
			appLogger.Error("Tracer shutdown error", zap.Error(err))
		}
	}

	appLogger.Info("Server exited")
}
