package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	billingapp "github.com/promptdeck/backend/internal/application/billing"
	featureflagapp "github.com/promptdeck/backend/internal/application/featureflag"
	identityapp "github.com/promptdeck/backend/internal/application/identity"
	promptapp "github.com/promptdeck/backend/internal/application/prompt"
	sagaapp "github.com/promptdeck/backend/internal/application/saga"
	storageapp "github.com/promptdeck/backend/internal/application/storage"
	"github.com/promptdeck/backend/internal/domain/billing"
	"github.com/promptdeck/backend/internal/domain/featureflag"
	"github.com/promptdeck/backend/internal/domain/identity"
	"github.com/promptdeck/backend/internal/domain/prompt"
	"github.com/promptdeck/backend/internal/domain/saga"
	"github.com/promptdeck/backend/internal/domain/shared"
	"github.com/promptdeck/backend/internal/domain/storage"
	"github.com/promptdeck/backend/internal/infrastructure/auth"
	"github.com/promptdeck/backend/internal/infrastructure/cache"
	"github.com/promptdeck/backend/internal/infrastructure/command"
	"github.com/promptdeck/backend/internal/infrastructure/config"
	"github.com/promptdeck/backend/internal/infrastructure/event"
	"github.com/promptdeck/backend/internal/infrastructure/logger"
	"github.com/promptdeck/backend/internal/infrastructure/persistence"
	"github.com/promptdeck/backend/internal/infrastructure/readstore"
	"github.com/promptdeck/backend/internal/interfaces/http/handler"
	"github.com/promptdeck/backend/internal/interfaces/http/middleware"
	"github.com/promptdeck/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env))

	if err := run(cfg, log); err != nil {
		log.Fatal("Server exited with error", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))

	writeDB, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		return fmt.Errorf("open write store: %w", err)
	}
	defer func() {
		_ = writeDB.Close()
	}()

	readDB := writeDB
	if cfg.HasSeparateReadStore() {
		readDB, err = persistence.NewReadDatabase(&cfg.ReadDB, gormLog)
		if err != nil {
			return fmt.Errorf("open read store: %w", err)
		}
		defer func() {
			_ = readDB.Close()
		}()
		log.Info("Using dedicated read store", zap.String("host", cfg.ReadDB.Host))
	}

	var viewCache cache.ViewCache
	if cfg.Redis.Enabled {
		redisCache, err := cache.NewRedisViewCache(cfg.Redis)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer func() {
			_ = redisCache.Close()
		}()
		viewCache = redisCache
		log.Info("View cache enabled", zap.String("host", cfg.Redis.Host))
	}

	// Buses
	eventBus := event.NewInMemoryEventBus(log)
	commandBus := command.NewInMemoryCommandBus(log)
	queryBus := command.NewInMemoryQueryBus(log)

	// Write-side repositories
	tenantRepo := persistence.NewGormTenantRepository(writeDB.DB)
	userRepo := persistence.NewGormUserRepository(writeDB.DB)
	planRepo := persistence.NewGormPlanRepository(writeDB.DB)
	featureRepo := persistence.NewGormFeatureRepository(writeDB.DB)
	promptRepo := persistence.NewGormPromptRepository(writeDB.DB)
	fileRepo := persistence.NewGormFileRepository(writeDB.DB)
	sagaInstanceRepo := persistence.NewGormSagaInstanceRepository(writeDB.DB)
	sagaStepRepo := persistence.NewGormSagaStepRepository(writeDB.DB)
	sagaLogRepo := persistence.NewGormSagaLogRepository(writeDB.DB)

	// Read-side view repositories. Hot reference views go through the
	// cache when Redis is enabled.
	tenantViews := cachedView(
		readstore.NewGormViewRepository[identity.TenantView](readDB.DB, readstore.TenantViewFields, "created_at"),
		viewCache, "tenant", func(v *identity.TenantView) uuid.UUID { return v.ID }, log)
	userViews := readstore.NewGormViewRepository[identity.UserView](readDB.DB, readstore.UserViewFields, "created_at")
	planViews := cachedView(
		readstore.NewGormViewRepository[billing.PlanView](readDB.DB, readstore.PlanViewFields, "created_at"),
		viewCache, "plan", func(v *billing.PlanView) uuid.UUID { return v.ID }, log)
	featureViews := cachedView(
		readstore.NewGormViewRepository[featureflag.FeatureView](readDB.DB, readstore.FeatureViewFields, "created_at"),
		viewCache, "feature", func(v *featureflag.FeatureView) uuid.UUID { return v.ID }, log)
	promptViews := readstore.NewGormViewRepository[prompt.PromptView](readDB.DB, readstore.PromptViewFields, "created_at")
	fileViews := readstore.NewGormViewRepository[storage.FileView](readDB.DB, readstore.FileViewFields, "created_at")
	sagaInstanceViews := readstore.NewGormViewRepository[saga.InstanceView](readDB.DB, readstore.SagaInstanceViewFields, "created_at")
	sagaStepViews := readstore.NewGormViewRepository[saga.StepView](readDB.DB, readstore.SagaStepViewFields, "step_order")
	sagaLogViews := readstore.NewGormViewRepository[saga.LogView](readDB.DB, readstore.SagaLogViewFields, "created_at")

	// Projectors keep the read store in step with the write store
	eventBus.Subscribe(identityapp.NewTenantProjector(tenantViews, log))
	eventBus.Subscribe(identityapp.NewUserProjector(userViews, log))
	eventBus.Subscribe(billingapp.NewPlanProjector(planViews, log))
	eventBus.Subscribe(featureflagapp.NewFeatureProjector(featureViews, log))
	eventBus.Subscribe(promptapp.NewPromptProjector(promptViews, log))
	eventBus.Subscribe(storageapp.NewFileProjector(fileViews, log))
	eventBus.Subscribe(sagaapp.NewInstanceProjector(sagaInstanceViews, log))
	eventBus.Subscribe(sagaapp.NewStepProjector(sagaStepViews, log))
	eventBus.Subscribe(sagaapp.NewLogViewProjector(sagaLogViews, log))

	// Saga log pipeline: lifecycle events become log-create commands,
	// which run through the same command pipeline as everything else
	if err := sagaapp.NewLogCommandHandler(sagaLogRepo, eventBus, log).Register(commandBus); err != nil {
		return fmt.Errorf("register saga log handler: %w", err)
	}
	eventBus.Subscribe(sagaapp.NewLogProjector(commandBus, log))

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	tenantService := identityapp.NewTenantService(tenantRepo, tenantViews, eventBus, log)
	userService := identityapp.NewUserService(userRepo, userViews, eventBus, log)
	authService := identityapp.NewAuthService(tenantRepo, userRepo, jwtService, log)
	planService := billingapp.NewPlanService(planRepo, planViews, eventBus, log)
	featureService := featureflagapp.NewFeatureService(featureRepo, featureViews, eventBus, log)
	promptService := promptapp.NewPromptService(promptRepo, promptViews, eventBus, log)
	fileService := storageapp.NewFileService(fileRepo, fileViews, eventBus, log)
	sagaService := sagaapp.NewInstanceService(
		sagaInstanceRepo, sagaStepRepo,
		sagaInstanceViews, sagaStepViews, sagaLogViews,
		eventBus, cfg.Saga.DefaultMaxRetries, log)
	sagaExecutor := sagaapp.NewExecutor(sagaInstanceRepo, sagaStepRepo, eventBus, cfg.Saga.StepTimeout, log)

	if err := sagaapp.RegisterQueryHandlers(queryBus, sagaService); err != nil {
		return fmt.Errorf("register saga query handlers: %w", err)
	}

	engine := buildEngine(cfg, log, jwtService)

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	engine.Use(middleware.CORSWithConfig(corsCfg))

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(handler.NewSystemHandler(writeDB.DB, readDB.DB, cfg.App.Name))
	r.Register(handler.NewAuthHandler(authService))
	r.Register(handler.NewTenantHandler(tenantService))
	r.Register(handler.NewUserHandler(userService))
	r.Register(handler.NewPlanHandler(planService))
	r.Register(handler.NewFeatureHandler(featureService))
	r.Register(handler.NewPromptHandler(promptService))
	r.Register(handler.NewFileHandler(fileService))
	r.Register(handler.NewSagaHandler(sagaService, sagaExecutor, sagaapp.NewPassthroughHandler(), queryBus))
	r.Setup()

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	return serve(server, log)
}

// buildEngine assembles the gin engine with the ambient middleware stack
func buildEngine(cfg *config.Config, log *zap.Logger, jwtService *auth.JWTService) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		_ = engine.SetTrustedProxies(cfg.HTTP.TrustedProxies)
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))

	jwtCfg := middleware.DefaultJWTConfig(jwtService)
	jwtCfg.Logger = log
	engine.Use(middleware.JWTAuthMiddlewareWithConfig(jwtCfg))

	return engine
}

// serve runs the HTTP server until SIGINT/SIGTERM, then drains it
func serve(server *http.Server, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("Server stopped")
	return nil
}

// cachedView wraps a view repository with the shared cache when one is
// configured; otherwise the database-backed repository is used as is
func cachedView[V any](
	inner shared.ViewRepository[V],
	viewCache cache.ViewCache,
	prefix string,
	idOf func(*V) uuid.UUID,
	log *zap.Logger,
) shared.ViewRepository[V] {
	if viewCache == nil {
		return inner
	}
	return cache.NewCachedViewRepository(inner, viewCache, prefix, idOf, log)
}
