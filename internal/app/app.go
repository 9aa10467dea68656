package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mx-space/folio/internal/config"
	"github.com/mx-space/folio/internal/database"
	"github.com/mx-space/folio/internal/middleware"
	"github.com/mx-space/folio/internal/modules/auth/authn"
	"github.com/mx-space/folio/internal/pkg/objectstore"
	pkgcron "github.com/mx-space/folio/internal/pkg/cron"
	pkgredis "github.com/mx-space/folio/internal/pkg/redis"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App holds all application dependencies.
type App struct {
	cfg    *config.AppConfig
	router *gin.Engine
	deps   Deps
	logger *zap.Logger
	sched  *pkgcron.Scheduler
	cancel context.CancelFunc
}

// Deps are the external resources the HTTP layer runs on. Redis may be nil.
type Deps struct {
	DB       *gorm.DB
	Redis    *pkgredis.Client
	Store    objectstore.Store
	Verifier authn.Verifier
}

// New initializes the application: settings, DB, Redis, object store, routes.
func New(logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if err := applyRuntimeSettings(cfg, logger); err != nil {
		return nil, err
	}

	db, err := database.Connect(cfg, true)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	var rc *pkgredis.Client
	if !cfg.Redis.Disabled {
		rc = pkgredis.ConnectOptional(cfg.RedisURL, logger)
	}

	store, err := objectstore.New(cfg)
	if err != nil {
		_ = database.Close(db)
		return nil, fmt.Errorf("storage: %w", err)
	}

	if cfg.Admin.Email == "" || (cfg.Admin.Password == "" && cfg.Admin.PasswordHash == "") {
		logger.Warn("admin credentials are not configured, login is disabled")
	}
	verifier := authn.NewVerifier(cfg.Admin.Email, cfg.Admin.Password, cfg.Admin.PasswordHash)

	app := Build(logger, cfg, Deps{DB: db, Redis: rc, Store: store, Verifier: verifier})

	ctx, cancel := context.WithCancel(context.Background())
	app.cancel = cancel
	registerCronJobs(app.sched, db, logger)
	// Sessions left over from the previous run are pruned before serving.
	if err := app.sched.Run(ctx, jobPruneSessions); err != nil {
		logger.Warn("initial session prune", zap.Error(err))
	}
	app.sched.Start(ctx)
	return app, nil
}

// Build wires routes over already opened dependencies.
func Build(logger *zap.Logger, cfg *config.AppConfig, deps Deps) *App {
	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))
	router.Use(newCORS(cfg))

	app := &App{
		cfg:    cfg,
		router: router,
		deps:   deps,
		logger: logger,
		sched:  pkgcron.New(),
		cancel: func() {},
	}
	app.registerRoutes()
	return app
}

// Addr returns the listen address.
func (a *App) Addr() string { return fmt.Sprintf(":%d", a.cfg.Port) }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }

// Shutdown stops background jobs and closes connections.
func (a *App) Shutdown() {
	if a.cancel != nil {
		a.cancel()
	}
	a.sched.Stop()
	logCronStates(a.sched, a.logger.Named("cron"))
	if err := a.deps.Redis.Close(); err != nil {
		a.logger.Warn("close redis", zap.Error(err))
	}
	if a.deps.DB != nil {
		if err := database.Close(a.deps.DB); err != nil {
			a.logger.Warn("close database", zap.Error(err))
		}
	}
}
