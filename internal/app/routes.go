package app

import (
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mx-space/folio/internal/middleware"
	"github.com/mx-space/folio/internal/modules/auth/auth"
	"github.com/mx-space/folio/internal/modules/auth/authn"
	"github.com/mx-space/folio/internal/modules/content/about"
	"github.com/mx-space/folio/internal/modules/content/hero"
	"github.com/mx-space/folio/internal/modules/content/message"
	"github.com/mx-space/folio/internal/modules/content/project"
	"github.com/mx-space/folio/internal/modules/content/review"
	"github.com/mx-space/folio/internal/modules/storage/upload"
	"github.com/mx-space/folio/internal/pkg/objectstore"
	"github.com/mx-space/folio/internal/pkg/response"
	sessionpkg "github.com/mx-space/folio/internal/pkg/session"
	"go.uber.org/zap"
)

const (
	apiPrefix = "/api"

	apiRateLimit     = 50
	loginRateLimit   = 10
	loginRateWindow  = time.Minute
	apiRateLimitSpan = time.Second
)

func (a *App) registerRoutes() {
	r := a.router
	db := a.deps.DB
	rdb := a.deps.Redis.Raw()
	authMW := middleware.Auth(db)

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	if root, ok := objectstore.LocalRoot(a.deps.Store); ok {
		r.Static(objectstore.LocalURLPrefix, root)
	}
	a.mountAdmin()

	api := r.Group(apiPrefix)
	api.Use(
		middleware.RateLimit(rdb, "api", apiRateLimit, apiRateLimitSpan),
		middleware.Idempotence(rdb),
		middleware.HTTPCache(rdb, middleware.HTTPCacheOptions{Base: apiPrefix}),
		middleware.PurgeOnMutation(rdb, apiPrefix, a.logger),
	)

	api.GET("/ping", func(c *gin.Context) {
		response.OK(c, gin.H{"status": "ok", "time": time.Now().UTC()})
	})

	hero.NewHandler(hero.NewService(db)).RegisterRoutes(api, authMW)
	about.NewHandler(about.NewService(db)).RegisterRoutes(api, authMW)
	project.NewHandler(project.NewService(db)).RegisterRoutes(api, authMW)
	review.NewHandler(review.NewService(db)).RegisterRoutes(api, authMW)
	message.NewHandler(message.NewService(db)).RegisterRoutes(api, authMW)

	upload.NewHandler(a.deps.Store, upload.Options{
		MaxBytes:    a.cfg.MaxUploadBytes(),
		AllowedExts: a.cfg.Upload.AllowedExts,
	}, a.logger.Named("upload")).RegisterRoutes(api, authMW)

	loginLimiter := middleware.RateLimit(rdb, "login", loginRateLimit, loginRateWindow)
	authSvc := auth.NewService(db, a.deps.Verifier, sessionpkg.DefaultTTL)
	auth.NewHandler(authSvc, db, loginLimiter).RegisterRoutes(api)
}

// mountAdmin serves the prebuilt dashboard behind the admin gate. Unknown
// paths fall back to index.html so client-side routes resolve.
func (a *App) mountAdmin() {
	dir := a.cfg.AdminAssetDir()
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		a.logger.Info("admin dashboard not found, skipping", zap.String("dir", dir))
		return
	}

	g := a.router.Group(authn.AdminPrefix, middleware.AdminGate(a.deps.DB))
	g.GET("/*filepath", func(c *gin.Context) {
		rel := path.Clean("/" + c.Param("filepath"))
		full := filepath.Join(dir, filepath.FromSlash(rel))
		if info, err := os.Stat(full); err == nil && !info.IsDir() {
			c.File(full)
			return
		}
		index := filepath.Join(dir, "index.html")
		if _, err := os.Stat(index); err != nil {
			response.NotFound(c)
			return
		}
		c.Header("Cache-Control", "no-cache")
		c.File(index)
	})
}
