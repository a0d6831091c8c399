// Package app wires configuration, storage, repositories and HTTP handlers
// into one application object.
package app

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/cleancity/api/internal/cache"
	"github.com/cleancity/api/internal/chart"
	"github.com/cleancity/api/internal/config"
	"github.com/cleancity/api/internal/handler"
	"github.com/cleancity/api/internal/limiter"
	"github.com/cleancity/api/internal/middleware"
	"github.com/cleancity/api/internal/model"
	"github.com/cleancity/api/internal/repository"
	"github.com/cleancity/api/internal/store"
	"github.com/cleancity/api/internal/views"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

type App struct {
	Config   *config.Config
	Logger   *zap.Logger
	Reports  *repository.ReportRepository
	Users    *repository.UserRepository
	Charts   *chart.Drawer
	Limiter  *limiter.Limiter
	Renderer *views.Renderer

	kv      store.KV
	closers []io.Closer
	now     func() time.Time
}

type options struct {
	kv      store.KV
	counter limiter.Counter
	now     func() time.Time
}

type Option func(*options)

// WithStore uses kv instead of opening the configured driver. The app
// takes ownership and closes it.
func WithStore(kv store.KV) Option {
	return func(o *options) { o.kv = kv }
}

// WithCounter replaces the rate limit counter backend.
func WithCounter(c limiter.Counter) Option {
	return func(o *options) { o.counter = c }
}

func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// New opens storage, loads both collections and builds the handlers.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger, opts ...Option) (*App, error) {
	o := options{now: func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) }}
	for _, opt := range opts {
		opt(&o)
	}

	a := &App{Config: cfg, Logger: logger, now: o.now}

	kv := o.kv
	if kv == nil {
		var err error
		kv, err = OpenStore(cfg, cfg.StoreDriver, logger)
		if err != nil {
			return nil, err
		}
	}
	a.kv = instrumentedKV{kv}
	a.closers = append(a.closers, kv)

	counter := o.counter
	if counter == nil {
		counter = a.openCounter(kv)
	}
	a.Limiter = limiter.NewLimiter(counter, map[string]limiter.ActionConfig{
		limiter.ActionReport: {Limit: cfg.ReportRateLimit, Window: time.Minute},
		limiter.ActionSignup: {Limit: cfg.SignupRateLimit, Window: time.Minute},
	}, logger.Named("limiter"))

	repoOpts := []repository.Option{repository.WithClock(o.now), repository.WithLogger(logger.Named("repository"))}
	a.Reports = repository.NewReportRepository(
		store.NewCollection[model.Report](a.kv, cfg.ReportsKey, logger.Named("store")), repoOpts...)
	a.Users = repository.NewUserRepository(
		store.NewCollection[model.User](a.kv, cfg.UsersKey, logger.Named("store")), repoOpts...)

	a.Reports.Load(ctx)
	a.Users.Load(ctx)

	a.Charts = chart.NewDrawer(a.Reports.List, cfg.ChartDelay,
		chart.WithClock(o.now),
		chart.WithLogger(logger.Named("charts")),
		chart.WithRedrawHook(middleware.RecordChartRedraw),
	)
	a.Reports.OnChange(a.Charts.Invalidate)

	renderer, err := views.NewRenderer(views.WithClock(o.now))
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.Renderer = renderer

	return a, nil
}

// openCounter shares the redis store connection when there is one,
// otherwise dials REDIS_URL, and falls back to process memory.
func (a *App) openCounter(kv store.KV) limiter.Counter {
	if rc, ok := kv.(*cache.RedisCache); ok {
		return rc
	}
	if a.Config.RedisURL == "" {
		return limiter.NewMemoryCounter()
	}

	rc, err := cache.NewRedisCache(a.Config.RedisURL)
	if err != nil {
		a.Logger.Warn("redis unavailable, rate limits are per process", zap.Error(err))
		return limiter.NewMemoryCounter()
	}
	a.closers = append(a.closers, rc)
	return rc
}

func (a *App) Router() *gin.Engine {
	if a.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if err := r.SetTrustedProxies(a.Config.TrustedProxies); err != nil {
		a.Logger.Warn("invalid TRUSTED_PROXIES, trusting none", zap.Error(err))
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(middleware.RequestLogger(a.Logger.Named("http")), middleware.Recovery(a.Logger), middleware.MetricsMiddleware())
	r.MaxMultipartMemory = a.Config.MaxPhotoBytes + 1<<20

	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	viewHandler := handler.NewViewHandler(a.Reports, a.Renderer, a.Config, a.now, a.Logger)
	reportHandler := handler.NewReportHandler(a.Reports, a.Limiter, a.Config, a.Logger)
	signupHandler := handler.NewSignupHandler(a.Users, a.Limiter, a.Logger)
	adminHandler := handler.NewAdminHandler(a.Reports, a.Charts, a.now)
	exportHandler := handler.NewExportHandler(a.Reports, a.now)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/", viewHandler.Shell)
	r.GET("/views/*fragment", viewHandler.View)
	r.StaticFS("/static", http.FS(views.Static()))

	api := r.Group("/api")
	{
		// Reports
		api.POST("/reports", reportHandler.Submit)
		api.GET("/reports", reportHandler.List)
		api.GET("/reports/:id", reportHandler.Get)
		api.PUT("/reports/:id/status", reportHandler.UpdateStatus)
		api.POST("/reports/:id/advance", reportHandler.Advance)

		// Accounts
		api.POST("/signup", signupHandler.Signup)

		// Admin
		api.GET("/admin/stats", adminHandler.GetStats)
		api.GET("/admin/charts", adminHandler.GetCharts)

		api.GET("/schedule", handler.Schedule)
		api.GET("/export", exportHandler.Export)
	}

	return r
}

// Close stops pending chart redraws and closes every backend connection.
func (a *App) Close() error {
	if a.Charts != nil {
		a.Charts.Close()
	}

	var err error
	for _, c := range a.closers {
		err = multierr.Append(err, c.Close())
	}
	a.closers = nil
	return err
}
