package router

import (
	"time"

	"prodplan/internal/config"
	"prodplan/internal/handler"
	"prodplan/internal/infra"
	"prodplan/internal/middleware"
	"prodplan/internal/repository"
	"prodplan/internal/service"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
// rdb may be nil, which disables the read cache.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.AllowedOrigins()))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(cfg.RateLimitPerMinute))
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// ── Infrastructure ───────────────────────────────────────────────────────
	cache := infra.NewCache(rdb, time.Duration(cfg.CacheTTLMinutes)*time.Minute)

	// ── Repositories ─────────────────────────────────────────────────────────
	semaineRepo := repository.NewSemaineRepository(db)
	ligneRepo := repository.NewLigneRepository(db)
	referenceRepo := repository.NewReferenceRepository(db)
	planRepo := repository.NewPlanificationRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	userRepo := repository.NewUserRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(adminRepo, userRepo, cfg)
	semaineSvc := service.NewSemaineService(semaineRepo, ligneRepo, referenceRepo, planRepo, catalogRepo, cache)
	planSvc := service.NewPlanificationService(planRepo, semaineRepo)
	exportSvc := service.NewExportService(semaineSvc)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	semainesH := handler.NewSemainesHandler(semaineSvc)
	plansH := handler.NewPlanificationsHandler(planSvc)
	exportH := handler.NewExportHandler(exportSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, cache))

	auth := r.Group("/auth", middleware.LoginRateLimiter(cfg.LoginRateLimitPerMinute))
	{
		auth.POST("/admin/login", authH.LoginAdmin)
		auth.POST("/login", authH.LoginUser)
	}

	// Protected routes: every caller needs a token, writes need the admin role
	api := r.Group("", middleware.JWTAuth(cfg.JWTSecret))
	admin := middleware.RequireAdmin()

	semaines := api.Group("/semaines")
	{
		semaines.GET("", semainesH.Lister)
		semaines.GET("/all-with-lignes", semainesH.AvecLignes)
		semaines.GET("/:id", semainesH.Obtenir)
		semaines.GET("/:id/lignes", semainesH.Lignes)
		semaines.GET("/:id/complete", semainesH.Complete)
		semaines.GET("/:id/stats", semainesH.Stats)
		semaines.GET("/:id/export", exportH.Excel)
		semaines.GET("/:id/rapport", exportH.Rapport)
		semaines.GET("/lignes/:semaineLigneId/references", semainesH.References)

		semaines.POST("", admin, semainesH.Creer)
		semaines.DELETE("/:id", admin, semainesH.Supprimer)
		semaines.PATCH("/references/:referenceId/:jour", admin, semainesH.MettreAJourProduction)
	}

	api.POST("/plan/:jour", admin, semainesH.MettreAJourProductionSimple)

	plans := api.Group("/planifications")
	{
		plans.GET("", plansH.Lister)
		plans.GET("/semaine/:semaine", plansH.ParSemaine)
		plans.GET("/semaine/:semaine/stats", plansH.Stats)
		plans.GET("/semaine/:semaine/ligne/:ligne", plansH.ParSemaineLigne)
		plans.GET("/semaine/:semaine/ligne/:ligne/jour/:jour", plansH.ParSemaineLigneJour)

		plans.POST("", admin, plansH.Creer)
		plans.PATCH("/:id", admin, plansH.MettreAJour)
		plans.DELETE("/:id", admin, plansH.Supprimer)
	}

	return r
}
