package bootstrap

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/starlinemember/portfolio-website/config"
	httpapi "github.com/starlinemember/portfolio-website/internal/api/http"
	"github.com/starlinemember/portfolio-website/internal/api/http/middleware"
	"github.com/starlinemember/portfolio-website/internal/auth"
	"github.com/starlinemember/portfolio-website/internal/contact"
	"github.com/starlinemember/portfolio-website/internal/mail"
	"github.com/starlinemember/portfolio-website/internal/portfolio"
	"github.com/starlinemember/portfolio-website/internal/security"
	"github.com/starlinemember/portfolio-website/internal/settings"
	"github.com/starlinemember/portfolio-website/internal/uploads"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	Config      *config.Config
	DB          *pgxpool.Pool
	Redis       *redis.Client
	Mailer      mail.Sender
	AuthSvc     *auth.Service
	Uploads     *uploads.Store
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     dep.Config.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB, dep.Redis)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")

	// Public surface: listings, the contact form, login.
	contactRepo := contact.NewRepo(dep.DB)
	contactTokens := contact.NewTokenStore(dep.Redis, time.Hour)
	contactLimiter := security.NewWindowLimiter(dep.Redis, "contact:rl:",
		dep.Config.Security.ContactRateLimit, dep.Config.Security.ContactRateWindow)
	gate := contact.NewGate(contactTokens, contactLimiter, dep.Mailer, contactRepo)
	contact.Register(api, gate, contactTokens)

	portfolioHandler := portfolio.NewHandler(
		portfolio.NewProjectRepo(dep.DB),
		portfolio.NewCertificateRepo(dep.DB),
	)
	portfolioHandler.RegisterPublic(api)

	auth.Register(api, dep.AuthSvc)

	// Admin surface: everything below requires a verified session.
	admin := api.Group("/admin")
	admin.Use(auth.RequireSession(dep.AuthSvc))

	portfolioHandler.RegisterAdmin(admin)
	contact.RegisterAdmin(admin, contactRepo)
	settings.Register(admin, settings.NewStore(dep.Redis))
	uploads.Register(admin, dep.Uploads)

	return r
}
