package bootstrap

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	httpapi "github.com/ishanichuri/portfolio/internal/api/http"
	"github.com/ishanichuri/portfolio/internal/api/http/middleware"
	"github.com/ishanichuri/portfolio/internal/auth"
	authmw "github.com/ishanichuri/portfolio/internal/auth/middleware"
	"github.com/ishanichuri/portfolio/internal/media"
	"github.com/ishanichuri/portfolio/internal/metrics"
	projecthttp "github.com/ishanichuri/portfolio/internal/projects/http"
	"github.com/ishanichuri/portfolio/internal/projects/repository"
	"github.com/ishanichuri/portfolio/internal/projects/service"
)

func SetGinMode(env string) {
	switch env {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}
}

type RouterDeps struct {
	ServiceName  string
	Version      string
	Logger       *logrus.Logger
	CORSOrigins  []string
	Repo         repository.Repository
	Verifier     auth.Verifier
	Presigner    media.Presigner
	MediaBaseURL string
	Views        metrics.ViewPublisher
	ViewsPerMin  int
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware(dep.Logger))
	r.Use(cors.New(corsConfig(dep.CORSOrigins)))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Repo)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api")
	optional := authmw.OptionalClaims(dep.Verifier)
	admin := authmw.RequireAdmin(dep.Verifier)

	projects := projecthttp.New(service.NewProjectService(dep.Repo))
	projects.Register(api.Group("/projects"), optional, admin)

	media.NewHandler(dep.Presigner, dep.MediaBaseURL).Register(api.Group("/images"), admin)

	limiter := middleware.NewClientRateLimiter(dep.ViewsPerMin)
	metrics.NewHandler(dep.Views).Register(api.Group("/metrics"), limiter.Middleware())

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Authorization", "Content-Type", "X-Request-Id"},
		ExposeHeaders: []string{"X-Request-Id"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
