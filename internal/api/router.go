package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/BerylCAtieno/blueprint-companion-agent/internal/a2a"
	"github.com/BerylCAtieno/blueprint-companion-agent/internal/auth"
	"github.com/BerylCAtieno/blueprint-companion-agent/internal/metrics"
	"github.com/BerylCAtieno/blueprint-companion-agent/internal/platform/logger"
)

type RouterConfig struct {
	Handler        *Handler
	AuthMiddleware *auth.Middleware
	// A2A is optional.
	A2A      *a2a.Handler
	Metrics  *metrics.Recorder
	Gatherer prometheus.Gatherer
	Origins  []string
	Log      *logger.Logger
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(cfg.Log))
	router.Use(Metrics(cfg.Metrics))
	if len(cfg.Origins) > 0 {
		router.Use(CORS(cfg.Origins))
	}

	// Public
	router.GET("/health", cfg.Handler.Health)
	if cfg.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}
	if cfg.A2A != nil {
		router.GET("/.well-known/agent.json", cfg.A2A.ServeAgentCard)
		router.POST("/a2a/companion", cfg.AuthMiddleware.OptionalAuth(), cfg.A2A.HandleMessage)
	}

	// Protected
	api := router.Group("/api")
	api.Use(cfg.AuthMiddleware.RequireAuth())

	api.GET("/blueprint/questions", cfg.Handler.GetQuestions)
	api.POST("/blueprint/submit", cfg.Handler.SubmitBlueprint)
	api.GET("/blueprint", cfg.Handler.GetBlueprint)

	api.GET("/memory", cfg.Handler.GetMemory)
	api.PUT("/preferences/spiciness", cfg.Handler.UpdateSpiciness)
	api.POST("/mood", cfg.Handler.UpdateMood)
	api.PUT("/profile", cfg.Handler.UpdateProfile)

	api.POST("/partner/invite", cfg.Handler.CreateInvite)
	api.POST("/partner/link", cfg.Handler.LinkPartner)
	api.DELETE("/partner/link", cfg.Handler.UnlinkPartner)
	api.PUT("/partner/blueprint", cfg.Handler.SetPartnerBlueprint)

	api.GET("/boudoir/topics", cfg.Handler.GetTopics)
	api.POST("/boudoir/generate", cfg.Handler.GenerateIdea)

	api.GET("/suggestions", cfg.Handler.ListSuggestions)
	api.POST("/suggestions/generate", cfg.Handler.GenerateSuggestions)
	api.POST("/suggestions/:id/read", cfg.Handler.MarkSuggestionRead)
	api.POST("/suggestions/:id/applied", cfg.Handler.MarkSuggestionApplied)

	api.POST("/chat", cfg.Handler.Chat)

	return router
}
