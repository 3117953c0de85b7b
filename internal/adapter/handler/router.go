package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/boardroom-simulator/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/boardroom-simulator/pkg/config"
	"github.com/johnquangdev/boardroom-simulator/pkg/jwt"
)

// Router holds all handlers
type Router struct {
	cfg               *config.Config
	authHandler       *Auth
	sessionHandler    *Session
	assessmentHandler *Assessment
	jwtManager        *jwt.Manager
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, authHandler *Auth, sessionHandler *Session, assessmentHandler *Assessment, jwtManager *jwt.Manager) *Router {
	return &Router{
		cfg:               cfg,
		authHandler:       authHandler,
		sessionHandler:    sessionHandler,
		assessmentHandler: assessmentHandler,
		jwtManager:        jwtManager,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// API v1 group
	v1 := e.Group("/v1")

	rt.setupAuthRoutes(v1)
	rt.setupSessionRoutes(v1)
	rt.setupAssessmentRoutes(v1)
}

// setupAuthRoutes configures operator token issuance. These stay open: the
// token endpoint authenticates with the operator API key itself.
func (rt *Router) setupAuthRoutes(g *echo.Group) {
	auth := g.Group("/auth")
	auth.POST("/token", rt.authHandler.Token)
	auth.POST("/refresh", rt.authHandler.Refresh)
}

// setupSessionRoutes configures the session lifecycle routes. Mutating
// routes sit behind the auth middleware; read-only ones do not.
func (rt *Router) setupSessionRoutes(g *echo.Group) {
	sessions := g.Group("/sessions")

	guarded := sessions.Group("")
	if rt.jwtManager != nil {
		guarded.Use(middleware.EchoAuth(rt.jwtManager))
	}

	guarded.POST("", rt.sessionHandler.Create)
	guarded.POST("/:id/start", rt.sessionHandler.Start)
	guarded.POST("/:id/end", rt.sessionHandler.End)
	guarded.POST("/:id/messages", rt.sessionHandler.AddMessage)
	guarded.POST("/:id/advance", rt.sessionHandler.Advance)
	guarded.POST("/:id/topics/:topicId/reset", rt.sessionHandler.ResetTopic)
	guarded.POST("/:id/topics/:topicId/reopen", rt.sessionHandler.ReopenTopic)

	sessions.GET("/:id", rt.sessionHandler.Get)
	sessions.GET("/:id/progress", rt.sessionHandler.Progress)
	sessions.GET("/:id/topics", rt.sessionHandler.Topics)
	sessions.GET("/:id/topics/:topicId", rt.sessionHandler.TopicState)
	sessions.GET("/:id/topics/:topicId/messages", rt.sessionHandler.TopicMessages)
}

// setupAssessmentRoutes configures the proposal evaluation routes
func (rt *Router) setupAssessmentRoutes(g *echo.Group) {
	assessments := g.Group("/assessments")

	guarded := assessments.Group("")
	if rt.jwtManager != nil {
		guarded.Use(middleware.EchoAuth(rt.jwtManager))
	}
	guarded.POST("/evaluate", rt.assessmentHandler.Evaluate)

	assessments.GET("/:id", rt.assessmentHandler.GetRecord)
	assessments.GET("/domain/:domain", rt.assessmentHandler.ListByDomain)
	assessments.GET("/session/:id", rt.assessmentHandler.ListBySession)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}
