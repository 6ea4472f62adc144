package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"fin-approvals/internal/domain/user"
	"fin-approvals/internal/handler/api"
	"fin-approvals/internal/handler/middleware"
	"fin-approvals/internal/pkg/config"
	"fin-approvals/internal/pkg/ratelimit"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	authHandler *api.AuthHandler,
	requestHandler *api.RequestHandler,
	approvalHandler *api.ApprovalHandler,
	authMiddleware *middleware.AuthMiddleware,
	loginLimiter *ratelimit.Limiter,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, authHandler, requestHandler, approvalHandler, authMiddleware, loginLimiter)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	authHandler *api.AuthHandler,
	requestHandler *api.RequestHandler,
	approvalHandler *api.ApprovalHandler,
	authMiddleware *middleware.AuthMiddleware,
	loginLimiter *ratelimit.Limiter,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: authHandler.Login, Mw: []gin.HandlerFunc{middleware.LoginRateLimit(loginLimiter)}},
				{Method: http.MethodPost, Path: "/refresh", Handler: authHandler.Refresh},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/logout", Handler: authHandler.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: authHandler.Me},
			})
		}

		requests := apiGroup.Group("/requests")
		requests.Use(authMiddleware.RequireAuth())
		{
			addRoutes(requests, []route{
				{Method: http.MethodPost, Path: "", Handler: requestHandler.CreateRequest, Mw: []gin.HandlerFunc{authMiddleware.RequireRole(user.RoleAgent)}},
				{Method: http.MethodGet, Path: "", Handler: requestHandler.ListMyRequests, Mw: []gin.HandlerFunc{authMiddleware.RequireRole(user.RoleAgent)}},
				{Method: http.MethodGet, Path: "/:id", Handler: requestHandler.GetRequest},
				{Method: http.MethodPost, Path: "/:id/decision", Handler: approvalHandler.Act, Mw: []gin.HandlerFunc{authMiddleware.RequireRole(user.RoleTeamLead, user.RoleDivisionManager, user.RoleSalesDirector)}},
			})
		}

		approvals := apiGroup.Group("/approvals")
		approvals.Use(authMiddleware.RequireAuth())
		{
			addRoutes(approvals, []route{
				{Method: http.MethodGet, Path: "/pending", Handler: approvalHandler.ListPending},
				{Method: http.MethodGet, Path: "/history", Handler: approvalHandler.History},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
