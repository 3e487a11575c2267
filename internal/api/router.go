package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fantalega/asta/internal/api/handler"
	"github.com/fantalega/asta/internal/api/middleware"
	"github.com/fantalega/asta/internal/catalog"
	"github.com/fantalega/asta/internal/config"
	"github.com/fantalega/asta/internal/service"
	"github.com/fantalega/asta/internal/ws"
)

// RouterDeps bundles every dependency needed to build the router.
// Populated once in main() and passed to SetupRouter.
type RouterDeps struct {
	LedgerSvc *service.LedgerService
	Catalog   *catalog.Catalog
	Hub       *ws.Hub
	Cfg       *config.Config
}

// SetupRouter creates the Gin engine with all routes, middleware, CORS, and
// rate limiting.
func SetupRouter(deps RouterDeps) *gin.Engine {
	if deps.Cfg.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	// ── CORS ─────────────────────────────────────────────────────────────────
	r.Use(corsMiddleware(deps.Cfg))

	// ── Health check ─────────────────────────────────────────────────────────
	r.GET("/health", func(c *gin.Context) {
		status := gin.H{"status": "ok"}
		if deps.Hub != nil {
			status["ws_clients"] = deps.Hub.ConnectedCount()
		}
		c.JSON(http.StatusOK, status)
	})

	// ── Handlers ─────────────────────────────────────────────────────────────
	leagueH := handler.NewLeagueHandler(deps.LedgerSvc)
	teamH := handler.NewTeamHandler(deps.LedgerSvc)
	catalogH := handler.NewCatalogHandler(deps.Catalog)

	// ── Rate limiters ─────────────────────────────────────────────────────────
	// Mutations get a tighter budget than reads: the board polls the overview,
	// but a human auctioneer cannot legitimately record 10 purchases a second.
	writeRL := middleware.RateLimitMiddleware(10)
	readRL := middleware.RateLimitMiddleware(50)

	api := r.Group("/api")
	api.Use(readRL)
	{
		// ── League ───────────────────────────────────────────────────────────
		league := api.Group("/league")
		{
			league.GET("", leagueH.GetOverview)
			league.GET("/history", leagueH.GetHistory)
			league.PUT("/followed-team", writeRL, leagueH.SetFollowedTeam)
		}

		// ── Teams ────────────────────────────────────────────────────────────
		teams := api.Group("/teams")
		{
			teams.GET("", teamH.ListTeams)
			teams.GET("/:name", teamH.GetTeam)
			teams.GET("/:name/targets", teamH.GetTargets)
			teams.PATCH("/:name", writeRL, teamH.Rename)
			teams.POST("/:name/roster", writeRL, teamH.Acquire)
			teams.DELETE("/:name/roster/:position/:player", writeRL, teamH.Remove)
		}

		// ── Catalog ──────────────────────────────────────────────────────────
		api.GET("/catalog", catalogH.Search)
	}

	// ── WebSocket ─────────────────────────────────────────────────────────────
	if deps.Hub != nil {
		r.GET("/ws", func(c *gin.Context) {
			deps.Hub.ServeWs(c.Writer, c.Request)
		})
	}

	return r
}

// ── CORS helper ───────────────────────────────────────────────────────────────

// corsMiddleware sets CORS headers. In development all origins are allowed;
// in production only the configured origins.
func corsMiddleware(cfg *config.Config) gin.HandlerFunc {
	allowed := make(map[string]bool)
	for _, o := range strings.Split(cfg.Server.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			allowed[o] = true
		}
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		if !cfg.IsProd() {
			c.Header("Access-Control-Allow-Origin", "*")
		} else if origin != "" && allowed[origin] {
			c.Header("Access-Control-Allow-Origin", origin)
		}

		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
