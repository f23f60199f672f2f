package http

import (
	"time"

	"pixel_plaza/internal/config"
	"pixel_plaza/internal/domain"
	"pixel_plaza/internal/http/handlers"
	"pixel_plaza/internal/http/middleware"
	"pixel_plaza/internal/service"
	"pixel_plaza/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes wires the whole HTTP surface: auth, game actions, tasks,
// mini-games, referrals, events, leaderboard, operator endpoints and the
// websocket announcement feed.
func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, cfg *config.Config, version string,
	events *service.EventService, tasks *service.TaskService) *handlers.Handler {

	h := handlers.NewHandler(db, cfg, events, tasks)
	healthHandler := handlers.NewHealthHandler(db, version)

	apiRateWindow := time.Duration(cfg.APIRateWindowSeconds) * time.Second

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	// Prometheus scrape endpoint
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Websocket announcement feed (new events, broadcasts)
	hub := ws.NewHub()
	events.SetNotify(func(ev *domain.GameEvent) {
		hub.Broadcast("event_started", ev)
	})
	r.GET("/ws", ws.Handler(hub))

	v1 := r.Group("/api/v1")
	v1.Use(middleware.RedisRateLimit(cfg.APIRateLimit, apiRateWindow))
	registerAPIRoutes(v1, h, cfg)

	return h
}

func registerAPIRoutes(api *gin.RouterGroup, h *handlers.Handler, cfg *config.Config) {
	// Auth gets its own tighter window on top of the API limiter
	api.POST("/auth", middleware.RedisRateLimit(5, time.Minute), h.Auth)

	// Profile
	api.GET("/me", middleware.JWT(), h.Me)
	api.GET("/profile", middleware.JWT(), h.Profile)
	api.GET("/wallet", middleware.JWT(), h.Wallet)
	api.POST("/wallet", middleware.JWT(), h.SetWallet)
	api.GET("/history", middleware.JWT(), h.History)

	// Economy actions, limited per user rather than per IP
	actionRL := middleware.ActionRateLimit(cfg.ActionRateLimit,
		time.Duration(cfg.ActionRateWindowSeconds)*time.Second)
	actions := api.Group("/actions")
	actions.Use(middleware.JWT(), actionRL)
	{
		actions.POST("/daily", h.Daily)
		actions.POST("/mine", h.Mine)
		actions.POST("/create-art", h.CreateArt)
		actions.POST("/build", h.Build)
		actions.POST("/collect", h.Collect)
	}

	// Buildings catalog
	api.GET("/buildings", middleware.JWT(), h.BuildingCatalog)

	// Tasks
	api.GET("/tasks", middleware.JWT(), h.MyTasks)
	api.POST("/tasks/:id/claim", middleware.JWT(), h.ClaimTaskReward)

	// Mini-games
	api.GET("/games", middleware.JWT(), h.MiniGames)
	api.POST("/games/:type/play", middleware.JWT(), actionRL, h.PlayMiniGame)

	// Referral system
	referral := api.Group("/referral")
	referral.Use(middleware.JWT())
	{
		referral.GET("/code", h.ReferralCode)
		referral.GET("/link", h.ReferralLink)
		referral.GET("/stats", h.ReferralStats)
		referral.POST("/apply", h.ApplyReferralCode)
	}

	// Market (prices public, orders per user)
	api.GET("/market/prices", h.MarketPrices)
	api.GET("/market/history/:resource", h.MarketHistory)
	api.GET("/market/orders", middleware.JWT(), h.MarketOrders)

	// Events
	api.GET("/events", h.ActiveEvents)
	api.GET("/events/history", h.EventHistory)

	// Leaderboard
	api.GET("/leaderboard", h.Leaderboard)
	api.GET("/leaderboard/rank", middleware.JWT(), h.MyRank)

	// Operator endpoints, password-gated and limited in-process
	admin := api.Group("/admin")
	admin.Use(middleware.SimpleRateLimit(30, time.Minute), h.AdminAuth)
	{
		admin.GET("/stats", h.AdminStats)
		admin.GET("/airdrop.csv", h.AdminAirdropCSV)
		admin.GET("/users/:id", h.AdminUser)
		admin.POST("/grant", h.AdminGrant)
		admin.POST("/events/:id/end", h.AdminEndEvent)
	}
}
