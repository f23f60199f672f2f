package handlers

import (
	"pixel_plaza/internal/config"
	"pixel_plaza/internal/repository"
	"pixel_plaza/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Handler struct {
	DB  *pgxpool.Pool
	Cfg *config.Config

	Actions   *service.ActionService
	Tasks     *service.TaskService
	Referrals *service.ReferralService
	Games     *service.MiniGameService
	Events    *service.EventService
	Market    *service.MarketService
	Admin     *service.AdminService

	Users        *repository.UserRepository
	States       *repository.StateRepository
	Buildings    *repository.BuildingRepository
	Transactions *repository.TransactionRepository
}

// NewHandler wires the request handlers. The event and task services are
// shared with the job scheduler and the bot, so they come in from outside.
func NewHandler(db *pgxpool.Pool, cfg *config.Config, events *service.EventService, tasks *service.TaskService) *Handler {
	return &Handler{
		DB:  db,
		Cfg: cfg,

		Actions:   service.NewActionService(db, events),
		Tasks:     tasks,
		Referrals: service.NewReferralService(db),
		Games:     service.NewMiniGameService(db),
		Events:    events,
		Market:    service.NewMarketService(db),
		Admin:     service.NewAdminService(db),

		Users:        repository.NewUserRepository(db),
		States:       repository.NewStateRepository(db),
		Buildings:    repository.NewBuildingRepository(db),
		Transactions: repository.NewTransactionRepository(db),
	}
}

// getUserID extracts the authenticated user id from the Gin context.
func getUserID(c interface{ Get(string) (any, bool) }) (int64, bool) {
	uidVal, ok := c.Get("user_id")
	if !ok {
		return 0, false
	}
	switch v := uidVal.(type) {
	case int64:
		return v, true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}
