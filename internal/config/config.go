package config

import (
	"os"
	"strconv"
	"strings"

	"pixel_plaza/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort     string
	DatabaseURL string
	BotToken    string
	BotUsername string
	BotEnabled  bool
	JWTSecret   string
	WebAppURL   string

	AdminPassword    string
	AdminTelegramIDs []int64

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	APIRateLimit         int
	APIRateWindowSeconds int

	// Per-user economy action limiter (the API limiter is per IP).
	ActionRateLimit         int
	ActionRateWindowSeconds int

	// Policy for one-time tasks after their reward is claimed.
	// The original economy reset every claimed task, one-time included;
	// locking them is the intended behavior.
	OneTimeTasksLock bool
}

// Load reads configuration from the environment (.env supported).
func Load() *Config {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Fatal("DATABASE_URL is not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	botToken := os.Getenv("BOT_TOKEN")
	if botToken == "" {
		logger.Fatal("BOT_TOKEN is not set")
	}

	botUsername := os.Getenv("BOT_USERNAME")
	if botUsername == "" {
		botUsername = "PixelPlazaBot"
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	webAppURL := os.Getenv("WEBAPP_URL")
	if webAppURL == "" {
		webAppURL = "http://localhost:" + port
	}

	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "pixel_plaza_admin"
	}

	var adminIDs []int64
	if v := os.Getenv("ADMIN_TELEGRAM_IDS"); v != "" {
		for _, idStr := range strings.Split(v, ",") {
			idStr = strings.TrimSpace(idStr)
			if id, err := strconv.ParseInt(idStr, 10, 64); err == nil {
				adminIDs = append(adminIDs, id)
			}
		}
	}

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			redisDB = n
		}
	}

	apiRateLimit := 30
	if v := os.Getenv("API_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			apiRateLimit = n
		}
	}

	apiRateWindow := 60
	if v := os.Getenv("API_RATE_WINDOW_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			apiRateWindow = n
		}
	}

	actionRateLimit := 60
	if v := os.Getenv("ACTION_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			actionRateLimit = n
		}
	}

	actionRateWindow := 60
	if v := os.Getenv("ACTION_RATE_WINDOW_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			actionRateWindow = n
		}
	}

	oneTimeLock := true
	if os.Getenv("ONE_TIME_TASKS_RECLAIMABLE") == "true" {
		oneTimeLock = false
	}

	return &Config{
		AppPort:                 port,
		DatabaseURL:             dbURL,
		BotToken:                botToken,
		BotUsername:             botUsername,
		BotEnabled:              os.Getenv("BOT_ENABLED") != "false",
		JWTSecret:               jwtSecret,
		WebAppURL:               webAppURL,
		AdminPassword:           adminPassword,
		AdminTelegramIDs:        adminIDs,
		RedisAddr:               os.Getenv("REDIS_ADDR"),
		RedisPassword:           os.Getenv("REDIS_PASSWORD"),
		RedisDB:                 redisDB,
		APIRateLimit:            apiRateLimit,
		APIRateWindowSeconds:    apiRateWindow,
		ActionRateLimit:         actionRateLimit,
		ActionRateWindowSeconds: actionRateWindow,
		OneTimeTasksLock:        oneTimeLock,
	}
}
