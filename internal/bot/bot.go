package bot

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"pixel_plaza/internal/config"
	"pixel_plaza/internal/logger"
	"pixel_plaza/internal/repository"
	"pixel_plaza/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Bot serves the chat-side of the game: player commands mirror the web API
// actions, admin commands are gated by Telegram ID.
type Bot struct {
	bot *tgbotapi.BotAPI
	cfg *config.Config

	users  *repository.UserRepository
	states *repository.StateRepository

	actions   *service.ActionService
	tasks     *service.TaskService
	referrals *service.ReferralService
	admin     *service.AdminService

	adminIDs []int64

	stopCh chan struct{}
	wg     sync.WaitGroup
	log    *slog.Logger

	// Admins who issued /broadcast and owe us the message text.
	broadcastPending map[int64]bool
}

func New(cfg *config.Config, db *pgxpool.Pool,
	events *service.EventService, tasks *service.TaskService) (*Bot, error) {

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, err
	}

	log := logger.With("component", "bot")
	log.Info("bot authorized", "username", api.Self.UserName)

	return &Bot{
		bot:              api,
		cfg:              cfg,
		users:            repository.NewUserRepository(db),
		states:           repository.NewStateRepository(db),
		actions:          service.NewActionService(db, events),
		tasks:            tasks,
		referrals:        service.NewReferralService(db),
		admin:            service.NewAdminService(db),
		adminIDs:         cfg.AdminTelegramIDs,
		stopCh:           make(chan struct{}),
		log:              log,
		broadcastPending: make(map[int64]bool),
	}, nil
}

// Start runs the long-polling update loop until Stop is called.
func (b *Bot) Start() {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.bot.GetUpdatesChan(u)
	b.log.Info("starting bot update loop")

	for {
		select {
		case <-b.stopCh:
			b.log.Info("stopping bot update loop")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.dispatch(update)
		}
	}
}

func (b *Bot) dispatch(update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		b.wg.Add(1)
		go func(q *tgbotapi.CallbackQuery) {
			defer b.wg.Done()
			b.handleCallback(q)
		}(update.CallbackQuery)
		return
	}

	if update.Message == nil {
		return
	}
	msg := update.Message

	if b.isAdmin(msg.From.ID) && b.broadcastPending[msg.From.ID] && !msg.IsCommand() {
		b.wg.Add(1)
		go func(m *tgbotapi.Message) {
			defer b.wg.Done()
			b.executeBroadcast(m)
		}(msg)
		return
	}

	if !msg.IsCommand() {
		return
	}

	b.wg.Add(1)
	go func(m *tgbotapi.Message) {
		defer b.wg.Done()
		b.handleCommand(m)
	}(msg)
}

// Stop gracefully stops the bot.
func (b *Bot) Stop() {
	b.log.Info("stopping bot...")
	close(b.stopCh)
	b.bot.StopReceivingUpdates()

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		b.log.Info("bot stopped gracefully")
	case <-time.After(10 * time.Second):
		b.log.Warn("bot shutdown timeout, some handlers may not have completed")
	}
}

func (b *Bot) isAdmin(userID int64) bool {
	for _, id := range b.adminIDs {
		if id == userID {
			return true
		}
	}
	return false
}

func (b *Bot) handleCommand(msg *tgbotapi.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var response string
	withMenu := false

	switch msg.Command() {
	case "start":
		response = b.handleStart(ctx, msg)
		withMenu = true

	case "help":
		response = b.helpMessage(b.isAdmin(msg.From.ID))

	case "menu":
		response = "🏙️ <b>Pixel Plaza</b>\n\nPick an action:"
		withMenu = true

	case "profile":
		response = b.handleProfile(ctx, msg.From.ID)

	case "wallet":
		response = b.handleWallet(ctx, msg.From.ID, msg.CommandArguments())

	case "daily":
		response = b.handleDaily(ctx, msg.From.ID)

	case "mine":
		response = b.handleMine(ctx, msg.From.ID)

	case "create":
		response = b.handleCreateArt(ctx, msg.From.ID)

	case "build":
		response = b.handleBuild(ctx, msg.From.ID, msg.CommandArguments())

	case "collect":
		response = b.handleCollect(ctx, msg.From.ID)

	case "leaderboard":
		response = b.handleLeaderboard(ctx)

	case "invite":
		response = b.handleInvite(ctx, msg.From.ID)

	case "stats":
		response = b.handleGlobalStats(ctx)

	case "app":
		b.sendWebAppButton(msg.Chat.ID)
		return

	// admin-only commands
	case "astats":
		if !b.isAdmin(msg.From.ID) {
			return
		}
		response = b.handleAdminStats(ctx)

	case "auser":
		if !b.isAdmin(msg.From.ID) {
			return
		}
		response = b.handleAdminUser(ctx, msg.CommandArguments())

	case "grant":
		if !b.isAdmin(msg.From.ID) {
			return
		}
		response = b.handleGrant(ctx, msg.CommandArguments())

	case "broadcast":
		if !b.isAdmin(msg.From.ID) {
			return
		}
		response = b.handleBroadcastStart(msg.From.ID)

	case "cancel":
		if !b.isAdmin(msg.From.ID) {
			return
		}
		delete(b.broadcastPending, msg.From.ID)
		response = "❌ Broadcast cancelled"

	default:
		response = "❌ Unknown command. Use /help for the list of commands."
	}

	b.reply(msg.Chat.ID, msg.MessageID, response, withMenu)
}

func (b *Bot) handleCallback(q *tgbotapi.CallbackQuery) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	callback := tgbotapi.NewCallback(q.ID, "")
	if _, err := b.bot.Request(callback); err != nil {
		b.log.Warn("callback ack failed", "error", err)
	}

	var response string
	switch q.Data {
	case "profile":
		response = b.handleProfile(ctx, q.From.ID)
	case "daily":
		response = b.handleDaily(ctx, q.From.ID)
	case "mine":
		response = b.handleMine(ctx, q.From.ID)
	case "create":
		response = b.handleCreateArt(ctx, q.From.ID)
	case "build":
		response = b.handleBuild(ctx, q.From.ID, "")
	case "collect":
		response = b.handleCollect(ctx, q.From.ID)
	case "leaderboard":
		response = b.handleLeaderboard(ctx)
	case "invite":
		response = b.handleInvite(ctx, q.From.ID)
	case "help":
		response = b.helpMessage(b.isAdmin(q.From.ID))
	default:
		return
	}

	b.reply(q.Message.Chat.ID, 0, response, false)
}

func (b *Bot) reply(chatID int64, replyTo int, text string, withMenu bool) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "HTML"
	if replyTo != 0 {
		msg.ReplyToMessageID = replyTo
	}
	if withMenu {
		msg.ReplyMarkup = mainMenuKeyboard()
	}

	if _, err := b.bot.Send(msg); err != nil {
		b.log.Error("error sending message", "error", err)
	}
}

func mainMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 Profile", "profile"),
			tgbotapi.NewInlineKeyboardButtonData("🪙 Daily Claim", "daily"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⛏️ Mine", "mine"),
			tgbotapi.NewInlineKeyboardButtonData("🎨 Create Art", "create"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🏢 Build", "build"),
			tgbotapi.NewInlineKeyboardButtonData("💰 Collect", "collect"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🏆 Leaderboard", "leaderboard"),
			tgbotapi.NewInlineKeyboardButtonData("🔗 Invite", "invite"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("ℹ️ Help", "help"),
		),
	)
}

func (b *Bot) sendWebAppButton(chatID int64) {
	msg := tgbotapi.NewMessage(chatID,
		"📱 <b>Pixel Plaza Web App</b>\n\n"+
			"Open the app for the full experience: mini-games, tasks, market prices and live events.")
	msg.ParseMode = "HTML"
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("Open Pixel Plaza", b.cfg.WebAppURL),
		),
	)

	if _, err := b.bot.Send(msg); err != nil {
		b.log.Error("error sending message", "error", err)
	}
}

func (b *Bot) helpMessage(admin bool) string {
	help := `🏙️ <b>Pixel Plaza Commands</b>

<b>Basics:</b>
/start - Start the game
/help - Show this help message
/profile - View your profile
/wallet [address] - Set or view your wallet address
/app - Open the web app

<b>Game:</b>
/daily - Claim daily reward
/mine - Mine for $PXPT tokens
/create - Create pixel art for rewards
/build [type] - Purchase buildings for passive income
/collect - Collect income from your buildings

<b>Community:</b>
/leaderboard - View top players
/invite - Get your referral link
/stats - View game statistics

Build your pixel empire and earn $PXPT for the airdrop! 🚀`

	if admin {
		help += `

<b>Admin:</b>
/astats - Platform statistics
/auser &lt;@username|tg_id&gt; - User info
/grant &lt;@username|tg_id&gt; &lt;amount&gt; - Grant tokens
/broadcast - Send a message to all players`
	}
	return help
}
