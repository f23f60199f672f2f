package bot

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"pixel_plaza/internal/config"
	"pixel_plaza/internal/domain"
	"pixel_plaza/internal/game"
	"pixel_plaza/internal/repository"
	"pixel_plaza/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const needStart = "You need to start the game first! Use /start."

// lookupUser resolves a Telegram sender to a registered player.
func (b *Bot) lookupUser(ctx context.Context, tgID int64) (*domain.User, string) {
	user, err := b.users.GetByTgID(ctx, tgID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, needStart
		}
		b.log.Error("user lookup failed", "tg_id", tgID, "error", err)
		return nil, "❌ Something went wrong, please try again later."
	}
	return user, ""
}

func (b *Bot) handleStart(ctx context.Context, msg *tgbotapi.Message) string {
	tgUser := msg.From
	username := tgUser.UserName
	if username == "" {
		username = tgUser.FirstName
	}

	user, err := b.users.GetByTgID(ctx, tgUser.ID)
	isNew := false
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			b.log.Error("user lookup failed", "tg_id", tgUser.ID, "error", err)
			return "❌ Something went wrong, please try again later."
		}
		user = &domain.User{
			TgID:      tgUser.ID,
			Username:  username,
			FirstName: tgUser.FirstName,
		}
		if err := b.users.Create(ctx, user); err != nil {
			b.log.Error("user create failed", "tg_id", tgUser.ID, "error", err)
			return "❌ Registration failed, please try again later."
		}
		isNew = true
	}

	if err := b.tasks.EnsureUserTasks(ctx, user.ID); err != nil {
		b.log.Warn("failed to seed user tasks", "user_id", user.ID, "error", err)
	}

	if isNew {
		if code, ok := strings.CutPrefix(msg.CommandArguments(), "ref_"); ok && code != "" {
			if err := b.referrals.Apply(ctx, user.ID, code); err != nil {
				b.log.Warn("referral code not applied",
					"user_id", user.ID, "code", code, "error", err)
			}
		}
		return fmt.Sprintf(
			"Welcome to Pixel Plaza, %s! 🏙️\n\n"+
				"Start building your pixel empire and earn $PXPT tokens for the upcoming airdrop.\n\n"+
				"Use /help to see all available commands.",
			html.EscapeString(username))
	}

	return fmt.Sprintf(
		"Welcome back to Pixel Plaza, %s! 🏙️\n\n"+
			"Continue building your pixel empire and earning $PXPT tokens.\n\n"+
			"Use /help to see all available commands.",
		html.EscapeString(username))
}

func (b *Bot) handleProfile(ctx context.Context, tgID int64) string {
	user, errMsg := b.lookupUser(ctx, tgID)
	if errMsg != "" {
		return errMsg
	}

	st, err := b.states.GetByUserID(ctx, user.ID)
	if err != nil {
		b.log.Error("state lookup failed", "user_id", user.ID, "error", err)
		return "❌ Error retrieving your game state."
	}

	wallet := "Not set. Use /wallet to set"
	if user.WalletAddress != nil {
		wallet = *user.WalletAddress
	}

	return fmt.Sprintf(`🏙️ <b>Pixel Plaza Profile: %s</b>

<b>$PXPT Balance:</b> %.2f
<b>Level:</b> %d (%d/%d XP)

<b>Resources:</b>
🖌️ Pixels: %d
🧱 Materials: %d
💎 Gems: %d
🔋 Energy: %d/%d

<b>Skills:</b>
⛏️ Mining: %d | 🎨 Art: %d | 🏢 Building: %d | 📈 Trading: %d

<b>Statistics:</b>
🏢 Buildings owned: %d
🎨 Pixel art created: %d
🔥 Daily streak: %d days
👥 Referrals: %d

<b>Wallet:</b> %s

Member since: %s`,
		html.EscapeString(user.Username),
		st.TokenBalance,
		st.Level, st.Experience, game.XPForLevel(st.Level),
		st.Pixels, st.Materials, st.Gems,
		st.Energy, config.MaxEnergy,
		st.MiningSkill, st.ArtSkill, st.BuildingSkill, st.TradingSkill,
		st.BuildingsOwned, st.PixelArtCreated, st.DailyStreak, st.ReferralCount,
		html.EscapeString(wallet),
		user.CreatedAt.Format("2006-01-02"))
}

func (b *Bot) handleWallet(ctx context.Context, tgID int64, args string) string {
	user, errMsg := b.lookupUser(ctx, tgID)
	if errMsg != "" {
		return errMsg
	}

	addr := strings.TrimSpace(args)
	if addr == "" {
		if user.WalletAddress != nil {
			return fmt.Sprintf(
				"Your current wallet address: <code>%s</code>\n\n"+
					"To update it, use /wallet [new_address]",
				html.EscapeString(*user.WalletAddress))
		}
		return "You haven't set your wallet address yet. Set it to be eligible for the airdrop.\n\n" +
			"Use /wallet [your_address]."
	}

	if len(addr) < 10 || len(addr) > 128 {
		return "⚠️ That doesn't look like a valid wallet address."
	}

	if err := b.users.SetWalletAddress(ctx, user.ID, addr); err != nil {
		b.log.Error("wallet update failed", "user_id", user.ID, "error", err)
		return "❌ Failed to save wallet address, please try again later."
	}
	if err := b.tasks.AdvanceWallet(ctx, user.ID); err != nil {
		b.log.Warn("wallet task advance failed", "user_id", user.ID, "error", err)
	}

	return fmt.Sprintf(
		"Your wallet address has been set to: <code>%s</code>\n\n"+
			"You'll receive your $PXPT tokens to this address during the airdrop.",
		html.EscapeString(addr))
}

// formatResult renders an engine outcome for chat.
func formatResult(icon string, res *game.Result) string {
	if !res.Success {
		return "⚠️ " + html.EscapeString(res.Message)
	}

	out := icon + " " + html.EscapeString(res.Message)
	if res.LevelUp && res.GameState != nil {
		out += fmt.Sprintf("\n🎉 Level Up! You're now level %d!", res.GameState.Level)
	}
	if res.SkillUp {
		out += "\n📚 Skill improved!"
	}
	if res.GameState != nil {
		out += fmt.Sprintf("\n\nBalance: %.2f $PXPT | Energy: %d/%d",
			res.GameState.TokenBalance, res.GameState.Energy, config.MaxEnergy)
	}
	return out
}

func (b *Bot) runAction(ctx context.Context, tgID int64, icon string,
	run func(ctx context.Context, userID int64) (*game.Result, error)) string {

	user, errMsg := b.lookupUser(ctx, tgID)
	if errMsg != "" {
		return errMsg
	}

	res, err := run(ctx, user.ID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return needStart
		}
		b.log.Error("action failed", "user_id", user.ID, "error", err)
		return "❌ Something went wrong, please try again later."
	}
	return formatResult(icon, res)
}

func (b *Bot) handleDaily(ctx context.Context, tgID int64) string {
	return b.runAction(ctx, tgID, "✅", b.actions.ClaimDaily)
}

func (b *Bot) handleMine(ctx context.Context, tgID int64) string {
	return b.runAction(ctx, tgID, "⛏️", b.actions.Mine)
}

func (b *Bot) handleCreateArt(ctx context.Context, tgID int64) string {
	return b.runAction(ctx, tgID, "🎨", b.actions.CreateArt)
}

func (b *Bot) handleCollect(ctx context.Context, tgID int64) string {
	return b.runAction(ctx, tgID, "💰", b.actions.Collect)
}

func (b *Bot) handleBuild(ctx context.Context, tgID int64, args string) string {
	buildingType := strings.TrimSpace(strings.ToLower(args))
	if buildingType == "" {
		return b.buildingCatalog(ctx, tgID)
	}

	return b.runAction(ctx, tgID, "🏢", func(ctx context.Context, userID int64) (*game.Result, error) {
		return b.actions.Build(ctx, userID, buildingType)
	})
}

func (b *Bot) buildingCatalog(ctx context.Context, tgID int64) string {
	user, errMsg := b.lookupUser(ctx, tgID)
	if errMsg != "" {
		return errMsg
	}

	st, err := b.states.GetByUserID(ctx, user.ID)
	if err != nil {
		b.log.Error("state lookup failed", "user_id", user.ID, "error", err)
		return "❌ Error retrieving your game state."
	}

	var sb strings.Builder
	sb.WriteString("🏢 <b>Building Catalog</b>\n\n")
	for _, spec := range config.BuildingCatalog {
		lock := ""
		if st.Level < spec.UnlockLevel {
			lock = fmt.Sprintf(" 🔒 (level %d)", spec.UnlockLevel)
		}
		fmt.Fprintf(&sb, "<b>%s</b>%s\n/build %s — from %.0f $PXPT, produces %s\n\n",
			spec.Name, lock, spec.Type, spec.BaseCost, spec.Produces)
	}
	fmt.Fprintf(&sb, "Balance: %.2f $PXPT", st.TokenBalance)
	return sb.String()
}

func (b *Bot) handleLeaderboard(ctx context.Context) string {
	entries, err := b.admin.Leaderboard(ctx, 10)
	if err != nil {
		b.log.Error("leaderboard query failed", "error", err)
		return "❌ Something went wrong, please try again later."
	}
	if len(entries) == 0 {
		return "No players on the leaderboard yet."
	}

	var sb strings.Builder
	sb.WriteString("🏆 <b>$PXPT Leaderboard</b>\n\n")
	medals := []string{"🥇", "🥈", "🥉"}
	for i, e := range entries {
		medal := fmt.Sprintf("%d.", e.Rank)
		if i < len(medals) {
			medal = medals[i]
		}
		fmt.Fprintf(&sb, "%s %s: %.2f $PXPT (Level %d)\n",
			medal, html.EscapeString(e.Username), e.TokenBalance, e.Level)
	}
	return sb.String()
}

func (b *Bot) handleInvite(ctx context.Context, tgID int64) string {
	user, errMsg := b.lookupUser(ctx, tgID)
	if errMsg != "" {
		return errMsg
	}

	code, err := b.referrals.Code(ctx, user.ID)
	if err != nil {
		if errors.Is(err, service.ErrLevelTooLow) {
			return fmt.Sprintf(
				"🔒 Referral links unlock at level %d. Keep playing!",
				config.ReferrerLevelRequirement)
		}
		b.log.Error("referral code failed", "user_id", user.ID, "error", err)
		return "❌ Something went wrong, please try again later."
	}

	link := "https://t.me/" + b.cfg.BotUsername + "?start=ref_" + code

	return fmt.Sprintf(`🔗 <b>Your Referral Link</b>

%s

Share this link with friends! You'll earn %.0f $PXPT for each new player who joins, and they start with a %.0f $PXPT bonus.`,
		link, config.ReferrerBonus, config.RefereeBonus)
}

func (b *Bot) handleGlobalStats(ctx context.Context) string {
	stats, err := b.admin.GetStats(ctx)
	if err != nil {
		b.log.Error("stats query failed", "error", err)
		return "❌ Something went wrong, please try again later."
	}

	return fmt.Sprintf(`📊 <b>Pixel Plaza Statistics</b>

👥 Total players: %d
🪙 $PXPT in circulation: %.2f
🏢 Total buildings: %d
🎨 Pixel art created: %d
🎪 Active events: %d

<b>Token Information:</b>
Name: Pixel Plaza Token ($PXPT)
Max supply: %d
Airdrop pool: %d`,
		stats.TotalUsers,
		stats.TotalTokens,
		stats.TotalBuildings,
		stats.ArtworksCreated,
		stats.ActiveEvents,
		config.MaxSupply,
		config.AirdropAllocation)
}
