package bot

import (
	"context"
	"fmt"
	"html"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (b *Bot) handleAdminStats(ctx context.Context) string {
	stats, err := b.admin.GetStats(ctx)
	if err != nil {
		return fmt.Sprintf("❌ Error: %v", err)
	}

	return fmt.Sprintf(`📊 <b>Platform Statistics</b>

<b>👥 Players:</b>
• Total: %d
• New today: %d
• Active today: %d
• Active this week: %d

<b>💰 Economy:</b>
• $PXPT in circulation: %.2f
• Pixels: %d
• Gems: %d
• Buildings: %d
• Artworks: %d

<b>🎮 Activity:</b>
• Mini-games today: %d
• Active events: %d

<b>🪂 Airdrop:</b>
• Wallets set: %d`,
		stats.TotalUsers,
		stats.NewUsersToday,
		stats.ActiveUsersToday,
		stats.ActiveUsersWeek,
		stats.TotalTokens,
		stats.TotalPixels,
		stats.TotalGems,
		stats.TotalBuildings,
		stats.ArtworksCreated,
		stats.GamesPlayedToday,
		stats.ActiveEvents,
		stats.WalletsSet)
}

func (b *Bot) handleAdminUser(ctx context.Context, args string) string {
	args = strings.TrimSpace(args)
	if args == "" {
		return "❌ Usage: /auser <@username|tg_id>"
	}

	user, err := b.admin.GetUser(ctx, strings.TrimPrefix(args, "@"))
	if err != nil {
		return fmt.Sprintf("❌ User not found: %v", err)
	}

	return fmt.Sprintf(`👤 <b>User Info</b>

• ID: %d
• Telegram ID: %d
• Username: @%s
• Name: %s
• Level: %d
• 🪙 $PXPT: %.2f
• 🖌️ Pixels: %d
• 💎 Gems: %d
• 📅 Joined: %s`,
		user.ID,
		user.TgID,
		html.EscapeString(user.Username),
		html.EscapeString(user.FirstName),
		user.Level,
		user.TokenBalance,
		user.Pixels,
		user.Gems,
		user.CreatedAt.Format("2006-01-02"))
}

func (b *Bot) handleGrant(ctx context.Context, args string) string {
	parts := strings.Fields(args)
	if len(parts) != 2 {
		return "❌ Usage: /grant <@username|tg_id> <amount>"
	}

	amount, err := strconv.ParseFloat(parts[1], 64)
	if err != nil || amount <= 0 {
		return "❌ Amount must be a positive number"
	}

	user, err := b.admin.GetUser(ctx, strings.TrimPrefix(parts[0], "@"))
	if err != nil {
		return fmt.Sprintf("❌ User not found: %v", err)
	}

	balance, err := b.admin.GrantTokens(ctx, user.ID, amount, "granted via bot")
	if err != nil {
		return fmt.Sprintf("❌ Error: %v", err)
	}

	return fmt.Sprintf("✅ Granted %.2f $PXPT to @%s. New balance: %.2f",
		amount, html.EscapeString(user.Username), balance)
}

func (b *Bot) handleBroadcastStart(adminID int64) string {
	b.broadcastPending[adminID] = true
	return "📢 Send the broadcast message now, or /cancel to abort."
}

func (b *Bot) executeBroadcast(msg *tgbotapi.Message) {
	adminID := msg.From.ID
	delete(b.broadcastPending, adminID)

	if msg.Text == "" {
		b.reply(msg.Chat.ID, msg.MessageID, "❌ Broadcast cancelled (text only)", false)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	tgIDs, err := b.admin.GetAllUserTgIDs(ctx)
	if err != nil {
		b.reply(msg.Chat.ID, msg.MessageID, fmt.Sprintf("❌ Error: %v", err), false)
		return
	}
	if len(tgIDs) == 0 {
		b.reply(msg.Chat.ID, msg.MessageID, "❌ No users to broadcast to", false)
		return
	}

	sent, failed := 0, 0
	for _, tgID := range tgIDs {
		select {
		case <-ctx.Done():
			b.log.Warn("broadcast cancelled", "sent", sent, "failed", failed)
			return
		case <-b.stopCh:
			return
		default:
		}

		out := tgbotapi.NewMessage(tgID, msg.Text)
		if _, err := b.bot.Send(out); err != nil {
			failed++
		} else {
			sent++
		}

		// Stay under the Telegram per-second send limit.
		time.Sleep(50 * time.Millisecond)
	}

	b.log.Info("broadcast finished", "sent", sent, "failed", failed)
	b.reply(msg.Chat.ID, msg.MessageID,
		fmt.Sprintf("📢 <b>Broadcast finished</b>\n\n✅ Sent: %d\n❌ Failed: %d", sent, failed), false)
}
