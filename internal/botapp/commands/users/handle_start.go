package users

import (
	"context"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/mad2moi/telegram-bot/internal/botapp/commands"
	"github.com/mad2moi/telegram-bot/internal/i18n"
	"github.com/mad2moi/telegram-bot/internal/logger"
	"github.com/mad2moi/telegram-bot/internal/stats"
	"github.com/mad2moi/telegram-bot/internal/storage"
	"github.com/mad2moi/telegram-bot/internal/tracking"
)

// HandleStart handles the /start command.
// In a group it points to the private chat; in private it runs the funnel:
// welcome, menu, then a follow-up scheduled for later.
func HandleStart(ctx context.Context, b commands.Sender, u *models.Update, deps commands.Deps) {
	if u.Message == nil || u.Message.From == nil {
		return
	}
	if commands.IsGroup(u.Message.Chat) {
		sendGroupRedirect(ctx, b, u, deps)
		return
	}
	if !commands.IsPrivate(u.Message.Chat) {
		return
	}

	lg := logger.ForUpdate(u)
	user := u.Message.From
	chatID := u.Message.Chat.ID
	lang := userLang(ctx, deps, user)
	loc := i18n.Localizer(lang)
	deps.Stats.Inc(stats.DMStart)

	// Each step stands alone; a failed send does not stop the next one.
	send(ctx, b, deps, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        i18n.T(loc, "welcome_dm"),
		ReplyMarkup: siteKeyboard(loc, deps.Links, tracking.StepWelcomeDM),
	}, lg)

	send(ctx, b, deps, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        i18n.T(loc, "menu_prompt"),
		ReplyMarkup: menuKeyboard(loc),
	}, lg)

	scheduleFollowUp(ctx, user.ID, chatID, lang, deps, lg)

	lg.Infof("Start command handled")
}

// HandleHelp handles the /help command.
func HandleHelp(ctx context.Context, b commands.Sender, u *models.Update, deps commands.Deps) {
	if u.Message == nil {
		return
	}
	if commands.IsGroup(u.Message.Chat) {
		sendGroupRedirect(ctx, b, u, deps)
		return
	}

	lg := logger.ForUpdate(u)
	loc := i18n.Localizer(userLang(ctx, deps, u.Message.From))
	deps.Stats.Inc(stats.Help)

	send(ctx, b, deps, &bot.SendMessageParams{
		ChatID:      u.Message.Chat.ID,
		Text:        i18n.T(loc, "help_text"),
		ReplyMarkup: siteKeyboard(loc, deps.Links, tracking.StepHelp),
	}, lg)
}

// --- Private ---

// sendGroupRedirect answers a group command with the private chat deep link.
func sendGroupRedirect(ctx context.Context, b commands.Sender, u *models.Update, deps commands.Deps) {
	lg := logger.ForUpdate(u)
	loc := i18n.Localizer(deps.Funnel.DefaultLang())
	deps.Stats.Inc(stats.GroupRedirect)

	link := tracking.PrivateChatURL(deps.BotUsername, startPayload)
	send(ctx, b, deps, &bot.SendMessageParams{
		ChatID: u.Message.Chat.ID,
		Text:   i18n.TWithData(loc, "group_redirect", map[string]any{"Link": link}),
		ReplyParameters: &models.ReplyParameters{
			MessageID:                u.Message.ID,
			AllowSendingWithoutReply: true,
		},
	}, lg)
}

func scheduleFollowUp(ctx context.Context, userID, chatID int64, lang string, deps commands.Deps, lg logger.TgLogger) {
	if deps.FollowUps == nil || deps.FollowUpDelay <= 0 {
		return
	}
	err := deps.FollowUps.Schedule(ctx, storage.FollowUp{
		UserID: userID,
		ChatID: chatID,
		Lang:   lang,
		DueAt:  time.Now().Add(deps.FollowUpDelay),
	})
	if err != nil {
		lg.Warnf("Schedule follow-up failed: %v", err)
		return
	}
	deps.Stats.Inc(stats.FollowUpScheduled)
}
