package admins

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/mad2moi/telegram-bot/internal/botapp/commands"
	"github.com/mad2moi/telegram-bot/internal/i18n"
	"github.com/mad2moi/telegram-bot/internal/logger"
)

// HandleStats handles the /stats command for admins.
func HandleStats(ctx context.Context, b commands.Sender, u *models.Update, deps commands.Deps) {
	if u.Message == nil || u.Message.From == nil {
		return
	}
	lg := logger.ForUpdate(u)
	loc := i18n.Localizer(deps.Funnel.Lang(ctx, u.Message.From.ID, u.Message.From.LanguageCode))

	// Check if user is an admin
	if !deps.IsAdmin(u.Message.From.ID) {
		lg.Warnf("Stats denied to %d", u.Message.From.ID)
		_, _ = b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: u.Message.Chat.ID,
			Text:   i18n.T(loc, "access_denied"),
		})
		return
	}

	text := i18n.T(loc, "stats_header") + "\n\n" + deps.Stats.Format()
	if deps.FollowUps != nil {
		text += fmt.Sprintf("followups_pending: %d", deps.FollowUps.Pending())
	}

	if _, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: u.Message.Chat.ID,
		Text:   text,
	}); err != nil {
		lg.Warnf("Send stats failed: %v", err)
		return
	}

	lg.Infof("Stats command handled")
}
