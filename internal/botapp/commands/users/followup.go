package users

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/mad2moi/telegram-bot/internal/botapp/commands"
	"github.com/mad2moi/telegram-bot/internal/i18n"
	"github.com/mad2moi/telegram-bot/internal/stats"
	"github.com/mad2moi/telegram-bot/internal/storage"
	"github.com/mad2moi/telegram-bot/internal/tracking"
)

// SendFollowUp delivers the reminder scheduled after /start.
func SendFollowUp(ctx context.Context, b commands.Sender, deps commands.Deps, f storage.FollowUp) error {
	loc := i18n.Localizer(f.Lang)
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      f.ChatID,
		Text:        i18n.T(loc, "followup_text"),
		ReplyMarkup: siteKeyboard(loc, deps.Links, tracking.StepFollowUp),
	})
	if err != nil {
		deps.Stats.Inc(stats.SendError)
		return fmt.Errorf("send follow-up: %w", err)
	}
	deps.Stats.Inc(stats.FollowUpSent)
	return nil
}
