package users

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/mad2moi/telegram-bot/internal/botapp/commands"
	"github.com/mad2moi/telegram-bot/internal/i18n"
	"github.com/mad2moi/telegram-bot/internal/logger"
	"github.com/mad2moi/telegram-bot/internal/stats"
	"github.com/mad2moi/telegram-bot/internal/tracking"
)

// IsNewMembers matches service messages announcing members who joined.
func IsNewMembers(u *models.Update) bool {
	return u.Message != nil && len(u.Message.NewChatMembers) > 0
}

// HandleNewMembers posts the public welcome for each member joining a group.
// Bots and members greeted before are skipped. A member is recorded as
// greeted only once the welcome went out.
func HandleNewMembers(ctx context.Context, b commands.Sender, u *models.Update, deps commands.Deps) {
	if !IsNewMembers(u) || !commands.IsGroup(u.Message.Chat) {
		return
	}
	lg := logger.ForUpdate(u)
	loc := i18n.Localizer(deps.Funnel.DefaultLang())

	for _, member := range u.Message.NewChatMembers {
		if member.IsBot {
			continue
		}
		greeted, err := deps.Funnel.Greeted(ctx, member.ID)
		if err != nil {
			lg.Warnf("Greeted check failed for %d: %v", member.ID, err)
			continue
		}
		if greeted {
			lg.Debugf("Member %d already greeted", member.ID)
			continue
		}

		text := i18n.TWithData(loc, "welcome_public", map[string]any{
			"Name":        displayName(member),
			"BotUsername": deps.BotUsername,
		})
		ok := send(ctx, b, deps, &bot.SendMessageParams{
			ChatID:      u.Message.Chat.ID,
			Text:        text,
			ReplyMarkup: siteKeyboard(loc, deps.Links, tracking.StepWelcomePublic),
		}, lg)
		if !ok {
			// not recorded, the next join gets another try
			continue
		}
		if err := deps.Funnel.MarkGreeted(ctx, member.ID); err != nil {
			lg.Warnf("Mark greeted failed for %d: %v", member.ID, err)
		}
		deps.Stats.Inc(stats.WelcomePublic)
		lg.Infof("Welcomed member %d", member.ID)
	}
}
