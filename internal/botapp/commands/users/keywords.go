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
	"github.com/mad2moi/telegram-bot/internal/tracking"
)

// handleKeywordReply replies to a group message mentioning dating with the
// site link, at most once per cooldown and per chat.
func handleKeywordReply(ctx context.Context, b commands.Sender, u *models.Update, deps commands.Deps) {
	msg := u.Message
	if deps.Keywords == nil || msg.From == nil || msg.From.IsBot {
		return
	}
	word, ok := deps.Keywords.Match(msg.Text)
	if !ok {
		return
	}

	lg := logger.ForUpdate(u)
	if deps.KeywordCooldown != nil && !deps.KeywordCooldown.Allow(msg.Chat.ID, time.Now()) {
		lg.Debugf("Keyword %q ignored, cooldown", word)
		return
	}

	loc := i18n.Localizer(deps.Funnel.DefaultLang())
	ok = send(ctx, b, deps, &bot.SendMessageParams{
		ChatID:      msg.Chat.ID,
		Text:        i18n.T(loc, "keyword_reply"),
		ReplyMarkup: siteKeyboard(loc, deps.Links, tracking.StepKeyword),
		ReplyParameters: &models.ReplyParameters{
			MessageID:                msg.ID,
			AllowSendingWithoutReply: true,
		},
	}, lg)
	if ok {
		deps.Stats.Inc(stats.KeywordReply)
		lg.Infof("Keyword reply for %q", word)
	}
}
