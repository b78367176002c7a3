package users

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/mad2moi/telegram-bot/internal/botapp/commands"
	"github.com/mad2moi/telegram-bot/internal/i18n"
	"github.com/mad2moi/telegram-bot/internal/logger"
)

// DefaultHandler handles any update no other handler matched: group
// chatter goes to the keyword matcher, private text to the assistant.
func DefaultHandler(ctx context.Context, b commands.Sender, u *models.Update, deps commands.Deps) {
	if u.CallbackQuery != nil {
		// Stale or foreign button: stop the loading state only.
		answerCallback(ctx, b, u.CallbackQuery.ID, "", false)
		return
	}
	if u.Message == nil || u.Message.Text == "" {
		return
	}

	msg := u.Message
	isCommand := strings.HasPrefix(msg.Text, "/")
	switch {
	case commands.IsGroup(msg.Chat):
		if !isCommand {
			handleKeywordReply(ctx, b, u, deps)
		}
	case commands.IsPrivate(msg.Chat):
		if isCommand {
			loc := i18n.Localizer(userLang(ctx, deps, msg.From))
			send(ctx, b, deps, &bot.SendMessageParams{
				ChatID: msg.Chat.ID,
				Text:   i18n.T(loc, "unknown_command"),
			}, logger.ForUpdate(u))
			return
		}
		handlePrivateText(ctx, b, u, deps)
	}
}
