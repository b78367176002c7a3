package users

import (
	"context"
	"errors"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/mad2moi/telegram-bot/internal/botapp/commands"
	"github.com/mad2moi/telegram-bot/internal/core"
	"github.com/mad2moi/telegram-bot/internal/i18n"
	"github.com/mad2moi/telegram-bot/internal/logger"
	"github.com/mad2moi/telegram-bot/internal/stats"
	"github.com/mad2moi/telegram-bot/internal/tracking"
)

// handlePrivateText relays a private message to the assistant.
func handlePrivateText(ctx context.Context, b commands.Sender, u *models.Update, deps commands.Deps) {
	msg := u.Message
	if msg.From == nil || msg.Text == "" {
		return
	}
	lg := logger.ForUpdate(u)
	lang := userLang(ctx, deps, msg.From)
	loc := i18n.Localizer(lang)

	if deps.Assistant != nil && deps.Assistant.Enabled() {
		_, _ = b.SendChatAction(ctx, &bot.SendChatActionParams{
			ChatID: msg.Chat.ID,
			Action: models.ChatActionTyping,
		})
	}

	var reply core.Reply
	err := core.ErrDisabled
	if deps.Assistant != nil {
		reply, err = deps.Assistant.Reply(ctx, msg.From.ID, lang, msg.Text)
	}

	switch {
	case errors.Is(err, core.ErrRateLimited):
		deps.Stats.Inc(stats.RateLimited)
		if reply.NotifyLimit {
			send(ctx, b, deps, &bot.SendMessageParams{
				ChatID: msg.Chat.ID,
				Text:   i18n.T(loc, "assistant_rate_limited"),
			}, lg)
		}
		return
	case err != nil:
		if !errors.Is(err, core.ErrDisabled) {
			deps.Stats.Inc(stats.AssistantError)
			lg.Warnf("Assistant failed: %v", err)
		}
		send(ctx, b, deps, &bot.SendMessageParams{
			ChatID:      msg.Chat.ID,
			Text:        i18n.T(loc, "assistant_fallback"),
			ReplyMarkup: siteKeyboard(loc, deps.Links, tracking.StepAssistant),
		}, lg)
		return
	}

	params := &bot.SendMessageParams{
		ChatID: msg.Chat.ID,
		Text:   reply.Text,
	}
	if reply.WithCTA {
		params.ReplyMarkup = siteKeyboard(loc, deps.Links, tracking.StepAssistant)
	}
	if send(ctx, b, deps, params, lg) {
		deps.Stats.Inc(stats.AssistantReply)
	}
}

// HandleReset handles the /reset command: the assistant forgets the
// conversation and the pending follow-up is dropped.
func HandleReset(ctx context.Context, b commands.Sender, u *models.Update, deps commands.Deps) {
	if u.Message == nil || u.Message.From == nil {
		return
	}
	lg := logger.ForUpdate(u)
	loc := i18n.Localizer(userLang(ctx, deps, u.Message.From))

	if !commands.IsPrivate(u.Message.Chat) {
		send(ctx, b, deps, &bot.SendMessageParams{
			ChatID: u.Message.Chat.ID,
			Text:   i18n.T(loc, "private_only"),
		}, lg)
		return
	}

	if deps.Assistant != nil {
		deps.Assistant.Reset(u.Message.From.ID)
	}
	if deps.FollowUps != nil {
		if err := deps.FollowUps.Cancel(ctx, u.Message.From.ID); err != nil {
			lg.Warnf("Cancel follow-up failed: %v", err)
		}
	}
	send(ctx, b, deps, &bot.SendMessageParams{
		ChatID: u.Message.Chat.ID,
		Text:   i18n.T(loc, "assistant_reset"),
	}, lg)
	lg.Infof("Assistant history reset")
}
