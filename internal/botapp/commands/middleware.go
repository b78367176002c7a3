// Package commands provides command handler types, middleware, and shared dependencies.
package commands

import (
	"context"
	"runtime/debug"

	"github.com/go-telegram/bot/models"
	"github.com/mad2moi/telegram-bot/internal/logger"
)

// HandlerFunc is the standard signature for all command handlers.
type HandlerFunc func(ctx context.Context, b Sender, u *models.Update, deps Deps)

// Middleware wraps a handler to add functionality.
type Middleware func(HandlerFunc) HandlerFunc

// WithRecover logs a panicking handler instead of letting it reach the poller.
func WithRecover(next HandlerFunc) HandlerFunc {
	return func(ctx context.Context, b Sender, u *models.Update, deps Deps) {
		defer func() {
			if r := recover(); r != nil {
				logger.ForUpdate(u).Errorf("Handler panic: %v\n%s", r, debug.Stack())
			}
		}()
		next(ctx, b, u, deps)
	}
}

// WithLogging logs each update at debug level.
func WithLogging(next HandlerFunc) HandlerFunc {
	return func(ctx context.Context, b Sender, u *models.Update, deps Deps) {
		lg := logger.ForUpdate(u)
		var from int64
		if user := UserFromUpdate(u); user != nil {
			from = user.ID
		}
		switch {
		case u.Message != nil && len(u.Message.NewChatMembers) > 0:
			lg.Debugf("Update %d: %d new member(s)", u.ID, len(u.Message.NewChatMembers))
		case u.Message != nil:
			lg.Debugf("Update %d: message from %d in %s chat", u.ID, from, u.Message.Chat.Type)
		case u.CallbackQuery != nil:
			lg.Debugf("Update %d: callback %q from %d", u.ID, u.CallbackQuery.Data, from)
		}
		next(ctx, b, u, deps)
	}
}

// Chain combines multiple middleware into a single middleware.
func Chain(middlewares ...Middleware) Middleware {
	return func(final HandlerFunc) HandlerFunc {
		for i := len(middlewares) - 1; i >= 0; i-- {
			final = middlewares[i](final)
		}
		return final
	}
}

// --- Helpers ---

// UserFromUpdate extracts the user from any update type.
func UserFromUpdate(u *models.Update) *models.User {
	if u.Message != nil {
		return u.Message.From
	}
	if u.CallbackQuery != nil {
		return &u.CallbackQuery.From
	}
	return nil
}

// IsGroup reports whether the chat is a group or supergroup.
func IsGroup(chat models.Chat) bool {
	return chat.Type == models.ChatTypeGroup || chat.Type == models.ChatTypeSupergroup
}

// IsPrivate reports whether the chat is a one-to-one chat with the bot.
func IsPrivate(chat models.Chat) bool {
	return chat.Type == models.ChatTypePrivate
}
