// Package botapp wires the Telegram client to the command handlers.
package botapp

import (
	"context"
	"fmt"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/mad2moi/telegram-bot/internal/botapp/commands"
	"github.com/mad2moi/telegram-bot/internal/botapp/commands/admins"
	"github.com/mad2moi/telegram-bot/internal/botapp/commands/users"
	"github.com/mad2moi/telegram-bot/internal/followup"
	"github.com/mad2moi/telegram-bot/internal/logger"
	"github.com/mad2moi/telegram-bot/internal/storage"
)

// Options tunes the Telegram client.
type Options struct {
	// Store keeps the pending follow-ups.
	Store storage.Store
	// SendRate caps outgoing calls per second.
	SendRate    float64
	InitTimeout time.Duration
}

// App is the running bot: the Telegram client, the throttled sender and
// the follow-up scheduler that shares it.
type App struct {
	bot       *bot.Bot
	sender    commands.Sender
	deps      commands.Deps
	followUps *followup.Scheduler
}

// NewBot creates the Telegram client and registers every handler.
// deps.FollowUps is created here since it delivers through the bot.
func NewBot(ctx context.Context, token string, deps commands.Deps, opts Options) (*App, error) {
	if opts.InitTimeout <= 0 {
		opts.InitTimeout = 5 * time.Second
	}
	app := &App{}

	b, err := bot.New(token,
		bot.WithCheckInitTimeout(opts.InitTimeout),
		bot.WithDefaultHandler(app.handler(users.DefaultHandler)),
	)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}
	app.bot = b
	app.sender = commands.NewThrottle(b, opts.SendRate)

	if deps.BotUsername == "" {
		me, err := b.GetMe(ctx)
		if err != nil {
			return nil, fmt.Errorf("get bot username: %w", err)
		}
		deps.BotUsername = me.Username
	}

	app.followUps = followup.New(opts.Store, func(ctx context.Context, f storage.FollowUp) error {
		return users.SendFollowUp(ctx, app.sender, app.deps, f)
	})
	deps.FollowUps = app.followUps
	app.deps = deps

	app.register()
	return app, nil
}

func (a *App) register() {
	b := a.bot

	// new members joining a group
	b.RegisterHandlerMatchFunc(users.IsNewMembers, a.handler(users.HandleNewMembers))

	// /start [payload]
	b.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypePrefix, a.handler(users.HandleStart))

	// /help
	b.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypePrefix, a.handler(users.HandleHelp))

	// /language
	b.RegisterHandler(bot.HandlerTypeMessageText, "/language", bot.MatchTypePrefix, a.handler(users.HandleLanguage))

	// /reset
	b.RegisterHandler(bot.HandlerTypeMessageText, "/reset", bot.MatchTypePrefix, a.handler(users.HandleReset))

	// /stats (admins)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/stats", bot.MatchTypePrefix, a.handler(admins.HandleStats))

	// menu:<choice>
	b.RegisterHandler(bot.HandlerTypeCallbackQueryData, "menu:", bot.MatchTypePrefix, a.handler(users.HandleMenuCallback))

	// lang:<code>
	b.RegisterHandler(bot.HandlerTypeCallbackQueryData, "lang:", bot.MatchTypePrefix, a.handler(users.HandleLanguageCallback))
}

// handler adapts a command handler to the bot library.
func (a *App) handler(h commands.HandlerFunc) bot.HandlerFunc {
	wrapped := commands.Chain(commands.WithRecover, commands.WithLogging)(h)
	return func(ctx context.Context, _ *bot.Bot, u *models.Update) {
		wrapped(ctx, a.sender, u, a.deps)
	}
}

// Username is the bot's @username without the @.
func (a *App) Username() string {
	return a.deps.BotUsername
}

// Start restores pending follow-ups and polls updates until ctx is done.
func (a *App) Start(ctx context.Context) {
	n, err := a.followUps.Restore(ctx)
	if err != nil {
		logger.Warnf("Restore follow-ups failed: %v", err)
	} else if n > 0 {
		logger.Infof("Restored %d pending follow-up(s)", n)
	}

	a.bot.Start(ctx)
	a.followUps.Stop()
}
