package users

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/mad2moi/telegram-bot/internal/botapp/commands"
	"github.com/mad2moi/telegram-bot/internal/i18n"
	"github.com/mad2moi/telegram-bot/internal/logger"
	"github.com/mad2moi/telegram-bot/internal/stats"
	"github.com/mad2moi/telegram-bot/internal/tracking"
)

type menuEntry struct {
	text    string
	step    string
	counter string
}

var menuEntries = map[string]menuEntry{
	menuRencontres: {text: "menu_rencontres", step: tracking.StepMenuRencontres, counter: stats.MenuRencontres},
	menuAmitie:     {text: "menu_amitie", step: tracking.StepMenuAmitie, counter: stats.MenuAmitie},
	menuDecouverte: {text: "menu_decouverte", step: tracking.StepMenuDecouverte, counter: stats.MenuDecouverte},
}

// HandleMenuCallback answers a "menu:<choice>" button with the matching
// message. Unknown choices get the discovery message.
func HandleMenuCallback(ctx context.Context, b commands.Sender, u *models.Update, deps commands.Deps) {
	if u.CallbackQuery == nil {
		return
	}

	cb := u.CallbackQuery
	lg := logger.ForUser(cb.From.ID)

	// Parse "menu:amitie" -> "amitie"
	action := strings.TrimPrefix(cb.Data, menuPrefix)
	if action == cb.Data {
		return // Not a menu callback
	}
	entry, ok := menuEntries[action]
	if !ok {
		lg.Debugf("Unknown menu action %q", action)
		entry = menuEntries[menuDecouverte]
	}

	// Answer callback (removes loading state)
	answerCallback(ctx, b, cb.ID, "", false)

	loc := i18n.Localizer(userLang(ctx, deps, &cb.From))
	deps.Stats.Inc(entry.counter)
	send(ctx, b, deps, &bot.SendMessageParams{
		ChatID:      cb.From.ID,
		Text:        i18n.T(loc, entry.text),
		ReplyMarkup: siteKeyboard(loc, deps.Links, entry.step),
	}, lg)

	lg.Infof("Menu choice: %s", action)
}
