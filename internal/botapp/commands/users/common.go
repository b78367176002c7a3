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
	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
)

// Menu callback data.
const (
	menuPrefix     = "menu:"
	menuRencontres = "rencontres"
	menuAmitie     = "amitie"
	menuDecouverte = "decouverte"
)

// startPayload is the deep-link payload of the private chat link.
const startPayload = "go"

// userLang resolves the language used in the private chat with user.
func userLang(ctx context.Context, deps commands.Deps, user *models.User) string {
	if user == nil {
		return deps.Funnel.DefaultLang()
	}
	return deps.Funnel.Lang(ctx, user.ID, user.LanguageCode)
}

// siteKeyboard links to the site, tagged with step, and to the Facebook group.
func siteKeyboard(loc *goi18n.Localizer, links tracking.Links, step string) *models.InlineKeyboardMarkup {
	rows := [][]models.InlineKeyboardButton{
		{{Text: i18n.T(loc, "btn_site"), URL: links.SiteURL(step)}},
	}
	if links.FacebookURL != "" {
		rows = append(rows, []models.InlineKeyboardButton{
			{Text: i18n.T(loc, "btn_facebook"), URL: links.FacebookURL},
		})
	}
	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}

func menuKeyboard(loc *goi18n.Localizer) *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{{Text: i18n.T(loc, "btn_menu_rencontres"), CallbackData: menuPrefix + menuRencontres}},
			{{Text: i18n.T(loc, "btn_menu_amitie"), CallbackData: menuPrefix + menuAmitie}},
			{{Text: i18n.T(loc, "btn_menu_decouverte"), CallbackData: menuPrefix + menuDecouverte}},
		},
	}
}

// displayName is how a member is addressed in the group.
func displayName(user models.User) string {
	if user.FirstName != "" {
		return user.FirstName
	}
	if user.Username != "" {
		return "@" + user.Username
	}
	return ""
}

// send delivers params and reports success. Failures are counted and logged.
func send(ctx context.Context, b commands.Sender, deps commands.Deps, params *bot.SendMessageParams, lg logger.TgLogger) bool {
	if _, err := b.SendMessage(ctx, params); err != nil {
		deps.Stats.Inc(stats.SendError)
		lg.Warnf("Send failed: %v", err)
		return false
	}
	return true
}

func answerCallback(ctx context.Context, b commands.Sender, id, text string, alert bool) {
	_, _ = b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: id,
		Text:            text,
		ShowAlert:       alert,
	})
}
