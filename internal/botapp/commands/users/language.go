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

const langPrefix = "lang:"

// HandleLanguage shows language selection buttons.
func HandleLanguage(ctx context.Context, b commands.Sender, u *models.Update, deps commands.Deps) {
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

	send(ctx, b, deps, &bot.SendMessageParams{
		ChatID:      u.Message.Chat.ID,
		Text:        i18n.T(loc, "language_prompt"),
		ReplyMarkup: languageKeyboard(),
	}, lg)
}

// HandleLanguageCallback saves the language picked with a "lang:<code>" button.
func HandleLanguageCallback(ctx context.Context, b commands.Sender, u *models.Update, deps commands.Deps) {
	if u.CallbackQuery == nil {
		return
	}

	cb := u.CallbackQuery
	lg := logger.ForUser(cb.From.ID)

	// Parse "lang:en" -> "en"
	lang := strings.TrimPrefix(cb.Data, langPrefix)
	if lang == cb.Data {
		return // Not a language callback
	}

	if err := deps.Funnel.SetLang(ctx, cb.From.ID, lang); err != nil {
		lg.Warnf("Save language failed: %v", err)
		answerCallback(ctx, b, cb.ID, "", false)
		return
	}

	// Answer callback (removes loading state)
	answerCallback(ctx, b, cb.ID, "", false)

	send(ctx, b, deps, &bot.SendMessageParams{
		ChatID: cb.From.ID,
		Text:   i18n.T(i18n.Localizer(lang), "language_saved"),
	}, lg)
	lg.Infof("Language changed to %s", lang)
}

// --- Helpers ---

func languageKeyboard() *models.InlineKeyboardMarkup {
	var row []models.InlineKeyboardButton
	for _, code := range i18n.Supported() {
		row = append(row, models.InlineKeyboardButton{
			Text:         i18n.Name(code),
			CallbackData: langPrefix + code,
		})
	}
	return &models.InlineKeyboardMarkup{InlineKeyboard: [][]models.InlineKeyboardButton{row}}
}
