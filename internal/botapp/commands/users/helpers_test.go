package users

import (
	"context"
	"testing"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/mad2moi/telegram-bot/internal/botapp/commands"
	"github.com/mad2moi/telegram-bot/internal/core"
	"github.com/mad2moi/telegram-bot/internal/followup"
	"github.com/mad2moi/telegram-bot/internal/i18n"
	"github.com/mad2moi/telegram-bot/internal/keywords"
	"github.com/mad2moi/telegram-bot/internal/ratelimit"
	"github.com/mad2moi/telegram-bot/internal/stats"
	"github.com/mad2moi/telegram-bot/internal/storage"
	"github.com/mad2moi/telegram-bot/internal/tracking"
	"github.com/stretchr/testify/require"
)

const (
	groupID int64 = -100123
	aliceID int64 = 42
)

var testLinks = tracking.Links{
	BaseURL:     "https://www.mad2moi.com/",
	Source:      "telegram",
	Medium:      "bot",
	Campaign:    "non_vax_groupe",
	FacebookURL: "https://www.facebook.com/groups/1/",
}

func newTestDeps(t *testing.T, llm core.Completer) commands.Deps {
	t.Helper()
	store := storage.NewMemoryStore()
	matcher, err := keywords.New(keywords.Default)
	require.NoError(t, err)

	sched := followup.New(store, func(context.Context, storage.FollowUp) error { return nil })
	t.Cleanup(sched.Stop)

	return commands.Deps{
		Funnel:          core.NewFunnel(store, "fr"),
		Assistant:       core.NewAssistant(llm, core.AssistantOptions{HistoryLimit: 10, RateMax: 5, RateWindow: time.Minute, CTAEvery: 3}),
		FollowUps:       sched,
		Stats:           stats.New(),
		Keywords:        matcher,
		KeywordCooldown: ratelimit.New(1, 10*time.Minute),
		Links:           testLinks,
		BotUsername:     "mad2moi_test_bot",
		FollowUpDelay:   24 * time.Hour,
		AdminIDs:        []int64{7},
	}
}

func alice() *models.User {
	return &models.User{ID: aliceID, FirstName: "Alice", LanguageCode: "fr"}
}

func groupMessage(from *models.User, text string) *models.Update {
	return &models.Update{Message: &models.Message{
		ID:   11,
		From: from,
		Chat: models.Chat{ID: groupID, Type: models.ChatTypeSupergroup},
		Text: text,
	}}
}

func privateMessage(from *models.User, text string) *models.Update {
	return &models.Update{Message: &models.Message{
		ID:   12,
		From: from,
		Chat: models.Chat{ID: from.ID, Type: models.ChatTypePrivate},
		Text: text,
	}}
}

func callback(from *models.User, data string) *models.Update {
	return &models.Update{CallbackQuery: &models.CallbackQuery{
		ID:   "cb-1",
		From: *from,
		Data: data,
	}}
}

func fr(key string) string {
	return i18n.T(i18n.Localizer("fr"), key)
}

// keyboard returns the inline keyboard of a sent message.
func keyboard(t *testing.T, p *bot.SendMessageParams) *models.InlineKeyboardMarkup {
	t.Helper()
	kb, ok := p.ReplyMarkup.(*models.InlineKeyboardMarkup)
	require.True(t, ok, "expected an inline keyboard")
	return kb
}
