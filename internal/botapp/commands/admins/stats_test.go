package admins

import (
	"context"
	"testing"

	"github.com/go-telegram/bot/models"
	"github.com/mad2moi/telegram-bot/internal/botapp/commands"
	"github.com/mad2moi/telegram-bot/internal/core"
	"github.com/mad2moi/telegram-bot/internal/i18n"
	"github.com/mad2moi/telegram-bot/internal/mocks"
	"github.com/mad2moi/telegram-bot/internal/stats"
	"github.com/mad2moi/telegram-bot/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statsUpdate(userID int64) *models.Update {
	return &models.Update{Message: &models.Message{
		From: &models.User{ID: userID, LanguageCode: "fr"},
		Chat: models.Chat{ID: userID, Type: models.ChatTypePrivate},
		Text: "/stats",
	}}
}

func newDeps() commands.Deps {
	return commands.Deps{
		Funnel:   core.NewFunnel(storage.NewMemoryStore(), "fr"),
		Stats:    stats.New(),
		AdminIDs: []int64{7},
	}
}

func TestHandleStatsForAdmin(t *testing.T) {
	deps := newDeps()
	deps.Stats.Add(stats.WelcomePublic, 3)
	sender := mocks.NewMockSender()

	HandleStats(context.Background(), sender, statsUpdate(7), deps)

	msgs := sender.Messages()
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0].Text, i18n.T(i18n.Localizer("fr"), "stats_header"))
	assert.Contains(t, msgs[0].Text, stats.WelcomePublic+": 3")
}

func TestHandleStatsDeniesOthers(t *testing.T) {
	deps := newDeps()
	sender := mocks.NewMockSender()

	HandleStats(context.Background(), sender, statsUpdate(8), deps)

	msgs := sender.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, i18n.T(i18n.Localizer("fr"), "access_denied"), msgs[0].Text)
}
