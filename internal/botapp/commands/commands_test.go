package commands_test

import (
	"context"
	"testing"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/mad2moi/telegram-bot/internal/botapp/commands"
	"github.com/mad2moi/telegram-bot/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChainOrder(t *testing.T) {
	var order []string
	mw := func(name string) commands.Middleware {
		return func(next commands.HandlerFunc) commands.HandlerFunc {
			return func(ctx context.Context, b commands.Sender, u *models.Update, deps commands.Deps) {
				order = append(order, name)
				next(ctx, b, u, deps)
			}
		}
	}
	h := commands.Chain(mw("a"), mw("b"))(func(context.Context, commands.Sender, *models.Update, commands.Deps) {
		order = append(order, "handler")
	})

	h(context.Background(), mocks.NewMockSender(), &models.Update{}, commands.Deps{})
	assert.Equal(t, []string{"a", "b", "handler"}, order)
}

func TestWithRecover(t *testing.T) {
	h := commands.Chain(commands.WithRecover, commands.WithLogging)(
		func(context.Context, commands.Sender, *models.Update, commands.Deps) {
			panic("boom")
		})

	u := &models.Update{Message: &models.Message{Chat: models.Chat{ID: 1, Type: models.ChatTypePrivate}}}
	assert.NotPanics(t, func() {
		h(context.Background(), mocks.NewMockSender(), u, commands.Deps{})
	})
}

func TestIsAdmin(t *testing.T) {
	deps := commands.Deps{AdminIDs: []int64{7, 8}}
	assert.True(t, deps.IsAdmin(8))
	assert.False(t, deps.IsAdmin(9))
	assert.False(t, commands.Deps{}.IsAdmin(7))
}

func TestUpdateHelpers(t *testing.T) {
	msg := &models.Update{Message: &models.Message{
		From: &models.User{ID: 5},
		Chat: models.Chat{ID: -100, Type: models.ChatTypeSupergroup},
	}}
	assert.Equal(t, int64(5), commands.UserFromUpdate(msg).ID)
	assert.True(t, commands.IsGroup(msg.Message.Chat))
	assert.False(t, commands.IsPrivate(msg.Message.Chat))

	cb := &models.Update{CallbackQuery: &models.CallbackQuery{From: models.User{ID: 6}}}
	assert.Equal(t, int64(6), commands.UserFromUpdate(cb).ID)

	assert.Nil(t, commands.UserFromUpdate(&models.Update{}))
}

func TestThrottlePassesThrough(t *testing.T) {
	next := mocks.NewMockSender()
	th := commands.NewThrottle(next, 100)
	ctx := context.Background()

	_, err := th.SendMessage(ctx, &bot.SendMessageParams{ChatID: int64(1), Text: "hi"})
	require.NoError(t, err)
	_, err = th.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{CallbackQueryID: "x"})
	require.NoError(t, err)
	_, err = th.SendChatAction(ctx, &bot.SendChatActionParams{ChatID: int64(1), Action: models.ChatActionTyping})
	require.NoError(t, err)

	assert.Len(t, next.Messages(), 1)
	assert.Len(t, next.Callbacks(), 1)
	assert.Len(t, next.Actions(), 1)
}

func TestThrottleHonoursContext(t *testing.T) {
	next := mocks.NewMockSender()
	th := commands.NewThrottle(next, 1)

	_, err := th.SendMessage(context.Background(), &bot.SendMessageParams{ChatID: int64(1), Text: "first"})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = th.SendMessage(ctx, &bot.SendMessageParams{ChatID: int64(1), Text: "second"})
	require.ErrorIs(t, err, context.Canceled)
	assert.Len(t, next.Messages(), 1)
}
