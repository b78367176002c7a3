package mocks

import (
	"context"
	"errors"
	"testing"

	"github.com/go-telegram/bot"
	"github.com/mad2moi/telegram-bot/internal/history"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockSenderRecords(t *testing.T) {
	m := NewMockSender()
	ctx := context.Background()

	msg, err := m.SendMessage(ctx, &bot.SendMessageParams{ChatID: int64(1), Text: "a"})
	require.NoError(t, err)
	assert.Equal(t, 1, msg.ID)

	m.SendErr = errors.New("down")
	_, err = m.SendMessage(ctx, &bot.SendMessageParams{ChatID: int64(1), Text: "b"})
	assert.Error(t, err)
	assert.Len(t, m.Messages(), 2)

	m.Reset()
	assert.Empty(t, m.Messages())
}

func TestMockLLM(t *testing.T) {
	m := NewMockLLM("hello")
	out, err := m.Complete(context.Background(), "persona", []history.Turn{{Role: history.RoleUser, Content: "x"}}, "hi")
	require.NoError(t, err)
	assert.Equal(t, "hello", out)

	require.Len(t, m.Calls(), 1)
	assert.Equal(t, "hi", m.Calls()[0].UserText)
	assert.Len(t, m.Calls()[0].Turns, 1)
}
