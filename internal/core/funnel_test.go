package core

import (
	"context"
	"testing"

	"github.com/mad2moi/telegram-bot/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGreetedAfterMark(t *testing.T) {
	f := NewFunnel(storage.NewMemoryStore(), "fr")
	ctx := context.Background()

	greeted, err := f.Greeted(ctx, 10)
	require.NoError(t, err)
	assert.False(t, greeted)

	require.NoError(t, f.MarkGreeted(ctx, 10))
	require.NoError(t, f.MarkGreeted(ctx, 10))

	greeted, err = f.Greeted(ctx, 10)
	require.NoError(t, err)
	assert.True(t, greeted)
}

func TestLangResolution(t *testing.T) {
	f := NewFunnel(storage.NewMemoryStore(), "en")
	ctx := context.Background()

	assert.Equal(t, "fr", f.Lang(ctx, 1, "fr-CA"))
	assert.Equal(t, "en", f.Lang(ctx, 1, "de"))
	assert.Equal(t, "en", f.Lang(ctx, 1, ""))

	require.NoError(t, f.SetLang(ctx, 1, "fr"))
	assert.Equal(t, "fr", f.Lang(ctx, 1, "en"))
}

func TestSetLangRejectsUnknown(t *testing.T) {
	f := NewFunnel(storage.NewMemoryStore(), "xx")
	assert.ErrorIs(t, f.SetLang(context.Background(), 1, "de"), ErrUnsupportedLang)
	// unknown default falls back to French
	assert.Equal(t, "fr", f.Lang(context.Background(), 1, ""))
}

func TestDefaultLang(t *testing.T) {
	assert.Equal(t, "en", NewFunnel(storage.NewMemoryStore(), "en").DefaultLang())
	assert.Equal(t, "fr", NewFunnel(storage.NewMemoryStore(), "").DefaultLang())
}
