// Package core holds the bot's business services: the greeting funnel state
// and the private-chat assistant.
package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mad2moi/telegram-bot/internal/i18n"
	"github.com/mad2moi/telegram-bot/internal/storage"
)

// ErrUnsupportedLang is returned by SetLang for a language without a catalog.
var ErrUnsupportedLang = errors.New("unsupported language")

// Funnel tracks who was greeted and which language each user reads.
type Funnel struct {
	store       storage.Store
	defaultLang string
}

// NewFunnel creates a funnel over store. defaultLang applies when Telegram
// gives no language code.
func NewFunnel(store storage.Store, defaultLang string) *Funnel {
	if !i18n.IsSupported(defaultLang) {
		defaultLang = "fr"
	}
	return &Funnel{store: store, defaultLang: defaultLang}
}

// Greeted reports whether userID already received the public welcome.
func (f *Funnel) Greeted(ctx context.Context, userID int64) (bool, error) {
	greeted, err := f.store.IsGreeted(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("is greeted %d: %w", userID, err)
	}
	return greeted, nil
}

// MarkGreeted records that userID saw the public welcome.
func (f *Funnel) MarkGreeted(ctx context.Context, userID int64) error {
	if _, err := f.store.MarkGreeted(ctx, userID); err != nil {
		return fmt.Errorf("mark greeted %d: %w", userID, err)
	}
	return nil
}

// Lang returns the saved language of userID, else the one derived from
// Telegram's language code, else the default.
func (f *Funnel) Lang(ctx context.Context, userID int64, telegramCode string) string {
	if lang, err := f.store.GetLang(ctx, userID); err == nil && lang != "" {
		return lang
	}
	base, _, _ := strings.Cut(strings.ToLower(telegramCode), "-")
	if i18n.IsSupported(base) {
		return base
	}
	return f.defaultLang
}

// SetLang saves the language preference of userID.
func (f *Funnel) SetLang(ctx context.Context, userID int64, lang string) error {
	if !i18n.IsSupported(lang) {
		return fmt.Errorf("%w: %q", ErrUnsupportedLang, lang)
	}
	if err := f.store.SetLang(ctx, userID, lang); err != nil {
		return fmt.Errorf("set lang %d: %w", userID, err)
	}
	return nil
}

// DefaultLang is the language of messages posted in groups.
func (f *Funnel) DefaultLang() string {
	return f.defaultLang
}
