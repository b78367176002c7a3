// Package i18n provides internationalization support using go-i18n.
package i18n

import (
	"embed"
	"encoding/json"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// Bundle holds all loaded translations.
var bundle *i18n.Bundle

// Supported language tags
var (
	French  = language.French
	English = language.English
)

// supported lists the catalog codes in the order shown to users.
var supported = []string{"fr", "en"}

var names = map[string]string{
	"fr": "🇫🇷 Français",
	"en": "🇬🇧 English",
}

func init() {
	bundle = i18n.NewBundle(French) // Default language
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	for _, code := range supported {
		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+code+".json"); err != nil {
			panic("i18n: load " + code + ": " + err.Error())
		}
	}
}

// Supported returns the catalog language codes.
func Supported() []string {
	out := make([]string, len(supported))
	copy(out, supported)
	return out
}

// IsSupported reports whether code has its own catalog.
func IsSupported(code string) bool {
	for _, c := range supported {
		if c == code {
			return true
		}
	}
	return false
}

// Name returns the label shown on the language picker.
func Name(code string) string {
	if n, ok := names[code]; ok {
		return n
	}
	return code
}

// Localizer creates a localizer for the given Telegram language code.
func Localizer(telegramLangCode string) *i18n.Localizer {
	tag := FromTelegram(telegramLangCode)
	return i18n.NewLocalizer(bundle, tag.String())
}

// T translates a message ID using the provided localizer.
func T(loc *i18n.Localizer, messageID string) string {
	msg, err := loc.Localize(&i18n.LocalizeConfig{MessageID: messageID})
	if err != nil {
		// Fallback: return the message ID itself
		return messageID
	}
	return msg
}

// TWithData translates a message with template data.
func TWithData(loc *i18n.Localizer, messageID string, data map[string]any) string {
	msg, err := loc.Localize(&i18n.LocalizeConfig{
		MessageID:    messageID,
		TemplateData: data,
	})
	if err != nil {
		return messageID
	}
	return msg
}

// FromTelegram converts Telegram's language_code (e.g. "en-GB") to a language.Tag.
func FromTelegram(code string) language.Tag {
	base, _, _ := strings.Cut(strings.ToLower(strings.TrimSpace(code)), "-")
	switch base {
	case "en":
		return English
	case "fr":
		return French
	default:
		// French is the group's language
		return French
	}
}
