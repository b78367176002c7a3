// Package config loads the bot settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/mad2moi/telegram-bot/internal/env"
	"github.com/mad2moi/telegram-bot/internal/keywords"
)

// ErrMissingToken is returned when no bot token is configured.
var ErrMissingToken = errors.New("TELEGRAM_BOT_TOKEN is not set")

type Config struct {
	BotToken    string
	BotUsername string

	// Funnel links
	SiteBaseURL      string
	FacebookGroupURL string
	Campaign         string
	UTMSource        string
	UTMMedium        string

	FollowUpDelay   time.Duration
	KeywordCooldown time.Duration
	Keywords        []string
	KeywordPatterns []string
	SendRate        float64

	// Assistant
	OpenAIKey       string
	OpenAIModel     string
	OpenAIBaseURL   string
	LLMTimeout      time.Duration
	LLMMaxTokens    int
	LLMTemperature  float64
	PersonaPrompt   string
	CTAEvery        int
	HistoryLimit    int
	RateLimitMax    int
	RateLimitWindow time.Duration

	AdminIDs    []int64
	DBPath      string
	DefaultLang string
	LogLevel    string
}

// Load reads an optional .env file, then the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds the config from the process environment only.
func FromEnv() (Config, error) {
	cfg := Config{
		BotToken:    env.GetString("TELEGRAM_BOT_TOKEN", env.GetString("TELEGRAM_TOKEN", "")),
		BotUsername: env.GetString("BOT_USERNAME", ""),

		SiteBaseURL:      env.GetString("SITE_BASE_URL", "https://www.mad2moi.com/"),
		FacebookGroupURL: env.GetString("FACEBOOK_GROUP_URL", "https://www.facebook.com/groups/1095227448813415/?ref=share"),
		Campaign:         env.GetString("UTM_CAMPAIGN", "non_vax_groupe"),
		UTMSource:        env.GetString("UTM_SOURCE", "telegram"),
		UTMMedium:        env.GetString("UTM_MEDIUM", "bot"),

		Keywords: env.GetStringList("KEYWORDS", keywords.Default),
		SendRate: env.GetFloat("SEND_RATE_PER_SECOND", 25),
		// semicolon separated: patterns may contain commas
		KeywordPatterns: env.GetStringListSep("KEYWORD_PATTERNS", ";", nil),

		OpenAIKey:      env.GetString("OPENAI_API_KEY", ""),
		OpenAIModel:    env.GetString("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL:  env.GetString("OPENAI_BASE_URL", ""),
		LLMTemperature: env.GetFloat("LLM_TEMPERATURE", 0.8),
		PersonaPrompt:  env.GetString("PERSONA_PROMPT", ""),

		DBPath:      env.GetString("DB_PATH", ""),
		DefaultLang: env.GetString("DEFAULT_LANG", "fr"),
		LogLevel:    env.GetString("LOG_LEVEL", "info"),
	}
	if cfg.BotToken == "" {
		return Config{}, ErrMissingToken
	}

	var err error
	durations := []struct {
		key      string
		dst      *time.Duration
		fallback time.Duration
	}{
		{"FOLLOWUP_DELAY", &cfg.FollowUpDelay, 24 * time.Hour},
		{"KEYWORD_COOLDOWN", &cfg.KeywordCooldown, 10 * time.Minute},
		{"LLM_TIMEOUT", &cfg.LLMTimeout, 30 * time.Second},
		{"RATE_LIMIT_WINDOW", &cfg.RateLimitWindow, time.Minute},
	}
	for _, d := range durations {
		if *d.dst, err = env.LookupDuration(d.key, d.fallback); err != nil {
			return Config{}, err
		}
	}

	ints := []struct {
		key      string
		dst      *int
		fallback int
	}{
		{"LLM_MAX_TOKENS", &cfg.LLMMaxTokens, 400},
		{"LLM_CTA_EVERY", &cfg.CTAEvery, 3},
		{"HISTORY_LIMIT", &cfg.HistoryLimit, 10},
		{"RATE_LIMIT_MAX", &cfg.RateLimitMax, 5},
	}
	for _, i := range ints {
		if *i.dst, err = env.LookupInt(i.key, i.fallback); err != nil {
			return Config{}, err
		}
	}

	if cfg.AdminIDs, err = env.LookupInt64List("ADMIN_IDS"); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
