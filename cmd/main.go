package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mad2moi/telegram-bot/config"
	"github.com/mad2moi/telegram-bot/internal/botapp"
	"github.com/mad2moi/telegram-bot/internal/botapp/commands"
	"github.com/mad2moi/telegram-bot/internal/core"
	"github.com/mad2moi/telegram-bot/internal/keywords"
	"github.com/mad2moi/telegram-bot/internal/logger"
	"github.com/mad2moi/telegram-bot/internal/ratelimit"
	"github.com/mad2moi/telegram-bot/internal/stats"
	"github.com/mad2moi/telegram-bot/internal/storage"
	"github.com/mad2moi/telegram-bot/internal/tracking"
	"github.com/mad2moi/telegram-bot/service"
)

// pruneEvery is how often idle rate-limit state is dropped.
const pruneEvery = 10 * time.Minute

func main() {
	// Handle Ctrl+C / SIGTERM for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf("Config: %v", err)
		os.Exit(1)
	}
	logger.SetLevel(logger.ParseLevel(cfg.LogLevel))

	store, err := openStore(cfg.DBPath)
	if err != nil {
		logger.Errorf("Storage: %v", err)
		os.Exit(1)
	}
	defer store.Close()

	matcher, err := keywords.New(cfg.Keywords, cfg.KeywordPatterns...)
	if err != nil {
		logger.Errorf("Keywords: %v", err)
		os.Exit(1)
	}

	// Assistant is disabled without an API key
	var llm core.Completer
	if cfg.OpenAIKey != "" {
		llm = service.NewLLMClient(service.LLMOptions{
			APIKey:      cfg.OpenAIKey,
			BaseURL:     cfg.OpenAIBaseURL,
			Model:       cfg.OpenAIModel,
			MaxTokens:   cfg.LLMMaxTokens,
			Temperature: float32(cfg.LLMTemperature),
			Timeout:     cfg.LLMTimeout,
		})
	} else {
		logger.Warnf("OPENAI_API_KEY is empty, private chat answers with the fallback text")
	}
	assistant := core.NewAssistant(llm, core.AssistantOptions{
		Persona:      cfg.PersonaPrompt,
		HistoryLimit: cfg.HistoryLimit,
		RateMax:      cfg.RateLimitMax,
		RateWindow:   cfg.RateLimitWindow,
		CTAEvery:     cfg.CTAEvery,
	})

	var cooldown *ratelimit.Window
	if cfg.KeywordCooldown > 0 {
		cooldown = ratelimit.New(1, cfg.KeywordCooldown)
	}

	deps := commands.Deps{
		Funnel:          core.NewFunnel(store, cfg.DefaultLang),
		Assistant:       assistant,
		Stats:           stats.New(),
		Keywords:        matcher,
		KeywordCooldown: cooldown,
		Links: tracking.Links{
			BaseURL:     cfg.SiteBaseURL,
			Source:      cfg.UTMSource,
			Medium:      cfg.UTMMedium,
			Campaign:    cfg.Campaign,
			FacebookURL: cfg.FacebookGroupURL,
		},
		BotUsername:   cfg.BotUsername,
		FollowUpDelay: cfg.FollowUpDelay,
		AdminIDs:      cfg.AdminIDs,
	}

	// Create Telegram bot
	app, err := botapp.NewBot(ctx, cfg.BotToken, deps, botapp.Options{
		Store:    store,
		SendRate: cfg.SendRate,
	})
	if err != nil {
		logger.Errorf("Failed to create bot: %v", err)
		os.Exit(1)
	}

	go pruneLoop(ctx, assistant, cooldown)

	logger.Infof("Starting @%s...", app.Username())
	app.Start(ctx)
	logger.Infof("Bot stopped")
}

func openStore(path string) (storage.Store, error) {
	if path == "" {
		logger.Infof("DB_PATH is empty, state is kept in memory")
		return storage.NewMemoryStore(), nil
	}
	return storage.Open(path)
}

func pruneLoop(ctx context.Context, assistant *core.Assistant, cooldown *ratelimit.Window) {
	ticker := time.NewTicker(pruneEvery)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			n := assistant.PruneIdle()
			if cooldown != nil {
				n += cooldown.Prune(now)
			}
			if n > 0 {
				logger.Debugf("Pruned rate-limit state of %d chat(s)", n)
			}
		}
	}
}
