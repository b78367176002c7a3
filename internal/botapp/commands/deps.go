// Package commands provides shared types for command handlers.
package commands

import (
	"time"

	"github.com/mad2moi/telegram-bot/internal/core"
	"github.com/mad2moi/telegram-bot/internal/followup"
	"github.com/mad2moi/telegram-bot/internal/keywords"
	"github.com/mad2moi/telegram-bot/internal/ratelimit"
	"github.com/mad2moi/telegram-bot/internal/stats"
	"github.com/mad2moi/telegram-bot/internal/tracking"
)

// Deps contains shared dependencies for all command handlers.
type Deps struct {
	// Services
	Funnel    *core.Funnel
	Assistant *core.Assistant
	FollowUps *followup.Scheduler
	Stats     *stats.Counters

	// Group keyword replies
	Keywords        *keywords.Matcher
	KeywordCooldown *ratelimit.Window

	// Config
	Links         tracking.Links
	BotUsername   string
	FollowUpDelay time.Duration
	AdminIDs      []int64
}

// IsAdmin reports whether userID may use admin commands.
func (d Deps) IsAdmin(userID int64) bool {
	for _, id := range d.AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}
