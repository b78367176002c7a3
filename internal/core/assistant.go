package core

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/mad2moi/telegram-bot/internal/history"
	"github.com/mad2moi/telegram-bot/internal/i18n"
	"github.com/mad2moi/telegram-bot/internal/ratelimit"
)

// maxInputRunes caps what a single private message may send to the model.
const maxInputRunes = 2000

var (
	// ErrRateLimited is returned when a user writes faster than the limiter allows.
	ErrRateLimited = errors.New("assistant: rate limited")
	// ErrDisabled is returned when no language model is configured.
	ErrDisabled = errors.New("assistant: disabled")
)

// Completer produces the assistant's answer for a conversation.
type Completer interface {
	Complete(ctx context.Context, persona string, turns []history.Turn, userText string) (string, error)
}

// AssistantOptions configures an Assistant.
type AssistantOptions struct {
	// Persona overrides the catalog persona_prompt when set.
	Persona      string
	HistoryLimit int
	RateMax      int
	RateWindow   time.Duration
	// CTAEvery attaches the sign-up keyboard to the 1st answer and then every CTAEvery answers. 0 disables it.
	CTAEvery int
}

// Reply is the outcome of one private message.
type Reply struct {
	Text    string
	WithCTA bool
	// NotifyLimit is set on the first rejected message of a burst.
	NotifyLimit bool
}

// Assistant relays private messages to the language model with a bounded
// history and a per-user rate limit.
type Assistant struct {
	llm     Completer
	opts    AssistantOptions
	history *history.Buffer
	limiter *ratelimit.Window
	now     func() time.Time

	mu      sync.Mutex
	answers map[int64]int
}

// NewAssistant creates an assistant. llm may be nil, which disables it.
func NewAssistant(llm Completer, opts AssistantOptions) *Assistant {
	if opts.RateMax <= 0 {
		opts.RateMax = 5
	}
	if opts.RateWindow <= 0 {
		opts.RateWindow = time.Minute
	}
	return &Assistant{
		llm:     llm,
		opts:    opts,
		history: history.New(opts.HistoryLimit),
		limiter: ratelimit.New(opts.RateMax, opts.RateWindow),
		now:     time.Now,
		answers: make(map[int64]int),
	}
}

// Enabled reports whether a language model is configured.
func (a *Assistant) Enabled() bool {
	return a.llm != nil
}

// Reply answers userText for userID in lang. On failure the history is left untouched.
func (a *Assistant) Reply(ctx context.Context, userID int64, lang, userText string) (Reply, error) {
	if !a.Enabled() {
		return Reply{}, ErrDisabled
	}

	allowed, first := a.limiter.AllowFirstReject(userID, a.now())
	if !allowed {
		return Reply{NotifyLimit: first}, ErrRateLimited
	}

	userText = truncateRunes(userText, maxInputRunes)
	answer, err := a.llm.Complete(ctx, a.persona(lang), a.history.Get(userID), userText)
	if err != nil {
		return Reply{}, err
	}

	a.history.Append(userID,
		history.Turn{Role: history.RoleUser, Content: userText},
		history.Turn{Role: history.RoleAssistant, Content: answer},
	)

	a.mu.Lock()
	a.answers[userID]++
	n := a.answers[userID]
	a.mu.Unlock()

	return Reply{
		Text:    answer,
		WithCTA: a.opts.CTAEvery > 0 && (n-1)%a.opts.CTAEvery == 0,
	}, nil
}

// Reset forgets the conversation of userID.
func (a *Assistant) Reset(userID int64) {
	a.history.Reset(userID)
	a.mu.Lock()
	delete(a.answers, userID)
	a.mu.Unlock()
}

// PruneIdle drops rate-limit state of users idle for a whole window.
func (a *Assistant) PruneIdle() int {
	return a.limiter.Prune(a.now())
}

func (a *Assistant) persona(lang string) string {
	if a.opts.Persona != "" {
		return a.opts.Persona
	}
	return i18n.T(i18n.Localizer(lang), "persona_prompt")
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
