// Package stats keeps in-process operational counters.
package stats

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// Counter names.
const (
	WelcomePublic     = "welcome_public"
	GroupRedirect     = "group_redirect"
	DMStart           = "dm_start"
	Help              = "help"
	MenuRencontres    = "menu_rencontres"
	MenuAmitie        = "menu_amitie"
	MenuDecouverte    = "menu_decouverte"
	KeywordReply      = "keyword_reply"
	FollowUpScheduled = "followup_scheduled"
	FollowUpSent      = "followup_sent"
	AssistantReply    = "assistant_reply"
	AssistantError    = "assistant_error"
	RateLimited       = "rate_limited"
	SendError         = "send_error"
)

// Counters is a set of named monotonic counters. The zero value is not usable; use New.
type Counters struct {
	mu      sync.Mutex
	started time.Time
	values  map[string]int64
}

// New creates an empty counter set started now.
func New() *Counters {
	return &Counters{
		started: time.Now(),
		values:  make(map[string]int64),
	}
}

// Inc adds one to name.
func (c *Counters) Inc(name string) {
	c.Add(name, 1)
}

// Add adds delta to name. Negative deltas are ignored.
func (c *Counters) Add(name string, delta int64) {
	if delta <= 0 {
		return
	}
	c.mu.Lock()
	c.values[name] += delta
	c.mu.Unlock()
}

// Get returns the current value of name.
func (c *Counters) Get(name string) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.values[name]
}

// Snapshot returns a copy of all counters.
func (c *Counters) Snapshot() map[string]int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]int64, len(c.values))
	for k, v := range c.values {
		out[k] = v
	}
	return out
}

// Uptime returns the time elapsed since New.
func (c *Counters) Uptime() time.Duration {
	return time.Since(c.started)
}

// Format renders counters sorted by name, one "name: value" per line.
func (c *Counters) Format() string {
	snap := c.Snapshot()
	names := make([]string, 0, len(snap))
	for k := range snap {
		names = append(names, k)
	}
	sort.Strings(names)

	var sb strings.Builder
	fmt.Fprintf(&sb, "uptime: %s\n", c.Uptime().Truncate(time.Second))
	if len(names) == 0 {
		sb.WriteString("(no events yet)\n")
	}
	for _, name := range names {
		fmt.Fprintf(&sb, "%s: %d\n", name, snap[name])
	}
	return sb.String()
}
