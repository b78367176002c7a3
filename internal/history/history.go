// Package history keeps a bounded window of recent chat turns per user.
package history

import "sync"

// DefaultLimit is the number of turns kept per user when none is given.
const DefaultLimit = 10

// Roles used in turns.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one message of a conversation.
type Turn struct {
	Role    string
	Content string
}

// Buffer stores at most limit turns per user, dropping the oldest first.
type Buffer struct {
	mu    sync.Mutex
	limit int
	turns map[int64][]Turn
}

// New creates a buffer. A non-positive limit uses DefaultLimit.
func New(limit int) *Buffer {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Buffer{
		limit: limit,
		turns: make(map[int64][]Turn),
	}
}

// Append adds turns for a user and trims the window. A window never starts
// with an assistant turn, so an odd limit may keep one turn less.
func (b *Buffer) Append(userID int64, turns ...Turn) {
	if len(turns) == 0 {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	list := append(b.turns[userID], turns...)
	if over := len(list) - b.limit; over > 0 {
		// copy so the dropped prefix does not pin the old backing array
		list = list[over:]
		for len(list) > 0 && list[0].Role == RoleAssistant {
			list = list[1:]
		}
		list = append([]Turn(nil), list...)
	}
	b.turns[userID] = list
}

// Get returns a copy of the user's turns, oldest first.
func (b *Buffer) Get(userID int64) []Turn {
	b.mu.Lock()
	defer b.mu.Unlock()

	list := b.turns[userID]
	if len(list) == 0 {
		return nil
	}
	out := make([]Turn, len(list))
	copy(out, list)
	return out
}

// Reset forgets a user's conversation.
func (b *Buffer) Reset(userID int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.turns, userID)
}
