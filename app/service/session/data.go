package session

import (
	"sync"
	"time"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one transcript entry.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Context holds the state of one conversation: the running transcript
// and the venue list most recently shown to the user. It is owned by a
// single conversation and never shared across sessions.
type Context struct {
	ID        string
	Guest     string
	CreatedAt time.Time

	mu         sync.Mutex
	transcript []Turn
	lastShown  []string
}

// AppendTurn records one transcript entry. The transcript is append-only
// within a session and only cleared by an explicit reset.
func (c *Context) AppendTurn(role, content string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.transcript = append(c.transcript, Turn{Role: role, Content: content})
}

// Transcript returns a copy of the transcript for rendering and export.
func (c *Context) Transcript() []Turn {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Turn, len(c.transcript))
	copy(out, c.transcript)

	return out
}

// SetLastShown overwrites the referent list used by ordinal resolution.
func (c *Context) SetLastShown(venues []string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lastShown = append([]string(nil), venues...)
}

func (c *Context) LastShown() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]string(nil), c.lastShown...)
}

func (c *Context) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.transcript = nil
	c.lastShown = nil
}
