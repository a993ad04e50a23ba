// Package toast holds short-lived notifications shown above the footer.
package toast

import (
	"sync"
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/atomic"
)

// Kind classifies a notification.
type Kind string

const (
	Info    Kind = "info"
	Success Kind = "success"
	Error   Kind = "error"
)

// DefaultTTL is how long a toast stays visible.
const DefaultTTL = 3 * time.Second

// Notifier accepts notifications. Notify never blocks and never fails.
type Notifier interface {
	Notify(text string, kind Kind)
}

// Toast is one visible notification.
type Toast struct {
	ID      int64
	Text    string
	Kind    Kind
	Expires time.Time
}

// Center is the in-process Notifier backing the TUI.
type Center struct {
	mu     sync.Mutex
	toasts []Toast
	nextID atomic.Int64
	ttl    time.Duration
	now    func() time.Time
}

// NewCenter creates a Center. A non-positive ttl means DefaultTTL.
func NewCenter(ttl time.Duration) *Center {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Center{ttl: ttl, now: time.Now}
}

// Notify implements Notifier.
func (c *Center) Notify(text string, kind Kind) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.toasts = append(c.toasts, Toast{
		ID:      c.nextID.Inc(),
		Text:    text,
		Kind:    kind,
		Expires: c.now().Add(c.ttl),
	})
}

// Active returns unexpired toasts, oldest first, dropping expired ones.
func (c *Center) Active() []Toast {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	kept := c.toasts[:0]
	for _, t := range c.toasts {
		if now.Before(t.Expires) {
			kept = append(kept, t)
		}
	}
	c.toasts = kept
	return append([]Toast(nil), kept...)
}

// Len returns the number of stored toasts, including expired ones not yet
// pruned by Active.
func (c *Center) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.toasts)
}

// ExpireMsg asks the app to re-render so expired toasts disappear.
type ExpireMsg struct{}

// Tick schedules the next ExpireMsg.
func (c *Center) Tick() tea.Cmd {
	return tea.Tick(c.ttl/4, func(time.Time) tea.Msg { return ExpireMsg{} })
}

// Recorder is a Notifier that keeps every notification. Tests use it to
// assert what a screen reported.
type Recorder struct {
	mu    sync.Mutex
	Items []Toast
}

// Notify implements Notifier.
func (r *Recorder) Notify(text string, kind Kind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Items = append(r.Items, Toast{ID: int64(len(r.Items) + 1), Text: text, Kind: kind})
}

// Count returns how many notifications of kind were recorded.
func (r *Recorder) Count(kind Kind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, t := range r.Items {
		if t.Kind == kind {
			n++
		}
	}
	return n
}
