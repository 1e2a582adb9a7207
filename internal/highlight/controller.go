// Package highlight keeps the hover state shared by every rendered panel.
//
// The controller is a two-state machine, idle or active(identifier). Pointer
// enters on interactive panels activate an identifier; the matching leave
// returns to idle. Renderers never hold on to segments across events: they
// ask IsActive for each identifier they draw, so re-rendering between an
// enter and its leave is harmless.
package highlight

import (
	"strings"
	"sync"

	"github.com/kingrea/lens/internal/segment"
)

// State names the controller state.
type State string

const (
	StateIdle   State = "idle"
	StateActive State = "active"
)

// Transition describes one accepted state change.
type Transition struct {
	From       State
	To         State
	Identifier string
	Phrase     string
}

// Option customizes a Controller.
type Option func(*Controller)

// WithInteractive replaces the set of panel prefixes that accept pointer
// enters. Defaults to the six feedback section panels.
func WithInteractive(prefixes ...string) Option {
	return func(c *Controller) {
		c.interactive = map[string]struct{}{}
		for _, prefix := range prefixes {
			prefix = strings.TrimSpace(prefix)
			if prefix != "" {
				c.interactive[prefix] = struct{}{}
			}
		}
	}
}

// WithInteractivePanels is WithInteractive for panel values.
func WithInteractivePanels(panels ...segment.Panel) Option {
	prefixes := make([]string, 0, len(panels))
	for _, p := range panels {
		prefixes = append(prefixes, p.Prefix)
	}
	return WithInteractive(prefixes...)
}

// WithObserver registers fn to receive every accepted transition.
func WithObserver(fn func(Transition)) Option {
	return func(c *Controller) {
		if fn != nil {
			c.observers = append(c.observers, fn)
		}
	}
}

// Controller synchronises highlight state across panels.
type Controller struct {
	mu          sync.Mutex
	active      string
	phrase      string
	interactive map[string]struct{}
	observers   []func(Transition)
}

// New builds an idle controller.
func New(opts ...Option) *Controller {
	c := &Controller{}
	WithInteractivePanels(segment.SectionPanels()...)(c)
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// OnEnter activates id when it belongs to an interactive panel. The most
// recent enter wins. It reports whether the state changed.
func (c *Controller) OnEnter(id string) bool {
	prefix, phrase, ok := segment.ParseIdentifier(id)
	if !ok {
		return false
	}
	c.mu.Lock()
	if _, allowed := c.interactive[prefix]; !allowed || c.active == id {
		c.mu.Unlock()
		return false
	}
	from := c.stateLocked()
	c.active, c.phrase = id, phrase
	observers := c.observers
	c.mu.Unlock()

	c.notify(observers, Transition{From: from, To: StateActive, Identifier: id, Phrase: phrase})
	return true
}

// OnLeave returns to idle when id is the active identifier. Leaves for any
// other identifier are ignored.
func (c *Controller) OnLeave(id string) bool {
	c.mu.Lock()
	if c.active == "" || c.active != id {
		c.mu.Unlock()
		return false
	}
	phrase := c.phrase
	c.active, c.phrase = "", ""
	observers := c.observers
	c.mu.Unlock()

	c.notify(observers, Transition{From: StateActive, To: StateIdle, Identifier: id, Phrase: phrase})
	return true
}

// Reset forces the controller back to idle.
func (c *Controller) Reset() {
	c.mu.Lock()
	id := c.active
	c.mu.Unlock()
	if id != "" {
		c.OnLeave(id)
	}
}

// IsActive reports whether id names the active phrase in any panel.
func (c *Controller) IsActive(id string) bool {
	_, phrase, ok := segment.ParseIdentifier(id)
	if !ok {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phrase != "" && c.phrase == phrase
}

// Active returns the active identifier, if any.
func (c *Controller) Active() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active, c.active != ""
}

// ActivePhrase returns the phrase behind the active identifier.
func (c *Controller) ActivePhrase() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phrase
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

// Interactive reports whether enters on the panel prefix are honoured.
func (c *Controller) Interactive(prefix string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.interactive[prefix]
	return ok
}

func (c *Controller) stateLocked() State {
	if c.active == "" {
		return StateIdle
	}
	return StateActive
}

func (c *Controller) notify(observers []func(Transition), tr Transition) {
	for _, fn := range observers {
		fn(tr)
	}
}
