package router

import (
	"maps"

	tea "charm.land/bubbletea/v2"

	"github.com/aipalm/aipalm/internal/screen"
)

// Params is the bag of values handed from one screen to the next.
type Params map[string]any

// State is the observable navigation state.
type State struct {
	Current screen.ID
	Params  Params
}

// NavigateMsg requests navigation to another screen. When Params is non-nil
// it is staged with PushParams immediately before navigating, so the
// destination observes it at construction.
type NavigateMsg struct {
	To     screen.ID
	Params Params
}

// ResetMsg requests navigation that also clears the back history.
type ResetMsg struct {
	To screen.ID
}

// BackMsg requests navigation to the previous screen.
type BackMsg struct{}

// PushParamsMsg replaces the params bag without navigating.
type PushParamsMsg struct {
	Params Params
}

// ErrorMsg reports a navigation request that could not be served.
type ErrorMsg struct {
	Err error
}

// Navigate returns a command requesting navigation to id.
func Navigate(id screen.ID) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{To: id} }
}

// NavigateWith returns a command staging params and navigating to id.
func NavigateWith(id screen.ID, params Params) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{To: id, Params: params} }
}

// Reset returns a command navigating to id and clearing history.
func Reset(id screen.ID) tea.Cmd {
	return func() tea.Msg { return ResetMsg{To: id} }
}

// Back returns a command requesting the previous screen.
func Back() tea.Cmd {
	return func() tea.Msg { return BackMsg{} }
}

// Router is the navigation controller. It owns the active screen, the
// identifiers of the screens behind it and the params bag.
type Router struct {
	registry *Registry
	current  screen.ID
	active   screen.Screen
	history  []screen.ID
	params   Params
}

// New creates a Router showing the initial screen. The registry must hold a
// factory for initial.
func New(registry *Registry, initial screen.ID) (*Router, error) {
	if registry == nil {
		return nil, &ConfigError{Component: "router", Reason: "nil registry"}
	}
	if err := registry.Validate(initial); err != nil {
		return nil, err
	}
	r := &Router{
		registry: registry,
		current:  initial,
		params:   Params{},
	}
	r.active = registry.build(initial, r.Params())
	return r, nil
}

// Init returns the initial screen's startup command.
func (r *Router) Init() tea.Cmd {
	if r == nil || r.active == nil {
		return nil
	}
	return r.active.Init()
}

// Navigate makes id the active screen. The screen being left is remembered
// for GoBack. Navigating to the current screen does nothing. Staged params
// are not cleared.
func (r *Router) Navigate(id screen.ID) (tea.Cmd, error) {
	if r == nil {
		return nil, ErrNotInitialized
	}
	if id == r.current {
		return nil, nil
	}
	if !r.registry.Has(id) {
		return nil, &ConfigError{Component: "router", Reason: "no screen registered for " + id.String()}
	}
	r.history = append(r.history, r.current)
	return r.show(id), nil
}

// Reset makes id the active screen and forgets all history.
func (r *Router) Reset(id screen.ID) (tea.Cmd, error) {
	if r == nil {
		return nil, ErrNotInitialized
	}
	if !r.registry.Has(id) {
		return nil, &ConfigError{Component: "router", Reason: "no screen registered for " + id.String()}
	}
	r.history = nil
	if id == r.current {
		return nil, nil
	}
	return r.show(id), nil
}

// GoBack returns to the previous screen. No-op when there is no history.
func (r *Router) GoBack() tea.Cmd {
	if r == nil || len(r.history) == 0 {
		return nil
	}
	prev := r.history[len(r.history)-1]
	r.history = r.history[:len(r.history)-1]
	return r.show(prev)
}

// PushParams replaces the params bag.
func (r *Router) PushParams(p Params) error {
	if r == nil {
		return ErrNotInitialized
	}
	r.params = maps.Clone(p)
	if r.params == nil {
		r.params = Params{}
	}
	return nil
}

// Params returns a copy of the params bag.
func (r *Router) Params() Params {
	if r == nil {
		return nil
	}
	return maps.Clone(r.params)
}

// Current returns the active screen identifier.
func (r *Router) Current() screen.ID {
	if r == nil {
		return 0
	}
	return r.current
}

// State returns a snapshot of the navigation state.
func (r *Router) State() State {
	if r == nil {
		return State{}
	}
	return State{Current: r.current, Params: r.Params()}
}

// Active returns the active screen.
func (r *Router) Active() screen.Screen {
	if r == nil {
		return nil
	}
	return r.active
}

// Depth returns the number of screens reachable with GoBack plus one.
func (r *Router) Depth() int {
	if r == nil {
		return 0
	}
	return len(r.history) + 1
}

// Update forwards a message to the active screen and handles navigation messages.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	if r == nil {
		return errorCmd(ErrNotInitialized)
	}
	switch msg := msg.(type) {
	case NavigateMsg:
		if msg.Params != nil {
			if err := r.PushParams(msg.Params); err != nil {
				return errorCmd(err)
			}
		}
		cmd, err := r.Navigate(msg.To)
		if err != nil {
			return errorCmd(err)
		}
		return cmd
	case ResetMsg:
		cmd, err := r.Reset(msg.To)
		if err != nil {
			return errorCmd(err)
		}
		return cmd
	case BackMsg:
		return r.GoBack()
	case PushParamsMsg:
		if err := r.PushParams(msg.Params); err != nil {
			return errorCmd(err)
		}
		return nil
	}

	if r.active == nil {
		return nil
	}

	updated, cmd := r.active.Update(msg)
	r.active = updated
	return cmd
}

// View renders the active screen.
func (r *Router) View(width, height int) string {
	if r == nil || r.active == nil {
		return ""
	}
	return r.active.View(width, height)
}

func (r *Router) show(id screen.ID) tea.Cmd {
	if c, ok := r.active.(screen.Closer); ok {
		c.Close()
	}
	r.current = id
	r.active = r.registry.build(id, r.Params())
	return r.active.Init()
}

func errorCmd(err error) tea.Cmd {
	return func() tea.Msg { return ErrorMsg{Err: err} }
}
