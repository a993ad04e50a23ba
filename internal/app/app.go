package app

import (
	"context"
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/aipalm/aipalm/internal/router"
	"github.com/aipalm/aipalm/internal/screen"
	"github.com/aipalm/aipalm/internal/ui/layout"
	"github.com/aipalm/aipalm/internal/ui/toast"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	deps    *deps
	toasts  *toast.Center
	logger  *zap.Logger
	ticking bool
	width   int
	height  int
}

// New validates opts and builds the root model.
func New(opts Options) (AppModel, error) {
	if err := opts.Validate(); err != nil {
		return AppModel{}, err
	}
	opts = opts.withDefaults()

	d := newDeps(opts)
	reg := d.registry()
	if err := reg.Validate(screen.All()...); err != nil {
		return AppModel{}, err
	}
	r, err := router.New(reg, opts.Initial)
	if err != nil {
		return AppModel{}, err
	}
	return AppModel{
		router: r,
		deps:   d,
		toasts: opts.Toasts,
		logger: opts.Logger,
	}, nil
}

// Router exposes the navigation controller.
func (m AppModel) Router() *router.Router {
	return m.router
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case toast.ExpireMsg:
		m.ticking = false
		m.toasts.Active()
		cmd := m.scheduleExpiry()
		return m, cmd

	case router.ErrorMsg:
		m.logger.Error("navigation failed", zap.Error(msg.Err))
		m.toasts.Notify(msg.Err.Error(), toast.Error)
		cmd := m.scheduleExpiry()
		return m, cmd

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			cmd := m.back()
			expiry := m.scheduleExpiry()
			return m, tea.Batch(cmd, expiry)
		}
	}

	if nav, ok := msg.(router.NavigateMsg); ok {
		m.logger.Debug("navigate", zap.Stringer("from", m.router.Current()), zap.Stringer("to", nav.To))
	}

	cmd := m.router.Update(msg)
	expiry := m.scheduleExpiry()
	return m, tea.Batch(cmd, expiry)
}

// back lets the active screen handle esc, else pops the router.
func (m AppModel) back() tea.Cmd {
	if h, ok := m.router.Active().(screen.BackHandler); ok {
		return h.HandleBack()
	}
	if m.router.Depth() > 1 {
		return router.Back()
	}
	return nil
}

// scheduleExpiry starts the toast expiry loop when toasts are pending.
func (m *AppModel) scheduleExpiry() tea.Cmd {
	if m.ticking || m.toasts.Len() == 0 {
		return nil
	}
	m.ticking = true
	return m.toasts.Tick()
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.TooSmall(m.width, m.height) {
		v.SetContent(layout.ResizePrompt(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.Header(title, m.deps.lang.Load(), m.width)
	notices := toast.Render(m.toasts.Active(), m.width)

	footerHints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if p, ok := active.(screen.KeyHintProvider); ok {
		footerHints = p.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	footer := layout.Footer(footerHints, m.width)

	body := m.router.View(m.width, layout.BodyHeight(m.height, header, notices, footer))
	v.SetContent(layout.Frame(header, body, notices, footer, m.width, m.height))
	return v
}

// Run starts the Bubble Tea program and blocks until it exits or ctx is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	model, err := New(opts)
	if err != nil {
		return fmt.Errorf("build app: %w", err)
	}
	p := tea.NewProgram(model, tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
