// internal/tui/app.go
//
// This is the interactive review screen for lens.
// It uses bubbletea, which follows The Elm Architecture:
//
// 1. Model: the review, the highlight controller and the layout
// 2. Update: mouse motion becomes enter/leave calls on the controller
// 3. View: every panel is redrawn from the controller state
//
// The flow is: Pointer -> MouseMsg -> hit map -> Controller -> View -> Screen

package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"

	"github.com/kingrea/lens/internal/config"
	"github.com/kingrea/lens/internal/highlight"
	"github.com/kingrea/lens/internal/logbook"
	"github.com/kingrea/lens/internal/logging"
	"github.com/kingrea/lens/internal/review"
	"github.com/kingrea/lens/internal/segment"
	"github.com/kingrea/lens/internal/store"
)

const (
	headerRows    = 2
	defaultHeight = 30
	logPanelLines = 3
)

// storeChangedMsg arrives when the watcher saw the store change on disk.
type storeChangedMsg struct{}

// AppOption customizes App construction for tests and alternate runtimes.
type AppOption func(*App)

// WithLogbook overrides the session logbook.
func WithLogbook(lb *logbook.Logbook) AppOption {
	return func(a *App) {
		a.logbook = lb
	}
}

// WithLogger routes diagnostics to logger.
func WithLogger(logger *logging.Logger) AppOption {
	return func(a *App) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithTheme overrides the configured colours.
func WithTheme(theme Theme) AppOption {
	return func(a *App) {
		a.theme = theme
	}
}

// App is the main application model. In bubbletea, this holds ALL your state.
type App struct {
	config     *config.Config
	store      store.Store
	supplied   map[string]string
	review     *review.Review
	controller *highlight.Controller
	logbook    *logbook.Logbook
	logger     *logging.Logger
	theme      Theme

	keys     keyMap
	help     help.Model
	viewport viewport.Model
	doc      Document
	hovered  string
	changes  chan struct{}
	done     chan struct{}
	stopOnce sync.Once

	statusMsg string
	err       error

	// Window size (we get this from bubbletea)
	width  int
	height int
}

// NewApp loads the exercise and builds the model. Values in supplied win over
// the store, which may be nil.
func NewApp(cfg *config.Config, st store.Store, supplied map[string]string, opts ...AppOption) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("tui: config is required")
	}
	app := &App{
		config:   cfg,
		store:    st,
		supplied: supplied,
		logger:   logging.Nop(),
		theme:    ThemeFromConfig(cfg),
		keys:     defaultKeyMap(),
		help:     help.New(),
		viewport: viewport.New(defaultWidth, defaultHeight),
		changes:  make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
	if lb, err := logbook.New(cfg.SessionLogPath()); err == nil {
		app.logbook = lb
	}
	for _, opt := range opts {
		if opt != nil {
			opt(app)
		}
	}

	interactive := segment.SectionPanels()
	if cfg.InteractiveAll() {
		interactive = append(segment.SourcePanels(), interactive...)
	}
	app.controller = highlight.New(
		highlight.WithInteractivePanels(interactive...),
		highlight.WithObserver(app.recordTransition),
	)

	if err := app.load(); err != nil {
		return nil, err
	}
	app.logInfo("Session opened · score %d · %d phrases", app.review.Score(), app.review.Vocabulary().Len())
	app.layout()
	return app, nil
}

// Controller exposes the highlight state.
func (a *App) Controller() *highlight.Controller {
	return a.controller
}

// Review returns the exercise currently on screen.
func (a *App) Review() *review.Review {
	return a.review
}

// NotifyStoreChanged asks the running program to reload. It never blocks and
// may be called from any goroutine.
func (a *App) NotifyStoreChanged() {
	select {
	case a.changes <- struct{}{}:
	default:
	}
}

// Close releases the pending store-change command. Safe to call more than
// once.
func (a *App) Close() {
	a.stopOnce.Do(func() { close(a.done) })
}

func (a *App) waitForChange() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-a.changes:
			return storeChangedMsg{}
		case <-a.done:
			return nil
		}
	}
}

func (a *App) load() error {
	inputs, err := store.Resolve(context.Background(), a.store, a.supplied)
	if err != nil {
		return fmt.Errorf("tui: load inputs: %w", err)
	}
	a.review = review.Build(inputs)
	return nil
}

func (a *App) reload(reason string) {
	if err := a.load(); err != nil {
		a.err = err
		a.statusMsg = err.Error()
		a.logError("Reload failed: %v", err)
		a.logger.Zap().Error("reload failed", zap.String("reason", reason), zap.Error(err))
		return
	}
	a.err = nil
	a.hovered = ""
	a.controller.Reset()
	a.statusMsg = fmt.Sprintf("Reloaded (%s)", reason)
	a.logInfo("Reloaded inputs (%s) · score %d · %d phrases", reason, a.review.Score(), a.review.Vocabulary().Len())
	a.logger.Zap().Info("inputs reloaded", zap.String("reason", reason), zap.Int("phrases", a.review.Vocabulary().Len()))
	a.refresh()
}

func (a *App) recordTransition(tr highlight.Transition) {
	if tr.To == highlight.StateActive {
		a.logbook.Hover(tr.Phrase, tr.Identifier)
	} else {
		a.logInfo("Highlight cleared")
	}
	a.logger.Zap().Debug("highlight transition",
		zap.String("from", string(tr.From)),
		zap.String("to", string(tr.To)),
		zap.String("identifier", tr.Identifier),
	)
}

func (a *App) logInfo(format string, args ...any) {
	if a.logbook == nil {
		return
	}
	a.logbook.Info(format, args...)
}

func (a *App) logError(format string, args ...any) {
	if a.logbook == nil {
		return
	}
	a.logbook.Error(format, args...)
}

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	return a.waitForChange()
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.layout()
		return a, nil

	case storeChangedMsg:
		a.reload("store changed")
		return a, a.waitForChange()

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionMotion {
			a.pointAt(msg.X, msg.Y)
			return a, nil
		}

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, a.keys.Quit):
			a.Close()
			return a, tea.Quit
		case key.Matches(msg, a.keys.Reload):
			a.reload("manual")
			return a, nil
		case key.Matches(msg, a.keys.Clear):
			a.hovered = ""
			a.controller.Reset()
			a.statusMsg = ""
			a.refresh()
			return a, nil
		case key.Matches(msg, a.keys.Help):
			a.help.ShowAll = !a.help.ShowAll
			a.layout()
			return a, nil
		}
	}

	var cmd tea.Cmd
	a.viewport, cmd = a.viewport.Update(msg)
	return a, cmd
}

// pointAt moves the pointer to screen cell (x, y). Leaving a phrase and
// entering the next are two separate controller calls so the controller sees
// the same event order a pointer produces.
func (a *App) pointAt(x, y int) {
	id := ""
	if row := y - headerRows; row >= 0 && row < a.viewport.Height {
		id, _ = a.doc.HitAt(x, row+a.viewport.YOffset)
	}
	if id == a.hovered {
		return
	}
	changed := false
	if a.hovered != "" && a.controller.OnLeave(a.hovered) {
		changed = true
	}
	if id != "" && a.controller.OnEnter(id) {
		changed = true
	}
	a.hovered = id
	if changed {
		a.refresh()
	}
}

func (a *App) layout() {
	width := a.width
	if width <= 0 {
		width = defaultWidth
	}
	height := a.height
	if height <= 0 {
		height = defaultHeight
	}
	a.help.Width = width
	a.viewport.Width = width
	a.viewport.Height = max(1, height-headerRows-lipgloss.Height(a.renderFooter()))
	a.refresh()
}

// refresh redraws the panels from the controller state, keeping the scroll
// position.
func (a *App) refresh() {
	offset := a.viewport.YOffset
	a.doc = Renderer{Theme: a.theme, Width: a.viewport.Width}.Render(a.review, a.controller.IsActive)
	a.viewport.SetContent(a.doc.String())
	a.viewport.SetYOffset(offset)
}

// View renders the UI.
func (a *App) View() string {
	sections := []string{
		Header(a.review, a.controller.ActivePhrase()),
		"",
		a.viewport.View(),
		a.renderFooter(),
	}
	return strings.Join(sections, "\n")
}

func (a *App) renderFooter() string {
	parts := []string{}
	if logPanel := a.renderLogPanel(); logPanel != "" {
		parts = append(parts, logPanel)
	}
	status := a.statusMsg
	if a.err != nil {
		status = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Render(a.err.Error())
	}
	// always one row, so the viewport height does not move with the status
	parts = append(parts, lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Render(status))
	parts = append(parts, a.help.View(a.keys))
	return strings.Join(parts, "\n")
}

func (a *App) renderLogPanel() string {
	if a.logbook == nil {
		return ""
	}
	lines, total := a.logbook.Tail(logPanelLines)
	if len(lines) == 0 {
		return ""
	}
	fileName := filepath.Base(a.logbook.Path())
	if fileName == "." || fileName == "" {
		fileName = "log"
	}
	head := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#5B8DEF")).
		Render(fmt.Sprintf("LOG · %s · %d entries · %d phrases hovered", fileName, total, len(a.logbook.HoveredPhrases())))
	limit := max(minWidth, a.viewport.Width-4)
	for i := range lines {
		lines[i] = runewidth.Truncate(lines[i], limit, "…")
	}
	for len(lines) < logPanelLines {
		lines = append(lines, "")
	}
	body := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#AAAAAA")).
		Render(strings.Join(lines, "\n"))
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		Padding(0, 1).
		Render(fmt.Sprintf("%s\n%s", head, body))
}
