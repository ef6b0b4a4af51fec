package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

// GameOptions configure one game screen.
type GameOptions struct {
	// Session configures the manager. Its Renderer is replaced by the
	// model's animator.
	Session t2048.Options

	SlideTicks int
	PopTicks   int

	// Profile is shown under the title.
	Profile string

	// Fresh discards any persisted session instead of resuming it.
	Fresh bool
}

// Model is the Bubble Tea model for a 2048 game.
type Model struct {
	manager    *t2048.Manager
	animator   *t2048.Animator
	screen     *core.Screen
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	keys       GameKeyMap
	help       help.Model
	profile    string
	fresh      bool
	nested     bool // Running inside SessionModel; back must not quit the program
	loop       uint64
	quitting   bool
	backToMenu bool
}

// NewModel creates a game model. The session starts in Init.
func NewModel(opts GameOptions, cfg core.RuntimeConfig) Model {
	cfg = cfg.Normalize()
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Session.Seed == 0 {
		opts.Session.Seed = cfg.Seed
	}

	animator := t2048.NewAnimator(opts.SlideTicks, opts.PopTicks)
	opts.Session.Renderer = animator

	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		manager:    t2048.NewManager(opts.Session),
		animator:   animator,
		screen:     core.NewScreen(cfg.ScreenW, gameHeight(cfg.ScreenH)),
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
		keys:       DefaultGameKeyMap(),
		help:       h,
		profile:    opts.Profile,
		fresh:      opts.Fresh,
		loop:       nextLoop(),
	}
}

// gameHeight leaves the last terminal row for the help bar.
func gameHeight(h int) int {
	return max(1, h-1)
}

// Init starts the session and the tick loop.
func (m Model) Init() tea.Cmd {
	if m.fresh {
		m.manager.Restart()
	} else {
		m.manager.Setup()
	}
	return tickCmd(m.config.TickRate, m.loop)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.Loop != m.loop {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case msg.String() == "ctrl+s" && !m.nested:
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.inputFrame.Has(core.ActionBack) {
		m.inputFrame.Clear()
		m.backToMenu = true
		if m.nested {
			return m, nil
		}
		return m, tea.Quit
	}

	return m, nil
}

// handleResize processes window resize events. The session survives.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, gameHeight(msg.Height))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick applies at most one queued action and advances the animation.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if !m.inputFrame.Empty() {
		m.manager.Step(m.inputFrame)
		m.inputFrame.Clear()
	}
	m.animator.Advance()

	return m, tickCmd(m.config.TickRate, m.loop)
}

// saveScreenshot saves the current board to a file.
func (m *Model) saveScreenshot() {
	m.draw()

	dir := filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("t2048_%s.txt", timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

func (m *Model) draw() {
	t2048.DrawBoard(m.screen, m.animator, t2048.HUD{Profile: m.profile})
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.draw()

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return RenderScreen(m.screen) + "\n" + centerText(helpStyle.Render(m.help.View(m.keys)), m.config.ScreenW)
}

// Manager returns the running session.
func (m Model) Manager() *t2048.Manager {
	return m.manager
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run plays one game in its own program. It returns true when the player
// went back to the menu rather than quitting.
func Run(opts GameOptions, cfg core.RuntimeConfig) (backToMenu bool, err error) {
	model := NewModel(opts, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(Model)
	if !ok {
		return false, nil
	}
	return m.BackToMenu(), nil
}
