package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

// MenuChoice is what the player picked in the start menu.
type MenuChoice int

const (
	MenuNone MenuChoice = iota
	MenuContinue
	MenuNewGame
	MenuScores
	MenuQuit
)

func (c MenuChoice) String() string {
	switch c {
	case MenuContinue:
		return "Continue"
	case MenuNewGame:
		return "New Game"
	case MenuScores:
		return "High Scores"
	case MenuQuit:
		return "Quit"
	default:
		return ""
	}
}

// MenuInfo is shown in the menu header.
type MenuInfo struct {
	Profile     string
	BestScore   int
	CanContinue bool // A session is in progress
}

// MenuModel is the Bubble Tea model for the start menu.
type MenuModel struct {
	items     []MenuChoice
	cursor    int
	width     int
	height    int
	info      MenuInfo
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	choice    MenuChoice
}

// NewMenuModel creates a new menu model.
func NewMenuModel(info MenuInfo, cfg core.RuntimeConfig) MenuModel {
	items := []MenuChoice{MenuNewGame, MenuScores, MenuQuit}
	if info.CanContinue {
		items = append([]MenuChoice{MenuContinue}, items...)
	}

	return MenuModel{
		items:     items,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		info:      info,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.choice = MenuQuit
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		m.choice = m.items[m.cursor]
		return m, tea.Quit

	case MenuActionScoreboard:
		m.choice = MenuScores
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.choice == MenuQuit {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("2 0 4 8"), m.width))
	b.WriteString("\n\n")

	if m.info.Profile != "" {
		sub := fmt.Sprintf("%s  |  best %d", m.info.Profile, m.info.BestScore)
		b.WriteString(centerText(dimStyle.Render(sub), m.width))
		b.WriteString("\n\n")
	}

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+item.String(), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(dimStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Choice returns the selected entry, or MenuNone while still choosing.
func (m MenuModel) Choice() MenuChoice {
	return m.choice
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Choice MenuChoice
	Config core.RuntimeConfig
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(info MenuInfo, cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewMenuModel(info, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Choice: MenuQuit, Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok || m.Choice() == MenuNone {
		return MenuResult{Choice: MenuQuit, Config: cfg}, nil
	}

	return MenuResult{Choice: m.Choice(), Config: m.Config()}, nil
}

// LoadMenuInfo reads the header values for a profile. Store errors leave
// the fields at their zero values.
func LoadMenuInfo(store t2048.Store, profile string) MenuInfo {
	info := MenuInfo{Profile: profile}
	if store == nil {
		return info
	}
	if best, err := store.BestScore(); err == nil {
		info.BestScore = best
	}
	if st, err := store.SessionState(); err == nil && st != nil && !st.Terminated() {
		info.CanContinue = true
	}
	return info
}
