package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-bubbles/internal/config"
	"github.com/vovakirdan/tui-bubbles/internal/core"
)

// presetOption is one row of the preset picker.
type presetOption struct {
	preset config.Preset
	label  string
}

var presetOptions = []presetOption{
	{config.PresetNone, "Config file defaults"},
	{config.PresetClassic, "Classic   circles, fixed step"},
	{config.PresetBoxed, "Boxed     shrunk boxes, per frame"},
	{config.PresetCalm, "Calm      fewer, slower bubbles"},
	{config.PresetCrowded, "Crowded   twice the bubbles"},
}

// PresetModel lets users choose a preset before a simulation starts.
type PresetModel struct {
	title     string
	cursor    int
	width     int
	height    int
	keyMapper *KeyMapper
	selection config.Preset
	choosing  bool
	quitting  bool
	back      bool
}

// NewPresetModel creates a preset picker for the named simulation.
func NewPresetModel(title string, width, height int) PresetModel {
	return PresetModel{
		title:     title,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		choosing:  true,
	}
}

// Init initializes the model.
func (m PresetModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m PresetModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m PresetModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(presetOptions)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		m.choosing = false
		m.selection = presetOptions[m.cursor].preset
		return m, tea.Quit
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}
	return m, nil
}

// View renders the preset list.
func (m PresetModel) View() string {
	if m.quitting || !m.choosing || m.back {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render(strings.ToUpper(m.title)), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a preset:", m.width))
	b.WriteString("\n\n")

	for i, opt := range presetOptions {
		line := "  " + opt.label
		if i == m.cursor {
			line = menuCursorStyle.Render("> " + opt.label)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(menuHintStyle.Render("Enter: Select  |  Esc: Back  |  Q: Quit"), m.width))
	return b.String()
}

// Selected returns the chosen preset and whether a choice was made.
func (m PresetModel) Selected() (config.Preset, bool) {
	if m.choosing {
		return config.PresetNone, false
	}
	return m.selection, true
}

// IsQuitting returns true if user wants to quit.
func (m PresetModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m PresetModel) WantsBack() bool {
	return m.back
}

// PresetResult holds the outcome of the preset picker.
type PresetResult struct {
	Preset config.Preset
	Back   bool
	Quit   bool
}

// RunPresetSelector runs the preset picker for one simulation.
func RunPresetSelector(title string, cfg core.RuntimeConfig) (PresetResult, error) {
	p := tea.NewProgram(NewPresetModel(title, cfg.ScreenW, cfg.ScreenH), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return PresetResult{}, err
	}

	m, ok := finalModel.(PresetModel)
	if !ok || m.IsQuitting() {
		return PresetResult{Quit: true}, nil
	}
	if m.WantsBack() {
		return PresetResult{Back: true}, nil
	}
	preset, _ := m.Selected()
	return PresetResult{Preset: preset}, nil
}
