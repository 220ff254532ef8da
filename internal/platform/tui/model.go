package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-bubbles/internal/core"
	"github.com/vovakirdan/tui-bubbles/internal/registry"
	"github.com/vovakirdan/tui-bubbles/internal/storage"
)

// RunOptions carries the optional collaborators of a simulation session.
type RunOptions struct {
	Store  *storage.Store // Run history; nil disables saving
	Logger *log.Logger    // Defaults to log.Default()
	Preset string         // Recorded with each saved run
}

// seeded is implemented by simulations that reseed themselves on restart.
type seeded interface {
	Seed() int64
}

// SimModel is the Bubble Tea model that drives one simulation.
type SimModel struct {
	sim       registry.Sim
	screen    *core.Screen
	opts      RunOptions
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	input     core.InputFrame
	state     core.RunState

	gen      uint64 // Tick loop generation
	lastTick time.Time
	started  time.Time
	saved    bool

	embedded   bool // Back to menu is allowed while paused
	quitting   bool
	backToMenu bool
	err        error
}

// NewSimModel creates a model for the given simulation.
func NewSimModel(sim registry.Sim, cfg core.RuntimeConfig, opts RunOptions) SimModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	return SimModel{
		sim:       sim,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		opts:      opts,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		input:     core.NewInputFrame(),
		gen:       nextTickGen(),
		started:   time.Now(),
	}
}

// Init resets the simulation and starts the frame loop.
func (m SimModel) Init() tea.Cmd {
	m.sim.Reset(m.config)
	m.opts.Logger.Debug("simulation started", "sim", m.sim.ID(), "seed", m.config.Seed,
		"screen", fmt.Sprintf("%dx%d", m.config.ScreenW, m.config.ScreenH))
	return tickCmd(m.config.TickRate, m.gen)
}

// Update handles messages and updates the model state.
func (m SimModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case TickMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		return m.handleTick(msg.At)
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m SimModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.saveRun()
		m.quitting = true
		return m, tea.Quit
	}
	if action == core.ActionBack && m.embedded && m.state.Paused {
		m.saveRun()
		m.backToMenu = true
		return m, nil
	}
	if action != core.ActionNone {
		m.input.Set(action)
	}
	return m, nil
}

// handleResize updates the screen and tells the simulation, which keeps its
// state across the change.
func (m SimModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.sim.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick advances the simulation by one frame.
func (m SimModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}

	if m.input.Has(core.ActionRestart) {
		m.saveRun()
		m.saved = false
		m.started = now
	}

	m.input.Delta = frameDelta(m.lastTick, now)
	m.lastTick = now

	result := m.sim.Step(m.input)
	m.state = result.State
	m.input.Clear()

	if result.Err != nil {
		m.err = result.Err
		m.opts.Logger.Error("simulation stopped", "sim", m.sim.ID(), "ticks", m.state.Ticks, "err", result.Err)
		m.saveRun()
		m.quitting = true
		return m, tea.Quit
	}

	return m, tickCmd(m.config.TickRate, m.gen)
}

// saveRun records the current run once. Failures are logged and ignored.
func (m *SimModel) saveRun() {
	if m.saved || m.opts.Store == nil || m.state.Ticks == 0 {
		return
	}
	m.saved = true

	seed := m.config.Seed
	if s, ok := m.sim.(seeded); ok {
		seed = s.Seed()
	}
	rec := storage.RunRecord{
		SimID:      m.sim.ID(),
		Preset:     m.opts.Preset,
		Seed:       seed,
		Population: m.state.Population,
		Ticks:      m.state.Ticks,
		Respawns:   m.state.Respawns,
		Duration:   int(time.Since(m.started).Seconds()),
	}
	if _, err := m.opts.Store.SaveRun(rec); err != nil {
		m.opts.Logger.Warn("could not save run", "sim", rec.SimID, "err", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *SimModel) saveScreenshot() {
	m.sim.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.opts.Logger.Warn("screenshot skipped", "err", err)
		return
	}
	dir := filepath.Join(home, ".bubbles", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.opts.Logger.Warn("screenshot skipped", "err", err)
		return
	}

	filename := fmt.Sprintf("%s_%s.txt", m.sim.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.opts.Logger.Warn("screenshot failed", "path", path, "err", err)
		return
	}
	m.opts.Logger.Debug("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m SimModel) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}
	m.sim.Render(m.screen)
	return RenderScreen(m.screen)
}

// Err returns the fatal simulation error that ended the run, if any.
func (m SimModel) Err() error {
	return m.err
}

// IsQuitting returns true if the user or a fatal error ended the session.
func (m SimModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user asked to return to the menu.
func (m SimModel) BackToMenu() bool {
	return m.backToMenu
}

// Run starts a Bubble Tea program for one simulation and blocks until it
// ends. A fatal simulation error is returned after the terminal is restored.
func Run(sim registry.Sim, cfg core.RuntimeConfig, opts RunOptions) error {
	model := NewSimModel(sim, cfg, opts)

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(SimModel); ok && fm.Err() != nil {
		return fmt.Errorf("%s: %w", sim.ID(), fm.Err())
	}
	return nil
}
