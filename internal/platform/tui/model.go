package tui

import (
	"fmt"
	"image/png"
	"io"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-bubbles/internal/config"
	"github.com/vovakirdan/tui-bubbles/internal/core"
	"github.com/vovakirdan/tui-bubbles/internal/pyramid"
	"github.com/vovakirdan/tui-bubbles/internal/reveal"
	"github.com/vovakirdan/tui-bubbles/internal/source"
	"github.com/vovakirdan/tui-bubbles/internal/storage"
)

// Options configures a reveal Model.
type Options struct {
	Config        config.BubblesConfig
	Store         *storage.Store     // nil disables session history
	Logger        *log.Logger        // nil discards log output
	Renderer      *lipgloss.Renderer // nil uses the default renderer
	Origin        string             // "local" or "ssh:<user>"
	ScreenshotDir string             // empty disables Ctrl+S
}

// autoSplit holds a pulled SplitAll sequence.
type autoSplit struct {
	next func() (reveal.SplitEvent, bool)
	stop func()
}

// revealRun is the state of the pyramid being revealed. Every copy of a
// Model shares one revealRun, so Finish works on any copy, including the
// one handed to the SSH middleware before the program started.
type revealRun struct {
	pyr      *pyramid.Pyramid
	machine  *reveal.Machine
	auto     *autoSplit
	started  time.Time
	recorded bool
}

// Model is the Bubble Tea model for one reveal.
type Model struct {
	opts   Options
	src    source.Source
	theme  Theme
	keys   *KeyMapper
	pacer  *config.Pacer
	bar    progress.Model
	logger *log.Logger

	layout Layout
	run    *revealRun
	canvas *core.Canvas
	shape  pyramid.Shape

	tick      int
	notice    string
	noticeTTL int
	err       error
	quitting  bool
}

// NewModel creates a model for src sized to a cols×rows terminal.
func NewModel(src source.Source, opts Options, cols, rows int) Model {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Origin == "" {
		opts.Origin = "local"
	}
	if opts.Config.TickRate <= 0 {
		opts.Config.TickRate = core.DefaultConfig().TickRate
	}

	theme, ok := ThemeByName(opts.Renderer, opts.Config.Theme.Name)
	if !ok && opts.Config.Theme.Name != "" {
		opts.Logger.Warn("unknown theme, using midnight", "theme", opts.Config.Theme.Name)
	}
	theme.Background = opts.Config.Theme.BackgroundColor(theme.Background)

	m := Model{
		opts:   opts,
		src:    src,
		theme:  theme,
		keys:   NewKeyMapper(),
		pacer:  config.NewPacer(opts.Config.Reveal.Pace),
		bar:    progress.New(progress.WithGradient(theme.ProgressFrom, theme.ProgressTo)),
		logger: opts.Logger,
		shape:  opts.Config.Pyramid.ShapeValue(),
		run:    &revealRun{},
	}
	m.rebuild(cols, rows)
	return m
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.opts.Config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, quit := m.keys.MapKey(msg)
	if quit {
		m.Finish()
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionSplit:
		m.splitLargest()
	case core.ActionSplitAll:
		m.startAuto()
	case core.ActionStop:
		m.stopAuto()
	case core.ActionRestart:
		m.rebuild(m.layout.Cols, m.layout.Rows)
	case core.ActionShape:
		// Shape only changes drawing, so the reveal keeps its progress.
		m.shape = m.shape.Toggle()
		if m.run.pyr != nil {
			m.run.pyr.Shape = m.shape
		}
	case core.ActionScreenshot:
		m.saveScreenshot()
	}

	return m, nil
}

// handleMouse splits the bubbles under the pointer.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.run.machine == nil || m.keys.MapMouse(msg) != core.ActionSplit {
		return m, nil
	}

	top, bottom, ok := m.layout.PixelsAt(msg.X, msg.Y)
	if !ok {
		return m, nil
	}
	// Resolve both cells first so one press cannot split a freshly exposed child.
	upper := m.run.machine.CellAt(top.X, top.Y)
	lower := m.run.machine.CellAt(bottom.X, bottom.Y)
	m.split(upper, false)
	if lower != upper {
		m.split(lower, false)
	}
	return m, nil
}

// handleResize rebuilds the pyramid for the new terminal size.
// A resize discards the current reveal.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	if msg.Width == m.layout.Cols && msg.Height == m.layout.Rows && m.err == nil {
		return m, nil
	}
	m.rebuild(msg.Width, msg.Height)
	return m, nil
}

// handleTick advances auto-complete and expires notices.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	m.tick++

	if m.noticeTTL > 0 {
		m.noticeTTL--
		if m.noticeTTL == 0 {
			m.notice = ""
		}
	}

	if m.run.auto != nil && m.pacer.Due(m.tick) {
		n := m.pacer.Batch(m.run.machine.Progress())
		for i := 0; i < n && m.run.auto != nil; i++ {
			ev, ok := m.run.auto.next()
			if !ok {
				m.stopAuto()
				break
			}
			m.onSplit(ev)
		}
	}

	return m, tickCmd(m.opts.Config.TickRate)
}

// rebuild discards the current pyramid and builds a new one for the
// terminal size.
func (m *Model) rebuild(cols, rows int) {
	m.stopAuto()
	m.record(false)
	m.layout = NewLayout(cols, rows, 0)
	m.run.pyr, m.run.machine = nil, nil

	lo, hi, err := m.bounds(cols, rows)
	if err != nil {
		m.fail(fmt.Errorf("terminal %dx%d is too small: %w", cols, rows, err))
		return
	}

	s, err := m.src.Sampler(hi / lo)
	if err != nil {
		m.fail(err)
		return
	}

	p, err := pyramid.Build(s, lo, hi, m.shape == pyramid.ShapeSquare,
		pyramid.WithWorkers(m.opts.Config.Pyramid.Workers))
	if err != nil {
		m.fail(err)
		return
	}

	m.run.pyr = p
	m.run.machine = reveal.New(p, reveal.WithMidway(m.opts.Config.Reveal.Midway))
	m.layout = NewLayout(cols, rows, hi)
	if m.canvas == nil {
		m.canvas = core.NewCanvas(hi, hi, m.theme.Background)
	} else {
		m.canvas.Resize(hi, hi)
	}
	m.run.started = time.Now()
	m.run.recorded = false
	m.err = nil

	m.logger.Debug("pyramid built",
		"source", m.src.Name(),
		"min", lo,
		"max", hi,
		"cells", p.TotalCells,
		"levels", p.Levels,
	)
}

// bounds picks the cell size range for the terminal. A configured maximum
// wins over the terminal size.
func (m *Model) bounds(cols, rows int) (int, int, error) {
	maxSize := m.opts.Config.Pyramid.MaxCellSize
	if maxSize == 0 {
		side, err := FitSide(cols, rows)
		if err != nil {
			return 0, 0, err
		}
		maxSize = side
	}
	return pyramid.FitRange(maxSize, m.opts.Config.Pyramid.MinCellSize)
}

func (m *Model) fail(err error) {
	m.err = err
	m.logger.Error("cannot build pyramid", "source", m.src.Name(), "error", err)
}

// split applies one split and its side effects.
func (m *Model) split(cell *pyramid.Cell, programmatic bool) {
	if ev, ok := m.run.machine.Split(cell, programmatic); ok {
		m.onSplit(ev)
	}
}

// splitLargest splits the biggest active bubble, for keyboard-only clients.
func (m *Model) splitLargest() {
	if m.run.machine == nil {
		return
	}
	var best *pyramid.Cell
	for _, c := range m.run.machine.Active() {
		if !c.IsLeaf() && (best == nil || c.Size() > best.Size()) {
			best = c
		}
	}
	m.split(best, false)
}

func (m *Model) onSplit(ev reveal.SplitEvent) {
	if ev.Milestone.Has(reveal.MilestoneMidway) && !ev.Milestone.Has(reveal.MilestoneComplete) {
		m.setNotice(fmt.Sprintf("%.0f%% revealed! Press A to auto-complete", m.opts.Config.Reveal.Midway*100))
	}
	if ev.Milestone.Has(reveal.MilestoneComplete) {
		m.stopAuto()
		m.setNotice("Picture revealed!")
		m.record(true)
		m.logger.Info("reveal complete",
			"source", m.src.Name(),
			"splits", m.run.machine.SplitCount(),
			"user", m.run.machine.UserSplits(),
			"duration", time.Since(m.run.started).Round(time.Millisecond),
		)
	}
}

// startAuto begins pulling SplitAll. Auto-complete unlocks at the midway
// milestone.
func (m *Model) startAuto() {
	if m.run.machine == nil || m.run.auto != nil || m.run.machine.Complete() {
		return
	}
	if !m.run.machine.Reached().Has(reveal.MilestoneMidway) {
		m.setNotice(fmt.Sprintf("Auto-complete unlocks at %.0f%%", m.opts.Config.Reveal.Midway*100))
		return
	}
	next, stop := iter.Pull(m.run.machine.SplitAll())
	m.run.auto = &autoSplit{next: next, stop: stop}
}

func (m *Model) stopAuto() {
	if m.run.auto != nil {
		m.run.auto.stop()
		m.run.auto = nil
	}
}

func (m *Model) setNotice(text string) {
	m.notice = text
	m.noticeTTL = 3 * m.opts.Config.TickRate
}

// Finish records the current reveal and releases the auto-complete
// sequence. It is safe to call more than once, and must not run
// concurrently with Update.
func (m Model) Finish() {
	m.stopAuto()
	if m.run.machine != nil {
		m.record(m.run.machine.Complete())
	}
}

// record saves the session outcome once per pyramid, skipping untouched
// pyramids.
func (m *Model) record(completed bool) {
	if m.run.recorded || m.run.machine == nil || m.run.machine.SplitCount() == 0 {
		return
	}
	m.run.recorded = true
	if m.opts.Store == nil {
		return
	}

	snap := m.run.machine.Snapshot()
	_, err := m.opts.Store.SaveSession(storage.Session{
		Source:      m.src.Name(),
		Origin:      m.opts.Origin,
		MinCellSize: m.run.pyr.MinCellSize,
		MaxCellSize: m.run.pyr.MaxCellSize,
		TotalCells:  snap.TotalCells,
		Splits:      snap.SplitCount,
		UserSplits:  snap.UserSplits,
		Completed:   completed,
		Duration:    time.Since(m.run.started),
	})
	if err != nil {
		m.logger.Warn("could not save session", "error", err)
	}
}

// saveScreenshot writes the current frame as a PNG.
func (m *Model) saveScreenshot() {
	if m.opts.ScreenshotDir == "" || m.run.machine == nil {
		m.setNotice("Screenshots are disabled")
		return
	}
	Paint(m.canvas, m.run.machine.Active(), m.shape)

	path, err := writePNG(m.opts.ScreenshotDir, m.src.Name(), m.canvas)
	if err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		m.setNotice("Screenshot failed")
		return
	}
	m.logger.Info("screenshot saved", "path", path)
	m.setNotice("Saved " + path)
}

func writePNG(dir, name string, c *core.Canvas) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.png", base, timestamp))

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := png.Encode(f, c.Image()); err != nil {
		f.Close()
		return "", err
	}
	return path, f.Close()
}

// Snapshot returns the reveal counters, or false when no pyramid is built.
func (m Model) Snapshot() (reveal.Snapshot, bool) {
	if m.run.machine == nil {
		return reveal.Snapshot{}, false
	}
	return m.run.machine.Snapshot(), true
}

// Err returns the last build error.
func (m Model) Err() error {
	return m.err
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.err != nil {
		return m.theme.Error.Render("error: "+m.err.Error()) + "\n" +
			m.theme.HUDControls.Render("r retry · q quit")
	}

	Paint(m.canvas, m.run.machine.Active(), m.shape)
	body := RenderCanvas(m.canvas, m.opts.Renderer, m.layout.Left, m.layout.CanvasRows())
	return body + "\n" + m.hud()
}

// hud renders the two status rows below the canvas.
func (m Model) hud() string {
	snap := m.run.machine.Snapshot()
	sep := m.theme.HUDSeparator.Render(" │ ")

	title := m.theme.HUDTitle.Render(filepath.Base(m.src.Name()))
	bar := m.bar
	bar.Width = max(10, m.layout.Cols-lipgloss.Width(title)-2)
	line1 := title + " " + bar.ViewAs(snap.Progress)

	stats := m.theme.HUDValue.Render(fmt.Sprintf("splits %d/%d", snap.SplitCount, snap.Splittable)) +
		sep + m.theme.HUDValue.Render(fmt.Sprintf("bubbles %d", snap.Active)) +
		sep + m.theme.HUDValue.Render(m.shape.String())

	var tail string
	switch {
	case m.notice != "":
		tail = m.theme.Milestone.Render(m.notice)
	case m.run.auto != nil:
		tail = m.theme.HUDControls.Render("auto-completing… s stop")
	default:
		tail = m.theme.HUDControls.Render("click/drag split · space biggest · a auto · tab shape · r restart · q quit")
	}

	return line1 + "\n" + stats + sep + tail
}

// Run starts the Bubble Tea program for src on a terminal described by rc.
func Run(src source.Source, opts Options, rc core.RuntimeConfig) error {
	if rc.TickRate > 0 {
		opts.Config.TickRate = rc.TickRate
	}
	model := NewModel(src, opts, rc.ScreenW, rc.ScreenH)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Click and drag to split
	)

	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		fm.Finish()
	}
	return err
}
