package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-bubbles/internal/config"
	"github.com/vovakirdan/tui-bubbles/internal/reveal"
	"github.com/vovakirdan/tui-bubbles/internal/source"
	"github.com/vovakirdan/tui-bubbles/internal/storage"
)

// newTestModel builds a 40×18 model: a 32 pixel canvas with 4 pixel
// leaves, so 85 cells of which 21 can split.
func newTestModel(t *testing.T, opts Options) Model {
	t.Helper()
	if opts.Config.TickRate == 0 {
		opts.Config = config.DefaultBubblesConfig()
	}
	opts.Config.Pyramid.MinCellSize = 4

	m := NewModel(source.FromImage("quadrants.png", quadrants(8)), opts, 40, 18)
	if err := m.Err(); err != nil {
		t.Fatalf("NewModel() failed: %v", err)
	}
	return m
}

func snapshot(t *testing.T, m Model) reveal.Snapshot {
	t.Helper()
	snap, ok := m.Snapshot()
	if !ok {
		t.Fatal("Expected a built pyramid")
	}
	return snap
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func key(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func click(col, row int) tea.MouseMsg {
	return tea.MouseMsg{X: col, Y: row, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}
}

func TestModelInitialState(t *testing.T) {
	m := newTestModel(t, Options{})
	snap := snapshot(t, m)

	if snap.TotalCells != 85 || snap.Splittable != 21 {
		t.Errorf("Unexpected pyramid: %+v", snap)
	}
	if snap.Active != 1 || snap.SplitCount != 0 {
		t.Errorf("Expected only the root active: %+v", snap)
	}
	if m.Init() == nil {
		t.Error("Init() should start the tick loop")
	}
}

func TestModelMouseSplits(t *testing.T) {
	m := newTestModel(t, Options{})

	// Column 4 is the first canvas column
	m = update(m, click(4, 0))
	snap := snapshot(t, m)
	if snap.SplitCount != 1 || snap.UserSplits != 1 || snap.Active != 4 {
		t.Errorf("One click should split the root once: %+v", snap)
	}

	// Clicking the margin does nothing
	m = update(m, click(0, 0))
	if got := snapshot(t, m).SplitCount; got != 1 {
		t.Errorf("SplitCount = %d after clicking outside, want 1", got)
	}

	// Dragging across the top-left child splits it
	m = update(m, tea.MouseMsg{X: 5, Y: 1, Button: tea.MouseButtonLeft, Action: tea.MouseActionMotion})
	if got := snapshot(t, m).SplitCount; got != 2 {
		t.Errorf("SplitCount = %d after drag, want 2", got)
	}
}

func TestModelSpaceSplitsLargest(t *testing.T) {
	m := newTestModel(t, Options{})

	for range 5 {
		m = update(m, key(" "))
	}
	snap := snapshot(t, m)
	// Root and its four children: sixteen 8 pixel bubbles remain
	if snap.SplitCount != 5 || snap.Active != 16 {
		t.Errorf("Unexpected state after 5 keyboard splits: %+v", snap)
	}
}

func TestModelAutoCompleteUnlocksAtMidway(t *testing.T) {
	m := newTestModel(t, Options{})

	m = update(m, key("a"))
	if m.run.auto != nil {
		t.Fatal("Auto-complete should stay locked before midway")
	}
	if !strings.Contains(m.notice, "30%") {
		t.Errorf("Expected an unlock notice, got %q", m.notice)
	}

	// 7 of 21 splits crosses 30%
	for range 7 {
		m = update(m, key(" "))
	}
	if !snapshot(t, m).Reached.Has(reveal.MilestoneMidway) {
		t.Fatal("Midway milestone should be reached")
	}

	m = update(m, key("a"))
	if m.run.auto == nil {
		t.Fatal("Auto-complete should start after midway")
	}
	for range 200 {
		m = update(m, TickMsg{})
	}

	snap := snapshot(t, m)
	if snap.SplitCount != 21 || snap.Progress != 1 || snap.UserSplits != 7 {
		t.Errorf("Expected a complete reveal: %+v", snap)
	}
	if m.run.auto != nil {
		t.Error("Auto-complete should release its sequence when done")
	}
}

func TestModelStopHaltsAutoComplete(t *testing.T) {
	m := newTestModel(t, Options{})
	for range 7 {
		m = update(m, key(" "))
	}
	m = update(m, key("a"))
	m = update(m, key("s"))

	for range 50 {
		m = update(m, TickMsg{})
	}
	if got := snapshot(t, m).SplitCount; got != 7 {
		t.Errorf("SplitCount = %d after stop, want 7", got)
	}
}

func TestModelRecordsCompletedSession(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	defer store.Close()

	cfg := config.DefaultBubblesConfig()
	config.ApplyPacePreset(&cfg.Reveal.Pace, config.PaceInstant)

	m := newTestModel(t, Options{Config: cfg, Store: store, Origin: "ssh:tester"})
	for range 7 {
		m = update(m, key(" "))
	}
	m = update(m, key("a"))
	m = update(m, TickMsg{})

	if !m.run.machine.Complete() {
		t.Fatalf("Instant pace should finish in one tick: %+v", snapshot(t, m))
	}

	// Quitting afterwards must not record the reveal twice
	next, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Error("q should return tea.Quit")
	}
	if next.(Model).View() != "" {
		t.Error("View() should be empty after quitting")
	}

	sessions, err := store.RecentSessions(10)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("Expected 1 session, got %d", len(sessions))
	}
	got := sessions[0]
	if got.Source != "quadrants.png" || got.Origin != "ssh:tester" || !got.Completed {
		t.Errorf("Unexpected session: %+v", got)
	}
	if got.Splits != 21 || got.UserSplits != 7 || got.TotalCells != 85 || got.MinCellSize != 4 || got.MaxCellSize != 32 {
		t.Errorf("Unexpected session counters: %+v", got)
	}
}

func TestModelRestartRecordsAbandonedSession(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	defer store.Close()

	m := newTestModel(t, Options{Store: store})

	// An untouched pyramid is not recorded
	m = update(m, key("r"))
	m = update(m, key(" "))
	m = update(m, key("r"))

	if got := snapshot(t, m).SplitCount; got != 0 {
		t.Errorf("Restart should reset the reveal, SplitCount = %d", got)
	}

	sessions, _ := store.RecentSessions(10)
	if len(sessions) != 1 || sessions[0].Completed || sessions[0].Splits != 1 {
		t.Errorf("Expected one abandoned session, got %+v", sessions)
	}
}

func TestModelResize(t *testing.T) {
	m := newTestModel(t, Options{})
	m = update(m, key(" "))

	m = update(m, tea.WindowSizeMsg{Width: 20, Height: 10})
	snap := snapshot(t, m)
	if snap.TotalCells != 21 || snap.SplitCount != 0 {
		t.Errorf("Resize should rebuild a 16 pixel pyramid: %+v", snap)
	}

	m = update(m, tea.WindowSizeMsg{Width: 2, Height: 2})
	if m.Err() == nil {
		t.Fatal("A tiny terminal should fail to build")
	}
	if !strings.Contains(m.View(), "error") {
		t.Errorf("View() should show the error, got %q", m.View())
	}

	m = update(m, tea.WindowSizeMsg{Width: 40, Height: 18})
	if m.Err() != nil {
		t.Errorf("Growing the terminal should recover: %v", m.Err())
	}
}

func TestModelViewLayout(t *testing.T) {
	m := newTestModel(t, Options{})

	view := m.View()
	// 16 canvas rows plus 2 HUD rows
	if n := strings.Count(view, "\n"); n != 17 {
		t.Errorf("View() has %d line breaks, want 17", n)
	}
	if !strings.Contains(view, "quadrants.png") {
		t.Error("HUD should name the source")
	}

	m = update(m, key("tab"))
	if !strings.Contains(m.View(), "square") {
		t.Error("HUD should show the toggled shape")
	}
}

func TestModelScreenshot(t *testing.T) {
	m := newTestModel(t, Options{})
	m = update(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if !strings.Contains(m.notice, "disabled") {
		t.Errorf("Expected screenshots disabled, got %q", m.notice)
	}

	dir := t.TempDir()
	m = newTestModel(t, Options{ScreenshotDir: dir})
	m = update(m, tea.KeyMsg{Type: tea.KeyCtrlS})

	files, err := filepath.Glob(filepath.Join(dir, "quadrants_*.png"))
	if err != nil || len(files) != 1 {
		t.Fatalf("Expected one screenshot, got %v (%v)", files, err)
	}
	if info, err := os.Stat(files[0]); err != nil || info.Size() == 0 {
		t.Errorf("Screenshot is empty: %v", err)
	}
}

func TestModelShapeToggleKeepsProgress(t *testing.T) {
	m := newTestModel(t, Options{})
	for range 3 {
		m = update(m, key(" "))
	}

	m = update(m, key("tab"))
	if got := snapshot(t, m).SplitCount; got != 3 {
		t.Errorf("SplitCount = %d after shape toggle, want 3", got)
	}
	if m.run.pyr.Shape.String() != "square" {
		t.Errorf("pyramid shape = %v, want square", m.run.pyr.Shape)
	}
}

func TestModelMidwayNoticeNamesThreshold(t *testing.T) {
	cfg := config.DefaultBubblesConfig()
	cfg.Reveal.Midway = 0.5

	m := newTestModel(t, Options{Config: cfg})
	// 11 of 21 splits crosses 50%
	for range 11 {
		m = update(m, key(" "))
	}
	if !strings.Contains(m.notice, "50%") {
		t.Errorf("midway notice = %q, want it to name 50%%", m.notice)
	}
}

func TestModelFinishFromEarlierCopy(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	defer store.Close()

	// The copy kept by a session handler before the program ran.
	initial := newTestModel(t, Options{Store: store, Origin: "ssh:tester"})

	m := initial
	for range 7 {
		m = update(m, key(" "))
	}
	m = update(m, key("a"))
	m = update(m, TickMsg{})
	m = update(m, TickMsg{})

	initial.Finish()
	initial.Finish()

	if m.run.auto != nil {
		t.Error("Finish should release the auto-complete sequence")
	}
	sessions, err := store.RecentSessions(10)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("Expected 1 session, got %d", len(sessions))
	}
	got := sessions[0]
	if got.Completed || got.UserSplits != 7 || got.Splits < 8 || got.Origin != "ssh:tester" {
		t.Errorf("Unexpected session: %+v", got)
	}
}
