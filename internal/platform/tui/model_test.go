package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/fibo/internal/board"
	"github.com/vovakirdan/fibo/internal/config"
	"github.com/vovakirdan/fibo/internal/session"
	"github.com/vovakirdan/fibo/internal/storage"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func press(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		if !ok {
			t.Fatalf("Update returned %T, want Model", next)
		}
	}
	return m
}

func newTestModel(store *storage.Store) Model {
	return NewModel(Options{
		Game:   config.Default(),
		Seed:   7,
		Store:  store,
		Width:  80,
		Height: 30,
	})
}

// playAnyMove slides until the board changes.
func playAnyMove(t *testing.T, m Model) Model {
	t.Helper()
	keys := []tea.KeyMsg{
		{Type: tea.KeyLeft}, {Type: tea.KeyRight}, {Type: tea.KeyUp}, {Type: tea.KeyDown},
	}
	before := m.Session().MoveCount()
	for _, k := range keys {
		m = press(t, m, k)
		if m.Session().MoveCount() > before {
			return m
		}
	}
	t.Fatal("no direction changed the board")
	return m
}

func occupied(g board.Grid) int {
	n := 0
	for row := range board.Size {
		for col := range board.Size {
			if g[row][col] != 0 {
				n++
			}
		}
	}
	return n
}

func TestKeyMapDirection(t *testing.T) {
	keys := DefaultGameKeyMap()

	tests := []struct {
		msg  tea.KeyMsg
		want board.Direction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, board.DirUp},
		{tea.KeyMsg{Type: tea.KeyDown}, board.DirDown},
		{runeKey('a'), board.DirLeft},
		{runeKey('d'), board.DirRight},
	}
	for _, tt := range tests {
		t.Run(tt.msg.String(), func(t *testing.T) {
			got, ok := keys.direction(tt.msg)
			if !ok || got != tt.want {
				t.Errorf("direction(%q) = (%v, %v), want %v", tt.msg.String(), got, ok, tt.want)
			}
		})
	}

	if _, ok := keys.direction(runeKey('x')); ok {
		t.Error("x should not map to a direction")
	}
	for i, kind := range quickPowerUps {
		got, ok := keys.quickPowerUp(runeKey(rune('1' + i)))
		if !ok || got != kind {
			t.Errorf("quickPowerUp(%d) = (%v, %v), want %v", i+1, got, ok, kind)
		}
	}
}

func TestMoveCursorClamps(t *testing.T) {
	tests := []struct {
		name string
		from board.Pos
		dir  board.Direction
		want board.Pos
	}{
		{"up at top", board.Pos{Row: 0, Col: 2}, board.DirUp, board.Pos{Row: 0, Col: 2}},
		{"down", board.Pos{Row: 1, Col: 1}, board.DirDown, board.Pos{Row: 2, Col: 1}},
		{"right at edge", board.Pos{Row: 3, Col: 3}, board.DirRight, board.Pos{Row: 3, Col: 3}},
		{"left", board.Pos{Row: 0, Col: 3}, board.DirLeft, board.Pos{Row: 0, Col: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := moveCursor(tt.from, tt.dir); got != tt.want {
				t.Errorf("moveCursor(%v, %v) = %v, want %v", tt.from, tt.dir, got, tt.want)
			}
		})
	}
}

func TestFormatTile(t *testing.T) {
	tests := []struct {
		value int
		want  string
	}{
		{1, "1"},
		{2584, "2584"},
		{46368, "46368"},
		{832040, "832k"},
		{14930352, "14M"},
		{165580141, "165M"},
	}
	for _, tt := range tests {
		if got := formatTile(tt.value); got != tt.want {
			t.Errorf("formatTile(%d) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestModelStateFlow(t *testing.T) {
	m := newTestModel(nil)
	if m.Session().State() != session.Menu {
		t.Fatalf("initial state = %v, want Menu", m.Session().State())
	}
	if !strings.Contains(m.View(), "New game") {
		t.Error("menu view should list the new game key")
	}

	m = press(t, m, runeKey('n'))
	if m.Session().State() != session.Playing {
		t.Fatalf("after n state = %v, want Playing", m.Session().State())
	}
	if occupied(m.Session().Grid()) != 2 {
		t.Errorf("new game has %d tiles, want 2", occupied(m.Session().Grid()))
	}

	m = press(t, m, runeKey('p'))
	if m.Session().State() != session.Paused {
		t.Fatalf("after p state = %v, want Paused", m.Session().State())
	}
	if !strings.Contains(m.View(), "PAUSED") {
		t.Error("paused view should show the banner")
	}

	// Moves are ignored while paused
	m = press(t, m, tea.KeyMsg{Type: tea.KeyLeft}, tea.KeyMsg{Type: tea.KeyRight})
	if m.Session().MoveCount() != 0 {
		t.Errorf("MoveCount() = %d while paused, want 0", m.Session().MoveCount())
	}

	m = press(t, m, runeKey('p'))
	if m.Session().State() != session.Playing {
		t.Fatalf("after second p state = %v, want Playing", m.Session().State())
	}

	m = playAnyMove(t, m)
	m = press(t, m, runeKey('b'))
	if m.Session().State() != session.Menu {
		t.Errorf("after b state = %v, want Menu", m.Session().State())
	}
}

func TestModelUndoKey(t *testing.T) {
	m := press(t, newTestModel(nil), runeKey('n'))

	m = press(t, m, runeKey('u'))
	if m.message != "Nothing to undo" {
		t.Errorf("message = %q, want nothing to undo", m.message)
	}

	start := m.Session().Grid()
	m = playAnyMove(t, m)
	m = press(t, m, runeKey('u'))
	if got := m.Session().Grid(); got != start {
		t.Errorf("after undo grid = %v, want %v", got, start)
	}
}

func TestModelHammerTargeting(t *testing.T) {
	m := press(t, newTestModel(nil), runeKey('n'))
	before := occupied(m.Session().Grid())

	m = press(t, m, runeKey('h'))
	if !m.targeting {
		t.Fatal("h should start targeting")
	}
	if m.Session().Grid()[m.cursor.Row][m.cursor.Col] == 0 {
		t.Errorf("cursor %v should start on a tile", m.cursor)
	}
	if !strings.Contains(m.View(), "Pick a tile") {
		t.Error("targeting view should prompt for a tile")
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.targeting {
		t.Error("enter should end targeting")
	}
	if got := occupied(m.Session().Grid()); got != before-1 {
		t.Errorf("tiles after hammer = %d, want %d", got, before-1)
	}

	// Second use is on cooldown
	m = press(t, m, runeKey('h'))
	if m.targeting {
		t.Error("hammer on cooldown should not start targeting")
	}
	if !strings.Contains(m.message, "ready in") {
		t.Errorf("message = %q, want a cooldown notice", m.message)
	}
}

func TestModelTargetingCancel(t *testing.T) {
	m := press(t, newTestModel(nil), runeKey('n'))
	start := m.Session().Grid()

	m = press(t, m, runeKey('h'), tea.KeyMsg{Type: tea.KeyEsc})
	if m.targeting {
		t.Error("esc should cancel targeting")
	}
	if m.Session().State() != session.Playing {
		t.Errorf("esc while targeting should not pause, state = %v", m.Session().State())
	}
	if m.Session().Grid() != start {
		t.Error("cancelled hammer changed the board")
	}
}

func TestModelPowerUpKey(t *testing.T) {
	m := press(t, newTestModel(nil), runeKey('n'))
	before := occupied(m.Session().Grid())

	m = press(t, m, runeKey('1'))
	if got := occupied(m.Session().Grid()); got != before-1 {
		t.Errorf("tiles after destroy lowest = %d, want %d", got, before-1)
	}
	if !strings.Contains(m.message, "left") {
		t.Errorf("message = %q, want remaining uses", m.message)
	}
}

func TestModelPowerUpTargetRouting(t *testing.T) {
	tests := []struct {
		key           rune
		wantTargeting bool
	}{
		{'1', false},
		{'2', false},
		{'3', false},
		{'4', false},
		{'h', true},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			m := press(t, newTestModel(nil), runeKey('n'), runeKey(tt.key))
			if m.targeting != tt.wantTargeting {
				t.Errorf("targeting = %v, want %v", m.targeting, tt.wantTargeting)
			}
			if tt.wantTargeting && !m.targetKind.Targeted() {
				t.Errorf("targetKind = %v, want a targeted power-up", m.targetKind)
			}
		})
	}
}

func TestModelHUDShowsUndoCount(t *testing.T) {
	m := press(t, newTestModel(nil), runeKey('n'))
	if !strings.Contains(m.hud(), "Undo 0") {
		t.Errorf("hud() = %q, want Undo 0 on a new game", m.hud())
	}

	m = playAnyMove(t, m)
	if !strings.Contains(m.hud(), "Undo 1") {
		t.Errorf("hud() = %q, want Undo 1 after a move", m.hud())
	}

	m = press(t, m, runeKey('u'))
	if !strings.Contains(m.hud(), "Undo 0") {
		t.Errorf("hud() = %q, want Undo 0 after undo", m.hud())
	}
}

func TestModelMuteKey(t *testing.T) {
	m := newTestModel(nil)
	m = press(t, m, runeKey('m'))
	if !m.Session().Muted() {
		t.Error("m should mute")
	}
	if m.message != "Sound off" {
		t.Errorf("message = %q, want Sound off", m.message)
	}
}

func TestModelSavesAbandonedRun(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	m := press(t, newTestModel(store), runeKey('n'))
	m = playAnyMove(t, m)
	runID := m.Session().RunID()

	next, cmd := m.Update(runeKey('q'))
	if cmd == nil {
		t.Error("q should return a quit command")
	}
	if next.(Model).View() != "" {
		t.Error("view should be empty after quitting")
	}

	run, err := store.RunByID(runID)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if run == nil {
		t.Fatal("abandoned run was not saved")
	}
	if run.Moves != 1 || run.Difficulty != "normal" {
		t.Errorf("saved run = %+v, want 1 move on normal", run)
	}
}

func TestModelSkipsEmptyRun(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	m := press(t, newTestModel(store), runeKey('n'), runeKey('b'))
	if m.Session().State() != session.Menu {
		t.Fatalf("state = %v, want Menu", m.Session().State())
	}

	runs, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("a run without moves was saved: %+v", runs)
	}
}

func TestScoreboardEmbedded(t *testing.T) {
	m := newTestModel(nil)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.scores == nil {
		t.Fatal("tab should open the scoreboard")
	}
	if !strings.Contains(m.View(), "not being recorded") {
		t.Error("scoreboard without a store should say so")
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.scores != nil {
		t.Error("esc should close the scoreboard")
	}
	if m.Session().State() != session.Menu {
		t.Errorf("state = %v, want Menu", m.Session().State())
	}
}

func TestScoreboardViews(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	for _, score := range []int{30, 90, 60} {
		if _, err := store.SaveRun(storage.Run{Score: score}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	sb := NewScoreboardModel(store, 100, 30)
	if sb.runs[0].Score != 90 {
		t.Errorf("top view first score = %d, want 90", sb.runs[0].Score)
	}
	if !strings.Contains(sb.View(), "3 runs") {
		t.Error("scoreboard should show the stats line")
	}

	next, _ := sb.Update(tea.KeyMsg{Type: tea.KeyTab})
	sb = next.(ScoreboardModel)
	if sb.view != viewRecent || sb.runs[0].Score != 60 {
		t.Errorf("recent view first score = %d, want 60", sb.runs[0].Score)
	}

	next, cmd := sb.Update(tea.KeyMsg{Type: tea.KeyEsc})
	sb = next.(ScoreboardModel)
	if !sb.IsGoingBack() || cmd == nil {
		t.Error("standalone scoreboard should quit on back")
	}
}
