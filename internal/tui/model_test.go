package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dawsh2/Torq/internal/task"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return nm
}

func diamondModel(t *testing.T) Model {
	t.Helper()
	g := buildGraph(t,
		task.Task{ID: "A", Title: "Schema", Status: task.StatusComplete},
		task.Task{ID: "B", Title: "Auth", Status: task.StatusInProgress},
		task.Task{ID: "C", Title: "API", Status: task.StatusPending, DependsOn: []string{"A", "B"}},
		task.Task{ID: "D", Title: "Deploy", Status: task.StatusPending, DependsOn: []string{"C"}},
	)
	return NewModel(g, "tasks")
}

func TestModel_Navigation(t *testing.T) {
	m := diamondModel(t)

	if got := m.selectedID(); got != "A" {
		t.Fatalf("initial selection = %q, want A", got)
	}

	m = update(t, m, keyMsg("j"))
	if got := m.selectedID(); got != "B" {
		t.Errorf("after j, selection = %q, want B", got)
	}

	m = update(t, m, keyMsg("down"))
	if got := m.selectedID(); got != "C" {
		t.Errorf("after down, selection = %q, want C", got)
	}

	m = update(t, m, keyMsg("k"))
	if got := m.selectedID(); got != "B" {
		t.Errorf("after k, selection = %q, want B", got)
	}

	m = update(t, m, keyMsg("G"))
	if got := m.selectedID(); got != "D" {
		t.Errorf("after G, selection = %q, want D", got)
	}

	m = update(t, m, keyMsg("g"))
	if got := m.selectedID(); got != "A" {
		t.Errorf("after g, selection = %q, want A", got)
	}

	// Moving past the edges stays put
	m = update(t, m, keyMsg("k"))
	if got := m.selectedID(); got != "A" {
		t.Errorf("k at top moved selection to %q", got)
	}
}

func TestModel_QuitKey(t *testing.T) {
	m := diamondModel(t)

	_, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("q produced no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("q produced %T, want tea.QuitMsg", cmd())
	}
}

func TestModel_FilterNarrowsAndClears(t *testing.T) {
	m := diamondModel(t)
	m = update(t, m, keyMsg("G"))

	m = update(t, m, keyMsg("/"))
	if !m.filtering {
		t.Fatal("/ did not enter filter mode")
	}

	// Typing narrows the visible list and clamps the cursor
	m = update(t, m, keyMsg("b"))
	if want := []string{"B"}; len(m.visible) != 1 || m.visible[0] != want[0] {
		t.Errorf("visible after filter = %v, want %v", m.visible, want)
	}
	if got := m.selectedID(); got != "B" {
		t.Errorf("selection after filter = %q, want B", got)
	}

	// Enter keeps the filter but leaves input mode
	m = update(t, m, keyMsg("enter"))
	if m.filtering {
		t.Error("enter did not leave filter mode")
	}
	if len(m.visible) != 1 {
		t.Errorf("enter cleared the filter, visible = %v", m.visible)
	}

	// Esc outside input mode clears the filter
	m = update(t, m, keyMsg("esc"))
	if len(m.visible) != 4 {
		t.Errorf("esc left %d visible tasks, want 4", len(m.visible))
	}
}

func TestModel_FilterMatchesTitle(t *testing.T) {
	m := diamondModel(t)

	m = update(t, m, keyMsg("/"))
	for _, r := range "deploy" {
		m = update(t, m, keyMsg(string(r)))
	}

	if len(m.visible) != 1 || m.visible[0] != "D" {
		t.Errorf("visible = %v, want [D] via title match", m.visible)
	}
}

func TestModel_EscInFilterModeCancels(t *testing.T) {
	m := diamondModel(t)

	m = update(t, m, keyMsg("/"))
	m = update(t, m, keyMsg("a"))
	m = update(t, m, keyMsg("esc"))

	if m.filtering {
		t.Error("esc did not leave filter mode")
	}
	if len(m.visible) != 4 {
		t.Errorf("esc kept the filter, visible = %v", m.visible)
	}
}

func TestModel_ReloadPreservesSelection(t *testing.T) {
	m := diamondModel(t)
	m = update(t, m, keyMsg("j"))
	m = update(t, m, keyMsg("j"))
	if got := m.selectedID(); got != "C" {
		t.Fatalf("selection = %q, want C", got)
	}

	g := buildGraph(t,
		task.Task{ID: "A", Status: task.StatusComplete},
		task.Task{ID: "C", Status: task.StatusPending, DependsOn: []string{"A"}},
	)
	m = update(t, m, ReloadMsg{Graph: g})

	if got := m.board.Len(); got != 2 {
		t.Errorf("board has %d tasks after reload, want 2", got)
	}
	if got := m.selectedID(); got != "C" {
		t.Errorf("selection after reload = %q, want C", got)
	}

	// A nil graph is ignored
	m = update(t, m, ReloadMsg{})
	if got := m.board.Len(); got != 2 {
		t.Errorf("nil reload changed the board, Len = %d", got)
	}
}

func TestModel_ViewBeforeFirstResize(t *testing.T) {
	m := diamondModel(t)
	if got := m.View(); !strings.Contains(got, "Loading") {
		t.Errorf("View() before resize = %q, want loading placeholder", got)
	}
}

func TestModel_ViewRendersBoard(t *testing.T) {
	m := diamondModel(t)
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	view := m.View()
	for _, want := range []string{"Torq", "4 tasks", "Root Tasks", "A Schema", "D Deploy"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestModel_ViewShowsCycleBanner(t *testing.T) {
	g := buildGraph(t,
		task.Task{ID: "x", DependsOn: []string{"y"}},
		task.Task{ID: "y", DependsOn: []string{"x"}},
	)
	m := NewModel(g, "tasks")
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	if view := m.View(); !strings.Contains(view, "cycle traps 2 task(s)") {
		t.Error("View() missing the cycle banner")
	}
}
