package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dawsh2/Torq/internal/graph"
	"github.com/dawsh2/Torq/internal/tui/styles"
)

// Layout constants
const (
	detailWidth    = 34 // fixed detail sidebar width
	detailMinTerm  = 80 // below this the sidebar is dropped entirely
	reservedLines  = 5  // header, filter bar, help bar
	minBoardHeight = 3
)

// ReloadMsg replaces the graph shown by a running board.
type ReloadMsg struct {
	Graph *graph.Graph
}

// Model holds the board TUI state
type Model struct {
	board    *Board
	tasksDir string
	edges    int

	// visible holds task ids in level order after filtering
	visible []string
	cursor  int

	filter    textinput.Model
	filtering bool

	width  int
	height int
	ready  bool
}

// NewModel creates the board model for a loaded graph
func NewModel(g *graph.Graph, tasksDir string) Model {
	ti := textinput.New()
	ti.Placeholder = "task id or title"
	ti.Prompt = "/ "
	ti.CharLimit = 64

	m := Model{
		board:    NewBoard(g),
		tasksDir: tasksDir,
		edges:    g.EdgeCount(),
		filter:   ti,
	}
	m.rebuildVisible()
	return m
}

// Init starts the cursor blink for the filter input
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeypress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case ReloadMsg:
		if msg.Graph == nil {
			return m, nil
		}
		selected := m.selectedID()
		m.board = NewBoard(msg.Graph)
		m.edges = msg.Graph.EdgeCount()
		m.rebuildVisible()
		m.moveCursorTo(selected)
		return m, nil
	}
	return m, nil
}

func (m Model) handleKeypress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.filtering {
		switch msg.String() {
		case "esc":
			m.filtering = false
			m.filter.Blur()
			m.filter.SetValue("")
			m.rebuildVisible()
		case "enter":
			m.filtering = false
			m.filter.Blur()
		default:
			var cmd tea.Cmd
			m.filter, cmd = m.filter.Update(msg)
			m.rebuildVisible()
			return m, cmd
		}
		return m, nil
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "j", "down":
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "g", "home":
		m.cursor = 0
	case "G", "end":
		m.cursor = max(len(m.visible)-1, 0)
	case "/":
		m.filtering = true
		return m, m.filter.Focus()
	case "esc":
		m.filter.SetValue("")
		m.rebuildVisible()
	}
	return m, nil
}

// rebuildVisible recomputes the flat navigation list from the board
// levels and the current filter, keeping the cursor in range.
func (m *Model) rebuildVisible() {
	m.visible = nil
	for _, ids := range m.board.Levels() {
		for _, id := range ids {
			if m.matchesFilter(id) {
				m.visible = append(m.visible, id)
			}
		}
	}
	if m.cursor >= len(m.visible) {
		m.cursor = max(len(m.visible)-1, 0)
	}
}

func (m Model) matchesFilter(id string) bool {
	q := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(id), q) {
		return true
	}
	node, ok := m.board.Node(id)
	return ok && strings.Contains(strings.ToLower(node.Task.Title), q)
}

// moveCursorTo points the cursor at id if it is still visible
func (m *Model) moveCursorTo(id string) {
	for i, vid := range m.visible {
		if vid == id {
			m.cursor = i
			return
		}
	}
}

func (m Model) selectedID() string {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return ""
	}
	return m.visible[m.cursor]
}

// View renders the board
func (m Model) View() string {
	if !m.ready {
		return "Loading board..."
	}

	var sections []string
	sections = append(sections, m.renderHeader())
	if m.board.HasCycle() {
		sections = append(sections, styles.CycleBanner.Render(
			fmt.Sprintf("⚠ cycle traps %d task(s): %s",
				len(m.board.CycleIDs()), strings.Join(m.board.CycleIDs(), ", "))))
	}

	bodyHeight := max(m.height-reservedLines, minBoardHeight)
	mainWidth := m.width
	showDetail := m.width >= detailMinTerm
	if showDetail {
		mainWidth = m.width - detailWidth - 1
	}

	body := m.renderLevels(mainWidth, bodyHeight)
	if showDetail {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, m.renderDetail(detailWidth))
	}
	sections = append(sections, body)

	if m.filtering {
		sections = append(sections, styles.FilterBar.Render(m.filter.View()))
	}
	sections = append(sections, m.renderHelp())

	return strings.Join(sections, "\n")
}

func (m Model) renderHeader() string {
	title := styles.Title.Render("Torq")
	info := styles.Subtitle.Render(fmt.Sprintf("%s · %d tasks · %d edges",
		m.tasksDir, m.board.Len(), m.edges))
	return lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", info)
}

// renderLevels renders the level list, windowed so the selected task
// stays in view.
func (m Model) renderLevels(width, height int) string {
	var lines []string
	selectedLine := 0

	for levelIdx, ids := range m.board.Levels() {
		var vis []string
		for _, id := range ids {
			if m.matchesFilter(id) {
				vis = append(vis, id)
			}
		}
		if len(vis) == 0 {
			continue
		}
		lines = append(lines, m.renderLevelHeader(levelIdx))
		for _, id := range vis {
			if id == m.selectedID() {
				selectedLine = len(lines)
			}
			lines = append(lines, m.renderNode(id, width))
		}
	}

	if len(lines) == 0 {
		if m.board.Len() == 0 {
			return styles.Muted.Render("No tasks in " + m.tasksDir)
		}
		return styles.Muted.Render("No tasks match the filter")
	}

	if len(lines) > height {
		start := selectedLine - height/2
		start = min(start, len(lines)-height)
		start = max(start, 0)
		end := start + height
		window := make([]string, height)
		copy(window, lines[start:end])
		if start > 0 {
			window[0] = styles.Muted.Render(fmt.Sprintf("▲ %d more above", start))
		}
		if end < len(lines) {
			window[height-1] = styles.Muted.Render(fmt.Sprintf("▼ %d more below", len(lines)-end))
		}
		lines = window
	}

	return strings.Join(lines, "\n")
}

// renderLevelHeader renders the separator above a dependency level
func (m Model) renderLevelHeader(level int) string {
	var label string
	switch {
	case m.board.HasCycle() && level == m.board.maxLevel:
		label = "Cycle"
	case level == 0:
		label = "Root Tasks"
	case level == m.board.maxLevel:
		label = "Final Tasks"
	default:
		label = fmt.Sprintf("Level %d", level+1)
	}
	style := lipgloss.NewStyle().Foreground(styles.SecondaryColor).Bold(true)
	return style.Render(fmt.Sprintf("─── %s ───", label))
}

// renderNode renders a single task row
func (m Model) renderNode(id string, width int) string {
	node, ok := m.board.Node(id)
	if !ok {
		return ""
	}
	t := node.Task

	icon := lipgloss.NewStyle().
		Foreground(styles.StatusColor(string(t.Status))).
		Render(styles.StatusIcon(string(t.Status)))

	label := t.ID
	if t.Title != "" {
		label += " " + t.Title
	}
	label = truncate(label, max(width-14, 8))

	style := styles.SidebarItem
	if id == m.selectedID() {
		style = styles.SidebarItemActive
	}

	depInfo := ""
	if n := len(node.DependsOn); n > 0 {
		depInfo = fmt.Sprintf(" [%d↑]", n)
	}
	if n := len(node.Dependents); n > 0 {
		depInfo += fmt.Sprintf(" [%d↓]", n)
	}

	return fmt.Sprintf("  %s %s%s", icon, style.Render(label), styles.Muted.Render(depInfo))
}

// renderDetail renders the sidebar for the selected task
func (m Model) renderDetail(width int) string {
	var b strings.Builder
	b.WriteString(styles.SidebarTitle.Render("Details"))
	b.WriteString("\n")

	node, ok := m.board.Node(m.selectedID())
	if !ok {
		b.WriteString(styles.Muted.Render("No task selected"))
		return styles.Sidebar.Width(width - 2).Render(b.String())
	}
	t := node.Task

	b.WriteString(styles.Text.Bold(true).Render(t.ID))
	b.WriteString("\n")
	if t.Title != "" {
		b.WriteString(t.Title)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	status := lipgloss.NewStyle().
		Foreground(styles.StatusColor(string(t.Status))).
		Render(styles.StatusIcon(string(t.Status)) + " " + string(t.Status))
	b.WriteString("Status:   " + status + "\n")

	prio := lipgloss.NewStyle().
		Foreground(styles.PriorityColor(string(t.Priority))).
		Render(string(t.Priority))
	b.WriteString("Priority: " + prio + "\n")

	if t.Group != "" {
		b.WriteString("Group:    " + t.Group + "\n")
	}
	if t.Parent != "" {
		b.WriteString("Parent:   " + t.Parent + "\n")
	}
	if t.SourceFile != "" {
		b.WriteString(styles.Muted.Render(truncate(t.SourceFile, width-4)) + "\n")
	}

	if len(node.DependsOn) > 0 {
		b.WriteString("\n")
		b.WriteString(styles.SidebarSectionTitle.Render("Depends on"))
		b.WriteString("\n")
		for _, dep := range node.DependsOn {
			b.WriteString("  " + m.renderRef(dep, width-4) + "\n")
		}
	}
	if len(node.Dependents) > 0 {
		b.WriteString("\n")
		b.WriteString(styles.SidebarSectionTitle.Render("Unblocks"))
		b.WriteString("\n")
		for _, dep := range node.Dependents {
			b.WriteString("  " + m.renderRef(dep, width-4) + "\n")
		}
	}
	if len(t.Scope) > 0 {
		b.WriteString("\n")
		b.WriteString(styles.SidebarSectionTitle.Render("Scope"))
		b.WriteString("\n")
		for _, s := range t.Scope {
			b.WriteString("  " + truncate(s, width-6) + "\n")
		}
	}

	return styles.Sidebar.Width(width - 2).Render(b.String())
}

// renderRef renders a related task id with its status icon
func (m Model) renderRef(id string, maxLen int) string {
	node, ok := m.board.Node(id)
	if !ok {
		return styles.Muted.Render(truncate(id, maxLen))
	}
	st := node.Task.Status
	icon := lipgloss.NewStyle().
		Foreground(styles.StatusColor(string(st))).
		Render(styles.StatusIcon(string(st)))
	return icon + " " + truncate(id, maxLen-2)
}

func (m Model) renderHelp() string {
	sep := styles.Muted.Render("  ")
	parts := []string{
		styles.HelpKey.Render("[j/k]") + " " + styles.Muted.Render("move"),
		styles.HelpKey.Render("[/]") + " " + styles.Muted.Render("filter"),
		styles.HelpKey.Render("[esc]") + " " + styles.Muted.Render("clear"),
		styles.HelpKey.Render("[q]") + " " + styles.Muted.Render("quit"),
	}
	return strings.Join(parts, sep)
}

// truncate shortens a string for display. Rune counting keeps
// multi-byte characters intact.
func truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
