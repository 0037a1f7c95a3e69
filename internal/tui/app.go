package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dawsh2/Torq/internal/graph"
)

// App wraps the Bubbletea program
type App struct {
	program *tea.Program
	model   Model
}

// New creates a board application for a loaded graph. The program is
// constructed here so Reload can be called before or during Run.
func New(g *graph.Graph, tasksDir string) *App {
	model := NewModel(g, tasksDir)
	return &App{
		model:   model,
		program: tea.NewProgram(model, tea.WithAltScreen()),
	}
}

// Run starts the TUI and blocks until the user quits
func (a *App) Run() error {
	_, err := a.program.Run()
	return err
}

// Reload swaps in a rebuilt graph, preserving the current selection
// where possible. Safe to call from other goroutines.
func (a *App) Reload(g *graph.Graph) {
	a.program.Send(ReloadMsg{Graph: g})
}

// Quit stops the program from outside the update loop
func (a *App) Quit() {
	a.program.Quit()
}
