package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/BethCNC/dad-social-media-agent-sub000/types"
	"github.com/BethCNC/dad-social-media-agent-sub000/wizard"
)

// Model drives a single wizard session from the terminal. All mutation goes
// through the orchestrator; the model only holds a snapshot plus view state
// (text being typed, the asset cursor).
type Model struct {
	orch *wizard.Orchestrator
	snap types.SessionSnapshot

	input    string // topic buffer while on the brief step
	cursor   int    // highlighted asset on the select step
	busy     bool   // an orchestrator call is in flight
	status   string // transient feedback line
	quitting bool
}

func NewModel(orch *wizard.Orchestrator) Model {
	return Model{
		orch: orch,
		snap: orch.Snapshot(),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m *Model) refresh() {
	m.snap = m.orch.Snapshot()
	if m.cursor >= len(m.snap.Results) {
		m.cursor = 0
	}
}

func (m Model) selected(id string) bool {
	for _, sel := range m.snap.SelectedIDs {
		if sel == id {
			return true
		}
	}
	return false
}
