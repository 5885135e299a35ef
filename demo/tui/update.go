package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/BethCNC/dad-social-media-agent-sub000/types"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case actionDoneMsg:
		m.busy = false
		m.refresh()
		if msg.err != nil {
			m.status = msg.err.Error()
		} else {
			m.status = ""
		}
		if m.snap.Step == types.StepRender && m.snap.PollPhase == types.PollPolling {
			return m, tickCmd()
		}
		return m, nil

	case tickMsg:
		m.refresh()
		if m.snap.Step == types.StepRender && m.snap.PollPhase == types.PollPolling {
			return m, tickCmd()
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m.quit()
	}
	if m.busy {
		return m, nil
	}

	switch m.snap.Step {
	case types.StepBrief:
		return m.handleBriefKey(msg)
	case types.StepReview:
		return m.handleReviewKey(msg)
	case types.StepSelectAsset:
		return m.handleSelectKey(msg)
	case types.StepRender:
		return m.handleRenderKey(msg)
	case types.StepDeliver:
		return m.handleDeliverKey(msg)
	}
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.orch.Close()
	return m, tea.Quit
}

// handleBriefKey captures free text for the topic, so only control keys carry
// meaning here. Quitting needs ctrl+c on this step.
func (m Model) handleBriefKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		topic := strings.TrimSpace(m.input)
		if topic == "" {
			m.status = "Type a topic first"
			return m, nil
		}
		brief := types.ContentBrief{
			Mode:         types.BriefModeManual,
			Topic:        topic,
			Tone:         "warm",
			Platforms:    []string{"TikTok", "Instagram"},
			TemplateKind: types.TemplateVideo,
		}
		m.busy = true
		m.status = "Generating plan..."
		return m, runAction(func(ctx context.Context) error {
			return m.orch.SubmitBrief(ctx, brief)
		})
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			runes := []rune(m.input)
			m.input = string(runes[:len(runes)-1])
		}
		return m, nil
	case tea.KeySpace:
		m.input += " "
		return m, nil
	case tea.KeyRunes:
		m.input += string(msg.Runes)
		return m, nil
	}
	return m, nil
}

func (m Model) handleReviewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m.quit()
	case "n", "enter":
		m.busy = true
		m.status = "Searching for assets..."
		return m, runAction(m.orch.Next)
	case "b":
		if err := m.orch.Back(); err != nil {
			m.status = err.Error()
		} else {
			m.status = ""
		}
		m.refresh()
		return m, nil
	}
	return m, nil
}

func (m Model) handleSelectKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m.quit()
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "j":
		if m.cursor < len(m.snap.Results)-1 {
			m.cursor++
		}
		return m, nil
	case " ":
		if m.cursor < len(m.snap.Results) {
			id := m.snap.Results[m.cursor].ID
			if err := m.orch.ToggleAsset(id, !m.selected(id)); err != nil {
				m.status = err.Error()
			} else {
				m.status = ""
			}
			m.refresh()
		}
		return m, nil
	case "r":
		m.busy = true
		m.status = "Searching again..."
		return m, runAction(m.orch.SearchAgain)
	case "g":
		if m.cursor < len(m.snap.Results) {
			id := m.snap.Results[m.cursor].ID
			m.busy = true
			m.status = "Regenerating image..."
			return m, runAction(func(ctx context.Context) error {
				return m.orch.Regenerate(ctx, id)
			})
		}
		return m, nil
	case "n", "enter":
		m.busy = true
		m.status = "Starting render..."
		return m, runAction(m.orch.Next)
	case "b":
		if err := m.orch.Back(); err != nil {
			m.status = err.Error()
		} else {
			m.status = ""
		}
		m.refresh()
		return m, nil
	}
	return m, nil
}

func (m Model) handleRenderKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m.quit()
	case "t":
		m.busy = true
		m.status = "Retrying render..."
		return m, runAction(m.orch.RetryRender)
	case "p":
		if err := m.orch.PickDifferentAsset(); err != nil {
			m.status = err.Error()
		} else {
			m.status = ""
			m.cursor = 0
		}
		m.refresh()
		return m, nil
	case "n", "enter":
		m.busy = true
		return m, runAction(m.orch.Next)
	case "b":
		if err := m.orch.Back(); err != nil {
			m.status = err.Error()
		} else {
			m.status = ""
		}
		m.refresh()
		return m, nil
	}
	return m, nil
}

func (m Model) handleDeliverKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m.quit()
	case "s":
		m.busy = true
		m.status = "Scheduling post..."
		return m, runAction(func(ctx context.Context) error {
			return m.orch.Schedule(ctx, nil)
		})
	case "b":
		if err := m.orch.Back(); err != nil {
			m.status = err.Error()
		} else {
			m.status = ""
		}
		m.refresh()
		return m, nil
	}
	return m, nil
}
