package tui

import (
	"fmt"
	"strings"

	"github.com/BethCNC/dad-social-media-agent-sub000/types"
)

var stepLabels = map[types.Step]string{
	types.StepBrief:       "Brief",
	types.StepReview:      "Review",
	types.StepSelectAsset: "Assets",
	types.StepRender:      "Render",
	types.StepDeliver:     "Deliver",
}

func (m Model) View() string {
	if m.quitting {
		return InfoStyle.Render("Goodbye!") + "\n"
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("🎬 Content Wizard"))
	b.WriteString("\n")
	b.WriteString(m.viewTrail())
	b.WriteString("\n\n")
	b.WriteString(BoxStyle.Render(m.viewStep()))
	b.WriteString("\n")

	if m.snap.UserError != "" {
		b.WriteString(ErrorStyle.Render("⚠ " + m.snap.UserError))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(StatusStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(InfoStyle.Render(m.viewHelp()))
	b.WriteString("\n")
	return b.String()
}

func (m Model) viewTrail() string {
	current := m.snap.Step.Index()
	parts := make([]string, 0, len(types.StepOrder))
	for i, step := range types.StepOrder {
		label := stepLabels[step]
		switch {
		case i == current:
			parts = append(parts, StepCurrentStyle.Render("["+label+"]"))
		case i < current:
			parts = append(parts, StepDoneStyle.Render(label))
		default:
			parts = append(parts, InfoStyle.Render(label))
		}
	}
	return strings.Join(parts, " > ")
}

func (m Model) viewStep() string {
	switch m.snap.Step {
	case types.StepBrief:
		return m.viewBrief()
	case types.StepReview:
		return m.viewReview()
	case types.StepSelectAsset:
		return m.viewSelect()
	case types.StepRender:
		return m.viewRender()
	case types.StepDeliver:
		return m.viewDeliver()
	}
	return ""
}

func (m Model) viewBrief() string {
	return fmt.Sprintf("What should this post be about?\n\n> %s█", m.input)
}

func (m Model) viewReview() string {
	var b strings.Builder
	b.WriteString("Script\n")
	b.WriteString(m.snap.Script)
	b.WriteString("\n\nCaption\n")
	b.WriteString(m.snap.Caption)
	if m.snap.Plan != nil && len(m.snap.Plan.ShotPlan) > 0 {
		b.WriteString("\n\nShot plan\n")
		for i, shot := range m.snap.Plan.ShotPlan {
			fmt.Fprintf(&b, "  %d. %s (%ds)\n", i+1, shot.Description, shot.DurationSeconds)
		}
	}
	return b.String()
}

func (m Model) viewSelect() string {
	if len(m.snap.Results) == 0 {
		return "No assets found. Press r to search again."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Pick %d asset(s) (%d selected)\n\n", m.snap.MaxSelected, len(m.snap.SelectedIDs))
	for i, asset := range m.snap.Results {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		mark := "[ ]"
		line := fmt.Sprintf("%s %s", mark, asset.ID)
		if m.selected(asset.ID) {
			line = SelectedAssetStyle.Render(fmt.Sprintf("[x] %s", asset.ID))
		}
		if asset.DurationSeconds > 0 {
			line += InfoStyle.Render(fmt.Sprintf(" (%ds)", asset.DurationSeconds))
		}
		b.WriteString(cursor + line + "\n")
	}
	return b.String()
}

func (m Model) viewRender() string {
	switch m.snap.PollPhase {
	case types.PollPolling:
		status := ""
		if m.snap.Job != nil {
			status = string(m.snap.Job.Status)
		}
		return fmt.Sprintf("Rendering your video... (%s)", status)
	case types.PollSucceeded:
		return StatusStyle.Render("✅ Render complete!") + "\n\n" + m.snap.MediaURL
	case types.PollFailed:
		return ErrorStyle.Render("❌ Render failed")
	}
	return "Waiting for render to start..."
}

func (m Model) viewDeliver() string {
	var b strings.Builder
	b.WriteString("Ready to publish\n\n")
	fmt.Fprintf(&b, "Video:   %s\n", m.snap.MediaURL)
	fmt.Fprintf(&b, "Caption: %s\n", m.snap.Caption)
	if m.snap.Brief != nil {
		fmt.Fprintf(&b, "To:      %s\n", strings.Join(m.snap.Brief.Platforms, ", "))
	}
	if m.snap.Receipt != nil {
		b.WriteString("\n")
		b.WriteString(StatusStyle.Render(fmt.Sprintf("✅ Scheduled (%s, id %s)", m.snap.Receipt.Status, m.snap.Receipt.ProviderID)))
		for _, link := range m.snap.Receipt.ExternalLinks {
			b.WriteString("\n  " + link)
		}
	}
	return b.String()
}

func (m Model) viewHelp() string {
	switch m.snap.Step {
	case types.StepBrief:
		return "enter: generate plan • ctrl+c: quit"
	case types.StepReview:
		return "n: continue • b: back • q: quit"
	case types.StepSelectAsset:
		return "↑/↓: move • space: select • r: search again • g: regenerate • n: render • b: back • q: quit"
	case types.StepRender:
		if m.snap.PollPhase == types.PollFailed {
			return "t: retry • p: pick different asset • b: back • q: quit"
		}
		return "n: continue when done • q: quit"
	case types.StepDeliver:
		return "s: schedule now • b: back • q: quit"
	}
	return "q: quit"
}
