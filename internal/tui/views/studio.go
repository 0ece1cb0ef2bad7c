package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/sketchify-dev/sketchify/internal/imagedata"
	"github.com/sketchify-dev/sketchify/internal/session"
	"github.com/sketchify-dev/sketchify/internal/style"
	"github.com/sketchify-dev/sketchify/internal/tui"
)

// StudioModel renders the Preview, Processing, Complete and Error phases:
// the style list, the original photo panel, the result panel and the
// actions available in the current phase.
type StudioModel struct {
	model *tui.Model
	keys  tui.KeyMap
	help  help.Model
}

// NewStudioModel creates a StudioModel reading from the shared model.
func NewStudioModel(model *tui.Model) StudioModel {
	return StudioModel{
		model: model,
		keys:  tui.DefaultKeyMap,
		help:  help.New(),
	}
}

// Keys returns the bindings enabled for the current phase.
func (v StudioModel) Keys() tui.KeyMap {
	k := v.keys
	phase := v.model.Session.Phase
	busy := phase == session.Processing

	k.Up.SetEnabled(!busy)
	k.Down.SetEnabled(!busy)
	k.Enter.SetEnabled(false)
	k.Generate.SetEnabled(!busy)
	k.Download.SetEnabled(phase == session.Complete)
	if phase == session.Complete || phase == session.Error {
		k.Generate.SetHelp("g", "regenerate")
	}
	return k
}

// View renders the studio.
func (v StudioModel) View() string {
	m := v.model
	s := m.Session

	header := tui.TitleStyle.Render("Sketchify") + tui.DimStyle.Render("  "+s.Phase.String())

	left := lipgloss.JoinVertical(lipgloss.Left,
		v.renderStyles(),
		"",
		v.renderOriginal(),
	)
	right := v.renderResult()

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n\n")
	b.WriteString(body)
	b.WriteString("\n")

	if s.Phase == session.Error && s.Error != "" {
		b.WriteString("\n")
		b.WriteString(tui.BannerStyle.Render("Error: " + s.Error))
		b.WriteString("\n")
	}
	if m.Alert != "" {
		b.WriteString("\n")
		b.WriteString(tui.WarningStyle.Render("! " + m.Alert))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.CtrlCPending {
		b.WriteString(tui.DimStyle.Render(exitHint(true, "")))
	} else {
		v.help.Width = m.Width - 8
		b.WriteString(v.help.ShortHelpView(v.Keys().ShortHelp()))
	}

	return tui.BoxStyle.Render(b.String())
}

func (v StudioModel) renderStyles() string {
	s := v.model.Session
	busy := s.Phase == session.Processing

	var b strings.Builder
	b.WriteString(tui.TitleStyle.Render("Style"))
	b.WriteString("\n")
	for _, st := range style.All() {
		marker := tui.StyleIdle
		label := st.Label
		if st == s.SelectedStyle {
			marker = tui.StyleChosen
			label = tui.SelectedStyle.Render(label)
		} else if busy {
			label = tui.DimStyle.Render(label)
		}
		fmt.Fprintf(&b, "%s %s\n", marker, label)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (v StudioModel) renderOriginal() string {
	m := v.model
	var b strings.Builder
	b.WriteString(tui.TitleStyle.Render("Original"))
	b.WriteString("\n")
	if m.OriginalName != "" {
		b.WriteString(m.OriginalName)
		b.WriteString("\n")
	}
	b.WriteString(tui.DimStyle.Render(describe(m.OriginalInfo)))
	return tui.PanelStyle.Width(34).Render(b.String())
}

func (v StudioModel) renderResult() string {
	m := v.model
	s := m.Session

	var b strings.Builder
	b.WriteString(tui.TitleStyle.Render("Sketch"))
	b.WriteString("\n")

	switch s.Phase {
	case session.Processing:
		fmt.Fprintf(&b, "%s Sketching in %s...\n", m.Spinner.View(), s.SelectedStyle.Label)
		if !m.StartedAt.IsZero() {
			b.WriteString(tui.DimStyle.Render(fmt.Sprintf("%s elapsed. ", m.Now().Sub(m.StartedAt).Round(time.Second))))
		}
		b.WriteString(tui.DimStyle.Render("This can take a little while."))
	case session.Complete:
		b.WriteString(tui.SuccessStyle.Render("✓ Your sketch is ready"))
		b.WriteString("\n")
		b.WriteString(tui.DimStyle.Render(describe(m.SketchInfo)))
		if m.SavedPath != "" {
			b.WriteString("\n")
			b.WriteString(tui.SuccessStyle.Render("Saved to " + m.SavedPath))
		}
	case session.Error:
		b.WriteString(tui.ErrorStyle.Render("✗ No sketch"))
		b.WriteString("\n")
		b.WriteString(tui.DimStyle.Render("Press g to try again."))
	default:
		b.WriteString(tui.DimStyle.Render("Pick a style and press g to convert."))
	}
	return tui.PanelStyle.Width(40).Render(b.String())
}

// describe renders image metadata as "JPEG 1920×1080 · 2.1 MB".
func describe(info imagedata.Info) string {
	if info.Size == 0 && info.Format == "" {
		return ""
	}
	parts := []string{}
	if info.Format != "" {
		format := strings.ToUpper(info.Format)
		if info.Width > 0 && info.Height > 0 {
			format += fmt.Sprintf(" %d×%d", info.Width, info.Height)
		}
		parts = append(parts, format)
	}
	if info.Size > 0 {
		parts = append(parts, humanize.Bytes(uint64(info.Size)))
	}
	return strings.Join(parts, " · ")
}
