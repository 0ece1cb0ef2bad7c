// Package views provides TUI view components for the Sketchify application.
package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sketchify-dev/sketchify/internal/tui"
)

// ============================================================================
// Message Types
// ============================================================================

// SubmitPathMsg is sent when the user submits a photo path.
type SubmitPathMsg struct {
	Path string
}

// ============================================================================
// UploadModel
// ============================================================================

// UploadModel is the view model for the Idle phase: a path input that also
// accepts paths pasted by dropping a file onto the terminal.
type UploadModel struct {
	textInput    textinput.Model
	alert        string
	loading      bool
	ctrlCPending bool
	width        int
	height       int
}

// NewUploadModel creates a focused UploadModel.
func NewUploadModel(width, height int) UploadModel {
	ti := textinput.New()
	ti.Placeholder = "drop your photo here, or type its path"
	ti.CharLimit = 4096
	ti.Width = inputWidth(width)
	ti.Focus()

	return UploadModel{
		textInput: ti,
		width:     width,
		height:    height,
	}
}

func inputWidth(width int) int {
	if width < 30 {
		return 20
	}
	return width - 14
}

// Init returns the initial command for the upload view.
func (m UploadModel) Init() tea.Cmd {
	return textinput.Blink
}

// SetAlert shows a validation message under the input.
func (m *UploadModel) SetAlert(alert string) {
	m.alert = alert
}

// SetLoading marks a file as being read.
func (m *UploadModel) SetLoading(loading bool) {
	m.loading = loading
}

// SetCtrlCPending updates the exit hint.
func (m *UploadModel) SetCtrlCPending(pending bool) {
	m.ctrlCPending = pending
}

// Clear empties the input.
func (m *UploadModel) Clear() {
	m.textInput.Reset()
}

// Update handles messages for the upload view.
func (m UploadModel) Update(msg tea.Msg) (UploadModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == tui.KeyEnter {
			value := strings.TrimSpace(m.textInput.Value())
			if value == "" || m.loading {
				return m, nil
			}
			return m, func() tea.Msg {
				return SubmitPathMsg{Path: value}
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.textInput.Width = inputWidth(msg.Width)
		return m, nil
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// View renders the upload view.
func (m UploadModel) View() string {
	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render("Sketchify"))
	b.WriteString(tui.DimStyle.Render("  photo → sketch"))
	b.WriteString("\n\n")

	b.WriteString("Drop your photo here\n")
	b.WriteString(tui.DimStyle.Render("JPG, PNG, GIF, WEBP or HEIC"))
	b.WriteString("\n\n")

	b.WriteString(m.textInput.View())
	b.WriteString("\n")

	switch {
	case m.loading:
		b.WriteString("\n")
		b.WriteString(tui.WarningStyle.Render("Reading photo..."))
		b.WriteString("\n")
	case m.alert != "":
		b.WriteString("\n")
		b.WriteString(tui.ErrorStyle.Render("! " + m.alert))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(tui.DimStyle.Render(exitHint(m.ctrlCPending, "Enter: Load photo")))

	width := m.width - 4
	if width < 40 {
		width = 40
	}
	return tui.BoxStyle.Width(width).Render(b.String())
}

// exitHint renders the footer, switching to the confirmation prompt after a
// first Ctrl+C.
func exitHint(pending bool, actions string) string {
	if pending {
		return "Press Ctrl+C again to exit"
	}
	if actions == "" {
		return "Ctrl+C: Exit"
	}
	return actions + "       Ctrl+C: Exit"
}
