package commands

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sketchify-dev/sketchify/internal/session"
	"github.com/sketchify-dev/sketchify/internal/tui"
)

// GenerateCmd runs one synthesis attempt for req in the background.
// The result always comes back as GenerationDoneMsg; the caller decides
// whether it is still current.
func GenerateCmd(synth session.Synthesizer, req session.Request) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		outcome := session.Run(context.Background(), synth, req)
		return tui.GenerationDoneMsg{
			Outcome:  outcome,
			Duration: time.Since(start),
		}
	}
}
