package commands

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sketchify-dev/sketchify/internal/download"
	"github.com/sketchify-dev/sketchify/internal/imagedata"
	"github.com/sketchify-dev/sketchify/internal/tui"
)

// SaveSketchCmd writes the sketch into dir.
func SaveSketchCmd(dir string, sketch imagedata.DataURI, now time.Time) tea.Cmd {
	return func() tea.Msg {
		path, err := download.Save(dir, sketch, now)
		return tui.SketchSavedMsg{Path: path, Err: err}
	}
}
