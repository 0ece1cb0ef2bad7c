// Package tui implements the terminal user interface using Bubble Tea.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"

	"github.com/sketchify-dev/sketchify/internal/config"
	"github.com/sketchify-dev/sketchify/internal/imagedata"
	evlog "github.com/sketchify-dev/sketchify/internal/log"
	"github.com/sketchify-dev/sketchify/internal/session"
)

// Model is the shared TUI state. The sketch flow itself lives in Session;
// everything else here is presentation.
type Model struct {
	Session session.Session

	// Configuration and collaborators
	Cfg    *config.Config
	Synth  session.Synthesizer
	Events *evlog.Logger
	Now    func() time.Time

	// Presentation state
	Alert        string // input validation message; never stored in Session
	Loading      bool   // a file is being read
	OriginalName string
	OriginalInfo imagedata.Info
	SketchInfo   imagedata.Info
	SavedPath    string
	StartedAt    time.Time

	Spinner spinner.Model

	// Terminal dimensions
	Width  int
	Height int

	// Ctrl+C confirmation state
	CtrlCPending bool
}

// NewModel creates a Model with an idle session. The configured default
// style is preselected when it resolves.
func NewModel(cfg *config.Config, synth session.Synthesizer, events *evlog.Logger) *Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	s := session.New()
	if st, err := cfg.Style(); err == nil {
		s = session.SelectStyle(s, st)
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = WarningStyle

	return &Model{
		Session: s,
		Cfg:     cfg,
		Synth:   synth,
		Events:  events,
		Now:     time.Now,
		Spinner: sp,
		Width:   80,
		Height:  24,
	}
}

// ClearOriginal drops the presentation details of the loaded photo and sketch.
func (m *Model) ClearOriginal() {
	m.OriginalName = ""
	m.OriginalInfo = imagedata.Info{}
	m.SketchInfo = imagedata.Info{}
	m.SavedPath = ""
}
