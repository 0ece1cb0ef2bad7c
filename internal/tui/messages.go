package tui

import (
	"time"

	"github.com/sketchify-dev/sketchify/internal/imagedata"
	"github.com/sketchify-dev/sketchify/internal/session"
)

// ============================================================================
// File Messages
// ============================================================================

// FileLoadedMsg carries a validated, encoded photo.
type FileLoadedMsg struct {
	Path  string
	Image imagedata.DataURI
	Info  imagedata.Info
}

// FileRejectedMsg reports a file that failed validation.
type FileRejectedMsg struct {
	Path string
	Err  error
}

// ============================================================================
// Generation Messages
// ============================================================================

// GenerationDoneMsg carries the outcome of one generation request.
type GenerationDoneMsg struct {
	Outcome  session.Outcome
	Duration time.Duration
}

// SketchSavedMsg reports the result of writing the sketch to disk.
type SketchSavedMsg struct {
	Path string
	Err  error
}

// ============================================================================
// Utility Messages
// ============================================================================

// CtrlCResetMsg clears the pending Ctrl+C confirmation.
type CtrlCResetMsg struct{}
