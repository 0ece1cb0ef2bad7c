// Package session holds the sketch session state machine. Transitions are
// pure functions: they take a Session value and return a new one.
package session

import (
	"errors"

	"github.com/sketchify-dev/sketchify/internal/imagedata"
	"github.com/sketchify-dev/sketchify/internal/style"
)

// Phase is the current step of the upload → sketch flow.
type Phase int

const (
	Idle Phase = iota // waiting for a photo
	Preview
	Processing
	Complete
	Error
)

var phaseNames = [...]string{"idle", "preview", "processing", "complete", "error"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// DefaultErrorMessage is shown when a failure carries no text of its own.
const DefaultErrorMessage = "Failed to generate sketch. Please try again."

// ErrNoImage is returned by Generate when no photo has been selected.
var ErrNoImage = errors.New("select a photo before generating")

// Session is the single unit of client state.
type Session struct {
	Phase         Phase
	OriginalImage imagedata.DataURI
	SketchImage   imagedata.DataURI
	SelectedStyle style.Style
	Error         string

	// Version changes on every transition that invalidates in-flight work.
	Version uint64
}

// New returns an idle session with the default style selected.
func New() Session {
	return Session{
		Phase:         Idle,
		SelectedStyle: style.Default(),
	}
}

// SelectFile loads a new photo from any phase and moves to Preview.
func SelectFile(s Session, img imagedata.DataURI) Session {
	s.OriginalImage = img
	s.SketchImage = ""
	s.Error = ""
	s.Phase = Preview
	s.Version++
	return s
}

// SelectStyle changes the style used by the next Generate.
func SelectStyle(s Session, st style.Style) Session {
	s.SelectedStyle = st
	return s
}

// Generate moves to Processing and returns the request to run. Any earlier
// sketch is dropped. Without a photo it returns ErrNoImage and s unchanged.
func Generate(s Session) (Session, Request, error) {
	if s.OriginalImage.IsZero() {
		return s, Request{}, ErrNoImage
	}
	s.Phase = Processing
	s.SketchImage = ""
	s.Error = ""
	s.Version++
	return s, newRequest(s), nil
}

// Resolve applies the outcome of a request. It returns s unchanged and false
// when the outcome is stale: the session left Processing or moved on to a
// newer request since it was dispatched.
func Resolve(s Session, o Outcome) (Session, bool) {
	if s.Phase != Processing || o.Request.Version != s.Version {
		return s, false
	}
	if o.Err != nil {
		msg := o.Err.Error()
		if msg == "" {
			msg = DefaultErrorMessage
		}
		s.Error = msg
		s.SketchImage = ""
		s.Phase = Error
		return s, true
	}
	if o.Sketch.IsZero() {
		s.Error = DefaultErrorMessage
		s.SketchImage = ""
		s.Phase = Error
		return s, true
	}
	s.SketchImage = o.Sketch
	s.Phase = Complete
	return s, true
}

// Reset clears images and errors from any phase. The selected style is kept.
func Reset(s Session) Session {
	s.Phase = Idle
	s.OriginalImage = ""
	s.SketchImage = ""
	s.Error = ""
	s.Version++
	return s
}
