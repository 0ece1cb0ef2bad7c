package session

import (
	"context"

	"github.com/google/uuid"

	"github.com/sketchify-dev/sketchify/internal/imagedata"
	"github.com/sketchify-dev/sketchify/internal/style"
)

// Synthesizer renders a photo in a style. generate.Gemini implements it.
type Synthesizer interface {
	Synthesize(ctx context.Context, img imagedata.DataURI, st style.Style) (imagedata.DataURI, error)
}

// Request is one dispatched generation, tagged with the session version it
// was created for.
type Request struct {
	ID      string
	Version uint64
	Image   imagedata.DataURI
	Style   style.Style
}

// Outcome is the result of running a Request.
type Outcome struct {
	Request Request
	Sketch  imagedata.DataURI
	Err     error
}

func newRequest(s Session) Request {
	return Request{
		ID:      uuid.NewString(),
		Version: s.Version,
		Image:   s.OriginalImage,
		Style:   s.SelectedStyle,
	}
}

// Run performs a single synthesis attempt. It never touches a Session; the
// caller feeds the Outcome to Resolve.
func Run(ctx context.Context, synth Synthesizer, req Request) Outcome {
	sketch, err := synth.Synthesize(ctx, req.Image, req.Style)
	return Outcome{Request: req, Sketch: sketch, Err: err}
}
