package session

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sketchify-dev/sketchify/internal/generate"
	"github.com/sketchify-dev/sketchify/internal/imagedata"
	"github.com/sketchify-dev/sketchify/internal/style"
	"github.com/sketchify-dev/sketchify/internal/testutil"
)

// stubSynth returns a fixed result and remembers what it was asked.
type stubSynth struct {
	out   imagedata.DataURI
	err   error
	img   imagedata.DataURI
	style style.Style
	calls int
}

func (s *stubSynth) Synthesize(ctx context.Context, img imagedata.DataURI, st style.Style) (imagedata.DataURI, error) {
	s.calls++
	s.img = img
	s.style = st
	return s.out, s.err
}

var photo = imagedata.Encode("image/jpeg", []byte{0xff, 0xd8, 0xff, 0xe0})

func TestNew(t *testing.T) {
	s := New()
	if s.Phase != Idle {
		t.Errorf("Phase = %v, want idle", s.Phase)
	}
	if s.SelectedStyle != style.Default() {
		t.Errorf("SelectedStyle = %q, want default", s.SelectedStyle.Label)
	}
	if !s.OriginalImage.IsZero() || !s.SketchImage.IsZero() || s.Error != "" {
		t.Error("new session should carry no images or error")
	}
}

func TestSelectFileFromAnyPhase(t *testing.T) {
	for _, start := range allPhases(t) {
		t.Run(start.Phase.String(), func(t *testing.T) {
			next := SelectFile(start, photo)
			if next.Phase != Preview {
				t.Errorf("Phase = %v, want preview", next.Phase)
			}
			if next.OriginalImage != photo {
				t.Error("OriginalImage not set")
			}
			if !next.SketchImage.IsZero() || next.Error != "" {
				t.Error("SelectFile should clear sketch and error")
			}
			if next.Version <= start.Version {
				t.Error("SelectFile should bump the version")
			}
		})
	}
}

func TestSelectFileDecodesToOriginal(t *testing.T) {
	path, original := testutil.PhotoFile(t)
	img, err := imagedata.EncodeFile(path, 0)
	if err != nil {
		t.Fatalf("EncodeFile: %v", err)
	}
	s := SelectFile(New(), img)
	mime, data, err := s.OriginalImage.Decode()
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if mime != "image/jpeg" || string(data) != string(original) {
		t.Error("OriginalImage should decode to the file's bytes and type")
	}
}

func TestGenerateWithoutImage(t *testing.T) {
	s := New()
	next, req, err := Generate(s)
	if !errors.Is(err, ErrNoImage) {
		t.Fatalf("err = %v, want ErrNoImage", err)
	}
	if next != s {
		t.Errorf("session changed on failed Generate: %+v", next)
	}
	if req != (Request{}) {
		t.Errorf("request = %+v, want zero", req)
	}
}

func TestGenerateTagsRequest(t *testing.T) {
	s := SelectStyle(SelectFile(New(), photo), style.Ink)
	s.Error = "old"
	next, req, err := Generate(s)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if next.Phase != Processing {
		t.Errorf("Phase = %v, want processing", next.Phase)
	}
	if next.Error != "" {
		t.Error("Generate should clear the previous error")
	}
	if req.Version != next.Version || req.Image != photo || req.Style != style.Ink {
		t.Errorf("request = %+v does not match session", req)
	}
	if req.ID == "" {
		t.Error("request should have an ID")
	}
}

func TestResolveSuccess(t *testing.T) {
	s, req, _ := Generate(SelectFile(New(), photo))
	sketch := imagedata.Encode(imagedata.PNG, []byte("png"))

	next, applied := Resolve(s, Outcome{Request: req, Sketch: sketch})
	if !applied {
		t.Fatal("outcome should apply")
	}
	if next.Phase != Complete || next.SketchImage != sketch {
		t.Errorf("got phase %v sketch %q", next.Phase, next.SketchImage)
	}
}

func TestResolveFailure(t *testing.T) {
	s, req, _ := Generate(SelectFile(New(), photo))
	synth := &stubSynth{err: &generate.GenerationError{Err: generate.ErrNoImage}}

	next, applied := Resolve(s, Run(context.Background(), synth, req))
	if !applied {
		t.Fatal("outcome should apply")
	}
	if next.Phase != Error {
		t.Errorf("Phase = %v, want error", next.Phase)
	}
	if next.Error == "" {
		t.Error("Error message must not be empty")
	}
	if !strings.Contains(next.Error, "no image") {
		t.Errorf("Error = %q, want the generation error text", next.Error)
	}
	if next.OriginalImage != photo {
		t.Error("failure should keep the original image for a retry")
	}
}

func TestResolveFailureWithEmptyMessage(t *testing.T) {
	s, req, _ := Generate(SelectFile(New(), photo))
	next, _ := Resolve(s, Outcome{Request: req, Err: errors.New("")})
	if next.Error != DefaultErrorMessage {
		t.Errorf("Error = %q, want default message", next.Error)
	}
}

func TestGenerateClearsPreviousSketch(t *testing.T) {
	s, req, _ := Generate(SelectFile(New(), photo))
	done, _ := Resolve(s, Outcome{Request: req, Sketch: imagedata.Encode(imagedata.PNG, []byte("first"))})

	next, _, err := Generate(done)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !next.SketchImage.IsZero() {
		t.Errorf("regenerate kept the old sketch while processing: %q", next.SketchImage)
	}
}

func TestResolveEmptyOutcomeLeavesNoSketch(t *testing.T) {
	s, req, _ := Generate(SelectFile(New(), photo))
	done, _ := Resolve(s, Outcome{Request: req, Sketch: imagedata.Encode(imagedata.PNG, []byte("first"))})
	s, req, _ = Generate(done)

	next, applied := Resolve(s, Outcome{Request: req})
	if !applied {
		t.Fatal("outcome should apply")
	}
	if next.Phase != Error {
		t.Errorf("Phase = %v, want error", next.Phase)
	}
	if !next.SketchImage.IsZero() {
		t.Errorf("failed generation left a sketch behind: %q", next.SketchImage)
	}
	if next.Error != DefaultErrorMessage {
		t.Errorf("Error = %q, want default message", next.Error)
	}
}

func TestResolveIgnoresStaleAfterReset(t *testing.T) {
	s, req, _ := Generate(SelectFile(New(), photo))
	s = Reset(s)

	next, applied := Resolve(s, Outcome{Request: req, Sketch: imagedata.Encode(imagedata.PNG, []byte("late"))})
	if applied {
		t.Error("late outcome after reset must be discarded")
	}
	if next != s {
		t.Errorf("session changed: %+v", next)
	}
}

func TestResolveIgnoresSupersededRequest(t *testing.T) {
	s, first, _ := Generate(SelectFile(New(), photo))
	s, second, _ := Generate(s)

	s, applied := Resolve(s, Outcome{Request: first, Err: errors.New("boom")})
	if applied || s.Phase != Processing {
		t.Fatalf("superseded outcome applied: phase %v", s.Phase)
	}
	s, applied = Resolve(s, Outcome{Request: second, Sketch: imagedata.Encode(imagedata.PNG, []byte("ok"))})
	if !applied || s.Phase != Complete {
		t.Errorf("current outcome not applied: phase %v", s.Phase)
	}
}

func TestRegenerateFromTerminalPhases(t *testing.T) {
	s, req, _ := Generate(SelectFile(New(), photo))
	done, _ := Resolve(s, Outcome{Request: req, Sketch: imagedata.Encode(imagedata.PNG, []byte("a"))})
	failed, _ := Resolve(s, Outcome{Request: req, Err: errors.New("x")})

	for _, start := range []Session{done, failed} {
		next, _, err := Generate(start)
		if err != nil {
			t.Fatalf("Generate from %v: %v", start.Phase, err)
		}
		if next.Phase != Processing {
			t.Errorf("Generate from %v -> %v, want processing", start.Phase, next.Phase)
		}
	}
}

func TestResetFromEveryPhase(t *testing.T) {
	for _, start := range allPhases(t) {
		t.Run(start.Phase.String(), func(t *testing.T) {
			next := Reset(start)
			if next.Phase != Idle {
				t.Errorf("Phase = %v, want idle", next.Phase)
			}
			if !next.OriginalImage.IsZero() || !next.SketchImage.IsZero() || next.Error != "" {
				t.Errorf("Reset left data behind: %+v", next)
			}
			if next.SelectedStyle != start.SelectedStyle {
				t.Error("Reset should keep the selected style")
			}
		})
	}
}

func TestScenarioCharcoal(t *testing.T) {
	path, _ := testutil.PhotoFile(t)
	img, err := imagedata.EncodeFile(path, 0)
	if err != nil {
		t.Fatalf("EncodeFile: %v", err)
	}

	s := SelectFile(New(), img)
	if s.Phase != Preview {
		t.Fatalf("after select: %v", s.Phase)
	}
	s = SelectStyle(s, style.Charcoal)
	if s.SelectedStyle != style.Charcoal {
		t.Fatalf("style = %q", s.SelectedStyle.Label)
	}

	s, req, err := Generate(s)
	if err != nil || s.Phase != Processing {
		t.Fatalf("after generate: %v %v", s.Phase, err)
	}

	synth := &stubSynth{out: imagedata.Encode(imagedata.PNG, testutil.PNGBytes(t, 4, 4))}
	s, _ = Resolve(s, Run(context.Background(), synth, req))
	if s.Phase != Complete {
		t.Fatalf("after resolve: %v (%s)", s.Phase, s.Error)
	}
	if !strings.HasPrefix(s.SketchImage.String(), "data:image/png;base64,") {
		t.Errorf("sketch = %.40q", s.SketchImage)
	}
	if synth.calls != 1 || synth.style != style.Charcoal || synth.img != img {
		t.Errorf("synthesizer saw calls=%d style=%q", synth.calls, synth.style.Label)
	}

	s = Reset(s)
	if s.Phase != Idle || !s.OriginalImage.IsZero() || !s.SketchImage.IsZero() {
		t.Errorf("after reset: %+v", s)
	}
}

func TestPhaseString(t *testing.T) {
	if Processing.String() != "processing" {
		t.Errorf("Processing.String() = %q", Processing.String())
	}
	if Phase(42).String() != "unknown" {
		t.Errorf("Phase(42).String() = %q", Phase(42).String())
	}
}

// allPhases builds one session in each of the five phases.
func allPhases(t *testing.T) []Session {
	t.Helper()
	idle := New()
	preview := SelectFile(idle, photo)
	processing, req, err := Generate(preview)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	complete, _ := Resolve(processing, Outcome{Request: req, Sketch: imagedata.Encode(imagedata.PNG, []byte("s"))})
	failed, _ := Resolve(processing, Outcome{Request: req, Err: errors.New("network down")})
	return []Session{idle, preview, processing, complete, failed}
}
