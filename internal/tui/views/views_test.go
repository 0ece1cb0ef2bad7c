package views

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sketchify-dev/sketchify/internal/config"
	"github.com/sketchify-dev/sketchify/internal/imagedata"
	"github.com/sketchify-dev/sketchify/internal/session"
	"github.com/sketchify-dev/sketchify/internal/tui"
)

func TestUploadSubmitsTrimmedPath(t *testing.T) {
	m := NewUploadModel(80, 24)
	for _, r := range "  photo.jpg " {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter should submit")
	}
	msg, ok := cmd().(SubmitPathMsg)
	if !ok {
		t.Fatalf("got %T, want SubmitPathMsg", cmd())
	}
	if msg.Path != "photo.jpg" {
		t.Errorf("Path = %q", msg.Path)
	}
}

func TestUploadIgnoresEmptyAndLoading(t *testing.T) {
	m := NewUploadModel(80, 24)
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil {
		t.Error("empty input should not submit")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a.png")})
	m.SetLoading(true)
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil {
		t.Error("should not submit while loading")
	}
}

func TestUploadViewShowsAlert(t *testing.T) {
	m := NewUploadModel(80, 24)
	m.SetAlert("please select an image file")
	if !strings.Contains(m.View(), "please select an image file") {
		t.Error("alert not rendered")
	}
}

func TestStudioKeysPerPhase(t *testing.T) {
	model := tui.NewModel(config.DefaultConfig(), nil, nil)
	v := NewStudioModel(model)

	photo := imagedata.Encode("image/jpeg", []byte{1})
	model.Session = session.SelectFile(model.Session, photo)
	k := v.Keys()
	if !k.Generate.Enabled() || k.Download.Enabled() {
		t.Error("preview: generate on, download off")
	}

	model.Session, _, _ = session.Generate(model.Session)
	k = v.Keys()
	if k.Up.Enabled() || k.Down.Enabled() || k.Generate.Enabled() {
		t.Error("processing: style and generate keys must be disabled")
	}
	if !k.Reset.Enabled() {
		t.Error("processing: reset stays enabled")
	}
}

func TestStudioViewShowsErrorBanner(t *testing.T) {
	model := tui.NewModel(config.DefaultConfig(), nil, nil)
	model.Session = session.Session{Phase: session.Error, Error: "quota exceeded", SelectedStyle: model.Session.SelectedStyle}
	out := NewStudioModel(model).View()
	if !strings.Contains(out, "quota exceeded") {
		t.Errorf("banner missing:\n%s", out)
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		info imagedata.Info
		want string
	}{
		{imagedata.Info{}, ""},
		{imagedata.Info{Format: "jpeg", Width: 640, Height: 480, Size: 2_100_000}, "JPEG 640×480 · 2.1 MB"},
		{imagedata.Info{Format: "webp", Size: 1000}, "WEBP · 1.0 kB"},
	}
	for _, tt := range tests {
		if got := describe(tt.info); got != tt.want {
			t.Errorf("describe(%+v) = %q, want %q", tt.info, got, tt.want)
		}
	}
}
