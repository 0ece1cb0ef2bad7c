package tui

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestFallbackRunner(t *testing.T) {
	tests := []struct {
		name    string
		photo   string
		wantErr error
		want    string
	}{
		{"no photo", "", ErrPhotoRequired, "sketchify sketch <photo>"},
		{"with photo", "cat.jpg", nil, `sketchify sketch "cat.jpg"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := NewFallbackRunner(&buf).Run(tt.photo)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("output = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestNewModelDefaults(t *testing.T) {
	m := NewModel(nil, nil, nil)
	if m.Cfg == nil {
		t.Fatal("nil config should fall back to defaults")
	}
	if m.Session.Phase.String() != "idle" {
		t.Errorf("phase = %v", m.Session.Phase)
	}
	if m.Width != 80 || m.Height != 24 {
		t.Errorf("size = %dx%d", m.Width, m.Height)
	}
}
