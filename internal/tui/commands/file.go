// Package commands provides Bubble Tea commands for TUI operations.
package commands

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sketchify-dev/sketchify/internal/imagedata"
	"github.com/sketchify-dev/sketchify/internal/tui"
)

// CleanPath normalises a path typed or dropped onto the terminal. Terminals
// paste dropped files quoted, backslash-escaped or as file:// URLs.
func CleanPath(raw string) string {
	p := strings.TrimSpace(raw)

	if len(p) >= 2 {
		first, last := p[0], p[len(p)-1]
		if (first == '\'' || first == '"') && first == last {
			p = p[1 : len(p)-1]
		}
	}

	if strings.HasPrefix(p, "file://") {
		if u, err := url.Parse(p); err == nil {
			p = u.Path
		}
	} else if strings.Contains(p, `\`) && filepath.Separator == '/' {
		p = unescape(p)
	}

	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}

// unescape drops shell-style backslashes: `my\ photo.jpg` -> `my photo.jpg`.
func unescape(p string) string {
	var b strings.Builder
	escaped := false
	for _, r := range p {
		if r == '\\' && !escaped {
			escaped = true
			continue
		}
		escaped = false
		b.WriteRune(r)
	}
	return b.String()
}

// LoadFileCmd reads and validates a photo off the UI goroutine.
// Returns FileLoadedMsg on success or FileRejectedMsg on any validation error.
func LoadFileCmd(raw string, maxBytes int64) tea.Cmd {
	return func() tea.Msg {
		path := CleanPath(raw)

		mime, data, err := imagedata.ReadFile(path, maxBytes)
		if err != nil {
			return tui.FileRejectedMsg{Path: path, Err: err}
		}

		return tui.FileLoadedMsg{
			Path:  path,
			Image: imagedata.Encode(mime, data),
			Info:  imagedata.Describe(data),
		}
	}
}
