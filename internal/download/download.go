// Package download writes finished sketches to disk as
// sketchify-<unix-ms>.png.
package download

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/sketchify-dev/sketchify/internal/imagedata"
)

const (
	prefix = "sketchify-"
	ext    = ".png"

	// maxCollisions bounds how far Save walks forward when a name is taken.
	maxCollisions = 100
)

// ErrNoSketch is returned when there is nothing to save.
var ErrNoSketch = errors.New("no sketch to download")

// Filename returns the download name for a sketch finished at t.
func Filename(t time.Time) string {
	return prefix + strconv.FormatInt(t.UnixMilli(), 10) + ext
}

// ParseFilename reports the time encoded in a download name.
func ParseFilename(name string) (time.Time, bool) {
	if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, ext) {
		return time.Time{}, false
	}
	ms, err := strconv.ParseInt(strings.TrimSuffix(strings.TrimPrefix(name, prefix), ext), 10, 64)
	if err != nil || ms < 0 {
		return time.Time{}, false
	}
	return time.UnixMilli(ms), true
}

// Save decodes sketch and writes it into dir as a PNG named for now. dir is
// created if needed. An existing file is never overwritten; the timestamp is
// advanced a millisecond at a time until a free name is found. Returns the
// written path.
func Save(dir string, sketch imagedata.DataURI, now time.Time) (string, error) {
	if sketch.IsZero() {
		return "", ErrNoSketch
	}
	_, data, err := sketch.Decode()
	if err != nil {
		return "", fmt.Errorf("decoding sketch: %w", err)
	}
	data, err = imagedata.ToPNG(data)
	if err != nil {
		return "", fmt.Errorf("converting sketch: %w", err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	for i := 0; i < maxCollisions; i++ {
		path := filepath.Join(dir, Filename(now.Add(time.Duration(i)*time.Millisecond)))
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("creating %s: %w", filepath.Base(path), err)
		}
		if _, err := f.Write(data); err != nil {
			f.Close()
			os.Remove(path)
			return "", fmt.Errorf("writing %s: %w", filepath.Base(path), err)
		}
		if err := f.Close(); err != nil {
			return "", fmt.Errorf("writing %s: %w", filepath.Base(path), err)
		}
		return path, nil
	}
	return "", fmt.Errorf("no free file name in %s", dir)
}
