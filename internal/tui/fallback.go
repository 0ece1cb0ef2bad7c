package tui

import (
	"errors"
	"fmt"
	"io"
)

// ErrPhotoRequired is returned when a photo path is required but not provided.
var ErrPhotoRequired = errors.New("photo path required in non-interactive mode")

// FallbackRunner handles non-TTY execution by guiding users to CLI commands.
type FallbackRunner struct {
	out io.Writer
}

// NewFallbackRunner creates a new FallbackRunner.
func NewFallbackRunner(out io.Writer) *FallbackRunner {
	return &FallbackRunner{out: out}
}

// Run prints guidance for non-interactive mode. With a photo path it prints
// the matching sketch command; without one it returns ErrPhotoRequired.
func (f *FallbackRunner) Run(photo string) error {
	fmt.Fprintln(f.out, "Non-TTY environment detected.")

	if photo == "" {
		fmt.Fprintln(f.out, "Use 'sketchify sketch <photo> [--style KEY]' for non-interactive use.")
		return ErrPhotoRequired
	}

	fmt.Fprintf(f.out, "Use 'sketchify sketch %q' to convert it.\n", photo)
	return nil
}
