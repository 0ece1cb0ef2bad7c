package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	charmlog "github.com/charmbracelet/log"
)

// DebugFileName receives diagnostic output while the TUI owns the terminal.
const DebugFileName = "debug.log"

// SetupDebug points the default charmbracelet logger at w. debug lowers the
// level to Debug; otherwise only warnings and errors are written.
func SetupDebug(w io.Writer, debug bool) {
	charmlog.SetOutput(w)
	charmlog.SetReportTimestamp(true)
	if debug {
		charmlog.SetLevel(charmlog.DebugLevel)
	} else {
		charmlog.SetLevel(charmlog.WarnLevel)
	}
}

// OpenDebugFile opens debug.log in dir for appending and routes the default
// logger to it. The caller closes the returned file.
func OpenDebugFile(dir string, debug bool) (*os.File, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, DebugFileName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open debug log: %w", err)
	}
	SetupDebug(f, debug)
	return f, nil
}
