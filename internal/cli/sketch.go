// sketch.go implements the "sketchify sketch" command, the non-interactive
// photo to sketch conversion.
package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/sketchify-dev/sketchify/internal/config"
	"github.com/sketchify-dev/sketchify/internal/download"
	"github.com/sketchify-dev/sketchify/internal/imagedata"
	evlog "github.com/sketchify-dev/sketchify/internal/log"
	"github.com/sketchify-dev/sketchify/internal/session"
	"github.com/sketchify-dev/sketchify/internal/style"
	"github.com/sketchify-dev/sketchify/internal/ui"
)

var sketchCmd = &cobra.Command{
	Use:   "sketch <photo>",
	Short: "Convert a photo into a sketch",
	Long: `Convert a photo into a sketch and save it as sketchify-<unix-ms>.png.

The style defaults to the configured default_style (Classic Pencil unless
changed). The sketch is written to the configured output_dir unless
--output is given. The saved path is printed on stdout; progress goes to
stderr.`,
	Args: cobra.ExactArgs(1),
}

var (
	styleFlag  string
	outputFlag string
)

func init() {
	sketchCmd.RunE = runSketch
	sketchCmd.Flags().StringVarP(&styleFlag, "style", "s", "", "Style key or label (see 'sketchify styles')")
	sketchCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Directory to save the sketch in")
}

func runSketch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := sketchStyle(cfg)
	if err != nil {
		return err
	}
	outDir := outputFlag
	if outDir == "" {
		outDir = cfg.OutputDir
	}

	events := openEvents()
	photo := args[0]

	progress := ui.NewProgressDisplay(cmd.ErrOrStderr(), filepath.Base(photo))
	progress.AddStep("load", "Load photo")
	progress.AddStep("generate", "Sketch in "+st.Label)
	progress.AddStep("save", "Save sketch")
	progress.Start()
	defer progress.Finish()

	// Load.
	progress.Update("load", ui.StatusRunning, "")
	mime, data, err := imagedata.ReadFile(photo, cfg.MaxUploadBytes())
	if err != nil {
		progress.Update("load", ui.StatusFailed, err.Error())
		appendEvent(events, evlog.LogEvent{Event: evlog.EventFileRejected, Path: photo, Error: err.Error()})
		return fmt.Errorf("loading photo: %w", err)
	}
	info := imagedata.Describe(data)
	progress.Update("load", ui.StatusDone, fmt.Sprintf("%s, %s", info.Format, humanize.Bytes(uint64(info.Size))))
	appendEvent(events, evlog.LogEvent{Event: evlog.EventFileSelected, Path: photo, MIMEType: mime, Bytes: len(data)})

	s := session.SelectFile(session.New(), imagedata.Encode(mime, data))
	s = session.SelectStyle(s, st)

	// Generate.
	s, req, err := session.Generate(s)
	if err != nil {
		return err
	}
	progress.Update("generate", ui.StatusRunning, "")
	appendEvent(events, evlog.LogEvent{
		Event:     evlog.EventGenerationStarted,
		RequestID: req.ID,
		Version:   req.Version,
		Style:     st.Label,
	})

	start := time.Now()
	outcome := session.Run(cmd.Context(), newSynthesizer(cfg), req)
	s, _ = session.Resolve(s, outcome)
	elapsed := time.Since(start)

	if s.Phase != session.Complete {
		progress.Update("generate", ui.StatusFailed, s.Error)
		appendEvent(events, evlog.LogEvent{
			Event:      evlog.EventGenerationFailed,
			RequestID:  req.ID,
			Error:      s.Error,
			DurationMs: elapsed.Milliseconds(),
		})
		if outcome.Err != nil {
			return fmt.Errorf("generating sketch: %w", outcome.Err)
		}
		return fmt.Errorf("generating sketch: %s", s.Error)
	}
	progress.Update("generate", ui.StatusDone, "")
	appendEvent(events, evlog.LogEvent{
		Event:      evlog.EventGenerationSucceeded,
		RequestID:  req.ID,
		Style:      st.Label,
		DurationMs: elapsed.Milliseconds(),
	})

	// Save.
	progress.Update("save", ui.StatusRunning, "")
	path, err := download.Save(outDir, s.SketchImage, time.Now())
	if err != nil {
		progress.Update("save", ui.StatusFailed, err.Error())
		return fmt.Errorf("saving sketch: %w", err)
	}
	progress.Update("save", ui.StatusDone, path)
	appendEvent(events, evlog.LogEvent{Event: evlog.EventSketchSaved, RequestID: req.ID, Path: path})

	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

// sketchStyle resolves --style, falling back to the configured default.
func sketchStyle(cfg *config.Config) (style.Style, error) {
	if styleFlag != "" {
		return style.Lookup(styleFlag)
	}
	st, err := cfg.Style()
	if err != nil {
		return style.Style{}, fmt.Errorf("config default_style: %w", err)
	}
	return st, nil
}

func appendEvent(events *evlog.Logger, e evlog.LogEvent) {
	if err := events.Append(e); err != nil {
		fmt.Fprintf(sketchCmd.ErrOrStderr(), "Warning: event log: %v\n", err)
	}
}
