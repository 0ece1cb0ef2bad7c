// Package cli defines Cobra command definitions for the sketchify CLI.
// This file contains the root command, global flags and shared helpers.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/sketchify-dev/sketchify/internal/config"
	"github.com/sketchify-dev/sketchify/internal/generate"
	evlog "github.com/sketchify-dev/sketchify/internal/log"
	"github.com/sketchify-dev/sketchify/internal/session"
	"github.com/sketchify-dev/sketchify/internal/tui"
	"github.com/sketchify-dev/sketchify/internal/tui/app"
)

var (
	configDirFlag string
	debug         bool
	version       = "dev" // set via ldflags at build time
)

// isTTY reports whether the interactive UI can take over the terminal.
var isTTY = tui.IsTTY

// newSynthesizer builds the generation adapter for a config.
var newSynthesizer = func(cfg *config.Config) session.Synthesizer {
	return generate.NewGemini(cfg.GenerateOptions())
}

var rootCmd = &cobra.Command{
	Use:   "sketchify",
	Short: "Turn photos into hand-drawn sketches",
	Long: `Sketchify converts a photo into a sketch using the Gemini image model.
Pick one of five styles (Classic Pencil, Charcoal, Pen & Ink, Colored Pencil,
Watercolor Sketch) and download the result as a PNG.

Run without arguments for the interactive terminal UI, pass a photo to open
it straight away, or use 'sketchify sketch <photo>' from scripts.`,
	Args:          cobra.MaximumNArgs(1),
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		evlog.SetupDebug(cmd.ErrOrStderr(), debug)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		var photo string
		if len(args) > 0 {
			photo = args[0]
		}

		// Without a terminal, point at the scriptable command instead.
		if !isTTY() {
			err := tui.NewFallbackRunner(cmd.OutOrStdout()).Run(photo)
			if errors.Is(err, tui.ErrPhotoRequired) {
				return nil
			}
			return err
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		// The TUI owns the terminal; diagnostics go to a file.
		debugFile, err := evlog.OpenDebugFile(configDir(), debug)
		if err != nil {
			return err
		}
		defer debugFile.Close()

		tuiApp := app.New(cfg, newSynthesizer(cfg), openEvents())
		if photo != "" {
			tuiApp.Open(photo)
		}
		return tui.Run(tuiApp)
	},
}

// Execute runs the root command. Called from main.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

// configDir returns --config-dir or the default location.
func configDir() string {
	if configDirFlag != "" {
		return configDirFlag
	}
	return config.Dir()
}

// loadConfig reads the config file, falling back to defaults when none has
// been written yet.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configDir())
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// openEvents opens the event log. A log that cannot be opened is reported and
// replaced by a nil logger, which discards events.
func openEvents() *evlog.Logger {
	events, err := evlog.NewLogger(configDir())
	if err != nil {
		charmlog.Warn("event log disabled", "err", err)
		return nil
	}
	return events
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDirFlag, "config-dir", "", "Config directory (default ~/.sketchify)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Write debug diagnostics")

	rootCmd.AddCommand(sketchCmd)
	rootCmd.AddCommand(stylesCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(cleanCmd)
}
