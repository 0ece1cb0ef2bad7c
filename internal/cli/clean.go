// clean.go implements the "sketchify clean" command for pruning downloaded
// sketches.
package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/sketchify-dev/sketchify/internal/cleanup"
)

// defaultMaxAgeDays applies when neither --keep nor --older-than is given.
const defaultMaxAgeDays = 30

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove old downloaded sketches",
	Long: `Remove sketchify-<unix-ms>.png files from the output directory.

By default, removes sketches older than 30 days.
Use --keep to keep only the N most recent sketches instead.
Use --dry-run to preview what would be removed.
Other files in the directory are never touched.`,
	Args: cobra.NoArgs,
	RunE: runClean,
}

var (
	keepFlag      int
	olderThanFlag int
	dryRunFlag    bool
	cleanDirFlag  string
)

func init() {
	cleanCmd.Flags().IntVar(&keepFlag, "keep", 0, "Keep only the last N sketches (0 = use age-based cleanup)")
	cleanCmd.Flags().IntVar(&olderThanFlag, "older-than", defaultMaxAgeDays, "Remove sketches older than this many days")
	cleanCmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "Preview what would be removed without deleting")
	cleanCmd.Flags().StringVarP(&cleanDirFlag, "output", "o", "", "Directory to clean (default: configured output_dir)")
}

func runClean(cmd *cobra.Command, args []string) error {
	dir := cleanDirFlag
	if dir == "" {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		dir = cfg.OutputDir
	}

	var pruned []cleanup.Sketch
	var err error

	if keepFlag > 0 {
		pruned, err = cleanup.PruneKeepRecent(dir, keepFlag, dryRunFlag)
	} else {
		maxAge := olderThanFlag
		if maxAge < 0 {
			maxAge = defaultMaxAgeDays
		}
		pruned, err = cleanup.PruneByAge(dir, maxAge, dryRunFlag)
	}
	if err != nil {
		return fmt.Errorf("cleanup failed: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(pruned) == 0 {
		fmt.Fprintln(out, "No sketches to clean up.")
		return nil
	}

	verb := "Removed"
	if dryRunFlag {
		verb = "Would remove"
	}

	var total int64
	for _, s := range pruned {
		fmt.Fprintf(out, "  %s %s (%s, %s)\n", verb, s.Name, humanize.Time(s.Taken), humanize.Bytes(uint64(s.Size)))
		total += s.Size
	}
	fmt.Fprintf(out, "%s %d sketch(es), %s.\n", verb, len(pruned), humanize.Bytes(uint64(total)))

	return nil
}
