// styles.go implements the "sketchify styles" command.
package cli

import (
	"fmt"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/sketchify-dev/sketchify/internal/style"
)

var stylesCmd = &cobra.Command{
	Use:   "styles",
	Short: "List the available sketch styles",
	Args:  cobra.NoArgs,
	RunE:  runStyles,
}

var verboseStylesFlag bool

func init() {
	stylesCmd.Flags().BoolVarP(&verboseStylesFlag, "verbose", "v", false, "Show the prompt fragment for each style")
}

func runStyles(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	def := configuredStyle()

	for _, st := range style.All() {
		mark := ""
		if st == def {
			mark = "  (default)"
		}
		fmt.Fprintf(out, "  %-16s %s%s\n", st.Key, st.Label, mark)
		if verboseStylesFlag {
			fmt.Fprintf(out, "  %-16s %s\n", "", st.Fragment)
		}
	}
	return nil
}

// configuredStyle is the default_style from config, or the catalog default
// when the config is unreadable or names an unknown style.
func configuredStyle() style.Style {
	cfg, err := loadConfig()
	if err != nil {
		charmlog.Warn("using built-in default style", "err", err)
		return style.Default()
	}
	st, err := cfg.Style()
	if err != nil {
		charmlog.Warn("using built-in default style", "err", err)
		return style.Default()
	}
	return st
}
