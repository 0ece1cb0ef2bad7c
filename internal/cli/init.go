// init.go implements the "sketchify init" command.
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sketchify-dev/sketchify/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration",
	Long: `Write config.yaml with default settings into the config directory
(~/.sketchify unless --config-dir is given). The API key is never stored
there; set GEMINI_API_KEY (or API_KEY) in the environment or a .env file.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

var forceFlag bool

func init() {
	initCmd.Flags().BoolVarP(&forceFlag, "force", "f", false, "Overwrite an existing config without asking")
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := configDir()
	path := config.Path(dir)
	out := cmd.OutOrStdout()

	if _, statErr := os.Stat(path); statErr == nil && !forceFlag {
		fmt.Fprintf(out, "Warning: %s already exists.\n", path)
		fmt.Fprint(out, "Overwrite? [y/N]: ")
		reader := bufio.NewReader(cmd.InOrStdin())
		answer, _ := reader.ReadString('\n')
		answer = strings.TrimSpace(strings.ToLower(answer))
		if answer != "y" && answer != "yes" {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}
	}

	if err := config.WriteConfig(dir, config.DefaultConfig()); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Fprintf(out, "Configuration written to %s\n", path)
	if config.APIKeyFromEnv() == "" {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Next step: export GEMINI_API_KEY=<your key> (or add it to a .env file)")
	}
	return nil
}
