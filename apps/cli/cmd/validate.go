package cmd

import (
	"fmt"
	"strings"

	"github.com/abdul-hamid-achik/testconsole/packages/script"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file|directory>...",
	Short: "Validate console scripts without replaying them",
	Long: `Validate console scripts against the call schema without replaying them.

Examples:
  testconsole validate worker-1.jsonl
  testconsole validate ./captured/`,
	Args: cobra.MinimumNArgs(1),
	RunE: validateCommand,
}

func validateCommand(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		return fmt.Errorf("no script files found (expected %s)", strings.Join(script.Extensions, ", "))
	}

	hasErrors := false
	for _, file := range files {
		s, err := script.ParseFile(file)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error in %v\n", err)
			hasErrors = true
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Valid: %s (%d calls)\n", file, len(s.Calls))
		}
	}

	if hasErrors {
		return fmt.Errorf("validation failed")
	}

	return nil
}
