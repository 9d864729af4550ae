package cmd

import (
	"fmt"

	"github.com/abdul-hamid-achik/testconsole/packages/script"
	"github.com/spf13/cobra"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema for a script call",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := script.Schema()
		if err != nil {
			return fmt.Errorf("failed to render schema: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}
