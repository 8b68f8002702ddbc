package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentx-labs/extreg/internal/manifest"
)

func init() {
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate <module.yaml>...",
	Short: "Check module manifests against the manifest schema",
	Long: `Validate one or more module.yaml files. Modules with invalid manifests are
skipped during discovery, so run this before installing a module.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		invalid := 0
		for _, path := range args {
			result, err := manifest.ValidateFile(path)
			if err != nil {
				return err
			}
			if result.Valid {
				fmt.Fprintf(out, "%s: ok\n", path)
				continue
			}
			invalid++
			fmt.Fprintf(out, "%s: invalid\n", path)
			for _, issue := range result.Issues {
				fmt.Fprintf(out, "  %s: %s\n", issue.Path, issue.Message)
			}
		}
		if invalid > 0 {
			return fmt.Errorf("%d of %d manifests invalid", invalid, len(args))
		}
		return nil
	},
}
