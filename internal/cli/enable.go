package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	enableFlags  requestFlags
	disableFlags requestFlags
)

func init() {
	enableFlags.register(enableCmd)
	disableFlags.register(disableCmd)
	rootCmd.AddCommand(enableCmd)
	rootCmd.AddCommand(disableCmd)
}

var enableCmd = &cobra.Command{
	Use:   "enable <module>",
	Short: "Enable an extension module for the host",
	Long: `Resolve the host and extension candidates and write a link record for the
extension into the host's registry root. An extension that is already enabled
is left untouched; disable it first to switch versions.

Example:
  extreg enable Foo
  extreg enable Foo --module-version 1.0`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := newRegistry().Enable(cmd.Context(), enableFlags.request(args[0]))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Enabled %s %s (%s) for %s %s.\n",
			res.Extension.Name, res.Extension.Version, res.Extension.BasePath,
			res.Host.Name, res.Host.Version)
		return nil
	},
}

var disableCmd = &cobra.Command{
	Use:   "disable <module>",
	Short: "Disable an extension module for the host",
	Long: `Resolve the host and extension candidates and remove the extension's link
record from the host's registry root.

Example:
  extreg disable Foo`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := newRegistry().Disable(cmd.Context(), disableFlags.request(args[0]))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Disabled %s for %s %s.\n",
			res.Extension.Name, res.Host.Name, res.Host.Version)
		return nil
	},
}
