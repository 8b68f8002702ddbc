package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	resolveFlags requestFlags
	resolveJSON  bool
)

func init() {
	resolveFlags.register(resolveCmd)
	resolveCmd.Flags().BoolVar(&resolveJSON, "json", false, "Print the resolution as JSON")
	rootCmd.AddCommand(resolveCmd)
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <module>",
	Short: "Show which host and extension versions would be linked",
	Long: `Resolve the host and extension candidates for a module without changing
anything on disk.

Candidates already loaded in the host process are preferred; otherwise the
newest installed version wins. Version patterns accept * and ? wildcards.

Example:
  extreg resolve Foo
  extreg resolve Foo --module-version '1.*' --host-version 7.2`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := newRegistry().Resolve(cmd.Context(), resolveFlags.request(args[0]))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if resolveJSON {
			return writeJSON(out, newResolutionView(res))
		}

		w := newTabWriter(out)
		fmt.Fprintf(w, "Host:\t%s %s\t%s\t(%s)\n", res.Host.Name, res.Host.Version, res.Host.BasePath, source(res.Host))
		fmt.Fprintf(w, "Extension:\t%s %s\t%s\t(%s)\n", res.Extension.Name, res.Extension.Version, res.Extension.BasePath, source(res.Extension))
		fmt.Fprintf(w, "Registry:\t%s\n", res.RegistryRoot)
		fmt.Fprintf(w, "Link:\t%s\n", res.LinkPath)
		return w.Flush()
	},
}
