package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var getJSON bool

func init() {
	getCmd.Flags().BoolVar(&getJSON, "json", false, "Print link records as JSON")
	rootCmd.AddCommand(getCmd)
}

var getCmd = &cobra.Command{
	Use:     "get [module]",
	Aliases: []string{"list", "ls"},
	Short:   "List enabled extension modules",
	Long: `List the link records in the host's registry root. With a module name,
only that extension is shown. Records are reported as stored; a record whose
path no longer exists is still listed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var name string
		if len(args) == 1 {
			name = args[0]
		}

		links, err := newRegistry().Get(cmd.Context(), name)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if getJSON {
			if links == nil {
				return writeJSON(out, []struct{}{})
			}
			return writeJSON(out, links)
		}

		if len(links) == 0 {
			fmt.Fprintln(out, "No extension modules enabled.")
			return nil
		}

		w := newTabWriter(out)
		fmt.Fprintln(w, "NAME\tVERSION\tPATH")
		for _, l := range links {
			fmt.Fprintf(w, "%s\t%s\t%s\n", l.Name, l.Version, l.Path)
		}
		return w.Flush()
	},
}
