package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var candidatesJSON bool

func init() {
	candidatesCmd.Flags().BoolVar(&candidatesJSON, "json", false, "Print candidates as JSON")
	rootCmd.AddCommand(candidatesCmd)
}

var candidatesCmd = &cobra.Command{
	Use:   "candidates <module>",
	Short: "List every candidate for a module in resolution order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		found, err := newRegistry().Candidates(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if candidatesJSON {
			views := make([]candidateView, 0, len(found))
			for _, c := range found {
				views = append(views, newCandidateView(c))
			}
			return writeJSON(out, views)
		}

		if len(found) == 0 {
			fmt.Fprintf(out, "No candidates found for %s.\n", args[0])
			return nil
		}

		w := newTabWriter(out)
		fmt.Fprintln(w, "VERSION\tSOURCE\tREQUIRES HOST\tPATH")
		for _, c := range found {
			requires := c.HostConstraint
			if requires == "" {
				requires = "-"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.Version, source(c), requires, c.BasePath)
		}
		return w.Flush()
	},
}
