package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fortuna/dfscrape/internal/normalize"
)

var flagConvention string

func newTeamsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "teams",
		Short: "Print the team table in every naming convention",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)

			if flagConvention != "" {
				conv, err := parseConvention(flagConvention)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "nba_code\t%s\n", conv)
				for _, t := range normalize.Teams() {
					fmt.Fprintf(w, "%s\t%s\n", t.Code, t.Label(conv))
				}
				return w.Flush()
			}

			fmt.Fprintln(w, "nba_code\tfull_name\tshort_name\tmascot")
			for _, t := range normalize.Teams() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", t.Code, t.FullName, t.ShortName, t.Mascot)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&flagConvention, "convention", "", "Print a single convention: mascot, full_name, short_name or nba_code")
	return cmd
}

func parseConvention(s string) (normalize.Convention, error) {
	for _, c := range normalize.Conventions {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown convention: %s", s)
}
