package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newUnitsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "units",
		Short: "List the units that can be placed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			units, err := a.catalog()
			if err != nil {
				return err
			}
			list := units.Units()
			return a.emit(cmd, list, func(w io.Writer) {
				tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "NAME\tAC\tHEALTH\tMOVEMENT")
				for _, u := range list {
					fmt.Fprintf(tw, "%s\t%d\t%d\t%d\n", u.Name, u.AC, u.Health, u.Movement)
				}
				tw.Flush()
			})
		},
	}
}
