package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/db47h/gatesim/gatelib"
	"github.com/spf13/cobra"
)

var kindsCmd = &cobra.Command{
	Use:   "kinds",
	Short: "List the available part kinds",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "KIND\tCATEGORY\tSIZE\tINPUTS\tOUTPUTS")
		for _, k := range gatelib.Kinds() {
			p, err := k.Spec(0)
			if err != nil {
				return err
			}
			size := "-"
			if k.Sized() {
				size = fmt.Sprintf("%d (min %d)", k.DefaultSize(), k.MinSize())
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", k, p.Category, size,
				strings.Join(p.Inputs, " "), strings.Join(p.Outputs, " "))
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(kindsCmd)
}
