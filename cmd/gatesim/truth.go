package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/db47h/gatesim"
	"github.com/db47h/gatesim/gatelib"
	"github.com/db47h/gatesim/gatetest"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var truthCmd = &cobra.Command{
	Use:   "truth KIND",
	Short: "Print the truth table of a combinational part",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, _ := cmd.Flags().GetInt("size")
		k, err := gatelib.ParseKind(args[0])
		if err != nil {
			return err
		}
		p, err := k.Spec(n)
		if err != nil {
			return err
		}
		switch {
		case p.Category == gatelib.CategorySequential || p.Category == gatelib.CategoryMemory:
			return errors.Errorf("%s is not a combinational part", k)
		case len(p.Inputs) == 0 || len(p.Outputs) == 0:
			return errors.Errorf("%s has no inputs or no outputs", k)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 1, ' ', 0)
		fmt.Fprintf(w, "%s\t|\t%s\n", strings.Join(p.Inputs, "\t"), strings.Join(p.Outputs, "\t"))
		err = gatetest.Enumerate(p, func(in, out []gatesim.Value) {
			fmt.Fprintf(w, "%s\t|\t%s\n", join(in), join(out))
		})
		if err != nil {
			return err
		}
		return w.Flush()
	},
}

func join(vs []gatesim.Value) string {
	var b strings.Builder
	for i, v := range vs {
		if i > 0 {
			b.WriteByte('\t')
		}
		b.WriteString(v.String())
	}
	return b.String()
}

func init() {
	rootCmd.AddCommand(truthCmd)
	truthCmd.Flags().IntP("size", "n", 0, "number of inputs of sized parts (0 for the default)")
}
