package cli

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dshills/prscore/internal/scoring"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles [profile]",
	Short: "List scoring profiles and their penalty rules",
	Long: "Without arguments, prints every built-in profile. With an argument, prints that\n" +
		"profile, which may be a built-in name or a YAML profile file.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			p, err := scoring.Resolve(args[0])
			if err != nil {
				return err
			}
			return printPolicy(os.Stdout, p)
		}
		for i, name := range scoring.BuiltinNames() {
			if i > 0 {
				fmt.Fprintln(os.Stdout)
			}
			p, _ := scoring.Builtin(name)
			if err := printPolicy(os.Stdout, p); err != nil {
				return err
			}
		}
		return nil
	},
}

func printPolicy(w io.Writer, p scoring.Policy) error {
	fmt.Fprintf(w, "%s\n", p.Name())
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  TYPE\tWEIGHT\tCAP")
	for _, t := range p.Types() {
		r, _ := p.Rule(t)
		fmt.Fprintf(tw, "  %s\t%d\t%d\n", t, r.Weight, r.Cap)
	}
	return tw.Flush()
}
