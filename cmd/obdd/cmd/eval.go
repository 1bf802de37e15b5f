package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var (
	evalExpr string
	evalAll  bool
)

var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Build a formula and report satisfiability, model count, and (optionally) every model",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, e, err := buildFromFlag(evalExpr)
		if err != nil {
			return err
		}
		count, err := m.Satcount(e)
		if err != nil {
			return err
		}
		fmt.Printf("satcount: %s\n", count.String())
		if !evalAll {
			return nil
		}
		return m.Allsat(e, func(assignment map[string]bool) error {
			fmt.Println(formatAssignment(assignment))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(evalCmd)
	evalCmd.Flags().StringVar(&evalExpr, "expr", "", "Boolean expression over --vars, e.g. \"(x&y)|!z\"")
	evalCmd.Flags().BoolVar(&evalAll, "all", false, "enumerate every satisfying assignment")
	evalCmd.MarkFlagRequired("expr")
}

// formatAssignment renders a partial assignment (Allsat's don't-cares
// omitted) as a sorted "name=0"/"name=1" list for stable, diffable output.
func formatAssignment(a map[string]bool) string {
	names := make([]string, 0, len(a))
	for n := range a {
		names = append(names, n)
	}
	sort.Strings(names)
	out := ""
	for i, n := range names {
		if i > 0 {
			out += " "
		}
		if a[n] {
			out += n + "=1"
		} else {
			out += n + "=0"
		}
	}
	if out == "" {
		return "(no variables in support)"
	}
	return out
}
