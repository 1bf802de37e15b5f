package cmd

import (
	"github.com/spf13/cobra"
)

var (
	dotExpr string
	dotOut  string
)

var dotCmd = &cobra.Command{
	Use:   "dot",
	Short: "Write a Graphviz DOT rendering of --expr to --out (\"-\" for stdout)",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, e, err := buildFromFlag(dotExpr)
		if err != nil {
			return err
		}
		return m.PrintDot(dotOut, e)
	},
}

func init() {
	rootCmd.AddCommand(dotCmd)
	dotCmd.Flags().StringVar(&dotExpr, "expr", "", "Boolean expression to render")
	dotCmd.Flags().StringVar(&dotOut, "out", "-", "output file, or \"-\" for stdout")
	dotCmd.MarkFlagRequired("expr")
}
