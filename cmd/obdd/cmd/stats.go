package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsExpr string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print node table, cache, and GC statistics after declaring --vars and (optionally) building --expr",
	RunE: func(cmd *cobra.Command, args []string) error {
		if statsExpr == "" {
			m, err := newManager()
			if err != nil {
				return err
			}
			fmt.Print(m.Statistics())
			return nil
		}
		m, _, err := buildFromFlag(statsExpr)
		if err != nil {
			return err
		}
		fmt.Print(m.Statistics())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().StringVar(&statsExpr, "expr", "", "optional Boolean expression to build before reporting stats")
}
