package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var declareCmd = &cobra.Command{
	Use:   "declare",
	Short: "Declare --vars and print the resulting variable order",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := newManager()
		if err != nil {
			return err
		}
		for level := int32(0); level < int32(m.Varnum()); level++ {
			name, err := m.VarAt(level)
			if err != nil {
				return err
			}
			fmt.Printf("level %d: %s\n", level, name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(declareCmd)
}
